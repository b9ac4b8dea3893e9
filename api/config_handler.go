package api

import (
	"net/http"

	"github.com/seenimoa/smartcam/internal/config"
)

// ConfigResponse is the JSON envelope returned by GET /api/v1/config.
type ConfigResponse struct {
	Config   *config.Config         `json:"config"`
	Settings []config.SettingStatus `json:"settings"` // effective value and origin of each setting
}

// handleGetConfig returns the running configuration.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ConfigResponse{
			Config:   s.cfg,
			Settings: config.Describe(s.cfg),
		},
	})
}
