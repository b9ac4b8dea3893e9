package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"github.com/seenimoa/smartcam/internal/chart"
	"github.com/seenimoa/smartcam/internal/config"
	"github.com/seenimoa/smartcam/internal/content"
	"github.com/seenimoa/smartcam/internal/export"
	"github.com/seenimoa/smartcam/internal/infra"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        8080,
			CORSOrigins: []string{"http://localhost:5173"},
		},
		Build:   config.BuildConfig{OutDir: "dist", PNGScale: 2},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(testConfig(), content.Default())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func do(t *testing.T, srv *Server, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

// decodeData re-decodes resp.Data into v.
func decodeData(t *testing.T, resp APIResponse, v interface{}) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
}

// ════════════════════════════════════════════════════════════════════
// Construction
// ════════════════════════════════════════════════════════════════════

func TestNewServerRejectsInvalidContent(t *testing.T) {
	p := content.Default()
	p.Chart.Segments = append(p.Chart.Segments, chart.Segment{Label: "Accuracy", Value: 1})
	if _, err := NewServer(testConfig(), p); err == nil {
		t.Error("expected error for duplicate segment label")
	}
}

// ════════════════════════════════════════════════════════════════════
// Health
// ════════════════════════════════════════════════════════════════════

func TestHealth(t *testing.T) {
	srv := testServer(t)
	for _, path := range []string{"/health", "/api/v1/health"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, path, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", rec.Code)
			}
			resp := decodeResponse(t, rec)
			if !resp.Success {
				t.Fatal("expected success")
			}
			var info HealthInfo
			decodeData(t, resp, &info)
			if info.Status != "ok" || info.Version != Version {
				t.Errorf("unexpected health: %+v", info)
			}
			if info.Sections != 6 || info.Segments != 3 {
				t.Errorf("content counts: %d sections, %d segments", info.Sections, info.Segments)
			}
			if !strings.HasSuffix(info.TimeICT, " ICT") {
				t.Errorf("time_ict: got %q", info.TimeICT)
			}
		})
	}
}

// ════════════════════════════════════════════════════════════════════
// Page
// ════════════════════════════════════════════════════════════════════

func TestPage(t *testing.T) {
	srv := testServer(t)
	rec := do(t, srv, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type: got %q", ct)
	}

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if href, _ := doc.Find("link[rel=stylesheet]").Attr("href"); href != "/static/app.css" {
		t.Errorf("stylesheet href: got %q", href)
	}
	if n := doc.Find("section#ket-qua svg path").Length(); n != 3 {
		t.Errorf("chart arcs: got %d, want 3", n)
	}
}

func TestPageInlineCSS(t *testing.T) {
	srv := testServer(t)
	rec := do(t, srv, http.MethodGet, "/?inline=1", "")
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Find("link[rel=stylesheet]").Length() != 0 || doc.Find("head style").Length() != 1 {
		t.Error("inline=1 should embed the stylesheet")
	}
}

func TestPageStaticAssetsResolve(t *testing.T) {
	srv := testServer(t)
	for _, path := range []string{"/static/app.css", "/static/favicon.svg"} {
		rec := do(t, srv, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: got %d, want 200", path, rec.Code)
		}
		if rec.Body.Len() == 0 {
			t.Errorf("%s: empty body", path)
		}
	}
	if rec := do(t, srv, http.MethodGet, "/static/missing.js", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing asset: got %d, want 404", rec.Code)
	}
}

// ════════════════════════════════════════════════════════════════════
// Chart artifacts
// ════════════════════════════════════════════════════════════════════

func TestChartSVG(t *testing.T) {
	srv := testServer(t)
	rec := do(t, srv, http.MethodGet, "/chart.svg", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type: got %q", ct)
	}
	if want := chart.Render(content.Default().Chart).SVG(); rec.Body.String() != want {
		t.Error("served SVG differs from rendered chart")
	}
}

func TestChartPNG(t *testing.T) {
	srv := testServer(t)
	tests := []struct {
		query string
		size  int
	}{
		{"", chart.Size},
		{"?scale=1", chart.Size},
		{"?scale=3", chart.Size * 3},
	}
	for _, tt := range tests {
		t.Run("scale"+tt.query, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/chart.png"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d", rec.Code)
			}
			cfg, err := png.DecodeConfig(rec.Body)
			if err != nil {
				t.Fatalf("DecodeConfig: %v", err)
			}
			if cfg.Width != tt.size || cfg.Height != tt.size {
				t.Errorf("size: got %dx%d, want %d", cfg.Width, cfg.Height, tt.size)
			}
		})
	}
}

func TestChartPNGBadScale(t *testing.T) {
	srv := testServer(t)
	for _, q := range []string{"0", "9", "two", "-1"} {
		rec := do(t, srv, http.MethodGet, "/chart.png?scale="+q, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("scale=%s: got %d, want 400", q, rec.Code)
			continue
		}
		if resp := decodeResponse(t, rec); resp.Success || resp.Error == "" {
			t.Errorf("scale=%s: expected error envelope", q)
		}
	}
}

func TestWorkbook(t *testing.T) {
	srv := testServer(t)
	rec := do(t, srv, http.MethodGet, "/weights.xlsx", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "weights.xlsx") {
		t.Errorf("content disposition: got %q", cd)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue(export.SheetName, "A2"); v != "Accuracy" {
		t.Errorf("A2: got %q", v)
	}
}

// ════════════════════════════════════════════════════════════════════
// JSON API
// ════════════════════════════════════════════════════════════════════

func TestGetChart(t *testing.T) {
	srv := testServer(t)
	rec := do(t, srv, http.MethodGet, "/api/v1/chart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var c chart.Chart
	decodeData(t, decodeResponse(t, rec), &c)

	if c.Total != 100 || len(c.Arcs) != 3 {
		t.Fatalf("chart: total=%v arcs=%d", c.Total, len(c.Arcs))
	}
	if c.Legend[0].Percent != 55 || c.Legend[0].Text != "Ưu tiên" {
		t.Errorf("legend[0]: %+v", c.Legend[0])
	}
	if c.Arcs[0].LargeArc != 1 || c.Arcs[1].LargeArc != 0 {
		t.Errorf("large arc flags: %d, %d", c.Arcs[0].LargeArc, c.Arcs[1].LargeArc)
	}
}

func TestPostChart(t *testing.T) {
	srv := testServer(t)
	body := `{"title":"Custom","segments":[{"label":"A","value":1},{"label":"B","value":3}]}`
	rec := do(t, srv, http.MethodPost, "/api/v1/chart", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var c chart.Chart
	decodeData(t, decodeResponse(t, rec), &c)
	if c.Title != "Custom" || c.Total != 4 {
		t.Errorf("chart: %+v", c)
	}
	if c.Legend[0].Percent != 25 || c.Legend[1].Percent != 75 {
		t.Errorf("percents: %d, %d", c.Legend[0].Percent, c.Legend[1].Percent)
	}
}

func TestPostChartRejects(t *testing.T) {
	srv := testServer(t)
	tests := []struct {
		name, body string
	}{
		{"malformed", `{"segments":`},
		{"unknown field", `{"segments":[],"colour":"red"}`},
		{"negative", `{"segments":[{"label":"A","value":-1}]}`},
		{"duplicate", `{"segments":[{"label":"A","value":1},{"label":"A","value":2}]}`},
		{"empty label", `{"segments":[{"label":"","value":1}]}`},
		{"overflowing total", `{"segments":[{"label":"a","value":1e308},{"label":"b","value":1e308}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/v1/chart", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
			if resp := decodeResponse(t, rec); resp.Success {
				t.Error("expected failure envelope")
			}
		})
	}
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, APIResponse{Success: true, Data: math.Inf(1)})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Success || resp.Error == "" {
		t.Errorf("expected failure envelope, got %+v", resp)
	}
}

func TestPageFooterDate(t *testing.T) {
	cfg := testConfig()
	cfg.Build.Date = "2026-03-05"
	srv, err := NewServer(cfg, content.Default())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	rec := do(t, srv, http.MethodGet, "/", "")
	if !strings.Contains(rec.Body.String(), "Cập nhật ngày 5 tháng 3 năm 2026") {
		t.Error("page footer should carry build.date")
	}

	cfg.Build.Date = "5/3/2026"
	if _, err := NewServer(cfg, content.Default()); err == nil {
		t.Error("expected error for malformed build.date")
	}
}

func TestSweepRendersDropsExpired(t *testing.T) {
	srv := testServer(t)
	srv.renders = infra.NewCache[string, []byte](time.Millisecond)
	srv.renders.Set("png@1", []byte("x"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.sweepRenders(ctx, 5*time.Millisecond)
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep did not stop on cancel")
	}
	if n := srv.renders.Cleanup(); n != 0 {
		t.Errorf("sweep left %d expired entries", n)
	}
}

func TestPostChartRateLimited(t *testing.T) {
	srv := testServer(t)
	body := `{"segments":[{"label":"A","value":1}]}`
	for i := 0; i < renderBurst; i++ {
		if rec := do(t, srv, http.MethodPost, "/api/v1/chart", body); rec.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i, rec.Code)
		}
	}
	rec := do(t, srv, http.MethodPost, "/api/v1/chart", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("over burst: got %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRenderedArtifactsCached(t *testing.T) {
	srv := testServer(t)
	first := do(t, srv, http.MethodGet, "/chart.png?scale=2", "")
	second := do(t, srv, http.MethodGet, "/chart.png?scale=2", "")
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached PNG differs from first render")
	}
	do(t, srv, http.MethodGet, "/weights.xlsx", "")
	if n := srv.renders.Len(); n != 2 {
		t.Errorf("cache entries: got %d, want 2", n)
	}
}

func TestGetContent(t *testing.T) {
	srv := testServer(t)
	rec := do(t, srv, http.MethodGet, "/api/v1/content", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var p content.Page
	decodeData(t, decodeResponse(t, rec), &p)
	if p.Title != "Smart Security Camera" || len(p.Sections) != 6 {
		t.Errorf("content: title=%q sections=%d", p.Title, len(p.Sections))
	}
}

func TestGetConfig(t *testing.T) {
	srv := testServer(t)
	rec := do(t, srv, http.MethodGet, "/api/v1/config", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var cr struct {
		Config   config.Config          `json:"config"`
		Settings []config.SettingStatus `json:"settings"`
	}
	decodeData(t, decodeResponse(t, rec), &cr)
	if cr.Config.Server.Host != "127.0.0.1" {
		t.Errorf("server host: got %q", cr.Config.Server.Host)
	}
	if len(cr.Settings) == 0 {
		t.Error("expected setting statuses")
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/chart", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin: got %q", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := testServer(t)
	if rec := do(t, srv, http.MethodGet, "/api/v1/quote/RELIANCE", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

// ════════════════════════════════════════════════════════════════════
// Lifecycle
// ════════════════════════════════════════════════════════════════════

func TestListenAndServeShutsDownOnCancel(t *testing.T) {
	srv := testServer(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, addr) }()

	// Wait for the listener to come up.
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/health")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
