// Package content holds the static data of the proposal page: section
// metadata, text lists, quick-summary metrics and the weighting chart.
// Nothing here computes; the page package turns it into markup.
package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seenimoa/smartcam/internal/chart"
)

// Body identifies which block of Page a section renders.
type Body string

const (
	BodyIntro        Body = "intro"
	BodyGoals        Body = "goals"
	BodyScope        Body = "scope"
	BodyMethods      Body = "methods"
	BodyResults      Body = "results"
	BodySignificance Body = "significance"
)

// Bodies returns all section bodies in display order.
func Bodies() []Body {
	return []Body{BodyIntro, BodyGoals, BodyScope, BodyMethods, BodyResults, BodySignificance}
}

func (b Body) valid() bool {
	for _, k := range Bodies() {
		if b == k {
			return true
		}
	}
	return false
}

// Section is one navigable block of the page.
type Section struct {
	ID    string `mapstructure:"id"    json:"id"`    // anchor; derived from Nav when empty
	Nav   string `mapstructure:"nav"   json:"nav"`   // top bar link text
	Title string `mapstructure:"title" json:"title"` // heading, may carry an emoji
	Hint  string `mapstructure:"hint"  json:"hint,omitempty"`
	Body  Body   `mapstructure:"body"  json:"body"`
}

// Link is an in-page call to action.
type Link struct {
	Label   string `mapstructure:"label"   json:"label"`
	Href    string `mapstructure:"href"    json:"href"`
	Primary bool   `mapstructure:"primary" json:"primary,omitempty"`
}

// Metric is one cell of the quick-summary grid.
type Metric struct {
	Label string `mapstructure:"label" json:"label"`
	Value string `mapstructure:"value" json:"value"`
}

// Significance splits the contribution into science and practice.
type Significance struct {
	Science  string `mapstructure:"science"  json:"science"`
	Practice string `mapstructure:"practice" json:"practice"`
}

// Page is the complete content of the proposal page.
type Page struct {
	Lang            string       `mapstructure:"lang"             json:"lang"`
	Title           string       `mapstructure:"title"            json:"title"`
	Subtitle        string       `mapstructure:"subtitle"         json:"subtitle"`
	Eyebrow         string       `mapstructure:"eyebrow"          json:"eyebrow"`
	Intro           string       `mapstructure:"intro"            json:"intro"`
	Goals           []string     `mapstructure:"goals"            json:"goals"`
	Scope           []string     `mapstructure:"scope"            json:"scope"`
	Methods         []string     `mapstructure:"methods"          json:"methods"`
	ExpectedResults []string     `mapstructure:"expected_results" json:"expected_results"`
	Significance    Significance `mapstructure:"significance"     json:"significance"`
	ThesisContent   []string     `mapstructure:"thesis_content"   json:"thesis_content"`
	CTAs            []Link       `mapstructure:"ctas"             json:"ctas"`
	SummaryTitle    string       `mapstructure:"summary_title"    json:"summary_title"`
	Summary         string       `mapstructure:"summary"          json:"summary"`
	Metrics         []Metric     `mapstructure:"metrics"          json:"metrics"`
	Sections        []Section    `mapstructure:"sections"         json:"sections"`
	Chart           chart.Spec   `mapstructure:"chart"            json:"chart"`
	Footer          []string     `mapstructure:"footer"           json:"footer"`
}

// ErrInvalidSection is returned by Validate for a malformed section list.
var ErrInvalidSection = errors.New("invalid section")

// Validate checks section anchors and bodies, then the chart segments.
func (p Page) Validate() error {
	seen := make(map[string]bool, len(p.Sections))
	for i, s := range p.Sections {
		id := s.AnchorID()
		if id == "" {
			return fmt.Errorf("%w: section %d has no id or nav label", ErrInvalidSection, i)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidSection, id)
		}
		seen[id] = true
		if !s.Body.valid() {
			return fmt.Errorf("%w: section %q has unknown body %q", ErrInvalidSection, id, s.Body)
		}
	}
	if err := p.Chart.Validate(); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	return nil
}

// AnchorID returns the explicit ID or the slug of the nav label.
func (s Section) AnchorID() string {
	if s.ID != "" {
		return s.ID
	}
	return Slug(s.Nav)
}

// CardHeading returns the text before the first comma, used as the heading
// of an expected-result card.
func CardHeading(s string) string {
	head, _, _ := strings.Cut(s, ",")
	return head
}
