// Package page renders the proposal page from static content: the full
// HTML document with the inline ring chart, a plain-text outline for the
// terminal, and an optional PDF export of the HTML.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/seenimoa/smartcam/internal/chart"
	"github.com/seenimoa/smartcam/internal/content"
	"github.com/seenimoa/smartcam/pkg/utils"
	"github.com/seenimoa/smartcam/web"
)

// ════════════════════════════════════════════════════════════════════
// Page Config
// ════════════════════════════════════════════════════════════════════

// Config controls page generation.
type Config struct {
	AssetBase string    // prefix for favicon and stylesheet URLs (default: "static/")
	InlineCSS bool      // embed the stylesheet in a <style> element instead of linking it
	Updated   time.Time // footer "Cập nhật" date; zero omits the line
}

// DefaultConfig links assets relative to the page, which works both for
// the HTTP server (page at "/") and for the static build.
func DefaultConfig() Config {
	return Config{AssetBase: "static/"}
}

// ════════════════════════════════════════════════════════════════════
// Page Data, flattened for template rendering
// ════════════════════════════════════════════════════════════════════

// Data is the template model passed to PageTemplate.
type Data struct {
	Lang         string
	Title        string
	Subtitle     string
	Eyebrow      string
	Intro        string
	AssetBase    string
	InlineCSS    template.CSS
	Nav          []NavLink
	CTAs         []content.Link
	SummaryTitle string
	Summary      string
	Metrics      []content.Metric
	Sections     []SectionData
	Footer       []string
	Updated      string
}

// NavLink is one top bar anchor.
type NavLink struct {
	ID    string
	Label string
}

// SectionData is one rendered section. At most one of the body fields is
// usually set, with the chart preceding the cards in the results section.
type SectionData struct {
	ID         string
	Title      string
	Hint       string
	Paragraphs []string
	Items      []string
	Cards      []Card
	Chart      *ChartData
}

// Card is a heading and text pair.
type Card struct {
	Heading string
	Text    string
}

// ChartData carries the rendered ring and its legend rows.
type ChartData struct {
	Title    string
	Subtitle string
	SVG      template.HTML
	Legend   []LegendRow
}

// LegendRow is a legend entry with a template-safe swatch colour.
type LegendRow struct {
	Color   template.CSS
	Label   string
	Text    string
	Percent int
}

var pageTmpl = template.Must(template.New("page").Parse(PageTemplate))

// ════════════════════════════════════════════════════════════════════
// Generate
// ════════════════════════════════════════════════════════════════════

// GenerateHTML renders the complete page document.
func GenerateHTML(p content.Page, cfg Config) (string, error) {
	if err := p.Validate(); err != nil {
		return "", fmt.Errorf("invalid content: %w", err)
	}

	data := BuildData(p, cfg)

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// BuildData flattens content into the template model. The chart is
// rendered fresh on every call.
func BuildData(p content.Page, cfg Config) Data {
	data := Data{
		Lang:         p.Lang,
		Title:        p.Title,
		Subtitle:     p.Subtitle,
		Eyebrow:      p.Eyebrow,
		Intro:        p.Intro,
		AssetBase:    cfg.AssetBase,
		CTAs:         p.CTAs,
		SummaryTitle: p.SummaryTitle,
		Summary:      p.Summary,
		Metrics:      p.Metrics,
		Footer:       p.Footer,
	}
	if cfg.InlineCSS {
		data.InlineCSS = template.CSS(web.Stylesheet())
	}
	if !cfg.Updated.IsZero() {
		data.Updated = utils.FormatVietnameseDate(cfg.Updated)
	}

	for _, s := range p.Sections {
		id := s.AnchorID()
		data.Nav = append(data.Nav, NavLink{ID: id, Label: s.Nav})

		sd := SectionData{ID: id, Title: s.Title, Hint: s.Hint}
		switch s.Body {
		case content.BodyIntro:
			sd.Paragraphs = []string{p.Intro}
		case content.BodyGoals:
			sd.Items = p.Goals
		case content.BodyScope:
			sd.Items = p.Scope
		case content.BodyMethods:
			sd.Items = p.Methods
		case content.BodyResults:
			sd.Chart = buildChartData(chart.Render(p.Chart))
			for _, r := range p.ExpectedResults {
				sd.Cards = append(sd.Cards, Card{Heading: content.CardHeading(r), Text: r})
			}
		case content.BodySignificance:
			sd.Cards = []Card{
				{Heading: "Khoa học", Text: p.Significance.Science},
				{Heading: "Thực tiễn", Text: p.Significance.Practice},
			}
		}
		data.Sections = append(data.Sections, sd)
	}
	return data
}

func buildChartData(c chart.Chart) *ChartData {
	cd := &ChartData{
		Title:    c.Title,
		Subtitle: c.Subtitle,
		SVG:      template.HTML(c.SVG()),
		Legend:   make([]LegendRow, len(c.Legend)),
	}
	for i, e := range c.Legend {
		cd.Legend[i] = LegendRow{
			Color:   template.CSS(e.Color),
			Label:   e.Label,
			Text:    e.Text,
			Percent: e.Percent,
		}
	}
	return cd
}

// ════════════════════════════════════════════════════════════════════
// Plain-text renderer
// ════════════════════════════════════════════════════════════════════

// GenerateText renders a terminal outline of the page, including the
// thesis chapter list which the HTML page does not show.
func GenerateText(p content.Page) string {
	var sb strings.Builder
	line := strings.Repeat("═", 60)
	thinLine := strings.Repeat("─", 60)

	sb.WriteString("\n" + line + "\n")
	sb.WriteString(fmt.Sprintf("  %s · %s\n", p.Title, p.Subtitle))
	sb.WriteString(line + "\n\n")

	writeList := func(items []string) {
		for _, it := range items {
			sb.WriteString(fmt.Sprintf("    • %s\n", it))
		}
	}

	for _, s := range p.Sections {
		sb.WriteString(fmt.Sprintf("  ■ %s  [#%s]\n", s.Title, s.AnchorID()))
		switch s.Body {
		case content.BodyIntro:
			sb.WriteString(fmt.Sprintf("    %s\n", p.Intro))
		case content.BodyGoals:
			writeList(p.Goals)
		case content.BodyScope:
			writeList(p.Scope)
		case content.BodyMethods:
			writeList(p.Methods)
		case content.BodyResults:
			c := chart.Render(p.Chart)
			sb.WriteString(fmt.Sprintf("    %s (%s %s)\n", c.Title, c.Caption, chart.FormatValue(c.Total)))
			for _, l := range strings.Split(strings.TrimSuffix(c.LegendText(), "\n"), "\n") {
				if l != "" {
					sb.WriteString("      " + l + "\n")
				}
			}
			writeList(p.ExpectedResults)
		case content.BodySignificance:
			sb.WriteString(fmt.Sprintf("    Khoa học: %s\n", p.Significance.Science))
			sb.WriteString(fmt.Sprintf("    Thực tiễn: %s\n", p.Significance.Practice))
		}
		sb.WriteString(thinLine + "\n")
	}

	if len(p.ThesisContent) > 0 {
		sb.WriteString("  ■ Nội dung luận văn\n")
		writeList(p.ThesisContent)
	}

	sb.WriteString("\n" + line + "\n")
	for _, f := range p.Footer {
		sb.WriteString(fmt.Sprintf("  %s\n", f))
	}
	sb.WriteString(line + "\n")
	return sb.String()
}
