// Package chart renders the weighted ring ("donut") chart shown on the
// proposal page. The geometry is fixed; only the segment weights vary.
// Rendering is a pure function of its input: the same Spec always yields the
// same Chart, SVG markup and raster.
package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ════════════════════════════════════════════════════════════════════
// Geometry & Palette
// ════════════════════════════════════════════════════════════════════

const (
	Size   = 220  // bounding square, in SVG user units
	Radius = 84.0 // ring radius
	Stroke = 22.0 // ring thickness

	// DefaultCaption is the label drawn above the total in the ring centre.
	DefaultCaption = "Tổng"

	// TrackColor is the neutral ring drawn beneath all arcs.
	TrackColor = "rgba(10,18,33,0.10)"

	captionColor = "rgba(10,18,33,0.66)"
	totalColor   = "rgba(10,18,33,0.86)"
)

// Palette is cycled across segments by index.
var Palette = []string{"#34d399", "#60a5fa", "#a78bfa", "#f59e0b", "#f87171"}

// Color returns the palette colour for the segment at index i.
func Color(i int) string {
	n := len(Palette)
	return Palette[((i%n)+n)%n]
}

// ════════════════════════════════════════════════════════════════════
// Input
// ════════════════════════════════════════════════════════════════════

// Segment is one weighted slice of the chart.
type Segment struct {
	Label   string  `mapstructure:"label"   json:"label"`
	Value   float64 `mapstructure:"value"   json:"value"`
	Display string  `mapstructure:"display" json:"display,omitempty"` // legend override; empty shows Value
}

// Spec is one chart invocation. Segment order is draw order.
type Spec struct {
	Title    string    `mapstructure:"title"    json:"title"`
	Subtitle string    `mapstructure:"subtitle" json:"subtitle,omitempty"`
	Caption  string    `mapstructure:"caption"  json:"caption,omitempty"`
	Segments []Segment `mapstructure:"segments" json:"segments"`
}

// ════════════════════════════════════════════════════════════════════
// Output
// ════════════════════════════════════════════════════════════════════

// Arc is the rendered geometry of one segment. Angles are in radians,
// measured clockwise from the positive x axis in SVG coordinates, so the
// first arc starts at -π/2 (12 o'clock).
type Arc struct {
	Index    int     `json:"index"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Span     float64 `json:"span"`
	LargeArc int     `json:"large_arc"`
	Color    string  `json:"color"`
	Path     string  `json:"path"`
}

// SpanDegrees returns the arc span in degrees.
func (a Arc) SpanDegrees() float64 {
	return a.Span * 180 / math.Pi
}

// LegendEntry pairs a segment with its swatch colour and rounded share.
type LegendEntry struct {
	Label   string `json:"label"`
	Text    string `json:"text"`
	Percent int    `json:"percent"`
	Color   string `json:"color"`
}

// Chart is the output of Render.
type Chart struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	Caption  string        `json:"caption"`
	Size     int           `json:"size"`
	CX       float64       `json:"cx"`
	CY       float64       `json:"cy"`
	Radius   float64       `json:"radius"`
	Stroke   float64       `json:"stroke"`
	Total    float64       `json:"total"`   // raw sum, as displayed
	Divisor  float64       `json:"divisor"` // Total, or 1 when Total is zero
	Arcs     []Arc         `json:"arcs"`
	Legend   []LegendEntry `json:"legend"`
}

// ════════════════════════════════════════════════════════════════════
// Render
// ════════════════════════════════════════════════════════════════════

// Render computes the ring geometry and legend for spec. It never fails:
// an empty or all-zero spec yields zero-length arcs over the track.
// Negative or non-finite values are not rejected here; call
// Spec.Validate first.
func Render(spec Spec) Chart {
	c := Chart{
		Title:    spec.Title,
		Subtitle: spec.Subtitle,
		Caption:  spec.Caption,
		Size:     Size,
		CX:       float64(Size) / 2,
		CY:       float64(Size) / 2,
		Radius:   Radius,
		Stroke:   Stroke,
		Arcs:     make([]Arc, 0, len(spec.Segments)),
		Legend:   make([]LegendEntry, 0, len(spec.Segments)),
	}
	if c.Caption == "" {
		c.Caption = DefaultCaption
	}

	for _, s := range spec.Segments {
		c.Total += s.Value
	}
	c.Divisor = c.Total
	if c.Divisor == 0 {
		c.Divisor = 1
	}

	start := -math.Pi / 2
	for i, s := range spec.Segments {
		frac := s.Value / c.Divisor
		end := start + frac*2*math.Pi
		color := Color(i)

		c.Arcs = append(c.Arcs, Arc{
			Index:    i,
			Label:    s.Label,
			Value:    s.Value,
			Start:    start,
			End:      end,
			Span:     end - start,
			LargeArc: largeArcFlag(start, end),
			Color:    color,
			Path:     arcPath(c.CX, c.CY, c.Radius, start, end),
		})
		// Each share is rounded on its own; they may not add up to 100.
		c.Legend = append(c.Legend, LegendEntry{
			Label:   s.Label,
			Text:    s.legendText(),
			Percent: int(math.Round(frac * 100)),
			Color:   color,
		})

		start = end
	}
	return c
}

func (s Segment) legendText() string {
	if s.Display != "" {
		return s.Display
	}
	return FormatValue(s.Value)
}

func largeArcFlag(a, b float64) int {
	if b-a > math.Pi {
		return 1
	}
	return 0
}

// arcPath draws the arc from angle a to b. An SVG arc whose endpoints
// coincide after rounding draws nothing, so a span that closes the
// circle at path precision is split in two at the opposite point.
func arcPath(cx, cy, r, a, b float64) string {
	x1, y1 := polar(cx, cy, r, a)
	x2, y2 := polar(cx, cy, r, b)
	sx1, sy1, sx2, sy2 := coord(x1), coord(y1), coord(x2), coord(y2)
	rs := coord(r)

	if b-a > math.Pi && sx1 == sx2 && sy1 == sy2 {
		xm, ym := polar(cx, cy, r, a+math.Pi)
		return fmt.Sprintf("M %s %s A %s %s 0 0 1 %s %s A %s %s 0 0 1 %s %s",
			sx1, sy1, rs, rs, coord(xm), coord(ym), rs, rs, sx2, sy2)
	}
	return fmt.Sprintf("M %s %s A %s %s 0 %d 1 %s %s",
		sx1, sy1, rs, rs, largeArcFlag(a, b), sx2, sy2)
}

func polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

// coord renders a path coordinate with at most two decimals.
func coord(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatValue renders a number in its shortest decimal form (55, 0.5, 12.25).
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ════════════════════════════════════════════════════════════════════
// SVG
// ════════════════════════════════════════════════════════════════════

// SVG returns the ring as a standalone <svg> element: the background track,
// one path per arc in input order, and the centred caption and total.
func (c Chart) SVG() string {
	var sb strings.Builder
	size := strconv.Itoa(c.Size)
	cx, cy := coord(c.CX), coord(c.CY)
	r, sw := coord(c.Radius), coord(c.Stroke)

	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" role="img" aria-label="%s" style="max-width:100%%">`,
		size, size, size, size, escapeXML(c.Title))
	fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`,
		cx, cy, r, TrackColor, sw)

	for _, a := range c.Arcs {
		fmt.Fprintf(&sb, `<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="butt" data-label="%s"/>`,
			a.Path, a.Color, sw, escapeXML(a.Label))
	}

	fmt.Fprintf(&sb, `<text x="%s" y="%s" text-anchor="middle" font-size="13" fill="%s">%s</text>`,
		cx, coord(c.CY-2), captionColor, escapeXML(c.Caption))
	fmt.Fprintf(&sb, `<text x="%s" y="%s" text-anchor="middle" font-size="20" font-weight="800" fill="%s">%s</text>`,
		cx, coord(c.CY+18), totalColor, FormatValue(c.Total))

	sb.WriteString("</svg>")
	return sb.String()
}

// LegendText renders the legend as one "Label: text (pct%)" line per entry.
func (c Chart) LegendText() string {
	var sb strings.Builder
	for _, e := range c.Legend {
		fmt.Fprintf(&sb, "%s: %s (%d%%)\n", e.Label, e.Text, e.Percent)
	}
	return sb.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
