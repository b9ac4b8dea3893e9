package chart

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/vector"
)

// ════════════════════════════════════════════════════════════════════
// PNG Rasteriser (ring only, no text)
// ════════════════════════════════════════════════════════════════════

// MaxScale bounds the raster resolution multiplier (Size*MaxScale pixels).
const MaxScale = 8

// ErrInvalidScale is returned for a scale outside 1..MaxScale.
var ErrInvalidScale = errors.New("raster scale out of range")

// arcStep is the angular resolution used to flatten arcs into polygons.
const arcStep = math.Pi / 180

var trackRGBA = color.NRGBA{R: 10, G: 18, B: 33, A: 26}

// RenderPNG rasterises the track and the arcs of c at Size*scale pixels
// square. Each arc is filled as an annular sector of width Stroke centred
// on Radius, matching the stroked SVG path with butt caps.
func RenderPNG(c Chart, scale int) (*image.RGBA, error) {
	if scale < 1 || scale > MaxScale {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidScale, scale, MaxScale)
	}

	px := c.Size * scale
	dst := image.NewRGBA(image.Rect(0, 0, px, px))
	z := vector.NewRasterizer(px, px)

	s := float64(scale)
	cx, cy := c.CX*s, c.CY*s
	inner := (c.Radius - c.Stroke/2) * s
	outer := (c.Radius + c.Stroke/2) * s

	fill := func(a, b float64, col color.Color) {
		z.Reset(px, px)
		ringSector(z, cx, cy, inner, outer, a, b)
		z.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
	}

	fill(-math.Pi/2, 3*math.Pi/2, trackRGBA)
	for _, a := range c.Arcs {
		if a.Span == 0 {
			continue
		}
		col, err := parseHex(a.Color)
		if err != nil {
			return nil, fmt.Errorf("arc %d %q: %w", a.Index, a.Label, err)
		}
		fill(a.Start, a.End, col)
	}
	return dst, nil
}

// EncodePNG renders c and writes it to w as PNG.
func EncodePNG(w io.Writer, c Chart, scale int) error {
	img, err := RenderPNG(c, scale)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func ringSector(z *vector.Rasterizer, cx, cy, r0, r1, a, b float64) {
	n := int(math.Ceil(math.Abs(b-a) / arcStep))
	if n < 1 {
		n = 1
	}
	pt := func(r, t float64) (float32, float32) {
		x, y := polar(cx, cy, r, t)
		return float32(x), float32(y)
	}
	at := func(i int) float64 {
		return a + (b-a)*float64(i)/float64(n)
	}

	z.MoveTo(pt(r1, a))
	for i := 1; i <= n; i++ {
		z.LineTo(pt(r1, at(i)))
	}
	for i := n; i >= 0; i-- {
		z.LineTo(pt(r0, at(i)))
	}
	z.ClosePath()
}

// parseHex decodes "#rrggbb".
func parseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("unsupported colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
