// Package site writes the static build of the proposal page: the HTML
// document, its chart in SVG and PNG form, the weights workbook and the
// embedded static assets.
package site

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/smartcam/internal/chart"
	"github.com/seenimoa/smartcam/internal/content"
	"github.com/seenimoa/smartcam/internal/export"
	"github.com/seenimoa/smartcam/internal/page"
	"github.com/seenimoa/smartcam/pkg/utils"
	"github.com/seenimoa/smartcam/web"
)

// Output file names, relative to Options.OutDir.
const (
	IndexFile    = "index.html"
	SVGFile      = "chart.svg"
	PNGFile      = "chart.png"
	WorkbookFile = "weights.xlsx"
	PDFFile      = "proposal.pdf"
	StaticDir    = "static"
)

// Options controls a static build.
type Options struct {
	OutDir    string // required
	PNGScale  int    // default: 2
	InlineCSS bool   // inline the stylesheet into index.html
	PDF       bool   // also export the page as PDF (HTML fallback without an engine)

	// Updated is the footer date of the page; zero omits it.
	Updated time.Time
}

// Artifact is one file written by Build.
type Artifact struct {
	Path  string `json:"path"` // relative to OutDir
	Bytes int    `json:"bytes"`
}

// Build renders the page and writes every artifact concurrently. The
// returned artifacts are sorted by path. If any artifact fails, the files
// already written by this build are removed; directories are left in place.
func Build(ctx context.Context, p content.Page, opts Options) ([]Artifact, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.PNGScale == 0 {
		opts.PNGScale = 2
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	c := chart.Render(p.Chart)

	var (
		mu        sync.Mutex
		artifacts []Artifact
	)
	record := func(rel string, n int) {
		mu.Lock()
		artifacts = append(artifacts, Artifact{Path: rel, Bytes: n})
		mu.Unlock()
		slog.Debug("site: artifact written", "path", rel, "bytes", n)
	}
	write := func(rel string, data []byte) error {
		path := filepath.Join(opts.OutDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
		record(rel, len(data))
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		html, err := page.GenerateHTML(p, page.Config{AssetBase: StaticDir + "/", InlineCSS: opts.InlineCSS, Updated: opts.Updated})
		if err != nil {
			return err
		}
		if err := page.CheckAnchors(html); err != nil {
			return fmt.Errorf("%s: %w", IndexFile, err)
		}
		return write(IndexFile, []byte(html))
	})

	g.Go(func() error {
		return write(SVGFile, []byte(c.SVG()))
	})

	g.Go(func() error {
		var buf bytes.Buffer
		if err := chart.EncodePNG(&buf, c, opts.PNGScale); err != nil {
			return fmt.Errorf("encoding %s: %w", PNGFile, err)
		}
		return write(PNGFile, buf.Bytes())
	})

	g.Go(func() error {
		var buf bytes.Buffer
		if err := export.WriteWorkbook(&buf, c); err != nil {
			return err
		}
		return write(WorkbookFile, buf.Bytes())
	})

	g.Go(func() error {
		return copyStatic(gctx, web.StaticFS(), write)
	})

	if opts.PDF {
		g.Go(func() error {
			html, err := page.GenerateHTML(p, page.Config{InlineCSS: true, Updated: opts.Updated})
			if err != nil {
				return err
			}
			cfg := page.DefaultPDFConfig()
			cfg.OutputPath = filepath.Join(opts.OutDir, PDFFile)
			out, err := page.GeneratePDF(gctx, html, cfg)
			if err != nil {
				return err
			}
			rel, _ := filepath.Rel(opts.OutDir, out)
			info, err := os.Stat(out)
			if err != nil {
				return err
			}
			if rel != PDFFile {
				slog.Warn("site: no PDF engine found, wrote HTML instead", "path", rel)
			}
			record(rel, int(info.Size()))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		removeArtifacts(opts.OutDir, artifacts)
		return nil, err
	}

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Path < artifacts[j].Path })
	attrs := []any{"dir", opts.OutDir, "artifacts", len(artifacts)}
	if !opts.Updated.IsZero() {
		attrs = append(attrs, "updated", utils.FormatDateICT(opts.Updated))
	}
	slog.Info("site: build complete", attrs...)
	return artifacts, nil
}

func removeArtifacts(dir string, artifacts []Artifact) {
	for _, a := range artifacts {
		if err := os.Remove(filepath.Join(dir, a.Path)); err != nil && !os.IsNotExist(err) {
			slog.Warn("site: could not remove partial artifact", "path", a.Path, "error", err)
		}
	}
}

func copyStatic(ctx context.Context, fsys fs.FS, write func(string, []byte) error) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		return write(filepath.Join(StaticDir, filepath.FromSlash(path)), data)
	})
}
