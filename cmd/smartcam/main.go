// smartcam: Smart Security Camera thesis proposal page
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/smartcam/api"
	"github.com/seenimoa/smartcam/internal/chart"
	"github.com/seenimoa/smartcam/internal/config"
	"github.com/seenimoa/smartcam/internal/content"
	"github.com/seenimoa/smartcam/internal/page"
	"github.com/seenimoa/smartcam/internal/site"
	"github.com/seenimoa/smartcam/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and page content, loaded before every command.
var (
	cfg      *config.Config
	proposal content.Page
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smartcam",
	Short: "smartcam: Smart Security Camera thesis proposal page",
	Long: `smartcam renders the Smart Security Camera thesis proposal page
(Hệ thống giám sát thông minh): a single HTML document with an inline
weighting ring chart, served over HTTP or built into a static directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		logger, err := config.NewLogger(cmd.ErrOrStderr(), cfg.Logging)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		if file, _ := cmd.Flags().GetString("content"); file != "" {
			cfg.Content.File = file
		}
		proposal, err = content.LoadOrDefault(cfg.Content.File)
		if err != nil {
			return fmt.Errorf("failed to load content: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("content", "", "page content file (default: built-in content)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "smartcam %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// --- Serve Command (HTTP Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the proposal page over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Server.Port = port
		}
		api.Version = version

		srv, err := api.NewServer(cfg, proposal)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🌐 Serving %s on http://%s\n", proposal.Title, cfg.Server.Addr())
		return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr())
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port override")
}

// --- Build Command (static site) ---

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the page and its assets to a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = cfg.Build.OutDir
		}
		withPDF, _ := cmd.Flags().GetBool("pdf")
		inline, _ := cmd.Flags().GetBool("inline-css")
		updated, err := cfg.Build.Stamp(time.Now())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if withPDF && !page.IsPDFSupported() {
			fmt.Fprintln(w, "⚠️  No PDF engine found (wkhtmltopdf or chromium); the PDF export is written as HTML")
		}

		artifacts, err := site.Build(cmd.Context(), proposal, site.Options{
			OutDir:    out,
			PNGScale:  cfg.Build.PNGScale,
			InlineCSS: inline,
			PDF:       withPDF,
			Updated:   updated,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "📦 Built %d files into %s (updated %s)\n", len(artifacts), out, utils.FormatDateICT(updated))
		for _, a := range artifacts {
			fmt.Fprintf(w, "   %-24s %s\n", a.Path, utils.FormatBytes(int64(a.Bytes)))
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().String("out", "", "output directory (default: build.out_dir)")
	buildCmd.Flags().Bool("pdf", false, "also export the page as PDF")
	buildCmd.Flags().Bool("inline-css", false, "inline the stylesheet into index.html")
}

// --- Chart Command ---

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the weighting chart",
	Long: `Print the weighting chart of the page content.

Formats:
  text  legend lines "Label: text (pct%)" (default)
  svg   the inline SVG markup
  json  the computed ring geometry`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		c := chart.Render(proposal.Chart)
		w := cmd.OutOrStdout()

		switch format {
		case "text", "":
			fmt.Fprintf(w, "%s (%s %s)\n", c.Title, c.Caption, chart.FormatValue(c.Total))
			fmt.Fprint(w, c.LegendText())
		case "svg":
			fmt.Fprintln(w, c.SVG())
		case "json":
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		default:
			return fmt.Errorf("unknown format %q (want text, svg or json)", format)
		}
		return nil
	},
}

func init() {
	chartCmd.Flags().String("format", "text", "output format: text, svg or json")
}

// --- Outline Command ---

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Print the page as a plain-text outline",
	Long: `Print every section of the page content as plain text, followed by
the thesis chapter list.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), page.GenerateText(proposal))
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show content and configuration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		now := utils.NowICT()
		fmt.Fprintln(w, "═══════════════════════════════════════")
		fmt.Fprintln(w, "  smartcam — Status")
		fmt.Fprintln(w, "═══════════════════════════════════════")
		fmt.Fprintf(w, "  Version:       %s (%s)\n", version, commit)
		fmt.Fprintf(w, "  Time (ICT):    %s\n", utils.FormatDateTimeICT(now))
		fmt.Fprintf(w, "  Today:         %s\n", utils.FormatVietnameseDate(now))
		fmt.Fprintf(w, "  PDF engine:    %s\n", page.DetectPDFEngine())
		fmt.Fprintln(w)

		// Content summary
		source := "built-in"
		if cfg.Content.File != "" {
			source, _ = filepath.Abs(cfg.Content.File)
		}
		c := chart.Render(proposal.Chart)
		fmt.Fprintln(w, "  Content:")
		fmt.Fprintf(w, "    Source:        %s\n", source)
		fmt.Fprintf(w, "    Title:         %s · %s\n", proposal.Title, proposal.Subtitle)
		fmt.Fprintf(w, "    Sections:      %d\n", len(proposal.Sections))
		for _, e := range c.Legend {
			fmt.Fprintf(w, "    %-14s %s\n", e.Label+":", utils.FormatPct(e.Percent))
		}
		fmt.Fprintln(w)

		// Settings
		fmt.Fprintln(w, "  Settings:")
		for _, s := range config.Describe(cfg) {
			fmt.Fprintf(w, "    %-22s %-24s (%s)\n", s.Key, s.Value, s.Source)
		}

		fmt.Fprintln(w, "═══════════════════════════════════════")
		return nil
	},
}
