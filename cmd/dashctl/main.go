package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/layout"
	"github.com/GregMSThompson/serrano-dashboard/pkg/logger"
)

type app struct {
	apiURL    string
	token     string
	layoutDir string
	logLevel  string
	timeout   time.Duration

	out io.Writer
	log *slog.Logger
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:          "dashctl",
		Short:        "Inspect and compose the Serrano dashboard from the terminal",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.log = logger.New(a.logLevel, logger.NewConsoleHandler)
			cmd.SetContext(logger.ToContext(cmd.Context(), a.log))
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api", envOr("DASHCTL_API", "http://localhost:8080"), "dashboard API base URL")
	flags.StringVar(&a.token, "token", os.Getenv("DASHCTL_TOKEN"), "bearer token for the API")
	flags.StringVar(&a.layoutDir, "layout-file", defaultLayoutDir(), "directory holding the persisted layout")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.DurationVar(&a.timeout, "timeout", 15*time.Second, "per-request timeout")

	root.AddCommand(
		newCatalogCmd(a),
		newLayoutCmd(a),
		newRenderCmd(a),
	)
	return root
}

func (a *app) layoutStore() *layout.Store {
	return layout.NewStore(catalog.Default(), layout.NewFilePersister(a.layoutDir))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultLayoutDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".dashctl"
	}
	return filepath.Join(dir, "serrano-dashboard")
}
