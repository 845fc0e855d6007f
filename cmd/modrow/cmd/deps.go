package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/barysiuk/modrow/internal/core"
	"github.com/barysiuk/modrow/internal/modrinth"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// deps holds shared dependencies for CLI commands.
type deps struct {
	config   *core.ConfigManager
	settings core.Settings
	logger   *log.Logger
	http     *http.Client
}

// newDeps creates shared dependencies. Called lazily by commands that need them.
func newDeps(cmd *cobra.Command) (*deps, error) {
	config, err := core.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settings := cfg.Settings
	if err := settings.ApplyEnv(); err != nil {
		return nil, err
	}

	timeout, err := settings.Timeout()
	if err != nil {
		return nil, err
	}

	return &deps{
		config:   config,
		settings: settings,
		logger:   newLogger(cmd, os.Stderr),
		http:     &http.Client{Timeout: timeout},
	}, nil
}

// newLogger builds the stderr logger, honoring --verbose and --quiet.
func newLogger(cmd *cobra.Command, w io.Writer) *log.Logger {
	level := log.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = log.DebugLevel
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = log.ErrorLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "modrow",
		Level:  level,
	})
}

// catalog returns a Modrinth client configured from settings.
func (d *deps) catalog() *modrinth.Client {
	return modrinth.New(modrinth.Options{
		BaseURL:    d.settings.APIBaseURL,
		HTTPClient: d.http,
		UserAgent:  d.settings.UserAgent,
		Logger:     d.logger,
	})
}

// reconciler wires the catalog and fetcher into a Reconciler.
func (d *deps) reconciler(opts core.ReconcilerOptions) *core.Reconciler {
	if opts.Workers == 0 {
		opts.Workers = d.settings.Workers
	}
	if opts.Logger == nil {
		opts.Logger = d.logger
	}
	fetcher := core.NewHTTPFetcher(d.http, d.settings.UserAgent)
	return core.NewReconciler(d.catalog(), fetcher, opts)
}
