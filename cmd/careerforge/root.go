package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/careerforge/internal/backend"
	"github.com/amishk599/careerforge/internal/config"
	"github.com/amishk599/careerforge/internal/history"
	"github.com/amishk599/careerforge/internal/model"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "careerforge",
	Short: "Resume vs. job description analysis in your terminal",
	Long:  "CareerForge uploads your resume, scores it against a job description and builds a roadmap to close the gaps.",
	// Default to `forge` so that `careerforge` with no args opens the TUI.
	RunE:         runForge,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: CAREERFORGE_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > CAREERFORGE_CONFIG env var > "./config.yaml".
// Only the implicit default may be missing.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if env := os.Getenv("CAREERFORGE_CONFIG"); env != "" {
		return config.Load(env)
	}
	return config.LoadOptional("config.yaml")
}

func logLevel(cfg *config.Config, dbg bool) slog.Level {
	if dbg {
		return slog.LevelDebug
	}
	if cfg != nil {
		return cfg.Log.Level
	}
	return slog.LevelInfo
}

func setupLogger(cfg *config.Config, dbg bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg, dbg)}))
}

// setupFileLogger is used while a full-screen TUI owns stdout. Logs go to
// log.file, or nowhere when it is unset.
func setupFileLogger(cfg *config.Config, dbg bool) (*slog.Logger, func() error, error) {
	if cfg.Log.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel(cfg, dbg)})), f.Close, nil
}

func setupClient(cfg *config.Config) *backend.Client {
	httpClient := &http.Client{Timeout: cfg.Backend.Timeout}
	return backend.NewClient(cfg.Backend.BaseURL, httpClient)
}

// setupJournal opens the run history, or a no-op journal when history is
// disabled. Old runs are pruned according to history.retention.
func setupJournal(cfg *config.Config, logger *slog.Logger) (model.Journal, func() error, error) {
	if !cfg.History.Enabled {
		return history.NewNopJournal(), func() error { return nil }, nil
	}

	j, err := history.NewSQLiteJournal(cfg.History.Path)
	if err != nil {
		return nil, nil, err
	}
	if cfg.History.Retention > 0 {
		if err := j.Cleanup(cfg.History.Retention); err != nil {
			logger.Warn("failed to prune run history", "error", err)
		}
	}
	return j, j.Close, nil
}
