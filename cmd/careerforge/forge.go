package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/careerforge/internal/forge"
	"github.com/amishk599/careerforge/internal/ui"
)

var forgeCmd = &cobra.Command{
	Use:   "forge",
	Short: "Open the interactive analysis screen (TUI)",
	Long:  "Select and upload a resume, paste a job description, run the analysis and view the roadmap.",
	RunE:  runForge,
}

func init() {
	rootCmd.AddCommand(forgeCmd)
}

func runForge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Anything written to stdout once the alt screen is up corrupts the display.
	logger, closeLog, err := setupFileLogger(cfg, debug)
	if err != nil {
		return err
	}
	defer closeLog()

	journal, closeJournal, err := setupJournal(cfg, logger)
	if err != nil {
		logger.Error("failed to open run history", "error", err)
		return fmt.Errorf("opening run history: %w", err)
	}
	defer closeJournal()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	logger.Info("starting tui", "backend", cfg.Backend.BaseURL, "history", cfg.History.Enabled)
	session := forge.NewSession(setupClient(cfg), journal, logger)
	if err := ui.Run(ctx, session, logger); err != nil {
		return err
	}
	logger.Info("goodbye")
	return nil
}
