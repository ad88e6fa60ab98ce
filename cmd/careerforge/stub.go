package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/careerforge/internal/stub"
)

var stubAddr string

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a stand-in backend with canned responses",
	Long:  "Serves /upload-resume, /analyze and /generate-roadmap from a fixture so the client can be used without the real backend.",
	RunE:  runStub,
}

func init() {
	stubCmd.Flags().StringVar(&stubAddr, "addr", "", "listen address (default: stub.addr from config)")
	rootCmd.AddCommand(stubCmd)
}

func runStub(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := setupLogger(cfg, debug)

	fixture := stub.DefaultFixture()
	if cfg.Stub.Fixture != "" {
		fixture, err = stub.LoadFixture(cfg.Stub.Fixture)
		if err != nil {
			return err
		}
		logger.Info("fixture loaded", "path", cfg.Stub.Fixture, "phases", len(fixture.Phases))
	}

	addr := cfg.Stub.Addr
	if stubAddr != "" {
		addr = stubAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := stub.NewServer(fixture, logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down stub backend")
		if err := srv.Shutdown(); err != nil {
			return err
		}
		logger.Info("goodbye")
		return nil
	}
}
