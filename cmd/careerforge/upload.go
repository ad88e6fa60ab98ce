package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/amishk599/careerforge/internal/resume"
	"github.com/amishk599/careerforge/internal/ui"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a resume to the backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := setupLogger(cfg, debug)

	file, err := resume.Describe(args[0])
	if err != nil {
		return err
	}
	logger.Debug("resume described", "path", file.Path, "mime", file.MIME, "pages", file.Pages)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := setupClient(cfg)
	err = ui.RunLoader(ctx, "Uploading "+file.Name, func(ctx context.Context) error {
		return client.UploadResume(ctx, file)
	})
	if err != nil {
		logger.Error("upload failed", "file", file.Name, "error", err)
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "✓ Resume Processed & Forged: %s (%s)\n", file.Name, humanize.Bytes(uint64(file.Size)))
	return nil
}
