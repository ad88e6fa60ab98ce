package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/careerforge/internal/forge"
	"github.com/amishk599/careerforge/internal/model"
	"github.com/amishk599/careerforge/internal/ui"
)

var (
	jdFile      string
	withRoadmap bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score the uploaded resume against a job description",
	Long:  "Reads the job description from --file or stdin, prints the analysis and optionally the roadmap.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&jdFile, "file", "f", "", "read the job description from this file (default: stdin)")
	analyzeCmd.Flags().BoolVar(&withRoadmap, "roadmap", false, "also generate the roadmap for the suggested project")
	rootCmd.AddCommand(analyzeCmd)
}

func readJobDescription(path string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return "", fmt.Errorf("reading job description: %w", err)
	}
	return string(data), nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := setupLogger(cfg, debug)

	jd, err := readJobDescription(jdFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	journal, closeJournal, err := setupJournal(cfg, logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := forge.NewSession(setupClient(cfg), journal, logger)
	session.UpdateJobDescription(jd)

	task := session.RunAnalysis()
	if task == nil {
		return errors.New("job description is empty")
	}
	if err := runTask(ctx, session, "Forging", task); err != nil {
		return err
	}
	printAnalysis(cmd.OutOrStdout(), session.Analysis())

	if !withRoadmap {
		return nil
	}
	if err := runTask(ctx, session, "Analyzing architecture", session.FetchRoadmap()); err != nil {
		return err
	}
	if session.Roadmap() == nil {
		return errors.New("roadmap generation failed")
	}
	printRoadmap(cmd.OutOrStdout(), session.Roadmap())
	return nil
}

// runTask runs one session task behind the loader and applies its outcome.
// A raised alert becomes the returned error.
func runTask(ctx context.Context, session *forge.Session, label string, task forge.Task) error {
	if task == nil {
		return nil
	}
	var outcome forge.Outcome
	err := ui.RunLoader(ctx, label, func(ctx context.Context) error {
		outcome = task(ctx)
		return nil
	})
	if err != nil {
		return err
	}
	session.Apply(outcome)
	if msg, ok := session.Alert(); ok {
		session.DismissAlert()
		return errors.New(msg)
	}
	return nil
}

func printAnalysis(w io.Writer, r *model.AnalysisResult) {
	gaps := make([]string, len(r.TechnicalGaps))
	for i, g := range r.TechnicalGaps {
		gaps[i] = strings.ToUpper(g)
	}
	fmt.Fprintf(w, "MATCH:          %d%%\n", r.MatchScore)
	fmt.Fprintf(w, "ASSESSMENT:     %q\n", r.ProfessionalAssessment)
	fmt.Fprintf(w, "CORE STRENGTH:  %s\n", r.KeyStrength)
	fmt.Fprintf(w, "TARGETED GAPS:  %s\n", strings.Join(gaps, ", "))
	fmt.Fprintf(w, "GAP CLOSER:     %s\n", r.StrategicProjectIdea)
}

func printRoadmap(w io.Writer, phases []model.RoadmapPhase) {
	fmt.Fprintln(w)
	for _, p := range phases {
		fmt.Fprintf(w, "● %s\n  %s\n", p.Title, p.Task)
	}
}
