package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/amishk599/careerforge/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analyses",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.History.Enabled {
		fmt.Println("Run history is disabled (history.enabled: false).")
		return nil
	}

	j, err := history.NewSQLiteJournal(cfg.History.Path)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tMATCH\tROADMAP\tJOB DESCRIPTION")
	for _, e := range entries {
		roadmap := "-"
		if e.Roadmap != nil {
			roadmap = fmt.Sprintf("%d phases", len(e.Roadmap))
		}
		fmt.Fprintf(w, "%s\t%s\t%d%%\t%s\t%s\n",
			shortID(e.ID), humanize.Time(e.CreatedAt), e.Result.MatchScore, roadmap, excerpt(e.JobDescription, 48))
	}
	return w.Flush()
}

func excerpt(s string, n int) string {
	r := []rune(s)
	for i, c := range r {
		if c == '\n' || c == '\r' || c == '\t' {
			r[i] = ' '
		}
	}
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
