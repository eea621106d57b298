// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/techscope/internal/export"
	"github.com/pdiddy/techscope/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [technology]",
	Short: "List recorded pipeline runs, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	h, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer h.Close()

	tech := ""
	if len(args) == 1 {
		tech = export.Slug(args[0])
	}
	runs, err := h.List(cmd.Context(), tech, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tKIND\tSLUG\tSTATUS\tHYPE STAGE\tPATENTS\tPAPERS\tDURATION")
	for _, r := range runs {
		hype := string(r.HypeStage)
		if hype == "" {
			hype = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.StartedAt.Local().Format(time.DateTime), r.Kind, r.Slug, r.Status, hype,
			r.Patents, r.Papers, r.Duration.Round(time.Millisecond))
	}
	return tw.Flush()
}
