// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/techscope/internal/history"
)

var pulseCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Refresh the global technology news and patent pulse",
	Long: `Pulse fetches recent technology headlines from google_news and the newest
patents from google_patents, counts them by year, and writes
data/global/global_tech_pulse.json.`,
	Args: cobra.NoArgs,
	RunE: runPulse,
}

func init() {
	rootCmd.AddCommand(pulseCmd)
}

func runPulse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	started := time.Now()
	res, runErr := p.Pulse(cmd.Context())
	elapsed := time.Since(started)

	if h := openHistory(cfg, logger); h != nil {
		if _, err := h.Record(context.Background(), history.PulseRun(res, runErr, started, elapsed)); err != nil {
			logger.Warn("recording pulse run", zap.Error(err))
		}
		h.Close()
	}
	if runErr != nil {
		return runErr
	}

	w := newWriter(cfg)
	if err := w.WritePulse(res); err != nil {
		return fmt.Errorf("writing pulse: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "News:    %d\n", res.Summary.NewsCount)
	fmt.Fprintf(out, "Patents: %d\n", res.Summary.PatentCount)
	fmt.Fprintf(out, "Wrote %s\n", w.PulsePath())
	return nil
}
