// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/techscope/internal/export"
	"github.com/pdiddy/techscope/internal/history"
	"github.com/pdiddy/techscope/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run <technology>",
	Short: "Analyse a technology and write its dashboard artifacts",
	Long: `Run fetches patents, papers, companies, funding and market reports for a
technology, enriches and analyses them, and writes data/tech/<slug>.json and
data/tech/<slug>_kg.json. Multiple arguments are joined with spaces.

If a search fails the run still writes a well-formed empty result, records
the failure in the run history, and exits non-zero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Bool("json", false, "print the dashboard JSON instead of a summary")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	tech := strings.Join(strings.Fields(strings.Join(args, " ")), " ")
	if tech == "" {
		return fmt.Errorf("provide a technology name")
	}
	if err := export.CheckTechnology(tech); err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	started := time.Now()
	res, runErr := p.RunOrFallback(cmd.Context(), tech)
	elapsed := time.Since(started)

	w := newWriter(cfg)
	d, err := w.WriteResult(res)
	if err != nil {
		return fmt.Errorf("writing artifacts: %w", err)
	}

	slug := export.Slug(tech)
	if h := openHistory(cfg, logger); h != nil {
		if _, err := h.Record(context.Background(), history.TechRun(slug, res, runErr, started, elapsed)); err != nil {
			logger.Warn("recording run", zap.String("technology", slug), zap.Error(err))
		}
		h.Close()
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(d); err != nil {
			return err
		}
	} else {
		printSummary(out, res, d, elapsed)
		fmt.Fprintf(out, "\nWrote %s and %s\n", w.DashboardPath(slug), w.GraphPath(slug))
	}

	if runErr != nil {
		return fmt.Errorf("pipeline failed, wrote empty result: %w", runErr)
	}
	return nil
}

// topCountries is the number of investment index entries printed.
const topCountries = 5

func printSummary(w io.Writer, res *types.TechResult, d types.Dashboard, elapsed time.Duration) {
	fmt.Fprintf(w, "Technology:    %s\n", res.Technology)
	fmt.Fprintf(w, "Growth stage:  %s\n", d.Summary.GrowthStage)
	fmt.Fprintf(w, "TRL:           %d\n", d.Summary.TRL)
	fmt.Fprintf(w, "Maturity:      %s\n", types.FormatPercent(res.Maturity))
	if m := d.Summary.MarketSizeBillionUSD; m != nil {
		fmt.Fprintf(w, "Market size:   $%sB (forecast peak)\n", types.FormatPercent(float64(*m)))
	} else {
		fmt.Fprintf(w, "Market size:   n/a\n")
	}
	fmt.Fprintf(w, "Signals:       %d patents, %d papers, %d companies, %d funding, %d market reports\n",
		len(res.Patents), len(res.Papers), len(res.Companies), len(res.Funding), len(res.MarketReports))

	if len(res.Investment) > 0 {
		parts := make([]string, 0, topCountries)
		for i, e := range res.Investment {
			if i == topCountries {
				break
			}
			parts = append(parts, e.Country+" "+types.FormatPercent(e.Score))
		}
		fmt.Fprintf(w, "Top countries: %s\n", strings.Join(parts, ", "))
	}

	fmt.Fprintln(w, "Alerts:")
	for _, a := range res.Alerts {
		fmt.Fprintf(w, "  [%s] %s (%s)\n", a.Type, a.Message, a.Time)
	}
	fmt.Fprintf(w, "Elapsed:       %s\n", elapsed.Round(time.Millisecond))
}
