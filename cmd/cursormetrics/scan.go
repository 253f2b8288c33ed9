package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/sunil-gr/cursor-poc/internal/config"
	"github.com/sunil-gr/cursor-poc/internal/logstore"
	"github.com/sunil-gr/cursor-poc/internal/metrics"
)

func newScanCommand(cfg config.Config) *cobra.Command {
	var (
		days     int
		startStr string
		endStr   string
		asJSON   bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Aggregate existing documents and report metrics and sensitive hits",
		RunE: func(_ *cobra.Command, _ []string) error {
			if verbose {
				log.SetOutput(os.Stderr)
			}

			var start, end time.Time
			if startStr != "" || endStr != "" {
				sp, ep, err := parseDateFlags(startStr, endStr)
				if err != nil {
					return err
				}
				start = *sp
				end = ep.Add(24*time.Hour - time.Millisecond)
			} else {
				end = time.Now()
				start = end.AddDate(0, 0, -days)
			}

			store := logstore.NewStore(cfg.LogsDir)
			scanner := metrics.NewScanner(metrics.FileSink{Path: cfg.DebugCountsPath})
			agg := metrics.NewAggregator(store, scanner)
			m := agg.Aggregate(start, end)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			}

			printSummary(m, start, end)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", cfg.DefaultWindowDays, "trailing window in days")
	cmd.Flags().StringVar(&startStr, "start", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "window end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full metrics document as JSON")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log to stderr")
	return cmd
}

func printSummary(m metrics.Metrics, start, end time.Time) {
	fmt.Printf("Window: %s to %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))

	if !m.HasMeaningfulData() {
		fmt.Println("No usage data in this window.")
		return
	}

	if ai := m.AIServiceMetrics; ai != nil {
		fmt.Printf("AI prompts: %d, generations: %d\n", ai.TotalPrompts, ai.TotalGenerations)
	}
	if ed := m.EditorActivity; ed != nil {
		fmt.Printf("Opened files: %d, file types: %d\n", len(ed.OpenedFiles), len(ed.FileTypes))
	}
	if comp := m.ComposerData; comp != nil {
		fmt.Printf("Composers: %d, chat sessions: %d\n", len(comp.Composers), len(comp.ChatSessions))
	}

	keywords := make([]string, 0, len(m.SensitiveKeywordCounts))
	for kw, n := range m.SensitiveKeywordCounts {
		if n > 0 {
			keywords = append(keywords, kw)
		}
	}
	sort.Strings(keywords)
	fmt.Printf("Sensitive matches: %d across %d keywords\n", len(m.SensitiveResults), len(keywords))
	for _, kw := range keywords {
		fmt.Printf("  %-12s %d\n", kw, m.SensitiveKeywordCounts[kw])
	}
}
