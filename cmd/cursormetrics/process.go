package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sunil-gr/cursor-poc/internal/config"
	"github.com/sunil-gr/cursor-poc/internal/snapshot"
)

func newProcessCommand(cfg config.Config) *cobra.Command {
	var (
		dir      string
		startStr string
		endStr   string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Dump snapshot tables into intermediate JSON documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				log.SetOutput(os.Stderr)
			}
			if dir != "" {
				cfg.SnapshotDir = dir
			}
			if cfg.SnapshotDir == "" {
				return fmt.Errorf("no snapshot directory configured; pass --dir or set CURSORMETRICS_SNAPSHOT_DIR")
			}

			start, end, err := parseDateFlags(startStr, endStr)
			if err != nil {
				return err
			}

			proc := snapshot.NewProcessor(cfg.LogsDir, cfg.SnapshotBasename)
			if err := proc.ProcessAll(cmd.Context(), cfg.SnapshotDir, start, end); err != nil {
				return err
			}
			fmt.Printf("Documents written to %s\n", proc.LogsDir())
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "snapshot directory (overrides config)")
	cmd.Flags().StringVar(&startStr, "start", "", "only snapshots modified on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "only snapshots modified on or before this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log to stderr")
	return cmd
}

// parseDateFlags turns the optional start/end strings into time pointers.
// Both or neither must be set.
func parseDateFlags(startStr, endStr string) (*time.Time, *time.Time, error) {
	if startStr == "" && endStr == "" {
		return nil, nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, nil, fmt.Errorf("--start and --end must be given together")
	}
	start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --start %q", startStr)
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --end %q", endStr)
	}
	if end.Before(start) {
		return nil, nil, fmt.Errorf("--end precedes --start")
	}
	return &start, &end, nil
}
