package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sunil-gr/cursor-poc/internal/config"
	"github.com/sunil-gr/cursor-poc/internal/logstore"
	"github.com/sunil-gr/cursor-poc/internal/metrics"
	"github.com/sunil-gr/cursor-poc/internal/server"
	"github.com/sunil-gr/cursor-poc/internal/snapshot"
	"github.com/sunil-gr/cursor-poc/internal/watch"
)

func newServeCommand(cfg config.Config) *cobra.Command {
	var (
		listen     string
		watchFlag  bool
		skipInitial bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Process snapshots and serve the metrics API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				log.SetOutput(os.Stderr)
			}
			if listen != "" {
				cfg.Listen = listen
			}
			if cmd.Flags().Changed("watch") {
				cfg.Watch = watchFlag
			}

			proc := snapshot.NewProcessor(cfg.LogsDir, cfg.SnapshotBasename)
			store := logstore.NewStore(cfg.LogsDir)
			scanner := metrics.NewScanner(metrics.FileSink{Path: cfg.DebugCountsPath})
			agg := metrics.NewAggregator(store, scanner)
			srv := server.New(cfg, proc, store, agg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !skipInitial {
				// Build an initial document set so the first request
				// has data to serve.
				srv.Refresh(ctx)
			}

			if cfg.Watch {
				watcher := watch.New(cfg.SnapshotDir, cfg.SnapshotBasename, 0, func(string) {
					srv.Refresh(ctx)
				})
				go func() {
					if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
						log.Printf("[serve] watcher stopped: %v", err)
					}
				}()
			}

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&watchFlag, "watch", false, "reprocess snapshots when the directory changes")
	cmd.Flags().BoolVar(&skipInitial, "skip-initial-process", false, "serve existing documents without reprocessing first")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log to stderr")
	return cmd
}
