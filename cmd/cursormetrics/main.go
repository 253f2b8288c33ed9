package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunil-gr/cursor-poc/internal/config"
)

func main() {
	if os.Getenv("CURSORMETRICS_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	root := cobra.Command{
		Use:   "cursormetrics",
		Short: "cursormetrics mines Cursor IDE state databases for usage metrics.",
	}

	root.AddCommand(
		newServeCommand(cfg),
		newProcessCommand(cfg),
		newScanCommand(cfg),
		newInspectCommand(),
		newVersionCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
