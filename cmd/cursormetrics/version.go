package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunil-gr/cursor-poc/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.String())
		},
	}
}
