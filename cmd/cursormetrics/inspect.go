package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/sunil-gr/cursor-poc/internal/snapshot"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <snapshot-or-directory>",
		Short: "List snapshots in a directory, or tables in one snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if info.IsDir() {
				return inspectDirectory(path)
			}
			return inspectSnapshot(cmd.Context(), path)
		},
	}
	return cmd
}

func inspectDirectory(dir string) error {
	files, err := snapshot.Find(dir, snapshot.DefaultBasename)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No %s files under %s\n", snapshot.DefaultBasename, dir)
		return nil
	}
	for _, path := range files {
		line := path
		if info, err := os.Stat(path); err == nil {
			line = fmt.Sprintf("%s  (modified %s)", path, info.ModTime().Format("2006-01-02 15:04:05"))
		}
		fmt.Println(line)
	}
	return nil
}

func inspectSnapshot(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro&_journal_mode=WAL", path))
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(tables) == 0 {
		fmt.Println("No tables.")
		return nil
	}
	for _, table := range tables {
		var count int
		quoted := `"` + strings.ReplaceAll(table, `"`, `""`) + `"`
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoted).Scan(&count); err != nil {
			fmt.Printf("%-32s (count failed: %v)\n", table, err)
			continue
		}
		fmt.Printf("%-32s %d rows\n", table, count)
	}
	return nil
}
