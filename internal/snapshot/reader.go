package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Processor dumps snapshot tables into intermediate JSON log documents, one
// document per (snapshot, table) pair.
type Processor struct {
	logsDir  string
	basename string
}

func NewProcessor(logsDir, basename string) *Processor {
	if basename == "" {
		basename = DefaultBasename
	}
	return &Processor{logsDir: logsDir, basename: basename}
}

// LogsDir returns the intermediate-document directory.
func (p *Processor) LogsDir() string { return p.logsDir }

// ProcessAll clears the intermediate-document directory, locates every
// snapshot under root, optionally filters them to the [start, end] mtime
// range, and processes each in discovery order. Per-snapshot failures are
// logged and do not stop the batch. Each invocation tracks processed paths
// locally; there is no cross-run cache, so unchanged snapshots are
// reprocessed on the next call.
func (p *Processor) ProcessAll(ctx context.Context, root string, start, end *time.Time) error {
	log.Printf("[snapshot] starting log generation for %s", root)

	if err := p.clearLogs(); err != nil {
		return err
	}

	files, err := Find(root, p.basename)
	if err != nil {
		return fmt.Errorf("locating snapshots under %s: %w", root, err)
	}

	if start != nil && end != nil {
		files = filterByMtime(files, *start, endOfDayIfSame(*start, *end))
		log.Printf("[snapshot] filtered to %d snapshots in range %s to %s",
			len(files), start.Format("2006-01-02"), end.Format("2006-01-02"))
	} else {
		log.Printf("[snapshot] found %d snapshots in %s", len(files), root)
	}
	if len(files) == 0 {
		log.Printf("[snapshot] no %s files found in %s", p.basename, root)
	}

	processed := make(map[string]struct{}, len(files))
	for _, path := range files {
		if _, done := processed[path]; done {
			log.Printf("[snapshot] skipping already processed %s", path)
			continue
		}
		if err := p.ProcessSnapshot(ctx, path); err != nil {
			log.Printf("[snapshot] failed processing %s: %v", path, err)
			continue
		}
		processed[path] = struct{}{}
	}

	log.Printf("[snapshot] log generation complete")
	return nil
}

// clearLogs removes every existing intermediate document. A directory
// creation failure propagates: nothing downstream can work without it.
func (p *Processor) clearLogs() error {
	if err := os.MkdirAll(p.logsDir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir %s: %w", p.logsDir, err)
	}
	entries, err := os.ReadDir(p.logsDir)
	if err != nil {
		return fmt.Errorf("reading logs dir %s: %w", p.logsDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(p.logsDir, entry.Name())); err != nil {
			log.Printf("[snapshot] deleting old log %s: %v", entry.Name(), err)
		}
	}
	return nil
}

// ProcessSnapshot opens one snapshot read-only, enumerates its tables, and
// writes every non-empty table's rows to a new intermediate document. The
// document mtime is set to the snapshot's mtime so downstream consumers see
// the capture time, not the processing time.
func (p *Processor) ProcessSnapshot(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat snapshot: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro&_journal_mode=WAL", path))
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	tables, err := listTables(ctx, db)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	log.Printf("[snapshot] tables in %s: %s", path, strings.Join(tables, ", "))
	if len(tables) == 0 {
		log.Printf("[snapshot] no tables found in %s", path)
		return nil
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, table := range tables {
		rows, err := dumpTable(ctx, db, table)
		if err != nil {
			log.Printf("[snapshot] querying table %s in %s: %v", table, path, err)
			continue
		}
		if len(rows) == 0 {
			log.Printf("[snapshot] no data in table %s from %s", table, path)
			continue
		}
		if err := p.writeDocument(base, table, rows, info.ModTime()); err != nil {
			log.Printf("[snapshot] writing log for table %s in %s: %v", table, path, err)
		}
	}
	return nil
}

func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// dumpTable reads a full table into row maps. Column values come back as
// strings where possible; BLOBs are passed through as strings since Cursor
// stores JSON text in them.
func dumpTable(ctx context.Context, db *sql.DB, table string) ([]map[string]any, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (p *Processor) writeDocument(base, table string, rows []map[string]any, mtime time.Time) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling rows: %w", err)
	}

	name := fmt.Sprintf("%s_%s-%s.json", base, table, docTimestamp(time.Now()))
	path := filepath.Join(p.logsDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	// Stamp the document with the snapshot's capture time.
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		log.Printf("[snapshot] setting mtime on %s: %v", name, err)
	}
	log.Printf("[snapshot] wrote log %s", path)
	return nil
}

// docTimestamp renders a filename-safe ISO timestamp (colons and dots
// replaced with dashes).
func docTimestamp(t time.Time) string {
	iso := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(iso)
}

func filterByMtime(files []string, start, end time.Time) []string {
	var out []string
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		mtime := info.ModTime()
		if !mtime.Before(start) && !mtime.After(end) {
			out = append(out, path)
		}
	}
	return out
}

// endOfDayIfSame extends end to 23:59:59.999 when start and end fall on the
// same calendar day, so a single-day range covers the whole day.
func endOfDayIfSame(start, end time.Time) time.Time {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy == ey && sm == em && sd == ed {
		return time.Date(ey, em, ed, 23, 59, 59, 999_000_000, end.Location())
	}
	return end
}
