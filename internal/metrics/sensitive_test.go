package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

func TestScanFindsKeywordsWithContext(t *testing.T) {
	records := []logstore.Record{
		{
			Key:    "cursorAuth/accessToken",
			Value:  "eyJhbGciOi",
			Source: "snap_ItemTable-1.json",
		},
	}

	scanner := NewScanner(nil)
	matches, counts := scanner.Scan(records)

	// "accessToken" hits token, access, and auth (via cursorAuth).
	for _, kw := range []string{"token", "access", "auth"} {
		if counts[kw] != 1 {
			t.Errorf("counts[%q] = %d, want 1", kw, counts[kw])
		}
	}
	if counts["password"] != 0 {
		t.Errorf("counts[password] = %d, want 0", counts["password"])
	}

	var tokenMatch *SensitiveMatch
	for i := range matches {
		if matches[i].Keyword == "token" {
			tokenMatch = &matches[i]
		}
	}
	if tokenMatch == nil {
		t.Fatal("no token match recorded")
	}
	if !strings.Contains(tokenMatch.Context, "token") {
		t.Errorf("Context = %q", tokenMatch.Context)
	}
	if tokenMatch.Entry != "cursorAuth/accessToken" {
		t.Errorf("Entry = %q", tokenMatch.Entry)
	}
	if tokenMatch.File != "snap_ItemTable-1.json" {
		t.Errorf("File = %q", tokenMatch.File)
	}
}

func TestScanAllKeywordsInitialized(t *testing.T) {
	scanner := NewScanner(nil)
	_, counts := scanner.Scan(nil)

	if len(counts) != len(SensitiveKeywords) {
		t.Fatalf("counts has %d keys, want %d", len(counts), len(SensitiveKeywords))
	}
	for _, kw := range SensitiveKeywords {
		if n, ok := counts[kw]; !ok || n != 0 {
			t.Errorf("counts[%q] = %d, %v", kw, n, ok)
		}
	}
}

func TestScanCountsOncePerRecord(t *testing.T) {
	records := []logstore.Record{
		{Key: "a", Value: "password password password"},
		{Key: "b", Value: "password"},
	}

	scanner := NewScanner(nil)
	_, counts := scanner.Scan(records)

	if counts["password"] != 2 {
		t.Errorf("counts[password] = %d, want 2 (one per record)", counts["password"])
	}
	if counts["pass"] != 2 {
		t.Errorf("counts[pass] = %d, want 2", counts["pass"])
	}
}

func TestScanUsesDecodedFields(t *testing.T) {
	records := []logstore.Record{
		{
			Key:    "harmless",
			Value:  "nothing here",
			Fields: map[string]any{"key": "harmless", "value": "nothing here", "meta": "apikey=xyz"},
		},
	}

	scanner := NewScanner(nil)
	_, counts := scanner.Scan(records)

	if counts["apikey"] != 1 {
		t.Errorf("counts[apikey] = %d, want 1", counts["apikey"])
	}
}

func TestFileSinkWritesCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.json")
	scanner := NewScanner(FileSink{Path: path})

	scanner.Scan([]logstore.Record{{Key: "a", Value: "secret stuff"}})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("sink file not written: %v", err)
	}
	var counts map[string]int
	if err := json.Unmarshal(data, &counts); err != nil {
		t.Fatalf("sink file not JSON: %v", err)
	}
	if counts["secret"] != 1 {
		t.Errorf("persisted counts[secret] = %d, want 1", counts["secret"])
	}
}
