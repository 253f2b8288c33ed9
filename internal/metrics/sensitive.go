package metrics

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

// SensitiveKeywords are the credential-adjacent terms the scanner looks for.
var SensitiveKeywords = []string{
	"username", "user", "password", "pass", "database", "db",
	"token", "jwt", "secret", "key", "credential", "auth",
	"security", "access", "apikey", "api_key", "refresh",
	"session", "cookie", "bearer",
}

const contextRadius = 30

// SensitiveMatch is one keyword hit with surrounding context.
type SensitiveMatch struct {
	Keyword string `json:"keyword"`
	Context string `json:"context"`
	Entry   string `json:"entry"`
	File    string `json:"file"`
}

// CountSink receives the per-keyword totals after a scan. Write failures are
// logged and otherwise ignored; the scan result stands on its own.
type CountSink interface {
	WriteCounts(counts map[string]int) error
}

// FileSink writes keyword counts to a JSON file, overwriting each run.
type FileSink struct {
	Path string
}

func (s FileSink) WriteCounts(counts map[string]int) error {
	data, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal counts: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write counts: %w", err)
	}
	return nil
}

// Scanner searches records for sensitive keywords. Every keyword is counted
// at most once per record, so counts reflect affected records rather than
// raw occurrences.
type Scanner struct {
	keywords []string
	sink     CountSink
	logger   *log.Logger
}

// NewScanner builds a scanner over the default keyword set. A nil sink
// disables count persistence.
func NewScanner(sink CountSink) *Scanner {
	return &Scanner{
		keywords: SensitiveKeywords,
		sink:     sink,
		logger:   log.New(log.Writer(), "[sensitive] ", log.Flags()),
	}
}

// Scan searches every record, returning the individual matches and the
// per-keyword record counts. All keywords appear in the counts map, zeros
// included.
func (s *Scanner) Scan(records []logstore.Record) ([]SensitiveMatch, map[string]int) {
	counts := make(map[string]int, len(s.keywords))
	for _, kw := range s.keywords {
		counts[kw] = 0
	}

	matches := []SensitiveMatch{}
	for _, rec := range records {
		serialized := strings.ToLower(serializeRecord(rec))
		for _, kw := range s.keywords {
			idx := strings.Index(serialized, kw)
			if idx < 0 {
				continue
			}
			counts[kw]++
			matches = append(matches, SensitiveMatch{
				Keyword: kw,
				Context: contextAround(serialized, idx, len(kw)),
				Entry:   rec.Key,
				File:    rec.Source,
			})
		}
	}

	if s.sink != nil {
		if err := s.sink.WriteCounts(counts); err != nil {
			s.logger.Printf("persist keyword counts: %v", err)
		}
	}
	return matches, counts
}

// serializeRecord renders a record as searchable text: its decoded fields
// when present, otherwise its raw key and value.
func serializeRecord(rec logstore.Record) string {
	var payload any
	if len(rec.Fields) > 0 {
		payload = rec.Fields
	} else {
		payload = map[string]string{"key": rec.Key, "value": rec.Value}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%s %s", rec.Key, rec.Value)
	}
	return string(data)
}

func contextAround(s string, idx, width int) string {
	start := idx - contextRadius
	if start < 0 {
		start = 0
	}
	end := idx + width + contextRadius
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
