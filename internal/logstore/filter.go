package logstore

import (
	"strconv"
	"strings"
	"time"
)

// timestampFields are checked in priority order before falling back to
// unixMs and the document mtime.
var timestampFields = []string{"timestamp", "createdAt", "date", "time"}

// FilterByRange keeps records whose best-effort timestamp falls inside
// [start, end] (inclusive). Records with no derivable timestamp at all are
// retained rather than dropped: data whose shape we don't recognize should
// surface, not vanish.
func FilterByRange(records []Record, start, end time.Time) []Record {
	startMs := start.UnixMilli()
	endMs := end.UnixMilli()

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		ts, ok := rec.Timestamp()
		if !ok {
			out = append(out, rec)
			continue
		}
		if ts >= startMs && ts <= endMs {
			out = append(out, rec)
		}
	}
	return out
}

// Timestamp derives the record's epoch-millisecond timestamp from its
// fields, preferring explicit timestamp fields, then unixMs, then the source
// document's mtime. The second return is false when nothing is derivable.
func (r Record) Timestamp() (int64, bool) {
	for _, field := range timestampFields {
		v, ok := r.Fields[field]
		if !ok {
			continue
		}
		if ms, ok := epochMillis(v); ok {
			return ms, true
		}
	}
	if v, ok := r.Fields["unixMs"]; ok {
		if f, ok := v.(float64); ok && f > 0 {
			return int64(f), true
		}
	}
	if r.LogMtime > 0 {
		return r.LogMtime, true
	}
	return 0, false
}

// epochMillis interprets a decoded JSON value as a timestamp. Numbers are
// taken as epoch milliseconds; strings go through the known time layouts.
func epochMillis(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if t > 0 {
			return int64(t), true
		}
	case string:
		return ParseTimeString(t)
	}
	return 0, false
}

// ParseTimeString parses a timestamp string in any of the representations
// seen in state database rows: epoch seconds or milliseconds, RFC 3339, or a
// bare date.
func ParseTimeString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > 1e12 { // epoch millis
			return n, true
		}
		if n > 0 {
			return n * 1000, true // epoch secs
		}
		return 0, false
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}
