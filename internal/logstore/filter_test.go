package logstore

import (
	"testing"
	"time"
)

func TestRecordTimestampPriority(t *testing.T) {
	ms := float64(1700000000000)

	tests := []struct {
		name   string
		rec    Record
		want   int64
		wantOK bool
	}{
		{
			name:   "timestamp field wins",
			rec:    Record{Fields: map[string]any{"timestamp": ms, "unixMs": float64(1)}, LogMtime: 5},
			want:   1700000000000,
			wantOK: true,
		},
		{
			name:   "createdAt before unixMs",
			rec:    Record{Fields: map[string]any{"createdAt": ms, "unixMs": float64(1600000000000)}},
			want:   1700000000000,
			wantOK: true,
		},
		{
			name:   "unixMs fallback",
			rec:    Record{Fields: map[string]any{"unixMs": ms}},
			want:   1700000000000,
			wantOK: true,
		},
		{
			name:   "mtime fallback",
			rec:    Record{Fields: map[string]any{"key": "k"}, LogMtime: 1234},
			want:   1234,
			wantOK: true,
		},
		{
			name:   "string timestamp parsed",
			rec:    Record{Fields: map[string]any{"date": "2023-11-14"}},
			want:   mustParseMs(t, "2023-11-14"),
			wantOK: true,
		},
		{
			name:   "nothing derivable",
			rec:    Record{Fields: map[string]any{"key": "k"}},
			wantOK: false,
		},
		{
			name:   "zero timestamp ignored",
			rec:    Record{Fields: map[string]any{"timestamp": float64(0)}, LogMtime: 99},
			want:   99,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rec.Timestamp()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Timestamp() = %d, want %d", got, tt.want)
			}
		})
	}
}

func mustParseMs(t *testing.T, s string) int64 {
	t.Helper()
	ms, ok := ParseTimeString(s)
	if !ok {
		t.Fatalf("ParseTimeString(%q) failed", s)
	}
	return ms
}

func TestFilterByRange(t *testing.T) {
	start := time.UnixMilli(1000)
	end := time.UnixMilli(2000)

	records := []Record{
		{Key: "before", Fields: map[string]any{"timestamp": float64(999)}},
		{Key: "atStart", Fields: map[string]any{"timestamp": float64(1000)}},
		{Key: "inside", Fields: map[string]any{"timestamp": float64(1500)}},
		{Key: "atEnd", Fields: map[string]any{"timestamp": float64(2000)}},
		{Key: "after", Fields: map[string]any{"timestamp": float64(2001)}},
		{Key: "undated", Fields: map[string]any{"key": "k"}},
	}

	got := FilterByRange(records, start, end)

	keys := make([]string, len(got))
	for i, r := range got {
		keys[i] = r.Key
	}
	want := []string{"atStart", "inside", "atEnd", "undated"}
	if len(keys) != len(want) {
		t.Fatalf("kept %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("kept[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestParseTimeString(t *testing.T) {
	tests := []struct {
		input  string
		want   int64
		wantOK bool
	}{
		{"1700000000000", 1700000000000, true},
		{"1700000000", 1700000000000, true},
		{"2023-11-14T22:13:20Z", 1700000000000, true},
		{"2023-11-14", time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC).UnixMilli(), true},
		{"0", 0, false},
		{"-5", 0, false},
		{"", 0, false},
		{"garbage", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseTimeString(tt.input)
		if ok != tt.wantOK {
			t.Errorf("ParseTimeString(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseTimeString(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
