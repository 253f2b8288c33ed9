package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

func TestExtractAIServiceMetrics(t *testing.T) {
	records := []logstore.Record{
		{
			Key:   keyAIPrompts,
			Value: `[{"text":"write a test","commandType":4,"unixMs":1700000000000},{"text":"","commandType":"chat"}]`,
		},
		{
			Key:   keyAIGenerations,
			Value: `[{"textDescription":"generated function","type":"composer","unixMs":1700000000000}]`,
		},
	}

	m := ExtractAIServiceMetrics(records)

	if m.TotalPrompts != 2 {
		t.Errorf("TotalPrompts = %d, want 2", m.TotalPrompts)
	}
	if m.TotalGenerations != 1 {
		t.Errorf("TotalGenerations = %d, want 1", m.TotalGenerations)
	}
	if m.PromptTypes["4"] != 1 || m.PromptTypes["chat"] != 1 {
		t.Errorf("PromptTypes = %v", m.PromptTypes)
	}
	if m.GenerationTypes["composer"] != 1 {
		t.Errorf("GenerationTypes = %v", m.GenerationTypes)
	}

	if len(m.RecentPrompts) != 2 {
		t.Fatalf("RecentPrompts = %d entries", len(m.RecentPrompts))
	}
	first := m.RecentPrompts[0]
	if first.Text != "write a test" {
		t.Errorf("Text = %q", first.Text)
	}
	if first.Timestamp != 1700000000000 {
		t.Errorf("Timestamp = %d", first.Timestamp)
	}
	if first.UnixMs != first.Timestamp || first.CreatedAt != first.Timestamp {
		t.Error("timestamp aliases differ")
	}
	if m.RecentPrompts[1].Text != "No text" {
		t.Errorf("empty prompt text = %q", m.RecentPrompts[1].Text)
	}

	gen := m.RecentGenerations[0]
	if gen.Description != "generated function" {
		t.Errorf("Description = %q", gen.Description)
	}
	if gen.Timestamp == "Unknown" {
		t.Error("generation timestamp should be formatted, got Unknown")
	}
}

func TestPromptSyntheticTimestampsDescend(t *testing.T) {
	acc := newAIServiceAccumulator()
	fixed := time.UnixMilli(1700000100000)
	acc.now = func() time.Time { return fixed }

	acc.onPrompts(logstore.Record{
		Key:   keyAIPrompts,
		Value: `[{"text":"first"},{"text":"second"},{"text":"third"}]`,
	})

	out := acc.finalize()
	if len(out.RecentPrompts) != 3 {
		t.Fatalf("got %d prompts", len(out.RecentPrompts))
	}
	for i, p := range out.RecentPrompts {
		want := fixed.UnixMilli() - int64(i)*1000
		if p.Timestamp != want {
			t.Errorf("prompt %d timestamp = %d, want %d", i, p.Timestamp, want)
		}
	}
}

func TestPromptTextTruncated(t *testing.T) {
	long := strings.Repeat("a", 150)
	m := ExtractAIServiceMetrics([]logstore.Record{
		{Key: keyAIPrompts, Value: `[{"text":"` + long + `"}]`},
	})
	got := m.RecentPrompts[0].Text
	if len(got) != summaryMaxLen+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text = %q (len %d)", got, len(got))
	}
}

func TestGenerationWithoutTimestamp(t *testing.T) {
	m := ExtractAIServiceMetrics([]logstore.Record{
		{Key: keyAIGenerations, Value: `[{"textDescription":"x"}]`},
	})
	if got := m.RecentGenerations[0].Timestamp; got != "Unknown" {
		t.Errorf("Timestamp = %q, want Unknown", got)
	}
	if got := m.RecentGenerations[0].Type; got != "unknown" {
		t.Errorf("Type = %q, want unknown", got)
	}
}

func TestLastPromptsRowWins(t *testing.T) {
	m := ExtractAIServiceMetrics([]logstore.Record{
		{Key: keyAIPrompts, Value: `[{"text":"old"},{"text":"older"}]`},
		{Key: keyAIPrompts, Value: `[{"text":"new"}]`},
	})
	if m.TotalPrompts != 1 {
		t.Errorf("TotalPrompts = %d, want 1", m.TotalPrompts)
	}
	if m.RecentPrompts[0].Text != "new" {
		t.Errorf("Text = %q, want new", m.RecentPrompts[0].Text)
	}
	// Type counts accumulate across rows even though lists are replaced.
	if m.PromptTypes["unknown"] != 3 {
		t.Errorf("PromptTypes[unknown] = %d, want 3", m.PromptTypes["unknown"])
	}
}

func TestUnparseablePromptsIgnored(t *testing.T) {
	m := ExtractAIServiceMetrics([]logstore.Record{
		{Key: keyAIPrompts, Value: `not json`},
	})
	if m.Meaningful() {
		t.Error("unparseable prompts should yield nothing")
	}
}
