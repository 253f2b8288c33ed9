package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

const summaryMaxLen = 100

// aiServiceAccumulator builds AIServiceMetrics from aiService.prompts and
// aiService.generations rows. Totals and recent lists reflect the last row
// seen for each key; type counts accumulate across rows.
type aiServiceAccumulator struct {
	out AIServiceMetrics
	now func() time.Time
}

func newAIServiceAccumulator() *aiServiceAccumulator {
	return &aiServiceAccumulator{
		out: AIServiceMetrics{
			PromptTypes:       make(map[string]int),
			GenerationTypes:   make(map[string]int),
			RecentPrompts:     []PromptSummary{},
			RecentGenerations: []GenerationSummary{},
		},
		now: time.Now,
	}
}

func (a *aiServiceAccumulator) register(reg *registry) {
	reg.on(keyAIPrompts, a.onPrompts)
	reg.on(keyAIGenerations, a.onGenerations)
}

func (a *aiServiceAccumulator) onPrompts(rec logstore.Record) {
	prompts, ok := logstore.TryParse(rec.Value).Array()
	if !ok {
		return
	}

	a.out.TotalPrompts = len(prompts)
	a.out.RecentPrompts = make([]PromptSummary, 0, len(prompts))

	nowMs := a.now().UnixMilli()
	for i, p := range prompts {
		entry, _ := p.(map[string]any)

		// Prompts without any timestamp get a synthetic one: each
		// successive prompt a second earlier, so ordering survives.
		fallback := nowMs - int64(i)*1000
		ts := promptTimestamp(entry, fallback)

		text := stringField(entry, "text")
		if text == "" {
			text = "No text"
		} else {
			text = truncate(text, summaryMaxLen)
		}

		a.out.RecentPrompts = append(a.out.RecentPrompts, PromptSummary{
			Text:        text,
			CommandType: typeKey(entry["commandType"]),
			Timestamp:   ts,
			UnixMs:      ts,
			CreatedAt:   ts,
			Date:        ts,
			Time:        ts,
		})

		a.out.PromptTypes[typeKey(entry["commandType"])]++
	}
}

func (a *aiServiceAccumulator) onGenerations(rec logstore.Record) {
	generations, ok := logstore.TryParse(rec.Value).Array()
	if !ok {
		return
	}

	a.out.TotalGenerations = len(generations)
	a.out.RecentGenerations = make([]GenerationSummary, 0, len(generations))

	for _, g := range generations {
		entry, _ := g.(map[string]any)

		desc := stringField(entry, "textDescription")
		if desc == "" {
			desc = "No description"
		} else {
			desc = truncate(desc, summaryMaxLen)
		}

		ts := "Unknown"
		if unixMs, ok := numberField(entry, "unixMs"); ok {
			ts = time.UnixMilli(unixMs).Format("1/2/2006, 3:04:05 PM")
		}

		a.out.RecentGenerations = append(a.out.RecentGenerations, GenerationSummary{
			Description: desc,
			Type:        typeKey(entry["type"]),
			Timestamp:   ts,
		})

		a.out.GenerationTypes[typeKey(entry["type"])]++
	}
}

func (a *aiServiceAccumulator) finalize() AIServiceMetrics {
	return a.out
}

// ExtractAIServiceMetrics runs only the AI service extractor over records.
func ExtractAIServiceMetrics(records []logstore.Record) AIServiceMetrics {
	reg := newRegistry()
	acc := newAIServiceAccumulator()
	acc.register(reg)
	reg.apply(records)
	return acc.finalize()
}

// promptTimestamp resolves a prompt entry's timestamp from its candidate
// fields, falling back to the synthetic value.
func promptTimestamp(entry map[string]any, fallback int64) int64 {
	for _, field := range []string{"timestamp", "unixMs", "createdAt", "date", "time"} {
		if ms, ok := numberField(entry, field); ok {
			return ms
		}
		if s, ok := entry[field].(string); ok {
			if ms, ok := logstore.ParseTimeString(s); ok {
				return ms
			}
		}
	}
	return fallback
}

func stringField(entry map[string]any, field string) string {
	s, _ := entry[field].(string)
	return s
}

func numberField(entry map[string]any, field string) (int64, bool) {
	f, ok := entry[field].(float64)
	if !ok || f <= 0 {
		return 0, false
	}
	return int64(f), true
}

// typeKey renders a categorical field value as a map key, defaulting to
// "unknown" when absent.
func typeKey(v any) string {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) != "" {
			return t
		}
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	}
	return "unknown"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
