package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

// performanceAccumulator derives activity counters and timing proxies from
// across the record set. Response times measure staleness relative to the
// aggregation run, not request latency.
type performanceAccumulator struct {
	out       PerformanceMetrics
	fileTypes map[string]struct{}
	now       func() time.Time
}

func newPerformanceAccumulator() *performanceAccumulator {
	return &performanceAccumulator{
		out: PerformanceMetrics{
			ResponseTimes:  []ResponseTime{},
			ErrorRates:     []ErrorEvent{},
			FileOperations: []FileOperation{},
		},
		fileTypes: make(map[string]struct{}),
		now:       time.Now,
	}
}

func (a *performanceAccumulator) register(reg *registry) {
	reg.on(keyAIPrompts, a.onAIEntries)
	reg.on(keyAIGenerations, a.onAIEntries)
	reg.on(keyHistoryEntries, a.onHistory)
	reg.on(keyFindHistory, a.onFindHistory)
	reg.on(keySearchHistory, a.onSearchHistory)
	reg.on(keyTerminalLayoutInfo, a.onLayoutInfo)
	reg.on(keyComposerData, a.onComposerData)
	reg.on(keyTextFileEditorMemento, a.onMemento)
	reg.on(keyAIChatVisibleViews, a.onChatViews)
	reg.on(keyTerminalVisibleViews, a.onTerminalViews)
	reg.scan(a.onEveryRecord)
}

func (a *performanceAccumulator) onAIEntries(rec logstore.Record) {
	entries, ok := logstore.TryParse(rec.Value).Array()
	if !ok {
		return
	}
	nowMs := a.now().UnixMilli()
	for _, e := range entries {
		entry, _ := e.(map[string]any)
		if unixMs, ok := numberField(entry, "unixMs"); ok {
			a.out.ResponseTimes = append(a.out.ResponseTimes, ResponseTime{
				Key:              rec.Key,
				TimeSinceEventMs: nowMs - unixMs,
				Timestamp:        unixMs,
			})
		}
		desc := stringField(entry, "textDescription")
		if desc != "" && strings.Contains(strings.ToLower(desc), "error") {
			ts, ok := numberField(entry, "unixMs")
			if !ok {
				ts = nowMs
			}
			a.out.ErrorRates = append(a.out.ErrorRates, ErrorEvent{
				Key:       rec.Key,
				Value:     desc,
				Timestamp: ts,
			})
		}
	}
}

func (a *performanceAccumulator) onHistory(rec logstore.Record) {
	entries, ok := logstore.TryParse(rec.Value).Array()
	if !ok {
		return
	}
	a.out.WorkspaceActivity.TotalFiles = len(entries)
	for _, e := range entries {
		entry, _ := e.(map[string]any)
		resource := historyResource(entry)
		if resource == "" {
			continue
		}
		ts := entryTimestamp(entry, rec.LogMtime)
		a.out.FileOperations = append(a.out.FileOperations, FileOperation{
			Key:       "file_opened",
			Value:     resource,
			Timestamp: ts,
		})
		a.fileTypes[fileExtension(resource)] = struct{}{}
	}
}

func (a *performanceAccumulator) onFindHistory(rec logstore.Record) {
	if arr, ok := logstore.TryParse(rec.Value).Array(); ok {
		a.out.SearchActivity.FindHistory = len(arr)
	}
}

func (a *performanceAccumulator) onSearchHistory(rec logstore.Record) {
	obj, ok := logstore.TryParse(rec.Value).Object()
	if !ok {
		return
	}
	if search, ok := obj["search"].([]any); ok {
		a.out.SearchActivity.SearchQueries = len(search)
	}
}

func (a *performanceAccumulator) onLayoutInfo(rec logstore.Record) {
	obj, ok := logstore.TryParse(rec.Value).Object()
	if !ok {
		return
	}
	if tabs, ok := obj["tabs"].([]any); ok {
		a.out.TerminalActivity.TerminalSessions = len(tabs)
	}
}

func (a *performanceAccumulator) onComposerData(rec logstore.Record) {
	obj, ok := logstore.TryParse(rec.Value).Object()
	if !ok {
		return
	}
	if composers, ok := obj["allComposers"].([]any); ok {
		a.out.ComposerActivity.TotalComposers = len(composers)
	}
	if selected, ok := obj["selectedComposerIds"].([]any); ok {
		a.out.ComposerActivity.ActiveComposers = len(selected)
	}
}

func (a *performanceAccumulator) onMemento(rec logstore.Record) {
	obj, ok := logstore.TryParse(rec.Value).Object()
	if !ok {
		return
	}
	if states, ok := obj["textEditorViewState"].([]any); ok {
		a.out.WorkspaceActivity.EditorStates = len(states)
	}
}

func (a *performanceAccumulator) onChatViews(rec logstore.Record) {
	if n, err := strconv.Atoi(strings.TrimSpace(rec.Value)); err == nil {
		a.out.WorkspaceActivity.ActiveSessions += n
	}
}

func (a *performanceAccumulator) onTerminalViews(rec logstore.Record) {
	if n, err := strconv.Atoi(strings.TrimSpace(rec.Value)); err == nil {
		a.out.TerminalActivity.TerminalSessions += n
	}
}

func (a *performanceAccumulator) onEveryRecord(rec logstore.Record) {
	if strings.Contains(rec.Key, "performance") ||
		strings.Contains(rec.Key, "memory") ||
		strings.Contains(rec.Key, "cpu") {
		if a.out.Custom == nil {
			a.out.Custom = make(map[string]any)
		}
		a.out.Custom[rec.Key] = logstore.TryParse(rec.Value).Any()
	}
}

func (a *performanceAccumulator) finalize() PerformanceMetrics {
	a.out.WorkspaceActivity.UniqueFileTypes = len(a.fileTypes)
	return a.out
}

// ExtractPerformanceMetrics runs only the performance extractor over records.
func ExtractPerformanceMetrics(records []logstore.Record) PerformanceMetrics {
	reg := newRegistry()
	acc := newPerformanceAccumulator()
	acc.register(reg)
	reg.apply(records)
	return acc.finalize()
}
