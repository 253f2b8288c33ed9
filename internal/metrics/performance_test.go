package metrics

import (
	"testing"
	"time"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

func TestPerformanceResponseTimes(t *testing.T) {
	acc := newPerformanceAccumulator()
	fixed := time.UnixMilli(1700000005000)
	acc.now = func() time.Time { return fixed }

	acc.onAIEntries(logstore.Record{
		Key:   keyAIGenerations,
		Value: `[{"unixMs":1700000000000},{"noTimestamp":true}]`,
	})

	out := acc.finalize()
	if len(out.ResponseTimes) != 1 {
		t.Fatalf("ResponseTimes = %v", out.ResponseTimes)
	}
	rt := out.ResponseTimes[0]
	if rt.TimeSinceEventMs != 5000 {
		t.Errorf("TimeSinceEventMs = %d, want 5000", rt.TimeSinceEventMs)
	}
	if rt.Timestamp != 1700000000000 {
		t.Errorf("Timestamp = %d", rt.Timestamp)
	}
	if rt.Key != keyAIGenerations {
		t.Errorf("Key = %q", rt.Key)
	}
}

func TestPerformanceErrorRates(t *testing.T) {
	pm := ExtractPerformanceMetrics([]logstore.Record{
		{Key: keyAIGenerations, Value: `[{"textDescription":"Error: build failed","unixMs":1700000000000},{"textDescription":"all good"}]`},
	})

	if len(pm.ErrorRates) != 1 {
		t.Fatalf("ErrorRates = %v", pm.ErrorRates)
	}
	if pm.ErrorRates[0].Value != "Error: build failed" {
		t.Errorf("Value = %q", pm.ErrorRates[0].Value)
	}
	if pm.ErrorRates[0].Timestamp != 1700000000000 {
		t.Errorf("Timestamp = %d", pm.ErrorRates[0].Timestamp)
	}
}

func TestPerformanceActivityCounters(t *testing.T) {
	records := []logstore.Record{
		{Key: keyHistoryEntries, Value: `[{"editor":{"resource":"file:///a/main.go"}},{"editor":{"resource":"file:///a/util.go"}},{"editor":{"resource":"file:///a/notes.md"}}]`},
		{Key: keyFindHistory, Value: `["a","b"]`},
		{Key: keySearchHistory, Value: `{"search":["q"]}`},
		{Key: keyTerminalLayoutInfo, Value: `{"tabs":[{},{}]}`},
		{Key: keyComposerData, Value: `{"allComposers":[{},{}],"selectedComposerIds":["c1"]}`},
		{Key: keyTextFileEditorMemento, Value: `{"textEditorViewState":[["f",{}]]}`},
		{Key: keyAIChatVisibleViews, Value: `3`},
		{Key: keyTerminalVisibleViews, Value: `2`},
	}

	pm := ExtractPerformanceMetrics(records)

	if pm.WorkspaceActivity.TotalFiles != 3 {
		t.Errorf("TotalFiles = %d, want 3", pm.WorkspaceActivity.TotalFiles)
	}
	if pm.WorkspaceActivity.UniqueFileTypes != 2 {
		t.Errorf("UniqueFileTypes = %d, want 2", pm.WorkspaceActivity.UniqueFileTypes)
	}
	if pm.WorkspaceActivity.ActiveSessions != 3 {
		t.Errorf("ActiveSessions = %d, want 3", pm.WorkspaceActivity.ActiveSessions)
	}
	if pm.WorkspaceActivity.EditorStates != 1 {
		t.Errorf("EditorStates = %d, want 1", pm.WorkspaceActivity.EditorStates)
	}
	if pm.SearchActivity.FindHistory != 2 || pm.SearchActivity.SearchQueries != 1 {
		t.Errorf("SearchActivity = %+v", pm.SearchActivity)
	}
	// Terminal layout reports two tabs, then the visible-views counter adds.
	if pm.TerminalActivity.TerminalSessions != 4 {
		t.Errorf("TerminalSessions = %d, want 4", pm.TerminalActivity.TerminalSessions)
	}
	if pm.ComposerActivity.TotalComposers != 2 || pm.ComposerActivity.ActiveComposers != 1 {
		t.Errorf("ComposerActivity = %+v", pm.ComposerActivity)
	}
	if len(pm.FileOperations) != 3 {
		t.Errorf("FileOperations = %d", len(pm.FileOperations))
	}
}

func TestPerformanceCustomScan(t *testing.T) {
	pm := ExtractPerformanceMetrics([]logstore.Record{
		{Key: "editor.memory.limit", Value: "512"},
		{Key: "unrelated", Value: "x"},
	})

	if len(pm.Custom) != 1 {
		t.Fatalf("Custom = %v", pm.Custom)
	}
	if pm.Custom["editor.memory.limit"] != float64(512) {
		t.Errorf("Custom value = %v", pm.Custom["editor.memory.limit"])
	}
}
