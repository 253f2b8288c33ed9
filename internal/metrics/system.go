package metrics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

var filePathPattern = regexp.MustCompile(`file:///[^"]+`)

// systemAccumulator builds the catch-all SystemInfo category.
type systemAccumulator struct {
	out SystemInfo
}

func newSystemAccumulator() *systemAccumulator {
	return &systemAccumulator{
		out: SystemInfo{
			FilePaths:         []string{},
			SearchHistory:     []string{},
			EditorHistory:     []EditorHistoryEntry{},
			LanguageUsage:     []LanguageUsage{},
			WorkspaceSettings: make(map[string]any),
			ActivityTimeline:  []TimelineEvent{},
		},
	}
}

func (a *systemAccumulator) register(reg *registry) {
	reg.on(keyWorkspaceOpenedDate, func(rec logstore.Record) {
		a.out.WorkspaceOpenedDate = rec.Value
	})
	reg.on(keyTerminalLayoutInfo, a.onLayoutInfo)
	reg.on(keySearchHistory, a.onSearchHistory)
	reg.on(keyFindHistory, a.onFindHistory)
	reg.on(keyHistoryEntries, a.onHistory)
	reg.on(keyLanguageDetection, a.onLanguages)
	reg.on(keyTerminalEnvCollections, a.onTerminalEnv)
	reg.on(keyVSCodeGit, a.onGit)
	reg.scan(a.onEveryRecord)
}

func (a *systemAccumulator) onLayoutInfo(rec logstore.Record) {
	layout, ok := logstore.TryParse(rec.Value).Object()
	if !ok {
		return
	}
	if id, ok := layout["workspaceId"].(string); ok && id != "" {
		a.out.WorkspaceID = id
	}
}

func (a *systemAccumulator) onSearchHistory(rec logstore.Record) {
	obj, ok := logstore.TryParse(rec.Value).Object()
	if !ok {
		return
	}
	search, ok := obj["search"].([]any)
	if !ok {
		return
	}
	for _, s := range search {
		if q, ok := s.(string); ok {
			a.out.SearchHistory = append(a.out.SearchHistory, q)
		}
	}
}

func (a *systemAccumulator) onFindHistory(rec logstore.Record) {
	arr, ok := logstore.TryParse(rec.Value).Array()
	if !ok {
		return
	}
	for _, s := range arr {
		if q, ok := s.(string); ok {
			a.out.SearchHistory = append(a.out.SearchHistory, q)
		}
	}
}

func (a *systemAccumulator) onHistory(rec logstore.Record) {
	entries, ok := logstore.TryParse(rec.Value).Array()
	if !ok {
		return
	}
	history := make([]EditorHistoryEntry, 0, len(entries))
	for _, e := range entries {
		entry, _ := e.(map[string]any)
		resource := historyResource(entry)
		if resource == "" {
			continue
		}
		ts, _ := numberField(entry, "timestamp")
		history = append(history, EditorHistoryEntry{File: resource, Timestamp: ts})
	}
	a.out.EditorHistory = history
}

func (a *systemAccumulator) onLanguages(rec logstore.Record) {
	arr, ok := logstore.TryParse(rec.Value).Array()
	if !ok {
		return
	}
	usage := make([]LanguageUsage, 0, len(arr))
	for _, e := range arr {
		pair, ok := e.([]any)
		if !ok || len(pair) < 2 {
			continue
		}
		lang, _ := pair[0].(string)
		active, _ := pair[1].(bool)
		usage = append(usage, LanguageUsage{Language: lang, Active: active, Count: 1})
	}
	a.out.LanguageUsage = usage
}

func (a *systemAccumulator) onTerminalEnv(rec logstore.Record) {
	arr, ok := logstore.TryParse(rec.Value).Array()
	if !ok {
		return
	}
	hasGit := false
	for _, e := range arr {
		entry, _ := e.(map[string]any)
		if id, _ := entry["extensionIdentifier"].(string); id == "vscode.git" {
			hasGit = true
			break
		}
	}
	a.out.TerminalInfo = TerminalInfo{
		EnvironmentVariables: arr,
		HasGitIntegration:    hasGit,
	}
}

func (a *systemAccumulator) onGit(rec logstore.Record) {
	obj, ok := logstore.TryParse(rec.Value).Object()
	if !ok {
		return
	}
	closed, _ := obj["closedRepositories"].([]any)
	if closed == nil {
		closed = []any{}
	}
	a.out.GitInfo = GitInfo{ClosedRepositories: closed, HasGitIntegration: true}
}

func (a *systemAccumulator) onEveryRecord(rec logstore.Record) {
	// Workspace settings: any workbench.* key that isn't transient state.
	if strings.Contains(rec.Key, "workbench.") && !strings.Contains(rec.Key, "state") {
		a.out.WorkspaceSettings[rec.Key] = logstore.TryParse(rec.Value).Any()
	}

	// File path references anywhere in the value.
	if strings.Contains(rec.Value, "file:///") {
		a.out.FilePaths = append(a.out.FilePaths, filePathPattern.FindAllString(rec.Value, -1)...)
	}

	// Activity timeline: dated keys with a parseable value.
	if strings.Contains(rec.Key, "timestamp") ||
		strings.Contains(rec.Key, "date") ||
		strings.Contains(rec.Key, "time") {
		if ms, ok := logstore.ParseTimeString(rec.Value); ok {
			a.out.ActivityTimeline = append(a.out.ActivityTimeline, TimelineEvent{
				Key:       rec.Key,
				Timestamp: ms,
				Value:     rec.Value,
			})
		}
	}
}

func (a *systemAccumulator) finalize() SystemInfo {
	a.out.FilePaths = lo.Uniq(a.out.FilePaths)
	a.out.SearchHistory = lo.Uniq(a.out.SearchHistory)

	// Collapse repeated language detections into counted entries.
	counts := make(map[string]*LanguageUsage)
	order := []string{}
	for _, l := range a.out.LanguageUsage {
		if existing, ok := counts[l.Language]; ok {
			existing.Count++
			continue
		}
		entry := l
		counts[l.Language] = &entry
		order = append(order, l.Language)
	}
	merged := make([]LanguageUsage, 0, len(order))
	for _, lang := range order {
		merged = append(merged, *counts[lang])
	}
	a.out.LanguageUsage = merged

	sort.SliceStable(a.out.ActivityTimeline, func(i, j int) bool {
		return a.out.ActivityTimeline[i].Timestamp < a.out.ActivityTimeline[j].Timestamp
	})

	return a.out
}

// ExtractSystemInfo runs only the system extractor over records.
func ExtractSystemInfo(records []logstore.Record) SystemInfo {
	reg := newRegistry()
	acc := newSystemAccumulator()
	acc.register(reg)
	reg.apply(records)
	return acc.finalize()
}
