package metrics

import (
	"testing"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

func TestExtractSystemInfo(t *testing.T) {
	records := []logstore.Record{
		{Key: keyWorkspaceOpenedDate, Value: "2024-05-10T09:00:00.000Z"},
		{Key: keyTerminalLayoutInfo, Value: `{"workspaceId":"ws-123","tabs":[{}]}`},
		{Key: keySearchHistory, Value: `{"search":["TODO","fixme"]}`},
		{Key: keyFindHistory, Value: `["TODO","handler"]`},
		{Key: keyLanguageDetection, Value: `[["go",true],["go",false],["json",false]]`},
		{Key: keyTerminalEnvCollections, Value: `[{"extensionIdentifier":"vscode.git"}]`},
		{Key: keyVSCodeGit, Value: `{"closedRepositories":["/old/repo"]}`},
	}

	si := ExtractSystemInfo(records)

	if si.WorkspaceOpenedDate != "2024-05-10T09:00:00.000Z" {
		t.Errorf("WorkspaceOpenedDate = %q", si.WorkspaceOpenedDate)
	}
	if si.WorkspaceID != "ws-123" {
		t.Errorf("WorkspaceID = %q", si.WorkspaceID)
	}

	// "TODO" appears in both search and find history; dedup keeps one.
	wantSearch := []string{"TODO", "fixme", "handler"}
	if len(si.SearchHistory) != len(wantSearch) {
		t.Fatalf("SearchHistory = %v", si.SearchHistory)
	}
	for i, q := range wantSearch {
		if si.SearchHistory[i] != q {
			t.Errorf("SearchHistory[%d] = %q, want %q", i, si.SearchHistory[i], q)
		}
	}

	if len(si.LanguageUsage) != 2 {
		t.Fatalf("LanguageUsage = %v", si.LanguageUsage)
	}
	if si.LanguageUsage[0].Language != "go" || si.LanguageUsage[0].Count != 2 {
		t.Errorf("go usage = %+v", si.LanguageUsage[0])
	}
	if si.LanguageUsage[1].Language != "json" || si.LanguageUsage[1].Count != 1 {
		t.Errorf("json usage = %+v", si.LanguageUsage[1])
	}

	if !si.TerminalInfo.HasGitIntegration {
		t.Error("TerminalInfo.HasGitIntegration = false")
	}
	if !si.GitInfo.HasGitIntegration || len(si.GitInfo.ClosedRepositories) != 1 {
		t.Errorf("GitInfo = %+v", si.GitInfo)
	}
}

func TestSystemInfoFilePathsAndSettingsScan(t *testing.T) {
	records := []logstore.Record{
		{Key: "workbench.sideBar.position", Value: "left"},
		{Key: "workbench.explorer.views.state", Value: `{}`},
		{Key: "some.entry", Value: `{"uri":"file:///a/b.go","other":"file:///a/b.go"}`},
	}

	si := ExtractSystemInfo(records)

	if _, ok := si.WorkspaceSettings["workbench.sideBar.position"]; !ok {
		t.Errorf("WorkspaceSettings = %v", si.WorkspaceSettings)
	}
	// Keys containing "state" are transient and excluded.
	if _, ok := si.WorkspaceSettings["workbench.explorer.views.state"]; ok {
		t.Error("state key should be excluded from WorkspaceSettings")
	}

	if len(si.FilePaths) != 1 {
		t.Fatalf("FilePaths = %v, want one deduplicated path", si.FilePaths)
	}
}

func TestSystemInfoActivityTimelineSorted(t *testing.T) {
	records := []logstore.Record{
		{Key: "later.date", Value: "2024-05-20"},
		{Key: "earlier.date", Value: "2024-05-10"},
		{Key: "unparseable.date", Value: "not a date"},
	}

	si := ExtractSystemInfo(records)

	if len(si.ActivityTimeline) != 2 {
		t.Fatalf("ActivityTimeline = %v", si.ActivityTimeline)
	}
	if si.ActivityTimeline[0].Key != "earlier.date" {
		t.Errorf("timeline[0] = %+v", si.ActivityTimeline[0])
	}
	if si.ActivityTimeline[1].Key != "later.date" {
		t.Errorf("timeline[1] = %+v", si.ActivityTimeline[1])
	}
}

func TestSystemInfoEmptyNotMeaningful(t *testing.T) {
	if ExtractSystemInfo(nil).Meaningful() {
		t.Error("empty SystemInfo should not be meaningful")
	}
}
