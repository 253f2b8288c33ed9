package metrics

import (
	"strings"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

// editorAccumulator builds EditorActivity from editor history and saved
// text-editor view state.
type editorAccumulator struct {
	out EditorActivity
}

func newEditorAccumulator() *editorAccumulator {
	return &editorAccumulator{
		out: EditorActivity{
			OpenedFiles:     []OpenedFile{},
			FileTypes:       make(map[string]int),
			CursorPositions: []CursorPosition{},
			EditorStates:    []any{},
			RecentEditors:   []any{},
		},
	}
}

func (a *editorAccumulator) register(reg *registry) {
	reg.on(keyHistoryEntries, a.onHistory)
	reg.on(keyTextFileEditorMemento, a.onMemento)
}

func (a *editorAccumulator) onHistory(rec logstore.Record) {
	entries, ok := logstore.TryParse(rec.Value).Array()
	if !ok {
		return
	}

	a.out.OpenedFiles = make([]OpenedFile, 0, len(entries))
	for _, e := range entries {
		entry, _ := e.(map[string]any)

		path := historyResource(entry)
		fileName := path
		if idx := strings.LastIndex(path, "/"); idx >= 0 && idx+1 < len(path) {
			fileName = path[idx+1:]
		}

		ts := entryTimestamp(entry, rec.LogMtime)
		lastModified := ts
		if ms, ok := numberField(entry, "lastModified"); ok {
			lastModified = ms
		}

		a.out.OpenedFiles = append(a.out.OpenedFiles, OpenedFile{
			Path:         path,
			FileName:     fileName,
			FileType:     fileExtension(fileName),
			Timestamp:    ts,
			LastModified: lastModified,
		})
	}

	for _, f := range a.out.OpenedFiles {
		a.out.FileTypes[f.FileType]++
	}
}

func (a *editorAccumulator) onMemento(rec logstore.Record) {
	state, ok := logstore.TryParse(rec.Value).Object()
	if !ok {
		return
	}
	viewStates, ok := state["textEditorViewState"].([]any)
	if !ok {
		return
	}

	// textEditorViewState is a list of [filePath, {"0": {cursorState: [...]}}]
	// pairs serialized from a Map.
	for _, vs := range viewStates {
		pair, ok := vs.([]any)
		if !ok || len(pair) < 2 {
			continue
		}
		filePath, _ := pair[0].(string)
		stateObj, _ := pair[1].(map[string]any)
		inner, _ := stateObj["0"].(map[string]any)
		cursorStates, _ := inner["cursorState"].([]any)
		if len(cursorStates) == 0 {
			continue
		}
		first, _ := cursorStates[0].(map[string]any)
		position, _ := first["position"].(map[string]any)
		if position == nil {
			continue
		}
		line, _ := position["lineNumber"].(float64)
		column, _ := position["column"].(float64)
		a.out.CursorPositions = append(a.out.CursorPositions, CursorPosition{
			File:   filePath,
			Line:   int(line),
			Column: int(column),
		})
	}
}

func (a *editorAccumulator) finalize() EditorActivity {
	return a.out
}

// ExtractEditorActivity runs only the editor extractor over records.
func ExtractEditorActivity(records []logstore.Record) EditorActivity {
	reg := newRegistry()
	acc := newEditorAccumulator()
	acc.register(reg)
	reg.apply(records)
	return acc.finalize()
}

func historyResource(entry map[string]any) string {
	editor, _ := entry["editor"].(map[string]any)
	resource, _ := editor["resource"].(string)
	return resource
}

// entryTimestamp walks the candidate timestamp fields before falling back
// to the record's capture time.
func entryTimestamp(entry map[string]any, logMtime int64) int64 {
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
	return logMtime
}

func fileExtension(fileName string) string {
	if idx := strings.LastIndex(fileName, "."); idx >= 0 && idx+1 < len(fileName) {
		return fileName[idx+1:]
	}
	return "unknown"
}
