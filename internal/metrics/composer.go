package metrics

import (
	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

// composerAccumulator collects composer and chat session state.
type composerAccumulator struct {
	out ComposerData
}

func newComposerAccumulator() *composerAccumulator {
	return &composerAccumulator{
		out: ComposerData{
			Composers:      []any{},
			ChatSessions:   []any{},
			ComposerStates: make(map[string]any),
		},
	}
}

func (a *composerAccumulator) register(reg *registry) {
	reg.on(keyComposerData, a.onComposerData)
	reg.on(keyInteractiveSessions, func(rec logstore.Record) {
		if arr, ok := logstore.TryParse(rec.Value).Array(); ok {
			a.out.ChatSessions = arr
		}
	})
	reg.on(keyComposerViewPane, func(rec logstore.Record) {
		if obj, ok := logstore.TryParse(rec.Value).Object(); ok {
			a.out.ComposerStates = obj
		}
	})
}

func (a *composerAccumulator) onComposerData(rec logstore.Record) {
	obj, ok := logstore.TryParse(rec.Value).Object()
	if !ok {
		return
	}
	if composers, ok := obj["allComposers"].([]any); ok {
		a.out.Composers = composers
	}
	if selected, ok := obj["selectedComposerIds"].([]any); ok && len(selected) > 0 {
		if id, ok := selected[0].(string); ok {
			a.out.ActiveComposer = id
		}
	}
}

func (a *composerAccumulator) finalize() ComposerData {
	return a.out
}

// ExtractComposerData runs only the composer extractor over records.
func ExtractComposerData(records []logstore.Record) ComposerData {
	reg := newRegistry()
	acc := newComposerAccumulator()
	acc.register(reg)
	reg.apply(records)
	return acc.finalize()
}
