package metrics

import (
	"strconv"
	"strings"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

// devEnvAccumulator collects debugger, terminal, git, and extension state.
type devEnvAccumulator struct {
	out DevEnvironment
}

func newDevEnvAccumulator() *devEnvAccumulator {
	return &devEnvAccumulator{
		out: DevEnvironment{
			TerminalInfo:      make(map[string]any),
			GitInfo:           make(map[string]any),
			Extensions:        make(map[string]any),
			LanguageDetection: []any{},
		},
	}
}

func (a *devEnvAccumulator) register(reg *registry) {
	reg.on(keyDebugSelectedRoot, func(rec logstore.Record) {
		a.out.DebugConfig = rec.Value
	})
	reg.on(keyTerminalVisibleViews, func(rec logstore.Record) {
		if n, err := strconv.Atoi(strings.TrimSpace(rec.Value)); err == nil {
			a.out.TerminalInfo["visibleViews"] = n
		}
	})
	reg.on(keyVSCodeGit, func(rec logstore.Record) {
		if obj, ok := logstore.TryParse(rec.Value).Object(); ok {
			a.out.GitInfo = obj
		}
	})
	reg.on(keyLanguageDetection, func(rec logstore.Record) {
		if arr, ok := logstore.TryParse(rec.Value).Array(); ok {
			a.out.LanguageDetection = arr
		}
	})
	reg.scan(a.onEveryRecord)
}

func (a *devEnvAccumulator) onEveryRecord(rec logstore.Record) {
	if !strings.Contains(rec.Key, "extension") && !strings.Contains(rec.Key, "vscode.") {
		return
	}
	name := rec.Key
	if i := strings.LastIndex(rec.Key, "."); i >= 0 {
		name = rec.Key[i+1:]
	}
	if name == "state" {
		return
	}
	a.out.Extensions[name] = rec.Value
}

func (a *devEnvAccumulator) finalize() DevEnvironment {
	return a.out
}

// ExtractDevEnvironment runs only the dev environment extractor over records.
func ExtractDevEnvironment(records []logstore.Record) DevEnvironment {
	reg := newRegistry()
	acc := newDevEnvAccumulator()
	acc.register(reg)
	reg.apply(records)
	return acc.finalize()
}
