package metrics

import (
	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

// workspaceAccumulator collects UI and layout preferences.
type workspaceAccumulator struct {
	out WorkspaceSettings
}

func newWorkspaceAccumulator() *workspaceAccumulator {
	return &workspaceAccumulator{
		out: WorkspaceSettings{
			UISettings:    make(map[string]string),
			PanelStates:   make(map[string]any),
			SidebarStates: make(map[string]any),
		},
	}
}

func (a *workspaceAccumulator) register(reg *registry) {
	reg.on(keyWorkspaceOpenedDate, func(rec logstore.Record) {
		a.out.WorkspaceOpenedDate = rec.Value
	})
	reg.on(keyZenMode, func(rec logstore.Record) {
		a.out.ZenMode = rec.Value == "true"
	})
	reg.on(keyActivityBarHidden, func(rec logstore.Record) {
		a.out.ActivityBarHidden = rec.Value == "true"
	})
	reg.on(keyStatusBarHidden, func(rec logstore.Record) {
		a.out.StatusBarHidden = rec.Value == "true"
	})
	reg.on(keySideBarPosition, func(rec logstore.Record) {
		a.out.UISettings["sidebarPosition"] = rec.Value
	})
	reg.on(keyPanelPosition, func(rec logstore.Record) {
		a.out.UISettings["panelPosition"] = rec.Value
	})
	reg.on(keyExplorerViewsState, func(rec logstore.Record) {
		a.out.SidebarStates["explorer"] = logstore.TryParse(rec.Value).Any()
	})
	reg.on(keyPanelViewContainers, func(rec logstore.Record) {
		if obj, ok := logstore.TryParse(rec.Value).Object(); ok {
			a.out.PanelStates = obj
		}
	})
}

func (a *workspaceAccumulator) finalize() WorkspaceSettings {
	return a.out
}

// ExtractWorkspaceSettings runs only the workspace extractor over records.
func ExtractWorkspaceSettings(records []logstore.Record) WorkspaceSettings {
	reg := newRegistry()
	acc := newWorkspaceAccumulator()
	acc.register(reg)
	reg.apply(records)
	return acc.finalize()
}
