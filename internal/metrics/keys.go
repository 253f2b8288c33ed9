package metrics

// State database keys the extractors understand.
const (
	keyAIPrompts              = "aiService.prompts"
	keyAIGenerations          = "aiService.generations"
	keyHistoryEntries         = "history.entries"
	keyWorkspaceOpenedDate    = "cursorAuth/workspaceOpenedDate"
	keyTerminalLayoutInfo     = "terminal.integrated.layoutInfo"
	keySearchHistory          = "workbench.search.history"
	keyFindHistory            = "workbench.find.history"
	keyLanguageDetection      = "workbench.editor.languageDetectionOpenedLanguages.workspace"
	keyTerminalEnvCollections = "terminal.integrated.environmentVariableCollectionsV2"
	keyVSCodeGit              = "vscode.git"
	keyComposerData           = "composer.composerData"
	keyInteractiveSessions    = "interactive.sessions"
	keyComposerViewPane       = "workbench.panel.composerChatViewPane"
	keyTextFileEditorMemento  = "memento/workbench.editors.files.textFileEditor"
	keyAIChatVisibleViews     = "workbench.panel.aichat.numberOfVisibleViews"
	keyTerminalVisibleViews   = "terminal.numberOfVisibleViews"
	keyDebugSelectedRoot      = "debug.selectedroot"
	keyZenMode                = "workbench.zenMode.active"
	keyActivityBarHidden      = "workbench.activityBar.hidden"
	keyStatusBarHidden        = "workbench.statusBar.hidden"
	keySideBarPosition        = "workbench.sideBar.position"
	keyPanelPosition          = "workbench.panel.position"
	keyExplorerViewsState     = "workbench.explorer.views.state"
	keyPanelViewContainers    = "workbench.panel.viewContainersWorkspaceState"
)
