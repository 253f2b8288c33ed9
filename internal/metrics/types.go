package metrics

// Each category struct mirrors one extractor's output. Meaningful reports
// whether the category carries enough data to be worth including in the
// aggregated result; empty categories are dropped there.

// KeyValue is a captured raw key/value pair.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TimelineEvent is a dated record occurrence on the activity timeline.
type TimelineEvent struct {
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
	Value     string `json:"value"`
}

// EditorHistoryEntry is one opened-file event from history.entries.
type EditorHistoryEntry struct {
	File      string `json:"file"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// LanguageUsage aggregates language-detection occurrences.
type LanguageUsage struct {
	Language string `json:"language"`
	Active   bool   `json:"active"`
	Count    int    `json:"count"`
}

// TerminalInfo summarizes terminal environment state.
type TerminalInfo struct {
	EnvironmentVariables any  `json:"environmentVariables,omitempty"`
	HasGitIntegration    bool `json:"hasGitIntegration"`
}

// GitInfo summarizes the vscode.git extension state.
type GitInfo struct {
	ClosedRepositories []any `json:"closedRepositories"`
	HasGitIntegration  bool  `json:"hasGitIntegration"`
}

// SystemInfo is the catch-all workspace/system category.
type SystemInfo struct {
	WorkspaceOpenedDate string               `json:"workspaceOpenedDate,omitempty"`
	UserAgent           string               `json:"userAgent,omitempty"`
	Platform            string               `json:"platform,omitempty"`
	OS                  string               `json:"os,omitempty"`
	CursorVersion       string               `json:"cursorVersion,omitempty"`
	WorkspaceID         string               `json:"workspaceId,omitempty"`
	MachineID           string               `json:"machineId,omitempty"`
	IPAddress           string               `json:"ipAddress,omitempty"`
	FilePaths           []string             `json:"filePaths"`
	SearchHistory       []string             `json:"searchHistory"`
	EditorHistory       []EditorHistoryEntry `json:"editorHistory"`
	LanguageUsage       []LanguageUsage      `json:"languageUsage"`
	WorkspaceSettings   map[string]any       `json:"workspaceSettings"`
	TerminalInfo        TerminalInfo         `json:"terminalInfo"`
	GitInfo             GitInfo              `json:"gitInfo"`
	ActivityTimeline    []TimelineEvent      `json:"activityTimeline"`
}

func (s SystemInfo) Meaningful() bool {
	return len(s.SearchHistory) > 0 ||
		len(s.EditorHistory) > 0 ||
		len(s.LanguageUsage) > 0 ||
		len(s.ActivityTimeline) > 0 ||
		s.WorkspaceOpenedDate != "" ||
		s.UserAgent != "" ||
		s.Platform != "" ||
		s.OS != "" ||
		s.CursorVersion != "" ||
		s.WorkspaceID != "" ||
		s.MachineID != "" ||
		s.IPAddress != ""
}

// NetworkInfo carries best-guess network identity heuristics. IPAddress and
// UserAgent are heuristic labels, not hard facts: when no browser signature
// or address is found in any record, IDE/localhost defaults are substituted.
type NetworkInfo struct {
	IPAddress         string     `json:"ipAddress,omitempty"`
	UserAgent         string     `json:"userAgent,omitempty"`
	RemoteConnections []KeyValue `json:"remoteConnections"`
}

func (n NetworkInfo) Meaningful() bool {
	return n.UserAgent != "" || n.IPAddress != "" || len(n.RemoteConnections) > 0
}

// ResponseTime records time-since-event for an AI service entry. The value
// is staleness at query time, not true request latency.
type ResponseTime struct {
	Key              string `json:"key"`
	TimeSinceEventMs int64  `json:"time"`
	Timestamp        int64  `json:"timestamp"`
}

// ErrorEvent is an AI entry whose description mentions an error.
type ErrorEvent struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

// FileOperation is a file-open event derived from editor history.
type FileOperation struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

type WorkspaceActivity struct {
	TotalFiles      int `json:"totalFiles"`
	UniqueFileTypes int `json:"uniqueFileTypes"`
	ActiveSessions  int `json:"activeSessions"`
	EditorStates    int `json:"editorStates"`
}

type SearchActivity struct {
	SearchQueries int `json:"searchQueries"`
	FindHistory   int `json:"findHistory"`
}

type TerminalActivity struct {
	TerminalSessions int `json:"terminalSessions"`
	Commands         int `json:"commands"`
}

type ComposerActivity struct {
	TotalComposers  int `json:"totalComposers"`
	ActiveComposers int `json:"activeComposers"`
}

// PerformanceMetrics aggregates activity counters and timing proxies.
type PerformanceMetrics struct {
	ResponseTimes     []ResponseTime    `json:"responseTimes"`
	ErrorRates        []ErrorEvent      `json:"errorRates"`
	FileOperations    []FileOperation   `json:"fileOperations"`
	WorkspaceActivity WorkspaceActivity `json:"workspaceActivity"`
	SearchActivity    SearchActivity    `json:"searchActivity"`
	TerminalActivity  TerminalActivity  `json:"terminalActivity"`
	ComposerActivity  ComposerActivity  `json:"composerActivity"`
	Custom            map[string]any    `json:"custom,omitempty"`
}

func (p PerformanceMetrics) Meaningful() bool {
	wa := p.WorkspaceActivity
	sa := p.SearchActivity
	return len(p.ResponseTimes) > 0 ||
		len(p.ErrorRates) > 0 ||
		len(p.FileOperations) > 0 ||
		wa.TotalFiles > 0 || wa.UniqueFileTypes > 0 || wa.EditorStates > 0 ||
		sa.SearchQueries > 0 || sa.FindHistory > 0 ||
		p.TerminalActivity.TerminalSessions > 0 ||
		p.ComposerActivity.TotalComposers > 0 || p.ComposerActivity.ActiveComposers > 0
}

// ProcessLogs is a reserved category; snapshots carry no process-level data
// today, so it is always empty and never meaningful.
type ProcessLogs struct {
	TotalProcesses int   `json:"totalProcesses"`
	ProcessList    []any `json:"processList"`
	MemoryUsage    []any `json:"memoryUsage"`
	CPUUsage       []any `json:"cpuUsage"`
}

func (p ProcessLogs) Meaningful() bool {
	return p.TotalProcesses > 0 ||
		len(p.ProcessList) > 0 ||
		len(p.MemoryUsage) > 0 ||
		len(p.CPUUsage) > 0
}

// PromptSummary is a truncated view of one AI prompt. The timestamp fields
// all carry the same resolved value so chart code can read whichever it
// expects.
type PromptSummary struct {
	Text        string `json:"text"`
	CommandType string `json:"commandType"`
	Timestamp   int64  `json:"timestamp"`
	UnixMs      int64  `json:"unixMs"`
	CreatedAt   int64  `json:"createdAt"`
	Date        int64  `json:"date"`
	Time        int64  `json:"time"`
}

// GenerationSummary is a truncated view of one AI generation.
type GenerationSummary struct {
	Description string `json:"description"`
	Type        string `json:"type"`
	Timestamp   string `json:"timestamp"`
}

// AIServiceMetrics summarizes AI prompt and generation activity.
type AIServiceMetrics struct {
	TotalPrompts      int                 `json:"totalPrompts"`
	TotalGenerations  int                 `json:"totalGenerations"`
	PromptTypes       map[string]int      `json:"promptTypes"`
	GenerationTypes   map[string]int      `json:"generationTypes"`
	RecentPrompts     []PromptSummary     `json:"recentPrompts"`
	RecentGenerations []GenerationSummary `json:"recentGenerations"`
}

func (a AIServiceMetrics) Meaningful() bool {
	return a.TotalPrompts > 0 || a.TotalGenerations > 0 ||
		len(a.RecentPrompts) > 0 || len(a.RecentGenerations) > 0
}

// OpenedFile is one file-open event with derived name and type.
type OpenedFile struct {
	Path         string `json:"path"`
	FileName     string `json:"fileName"`
	FileType     string `json:"fileType"`
	Timestamp    int64  `json:"timestamp"`
	LastModified int64  `json:"lastModified"`
}

// CursorPosition is a saved cursor location from editor view state.
type CursorPosition struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// EditorActivity summarizes file and editor usage.
type EditorActivity struct {
	OpenedFiles     []OpenedFile     `json:"openedFiles"`
	FileTypes       map[string]int   `json:"fileTypes"`
	CursorPositions []CursorPosition `json:"cursorPositions"`
	EditorStates    []any            `json:"editorStates"`
	RecentEditors   []any            `json:"recentEditors"`
}

func (e EditorActivity) Meaningful() bool {
	return len(e.OpenedFiles) > 0 ||
		len(e.CursorPositions) > 0 ||
		len(e.EditorStates) > 0
}

// WorkspaceSettings captures UI and layout preferences.
type WorkspaceSettings struct {
	WorkspaceOpenedDate string            `json:"workspaceOpenedDate,omitempty"`
	UISettings          map[string]string `json:"uiSettings"`
	PanelStates         map[string]any    `json:"panelStates"`
	SidebarStates       map[string]any    `json:"sidebarStates"`
	ZenMode             bool              `json:"zenMode"`
	ActivityBarHidden   bool              `json:"activityBarHidden"`
	StatusBarHidden     bool              `json:"statusBarHidden"`
}

func (w WorkspaceSettings) Meaningful() bool {
	return w.WorkspaceOpenedDate != "" ||
		len(w.UISettings) > 0 ||
		len(w.PanelStates) > 0 ||
		len(w.SidebarStates) > 0 ||
		w.ZenMode || w.ActivityBarHidden || w.StatusBarHidden
}

// DevEnvironment captures debug, terminal, git, and extension state.
type DevEnvironment struct {
	DebugConfig       string         `json:"debugConfig,omitempty"`
	TerminalInfo      map[string]any `json:"terminalInfo"`
	GitInfo           map[string]any `json:"gitInfo"`
	Extensions        map[string]any `json:"extensions"`
	LanguageDetection []any          `json:"languageDetection"`
}

func (d DevEnvironment) Meaningful() bool {
	return d.DebugConfig != "" ||
		len(d.TerminalInfo) > 0 ||
		len(d.GitInfo) > 0 ||
		len(d.Extensions) > 0 ||
		len(d.LanguageDetection) > 0
}

// ComposerData captures composer and chat session state.
type ComposerData struct {
	Composers      []any          `json:"composers"`
	ActiveComposer string         `json:"activeComposer,omitempty"`
	ChatSessions   []any          `json:"chatSessions"`
	ComposerStates map[string]any `json:"composerStates"`
}

func (c ComposerData) Meaningful() bool {
	return len(c.Composers) > 0 ||
		c.ActiveComposer != "" ||
		len(c.ChatSessions) > 0 ||
		len(c.ComposerStates) > 0
}

// Metrics is the consolidated result of one aggregation pass. Category
// pointers are nil when the category had no meaningful data; the sensitive
// scan results and the raw feeds are always present, even when empty.
type Metrics struct {
	SystemInfo         *SystemInfo         `json:"systemInfo,omitempty"`
	NetworkInfo        *NetworkInfo        `json:"networkInfo,omitempty"`
	PerformanceMetrics *PerformanceMetrics `json:"performanceMetrics,omitempty"`
	ProcessLogs        *ProcessLogs        `json:"processLogs,omitempty"`
	AIServiceMetrics   *AIServiceMetrics   `json:"aiServiceMetrics,omitempty"`
	EditorActivity     *EditorActivity     `json:"editorActivity,omitempty"`
	WorkspaceSettings  *WorkspaceSettings  `json:"workspaceSettings,omitempty"`
	DevEnvironment     *DevEnvironment     `json:"devEnvironment,omitempty"`
	ComposerData       *ComposerData       `json:"composerData,omitempty"`

	SensitiveResults       []SensitiveMatch `json:"sensitiveResults"`
	SensitiveKeywordCounts map[string]int   `json:"sensitiveKeywordCounts"`
	Prompts                []any            `json:"prompts"`
	Generations            []any            `json:"generations"`
	HistoryEntries         []any            `json:"historyEntries"`
}

// HasMeaningfulData reports whether any category survived gating or any
// always-present feed is non-empty.
func (m Metrics) HasMeaningfulData() bool {
	return m.SystemInfo != nil ||
		m.NetworkInfo != nil ||
		m.PerformanceMetrics != nil ||
		m.ProcessLogs != nil ||
		m.AIServiceMetrics != nil ||
		m.EditorActivity != nil ||
		m.WorkspaceSettings != nil ||
		m.DevEnvironment != nil ||
		m.ComposerData != nil ||
		len(m.Prompts) > 0 ||
		len(m.Generations) > 0 ||
		len(m.HistoryEntries) > 0
}
