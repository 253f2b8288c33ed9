package metrics

import (
	"log"
	"time"

	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

// Aggregator runs every extractor over the log store in a single pass and
// assembles the consolidated Metrics document.
type Aggregator struct {
	store   *logstore.Store
	scanner *Scanner
	logger  *log.Logger
}

// NewAggregator builds an aggregator over store. The scanner's sink decides
// where keyword counts are persisted.
func NewAggregator(store *logstore.Store, scanner *Scanner) *Aggregator {
	return &Aggregator{
		store:   store,
		scanner: scanner,
		logger:  log.New(log.Writer(), "[metrics] ", log.Flags()),
	}
}

// Aggregate loads the store, filters records to [start, end], and runs all
// category extractors plus the sensitive scan over the filtered set.
// Categories that end up with no meaningful data are dropped from the result.
func (a *Aggregator) Aggregate(start, end time.Time) Metrics {
	records := a.store.Load()
	filtered := logstore.FilterByRange(records, start, end)
	a.logger.Printf("aggregating %d of %d records between %s and %s",
		len(filtered), len(records), start.Format(time.RFC3339), end.Format(time.RFC3339))
	return a.aggregateRecords(filtered)
}

func (a *Aggregator) aggregateRecords(records []logstore.Record) Metrics {
	reg := newRegistry()

	system := newSystemAccumulator()
	network := newNetworkAccumulator()
	performance := newPerformanceAccumulator()
	aiService := newAIServiceAccumulator()
	editor := newEditorAccumulator()
	workspace := newWorkspaceAccumulator()
	devEnv := newDevEnvAccumulator()
	composer := newComposerAccumulator()
	feeds := newRawFeeds()

	system.register(reg)
	network.register(reg)
	performance.register(reg)
	aiService.register(reg)
	editor.register(reg)
	workspace.register(reg)
	devEnv.register(reg)
	composer.register(reg)
	feeds.register(reg)

	reg.apply(records)

	m := Metrics{
		Prompts:        feeds.prompts,
		Generations:    feeds.generations,
		HistoryEntries: feeds.history,
	}
	m.SensitiveResults, m.SensitiveKeywordCounts = a.scanner.Scan(records)

	if v := system.finalize(); v.Meaningful() {
		m.SystemInfo = &v
	}
	if v := network.finalize(); v.Meaningful() {
		m.NetworkInfo = &v
	}
	if v := performance.finalize(); v.Meaningful() {
		m.PerformanceMetrics = &v
	}
	if v := ExtractProcessLogs(records); v.Meaningful() {
		m.ProcessLogs = &v
	}
	if v := aiService.finalize(); v.Meaningful() {
		m.AIServiceMetrics = &v
	}
	if v := editor.finalize(); v.Meaningful() {
		m.EditorActivity = &v
	}
	if v := workspace.finalize(); v.Meaningful() {
		m.WorkspaceSettings = &v
	}
	if v := devEnv.finalize(); v.Meaningful() {
		m.DevEnvironment = &v
	}
	if v := composer.finalize(); v.Meaningful() {
		m.ComposerData = &v
	}
	return m
}

// rawFeeds concatenates the unprocessed AI and history arrays across
// records, preserving document order. They back the paginated listings.
type rawFeeds struct {
	prompts     []any
	generations []any
	history     []any
}

func newRawFeeds() *rawFeeds {
	return &rawFeeds{prompts: []any{}, generations: []any{}, history: []any{}}
}

func (f *rawFeeds) register(reg *registry) {
	reg.on(keyAIPrompts, func(rec logstore.Record) {
		if arr, ok := logstore.TryParse(rec.Value).Array(); ok {
			f.prompts = append(f.prompts, arr...)
		}
	})
	reg.on(keyAIGenerations, func(rec logstore.Record) {
		if arr, ok := logstore.TryParse(rec.Value).Array(); ok {
			f.generations = append(f.generations, arr...)
		}
	})
	reg.on(keyHistoryEntries, func(rec logstore.Record) {
		if arr, ok := logstore.TryParse(rec.Value).Array(); ok {
			f.history = append(f.history, arr...)
		}
	})
}
