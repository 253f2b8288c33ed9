package metrics

import (
	"github.com/sunil-gr/cursor-poc/internal/logstore"
)

// ExtractProcessLogs returns the process-level category. State database
// snapshots carry no process or resource telemetry, so the result is always
// empty and the aggregator drops it.
func ExtractProcessLogs(records []logstore.Record) ProcessLogs {
	_ = records
	return ProcessLogs{
		ProcessList: []any{},
		MemoryUsage: []any{},
		CPUUsage:    []any{},
	}
}
