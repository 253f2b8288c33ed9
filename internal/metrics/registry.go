// Package metrics extracts categorized usage metrics from normalized state
// database records.
package metrics

import "github.com/sunil-gr/cursor-poc/internal/logstore"

type handler func(rec logstore.Record)

// registry dispatches each record once to the handlers interested in it.
// Extractors register exact-key handlers for the keys they understand plus
// optional scan handlers that see every record, so adding a category is a
// matter of registering a new handler set rather than re-walking the record
// list per category.
type registry struct {
	exact map[string][]handler
	scans []handler
}

func newRegistry() *registry {
	return &registry{exact: make(map[string][]handler)}
}

func (r *registry) on(key string, h handler) {
	r.exact[key] = append(r.exact[key], h)
}

func (r *registry) scan(h handler) {
	r.scans = append(r.scans, h)
}

func (r *registry) apply(records []logstore.Record) {
	for _, rec := range records {
		for _, h := range r.exact[rec.Key] {
			h(rec)
		}
		for _, h := range r.scans {
			h(rec)
		}
	}
}
