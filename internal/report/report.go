// internal/report/report.go
// Package report gathers per-sentence diagnostics emitted during decoding
// and renders them into human-inspectable artifacts (HTML pages, heatmap
// images, character-diff pages).
//
// A model that wants to contribute data takes a Sink and calls Record once
// per sentence, in sentence order. The inference driver asks each Collector
// for its queued records via Collect, merges them into a shared context,
// and feeds one Input per sentence to the configured Reporters.
package report

import "fmt"

// Fields holds the diagnostic key/value pairs recorded for one sentence.
type Fields map[string]any

// Sink receives per-sentence diagnostic fields from a model component.
// Callers must invoke Record exactly once per sentence, in sentence order;
// ordering is the only correlation key between components.
type Sink interface {
	Record(fields Fields)
}

// Collector is the standard Sink implementation: an ordered queue of
// per-sentence records, drained once per inference run by Collect.
// Not safe for concurrent use; one collector serves one decoding run.
type Collector struct {
	queue []Fields
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record appends the fields for the next sentence to the queue.
func (c *Collector) Record(fields Fields) {
	c.queue = append(c.queue, fields)
}

// Len reports how many sentences have been recorded since the last Collect.
func (c *Collector) Len() int {
	return len(c.queue)
}

// Collect merges the queued records into ctx and clears the queue.
//
// When ctx is nonempty its length must equal the number of queued records;
// a mismatch signals a sequencing bug and is returned as an error. When ctx
// is empty a fresh context of matching length is allocated. On key conflict
// the queued record wins. Collect is the sole extraction point: a second
// call without intervening Record calls leaves ctx unchanged.
func (c *Collector) Collect(ctx []Fields) ([]Fields, error) {
	if len(c.queue) == 0 {
		return ctx, nil
	}
	if len(ctx) > 0 && len(ctx) != len(c.queue) {
		return nil, fmt.Errorf("report context holds %d records but %d sentences were recorded", len(ctx), len(c.queue))
	}
	if len(ctx) == 0 {
		ctx = make([]Fields, len(c.queue))
		for i := range ctx {
			ctx[i] = Fields{}
		}
	}
	for i, rec := range c.queue {
		for k, v := range rec {
			ctx[i][k] = v
		}
	}
	c.queue = c.queue[:0]
	return ctx, nil
}

// Reporter turns one sentence's collected diagnostics into a persisted
// artifact. Implementations read the Input fields they understand and
// ignore the rest; an absent optional field is never an error. Sentences
// must be reported in increasing index order.
type Reporter interface {
	// Report renders the artifacts for one sentence.
	Report(in Input) error
	// Finish flushes any end-of-run artifacts. It must be idempotent:
	// a second call with nothing accumulated is a no-op.
	Finish() error
}
