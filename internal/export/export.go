package export

import (
	"context"
	"fmt"

	"github.com/triagedesk/triagedesk/internal/record"
)

// Lister is the slice of the store the exporter reads. Satisfied by
// *store.Store; tests substitute fixtures.
type Lister interface {
	GetAll(ctx context.Context) ([]record.PatientRecord, error)
}

// Exporter reads the full record set and renders it.
type Exporter struct {
	store Lister
	clock record.Clock
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock substitutes the time source used for export instants and
// timestamped filenames.
func WithClock(c record.Clock) Option {
	return func(e *Exporter) { e.clock = c }
}

// New creates an Exporter over the given record source.
func New(l Lister, opts ...Option) *Exporter {
	e := &Exporter{store: l, clock: record.SystemClock()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TimestampedFilename joins prefix, the current instant and extension
// as prefix_YYYY-MM-DD_HH-MM-SS.ext. Deterministic given a clock
// reading; colons never appear, so the name is safe on every platform.
func (e *Exporter) TimestampedFilename(prefix, extension string) string {
	ts := e.clock.Now().UTC().Format("2006-01-02_15-04-05")
	return fmt.Sprintf("%s_%s.%s", prefix, ts, extension)
}
