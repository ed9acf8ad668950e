package record

import "time"

// Clock is the time source injected into the store and exporter.
// Production code uses SystemClock; tests substitute a manual clock so
// timestamps, retention ordering and export filenames are deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock time source.
func SystemClock() Clock { return systemClock{} }
