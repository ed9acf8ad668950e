package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/triagedesk/triagedesk/internal/record"
	"github.com/triagedesk/triagedesk/internal/testutil"
)

// testEpoch is the fixed instant test stores open at.
var testEpoch = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

// newTestStore opens a store in a temp dir with a manual clock and a
// sequential id source so timestamps and ids are deterministic.
func newTestStore(t *testing.T) (*Store, *testutil.ManualClock) {
	t.Helper()

	clock := testutil.NewManualClock(testEpoch)
	s, err := Open(filepath.Join(t.TempDir(), "triage.db"),
		WithClock(clock),
		WithIDSource(testutil.SequentialIDs()),
	)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, clock
}

// waiting is a minimal intake payload.
func waiting(name string) record.NewPatient {
	return record.NewPatient{Name: name, Age: 30, TriageLevel: record.TriageStable}
}
