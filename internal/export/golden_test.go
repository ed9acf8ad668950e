package export

import (
	"context"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/triagedesk/triagedesk/internal/record"
	"github.com/triagedesk/triagedesk/internal/testutil"
)

// seedQueue loads the fixed two-patient queue both golden tests share.
// Deterministic ids and timestamps come from the store's injected
// clock and id source.
func seedQueue(t *testing.T) *Exporter {
	t.Helper()

	s, clock := newTestStore(t, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := s.Create(ctx, record.NewPatient{
		Name:        "Amal Haddad",
		Age:         42,
		Symptoms:    []string{"fever", "cough"},
		Condition:   "persistent fever",
		TriageLevel: record.TriageUrgent,
	})
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	_, err = s.Create(ctx, record.NewPatient{
		Name:        `O"Brien, J.`,
		Age:         7,
		Symptoms:    []string{"rash"},
		Condition:   "allergic reaction, mild",
		TriageLevel: record.TriageStable,
	})
	require.NoError(t, err)

	exportClock := testutil.NewManualClock(time.Date(2024, 1, 15, 14, 30, 45, 0, time.UTC))
	return New(s, WithClock(exportClock))
}

// To regenerate golden files, run:
//
//	go test ./internal/export -update

func TestDelimitedText_Golden(t *testing.T) {
	exp := seedQueue(t)

	out, err := exp.DelimitedText(context.Background())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "delimited_export", []byte(out))
}

func TestStructuredText_Golden(t *testing.T) {
	exp := seedQueue(t)

	out, err := exp.StructuredText(context.Background())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "structured_export", []byte(out))
}
