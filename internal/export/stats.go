package export

import (
	"context"
	"fmt"

	"github.com/triagedesk/triagedesk/internal/record"
)

// Stats summarizes the queue by triage level.
type Stats struct {
	Total         int `json:"total"`
	CriticalCount int `json:"criticalCount"`
	UrgentCount   int `json:"urgentCount"`
	StableCount   int `json:"stableCount"`
}

// ExportStats counts the current record set by triage level.
func (e *Exporter) ExportStats(ctx context.Context) (Stats, error) {
	records, err := e.store.GetAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("export stats: %w", err)
	}

	st := Stats{Total: len(records)}
	for _, rec := range records {
		switch rec.TriageLevel {
		case record.TriageCritical:
			st.CriticalCount++
		case record.TriageUrgent:
			st.UrgentCount++
		case record.TriageStable:
			st.StableCount++
		}
	}
	return st, nil
}
