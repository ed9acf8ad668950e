package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/triagedesk/triagedesk/internal/record"
)

// document is the structured export shape. Field order is the
// interchange order; record timestamps render as ISO strings through
// record.Time.
type document struct {
	ExportTimestamp record.Time            `json:"exportTimestamp"`
	PatientCount    int                    `json:"patientCount"`
	Patients        []record.PatientRecord `json:"patients"`
}

// StructuredText renders the record set as a single pretty-printed JSON
// document: export instant, total count, and the full record list in
// GetAll order, indented with two spaces.
func (e *Exporter) StructuredText(ctx context.Context) (string, error) {
	records, err := e.store.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("structured export: %w", err)
	}

	doc := document{
		ExportTimestamp: record.At(e.clock.Now()),
		PatientCount:    len(records),
		Patients:        records,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("structured export: %w", err)
	}
	return string(data), nil
}
