package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// NoDataSentinel is returned by DelimitedText for an empty store.
// Callers must check for it before treating the result as tabular data.
const NoDataSentinel = "No patient data to export"

// csvHeader is the fixed interchange column order.
var csvHeader = []string{
	"Patient ID", "Name", "Age", "Symptoms", "Condition", "Triage Level", "Timestamp",
}

// DelimitedText renders the record set as RFC 4180 delimited text:
// the fixed header row, then one row per record in GetAll order.
// Symptoms are ;-joined inside their cell; timestamps use the ISO-8601
// millisecond form; fields containing a comma, quote or line break are
// quoted with internal quotes doubled. Lines end with LF.
func (e *Exporter) DelimitedText(ctx context.Context) (string, error) {
	records, err := e.store.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("delimited export: %w", err)
	}
	if len(records) == 0 {
		return NoDataSentinel, nil
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("delimited export: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.Name,
			strconv.Itoa(rec.Age),
			strings.Join(rec.Symptoms, ";"),
			rec.Condition,
			string(rec.TriageLevel),
			rec.Timestamp.ISO(),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("delimited export: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("delimited export: %w", err)
	}
	return buf.String(), nil
}
