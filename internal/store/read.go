package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/triagedesk/triagedesk/internal/record"
)

// patientColumns is the canonical column list for patients reads.
// scanPatient must stay in sync with it.
const patientColumns = `id, name, age, symptoms, condition, patient_number,
	main_complaint, medical_history, examination_findings,
	provisional_diagnosis, treatment_plan, triage_level, status, notes,
	created_at, last_updated`

// GetAll returns every patient record, most recently created first,
// with the owned audit collections populated newest-first.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) GetAll(ctx context.Context) ([]record.PatientRecord, error) {
	return s.queryPatients(ctx, "getAll", `
		SELECT `+patientColumns+`
		FROM patients
		ORDER BY created_at DESC, id ASC
	`)
}

// GetByID returns the record with the given identifier, or a not-found
// error if no such record exists.
func (s *Store) GetByID(ctx context.Context, id string) (record.PatientRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE id = ?
	`, id)

	rec, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record.PatientRecord{}, notFound("getById", id)
		}
		return record.PatientRecord{}, persistence("getById", id, err)
	}

	if err := s.attachHistory(ctx, &rec); err != nil {
		return record.PatientRecord{}, persistence("getById", id, err)
	}
	return rec, nil
}

// FindByTriageLevel returns records at the given triage level,
// most recently created first.
func (s *Store) FindByTriageLevel(ctx context.Context, level record.TriageLevel) ([]record.PatientRecord, error) {
	return s.queryPatients(ctx, "findByTriageLevel", `
		SELECT `+patientColumns+`
		FROM patients
		WHERE triage_level = ?
		ORDER BY created_at DESC, id ASC
	`, string(level))
}

// FindByStatus returns records in the given workflow status,
// most recently created first.
func (s *Store) FindByStatus(ctx context.Context, status record.Status) ([]record.PatientRecord, error) {
	return s.queryPatients(ctx, "findByStatus", `
		SELECT `+patientColumns+`
		FROM patients
		WHERE status = ?
		ORDER BY created_at DESC, id ASC
	`, string(status))
}

// FindByField is the generic equality filter over the indexed
// attributes. Unknown fields fail the same way an unusable index does.
func (s *Store) FindByField(ctx context.Context, field, value string) ([]record.PatientRecord, error) {
	switch field {
	case "triageLevel":
		return s.FindByTriageLevel(ctx, record.TriageLevel(value))
	case "status":
		return s.FindByStatus(ctx, record.Status(value))
	default:
		return nil, persistence("findByField", "", fmt.Errorf("no index for field %q", field))
	}
}

// Search returns records whose name, condition or notes contain the
// term, case-insensitively, in the same newest-first order as GetAll.
// The optional hospital-form fields are deliberately not searched.
func (s *Store) Search(ctx context.Context, term string) ([]record.PatientRecord, error) {
	all, err := s.queryPatients(ctx, "search", `
		SELECT `+patientColumns+`
		FROM patients
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}

	// Case folding happens in Go: SQLite's lower() folds ASCII only,
	// which would make non-ASCII names unmatchable.
	needle := strings.ToLower(normText(term))
	matches := []record.PatientRecord{}
	for _, rec := range all {
		if strings.Contains(strings.ToLower(rec.Name), needle) ||
			strings.Contains(strings.ToLower(rec.Condition), needle) ||
			strings.Contains(strings.ToLower(rec.Notes), needle) {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

// queryPatients runs a patients SELECT and attaches the audit
// collections to every returned record.
func (s *Store) queryPatients(ctx context.Context, op, query string, args ...any) ([]record.PatientRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistence(op, "", err)
	}
	defer rows.Close()

	records := []record.PatientRecord{}
	for rows.Next() {
		rec, err := scanPatient(rows)
		if err != nil {
			return nil, persistence(op, "", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence(op, "", err)
	}

	// A triage queue is small (a local single-user dataset), so per-record
	// history loads are cheaper to reason about than a bulk join.
	for i := range records {
		if err := s.attachHistory(ctx, &records[i]); err != nil {
			return nil, persistence(op, records[i].ID, err)
		}
	}
	return records, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPatient reads one patients row in patientColumns order. The audit
// collections start empty; attachHistory fills them.
func scanPatient(row rowScanner) (record.PatientRecord, error) {
	var (
		rec       record.PatientRecord
		symptoms  string
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Age,
		&symptoms,
		&rec.Condition,
		&rec.PatientNumber,
		&rec.MainComplaint,
		&rec.MedicalHistory,
		&rec.ExaminationFindings,
		&rec.ProvisionalDiagnosis,
		&rec.TreatmentPlan,
		&rec.TriageLevel,
		&rec.Status,
		&rec.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return record.PatientRecord{}, err
	}

	rec.Symptoms, err = unmarshalStrings(symptoms)
	if err != nil {
		return record.PatientRecord{}, fmt.Errorf("patient %s symptoms: %w", rec.ID, err)
	}
	rec.Timestamp = record.FromUnixMilli(createdAt)
	rec.LastUpdated = record.FromUnixMilli(updatedAt)
	rec.StatusChanges = []record.StatusChange{}
	rec.HandoverNotes = []record.HandoverNote{}
	return rec, nil
}

// attachHistory populates the record's owned audit collections,
// newest-first, id as tiebreaker for entries sharing a timestamp.
func (s *Store) attachHistory(ctx context.Context, rec *record.PatientRecord) error {
	changes, err := s.loadStatusChanges(ctx, rec.ID)
	if err != nil {
		return err
	}
	notes, err := s.loadHandoverNotes(ctx, rec.ID)
	if err != nil {
		return err
	}
	rec.StatusChanges = changes
	rec.HandoverNotes = notes
	return nil
}

func (s *Store) loadStatusChanges(ctx context.Context, patientID string) ([]record.StatusChange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_id, changed_at, change_type, previous_value,
		       new_value, staff_name, is_highlighted
		FROM status_changes
		WHERE patient_id = ?
		ORDER BY changed_at DESC, id ASC
	`, patientID)
	if err != nil {
		return nil, fmt.Errorf("query status changes: %w", err)
	}
	defer rows.Close()

	changes := []record.StatusChange{}
	for rows.Next() {
		var (
			sc        record.StatusChange
			changedAt int64
		)
		if err := rows.Scan(&sc.ID, &sc.PatientID, &changedAt, &sc.ChangeType,
			&sc.PreviousValue, &sc.NewValue, &sc.StaffName, &sc.IsHighlighted); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		sc.Timestamp = record.FromUnixMilli(changedAt)
		changes = append(changes, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status changes: %w", err)
	}
	return changes, nil
}

func (s *Store) loadHandoverNotes(ctx context.Context, patientID string) ([]record.HandoverNote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_id, created_at, staff_name, shift_type, summary,
		       critical_updates, key_observations, action_items, priority
		FROM handover_notes
		WHERE patient_id = ?
		ORDER BY created_at DESC, id ASC
	`, patientID)
	if err != nil {
		return nil, fmt.Errorf("query handover notes: %w", err)
	}
	defer rows.Close()

	notes := []record.HandoverNote{}
	for rows.Next() {
		var (
			hn        record.HandoverNote
			createdAt int64
			critical  string
			actions   string
		)
		if err := rows.Scan(&hn.ID, &hn.PatientID, &createdAt, &hn.StaffName,
			&hn.ShiftType, &hn.Summary, &critical, &hn.KeyObservations,
			&actions, &hn.Priority); err != nil {
			return nil, fmt.Errorf("scan handover note: %w", err)
		}
		hn.Timestamp = record.FromUnixMilli(createdAt)
		if hn.CriticalUpdates, err = unmarshalStrings(critical); err != nil {
			return nil, fmt.Errorf("handover note %s: %w", hn.ID, err)
		}
		if hn.ActionItems, err = unmarshalStrings(actions); err != nil {
			return nil, fmt.Errorf("handover note %s: %w", hn.ID, err)
		}
		notes = append(notes, hn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate handover notes: %w", err)
	}
	return notes, nil
}
