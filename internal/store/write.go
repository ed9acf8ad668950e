package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/triagedesk/triagedesk/internal/record"
)

// Create persists a new patient record and returns its identifier.
// The store assigns the id, the creation timestamp, Waiting status and
// empty notes; LastUpdated starts equal to the creation timestamp.
//
// The insert is verified by its affected-row count - an insert the
// engine acknowledged without committing a row is a persistence error,
// not a success.
func (s *Store) Create(ctx context.Context, p record.NewPatient) (string, error) {
	id := s.newID()
	now := record.At(s.clock.Now())

	symptoms, err := marshalStrings(normList(p.Symptoms))
	if err != nil {
		return "", persistence("create", id, err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO patients
		(id, name, age, symptoms, condition, patient_number, main_complaint,
		 medical_history, examination_findings, provisional_diagnosis,
		 treatment_plan, triage_level, status, notes, created_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		normText(p.Name),
		p.Age,
		symptoms,
		normText(p.Condition),
		normText(p.PatientNumber),
		normText(p.MainComplaint),
		normText(p.MedicalHistory),
		normText(p.ExaminationFindings),
		normText(p.ProvisionalDiagnosis),
		normText(p.TreatmentPlan),
		string(p.TriageLevel),
		string(record.StatusWaiting),
		"",
		now.UnixMilli(),
		now.UnixMilli(),
	)
	if err != nil {
		return "", persistence("create", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", persistence("create", id, err)
	}
	if n != 1 {
		return "", persistence("create", id, errors.New("insert did not commit a row"))
	}

	s.log.Debug().Str("id", id).Str("triage", string(p.TriageLevel)).Msg("patient created")
	return id, nil
}

// Update applies a partial update to a record as one atomic
// read-modify-write transaction: load the current row, synthesize the
// audit entries for the tracked fields, merge the patch, refresh
// LastUpdated, and enforce the status-change retention bound. The id and
// creation timestamp are not writable - Patch cannot express them.
//
// The transaction runs on the store's single writer connection, so two
// updates to the same record cannot interleave and lose audit entries.
func (s *Store) Update(ctx context.Context, id string, p record.Patch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistence("update", id, err)
	}
	defer tx.Rollback() // No-op if committed

	rec, err := getPatientTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("update", id)
		}
		return persistence("update", id, err)
	}

	now := record.At(s.clock.Now())
	changes := record.SynthesizeChanges(rec, p, now, s.newID)

	p.Apply(&rec)
	rec.LastUpdated = now

	symptoms, err := marshalStrings(normList(rec.Symptoms))
	if err != nil {
		return persistence("update", id, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE patients SET
			name = ?, age = ?, symptoms = ?, condition = ?,
			patient_number = ?, main_complaint = ?, medical_history = ?,
			examination_findings = ?, provisional_diagnosis = ?,
			treatment_plan = ?, triage_level = ?, status = ?, notes = ?,
			last_updated = ?
		WHERE id = ?
	`,
		normText(rec.Name),
		rec.Age,
		symptoms,
		normText(rec.Condition),
		normText(rec.PatientNumber),
		normText(rec.MainComplaint),
		normText(rec.MedicalHistory),
		normText(rec.ExaminationFindings),
		normText(rec.ProvisionalDiagnosis),
		normText(rec.TreatmentPlan),
		string(rec.TriageLevel),
		string(rec.Status),
		normText(rec.Notes),
		now.UnixMilli(),
		id,
	)
	if err != nil {
		return persistence("update", id, err)
	}

	for _, sc := range changes {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO status_changes
			(id, patient_id, changed_at, change_type, previous_value,
			 new_value, staff_name, is_highlighted)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			sc.ID,
			sc.PatientID,
			sc.Timestamp.UnixMilli(),
			string(sc.ChangeType),
			sc.PreviousValue,
			sc.NewValue,
			sc.StaffName,
			sc.IsHighlighted,
		)
		if err != nil {
			return persistence("update", id, err)
		}
	}

	// Retention: keep only the most recent changes, in the same
	// transaction that appended.
	if err := trimTable(ctx, tx, "status_changes", "changed_at", id, record.MaxStatusChanges); err != nil {
		return persistence("update", id, err)
	}

	if err := tx.Commit(); err != nil {
		return persistence("update", id, err)
	}

	s.log.Debug().Str("id", id).Int("audit_entries", len(changes)).Msg("patient updated")
	return nil
}

// AddHandoverNote appends a shift-handover note to a record. This is a
// distinct write path from Update: it never synthesizes StatusChange
// entries. The ledger assigns the note id and timestamp, enforces the
// retention bound, and refreshes the record's LastUpdated.
func (s *Store) AddHandoverNote(ctx context.Context, patientID string, n record.NewHandoverNote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistence("addHandoverNote", patientID, err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM patients WHERE id = ?`, patientID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("addHandoverNote", patientID)
		}
		return persistence("addHandoverNote", patientID, err)
	}

	now := record.At(s.clock.Now())

	critical, err := marshalStrings(normList(n.CriticalUpdates))
	if err != nil {
		return persistence("addHandoverNote", patientID, err)
	}
	actions, err := marshalStrings(normList(n.ActionItems))
	if err != nil {
		return persistence("addHandoverNote", patientID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO handover_notes
		(id, patient_id, created_at, staff_name, shift_type, summary,
		 critical_updates, key_observations, action_items, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.newID(),
		patientID,
		now.UnixMilli(),
		normText(n.StaffName),
		string(n.ShiftType),
		normText(n.Summary),
		critical,
		normText(n.KeyObservations),
		actions,
		string(n.Priority),
	)
	if err != nil {
		return persistence("addHandoverNote", patientID, err)
	}

	if err := trimTable(ctx, tx, "handover_notes", "created_at", patientID, record.MaxHandoverNotes); err != nil {
		return persistence("addHandoverNote", patientID, err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE patients SET last_updated = ? WHERE id = ?`,
		now.UnixMilli(), patientID)
	if err != nil {
		return persistence("addHandoverNote", patientID, err)
	}

	if err := tx.Commit(); err != nil {
		return persistence("addHandoverNote", patientID, err)
	}

	s.log.Debug().Str("id", patientID).Str("shift", string(n.ShiftType)).Msg("handover note added")
	return nil
}

// Delete removes a record and, by cascade, its owned audit rows.
// Success is defined as "subsequently unreadable": after the delete the
// row is re-read, and a record that is still retrievable escalates to a
// persistence error rather than a silent success.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id)
	if err != nil {
		return persistence("delete", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistence("delete", id, err)
	}
	if n == 0 {
		return notFound("delete", id)
	}

	// Defensive re-read verifying the delete actually took effect.
	var still int
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM patients WHERE id = ?`, id).Scan(&still)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Gone, as required.
	case err != nil:
		return persistence("delete", id, err)
	default:
		return persistence("delete", id, errors.New("record still readable after delete"))
	}

	s.log.Debug().Str("id", id).Msg("patient deleted")
	return nil
}

// Clear removes every record. Administrative reset; the cascade clears
// the audit tables with the patients.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM patients`); err != nil {
		return persistence("clear", "", err)
	}
	s.log.Debug().Msg("patient store cleared")
	return nil
}

// getPatientTx loads one patients row inside a transaction. Returns
// sql.ErrNoRows unwrapped so callers can map it to a not-found kind.
func getPatientTx(ctx context.Context, tx *sql.Tx, id string) (record.PatientRecord, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE id = ?
	`, id)
	return scanPatient(row)
}

// trimTable deletes a patient's audit rows beyond the retention bound,
// keeping the most recent by timestamp (id as tiebreaker).
func trimTable(ctx context.Context, tx *sql.Tx, table, tsColumn, patientID string, keep int) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE patient_id = ? AND id NOT IN (
			SELECT id FROM %s
			WHERE patient_id = ?
			ORDER BY %s DESC, id ASC
			LIMIT ?
		)
	`, table, table, tsColumn)
	if _, err := tx.ExecContext(ctx, query, patientID, patientID, keep); err != nil {
		return fmt.Errorf("trim %s: %w", table, err)
	}
	return nil
}
