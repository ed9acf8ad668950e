package record

import "sort"

// Retention bounds for the audit collections a record owns.
const (
	MaxStatusChanges = 50
	MaxHandoverNotes = 20
)

// Placeholders substituted for an absent prior value in an audit entry.
const (
	priorUnknown         = "Unknown"
	priorNoNotes         = "No notes"
	priorNoTreatmentPlan = "No treatment plan"
)

// SynthesizeChanges computes the audit entries an update must append.
// Exactly four fields are tracked: status, triageLevel, notes and
// treatmentPlan. One StatusChange is produced per tracked field whose
// proposed value differs from the stored value; all entries from one
// update share the same timestamp. Status, triage and treatment changes
// are highlighted; note changes are not.
//
// newID supplies fresh entry identifiers so synthesis stays pure and
// deterministic under test.
func SynthesizeChanges(existing PatientRecord, p Patch, now Time, newID func() string) []StatusChange {
	var changes []StatusChange

	entry := func(ct ChangeType, prev, next string, highlighted bool) StatusChange {
		return StatusChange{
			ID:            newID(),
			PatientID:     existing.ID,
			Timestamp:     now,
			ChangeType:    ct,
			PreviousValue: prev,
			NewValue:      next,
			StaffName:     p.StaffName,
			IsHighlighted: highlighted,
		}
	}

	if p.Status != nil && *p.Status != existing.Status {
		prev := string(existing.Status)
		if prev == "" {
			prev = priorUnknown
		}
		changes = append(changes, entry(ChangeStatus, prev, string(*p.Status), true))
	}

	if p.TriageLevel != nil && *p.TriageLevel != existing.TriageLevel {
		prev := string(existing.TriageLevel)
		if prev == "" {
			prev = priorUnknown
		}
		changes = append(changes, entry(ChangeTriage, prev, string(*p.TriageLevel), true))
	}

	if p.Notes != nil && *p.Notes != existing.Notes {
		prev := existing.Notes
		if prev == "" {
			prev = priorNoNotes
		}
		changes = append(changes, entry(ChangeNotes, prev, *p.Notes, false))
	}

	if p.TreatmentPlan != nil && *p.TreatmentPlan != existing.TreatmentPlan {
		prev := existing.TreatmentPlan
		if prev == "" {
			prev = priorNoTreatmentPlan
		}
		changes = append(changes, entry(ChangeTreatment, prev, *p.TreatmentPlan, true))
	}

	return changes
}

// TrimStatusChanges sorts descending by timestamp and keeps the
// MaxStatusChanges most recent. The input is not modified. Stable sort
// preserves insertion order among entries sharing a timestamp.
func TrimStatusChanges(changes []StatusChange) []StatusChange {
	trimmed := make([]StatusChange, len(changes))
	copy(trimmed, changes)
	sort.SliceStable(trimmed, func(i, j int) bool {
		return trimmed[i].Timestamp.After(trimmed[j].Timestamp.Time)
	})
	if len(trimmed) > MaxStatusChanges {
		trimmed = trimmed[:MaxStatusChanges]
	}
	return trimmed
}

// TrimHandoverNotes sorts descending by timestamp and keeps the
// MaxHandoverNotes most recent. The input is not modified.
func TrimHandoverNotes(notes []HandoverNote) []HandoverNote {
	trimmed := make([]HandoverNote, len(notes))
	copy(trimmed, notes)
	sort.SliceStable(trimmed, func(i, j int) bool {
		return trimmed[i].Timestamp.After(trimmed[j].Timestamp.Time)
	})
	if len(trimmed) > MaxHandoverNotes {
		trimmed = trimmed[:MaxHandoverNotes]
	}
	return trimmed
}
