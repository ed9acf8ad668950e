package record

import (
	"encoding/json"
	"fmt"
	"time"
)

// TriageLevel is the clinical urgency classification assigned by the
// keyword classifier. The store never recomputes it; callers pass it in.
type TriageLevel string

const (
	TriageCritical TriageLevel = "Critical"
	TriageUrgent   TriageLevel = "Urgent"
	TriageStable   TriageLevel = "Stable"
)

// IsValid reports whether the level is one of the three known values.
func (l TriageLevel) IsValid() bool {
	switch l {
	case TriageCritical, TriageUrgent, TriageStable:
		return true
	}
	return false
}

// Status is the operational workflow state of a patient's visit,
// distinct from the triage level.
type Status string

const (
	StatusWaiting     Status = "Waiting"
	StatusInTreatment Status = "In Treatment"
	StatusTreated     Status = "Treated"
	StatusDischarged  Status = "Discharged"
	StatusTransferred Status = "Transferred"
)

// IsValid reports whether the status is one of the known workflow states.
func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusInTreatment, StatusTreated, StatusDischarged, StatusTransferred:
		return true
	}
	return false
}

// ChangeType categorizes a StatusChange audit entry.
type ChangeType string

const (
	ChangeStatus    ChangeType = "status"
	ChangeTriage    ChangeType = "triage"
	ChangeTreatment ChangeType = "treatment"
	ChangeNotes     ChangeType = "notes"
	ChangeVitals    ChangeType = "vitals"
)

// ShiftType identifies which side of a shift handover authored a note.
type ShiftType string

const (
	ShiftOutgoing ShiftType = "outgoing"
	ShiftIncoming ShiftType = "incoming"
)

// IsValid reports whether the shift type is outgoing or incoming.
func (s ShiftType) IsValid() bool {
	return s == ShiftOutgoing || s == ShiftIncoming
}

// Priority ranks a handover note for the incoming shift.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid reports whether the priority is one of high, medium, low.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// isoMillis is the interchange timestamp layout. The trailing Z is a
// literal; Time values are always UTC so it is accurate.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Time is a millisecond-precision UTC instant. It marshals to the
// ISO-8601 form YYYY-MM-DDTHH:mm:ss.sssZ used by the export formats.
type Time struct {
	time.Time
}

// At converts a wall-clock reading to a record.Time, forcing UTC and
// truncating to millisecond precision so round-trips through storage
// and JSON are lossless.
func At(t time.Time) Time {
	return Time{t.UTC().Truncate(time.Millisecond)}
}

// FromUnixMilli rebuilds a Time from its stored millisecond form.
func FromUnixMilli(ms int64) Time {
	return Time{time.UnixMilli(ms).UTC()}
}

// ISO renders the instant in the interchange layout.
func (t Time) ISO() string {
	return t.UTC().Format(isoMillis)
}

// MarshalJSON implements json.Marshaler using the ISO layout.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ISO())
}

// UnmarshalJSON implements json.Unmarshaler. Accepts the millisecond ISO
// layout and, for tolerance of hand-edited documents, plain RFC 3339.
func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("unmarshal timestamp: %w", err)
	}
	parsed, err := time.Parse(isoMillis, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("unmarshal timestamp %q: %w", s, err)
		}
	}
	*t = At(parsed)
	return nil
}

// PatientRecord is the central entity: one patient in the triage queue,
// together with the audit collections it owns. ID and Timestamp are fixed
// at creation and never change afterward.
type PatientRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Symptoms []string `json:"symptoms"`

	Condition string `json:"condition"`

	// Hospital intake-form fields, all optional free text. PatientNumber
	// is the hospital's own patient identifier, unrelated to ID.
	PatientNumber        string `json:"patientId,omitempty"`
	MainComplaint        string `json:"mainComplaint,omitempty"`
	MedicalHistory       string `json:"medicalHistory,omitempty"`
	ExaminationFindings  string `json:"examinationFindings,omitempty"`
	ProvisionalDiagnosis string `json:"provisionalDiagnosis,omitempty"`
	TreatmentPlan        string `json:"treatmentPlan,omitempty"`

	TriageLevel TriageLevel `json:"triageLevel"`
	Status      Status      `json:"status"`
	Notes       string      `json:"notes"`

	Timestamp   Time `json:"timestamp"`
	LastUpdated Time `json:"lastUpdated"`

	// Newest-first, bounded by MaxStatusChanges / MaxHandoverNotes.
	StatusChanges []StatusChange `json:"statusChanges"`
	HandoverNotes []HandoverNote `json:"handoverNotes"`
}

// StatusChange is an immutable audit fact recording one field transition.
// Entries are synthesized by SynthesizeChanges and never mutated.
type StatusChange struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patientId"`
	Timestamp     Time       `json:"timestamp"`
	ChangeType    ChangeType `json:"changeType"`
	PreviousValue string     `json:"previousValue"`
	NewValue      string     `json:"newValue"`
	StaffName     string     `json:"staffName,omitempty"`
	IsHighlighted bool       `json:"isHighlighted"`
}

// HandoverNote is a staff-authored structured note passed between shifts.
type HandoverNote struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patientId"`
	Timestamp       Time      `json:"timestamp"`
	StaffName       string    `json:"staffName"`
	ShiftType       ShiftType `json:"shiftType"`
	Summary         string    `json:"summary"`
	CriticalUpdates []string  `json:"criticalUpdates"`
	KeyObservations string    `json:"keyObservations"`
	ActionItems     []string  `json:"actionItems"`
	Priority        Priority  `json:"priority"`
}

// NewPatient is the creation payload. The store assigns ID, Timestamp,
// LastUpdated, Status (Waiting) and Notes ("") itself.
type NewPatient struct {
	Name                 string
	Age                  int
	Symptoms             []string
	Condition            string
	PatientNumber        string
	MainComplaint        string
	MedicalHistory       string
	ExaminationFindings  string
	ProvisionalDiagnosis string
	TreatmentPlan        string
	TriageLevel          TriageLevel
}

// Validate enforces the boundary constraints on a creation payload.
func (p NewPatient) Validate() error {
	if p.Name == "" {
		return newValidationError("name", "must not be empty")
	}
	if p.Age < 0 || p.Age > 150 {
		return newValidationError("age", fmt.Sprintf("%d is outside 0-150", p.Age))
	}
	if !p.TriageLevel.IsValid() {
		return newValidationError("triageLevel", fmt.Sprintf("unknown level %q", string(p.TriageLevel)))
	}
	return nil
}

// NewHandoverNote is the handover payload. The ledger assigns ID,
// Timestamp and PatientID itself.
type NewHandoverNote struct {
	StaffName       string
	ShiftType       ShiftType
	Summary         string
	CriticalUpdates []string
	KeyObservations string
	ActionItems     []string
	Priority        Priority
}

// Validate enforces the boundary constraints on a handover payload.
func (n NewHandoverNote) Validate() error {
	if n.StaffName == "" {
		return newValidationError("staffName", "must not be empty")
	}
	if !n.ShiftType.IsValid() {
		return newValidationError("shiftType", fmt.Sprintf("unknown shift type %q", string(n.ShiftType)))
	}
	if !n.Priority.IsValid() {
		return newValidationError("priority", fmt.Sprintf("unknown priority %q", string(n.Priority)))
	}
	return nil
}
