package record

import "fmt"

// Patch is a partial update to a PatientRecord. Nil fields are absent
// from the update; non-nil fields replace the stored value. ID and the
// creation Timestamp are not expressible here at all, which is how the
// store guarantees their immutability.
type Patch struct {
	Name                 *string
	Age                  *int
	Symptoms             []string // nil = absent, empty slice = clear
	Condition            *string
	PatientNumber        *string
	MainComplaint        *string
	MedicalHistory       *string
	ExaminationFindings  *string
	ProvisionalDiagnosis *string
	TreatmentPlan        *string
	TriageLevel          *TriageLevel
	Status               *Status
	Notes                *string

	// StaffName attributes any synthesized audit entries to a staff
	// member. It is not a stored field of the record itself.
	StaffName string
}

// IsZero reports whether the patch carries no field changes.
func (p Patch) IsZero() bool {
	return p.Name == nil && p.Age == nil && p.Symptoms == nil &&
		p.Condition == nil && p.PatientNumber == nil && p.MainComplaint == nil &&
		p.MedicalHistory == nil && p.ExaminationFindings == nil &&
		p.ProvisionalDiagnosis == nil && p.TreatmentPlan == nil &&
		p.TriageLevel == nil && p.Status == nil && p.Notes == nil
}

// Validate enforces the boundary constraints on the fields the patch
// actually carries.
func (p Patch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return newValidationError("name", "must not be empty")
	}
	if p.Age != nil && (*p.Age < 0 || *p.Age > 150) {
		return newValidationError("age", fmt.Sprintf("%d is outside 0-150", *p.Age))
	}
	if p.TriageLevel != nil && !p.TriageLevel.IsValid() {
		return newValidationError("triageLevel", fmt.Sprintf("unknown level %q", string(*p.TriageLevel)))
	}
	if p.Status != nil && !p.Status.IsValid() {
		return newValidationError("status", fmt.Sprintf("unknown status %q", string(*p.Status)))
	}
	return nil
}

// Apply merges the patch into rec. ID, Timestamp and the audit
// collections are untouched; LastUpdated is the store's responsibility.
func (p Patch) Apply(rec *PatientRecord) {
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Age != nil {
		rec.Age = *p.Age
	}
	if p.Symptoms != nil {
		rec.Symptoms = p.Symptoms
	}
	if p.Condition != nil {
		rec.Condition = *p.Condition
	}
	if p.PatientNumber != nil {
		rec.PatientNumber = *p.PatientNumber
	}
	if p.MainComplaint != nil {
		rec.MainComplaint = *p.MainComplaint
	}
	if p.MedicalHistory != nil {
		rec.MedicalHistory = *p.MedicalHistory
	}
	if p.ExaminationFindings != nil {
		rec.ExaminationFindings = *p.ExaminationFindings
	}
	if p.ProvisionalDiagnosis != nil {
		rec.ProvisionalDiagnosis = *p.ProvisionalDiagnosis
	}
	if p.TreatmentPlan != nil {
		rec.TreatmentPlan = *p.TreatmentPlan
	}
	if p.TriageLevel != nil {
		rec.TriageLevel = *p.TriageLevel
	}
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.Notes != nil {
		rec.Notes = *p.Notes
	}
}
