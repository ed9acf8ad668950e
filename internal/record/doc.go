// Package record defines the patient-record domain model: the PatientRecord
// entity, its owned audit collections (StatusChange, HandoverNote), the Patch
// type for partial updates, and the pure functions that synthesize and bound
// the audit trail.
//
// Nothing in this package touches storage. Audit synthesis and retention
// trimming are deliberately pure so the 50-change / 20-note bounding rules
// can be unit-tested without a database.
//
// # Timestamps
//
// All instants use record.Time, a millisecond-precision UTC wrapper over
// time.Time that marshals to the ISO-8601 form 2006-01-02T15:04:05.000Z.
// The export formats require exactly that rendering, so it is the model's
// single timestamp representation rather than a serializer concern.
package record
