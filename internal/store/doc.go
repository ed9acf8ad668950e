// Package store provides SQLite-backed durable storage for the patient
// queue: the record store, the mutation-tracked update path, and the
// handover ledger.
//
// The store owns three tables:
//   - patients: one row per PatientRecord, newest-created-first reads
//   - status_changes: audit entries owned by a patient row (CASCADE)
//   - handover_notes: shift notes owned by a patient row (CASCADE)
//
// # Write discipline
//
// Update and AddHandoverNote are single read-modify-write transactions
// over the one writer connection, so two concurrent updates to the same
// record cannot interleave and lose audit entries. Retention bounds
// (50 status changes, 20 handover notes per record) are enforced inside
// the same transaction that appends.
//
// # Error kinds
//
// Every failure is wrapped in a StoreError carrying the operation name,
// the patient id and an ErrorCode. Callers distinguish "not found" from
// "storage failed" via IsNotFound / IsPersistence; the store never
// retries and never swallows an engine error.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: cascade deletes of owned audit rows
package store
