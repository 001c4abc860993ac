// Package scores persists credit score records in SQLite.
//
// The Store owns the database handle, creates the credit_scores table on
// first open, and maps each record operation onto a single parameterized
// statement: list, get by id, insert, update score, and delete. Update and
// delete report affected row counts instead of failing on a missing id so
// callers can treat them as idempotent.
//
// Ids come from an AUTOINCREMENT primary key, so they increase strictly and
// are never reused after a delete. Schema changes bump schemaVersion in
// schema.go; operators delete the database file to adopt a new schema.
package scores
