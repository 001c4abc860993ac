// Package daemon runs the credit score API server process.
//
// It wires configuration, the SQLite store, and the gin HTTP router into a
// single lifecycle with flock-based locking so two servers never share one
// database file. Handlers translate each route into one CreditScoreService
// call and map failures onto the HTTP error envelopes: 400 for unparseable
// ids or bodies, 404 for a missing record on get, 500 for store errors.
//
// Keep request handling here; persistence belongs in internal/scores and DTO
// conversion in internal/api.
package daemon
