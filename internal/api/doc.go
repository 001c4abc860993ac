// Package api defines the wire-format types for the credit score HTTP API and
// the service that translates store records into them.
//
// # Key Types
//
// CreditScore: transport representation of one record. JSON keys are
// snake_case (user_id, created_at) so existing browser clients keep working.
//
// CreateRequest/UpdateRequest: request bodies. Numeric fields use Int, which
// accepts either a JSON number or a numeric string.
//
// CreditScoreListResponse, CreditScoreResponse, CreateResponse,
// ChangeResponse, MessageResponse, ErrorResponse: response envelopes shared by
// the server and the HTTP client.
//
// # Service
//
// CreditScoreService wraps a Store and returns DTOs. A missing record on Get
// is reported as ErrNotFound; update and delete of a missing id return zero
// changes without error.
package api
