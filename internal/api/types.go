package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Result messages returned by mutating endpoints.
const (
	MessageCreated  = "Credit score added successfully"
	MessageUpdated  = "Credit score updated successfully"
	MessageDeleted  = "Credit score deleted successfully"
	MessageNotFound = "Credit score not found"
)

// CreditScore is the transport representation of a stored record.
type CreditScore struct {
	ID        int64  `json:"id"`
	Score     int64  `json:"score"`
	UserID    int64  `json:"user_id"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateRequest is the body of POST /creditscores.
type CreateRequest struct {
	Score  *Int `json:"score" binding:"required"`
	UserID *Int `json:"user_id" binding:"required"`
}

// UpdateRequest is the body of PUT /creditscores/:id.
type UpdateRequest struct {
	Score *Int `json:"score" binding:"required"`
}

// CreditScoreListResponse wraps the list endpoint payload.
type CreditScoreListResponse struct {
	CreditScores []CreditScore `json:"creditScores"`
}

// CreditScoreResponse wraps a single record.
type CreditScoreResponse struct {
	CreditScore CreditScore `json:"creditScore"`
}

// CreateResponse reports a created record and its assigned id.
type CreateResponse struct {
	Message     string      `json:"message"`
	ID          int64       `json:"id"`
	CreditScore CreditScore `json:"creditScore"`
}

// ChangeResponse reports how many rows an update or delete touched.
type ChangeResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
}

// MessageResponse carries a plain message, used for not-found results.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a failure description.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports server and store liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Records int64  `json:"records"`
}
