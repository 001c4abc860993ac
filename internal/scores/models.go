package scores

import (
	"database/sql"
	"time"
)

// Record is one row of the credit_scores table.
type Record struct {
	ID        int64
	Score     int64
	UserID    int64
	CreatedAt time.Time
}

// recordRow mirrors the table columns for sqlx scanning and sqluct column
// mapping. created_at is read as text because SQLite stores
// CURRENT_TIMESTAMP as "YYYY-MM-DD HH:MM:SS".
type recordRow struct {
	ID        int64          `db:"id"`
	Score     int64          `db:"score"`
	UserID    int64          `db:"user_id"`
	CreatedAt sql.NullString `db:"created_at"`
}

func (r recordRow) toRecord() *Record {
	rec := &Record{
		ID:     r.ID,
		Score:  r.Score,
		UserID: r.UserID,
	}
	if created, err := parseTimeString(r.CreatedAt.String); err == nil {
		rec.CreatedAt = created
	}
	return rec
}

// Health captures database diagnostics for the CLI health command.
type Health struct {
	DatabasePath   string `json:"databasePath"`
	TablePresent   bool   `json:"tablePresent"`
	SchemaVersion  int    `json:"schemaVersion"`
	ExpectedSchema int    `json:"expectedSchema"`
	Records        int64  `json:"records"`
	IntegrityCheck string `json:"integrityCheck"`
}
