package api

import "creditscores/internal/scores"

// FromRecord converts a store record to its API representation.
func FromRecord(rec *scores.Record) CreditScore {
	if rec == nil {
		return CreditScore{}
	}
	dto := CreditScore{
		ID:     rec.ID,
		Score:  rec.Score,
		UserID: rec.UserID,
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromRecords converts a slice, dropping nil entries.
func FromRecords(records []*scores.Record) []CreditScore {
	out := make([]CreditScore, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		out = append(out, FromRecord(rec))
	}
	return out
}
