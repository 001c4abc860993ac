package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

func (s *Store) selectRecords() sq.SelectBuilder {
	return s.sm.Select(s.sq.Select(), &recordRow{}).From(tableName)
}

// List returns every record in insertion order.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	ctx = ensureContext(ctx)
	query, args, err := s.selectRecords().OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []recordRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list credit scores: %w", err)
	}

	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

// Get fetches a record by id. It returns (nil, nil) when no row matches.
func (s *Store) Get(ctx context.Context, id int64) (*Record, error) {
	ctx = ensureContext(ctx)
	query, args, err := s.selectRecords().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var row recordRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit score %d: %w", id, err)
	}
	return row.toRecord(), nil
}

// Create inserts a record and returns it as stored, including the assigned
// id and creation timestamp.
func (s *Store) Create(ctx context.Context, score, userID int64) (*Record, error) {
	ctx = ensureContext(ctx)
	query, args, err := s.sq.Insert(tableName).
		Columns("score", "user_id").
		Values(score, userID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert credit score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("credit score %d vanished after insert", id)
	}
	return rec, nil
}

// UpdateScore sets the score of the record with the given id and reports how
// many rows changed. A missing id yields 0 without error.
func (s *Store) UpdateScore(ctx context.Context, id, score int64) (int64, error) {
	ctx = ensureContext(ctx)
	query, args, err := s.sq.Update(tableName).
		Set("score", score).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update credit score %d: %w", id, err)
	}
	return rowsAffected(res)
}

// Delete removes the record with the given id and reports how many rows were
// removed. A missing id yields 0 without error.
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	ctx = ensureContext(ctx)
	query, args, err := s.sq.Delete(tableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete credit score %d: %w", id, err)
	}
	return rowsAffected(res)
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	query, args, err := s.sq.Select("COUNT(1)").From(tableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var count int64
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count credit scores: %w", err)
	}
	return count, nil
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
