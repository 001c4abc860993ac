package scores

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Health returns diagnostic information about the credit score database.
func (s *Store) Health(ctx context.Context) (Health, error) {
	ctx = ensureContext(ctx)
	health := Health{
		DatabasePath:   s.path,
		ExpectedSchema: schemaVersion,
	}

	if s.path == "" {
		return health, errors.New("database path is unknown")
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return health, fmt.Errorf("stat database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("database path %q is a directory", s.path)
	}

	var tables int
	if err := s.db.GetContext(ctx, &tables,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name=?", tableName,
	); err != nil {
		return health, fmt.Errorf("check %s table: %w", tableName, err)
	}
	health.TablePresent = tables > 0

	if err := s.db.GetContext(ctx, &health.SchemaVersion, "SELECT version FROM schema_version LIMIT 1"); err != nil {
		return health, fmt.Errorf("read schema version: %w", err)
	}

	if health.TablePresent {
		count, err := s.Count(ctx)
		if err != nil {
			return health, err
		}
		health.Records = count
	}

	var integrity string
	if err := s.db.GetContext(ctx, &integrity, "PRAGMA integrity_check"); err != nil {
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.TrimSpace(integrity)
	return health, nil
}

// Healthy reports whether the diagnostics describe a usable database.
func (h Health) Healthy() bool {
	return h.TablePresent && h.SchemaVersion == h.ExpectedSchema && strings.EqualFold(h.IntegrityCheck, "ok")
}
