// Package migration creates the submission schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelQuery reports whether the schema has been applied already.
const sentinelQuery = "SELECT to_regclass('public.kyc_submissions') IS NOT NULL"

var steps = []migrationStep{
	{
		Name: "create_table_kyc_submissions",
		SQL: `CREATE TABLE IF NOT EXISTS kyc_submissions (
  id            UUID        PRIMARY KEY,
  kind          TEXT        NOT NULL CHECK (kind IN ('business', 'individual')),
  subject_name  TEXT        NOT NULL,
  business_type TEXT,
  record        JSONB       NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_kyc_submissions_kind",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_kyc_submissions_kind ON kyc_submissions (kind);`,
	},
	{
		Name: "create_index_kyc_submissions_subject_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_kyc_submissions_subject_name ON kyc_submissions (subject_name);`,
	},
	{
		Name: "create_index_kyc_submissions_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_kyc_submissions_created_at ON kyc_submissions (created_at DESC);`,
	},
}

// EnsureMigrated applies the schema unless the kyc_submissions table exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "database", "db_host", dbHost)
	start := time.Now()

	log.InfoContext(ctx, "db_migration_check", "status", "starting")

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.ErrorContext(ctx, "db_migration_failed",
			"status", "error",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.InfoContext(ctx, "db_migration_skip",
			"status", "success",
			"reason", "schema already exists",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.InfoContext(ctx, "db_migration_start", "status", "in_progress", "steps", len(steps))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.ErrorContext(ctx, "db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.InfoContext(ctx, "db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.InfoContext(ctx, "db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
