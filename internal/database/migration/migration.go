package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id                        UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  title                     TEXT             NOT NULL,
  filename                  TEXT             NOT NULL,
  file_path                 TEXT             NOT NULL UNIQUE,
  file_size                 BIGINT           NOT NULL CHECK (file_size >= 0),
  upload_date               TIMESTAMPTZ      NOT NULL DEFAULT now(),
  content_text              TEXT             NOT NULL DEFAULT '',
  classification            TEXT             CHECK (classification IN ('Technical','Business','Legal','Academic','Medical','General')),
  classification_confidence DOUBLE PRECISION CHECK (classification_confidence BETWEEN 0 AND 1),
  author                    TEXT,
  creation_date             TIMESTAMPTZ,
  last_modified             TIMESTAMPTZ,
  page_count                INTEGER
);`,
	},
	{
		Name: "create_index_documents_upload_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_upload_date ON documents (upload_date);`,
	},
	{
		Name: "create_index_documents_title",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_title ON documents (title);`,
	},
	{
		Name: "create_index_documents_classification",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_classification ON documents (classification);`,
	},
	{
		Name: "create_table_search_logs",
		SQL: `CREATE TABLE IF NOT EXISTS search_logs (
  id            BIGSERIAL        PRIMARY KEY,
  query         TEXT             NOT NULL,
  results_count INTEGER          NOT NULL CHECK (results_count >= 0),
  search_time   DOUBLE PRECISION NOT NULL CHECK (search_time >= 0),
  timestamp     TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_search_logs_timestamp",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_search_logs_timestamp ON search_logs (timestamp DESC);`,
	},
}

const sentinelQuery = "SELECT to_regclass('public.documents') IS NOT NULL AND to_regclass('public.search_logs') IS NOT NULL"

// EnsureMigrated checks whether the schema exists and creates it if it does not.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("component", "database"))
	start := time.Now()

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel tables: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
