package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS words (
	id TEXT PRIMARY KEY,
	term TEXT NOT NULL,
	meaning TEXT NOT NULL,
	memo TEXT NOT NULL DEFAULT '',
	synonyms TEXT NOT NULL DEFAULT '',
	srs_stage INTEGER NOT NULL DEFAULT 0,
	next_review_date DATETIME NULL,
	correct_count INTEGER NOT NULL DEFAULT 0,
	wrong_count INTEGER NOT NULL DEFAULT 0,
	importance_count INTEGER NOT NULL DEFAULT 0,
	accuracy_count INTEGER NOT NULL DEFAULT 0,
	last_accuracy_date DATETIME NULL,
	is_favorite BOOLEAN NOT NULL DEFAULT 0,
	is_mastered BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_words_next_review_date ON words (next_review_date)`,
	`CREATE INDEX IF NOT EXISTS idx_words_srs_stage ON words (srs_stage)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS words (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	term VARCHAR(200) NOT NULL,
	meaning VARCHAR(500) NOT NULL,
	memo TEXT NOT NULL,
	synonyms VARCHAR(500) NOT NULL DEFAULT '',
	srs_stage TINYINT NOT NULL DEFAULT 0,
	next_review_date DATETIME(6) NULL,
	correct_count INT NOT NULL DEFAULT 0,
	wrong_count INT NOT NULL DEFAULT 0,
	importance_count INT NOT NULL DEFAULT 0,
	accuracy_count INT NOT NULL DEFAULT 0,
	last_accuracy_date DATETIME(6) NULL,
	is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
	is_mastered BOOLEAN NOT NULL DEFAULT FALSE,
	created_at DATETIME(6) NOT NULL,
	INDEX idx_words_next_review_date (next_review_date),
	INDEX idx_words_srs_stage (srs_stage)
) DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the words table and its indexes when they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements := sqliteSchema
	if db.DriverName() == DriverMySQL {
		statements = mysqlSchema
	}

	return RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("tx.ExecContext() > %w", err)
			}
		}
		return nil
	})
}
