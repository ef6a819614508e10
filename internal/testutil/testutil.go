// Package testutil provides shared test helpers for creating config files and database fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/vocato/internal/config"
	"github.com/at-ishikawa/vocato/internal/database"
	"github.com/at-ishikawa/vocato/internal/word"
)

// ConfigOption appends a YAML section to the generated config.
type ConfigOption func(*configContent)

type configContent struct {
	sections []string
}

// WithSection adds a raw top-level YAML section, such as a study or notification block.
func WithSection(yaml string) ConfigOption {
	return func(c *configContent) {
		c.sections = append(c.sections, yaml)
	}
}

// SetupTestConfig creates a config file whose SQLite database and state file live under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	dataDir := filepath.Join(tmpDir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))

	content := configContent{
		sections: []string{fmt.Sprintf(`database:
  driver: sqlite3
  path: %s
storage:
  data_directory: %s
  state_file: state.yml
`, filepath.Join(dataDir, "vocato.db"), dataDir)},
	}
	for _, opt := range opts {
		opt(&content)
	}

	var body string
	for _, section := range content.sections {
		body += section
	}
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0644))
	return cfgPath
}

// NewSQLiteDB opens a migrated SQLite database in a temporary directory and closes it when the test ends.
func NewSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Connect(context.Background(), config.DatabaseConfig{
		Driver:          database.DriverSQLite,
		Path:            filepath.Join(t.TempDir(), "vocato.db"),
		ConnectAttempts: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

// CreateWords saves the words into db.
func CreateWords(t *testing.T, db *sqlx.DB, words ...*word.Word) {
	t.Helper()
	repository := word.NewDBRepository(db)
	for _, w := range words {
		require.NoError(t, repository.Save(context.Background(), w))
	}
}
