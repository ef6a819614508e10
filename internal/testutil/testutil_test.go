package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/vocato/internal/config"
	"github.com/at-ishikawa/vocato/internal/word"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir, WithSection("study:\n  quiz_mode: dictation\n"))

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	info, err := os.Stat(filepath.Join(tmpDir, "data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, filepath.Join(tmpDir, "data", "vocato.db"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(tmpDir, "data", "state.yml"), cfg.Storage.StatePath())
	assert.Equal(t, "dictation", cfg.Study.QuizMode)
}

func TestNewSQLiteDB(t *testing.T) {
	db := NewSQLiteDB(t)
	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	CreateWords(t, db,
		&word.Word{ID: "w1", Term: "apple", Meaning: "사과", CreatedAt: created},
		&word.Word{ID: "w2", Term: "banana", Meaning: "바나나", CreatedAt: created.Add(time.Hour)},
	)

	words, err := word.NewDBRepository(db).Fetch(context.Background(), word.Query{
		Sort: []word.SortKey{{Column: word.ColumnCreatedAt}},
	})
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "apple", words[0].Term)
	assert.Equal(t, "banana", words[1].Term)
}
