package database

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/vocato/internal/config"
)

func TestOpen(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name       string
		cfg        config.DatabaseConfig
		wantDriver string
		wantErr    bool
	}{
		{
			name: "creates mysql connection with valid config",
			cfg: config.DatabaseConfig{
				Driver:   "mysql",
				Host:     "localhost",
				Port:     3306,
				Database: "testdb",
				Username: "testuser",
				Password: "testpass",
			},
			wantDriver: "mysql",
		},
		{
			name: "creates mysql connection with pool settings and params",
			cfg: config.DatabaseConfig{
				Driver:          "mysql",
				Host:            "db.example.com",
				Port:            3307,
				Database:        "vocato",
				Username:        "admin",
				Password:        "secret",
				TLS:             true,
				Params:          map[string]string{"charset": "utf8mb4"},
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 300,
			},
			wantDriver: "mysql",
		},
		{
			name: "creates sqlite connection and its directory",
			cfg: config.DatabaseConfig{
				Driver: "sqlite3",
				Path:   filepath.Join(tempDir, "nested", "vocato.db"),
			},
			wantDriver: "sqlite3",
		},
		{
			name:    "unsupported driver",
			cfg:     config.DatabaseConfig{Driver: "postgres"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			defer got.Close()

			assert.Equal(t, tt.wantDriver, got.DriverName())
		})
	}
	assert.DirExists(t, filepath.Join(tempDir, "nested"))
}

func TestPing(t *testing.T) {
	pingDelay = time.Millisecond

	tests := []struct {
		name      string
		attempts  uint
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name:     "succeeds on first attempt",
			attempts: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing()
			},
		},
		{
			name:     "succeeds after a transient failure",
			attempts: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
				mock.ExpectPing()
			},
		},
		{
			name:     "gives up after all attempts",
			attempts: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
				mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			err = Ping(context.Background(), sqlx.NewDb(db, "sqlite3"), tt.attempts)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "connection refused")
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTx(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(ctx context.Context, tx *sqlx.Tx) error
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
		errMsg    string
	}{
		{
			name: "commits on success",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back on error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return fmt.Errorf("something failed")
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			wantErr: true,
			errMsg:  "something failed",
		},
		{
			name: "begin error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(fmt.Errorf("begin failed"))
			},
			wantErr: true,
			errMsg:  "begin transaction",
		},
		{
			name: "commit error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(fmt.Errorf("commit failed"))
			},
			wantErr: true,
			errMsg:  "commit transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			sqlxDB := sqlx.NewDb(db, "mysql")
			tt.setupMock(mock)

			err = RunInTx(context.Background(), sqlxDB, tt.fn)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMigrate(t *testing.T) {
	tests := []struct {
		name      string
		driver    string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name:   "sqlite creates table and indexes",
			driver: "sqlite3",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS words (")).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_words_next_review_date")).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_words_srs_stage")).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
		},
		{
			name:   "mysql creates table with inline indexes",
			driver: "mysql",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`CREATE TABLE IF NOT EXISTS words \(.*INDEX idx_words_srs_stage`).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
		},
		{
			name:   "rolls back when a statement fails",
			driver: "sqlite3",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TABLE").WillReturnError(fmt.Errorf("disk full"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			err = Migrate(context.Background(), sqlx.NewDb(db, tt.driver))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
