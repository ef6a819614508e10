package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"

	"github.com/at-ishikawa/vocato/internal/config"
	"github.com/at-ishikawa/vocato/internal/database"
	"github.com/at-ishikawa/vocato/internal/progress"
	"github.com/at-ishikawa/vocato/internal/word"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// dependencies are the stores shared by the commands.
type dependencies struct {
	cfg      *config.Config
	db       *sqlx.DB
	words    *word.DBRepository
	progress *progress.FileStore
	clock    clockwork.Clock
}

// openDependencies loads the configuration and connects to a migrated database.
func openDependencies(ctx context.Context) (*dependencies, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Connect() > %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		return nil, errors.Join(fmt.Errorf("database.Migrate() > %w", err), db.Close())
	}

	return &dependencies{
		cfg:      cfg,
		db:       db,
		words:    word.NewDBRepository(db),
		progress: progress.NewFileStore(cfg.Storage.StatePath()),
		clock:    clockwork.NewRealClock(),
	}, nil
}

func (d *dependencies) service() *word.Service {
	return word.NewService(d.words, d.clock)
}

func (d *dependencies) Close() error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("db.Close() > %w", err)
	}
	return nil
}
