package commands

import (
	"context"
	"database/sql"

	"github.com/teranos/coref/am"
	"github.com/teranos/coref/coref"
	"github.com/teranos/coref/db"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/logger"
)

// loadConfig loads and validates configuration, applying an algorithm
// override when one is given.
func loadConfig(algorithm string) (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	if algorithm != "" {
		// am.Load caches the config; work on a copy.
		c := *cfg
		c.Resolver.Algorithm = algorithm
		cfg = &c
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// openDatabase opens and migrates the model database named by cfg.
func openDatabase(cfg *am.Config) (*sql.DB, error) {
	path := cfg.GetDatabasePath()
	database, err := db.OpenWithMigrations(path, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", path)
	}
	return database, nil
}

// restoredSystem builds the configured system and loads model id into it,
// or the latest model when id is empty.
func restoredSystem(ctx context.Context, cfg *am.Config, id string) (coref.System, string, error) {
	sys, err := coref.Build(cfg)
	if err != nil {
		return nil, "", err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return nil, "", err
	}
	defer database.Close()

	loaded, err := coref.Restore(ctx, db.NewStore(database), sys, id)
	if err != nil {
		return nil, "", errors.Wrapf(err, "load %s model", sys.Name())
	}
	return sys, loaded, nil
}
