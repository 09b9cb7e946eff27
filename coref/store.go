package coref

import (
	"context"

	"github.com/teranos/coref/db"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/logger"
)

// Persist saves the trained state of sys and returns the model id.
// Systems without state are not stored and yield an empty id.
func Persist(ctx context.Context, store *db.Store, sys System) (string, error) {
	snap, ok := sys.(Snapshotter)
	if !ok {
		logger.ComponentLogger("store").Debugw("Nothing to persist", logger.FieldAlgorithm, sys.Name())
		return "", nil
	}
	payload, err := snap.Export()
	if err != nil {
		return "", errors.Wrapf(err, "export %s", sys.Name())
	}
	return store.Save(ctx, sys.Name(), payload)
}

// Restore loads model id into sys, or the latest model for its algorithm
// when id is empty. It returns the id actually loaded.
func Restore(ctx context.Context, store *db.Store, sys System, id string) (string, error) {
	snap, ok := sys.(Snapshotter)
	if !ok {
		if id != "" {
			return "", errors.Newf("%s has no trained state to load", sys.Name())
		}
		return "", nil
	}

	var (
		m   *db.Model
		err error
	)
	if id == "" {
		m, err = store.Latest(ctx, sys.Name())
	} else {
		m, err = store.Get(ctx, id)
	}
	if err != nil {
		return "", err
	}
	if m.Algorithm != sys.Name() {
		return "", errors.Newf("model %s was trained for %s, not %s", m.ID, m.Algorithm, sys.Name())
	}
	if err := snap.Import(m.Payload); err != nil {
		return "", errors.Wrapf(err, "import model %s", m.ID)
	}
	return m.ID, nil
}
