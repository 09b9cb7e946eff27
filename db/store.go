package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/logger"
	"github.com/teranos/coref/version"
)

// Model is one trained snapshot.
type Model struct {
	ID        string
	Algorithm string
	Version   string
	Payload   []byte
	CreatedAt time.Time
}

// Store persists trained model snapshots.
type Store struct {
	db      *sql.DB
	version string
	now     func() time.Time
	log     *zap.SugaredLogger
}

// NewStore wraps an open, migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		version: version.Version,
		now:     func() time.Time { return time.Now().UTC() },
		log:     logger.ComponentLogger("store"),
	}
}

const selectModel = "SELECT id, algorithm, version, payload, created_at FROM models"

// Save records payload as the newest model for algorithm and returns its id.
func (s *Store) Save(ctx context.Context, algorithm string, payload []byte) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO models (id, algorithm, version, payload, created_at) VALUES (?, ?, ?, ?, ?)",
		id, algorithm, s.version, payload, s.now(),
	)
	if err != nil {
		return "", errors.Wrapf(err, "save %s model", algorithm)
	}
	s.log.Infow("Model saved",
		logger.FieldModelID, id,
		logger.FieldAlgorithm, algorithm,
		"bytes", len(payload),
	)
	return id, nil
}

// Get loads a model by id. Models from an incompatible version are refused.
func (s *Store) Get(ctx context.Context, id string) (*Model, error) {
	row := s.db.QueryRowContext(ctx, selectModel+" WHERE id = ?", id)
	m, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("model %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get model %s", id)
	}
	if err := s.check(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Latest loads the most recently saved model for algorithm.
func (s *Store) Latest(ctx context.Context, algorithm string) (*Model, error) {
	row := s.db.QueryRowContext(ctx,
		selectModel+" WHERE algorithm = ? ORDER BY created_at DESC, rowid DESC LIMIT 1", algorithm)
	m, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.WithHint(
			errors.NewNotFoundError("no %s model", algorithm),
			"run coref train first",
		)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "latest %s model", algorithm)
	}
	if err := s.check(m); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns every stored model for algorithm, newest first, without payloads.
func (s *Store) List(ctx context.Context, algorithm string) ([]Model, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, algorithm, version, created_at FROM models WHERE algorithm = ? ORDER BY created_at DESC, rowid DESC",
		algorithm)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s models", algorithm)
	}
	defer rows.Close()

	var models []Model
	for rows.Next() {
		var m Model
		if err := rows.Scan(&m.ID, &m.Algorithm, &m.Version, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan model")
		}
		models = append(models, m)
	}
	return models, errors.Wrap(rows.Err(), "iterate models")
}

func (s *Store) scan(row *sql.Row) (*Model, error) {
	var m Model
	if err := row.Scan(&m.ID, &m.Algorithm, &m.Version, &m.Payload, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) check(m *Model) error {
	if err := version.CompatibleWith(s.version, m.Version); err != nil {
		return errors.Wrapf(err, "model %s", m.ID)
	}
	return nil
}
