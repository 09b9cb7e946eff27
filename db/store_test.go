package db

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/coref/errors"
)

func newTestStore(t *testing.T, running string) *Store {
	t.Helper()
	db, err := OpenWithMigrations(filepath.Join(t.TempDir(), "models.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewStore(db)
	s.version = running
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func TestStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "1.2.0")

	id, err := s.Save(ctx, "sieve", []byte(`{"distance_sum":22}`))
	require.NoError(t, err)
	assert.Len(t, id, 36)

	m, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, "sieve", m.Algorithm)
	assert.Equal(t, "1.2.0", m.Version)
	assert.JSONEq(t, `{"distance_sum":22}`, string(m.Payload))
	assert.Equal(t, 2026, m.CreatedAt.Year())

	_, err = s.Get(ctx, "missing")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestStoreLatest(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "1.2.0")

	_, err := s.Latest(ctx, "classifier")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	first, err := s.Save(ctx, "classifier", []byte("a"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "sieve", []byte("b"))
	require.NoError(t, err)
	second, err := s.Save(ctx, "classifier", []byte("c"))
	require.NoError(t, err)

	m, err := s.Latest(ctx, "classifier")
	require.NoError(t, err)
	assert.Equal(t, second, m.ID)
	assert.Equal(t, []byte("c"), m.Payload)

	list, err := s.List(ctx, "classifier")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)
	assert.Equal(t, first, list[1].ID)
	assert.Nil(t, list[0].Payload)
}

func TestStoreRefusesIncompatibleModel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "1.2.0")
	id, err := s.Save(ctx, "sieve", []byte("{}"))
	require.NoError(t, err)

	s.version = "2.0.0"
	_, err = s.Get(ctx, id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIncompatibleModel))

	_, err = s.Latest(ctx, "sieve")
	assert.True(t, errors.Is(err, errors.ErrIncompatibleModel))
}

func TestStoreSave_Sqlmock(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	s := NewStore(sqlDB)
	s.version = "1.0.0"
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	s.now = func() time.Time { return now }

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO models (id, algorithm, version, payload, created_at) VALUES (?, ?, ?, ?, ?)")).
		WithArgs(sqlmock.AnyArg(), "head_baseline", "1.0.0", []byte("{}"), now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err = s.Save(context.Background(), "head_baseline", []byte("{}"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreLatest_Sqlmock(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	s := NewStore(sqlDB)
	s.version = "1.0.0"

	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "algorithm", "version", "payload", "created_at"}).
		AddRow("m1", "sieve", "1.3.0", []byte("{}"), created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM models WHERE algorithm = ? ORDER BY created_at DESC, rowid DESC LIMIT 1")).
		WithArgs("sieve").
		WillReturnRows(rows)

	m, err := s.Latest(context.Background(), "sieve")
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, created, m.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSave_SqlmockError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectExec("INSERT INTO models").WillReturnError(errors.New("disk I/O error"))

	_, err = NewStore(sqlDB).Save(context.Background(), "sieve", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save sieve model")
}
