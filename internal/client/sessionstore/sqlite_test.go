package sessionstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*SQLiteStore, func() error) {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db), db.Close
}

func TestSQLiteStore_LoadEmpty_ReturnsNilNil(t *testing.T) {
	s, _ := setupStore(t)

	r, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestSQLiteStore_SaveThenLoad(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	in := Record{Email: "a@b.co", IDToken: "id", AccessToken: "acc", RefreshToken: "ref"}
	require.NoError(t, s.Save(ctx, in))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in, *got)
}

func TestSQLiteStore_SaveReplacesPrevious(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Record{Email: "old@x.io", IDToken: "old", RefreshToken: "r1"}))
	require.NoError(t, s.Save(ctx, Record{Email: "new@x.io", IDToken: "new"}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Record{Email: "new@x.io", IDToken: "new"}, *got)
}

func TestSQLiteStore_Clear_IsIdempotent(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Record{IDToken: "id"}))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	db, err := OpenDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStore(db).Save(ctx, Record{Email: "e@x.io", IDToken: "tok"}))
	require.NoError(t, db.Close())

	db, err = OpenDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewSQLiteStore(db).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok", got.IDToken)
}

func TestSQLiteStore_ClosedDB_ErrorsWrapped(t *testing.T) {
	s, closeDB := setupStore(t)
	ctx := context.Background()
	require.NoError(t, closeDB())

	_, err := s.Load(ctx)
	require.ErrorContains(t, err, "failed to list session")

	require.ErrorContains(t, s.Clear(ctx), "failed to clear session")
	require.Error(t, s.Save(ctx, Record{IDToken: "x"}))
}

func TestMemory_RoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	r, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, r)

	require.NoError(t, m.Save(ctx, Record{IDToken: "id"}))
	r, err = m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "id", r.IDToken)

	r.IDToken = "mutated"
	again, _ := m.Load(ctx)
	assert.Equal(t, "id", again.IDToken)

	require.NoError(t, m.Clear(ctx))
	r, _ = m.Load(ctx)
	assert.Nil(t, r)
}
