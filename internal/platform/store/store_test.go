package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confstore/internal/errinfo"
	"confstore/internal/platform/store"
)

const migrationsPath = "file://../../../migrations/sqlite"

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "audit.db")
	st, err := store.Open(context.Background(), dbPath, migrationsPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})
	return st
}

func chain2() []errinfo.Record {
	var ei *errinfo.ErrInfo
	ei = ei.ErrData(errinfo.CodeEngine, errinfo.DataFormatPath, "/system/dns", "resolver list is invalid")
	ei = ei.Validation()
	return ei.Records()
}

func TestSaveAndReadChain(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	sid := uuid.New()

	require.NoError(t, st.SaveChain(ctx, sid, errinfo.CodeEngine, chain2()))

	recs, err := st.Chain(ctx, sid)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, 0, recs[0].Seq)
	assert.Equal(t, "engine", recs[0].Code)
	assert.Equal(t, "resolver list is invalid", recs[0].Message)
	assert.Equal(t, "/system/dns", recs[0].Path)

	assert.Equal(t, 1, recs[1].Seq)
	assert.Equal(t, "validation_failed", recs[1].Code)
	assert.Empty(t, recs[1].Path)
}

func TestSaveChainEmptyIsNoOp(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	sid := uuid.New()

	require.NoError(t, st.SaveChain(ctx, sid, errinfo.CodeOK, nil))

	recs, err := st.Chain(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestChainsAreKeyedBySession(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, st.SaveChain(ctx, a, errinfo.CodeEngine, chain2()))

	recs, err := st.Chain(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestPurge(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	sid := uuid.New()

	require.NoError(t, st.SaveChain(ctx, sid, errinfo.CodeEngine, chain2()))

	// A cutoff in the past removes nothing.
	n, err := st.Purge(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	// A cutoff in the future removes everything written so far.
	n, err = st.Purge(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	recs, err := st.Chain(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	st, err := store.Open(context.Background(), dbPath, migrationsPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	// Reopening the same database must not fail on already applied schema.
	st, err = store.Open(context.Background(), dbPath, migrationsPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}
