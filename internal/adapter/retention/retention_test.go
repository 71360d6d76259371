package retention_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confstore/internal/adapter/retention"
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

func TestNewRejectsBadSchedule(t *testing.T) {
	st := openTestStore(t)

	_, err := retention.New(st, "not a schedule", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a schedule")
}

func TestStartStop(t *testing.T) {
	st := openTestStore(t)

	jan, err := retention.New(st, "0 3 * * *", 30*24*time.Hour)
	require.NoError(t, err)

	jan.Start()
	jan.Stop()
}

func TestRunKeepsFreshRows(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	sid := uuid.New()

	var ei *errinfo.ErrInfo
	ei = ei.Validation()
	require.NoError(t, st.SaveChain(ctx, sid, errinfo.CodeValidationFailed, ei.Records()))

	jan, err := retention.New(st, "0 3 * * *", time.Hour)
	require.NoError(t, err)
	jan.Run()

	recs, err := st.Chain(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestRunPurgesAgedRows(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	sid := uuid.New()

	var ei *errinfo.ErrInfo
	ei = ei.Validation()
	require.NoError(t, st.SaveChain(ctx, sid, errinfo.CodeValidationFailed, ei.Records()))

	// A negative retention age puts the cutoff in the future, so the row
	// just written is already past retention.
	jan, err := retention.New(st, "0 3 * * *", -time.Second)
	require.NoError(t, err)
	jan.Run()

	recs, err := st.Chain(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
