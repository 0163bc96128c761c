package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fastbillx/checkout/internal/domain"
	"github.com/fastbillx/checkout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSession(t *testing.T, repo *SQLiteSessionRepo, id string) *domain.Session {
	t.Helper()
	s := testutil.NewTestSession(id)
	require.NoError(t, repo.Save(context.Background(), s))
	return s
}

func TestHistoryRepo_ReplaceAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	sessions := NewSQLiteSessionRepo(database)
	history := NewSQLiteHistoryRepo(database)
	ctx := context.Background()

	s := seedSession(t, sessions, "cart_100")
	require.NoError(t, history.Replace(ctx, s.ID, s.History))

	got, err := history.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Entry order must survive the round trip.
	assert.Equal(t, "apple", got[0].Item)
	assert.Equal(t, "apple", got[1].Item)
	assert.Equal(t, "milk", got[2].Item)
	assert.True(t, got[0].Timestamp.Before(got[1].Timestamp))

	require.NotNil(t, got[0].BBox)
	assert.Equal(t, domain.BoundingBox{X1: 10, Y1: 20, X2: 110, Y2: 220}, *got[0].BBox)
	assert.Nil(t, got[1].BBox)
	assert.Equal(t, "cart_100", got[0].SessionID)
}

func TestHistoryRepo_ReplaceRewrites(t *testing.T) {
	database := testutil.NewTestDB(t)
	sessions := NewSQLiteSessionRepo(database)
	history := NewSQLiteHistoryRepo(database)
	ctx := context.Background()

	s := seedSession(t, sessions, "cart_100")
	require.NoError(t, history.Replace(ctx, s.ID, s.History))

	grown := append(s.History, testutil.NewTestHistoryEntry(s.ID, "bread", 2.00, s.StartedAt.Add(30*time.Second)))
	require.NoError(t, history.Replace(ctx, s.ID, grown))

	got, err := history.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "bread", got[3].Item)
}

func TestHistoryRepo_EmptySession(t *testing.T) {
	database := testutil.NewTestDB(t)
	history := NewSQLiteHistoryRepo(database)

	got, err := history.ListBySession(context.Background(), "cart_none")
	require.NoError(t, err)
	assert.Empty(t, got)
}
