package repository

import (
	"context"
	"testing"
	"time"

	"ecubot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceSessionRepository_Upsert(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewVoiceSessionRepository(testDB.DB)
	ctx := context.Background()

	t.Run("inserts new session", func(t *testing.T) {
		session := testutil.CreateTestVoiceSession(111111, 300)
		err := repo.Upsert(ctx, session)
		require.NoError(t, err)

		got, err := repo.GetByUserID(ctx, 111111)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(300), got.TotalSeconds)
		assert.Nil(t, got.OpenSince)
	})

	t.Run("updates existing session", func(t *testing.T) {
		openSince := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
		session := testutil.CreateTestOpenVoiceSession(111111, 360, openSince)
		err := repo.Upsert(ctx, session)
		require.NoError(t, err)

		got, err := repo.GetByUserID(ctx, 111111)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(360), got.TotalSeconds)
		require.NotNil(t, got.OpenSince)
		assert.True(t, got.OpenSince.Equal(openSince))
	})
}

func TestVoiceSessionRepository_GetByUserID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewVoiceSessionRepository(testDB.DB)
	ctx := context.Background()

	t.Run("session not found", func(t *testing.T) {
		session, err := repo.GetByUserID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, session)
	})
}

func TestVoiceSessionRepository_GetOpen(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewVoiceSessionRepository(testDB.DB)
	ctx := context.Background()

	closed := testutil.CreateTestVoiceSession(1, 100)
	require.NoError(t, repo.Upsert(ctx, closed))

	openSince := time.Now().UTC().Truncate(time.Second)
	open := testutil.CreateTestOpenVoiceSession(2, 200, openSince)
	require.NoError(t, repo.Upsert(ctx, open))

	t.Run("returns only open sessions", func(t *testing.T) {
		sessions, err := repo.GetOpen(ctx)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, int64(2), sessions[0].UserID)
		require.NotNil(t, sessions[0].OpenSince)
	})

	t.Run("get all returns both", func(t *testing.T) {
		sessions, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, sessions, 2)
	})
}
