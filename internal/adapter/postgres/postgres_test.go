package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthlog/internal/domain"
)

// openTestDB connects to TEST_DATABASE_URL or skips.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestKV(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	key := "test:" + t.Name()

	require.NoError(t, db.Set(ctx, key, `[1]`))
	require.NoError(t, db.Set(ctx, key, `[1,2]`))

	v, found, err := db.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[1,2]`, v)
}

func TestSessionRepo(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepo(db)
	ctx := context.Background()
	token := "tok-" + string(domain.NewRecordID())

	require.NoError(t, repo.Create(ctx, domain.Session{
		Token:     token,
		UserAgent: "ua",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	s, err := repo.GetByToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "ua", s.UserAgent)

	require.NoError(t, repo.Delete(ctx, token))
	s, err = repo.GetByToken(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, s)
}
