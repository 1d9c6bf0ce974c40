package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/userauth/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.UserSession{})
	require.NoError(t, err)

	return NewRepository(db)
}

func TestRepository_Create(t *testing.T) {
	repo := setupTestDB(t)

	session, err := repo.Create(1, "token-abc")

	require.NoError(t, err)
	assert.NotZero(t, session.ID)
	assert.Equal(t, uint(1), session.UserID)
	assert.Equal(t, "token-abc", session.SessionID)
	assert.False(t, session.CreatedAt.IsZero())
}

func TestRepository_Create_DuplicateToken(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Create(1, "token-abc")
	require.NoError(t, err)

	_, err = repo.Create(2, "token-abc")
	assert.Error(t, err)
}

func TestRepository_GetBySessionID(t *testing.T) {
	repo := setupTestDB(t)

	created, err := repo.Create(1, "token-abc")
	require.NoError(t, err)

	session, err := repo.GetBySessionID("token-abc")

	require.NoError(t, err)
	assert.Equal(t, created.ID, session.ID)
	assert.Equal(t, uint(1), session.UserID)
}

func TestRepository_GetBySessionID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetBySessionID("missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Create(1, "token-abc")
	require.NoError(t, err)

	require.NoError(t, repo.Delete("token-abc"))

	_, err = repo.GetBySessionID("token-abc")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an unknown token is not an error
	assert.NoError(t, repo.Delete("token-abc"))
	assert.NoError(t, repo.Delete("never-existed"))
}

func TestRepository_DeleteExpired(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Create(1, "old-token")
	require.NoError(t, err)
	_, err = repo.Create(2, "fresh-token")
	require.NoError(t, err)

	// Nothing is older than an hour ago
	deleted, err := repo.DeleteExpired(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, deleted)

	// Everything is older than an hour from now
	deleted, err = repo.DeleteExpired(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.GetBySessionID("fresh-token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Touch(t *testing.T) {
	repo := setupTestDB(t)

	created, err := repo.Create(1, "token-abc")
	require.NoError(t, err)

	require.NoError(t, repo.Touch("token-abc"))

	session, err := repo.GetBySessionID("token-abc")
	require.NoError(t, err)
	assert.True(t, session.UpdatedAt.After(created.CreatedAt) || session.UpdatedAt.Equal(created.CreatedAt))
}
