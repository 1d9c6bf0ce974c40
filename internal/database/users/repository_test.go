package users

import (
	"testing"

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

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	return NewRepository(db)
}

func TestRepository_Insert(t *testing.T) {
	repo := setupTestDB(t)

	user, err := repo.Insert(&entities.User{
		Email:          "test@example.com",
		HashedPassword: "hashed",
	})

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
}

func TestRepository_FindOne_ByEmail(t *testing.T) {
	repo := setupTestDB(t)

	created, err := repo.Insert(&entities.User{Email: "test@example.com", HashedPassword: "hashed"})
	require.NoError(t, err)

	user, err := repo.FindOne(map[string]any{"email": "test@example.com"})

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "hashed", user.HashedPassword)
}

func TestRepository_FindOne_MultiField(t *testing.T) {
	repo := setupTestDB(t)

	created, err := repo.Insert(&entities.User{Email: "test@example.com", HashedPassword: "hashed"})
	require.NoError(t, err)

	user, err := repo.FindOne(map[string]any{
		"id":    created.ID,
		"email": "test@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	// All predicates must match
	_, err = repo.FindOne(map[string]any{
		"id":    created.ID,
		"email": "other@example.com",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_FindOne_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.FindOne(map[string]any{"email": "missing@example.com"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_FindOne_InvalidField(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.FindOne(map[string]any{"no_such_column": "x"})

	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestRepository_Update(t *testing.T) {
	repo := setupTestDB(t)

	created, err := repo.Insert(&entities.User{Email: "test@example.com", HashedPassword: "hashed"})
	require.NoError(t, err)

	err = repo.Update(created.ID, map[string]any{"session_id": "token-123"})
	require.NoError(t, err)

	user, err := repo.FindOne(map[string]any{"session_id": "token-123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestRepository_Update_ClearsWithNil(t *testing.T) {
	repo := setupTestDB(t)

	created, err := repo.Insert(&entities.User{Email: "test@example.com", HashedPassword: "hashed"})
	require.NoError(t, err)

	require.NoError(t, repo.Update(created.ID, map[string]any{"session_id": "token-123"}))
	require.NoError(t, repo.Update(created.ID, map[string]any{"session_id": nil}))

	_, err = repo.FindOne(map[string]any{"session_id": "token-123"})
	assert.ErrorIs(t, err, ErrNotFound)

	user, err := repo.FindOne(map[string]any{"id": created.ID})
	require.NoError(t, err)
	assert.Nil(t, user.SessionID)
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.Update(999, map[string]any{"session_id": "token-123"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Update_InvalidField(t *testing.T) {
	repo := setupTestDB(t)

	created, err := repo.Insert(&entities.User{Email: "test@example.com", HashedPassword: "hashed"})
	require.NoError(t, err)

	err = repo.Update(created.ID, map[string]any{"no_such_column": "x"})

	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestRepository_Insert_DuplicateEmail(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Insert(&entities.User{Email: "test@example.com", HashedPassword: "hashed"})
	require.NoError(t, err)

	_, err = repo.Insert(&entities.User{Email: "test@example.com", HashedPassword: "other"})
	assert.Error(t, err)
}
