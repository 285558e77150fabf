package database

import (
	"context"
	"testing"

	"renthub/internal/domain"
	"renthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	got, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.CreateUser(ctx, &models.User{Name: "Alice", Email: "alice@example.com"}))

	err := db.CreateUser(ctx, &models.User{Name: "Other Alice", Email: "alice@example.com"})
	assert.Error(t, err)
}

func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, user))

	user.Name = "Alice B."
	user.Email = "alice.b@example.com"
	require.NoError(t, db.UpdateUser(ctx, user))

	got, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.Name)
	assert.Equal(t, "alice.b@example.com", got.Email)
}

func TestUpdateUser_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := db.UpdateUser(context.Background(), &models.User{ID: 99, Name: "Ghost", Email: "ghost@example.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetAllUsers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.CreateUser(ctx, &models.User{Name: "Alice", Email: "alice@example.com"}))
	require.NoError(t, db.CreateUser(ctx, &models.User{Name: "Bob", Email: "bob@example.com"}))

	users, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, user))

	require.NoError(t, db.DeleteUser(ctx, user.ID))

	_, err := db.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
