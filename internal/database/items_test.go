package database

import (
	"context"
	"testing"
	"time"

	"renthub/internal/domain"
	"renthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	ownerID := seedUser(t, db, "Owner", "owner@example.com")

	item := &models.Item{Name: "Drill", Description: "Cordless drill", Available: true, OwnerID: ownerID}
	require.NoError(t, db.CreateItem(ctx, item))
	require.NotZero(t, item.ID)

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drill", got.Name)
	assert.True(t, got.Available)
	assert.Equal(t, ownerID, got.OwnerID)
	assert.Zero(t, got.RequestID)
}

func TestGetItem_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetItem(context.Background(), 17)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateItem_WithRequest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	ownerID := seedUser(t, db, "Owner", "owner@example.com")
	requesterID := seedUser(t, db, "Requester", "requester@example.com")

	request := &models.ItemRequest{Description: "Need a drill", RequesterID: requesterID, Created: time.Now()}
	require.NoError(t, db.CreateRequest(ctx, request))

	item := &models.Item{Name: "Drill", Available: true, OwnerID: ownerID, RequestID: request.ID}
	require.NoError(t, db.CreateItem(ctx, item))

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, request.ID, got.RequestID)

	answers, err := db.GetItemsByRequests(ctx, []int64{request.ID})
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, item.ID, answers[0].ID)
}

func TestUpdateItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	ownerID := seedUser(t, db, "Owner", "owner@example.com")
	itemID := seedItem(t, db, ownerID, "Drill")

	item, err := db.GetItem(ctx, itemID)
	require.NoError(t, err)

	item.Description = "Now with two batteries"
	item.Available = false
	require.NoError(t, db.UpdateItem(ctx, item))

	got, err := db.GetItem(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, "Now with two batteries", got.Description)
	assert.False(t, got.Available)
}

func TestGetItemsByOwner_Pagination(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	ownerID := seedUser(t, db, "Owner", "owner@example.com")
	otherID := seedUser(t, db, "Other", "other@example.com")

	var ids []int64
	for _, name := range []string{"Drill", "Saw", "Hammer"} {
		ids = append(ids, seedItem(t, db, ownerID, name))
	}
	seedItem(t, db, otherID, "Ladder")

	items, err := db.GetItemsByOwner(ctx, ownerID, 0, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ids[0], items[0].ID)
	assert.Equal(t, ids[1], items[1].ID)

	items, err = db.GetItemsByOwner(ctx, ownerID, 2, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ids[2], items[0].ID)
}

func TestSearchItems(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	ownerID := seedUser(t, db, "Owner", "owner@example.com")

	require.NoError(t, db.CreateItem(ctx, &models.Item{Name: "Power Drill", Description: "800W", Available: true, OwnerID: ownerID}))
	require.NoError(t, db.CreateItem(ctx, &models.Item{Name: "Screwdriver", Description: "Includes drill bits", Available: true, OwnerID: ownerID}))
	require.NoError(t, db.CreateItem(ctx, &models.Item{Name: "Broken Drill", Description: "For parts", Available: false, OwnerID: ownerID}))

	// Matches name or description, case-insensitively, available items only.
	items, err := db.SearchItems(ctx, "dRiLl", 0, 20)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestDeleteItem(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	ownerID := seedUser(t, db, "Owner", "owner@example.com")
	itemID := seedItem(t, db, ownerID, "Drill")

	require.NoError(t, db.DeleteItem(ctx, itemID))

	_, err := db.GetItem(ctx, itemID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
