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

func seedRequest(t *testing.T, db *DB, requesterID int64, description string, created time.Time) int64 {
	t.Helper()
	request := &models.ItemRequest{Description: description, RequesterID: requesterID, Created: created}
	require.NoError(t, db.CreateRequest(context.Background(), request))
	return request.ID
}

func TestCreateAndGetRequest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requesterID := seedUser(t, db, "Requester", "requester@example.com")
	requestID := seedRequest(t, db, requesterID, "Need a drill", time.Now())

	got, err := db.GetRequest(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, "Need a drill", got.Description)
	assert.Equal(t, requesterID, got.RequesterID)

	_, err = db.GetRequest(ctx, requestID+1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetRequestsByRequester_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requesterID := seedUser(t, db, "Requester", "requester@example.com")

	now := time.Now()
	older := seedRequest(t, db, requesterID, "Need a saw", now.Add(-time.Hour))
	newer := seedRequest(t, db, requesterID, "Need a drill", now)

	requests, err := db.GetRequestsByRequester(ctx, requesterID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, newer, requests[0].ID)
	assert.Equal(t, older, requests[1].ID)
}

func TestGetRequestsOfOthers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	mineID := seedUser(t, db, "Mine", "mine@example.com")
	otherID := seedUser(t, db, "Other", "other@example.com")

	now := time.Now()
	seedRequest(t, db, mineID, "Need a drill", now)
	theirs := seedRequest(t, db, otherID, "Need a tent", now.Add(time.Minute))

	requests, err := db.GetRequestsOfOthers(ctx, mineID, 0, 20)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, theirs, requests[0].ID)

	// The other user sees only mine.
	requests, err = db.GetRequestsOfOthers(ctx, otherID, 0, 20)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "Need a drill", requests[0].Description)
}
