package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"renthub/internal/domain"
	"renthub/internal/events"
	"renthub/internal/models"

	"github.com/rs/zerolog"
)

// ItemService manages the item catalog and its derived views. Booking
// summaries are attached to item views only for the owner.
type ItemService struct {
	items     domain.ItemRepository
	users     domain.UserRepository
	comments  domain.CommentRepository
	requests  domain.RequestRepository
	summaries *SummaryBuilder
	eventBus  domain.EventPublisher
	logger    *zerolog.Logger
}

func NewItemService(items domain.ItemRepository, users domain.UserRepository,
	comments domain.CommentRepository, requests domain.RequestRepository,
	summaries *SummaryBuilder, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		items:     items,
		users:     users,
		comments:  comments,
		requests:  requests,
		summaries: summaries,
		eventBus:  eventBus,
		logger:    logger,
	}
}

func (s *ItemService) AddItem(ctx context.Context, item *models.Item, actorID int64) (*models.ItemView, error) {
	if _, err := s.users.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(item.Name) == "" {
		return nil, fmt.Errorf("item name is required: %w", domain.ErrInvalidRequest)
	}

	if item.RequestID != 0 {
		if _, err := s.requests.GetRequest(ctx, item.RequestID); err != nil {
			return nil, err
		}
	}

	item.OwnerID = actorID
	if err := s.items.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", actorID).Msg("item created")
	return itemView(item), nil
}

// UpdateItem applies a partial edit. Only the owner may edit an item; anyone
// else sees it as missing.
func (s *ItemService) UpdateItem(ctx context.Context, itemID, actorID int64, upd models.ItemUpdate) (*models.ItemView, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != actorID {
		return nil, fmt.Errorf("item %d for user %d: %w", itemID, actorID, domain.ErrNotFound)
	}

	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Available != nil {
		item.Available = *upd.Available
	}

	if err := s.items.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return itemView(item), nil
}

// GetItem returns the item view. Comments are always attached; last/next
// booking summaries only when the caller owns the item.
func (s *ItemService) GetItem(ctx context.Context, itemID, actorID int64) (*models.ItemView, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	view := itemView(item)

	if item.OwnerID == actorID {
		info, err := s.summaries.ForItem(ctx, itemID, time.Now())
		if err != nil {
			return nil, err
		}
		view.LastBooking = info.Last
		view.NextBooking = info.Next
	}

	comments, err := s.comments.GetCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		view.Comments = append(view.Comments, *c.ToView())
	}

	return view, nil
}

// GetItemsByOwner lists the actor's items with booking summaries and comments
// attached, fetching bookings and comments for the whole page in single
// batches.
func (s *ItemService) GetItemsByOwner(ctx context.Context, actorID int64, from, size int) ([]*models.ItemView, error) {
	if _, err := s.users.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	items, err := s.items.GetItemsByOwner(ctx, actorID, from, size)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	summaries, err := s.summaries.ForItems(ctx, itemIDs, time.Now())
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.GetCommentsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]models.CommentView, len(itemIDs))
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], *c.ToView())
	}

	views := make([]*models.ItemView, 0, len(items))
	for _, item := range items {
		view := itemView(item)
		if info := summaries[item.ID]; info != nil {
			view.LastBooking = info.Last
			view.NextBooking = info.Next
		}
		if cs := commentsByItem[item.ID]; cs != nil {
			view.Comments = cs
		}
		views = append(views, view)
	}
	return views, nil
}

// Search returns available items matching the text. Blank input yields an
// empty result rather than everything.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]*models.ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.ItemView{}, nil
	}

	items, err := s.items.SearchItems(ctx, text, from, size)
	if err != nil {
		return nil, err
	}

	views := make([]*models.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, itemView(item))
	}
	return views, nil
}

func (s *ItemService) Delete(ctx context.Context, itemID int64) error {
	return s.items.DeleteItem(ctx, itemID)
}

// CreateComment stores a comment on an item. The author must have completed
// an approved rental of the item before now.
func (s *ItemService) CreateComment(ctx context.Context, text string, itemID, actorID int64) (*models.CommentView, error) {
	user, err := s.users.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ok, err := s.summaries.CanComment(ctx, item.ID, actorID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("commenting item %d requires a finished rental: %w", itemID, domain.ErrInvalidRequest)
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     item.ID,
		AuthorID:   actorID,
		AuthorName: user.Name,
		Created:    now,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		payload := events.CommentEventPayload{CommentID: comment.ID, ItemID: item.ID, AuthorID: actorID}
		if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}

	return comment.ToView(), nil
}

func itemView(item *models.Item) *models.ItemView {
	return &models.ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
		Comments:    []models.CommentView{},
	}
}
