package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"renthub/internal/domain"
	"renthub/internal/models"

	"github.com/rs/zerolog"
)

// RequestService manages item requests: wishes that owners may answer by
// listing items.
type RequestService struct {
	requests domain.RequestRepository
	items    domain.ItemRepository
	users    domain.UserRepository
	logger   *zerolog.Logger
}

func NewRequestService(requests domain.RequestRepository, items domain.ItemRepository,
	users domain.UserRepository, logger *zerolog.Logger) *RequestService {
	return &RequestService{requests: requests, items: items, users: users, logger: logger}
}

func (s *RequestService) Create(ctx context.Context, description string, actorID int64) (*models.ItemRequestView, error) {
	if _, err := s.users.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("request description is required: %w", domain.ErrInvalidRequest)
	}

	request := &models.ItemRequest{
		Description: description,
		RequesterID: actorID,
		Created:     time.Now(),
	}
	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("requester_id", actorID).Msg("item request created")
	return &models.ItemRequestView{
		ID:          request.ID,
		Description: request.Description,
		Created:     request.Created,
		Items:       []models.ItemView{},
	}, nil
}

// GetOwn lists the actor's requests, newest first, with answering items.
func (s *RequestService) GetOwn(ctx context.Context, actorID int64) ([]*models.ItemRequestView, error) {
	if _, err := s.users.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	requests, err := s.requests.GetRequestsByRequester(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// GetOthers pages through requests posted by other users.
func (s *RequestService) GetOthers(ctx context.Context, actorID int64, from, size int) ([]*models.ItemRequestView, error) {
	if _, err := s.users.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	requests, err := s.requests.GetRequestsOfOthers(ctx, actorID, from, size)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *RequestService) GetByID(ctx context.Context, requestID, actorID int64) (*models.ItemRequestView, error) {
	if _, err := s.users.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	request, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	views, err := s.attachItems(ctx, []*models.ItemRequest{request})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// attachItems resolves the answering items for a set of requests with one
// batched query.
func (s *RequestService) attachItems(ctx context.Context, requests []*models.ItemRequest) ([]*models.ItemRequestView, error) {
	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}

	items, err := s.items.GetItemsByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}
	itemsByRequest := make(map[int64][]models.ItemView, len(ids))
	for _, item := range items {
		itemsByRequest[item.RequestID] = append(itemsByRequest[item.RequestID], *itemView(item))
	}

	views := make([]*models.ItemRequestView, 0, len(requests))
	for _, r := range requests {
		view := &models.ItemRequestView{
			ID:          r.ID,
			Description: r.Description,
			Created:     r.Created,
			Items:       []models.ItemView{},
		}
		if its := itemsByRequest[r.ID]; its != nil {
			view.Items = its
		}
		views = append(views, view)
	}
	return views, nil
}
