package service

import (
	"context"
	"fmt"
	"time"

	"renthub/internal/domain"
	"renthub/internal/events"
	"renthub/internal/models"

	"github.com/rs/zerolog"
)

// BookingRequest carries the caller-supplied fields of a new booking.
type BookingRequest struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	ItemID int64     `json:"item_id"`
}

// BookingService owns the booking lifecycle: creation, the WAITING ->
// APPROVED/REJECTED transition and the actor-scoped listings.
type BookingService struct {
	bookings domain.BookingRepository
	users    domain.UserRepository
	items    domain.ItemRepository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(bookings domain.BookingRepository, users domain.UserRepository,
	items domain.ItemRepository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		users:    users,
		items:    items,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create validates a booking request and persists it in the WAITING state.
// Overlapping bookings for the same item are allowed; the owner arbitrates
// via Approve.
func (s *BookingService) Create(ctx context.Context, req BookingRequest, actorID int64) (*models.BookingView, error) {
	if _, err := s.users.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	item, err := s.items.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if !req.End.After(req.Start) {
		return nil, fmt.Errorf("booking end must be after start: %w", domain.ErrInvalidRequest)
	}

	if !item.Available {
		return nil, fmt.Errorf("item %d is not available for booking: %w", item.ID, domain.ErrInvalidRequest)
	}

	// The item is hidden from its owner rather than forbidden.
	if item.OwnerID == actorID {
		return nil, fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
	}

	booking := &models.Booking{
		Start:    req.Start,
		End:      req.End,
		Status:   models.StatusWaiting,
		BookerID: actorID,
		ItemID:   item.ID,
		ItemName: item.Name,
	}

	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, booking, actorID)
	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", item.ID).
		Int64("booker_id", actorID).Msg("booking created")

	return booking.ToView(), nil
}

// GetByID returns a booking visible to the actor: its booker or the owner of
// the booked item.
func (s *BookingService) GetByID(ctx context.Context, bookingID, actorID int64) (*models.BookingView, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	item, err := s.items.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	if booking.BookerID != actorID && item.OwnerID != actorID {
		return nil, fmt.Errorf("booking %d for user %d: %w", bookingID, actorID, domain.ErrNotFound)
	}

	return booking.ToView(), nil
}

// Approve resolves a WAITING booking to APPROVED or REJECTED. Only the item
// owner may call it, and only once per booking; the transition is applied as a
// compare-and-swap on the booking version.
func (s *BookingService) Approve(ctx context.Context, bookingID int64, approved bool, actorID int64) (*models.BookingView, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	item, err := s.items.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != actorID {
		return nil, fmt.Errorf("approval of booking %d is reserved to the item owner: %w",
			bookingID, domain.ErrNotFound)
	}

	if booking.Status != models.StatusWaiting {
		return nil, fmt.Errorf("booking %d is not waiting for approval: %w", bookingID, domain.ErrInvalidRequest)
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.bookings.UpdateBookingStatusWithVersion(ctx, booking.ID, booking.Version, status); err != nil {
		return nil, err
	}
	booking.Status = status
	booking.Version++

	s.publishEvent(eventType, booking, actorID)
	s.logger.Info().Int64("booking_id", booking.ID).Str("status", status).Msg("booking resolved")

	return booking.ToView(), nil
}

// ListForBooker returns the actor's own bookings matching the state filter,
// ordered by start descending.
func (s *BookingService) ListForBooker(ctx context.Context, filter models.StateFilter,
	actorID int64, from, size int) ([]*models.BookingView, error) {
	if _, err := s.users.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.GetBookingsByBooker(ctx, actorID, filter, time.Now(), from, size)
	if err != nil {
		return nil, err
	}
	return toViews(bookings), nil
}

// ListForOwner returns bookings of the actor's items matching the state
// filter, ordered by start descending.
func (s *BookingService) ListForOwner(ctx context.Context, filter models.StateFilter,
	actorID int64, from, size int) ([]*models.BookingView, error) {
	if _, err := s.users.GetUser(ctx, actorID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.GetBookingsByOwner(ctx, actorID, filter, time.Now(), from, size)
	if err != nil {
		return nil, err
	}
	return toViews(bookings), nil
}

func toViews(bookings []*models.Booking) []*models.BookingView {
	views := make([]*models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, b.ToView())
	}
	return views
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, actorID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		BookerID:  booking.BookerID,
		ItemID:    booking.ItemID,
		ItemName:  booking.ItemName,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
		ActorID:   actorID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).
			Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
