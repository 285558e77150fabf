package service

import (
	"context"
	"time"

	"renthub/internal/domain"
	"renthub/internal/models"
)

// SummaryBuilder derives last/next booking references for items. It runs
// read-only queries and never mutates booking state.
type SummaryBuilder struct {
	bookings domain.BookingRepository
}

func NewSummaryBuilder(bookings domain.BookingRepository) *SummaryBuilder {
	return &SummaryBuilder{bookings: bookings}
}

// ForItem computes the booking summary of a single item relative to now.
func (s *SummaryBuilder) ForItem(ctx context.Context, itemID int64, now time.Time) (*models.ItemBookingInfo, error) {
	bookings, err := s.bookings.GetBookingsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return deriveBookingInfo(bookings, now), nil
}

// ForItems computes summaries for a set of items with a single repository
// query, grouping the bookings by item in memory.
func (s *SummaryBuilder) ForItems(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]*models.ItemBookingInfo, error) {
	bookings, err := s.bookings.GetBookingsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	byItem := make(map[int64][]*models.Booking, len(itemIDs))
	for _, b := range bookings {
		byItem[b.ItemID] = append(byItem[b.ItemID], b)
	}

	summaries := make(map[int64]*models.ItemBookingInfo, len(itemIDs))
	for _, id := range itemIDs {
		summaries[id] = deriveBookingInfo(byItem[id], now)
	}
	return summaries, nil
}

// CanComment reports whether the user has at least one approved booking of the
// item that ended strictly before now.
func (s *SummaryBuilder) CanComment(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	count, err := s.bookings.CountApprovedFinished(ctx, itemID, userID, now)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// deriveBookingInfo picks the next booking (earliest-starting approved booking
// in the future) and the last booking (latest-ending booking started in the
// past, any status).
func deriveBookingInfo(bookings []*models.Booking, now time.Time) *models.ItemBookingInfo {
	info := &models.ItemBookingInfo{}

	var next, last *models.Booking
	for _, b := range bookings {
		if b.Status == models.StatusApproved && b.Start.After(now) {
			if next == nil || b.Start.Before(next.Start) {
				next = b
			}
		}
		if b.Start.Before(now) {
			if last == nil || b.End.After(last.End) {
				last = b
			}
		}
	}

	if next != nil {
		info.Next = &models.BookingRef{ID: next.ID, BookerID: next.BookerID}
	}
	if last != nil {
		info.Last = &models.BookingRef{ID: last.ID, BookerID: last.BookerID}
	}
	return info
}
