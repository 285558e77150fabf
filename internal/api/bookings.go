package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"renthub/internal/domain"
	"renthub/internal/export"
	"renthub/internal/models"
	"renthub/internal/service"
)

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var req service.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := s.bookings.Create(r.Context(), req, actor)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	view, err := s.bookings.GetByID(r.Context(), bookingID, actor)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	view, err := s.bookings.Approve(r.Context(), bookingID, approved, actor)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type bookingLister func(ctx context.Context, filter models.StateFilter,
	actorID int64, from, size int) ([]*models.BookingView, error)

func (s *HTTPServer) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListForBooker)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListForOwner)
}

func (s *HTTPServer) listBookings(w http.ResponseWriter, r *http.Request, list bookingLister) {
	views, err := s.queryBookings(r, list)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// handleExportOwnerBookings streams the owner's filtered bookings as an xlsx
// workbook instead of JSON.
func (s *HTTPServer) handleExportOwnerBookings(w http.ResponseWriter, r *http.Request) {
	views, err := s.queryBookings(r, s.bookings.ListForOwner)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	workbook, err := export.BookingsWorkbook(views)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := workbook.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("failed to stream bookings workbook")
	}
}

func (s *HTTPServer) queryBookings(r *http.Request, list bookingLister) ([]*models.BookingView, error) {
	actor, err := actorID(r)
	if err != nil {
		return nil, err
	}

	filter, err := models.ParseStateFilter(r.URL.Query().Get("state"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRequest, err)
	}

	from, size, err := s.pagination(r)
	if err != nil {
		return nil, err
	}

	return list(r.Context(), filter, actor, from, size)
}
