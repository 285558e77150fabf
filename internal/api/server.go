package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"renthub/internal/config"
	"renthub/internal/domain"
	"renthub/internal/service"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the rental services over HTTP/JSON. All business rules
// live in the services; handlers only parse, dispatch and map errors.
type HTTPServer struct {
	cfg      *config.Config
	bookings *service.BookingService
	items    *service.ItemService
	users    *service.UserService
	requests *service.RequestService
	logger   *zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(cfg *config.Config, bookings *service.BookingService, items *service.ItemService,
	users *service.UserService, requests *service.RequestService,
	limitStore domain.RateLimitStore, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		bookings: bookings,
		items:    items,
		users:    users,
		requests: requests,
		logger:   logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /bookings", srv.handleCreateBooking)
	mux.HandleFunc("GET /bookings", srv.handleListBookerBookings)
	mux.HandleFunc("GET /bookings/owner", srv.handleListOwnerBookings)
	mux.HandleFunc("GET /bookings/owner/export", srv.handleExportOwnerBookings)
	mux.HandleFunc("GET /bookings/{bookingID}", srv.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{bookingID}", srv.handleApproveBooking)

	mux.HandleFunc("POST /items", srv.handleAddItem)
	mux.HandleFunc("GET /items", srv.handleListOwnerItems)
	mux.HandleFunc("GET /items/search", srv.handleSearchItems)
	mux.HandleFunc("GET /items/{itemID}", srv.handleGetItem)
	mux.HandleFunc("PATCH /items/{itemID}", srv.handleUpdateItem)
	mux.HandleFunc("DELETE /items/{itemID}", srv.handleDeleteItem)
	mux.HandleFunc("POST /items/{itemID}/comment", srv.handleCreateComment)

	mux.HandleFunc("POST /users", srv.handleCreateUser)
	mux.HandleFunc("GET /users", srv.handleListUsers)
	mux.HandleFunc("GET /users/{userID}", srv.handleGetUser)
	mux.HandleFunc("PATCH /users/{userID}", srv.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{userID}", srv.handleDeleteUser)

	mux.HandleFunc("POST /requests", srv.handleCreateRequest)
	mux.HandleFunc("GET /requests", srv.handleListOwnRequests)
	mux.HandleFunc("GET /requests/all", srv.handleListOtherRequests)
	mux.HandleFunc("GET /requests/{requestID}", srv.handleGetRequest)

	handler := requestIDMiddleware(
		loggingMiddleware(logger,
			newRateLimiter(cfg.RateLimit, limitStore, logger).Wrap(mux)))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the configured handler chain, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps the business error kinds onto HTTP statuses.
// Unclassified errors surface as 500 without leaking store internals.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
