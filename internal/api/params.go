package api

import (
	"fmt"
	"net/http"
	"strconv"

	"renthub/internal/domain"
)

// actorHeader names the user acting in a request. The gateway in front of the
// service authenticates callers and forwards their id in this header.
const actorHeader = "X-User-Id"

func actorID(r *http.Request) (int64, error) {
	raw := r.Header.Get(actorHeader)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s header is required", domain.ErrInvalidRequest, actorHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid %s header", domain.ErrInvalidRequest, actorHeader)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrInvalidRequest, name)
	}
	return id, nil
}

// pagination reads the from/size query parameters. from counts records, not
// pages, so from=5&size=5 returns records six through ten.
func (s *HTTPServer) pagination(r *http.Request) (int, int, error) {
	from := 0
	size := s.cfg.Pagination.DefaultSize

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return 0, 0, fmt.Errorf("%w: from must be a non-negative integer", domain.ErrInvalidRequest)
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, fmt.Errorf("%w: size must be a positive integer", domain.ErrInvalidRequest)
		}
		size = parsed
	}
	if size > s.cfg.Pagination.MaxSize {
		size = s.cfg.Pagination.MaxSize
	}

	return from, size, nil
}
