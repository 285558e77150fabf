package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"renthub/internal/config"
	"renthub/internal/domain"
	"renthub/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-Id"

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// requestIDMiddleware tags every request with an id, keeping a caller-supplied
// one when present.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(requestIDHeader, requestID)
		}
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		endpoint := r.Method + " " + normalizePath(r.URL.Path)
		metrics.IncHTTP(endpoint, strconv.Itoa(recorder.status))

		logger.Info().
			Str("request_id", r.Header.Get(requestIDHeader)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// normalizePath collapses numeric path segments so metric labels stay bounded.
func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if _, err := strconv.ParseInt(segment, 10, 64); err == nil {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

// rateLimiter combines a process-wide token bucket with per-actor fixed
// windows backed by the configured store.
type rateLimiter struct {
	global *rate.Limiter
	store  domain.RateLimitStore
	cfg    config.RateLimitConfig
	logger *zerolog.Logger
}

func newRateLimiter(cfg config.RateLimitConfig, store domain.RateLimitStore, logger *zerolog.Logger) *rateLimiter {
	var global *rate.Limiter
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		global = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}
	return &rateLimiter{global: global, store: store, cfg: cfg, logger: logger}
}

func (l *rateLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.global != nil && !l.global.Allow() {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		if l.store != nil {
			key := r.Header.Get(actorHeader)
			if key == "" {
				key = r.RemoteAddr
			}
			window := time.Duration(l.cfg.ActorWindow) * time.Second
			allowed, err := l.store.Allow(r.Context(), key, l.cfg.ActorRequests, window)
			if err != nil {
				// Limits are best effort; an unavailable store never blocks traffic.
				l.logger.Error().Err(err).Msg("rate limit check failed")
			} else if !allowed {
				writeError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
