package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/intuition/internal/errors"
	"github.com/vytor/intuition/internal/logger"
	"github.com/vytor/intuition/internal/models"
)

const profileHeader = "X-Profile-ID"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type contextKey string

const profileContextKey contextKey = "profile"

func profileFromContext(ctx context.Context) *models.Profile {
	if v := ctx.Value(profileContextKey); v != nil {
		if p, ok := v.(*models.Profile); ok {
			return p
		}
	}
	return nil
}

// profileMiddleware resolves the X-Profile-ID header into a stored profile.
func (s *Server) profileMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		raw := strings.TrimSpace(r.Header.Get(profileHeader))
		if raw == "" {
			log.Debug("missing %s header", profileHeader)
			handleError(w, r, errors.NewBadRequestError("missing "+profileHeader+" header"))
			return
		}

		profileID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || profileID <= 0 {
			handleError(w, r, errors.NewValidationError(profileHeader, "must be a positive integer"))
			return
		}

		profile, err := s.ProfileService.GetProfile(r.Context(), profileID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), profileContextKey, profile)
		ctx = logger.NewContext(ctx, log.WithField("profile_id", profile.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs HTTP requests with timing, status codes, and request IDs.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		log := logger.Default().WithFields(map[string]any{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		if r.RemoteAddr != "" {
			log = log.WithField("remote_addr", r.RemoteAddr)
		}

		ctx := logger.NewContext(r.Context(), log)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		log.Debug("request started")
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log = log.WithFields(map[string]any{
			"status":      wrapped.status,
			"size":        wrapped.size,
			"duration_ms": duration.Milliseconds(),
		})

		if wrapped.status >= 500 {
			log.Error("request completed with server error")
		} else if wrapped.status >= 400 {
			log.Warn("request completed with client error")
		} else {
			log.Info("request completed")
		}
	})
}

// recoveryMiddleware recovers from panics and logs them.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log := logger.FromContext(r.Context())
				log.Error("panic recovered: %v", rec)
				handleError(w, r, errors.NewInternalError(fmt.Errorf("panic: %v", rec)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// timeoutMiddleware wraps a handler with a timeout. Timed out requests get
// the same JSON error body as every other failure.
func timeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	appErr := errors.NewTimeoutError()
	body, _ := json.Marshal(errorBody{Error: errorDetail{Code: appErr.Code, Message: appErr.Message}})

	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, timeout, string(body))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			th.ServeHTTP(&timeoutResponseWriter{ResponseWriter: w}, r)
		})
	}
}

// timeoutResponseWriter labels the body http.TimeoutHandler writes on
// expiry, which carries no headers of its own.
type timeoutResponseWriter struct {
	http.ResponseWriter
}

func (w *timeoutResponseWriter) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.ResponseWriter.WriteHeader(code)
}
