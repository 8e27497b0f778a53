package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/makeadle/dle-service/internal/app/play"
	"github.com/makeadle/dle-service/internal/game"
	"github.com/makeadle/dle-service/internal/http/requestutil"
	"github.com/makeadle/dle-service/internal/logging"
	"github.com/makeadle/dle-service/internal/providers"
)

const maxBodyBytes = 1 << 16

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeErrorKind(w, r, status, message, "", logger)
}

func writeErrorKind(w http.ResponseWriter, r *http.Request, status int, message, kind string, logger *slog.Logger) {
	reqID := requestutil.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	writeJSON(w, status, ErrorResponse{Error: message, Kind: kind, RequestID: reqID}, logger)
}

// writeServiceError maps domain and scorer errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := statusFor(err)
	kind := ""
	if status == http.StatusBadGateway || status == http.StatusServiceUnavailable {
		kind = providers.Kind(err)
		logging.Warn(loggerFromContext(r, logger), "scorer request failed",
			logging.FieldErrorKind, kind,
			"error", err,
		)
	}
	writeErrorKind(w, r, status, err.Error(), kind, logger)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, play.ErrSessionNotFound), errors.Is(err, providers.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrUnknownMode):
		return http.StatusNotFound
	case errors.Is(err, game.ErrUnknownCandidate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameWon), errors.Is(err, game.ErrNotReady), errors.Is(err, game.ErrStale):
		return http.StatusConflict
	case errors.Is(err, providers.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func decodeJSON(r *http.Request, dest any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
