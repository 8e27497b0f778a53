package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
	"github.com/makeadle/dle-service/internal/game"
	"github.com/makeadle/dle-service/internal/logging"
	"github.com/makeadle/dle-service/internal/store"
)

// CatalogResponse describes a playable topic.
type CatalogResponse struct {
	Topic   catalog.Topic    `json:"topic"`
	Modes   []catalog.Mode   `json:"modes"`
	Answers []catalog.Answer `json:"answers"`
}

// OpenSessionRequest opens a session on a topic's mode.
type OpenSessionRequest struct {
	Topic string `json:"topic" required:"true"`
	// Mode is a path segment such as "audio"; empty picks the first mode.
	Mode string `json:"mode,omitempty"`
}

// SessionResponse is a hosted session and its current view.
type SessionResponse struct {
	ID       string        `json:"id"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// GuessRequest submits one answer.
type GuessRequest struct {
	AnswerID int64 `json:"answerId" required:"true"`
}

// GuessResponse reports what happened to a guess.
type GuessResponse struct {
	Result   game.Result        `json:"result"`
	Attempt  *dailygame.Attempt `json:"attempt,omitempty"`
	Error    string             `json:"error,omitempty"`
	Snapshot game.Snapshot      `json:"snapshot"`
}

// SwitchModeRequest moves a session to another mode of its topic.
type SwitchModeRequest struct {
	Mode string `json:"mode" required:"true"`
}

// TopicCatalog returns a topic with its modes and answers.
func (h *Handler) TopicCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := h.svc.Catalog(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, CatalogResponse{Topic: cat.Topic, Modes: cat.Modes, Answers: cat.Answers}, h.logger)
}

// OpenSession starts a hosted session. A session whose first load failed is
// still created; its snapshot is in the error state and can be reloaded.
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, r, http.StatusBadRequest, "topic is required", h.logger)
		return
	}

	entry, err := h.svc.Open(r.Context(), req.Topic, req.Mode)
	if entry.ID == "" {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "session opened without a daily game",
			logging.FieldSessionID, entry.ID,
			"error", err,
		)
	}
	w.Header().Set("Location", "/sessions/"+entry.ID)
	writeJSON(w, http.StatusCreated, sessionResponse(entry), h.logger)
}

// ListSessions returns every hosted session.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.Sessions()
	out := make([]SessionResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, sessionResponse(e))
	}
	writeJSON(w, http.StatusOK, out, h.logger)
}

// GetSession returns a session's current view.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(entry), h.logger)
}

// CloseSession stops hosting a session.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Close(chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitGuess forwards a guess to the session.
func (h *Handler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.session(w, r)
	if !ok {
		return
	}
	var req GuessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	out, err := entry.Session.SubmitGuess(r.Context(), req.AnswerID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	resp := GuessResponse{Result: out.Result, Attempt: out.Attempt, Snapshot: entry.Session.Snapshot()}
	status := http.StatusOK
	if out.Err != nil {
		resp.Error = out.Err.Error()
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp, h.logger)
}

// SwitchMode moves the session to the mode with the given path segment.
func (h *Handler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SwitchModeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	mode, found := catalog.ModeByPath(entry.Session.Snapshot().Modes, req.Mode)
	if !found || strings.TrimSpace(req.Mode) == "" {
		writeError(w, r, http.StatusNotFound, "unknown mode "+req.Mode, h.logger)
		return
	}

	if err := entry.Session.SwitchMode(r.Context(), mode.ID); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(entry), h.logger)
}

// Reload retries loading the session's current mode.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := entry.Session.Reload(r.Context()); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(entry), h.logger)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (store.Entry, bool) {
	entry, err := h.svc.Session(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return store.Entry{}, false
	}
	return entry, true
}

func sessionResponse(e store.Entry) SessionResponse {
	return SessionResponse{ID: e.ID, Snapshot: e.Session.Snapshot()}
}
