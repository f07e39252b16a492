// Package api provides the HTTP surface of the quiz player. It is the
// presentation adapter boundary: every mutation goes through the service,
// and the response always carries the resulting observable state so the
// frontend re-renders from it.
package api

import (
	"log/slog"
	"net/http"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/api/shared"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/platform/logger"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/quiz"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/service"
)

// SessionHandler serves the quiz session endpoints.
type SessionHandler struct {
	svc    *service.QuizService
	logger *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc *service.QuizService, log *slog.Logger) *SessionHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("svc cannot be nil for SessionHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SessionHandler{
		svc:    svc,
		logger: log.With(slog.String("component", "session_handler")),
	}
}

// SubmitRequest is the body of POST /api/session/answer. Selected is a
// pointer so "no selection" is distinguishable from choice 0.
type SubmitRequest struct {
	Selected *int `json:"selected"`
}

// AnswerResponse pairs a verdict with the resulting session state.
type AnswerResponse struct {
	Verdict *quiz.Verdict       `json:"verdict"`
	Session service.SessionView `json:"session"`
}

// GetSession handles GET /api/session.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.svc.View(r.Context()))
}

// SubmitAnswer handles POST /api/session/answer.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SubmitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	// No selection maps to the evaluator's sentinel so the error surface
	// is the same whether the field is missing or negative.
	selected := -1
	if req.Selected != nil {
		selected = *req.Selected
	}

	view, verdict, err := h.svc.Submit(r.Context(), selected)
	if err != nil {
		log.Debug("submit rejected", slog.String("error", err.Error()))
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{Verdict: verdict, Session: view})
}

// Reveal handles POST /api/session/reveal.
func (h *SessionHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	verdict, err := h.svc.Reveal(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Verdict: verdict,
		Session: h.svc.View(r.Context()),
	})
}

// Advance handles POST /api/session/next.
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.svc.Advance(r.Context()))
}

// Reshuffle handles POST /api/session/reshuffle.
func (h *SessionHandler) Reshuffle(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.svc.Reshuffle(r.Context()))
}

// ConfirmRequest carries the confirmation flag for destructive actions.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// Reset handles POST /api/session/reset.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.svc.Reset(r.Context(), req.Confirm)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// SetFilters handles PUT /api/session/filters.
func (h *SessionHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var criteria quiz.Criteria
	if err := shared.DecodeJSON(r, &criteria); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.svc.SetFilters(r.Context(), criteria))
}

// ToggleBookmark handles POST /api/session/bookmark.
func (h *SessionHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	view, bookmarked, err := h.svc.ToggleBookmark(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, struct {
		Bookmarked bool                `json:"bookmarked"`
		Session    service.SessionView `json:"session"`
	}{Bookmarked: bookmarked, Session: view})
}
