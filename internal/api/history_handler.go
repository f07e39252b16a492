package api

import (
	"log/slog"
	"net/http"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/api/shared"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/platform/logger"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/service"
)

// HistoryHandler serves the answer history and bookmark record endpoints.
type HistoryHandler struct {
	svc    *service.QuizService
	logger *slog.Logger
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(svc *service.QuizService, log *slog.Logger) *HistoryHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("svc cannot be nil for HistoryHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &HistoryHandler{
		svc:    svc,
		logger: log.With(slog.String("component", "history_handler")),
	}
}

// ListHistory handles GET /api/history, returning records in append
// order; the frontend reverses for newest-first display.
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.svc.History(r.Context()))
}

// ClearHistory handles DELETE /api/history.
func (h *HistoryHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.ClearHistory(r.Context(), req.Confirm); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportHistory handles GET /api/history/export, streaming the history
// as a CSV attachment.
func (h *HistoryHandler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="quiz_history.csv"`)

	if err := h.svc.ExportHistoryCSV(r.Context(), w); err != nil {
		// Headers are already out; all that is left is to log.
		log.Error("history export failed", slog.String("error", err.Error()))
	}
}

// ListBookmarks handles GET /api/bookmarks.
func (h *HistoryHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.svc.Bookmarks(r.Context()))
}

// ClearBookmarks handles DELETE /api/bookmarks.
func (h *HistoryHandler) ClearBookmarks(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.svc.ClearBookmarks(r.Context(), req.Confirm)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}
