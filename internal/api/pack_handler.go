package api

import (
	"log/slog"
	"net/http"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/api/shared"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/service"
)

// PackHandler serves the pack registry and bank listing endpoints.
type PackHandler struct {
	svc    *service.QuizService
	logger *slog.Logger
}

// NewPackHandler creates a PackHandler.
func NewPackHandler(svc *service.QuizService, log *slog.Logger) *PackHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("svc cannot be nil for PackHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PackHandler{
		svc:    svc,
		logger: log.With(slog.String("component", "pack_handler")),
	}
}

// ListPacks handles GET /api/packs.
func (h *PackHandler) ListPacks(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.svc.PackViews(r.Context()))
}

// SelectPacksRequest is the body of PUT /api/packs.
type SelectPacksRequest struct {
	IDs []string `json:"ids"`
}

// SelectPacks handles PUT /api/packs: activates a pack selection and
// rebuilds the working bank.
func (h *PackHandler) SelectPacks(w http.ResponseWriter, r *http.Request) {
	var req SelectPacksRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.svc.SelectPacks(r.Context(), req.IDs)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// RefreshPacks handles POST /api/packs/refresh: re-fetches the active
// packs from their sources, bypassing caches, to pick up edited banks.
func (h *PackHandler) RefreshPacks(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.RefreshPacks(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// ListBank handles GET /api/bank, the full-bank study listing. The
// bookmarked=1 query restricts it to bookmarked questions.
func (h *PackHandler) ListBank(w http.ResponseWriter, r *http.Request) {
	bookmarkedOnly := r.URL.Query().Get("bookmarked") == "1"
	shared.RespondWithJSON(w, r, http.StatusOK, h.svc.BankEntries(r.Context(), bookmarkedOnly))
}
