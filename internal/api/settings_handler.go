package api

import (
	"log/slog"
	"net/http"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/api/shared"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/domain"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/service"
)

// SettingsHandler serves the settings endpoints.
type SettingsHandler struct {
	svc    *service.QuizService
	logger *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc *service.QuizService, log *slog.Logger) *SettingsHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("svc cannot be nil for SettingsHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SettingsHandler{
		svc:    svc,
		logger: log.With(slog.String("component", "settings_handler")),
	}
}

// GetSettings handles GET /api/settings.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.svc.Settings(r.Context()))
}

// UpdateSettings handles PUT /api/settings.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := shared.DecodeJSON(r, &settings); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.UpdateSettings(r.Context(), settings); err != nil {
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}
