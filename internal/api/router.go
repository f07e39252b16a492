package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/api/middleware"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/service"
)

// NewRouter builds the API router: trace middleware, CORS for the static
// frontend, the session/pack/history/settings endpoints, and a health
// check.
func NewRouter(svc *service.QuizService, log *slog.Logger, allowedOrigins []string) http.Handler {
	sessions := NewSessionHandler(svc, log)
	packs := NewPackHandler(svc, log)
	history := NewHistoryHandler(svc, log)
	settings := NewSettingsHandler(svc, log)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Trace)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessions.GetSession)
			r.Post("/answer", sessions.SubmitAnswer)
			r.Post("/reveal", sessions.Reveal)
			r.Post("/next", sessions.Advance)
			r.Post("/reshuffle", sessions.Reshuffle)
			r.Post("/reset", sessions.Reset)
			r.Put("/filters", sessions.SetFilters)
			r.Post("/bookmark", sessions.ToggleBookmark)
		})

		r.Route("/packs", func(r chi.Router) {
			r.Get("/", packs.ListPacks)
			r.Put("/", packs.SelectPacks)
			r.Post("/refresh", packs.RefreshPacks)
		})

		r.Get("/bank", packs.ListBank)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", history.ListHistory)
			r.Delete("/", history.ClearHistory)
			r.Get("/export", history.ExportHistory)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", history.ListBookmarks)
			r.Delete("/", history.ClearBookmarks)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settings.GetSettings)
			r.Put("/", settings.UpdateSettings)
		})
	})

	return r
}
