package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/swaggest/swgui/v5emb"

	"github.com/makeadle/dle-service/internal/http/handlers"
	"github.com/makeadle/dle-service/internal/http/middleware"
	"github.com/makeadle/dle-service/internal/metrics"
)

// NewRouter registers HTTP routes on a chi router.
func NewRouter(h *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger, recorder))
	r.Use(chimw.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("DLE API", "/openapi.json", "/docs"))

	r.Get("/topics/{slug}", h.TopicCatalog)
	r.Get("/g/{slug}/share.png", h.ShareQR)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", h.ListSessions)
		r.Post("/", h.OpenSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.CloseSession)
			r.Post("/guesses", h.SubmitGuess)
			r.Put("/mode", h.SwitchMode)
			r.Post("/reload", h.Reload)
		})
	})
	return r
}
