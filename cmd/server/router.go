package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/wordflip/internal/api"
	apiMiddleware "github.com/phrazzld/wordflip/internal/api/middleware"
)

// requestTimeout leaves room for a full run of analysis retries.
const requestTimeout = 60 * time.Second

// setupRouter registers every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	sessionHandler := api.NewSessionHandler(app.studyService, app.tokens, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokens)

	r.Route("/api", func(r chi.Router) {
		r.Get("/languages", api.ListLanguages)
		r.Post("/sessions", sessionHandler.CreateSession)

		r.Route("/session", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/", sessionHandler.GetSession)
			r.Put("/language", sessionHandler.SwitchLanguage)
			r.Put("/deck", sessionHandler.UploadDeck)
			r.Delete("/deck", sessionHandler.ClearDeck)
			r.Put("/units", sessionHandler.SelectUnits)
			r.Put("/mode", sessionHandler.SetMode)
			r.Post("/flip", sessionHandler.Flip)
			r.Post("/advance", sessionHandler.Advance)
			r.Post("/quiz/answer", sessionHandler.Answer)
			r.Post("/quiz/next", sessionHandler.NextQuestion)
			r.Post("/analysis", sessionHandler.Analyze)
			r.Get("/audio", sessionHandler.Audio)
		})
	})

	r.Get("/health", api.Health)

	return r
}
