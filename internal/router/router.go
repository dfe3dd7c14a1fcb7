package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"quizlyst-backend/internal/handlers"
	"quizlyst-backend/internal/middleware"
)

func New(
	sessionAuth *middleware.SessionAuth,
	aiLimiter *middleware.RateLimiter,
	contentHandler *handlers.ContentHandler,
	quizHandler *handlers.QuizHandler,
	healthHandler http.HandlerFunc,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	r.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", healthHandler)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.Middleware)

			r.Route("/content", func(r chi.Router) {
				r.Use(aiLimiter.Middleware)
				r.Post("/process", contentHandler.Process)
				r.Post("/upload", contentHandler.Upload)
				r.Post("/regenerate-notes", contentHandler.RegenerateNotes)
			})

			r.Route("/quiz", func(r chi.Router) {
				r.Use(aiLimiter.Middleware)
				r.Post("/generate", quizHandler.Generate)
				r.Post("/change-difficulty", quizHandler.ChangeDifficulty)
				r.Post("/submit", quizHandler.Submit)
			})
		})
	})

	return r
}
