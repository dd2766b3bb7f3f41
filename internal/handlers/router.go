package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"jalali-planner/internal/middleware"
)

// NewRouter assembles the full route tree. Everything except register/login
// sits behind the auth guard.
func NewRouter(taskHandler *TaskHandler, authHandler *AuthHandler, calendarHandler *CalendarHandler, verifier middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(verifier))

			r.Get("/user", authHandler.CurrentUser)
			r.Post("/user/telegram", authHandler.LinkTelegram)

			r.Get("/calendar", calendarHandler.Month)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.All)
				r.Get("/by-date", taskHandler.ByDate)
				r.Post("/", taskHandler.Create)
				r.Put("/{id}", taskHandler.Update)
				r.Delete("/{id}", taskHandler.Delete)
			})
		})
	})

	return r
}
