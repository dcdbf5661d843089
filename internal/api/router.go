package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "omnichat/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a chi router with all application routes.
func NewRouter(chatHandler *ChatHandler, settingsHandler *SettingsHandler, uploadHandler *UploadHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Swagger UI for the API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Quick JSON routes get a request timeout so client connections
		// can't hang indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Get("/state", chatHandler.GetState)

			r.Get("/chats", chatHandler.GetConversations)
			r.Post("/chats", chatHandler.CreateConversation)
			r.Get("/chats/{conversationID}", chatHandler.GetConversation)
			r.Post("/chats/{conversationID}/activate", chatHandler.ActivateConversation)

			r.Get("/providers", settingsHandler.GetProviders)
			r.Get("/providers/{provider}/models", settingsHandler.GetProviderModels)
			r.Get("/selection", settingsHandler.GetSelection)
			r.Put("/selection/provider", settingsHandler.SetProvider)
			r.Put("/selection/model", settingsHandler.SetModel)
			r.Post("/keys", settingsHandler.SaveKey)
		})

		// Routes that proxy to the upstream carry their own deadline inside
		// the services; the router timeout stays out of their way.
		r.Group(func(r chi.Router) {
			r.Post("/chats/messages", chatHandler.SendMessage)
			r.Post("/upload", uploadHandler.Upload)
		})
	})

	// Serves the static browser frontend. A production deployment would put
	// this behind Nginx; keeping it here simplifies local development.
	fileServer := http.FileServer(http.Dir("./frontend/dist"))
	r.Handle("/*", http.StripPrefix("/", fileServer))

	return r
}
