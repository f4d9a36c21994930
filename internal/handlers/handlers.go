package handlers

import (
	"Drawer/internal/middleware"
	"Drawer/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров локального API
func NewHandler(
	store *service.ClipboardStore,
	commands *service.Commands,
	logger *zap.SugaredLogger,
	authSecret string,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(authSecret))

	clipboardHandler := NewClipboardHandler(store, commands, logger)
	tagHandler := NewTagHandler(store, commands, logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		// поток событий идёт без сжатия
		r.Get("/events", clipboardHandler.Events)

		r.Group(func(r chi.Router) {
			r.Use(middleware.WithGzip)

			// History routes
			r.Get("/clipboards", clipboardHandler.List)
			r.Post("/clipboards/{id}/restore", clipboardHandler.Restore)

			// Tag routes
			r.Get("/tags", tagHandler.List)
			r.Post("/tags", tagHandler.Create)
			r.Delete("/tags/{id}", tagHandler.Delete)
			r.Get("/tags/{id}/clipboards", tagHandler.ListClipboards)
			r.Post("/tags/{id}/clipboards", tagHandler.Pin)
			r.Delete("/tag-clipboards/{id}", tagHandler.Unpin)
		})
	})

	return &Handler{Router: r}
}
