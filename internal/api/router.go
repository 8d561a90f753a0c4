package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/skald/internal/auth"
	"github.com/halvard/skald/internal/blogservice"
)

// NewRouter creates a chi router with all API routes mounted. Admin
// routes are wrapped in RequireAuth so no gated handler runs without a
// validated token. sseHandler, if non-nil, is mounted at GET /events
// inside the admin group.
func NewRouter(svc *blogservice.Service, authSvc *auth.Service, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, authSvc)

	r := chi.NewRouter()

	// Public routes.
	r.Post("/login", h.Login)
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{slug}", h.GetPost)
	r.Get("/tags", h.ListTags)

	// Admin routes.
	r.Route("/admin", func(r chi.Router) {
		r.Use(RequireAuth(authSvc))

		r.Get("/posts", h.AdminListPosts)
		r.Post("/posts", h.CreatePost)
		r.Put("/posts/{id}", h.UpdatePost)
		r.Delete("/posts/{id}", h.DeletePost)

		r.Post("/upload-image", h.UploadImage)
		r.Post("/save-image-url", h.SaveImageURL)

		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}
