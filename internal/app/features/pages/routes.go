// internal/app/features/pages/routes.go
package pages

import (
	"github.com/dalemusser/histkeep/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Register attaches the page routes to r behind the sign-in guard. The
// paths live at the router root, so this registers a guarded group rather
// than mounting a sub-router.
func Register(r chi.Router, h *Handler, paths auth.Paths) {
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn(paths))
		pr.Get("/data", h.ServeData)
		pr.Get("/add", h.ServeAdd)
		pr.Get("/search", h.ServeSearch)
		pr.Get("/secret", h.ServeSecret)
	})
}
