// internal/app/features/historyapi/routes.go
package historyapi

import "github.com/go-chi/chi/v5"

// Register attaches the record API to r. The caller applies the sign-in
// guard.
func Register(r chi.Router, h *Handler) {
	r.Route("/api/history", func(hr chi.Router) {
		hr.Get("/", h.ServeList)
		hr.Post("/", h.ServeCreate)
		hr.Put("/{id}", h.ServeUpdate)
		hr.Delete("/{id}", h.ServeDelete)
	})
	r.Get("/api/search", h.ServeSearch)
}
