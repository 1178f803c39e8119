// internal/app/features/adminusers/routes.go
package adminusers

import "github.com/go-chi/chi/v5"

// Register attaches the admin routes to r. The caller is expected to have
// already applied the sign-in and admin guards.
func Register(r chi.Router, h *Handler) {
	r.Get("/users", h.ServeUsersPage)
	r.Route("/api/users", func(ar chi.Router) {
		ar.Get("/", h.ServeList)
		ar.Post("/", h.ServeAdd)
		ar.Delete("/{email}", h.ServeDelete)
	})
}
