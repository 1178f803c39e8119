// internal/app/features/pages/handler.go
package pages

import (
	"net/http"

	"github.com/dalemusser/histkeep/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler renders the session-guarded page shells. The pages are template
// shells whose data loads through the JSON API; handlers only pass the
// signed-in identity.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type pageData struct {
	Title     string
	UserEmail string
	UserName  string
	IsAdmin   bool
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template, title string) {
	data := pageData{Title: title}
	if u, ok := auth.CurrentUser(r); ok {
		data.UserEmail = u.Email
		data.UserName = u.Name
		data.IsAdmin = u.IsAdmin
	}
	templates.Render(w, r, template, data)
}

// ServeData handles GET /data.
func (h *Handler) ServeData(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "data", "History")
}

// ServeAdd handles GET /add.
func (h *Handler) ServeAdd(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "add", "New entry")
}

// ServeSearch handles GET /search.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "search", "Search")
}

// ServeSecret handles GET /secret.
func (h *Handler) ServeSecret(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "secret", "Secret")
}
