// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/histkeep/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler serves the landing redirect.
type Handler struct {
	Log   *zap.Logger
	Paths auth.Paths
}

func NewHandler(paths auth.Paths, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Paths: paths}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot sends signed-in users to their data page and everyone else to
// the login page.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, h.Paths.To("/data"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, h.Paths.To("/login"), http.StatusSeeOther)
}
