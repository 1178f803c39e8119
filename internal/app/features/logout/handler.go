// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/histkeep/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Paths      auth.Paths
}

func NewHandler(sessionMgr *auth.SessionManager, paths auth.Paths, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Paths:      paths,
	}
}

// ServeLogout handles GET /logout. Clearing is unconditional and
// idempotent; a request with no session still redirects cleanly.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	http.Redirect(w, r, h.Paths.To("/login"), http.StatusSeeOther)
}
