// internal/app/features/adminusers/handler.go
package adminusers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/histkeep/internal/app/system/apiutil"
	"github.com/dalemusser/histkeep/internal/app/system/auth"
	"github.com/dalemusser/histkeep/internal/app/system/timeouts"
	"github.com/dalemusser/histkeep/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Directory is the allow-list store the handler manages.
type Directory interface {
	List(ctx context.Context) ([]models.User, error)
	Add(ctx context.Context, email, addedBy string) (models.User, error)
	Delete(ctx context.Context, email string) error
}

// Handler serves the admin allow-list page and its JSON API.
type Handler struct {
	users      Directory
	adminEmail string
	log        *zap.Logger
}

func NewHandler(users Directory, adminEmail string, logger *zap.Logger) *Handler {
	return &Handler{
		users:      users,
		adminEmail: adminEmail,
		log:        logger,
	}
}

// ServeUsersPage renders the allow-list management page.
func (h *Handler) ServeUsersPage(w http.ResponseWriter, r *http.Request) {
	u := auth.RequestUser(r)
	data := map[string]any{
		"Title":     "Allowed Users",
		"UserEmail": u.Email,
		"UserName":  u.Name,
		"IsAdmin":   u.IsAdmin,
	}
	templates.Render(w, r, "users", data)
}

// ServeList returns every allow-list entry.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	users, err := h.users.List(ctx)
	if err != nil {
		h.log.Error("list allowed users", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

type addUserRequest struct {
	Email string `json:"email"`
}

// ServeAdd adds an email to the allow-list. Re-adding an existing email
// succeeds and refreshes the entry.
func (h *Handler) ServeAdd(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Email is required")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	admin := auth.RequestUser(r)
	u, err := h.users.Add(ctx, email, admin.Email)
	if err != nil {
		h.log.Error("add allowed user", zap.String("email", email), zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info("allow-list entry added",
		zap.String("email", u.Email),
		zap.String("added_by", admin.Email))
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"email":   u.Email,
	})
}

// ServeDelete removes an email from the allow-list. The admin account
// itself cannot be removed; deleting an absent email succeeds.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(chi.URLParam(r, "email"))
	if email == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if strings.EqualFold(email, h.adminEmail) {
		apiutil.WriteError(w, http.StatusBadRequest, "Cannot delete admin email")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.users.Delete(ctx, email); err != nil {
		h.log.Error("delete allowed user", zap.String("email", email), zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info("allow-list entry removed",
		zap.String("email", email),
		zap.String("removed_by", auth.RequestUser(r).Email))
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
