// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/histkeep/internal/app/system/auth"
	"github.com/dalemusser/histkeep/internal/app/system/googleid"
	"github.com/dalemusser/histkeep/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// notAllowedMessage is shown to a verified identity that is not on the
// allow-list. The wording directs the user to wait for admin approval.
const notAllowedMessage = "You are not allowed to access this application. " +
	"Please wait for the admin to add your email to the allowed user's email list."

// AllowList is the allow-list lookup the login flow needs.
type AllowList interface {
	Exists(ctx context.Context, email string) (bool, error)
}

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Verifier   googleid.Verifier
	Users      AllowList
	AdminEmail string
	ClientID   string // passed to the login template for the Sign-In button
	Paths      auth.Paths
}

func NewHandler(sessionMgr *auth.SessionManager, verifier googleid.Verifier, users AllowList, adminEmail, clientID string, paths auth.Paths, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Verifier:   verifier,
		Users:      users,
		AdminEmail: adminEmail,
		ClientID:   clientID,
		Paths:      paths,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login – login page                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

type loginPageData struct {
	Title          string
	GoogleClientID string
}

func (h *Handler) ServeLoginPage(w http.ResponseWriter, r *http.Request) {
	// Already signed in: nothing to do here.
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, h.Paths.To("/data"), http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginPageData{
		Title:          "Sign in",
		GoogleClientID: h.ClientID,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login – accept identity token                                         |
*─────────────────────────────────────────────────────────────────────────────*/

type credentialRequest struct {
	Credential string `json:"credential"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ServeCredential verifies the posted Google credential and establishes a
// session.
//
// Outcomes:
//   - unverifiable token            → 401, no session
//   - verified but email missing    → 400, no session
//   - admin email                   → session (admin), even if not allow-listed
//   - allow-listed email            → session
//   - anything else                 → 403 with the waiting message, no session
func (h *Handler) ServeCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		writeLogin(w, http.StatusBadRequest, loginResponse{Success: false, Message: "Credential is required"})
		return
	}

	identity, err := h.Verifier.Verify(r.Context(), req.Credential)
	if err != nil {
		if errors.Is(err, googleid.ErrInvalidToken) {
			h.Log.Warn("login: token verification failed", zap.Error(err))
			writeLogin(w, http.StatusUnauthorized, loginResponse{Success: false, Message: "Invalid token"})
			return
		}
		h.Log.Error("login: verifier error", zap.Error(err))
		writeLogin(w, http.StatusInternalServerError, loginResponse{Success: false, Message: err.Error()})
		return
	}

	h.Log.Info("login attempt", zap.String("email", identity.Email))

	if identity.Email == "" {
		writeLogin(w, http.StatusBadRequest, loginResponse{Success: false, Message: "Email not found in token"})
		return
	}

	// Admin can always login.
	if strings.EqualFold(identity.Email, h.AdminEmail) {
		h.establish(w, r, identity, true)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	allowed, err := h.Users.Exists(ctx, identity.Email)
	if err != nil {
		h.Log.Error("login: allow-list lookup failed", zap.Error(err))
		writeLogin(w, http.StatusInternalServerError, loginResponse{Success: false, Message: err.Error()})
		return
	}
	if !allowed {
		writeLogin(w, http.StatusForbidden, loginResponse{Success: false, Message: notAllowedMessage})
		return
	}

	h.establish(w, r, identity, false)
}

func (h *Handler) establish(w http.ResponseWriter, r *http.Request, identity googleid.Identity, isAdmin bool) {
	err := h.SessionMgr.Establish(w, r, auth.SessionUser{
		Email:   identity.Email,
		Name:    identity.Name,
		IsAdmin: isAdmin,
	})
	if err != nil {
		h.Log.Error("login: save session failed", zap.Error(err), zap.String("email", identity.Email))
		writeLogin(w, http.StatusInternalServerError, loginResponse{Success: false, Message: err.Error()})
		return
	}

	h.Log.Info("user logged in",
		zap.String("email", identity.Email),
		zap.Bool("is_admin", isAdmin))

	writeLogin(w, http.StatusOK, loginResponse{Success: true})
}

func writeLogin(w http.ResponseWriter, status int, resp loginResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
