// internal/app/features/authgoogle/handler.go

// Package authgoogle is the redirect-based Google sign-in flow, the
// fallback for browsers where the embedded credential button cannot run.
// It lands on the same allow-list policy as the credential login.
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/histkeep/internal/app/store/oauthstate"
	"github.com/dalemusser/histkeep/internal/app/system/auth"
	"github.com/dalemusser/histkeep/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// AllowList answers whether an email may sign in.
type AllowList interface {
	Exists(ctx context.Context, email string) (bool, error)
}

// Handler handles the Google OAuth redirect flow.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	StateStore *oauthstate.Store
	Users      AllowList

	AdminEmail string

	// OAuth configuration
	ClientID     string
	ClientSecret string
	RedirectURL  string

	Paths auth.Paths
}

// NewHandler creates a new Google OAuth handler. baseURL is the externally
// visible origin; the callback URL is the origin joined with the mount
// prefix and the callback route.
func NewHandler(
	sessionMgr *auth.SessionManager,
	stateStore *oauthstate.Store,
	users AllowList,
	adminEmail, clientID, clientSecret, baseURL string,
	paths auth.Paths,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:          logger,
		SessionMgr:   sessionMgr,
		StateStore:   stateStore,
		Users:        users,
		AdminEmail:   adminEmail,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + paths.To("/auth/google/callback"),
		Paths:        paths,
	}
}

// loginError bounces the browser back to the login page with an error code
// the page can render.
func (h *Handler) loginError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, h.Paths.To("/login?error="+code), http.StatusSeeOther)
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                             |
| Initiates the Google OAuth flow by redirecting to Google's consent screen.   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		h.loginError(w, r, "google_not_configured")
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		h.loginError(w, r, "internal")
		return
	}

	returnURL := query.Get(r, "return")

	// Store state with 10-minute expiry.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.StateStore.Save(ctx, state, returnURL, expiresAt); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		h.loginError(w, r, "internal")
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)

	h.Log.Debug("initiating Google OAuth flow",
		zap.String("redirect_url", url),
		zap.String("return_url", returnURL))

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                                    |
| Exchanges the code for tokens, fetches the Google identity, applies the      |
| allow-list policy, and creates the session.                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		h.loginError(w, r, "google_denied")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		h.loginError(w, r, "invalid_state")
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		h.loginError(w, r, "internal")
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		h.loginError(w, r, "invalid_state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		h.loginError(w, r, "invalid_code")
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		h.loginError(w, r, "token_exchange")
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		h.loginError(w, r, "user_info")
		return
	}
	if googleUser.Email == "" {
		h.Log.Warn("Google user info has no email")
		h.loginError(w, r, "user_info")
		return
	}

	h.Log.Debug("Google user info fetched",
		zap.String("email", googleUser.Email),
		zap.String("name", googleUser.Name))

	// Same policy as the credential login: the admin always gets in, anyone
	// else must be on the allow-list.
	isAdmin := strings.EqualFold(googleUser.Email, h.AdminEmail)
	if !isAdmin {
		allowed, err := h.Users.Exists(ctxTimeout, googleUser.Email)
		if err != nil {
			h.Log.Error("failed to check allow-list", zap.Error(err))
			h.loginError(w, r, "internal")
			return
		}
		if !allowed {
			h.Log.Info("Google OAuth: email not on allow-list",
				zap.String("email", googleUser.Email))
			h.loginError(w, r, "not_allowed")
			return
		}
	}

	h.createSessionAndRedirect(w, r, auth.SessionUser{
		Email:   googleUser.Email,
		Name:    googleUser.Name,
		IsAdmin: isAdmin,
	}, returnURL)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

// createSessionAndRedirect creates an authenticated session and sends the
// browser to its destination.
func (h *Handler) createSessionAndRedirect(w http.ResponseWriter, r *http.Request, u auth.SessionUser, returnURL string) {
	if err := h.SessionMgr.Establish(w, r, u); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("email", u.Email))
		h.loginError(w, r, "session")
		return
	}

	h.Log.Info("user logged in via Google OAuth",
		zap.String("email", u.Email),
		zap.Bool("is_admin", u.IsAdmin))

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", h.Paths.To("/data")), http.StatusSeeOther)
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
