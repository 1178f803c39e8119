package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey  = "is_authenticated"
	userKey    = "user"
	userEmail  = "user_email"
	userName   = "user_name"
	isAdminKey = "is_admin"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we cache in the session & inject into r.Context().
type SessionUser struct {
	Email   string
	Name    string
	IsAdmin bool
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// RequestUser returns the context user. Behind RequireSignedIn it is always
// present; without one it returns an empty SessionUser.
func RequestUser(r *http.Request) *SessionUser {
	if u, ok := CurrentUser(r); ok {
		return u
	}
	return &SessionUser{}
}

// WithTestUser injects a user into the request context. Test helper only;
// production code goes through LoadSessionUser.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the cookie store. It is constructed once at startup
// and handed to the handlers that establish or clear sessions; request-time
// identity comes from the LoadSessionUser middleware.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager.
//
// In production (secure=true), cookies are Secure + SameSite=None so they
// survive cross-site use over HTTPS. In local dev over http://localhost,
// secure=false keeps Lax cookies that the browser will accept.
func NewSessionManager(sessionKey, sessionName, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: sessionName, log: logger}, nil
}

// GetSession returns the request's session, decoding the cookie if present.
func (m *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, m.name)
}

// Store exposes the underlying cookie store (logout needs its options).
func (m *SessionManager) Store() *sessions.CookieStore {
	return m.store
}

// Establish writes an authenticated session for u and saves the cookie.
func (m *SessionManager) Establish(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, err := m.GetSession(r)
	if err != nil {
		// Get still hands back a fresh session, which is exactly what we
		// want at login time.
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Error("session store error during login, using fresh session", zap.Error(err))
		}
	}

	sess.Values[isAuthKey] = true
	sess.Values[userKey] = u.Email
	sess.Values[userEmail] = u.Email
	sess.Values[userName] = u.Name
	sess.Values[isAdminKey] = u.IsAdmin

	return sess.Save(r, w)
}

// Clear expires the session cookie. Safe to call with no session present.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.GetSession(r)
	if err != nil {
		m.log.Warn("session decode failed during logout", zap.Error(err))
	}

	// Ensure the deletion-cookie matches the original store settings.
	if opts := m.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1 // delete immediately

	return sess.Save(r, w)
}

// LoadSessionUser injects the user into context if they are logged in.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				Email: getString(sess, userEmail),
				Name:  getString(sess, userName),
			}
			u.IsAdmin, _ = sess.Values[isAdminKey].(bool)
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Mount prefix                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// Paths joins redirect targets onto the path prefix the app is mounted
// under, so a redirect issued from inside the mount lands back inside it.
type Paths struct {
	prefix string
}

// NewPaths returns a Paths for prefix. An empty prefix (or "/") means the
// app sits at the server root and targets pass through unchanged.
func NewPaths(prefix string) Paths {
	return Paths{prefix: strings.TrimSuffix(prefix, "/")}
}

// To resolves a root-relative target ("/login", "/data?x=1") against the
// mount prefix.
func (p Paths) To(target string) string {
	return p.prefix + target
}

/*─────────────────────────────────────────────────────────────────────────────*
| Guards                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTML: 303 redirect to the login page
//   - API:  401 with the standard JSON error envelope.
func RequireSignedIn(paths Paths) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := CurrentUser(r); ok {
				next.ServeHTTP(w, r)
				return
			}

			if wantsHTML(r) {
				http.Redirect(w, r, paths.To("/login"), http.StatusSeeOther)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"authentication required"}`)
		})
	}
}

// RequireAdmin ensures the session belongs to the configured administrator.
// A signed-in non-admin gets 403; no session falls back to RequireSignedIn
// semantics. Both checks run before the wrapped handler and never after.
func RequireAdmin(paths Paths, adminEmail string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				if wantsHTML(r) {
					http.Redirect(w, r, paths.To("/login"), http.StatusSeeOther)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error":"authentication required"}`)
				return
			}

			if !strings.EqualFold(u.Email, adminEmail) {
				if wantsHTML(r) {
					http.Redirect(w, r, paths.To("/data"), http.StatusSeeOther)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"error":"Admin access required"}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
