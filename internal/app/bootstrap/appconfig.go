// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging,
// CORS); AppConfig is everything specific to this application. The struct is
// passed to most lifecycle hooks, so any configuration needed during
// startup, request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Collection names, overridable so several deployments can share a
	// database.
	UsersCollection   string
	HistoryCollection string

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)
	SessionMaxAge time.Duration

	// Google sign-in configuration. ClientID alone enables the embedded
	// credential button; ClientSecret additionally enables the redirect flow.
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL the OAuth callback is registered under.
	BaseURL string

	// AdminEmail is the one account that always gets in and manages the
	// allow-list.
	AdminEmail string

	// RoutePrefix mounts the whole app under a path prefix (e.g. "/prod")
	// for deployments behind a path-routing proxy. Blank means root.
	RoutePrefix string
}
