// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminusersfeature "github.com/dalemusser/histkeep/internal/app/features/adminusers"
	authgooglefeature "github.com/dalemusser/histkeep/internal/app/features/authgoogle"
	healthfeature "github.com/dalemusser/histkeep/internal/app/features/health"
	historyapifeature "github.com/dalemusser/histkeep/internal/app/features/historyapi"
	homefeature "github.com/dalemusser/histkeep/internal/app/features/home"
	loginfeature "github.com/dalemusser/histkeep/internal/app/features/login"
	logoutfeature "github.com/dalemusser/histkeep/internal/app/features/logout"
	pagesfeature "github.com/dalemusser/histkeep/internal/app/features/pages"
	historystore "github.com/dalemusser/histkeep/internal/app/store/history"
	"github.com/dalemusser/histkeep/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/histkeep/internal/app/store/users"
	"github.com/dalemusser/histkeep/internal/app/system/auth"
	"github.com/dalemusser/histkeep/internal/app/system/googleid"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It initializes the template engine,
// applies session middleware, and mounts the feature routers: the public
// login surface, the session-guarded pages and record API, and the
// admin-guarded allow-list management.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Stores
	users := userstore.New(deps.MongoDatabase, appCfg.UsersCollection)
	records := historystore.New(deps.MongoDatabase, appCfg.HistoryCollection)
	states := oauthstate.New(deps.MongoDatabase)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Redirects issued inside the mount must resolve inside the mount, so
	// every redirecting handler gets the prefix-aware path builder.
	paths := auth.NewPaths(appCfg.RoutePrefix)

	if appCfg.RoutePrefix != "" {
		r.Route(appCfg.RoutePrefix, func(pr chi.Router) {
			mountApp(pr, appCfg, deps, sessionMgr, paths, users, records, states, logger)
		})
	} else {
		mountApp(r, appCfg, deps, sessionMgr, paths, users, records, states, logger)
	}

	return r, nil
}

func mountApp(
	r chi.Router,
	appCfg AppConfig,
	deps DBDeps,
	sessionMgr *auth.SessionManager,
	paths auth.Paths,
	users *userstore.Store,
	records *historystore.Store,
	states *oauthstate.Store,
	logger *zap.Logger,
) {
	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Root redirect
	homeHandler := homefeature.NewHandler(paths, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication: embedded credential button plus redirect fallback
	verifier := googleid.NewTokenVerifier(appCfg.GoogleClientID)
	loginHandler := loginfeature.NewHandler(sessionMgr, verifier, users, appCfg.AdminEmail, appCfg.GoogleClientID, paths, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, paths, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	oauthHandler := authgooglefeature.NewHandler(
		sessionMgr, states, users,
		appCfg.AdminEmail, appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
		paths, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(oauthHandler))

	// Session-guarded pages
	pagesHandler := pagesfeature.NewHandler(logger)
	pagesfeature.Register(r, pagesHandler, paths)

	// Session-guarded record API
	r.Group(func(sr chi.Router) {
		sr.Use(auth.RequireSignedIn(paths))
		historyHandler := historyapifeature.NewHandler(records, logger)
		historyapifeature.Register(sr, historyHandler)
	})

	// Admin-guarded allow-list management
	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireSignedIn(paths))
		ar.Use(auth.RequireAdmin(paths, appCfg.AdminEmail))
		adminHandler := adminusersfeature.NewHandler(users, appCfg.AdminEmail, logger)
		adminusersfeature.Register(ar, adminHandler)
	})
}
