// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogfeature "github.com/dalemusser/mentorhub/internal/app/features/auditlog"
	authgooglefeature "github.com/dalemusser/mentorhub/internal/app/features/authgoogle"
	companiesfeature "github.com/dalemusser/mentorhub/internal/app/features/companies"
	dashboardfeature "github.com/dalemusser/mentorhub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	groupsfeature "github.com/dalemusser/mentorhub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/mentorhub/internal/app/features/health"
	homefeature "github.com/dalemusser/mentorhub/internal/app/features/home"
	indicatorsfeature "github.com/dalemusser/mentorhub/internal/app/features/indicators"
	loginfeature "github.com/dalemusser/mentorhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/mentorhub/internal/app/features/logout"
	mentorsfeature "github.com/dalemusser/mentorhub/internal/app/features/mentors"
	sessionsfeature "github.com/dalemusser/mentorhub/internal/app/features/sessions"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/app/system/flash"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// MentorHub boots the template engine, installs the metrics, CSRF, session
// and flash middleware, and mounts one router per record type plus the
// sign-in, dashboard and audit features.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MentorHubMongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser re-reads the user on each request so role changes
	// and disabled accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))
	flash.Init(sessionMgr, logger)

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	r := chi.NewRouter()

	if appCfg.MetricsEnabled {
		r.Use(metrics.Middleware)
		r.Handle("/metrics", metrics.Handler())
	}

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MentorHubMongoClient, appCfg.Release, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Everything below renders pages or accepts form posts.
	r.Group(func(pr chi.Router) {
		if !secure {
			pr.Use(markPlaintext)
		}
		pr.Use(csrf.Protect([]byte(appCfg.CSRFKey),
			csrf.Secure(secure),
			csrf.Path("/"),
			csrf.SameSite(csrf.SameSiteLaxMode),
		))
		pr.Use(sessionMgr.LoadSessionUser)
		pr.Use(flash.Middleware)

		homeHandler := homefeature.NewHandler(db, appCfg.GoogleEnabled(), logger)
		pr.Get("/", homeHandler.ServeRoot)

		// Authentication
		loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, auditLog, appCfg.GoogleEnabled(), logger)
		pr.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLog, logger)
		pr.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

		if appCfg.GoogleEnabled() {
			googleHandler := authgooglefeature.NewHandler(db, auditLog, loginHandler.SignInAndRedirect,
				appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
			pr.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
		}

		// Error pages
		errorsHandler := errorsfeature.NewHandler()
		pr.Get("/forbidden", errorsHandler.Forbidden)
		pr.Get("/unauthorized", errorsHandler.Unauthorized)
		pr.NotFound(errorsHandler.NotFound)

		dashboardHandler := dashboardfeature.NewHandler(db, logger)
		pr.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

		// Records
		groupsHandler := groupsfeature.NewHandler(db, errLog, auditLog, logger)
		pr.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

		companiesHandler := companiesfeature.NewHandler(db, errLog, auditLog, logger)
		pr.Mount("/companies", companiesfeature.Routes(companiesHandler, sessionMgr))

		mentorsHandler := mentorsfeature.NewHandler(db, errLog, auditLog, logger)
		pr.Mount("/mentors", mentorsfeature.Routes(mentorsHandler, sessionMgr))

		sessionsHandler := sessionsfeature.NewHandler(db, errLog, auditLog, logger)
		pr.Mount("/sessions", sessionsfeature.Routes(sessionsHandler, sessionMgr))

		indicatorsHandler := indicatorsfeature.NewHandler(db, errLog, auditLog, logger)
		pr.Mount("/indicators", indicatorsfeature.Routes(indicatorsHandler, sessionMgr))

		auditHandler := auditlogfeature.NewHandler(db, errLog, logger)
		pr.Mount("/audit", auditlogfeature.Routes(auditHandler, sessionMgr))
	})

	return r, nil
}

// markPlaintext tells gorilla/csrf that the request arrived over plain
// HTTP, so its origin checks do not demand TLS in local development.
func markPlaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
