package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/roles"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey    = "is_authenticated"
	userIDKey    = "user_id"
	userNameKey  = "user_name"
	userLoginKey = "user_login"
	userRolesKey = "user_roles" // comma-joined; avoids gob registration for []string
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we inject into r.Context() for signed-in requests.
//
// Role is the primary role (mentor outranks consultant) and is what the
// templates show. Roles is the full set used by the guard.
type SessionUser struct {
	ID      string
	Name    string
	LoginID string
	Email   string
	Role    string
	Roles   []string
}

// RoleSet returns the roles the guard should check. Users built with only
// Role set (as in tests) are treated as holding that single role.
func (u *SessionUser) RoleSet() []string {
	if u == nil {
		return nil
	}
	if len(u.Roles) > 0 {
		return u.Roles
	}
	if u.Role == "" {
		return nil
	}
	return []string{u.Role}
}

// HasRole reports whether the user holds any of the given roles.
func (u *SessionUser) HasRole(required ...string) bool {
	return roles.Allow(u.RoleSet(), required...)
}

// UserFetcher loads fresh user data for a session on every request.
// It returns nil when the user no longer exists or is disabled.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithTestUser injects u into the request context, bypassing the session
// cookie. Handler tests use it to simulate a signed-in user.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the cookie store and the auth middleware.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	logger  *zap.Logger
	fetcher UserFetcher
}

// NewSessionManager builds a cookie-backed session manager.
//
// In production (secure=true), cookies are Secure + SameSite=Lax.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "mentorhub-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(maxAge.Seconds()))

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{store: store, name: name, logger: logger}, nil
}

// Store exposes the underlying cookie store (logout copies its options).
func (sm *SessionManager) Store() *sessions.CookieStore { return sm.store }

// Name returns the session cookie name.
func (sm *SessionManager) Name() string { return sm.name }

// GetSession returns the request's session. A decode error still yields a
// usable fresh session alongside the error.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// SetUserFetcher installs a fetcher so role changes and disabled accounts
// take effect on the next request instead of at next login.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) { sm.fetcher = f }

// SignIn marks the session authenticated for u and saves it.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, sess *sessions.Session, u SessionUser) error {
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userLoginKey] = u.LoginID
	sess.Values[userRolesKey] = strings.Join(u.RoleSet(), ",")
	return sess.Save(r, w)
}

// LoadSessionUser injects the user into context if they are logged in.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			// Tampered or stale cookie: treat as signed out.
			next.ServeHTTP(w, r)
			return
		}

		isAuth, _ := sess.Values[isAuthKey].(bool)
		id := getString(sess, userIDKey)
		if !isAuth || id == "" {
			next.ServeHTTP(w, r)
			return
		}

		if sm.fetcher != nil {
			u := sm.fetcher.FetchUser(r.Context(), id)
			if u == nil {
				sm.logger.Info("session user no longer active", zap.String("user_id", id))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, withUser(r, u))
			return
		}

		set := splitRoles(getString(sess, userRolesKey))
		u := &SessionUser{
			ID:      id,
			Name:    getString(sess, userNameKey),
			LoginID: getString(sess, userLoginKey),
			Roles:   set,
			Role:    roles.Primary(set),
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		denyUnauthenticated(w, r)
	})
}

// RequireRole ensures there is a user holding at least one of the allowed
// roles (case-insensitive). Signed-out callers get the RequireSignedIn
// treatment; signed-in callers without a role get /forbidden or a 403.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				denyUnauthenticated(w, r)
				return
			}

			if !u.HasRole(allowed...) {
				sm.logger.Info("role check denied",
					zap.String("user_id", u.ID),
					zap.Strings("have", u.RoleSet()),
					zap.Strings("required", allowed),
					zap.String("path", r.URL.Path))

				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/forbidden")
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))

	// HTMX: full-page client redirect (no partial swap)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	// Browser/HTML: go to login and preserve return
	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}

	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

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

func splitRoles(s string) []string {
	if s == "" {
		return nil
	}
	return roles.Clean(strings.Split(s, ","))
}

func wantsHTML(r *http.Request) bool {
	// Very light heuristic: treat it as HTML if it's HTMX or Accepts text/html.
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}

func currentURI(r *http.Request) string {
	// Preserve path + query as a return param.
	u := *r.URL
	return u.RequestURI()
}
