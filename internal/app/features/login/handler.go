// internal/app/features/login/handler.go
package login

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	loginstore "github.com/dalemusser/mentorhub/internal/app/store/logins"
	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/app/system/authutil"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/normalize"
	"github.com/dalemusser/mentorhub/internal/app/system/ratelimit"
	"github.com/dalemusser/mentorhub/internal/app/system/render"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Messages shown on the sign-in form. Unknown login IDs and bad passwords
// share one message.
const (
	MsgMissingFields = "Please enter your login ID and password."
	MsgBadLogin      = "Invalid login ID or password."
	MsgDisabled      = "Your account is currently disabled. Please contact a mentor."
	MsgSessionFailed = "Unable to create session. Please try again."
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	ErrLog        *uierrors.ErrorLogger
	AuditLog      *auditlog.Logger
	Logins        *loginstore.Store
	Limiter       *ratelimit.LoginLimiter
	GoogleEnabled bool // True if Google OAuth is configured
	Render        render.Func
}

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	LoginID       string
	ReturnURL     string
	GoogleEnabled bool
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	audit *auditlog.Logger,
	googleEnabled bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		SessionMgr:    sessionMgr,
		ErrLog:        errLog,
		AuditLog:      audit,
		Logins:        loginstore.New(db),
		Limiter:       ratelimit.NewLoginLimiter(),
		GoogleEnabled: googleEnabled,
		Render:        render.Template,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	render.Or(h.Render)(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:         signInErrorMessage(query.Get(r, "error")),
		ReturnURL:     query.Get(r, "return"),
		GoogleEnabled: h.GoogleEnabled,
	})
}

// signInErrors maps the ?error= codes used by the Google sign-in
// redirects to the message shown above the form.
var signInErrors = map[string]string{
	"google_not_configured": "Google sign-in is not available.",
	"google_denied":         "Google sign-in was cancelled.",
	"invalid_state":         "Your sign-in attempt expired. Please try again.",
	"invalid_code":          "Google sign-in failed. Please try again.",
	"token_exchange":        "Google sign-in failed. Please try again.",
	"email_unverified":      "Your Google email address is not verified.",
	"no_account":            "No account is registered for that Google address.",
	"account_disabled":      MsgDisabled,
	"internal":              "Something went wrong. Please try again.",
}

func signInErrorMessage(code string) string {
	if code == "" {
		return ""
	}
	if msg, ok := signInErrors[code]; ok {
		return msg
	}
	return signInErrors["internal"]
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	loginID := strings.TrimSpace(r.FormValue("login_id"))
	password := r.FormValue("password")
	ret := strings.TrimSpace(r.FormValue("return"))

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, loginID); !ok {
			metrics.Denied("rate_limited")
			h.renderFormWithError(w, r, reason, loginID)
			return
		}
	}

	if loginID == "" || password == "" {
		h.renderFormWithError(w, r, MsgMissingFields, loginID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	users := userstore.New(h.DB)
	u, err := users.GetByLogin(ctx, loginID, models.AuthPassword)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		// A Google account typing its login here is sent to Google.
		if h.GoogleEnabled {
			if _, gerr := users.GetByLogin(ctx, loginID, models.AuthGoogle); gerr == nil {
				http.Redirect(w, r, googleStartURL(ret), http.StatusSeeOther)
				return
			}
		}
		h.AuditLog.LoginFailedUserNotFound(ctx, r, loginID)
		h.renderFormWithError(w, r, MsgBadLogin, loginID)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "DB find user", err, "A server error occurred.", "/login")
		return
	}

	if normalize.Status(u.Status) == models.StatusDisabled {
		h.AuditLog.LoginFailedUserDisabled(ctx, r, u.ID, u.LoginID)
		h.renderFormWithError(w, r, MsgDisabled, loginID)
		return
	}

	if !authutil.CheckPassword(password, u.PasswordHash) {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, u.ID, u.LoginID)
		if h.Limiter != nil {
			h.Log.Info("wrong password",
				zap.String("login_id", u.LoginID),
				zap.Int("attempts_left", h.Limiter.AttemptsLeft(loginID)))
		}
		h.renderFormWithError(w, r, MsgBadLogin, loginID)
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetLogin(loginID)
	}
	h.SignInAndRedirect(w, r, u, models.AuthPassword, ret)
}

func googleStartURL(ret string) string {
	if ret == "" {
		return "/auth/google"
	}
	return "/auth/google?return=" + ret
}

// SignInAndRedirect creates the authenticated session for u, records the
// sign-in, and redirects to the safe return URL or the dashboard. The
// Google callback shares it.
func (h *Handler) SignInAndRedirect(w http.ResponseWriter, r *http.Request, u *models.User, provider, returnURL string) {
	sess, err := h.SessionMgr.GetSession(r)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			h.Log.Warn("session cookie invalid, using fresh session",
				zap.Error(err),
				zap.String("user_id", u.ID.Hex()))
		} else {
			h.Log.Error("session store error during login, using fresh session",
				zap.Error(err),
				zap.String("user_id", u.ID.Hex()))
		}
	}

	set := roles.Clean(u.Roles)
	su := auth.SessionUser{
		ID:      u.ID.Hex(),
		Name:    u.FullName,
		LoginID: u.LoginID,
		Email:   u.Email,
		Roles:   set,
		Role:    roles.Primary(set),
	}
	if err := h.SessionMgr.SignIn(w, r, sess, su); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("login_id", u.LoginID))
		h.renderFormWithError(w, r, MsgSessionFailed, u.LoginID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if h.Logins != nil {
		if err := h.Logins.CreateFrom(ctx, r, u.ID, provider); err != nil {
			h.Log.Warn("record login failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		}
	}
	h.AuditLog.LoginSuccess(ctx, r, u.ID, provider, u.LoginID)
	h.Log.Info("user signed in", zap.String("user_id", u.ID.Hex()), zap.String("provider", provider))

	dest := urlutil.SafeReturn(returnURL, "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, loginID string) {
	// From POST, "return" will be in the form; from GET, we might rely on the query.
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	render.Or(h.Render)(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:         msg,
		LoginID:       loginID,
		ReturnURL:     ret,
		GoogleEnabled: h.GoogleEnabled,
	})
}
