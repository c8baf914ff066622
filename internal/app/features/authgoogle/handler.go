// internal/app/features/authgoogle/handler.go
package authgoogle

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/normalize"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// stateTTL bounds the Google round trip.
const stateTTL = 10 * time.Minute

// SignInFunc creates the session for a resolved user and redirects. The
// password login handler provides it so both paths sign in the same way.
type SignInFunc func(w http.ResponseWriter, r *http.Request, u *models.User, provider, returnURL string)

// GoogleUser is the subset of Google's userinfo response we use.
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// Handler handles Google OAuth authentication.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	AuditLog   *auditlog.Logger
	StateStore *oauthstate.Store
	SignIn     SignInFunc

	// OAuth configuration
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "https://mentorhub.example.com/auth/google/callback"

	// Exchange turns an authorization code into the Google user. Tests
	// replace it; by default it calls Google.
	Exchange func(ctx context.Context, code string) (*GoogleUser, error)
}

// NewHandler creates a new Google OAuth handler.
func NewHandler(
	db *mongo.Database,
	audit *auditlog.Logger,
	signIn SignInFunc,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		DB:           db,
		Log:          logger,
		AuditLog:     audit,
		StateStore:   oauthstate.New(db),
		SignIn:       signIn,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
	h.Exchange = h.exchangeWithGoogle
	return h
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
		redirectToLogin(w, r, "google_not_configured")
		return
	}

	state := uuid.NewString()
	returnURL := query.Get(r, "return")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.StateStore.Save(ctx, state, returnURL, time.Now().UTC().Add(stateTTL)); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		redirectToLogin(w, r, "internal")
		return
	}

	url := h.oauth2Config().AuthCodeURL(state)
	h.Log.Debug("initiating Google OAuth flow", zap.String("return_url", returnURL))
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		redirectToLogin(w, r, "google_denied")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		redirectToLogin(w, r, "invalid_state")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	returnURL, valid, err := h.StateStore.Consume(ctx, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		redirectToLogin(w, r, "internal")
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		redirectToLogin(w, r, "invalid_state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		redirectToLogin(w, r, "invalid_code")
		return
	}

	gu, err := h.Exchange(ctx, code)
	if err != nil {
		h.Log.Error("Google token exchange failed", zap.Error(err))
		redirectToLogin(w, r, "token_exchange")
		return
	}
	if !gu.EmailVerified {
		h.Log.Info("Google OAuth: email not verified", zap.String("email", gu.Email))
		redirectToLogin(w, r, "email_unverified")
		return
	}

	u, err := h.findUser(ctx, r, gu)
	switch {
	case errors.Is(err, errUserNotFound):
		h.AuditLog.LoginFailedUserNotFound(ctx, r, gu.Email)
		redirectToLogin(w, r, "no_account")
		return
	case errors.Is(err, errUserDisabled):
		redirectToLogin(w, r, "account_disabled")
		return
	case err != nil:
		h.Log.Error("failed to look up user", zap.Error(err))
		redirectToLogin(w, r, "internal")
		return
	}

	h.SignIn(w, r, u, models.AuthGoogle, returnURL)
}

/*─────────────────────────────────────────────────────────────────────────────*
| User lookup                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

var (
	errUserNotFound = errors.New("user not found")
	errUserDisabled = errors.New("user disabled")
)

// findUser matches a Google-method user by email, then by login id.
func (h *Handler) findUser(ctx context.Context, r *http.Request, gu *GoogleUser) (*models.User, error) {
	users := userstore.New(h.DB)

	u, err := users.GetByEmail(ctx, gu.Email, models.AuthGoogle)
	if errors.Is(err, mongo.ErrNoDocuments) {
		u, err = users.GetByLogin(ctx, gu.Email, models.AuthGoogle)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if normalize.Status(u.Status) == models.StatusDisabled {
		h.AuditLog.LoginFailedUserDisabled(ctx, r, u.ID, u.LoginID)
		return nil, errUserDisabled
	}
	return u, nil
}

// exchangeWithGoogle trades code for a token and fetches the userinfo.
func (h *Handler) exchangeWithGoogle(ctx context.Context, code string) (*GoogleUser, error) {
	cfg := h.oauth2Config()
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	resp, err := cfg.Client(ctx, token).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info: unexpected status %d", resp.StatusCode)
	}

	var gu GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &gu, nil
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, errorCode string) {
	http.Redirect(w, r, "/login?error="+errorCode, http.StatusSeeOther)
}
