package usecase

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"os"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hemera/pkg/domain/interfaces"
	"github.com/secmon-lab/hemera/pkg/domain/model/auth"
	"github.com/secmon-lab/hemera/pkg/service/calendar"
	"github.com/secmon-lab/hemera/pkg/utils/logging"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
)

// DefaultJWTSecret signs session cookies when no secret is configured.
// Deployments reachable beyond localhost must override it.
const DefaultJWTSecret = "change-me"

// sessionClaimToken is the JWT claim carrying the Google OAuth payload
const sessionClaimToken = "token"

type AuthUseCase struct {
	masterPassword  string
	jwtSecret       []byte
	oauth           *oauth2.Config
	credentialsFile string
}

func NewAuthUseCase(options ...AuthOption) *AuthUseCase {
	uc := &AuthUseCase{
		jwtSecret: []byte(DefaultJWTSecret),
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// AuthOption is a functional option for AuthUseCase
type AuthOption func(*AuthUseCase)

// WithMasterPassword enables password login. An empty password keeps it
// disabled.
func WithMasterPassword(password string) AuthOption {
	return func(uc *AuthUseCase) {
		uc.masterPassword = password
	}
}

// WithJWTSecret overrides the session cookie signing key
func WithJWTSecret(secret string) AuthOption {
	return func(uc *AuthUseCase) {
		if secret != "" {
			uc.jwtSecret = []byte(secret)
		}
	}
}

// WithGoogleOAuth enables the Google consent flow. Both credentials are
// required; a partial pair leaves OAuth disabled.
func WithGoogleOAuth(clientID, clientSecret, redirectURL string) AuthOption {
	return func(uc *AuthUseCase) {
		if clientID == "" || clientSecret == "" {
			return
		}
		uc.oauth = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{calendarapi.CalendarScope},
			Endpoint:     google.Endpoint,
		}
	}
}

// WithCredentialsFile sets the service account fallback for calendar access
func WithCredentialsFile(path string) AuthOption {
	return func(uc *AuthUseCase) {
		uc.credentialsFile = path
	}
}

// PasswordLoginEnabled reports whether a master password is configured
func (uc *AuthUseCase) PasswordLoginEnabled() bool {
	return uc.masterPassword != ""
}

// VerifyPassword checks a login attempt against the master password
func (uc *AuthUseCase) VerifyPassword(password string) error {
	if uc.masterPassword == "" {
		return ErrPasswordLoginDisabled
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(uc.masterPassword)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}

// IssueSessionToken signs a session cookie value. googleToken may be nil
// for password logins; such sessions carry no calendar access of their own.
func (uc *AuthUseCase) IssueSessionToken(googleToken *auth.GoogleToken) (string, error) {
	builder := jwt.NewBuilder().IssuedAt(time.Now().UTC())
	if googleToken != nil {
		builder = builder.Claim(sessionClaimToken, googleToken)
	}

	tok, err := builder.Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build session token")
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, uc.jwtSecret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign session token")
	}

	return string(signed), nil
}

// VerifySessionToken parses and verifies a session cookie value. A nil
// GoogleToken with nil error means a valid session without OAuth payload,
// i.e. a password login.
func (uc *AuthUseCase) VerifySessionToken(raw string) (*auth.GoogleToken, error) {
	tok, err := jwt.Parse([]byte(raw), jwt.WithKey(jwa.HS256, uc.jwtSecret), jwt.WithValidate(true))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to verify session token")
	}

	claim, ok := tok.Get(sessionClaimToken)
	if !ok {
		return nil, nil
	}

	// jwx hands nested claims back as map[string]interface{}; round-trip
	// through JSON to recover the typed payload.
	data, err := json.Marshal(claim)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode token claim")
	}
	var googleToken auth.GoogleToken
	if err := json.Unmarshal(data, &googleToken); err != nil {
		return nil, goerr.Wrap(err, "failed to decode token claim")
	}

	return &googleToken, nil
}

// OAuthEnabled reports whether the Google consent flow is configured
func (uc *AuthUseCase) OAuthEnabled() bool {
	return uc.oauth != nil
}

// AuthCodeURL returns the Google consent page URL for the given state
func (uc *AuthUseCase) AuthCodeURL(state string) string {
	if uc.oauth == nil {
		return ""
	}
	return uc.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// HandleOAuthCallback exchanges the authorization code for Google tokens
func (uc *AuthUseCase) HandleOAuthCallback(ctx context.Context, code string) (*auth.GoogleToken, error) {
	if uc.oauth == nil {
		return nil, ErrOAuthNotConfigured
	}

	tok, err := uc.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to exchange authorization code")
	}

	return auth.NewGoogleToken(tok, uc.oauth), nil
}

// CalendarForSession binds a calendar backend for a new chat session.
// Preference order: the session's own OAuth token, then the service
// account file, then none. Binding failures fall through instead of
// blocking the chat.
func (uc *AuthUseCase) CalendarForSession(ctx context.Context, sessionToken string) interfaces.CalendarService {
	logger := logging.From(ctx)

	if sessionToken != "" {
		googleToken, err := uc.VerifySessionToken(sessionToken)
		if err != nil {
			logger.Debug("session token rejected, continuing without calendar", "error", err)
		} else if googleToken != nil {
			svc, err := calendar.NewFromToken(ctx, googleToken.OAuth2Config(), googleToken.OAuth2Token())
			if err != nil {
				logger.Warn("failed to build calendar client from session token", "error", err)
			} else {
				return svc
			}
		}
	}

	if uc.credentialsFile != "" {
		if _, err := os.Stat(uc.credentialsFile); err == nil {
			svc, err := calendar.NewFromCredentialsFile(ctx, uc.credentialsFile)
			if err != nil {
				logger.Warn("failed to build calendar client from credentials file", "error", err, "path", uc.credentialsFile)
			} else {
				return svc
			}
		}
	}

	return nil
}
