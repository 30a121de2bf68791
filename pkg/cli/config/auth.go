package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hemera/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Auth holds login and calendar credential configuration
type Auth struct {
	masterPassword     string
	jwtSecret          string
	googleClientID     string
	googleClientSecret string
	credentialsFile    string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "master-password",
			Usage:       "Password for the built-in login form (empty disables password login)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("HEMERA_MASTER_PASSWORD"),
			Destination: &x.masterPassword,
		},
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "Signing key for session cookies",
			Category:    "Authentication",
			Sources:     cli.EnvVars("HEMERA_JWT_SECRET"),
			Destination: &x.jwtSecret,
		},
		&cli.StringFlag{
			Name:        "google-client-id",
			Usage:       "Google OAuth client ID for calendar access",
			Category:    "Google",
			Sources:     cli.EnvVars("HEMERA_GOOGLE_CLIENT_ID"),
			Destination: &x.googleClientID,
		},
		&cli.StringFlag{
			Name:        "google-client-secret",
			Usage:       "Google OAuth client secret",
			Category:    "Google",
			Sources:     cli.EnvVars("HEMERA_GOOGLE_CLIENT_SECRET"),
			Destination: &x.googleClientSecret,
		},
		&cli.StringFlag{
			Name:        "google-credentials-file",
			Usage:       "Service account credentials file used for calendar access when no user token is bound",
			Category:    "Google",
			Sources:     cli.EnvVars("HEMERA_GOOGLE_CREDENTIALS_FILE"),
			Destination: &x.credentialsFile,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("master-password.len", len(x.masterPassword)),
		slog.Int("jwt-secret.len", len(x.jwtSecret)),
		slog.Int("client-id.len", len(x.googleClientID)),
		slog.Int("client-secret.len", len(x.googleClientSecret)),
		slog.String("credentials-file", x.credentialsFile),
	)
}

// OAuthRequested reports whether any Google OAuth credential was given
func (x *Auth) OAuthRequested() bool {
	return x.googleClientID != "" || x.googleClientSecret != ""
}

// Configure builds the auth use case. The OAuth redirect URL is composed
// from baseURL, so OAuth credentials without a base URL are a
// misconfiguration.
func (x *Auth) Configure(baseURL string) (*usecase.AuthUseCase, error) {
	if x.OAuthRequested() {
		if x.googleClientID == "" || x.googleClientSecret == "" {
			return nil, goerr.New("google-client-id and google-client-secret must be set together")
		}
		if baseURL == "" {
			return nil, goerr.New("base-url is required when Google OAuth is configured")
		}
	}

	opts := []usecase.AuthOption{
		usecase.WithMasterPassword(x.masterPassword),
		usecase.WithJWTSecret(x.jwtSecret),
		usecase.WithCredentialsFile(x.credentialsFile),
	}
	if x.OAuthRequested() {
		opts = append(opts, usecase.WithGoogleOAuth(x.googleClientID, x.googleClientSecret, baseURL+"/api/auth/callback"))
	}

	return usecase.NewAuthUseCase(opts...), nil
}
