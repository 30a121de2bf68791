package usecase_test

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hemera/pkg/domain/model/auth"
	"github.com/secmon-lab/hemera/pkg/usecase"
)

func TestVerifyPassword(t *testing.T) {
	t.Run("disabled without master password", func(t *testing.T) {
		uc := usecase.NewAuthUseCase()

		err := uc.VerifyPassword("anything")
		gt.Error(t, err).Is(usecase.ErrPasswordLoginDisabled)
		gt.Value(t, uc.PasswordLoginEnabled()).Equal(false)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(usecase.WithMasterPassword("open-sesame"))

		err := uc.VerifyPassword("open-says-me")
		gt.Error(t, err).Is(usecase.ErrInvalidPassword)
	})

	t.Run("accepts correct password", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(usecase.WithMasterPassword("open-sesame"))

		gt.NoError(t, uc.VerifyPassword("open-sesame"))
		gt.Value(t, uc.PasswordLoginEnabled()).Equal(true)
	})
}

func TestSessionToken(t *testing.T) {
	uc := usecase.NewAuthUseCase(usecase.WithJWTSecret("test-secret"))

	t.Run("password session carries no payload", func(t *testing.T) {
		signed, err := uc.IssueSessionToken(nil)
		gt.NoError(t, err).Required()
		gt.Value(t, signed != "").Equal(true)

		googleToken, err := uc.VerifySessionToken(signed)
		gt.NoError(t, err)
		gt.Value(t, googleToken == nil).Equal(true)
	})

	t.Run("oauth session round-trips the payload", func(t *testing.T) {
		src := &auth.GoogleToken{
			Token:        "access-token",
			RefreshToken: "refresh-token",
			TokenURI:     "https://oauth2.googleapis.com/token",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			Scopes:       []string{"https://www.googleapis.com/auth/calendar"},
		}

		signed, err := uc.IssueSessionToken(src)
		gt.NoError(t, err).Required()

		got, err := uc.VerifySessionToken(signed)
		gt.NoError(t, err).Required()
		gt.Value(t, *got).Equal(*src)
	})

	t.Run("rejects token signed with another key", func(t *testing.T) {
		other := usecase.NewAuthUseCase(usecase.WithJWTSecret("another-secret"))
		signed, err := other.IssueSessionToken(nil)
		gt.NoError(t, err).Required()

		_, err = uc.VerifySessionToken(signed)
		gt.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := uc.VerifySessionToken("not-a-jwt")
		gt.Error(t, err)
	})
}

func TestAuthCodeURL(t *testing.T) {
	t.Run("empty when oauth is not configured", func(t *testing.T) {
		uc := usecase.NewAuthUseCase()

		gt.Value(t, uc.OAuthEnabled()).Equal(false)
		gt.Value(t, uc.AuthCodeURL("state-1")).Equal("")
	})

	t.Run("partial credentials keep oauth disabled", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(usecase.WithGoogleOAuth("client-id", "", "http://localhost:8080/api/auth/callback"))

		gt.Value(t, uc.OAuthEnabled()).Equal(false)
	})

	t.Run("consent URL carries offline access params", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(usecase.WithGoogleOAuth("client-id", "client-secret", "http://localhost:8080/api/auth/callback"))
		gt.Value(t, uc.OAuthEnabled()).Equal(true)

		parsed, err := url.Parse(uc.AuthCodeURL("state-1"))
		gt.NoError(t, err).Required()
		gt.Value(t, parsed.Host).Equal("accounts.google.com")

		q := parsed.Query()
		gt.Value(t, q.Get("client_id")).Equal("client-id")
		gt.Value(t, q.Get("redirect_uri")).Equal("http://localhost:8080/api/auth/callback")
		gt.Value(t, q.Get("state")).Equal("state-1")
		gt.Value(t, q.Get("access_type")).Equal("offline")
		gt.Value(t, q.Get("include_granted_scopes")).Equal("true")
		gt.Value(t, q.Get("prompt")).Equal("consent")
		gt.Value(t, strings.Contains(q.Get("scope"), "auth/calendar")).Equal(true)
	})
}

func TestHandleOAuthCallback_NotConfigured(t *testing.T) {
	uc := usecase.NewAuthUseCase()

	_, err := uc.HandleOAuthCallback(context.Background(), "auth-code")
	gt.Error(t, err).Is(usecase.ErrOAuthNotConfigured)
}

func TestCalendarForSession(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing configured yields no calendar", func(t *testing.T) {
		uc := usecase.NewAuthUseCase()

		gt.Value(t, uc.CalendarForSession(ctx, "") == nil).Equal(true)
	})

	t.Run("bogus session token falls through to nothing", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(usecase.WithJWTSecret("test-secret"))

		gt.Value(t, uc.CalendarForSession(ctx, "not-a-jwt") == nil).Equal(true)
	})

	t.Run("password session yields no calendar", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(usecase.WithJWTSecret("test-secret"))
		signed, err := uc.IssueSessionToken(nil)
		gt.NoError(t, err).Required()

		gt.Value(t, uc.CalendarForSession(ctx, signed) == nil).Equal(true)
	})

	t.Run("oauth session binds a calendar client", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(usecase.WithJWTSecret("test-secret"))
		signed, err := uc.IssueSessionToken(&auth.GoogleToken{
			Token:    "access-token",
			TokenURI: "https://oauth2.googleapis.com/token",
			ClientID: "client-id",
			Scopes:   []string{"https://www.googleapis.com/auth/calendar"},
		})
		gt.NoError(t, err).Required()

		gt.Value(t, uc.CalendarForSession(ctx, signed) != nil).Equal(true)
	})

	t.Run("missing credentials file yields no calendar", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(usecase.WithCredentialsFile(filepath.Join(t.TempDir(), "no-such.json")))

		gt.Value(t, uc.CalendarForSession(ctx, "") == nil).Equal(true)
	})

	t.Run("unreadable credentials file falls through to nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		gt.NoError(t, os.WriteFile(path, []byte("not credentials"), 0600))
		uc := usecase.NewAuthUseCase(usecase.WithCredentialsFile(path))

		gt.Value(t, uc.CalendarForSession(ctx, "") == nil).Equal(true)
	})
}
