package auth_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hemera/pkg/domain/model/auth"
	"golang.org/x/oauth2"
)

func TestNewGoogleToken(t *testing.T) {
	cfg := &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       []string{"https://www.googleapis.com/auth/calendar"},
	}

	t.Run("granted scopes win over requested", func(t *testing.T) {
		tok := (&oauth2.Token{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
		}).WithExtra(map[string]interface{}{
			"scope": "https://www.googleapis.com/auth/calendar openid email",
		})

		got := auth.NewGoogleToken(tok, cfg)

		gt.Value(t, got.Token).Equal("access-token")
		gt.Value(t, got.RefreshToken).Equal("refresh-token")
		gt.Value(t, got.TokenURI).Equal("https://oauth2.googleapis.com/token")
		gt.Value(t, got.ClientID).Equal("client-id")
		gt.Value(t, got.ClientSecret).Equal("client-secret")
		gt.Value(t, got.Scopes).Equal([]string{
			"https://www.googleapis.com/auth/calendar",
			"openid",
			"email",
		})
	})

	t.Run("falls back to requested scopes", func(t *testing.T) {
		got := auth.NewGoogleToken(&oauth2.Token{AccessToken: "access-token"}, cfg)

		gt.Value(t, got.Scopes).Equal([]string{"https://www.googleapis.com/auth/calendar"})
	})
}

func TestGoogleTokenConverters(t *testing.T) {
	src := &auth.GoogleToken{
		Token:        "access-token",
		RefreshToken: "refresh-token",
		TokenURI:     "https://oauth2.googleapis.com/token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       []string{"https://www.googleapis.com/auth/calendar"},
	}

	tok := src.OAuth2Token()
	gt.Value(t, tok.AccessToken).Equal("access-token")
	gt.Value(t, tok.RefreshToken).Equal("refresh-token")

	cfg := src.OAuth2Config()
	gt.Value(t, cfg.ClientID).Equal("client-id")
	gt.Value(t, cfg.ClientSecret).Equal("client-secret")
	gt.Value(t, cfg.Endpoint.TokenURL).Equal("https://oauth2.googleapis.com/token")
	gt.Value(t, cfg.Scopes).Equal([]string{"https://www.googleapis.com/auth/calendar"})
}
