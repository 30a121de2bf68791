package config_test

import (
	"net/url"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hemera/pkg/cli/config"
)

func TestAuth_Configure(t *testing.T) {
	t.Run("password login only", func(t *testing.T) {
		cfg := config.NewAuthForTest("hunter2", "", "", "")
		uc, err := cfg.Configure("")
		gt.NoError(t, err).Required()
		gt.Value(t, uc.PasswordLoginEnabled()).Equal(true)
		gt.Value(t, uc.OAuthEnabled()).Equal(false)
	})

	t.Run("rejects partial OAuth credentials", func(t *testing.T) {
		cfg := config.NewAuthForTest("", "client-id", "", "")
		_, err := cfg.Configure("https://example.com")
		gt.Error(t, err)
	})

	t.Run("requires base URL for OAuth", func(t *testing.T) {
		cfg := config.NewAuthForTest("", "client-id", "client-secret", "")
		_, err := cfg.Configure("")
		gt.Error(t, err)
	})

	t.Run("composes the OAuth redirect URL from the base URL", func(t *testing.T) {
		cfg := config.NewAuthForTest("", "client-id", "client-secret", "")
		uc, err := cfg.Configure("https://example.com")
		gt.NoError(t, err).Required()
		gt.Value(t, uc.OAuthEnabled()).Equal(true)

		authURL, err := url.Parse(uc.AuthCodeURL("state"))
		gt.NoError(t, err).Required()
		gt.Value(t, authURL.Query().Get("redirect_uri")).Equal("https://example.com/api/auth/callback")
	})
}
