package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hemera/pkg/usecase"
	"github.com/secmon-lab/hemera/pkg/utils/errutil"
)

const (
	// authCookieName carries the signed session token
	authCookieName = "Auth"
	// stateCookieName pins the OAuth state between redirect and callback
	stateCookieName = "oauth_state"
)

type statusResponse struct {
	Status string `json:"status"`
}

type authStatusResponse struct {
	PasswordLogin bool `json:"password_login"`
	OAuth         bool `json:"oauth"`
}

// generateState generates a random state parameter for OAuth
func generateState() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", goerr.Wrap(err, "failed to generate random state")
	}
	return hex.EncodeToString(bytes), nil
}

// authCookie builds the session cookie. No expiry, the browser drops it
// when the session ends.
func authCookie(r *http.Request, value string) *http.Cookie {
	return &http.Cookie{
		Name:     authCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}

// authStatusHandler tells the UI which login methods are available
func authStatusHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, authStatusResponse{
			PasswordLogin: authUC.PasswordLoginEnabled(),
			OAuth:         authUC.OAuthEnabled(),
		})
	}
}

// loginHandler issues a session cookie for a master password login
func loginHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := authUC.VerifyPassword(r.FormValue("password")); err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, usecase.ErrPasswordLoginDisabled) {
				status = http.StatusNotFound
			}
			errutil.HandleHTTP(r.Context(), w, err, status)
			return
		}

		signed, err := authUC.IssueSessionToken(nil)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, authCookie(r, signed))
		writeJSON(r.Context(), w, http.StatusOK, statusResponse{Status: "ok"})
	}
}

// oauthLoginHandler redirects to the Google consent page
func oauthLoginHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authUC.OAuthEnabled() {
			errutil.HandleHTTP(r.Context(), w, usecase.ErrOAuthNotConfigured, http.StatusNotFound)
			return
		}

		// Generate state parameter to prevent CSRF
		state, err := generateState()
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		stateCookie := &http.Cookie{
			Name:     stateCookieName,
			Value:    state,
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   600, // 10 minutes
		}
		http.SetCookie(w, stateCookie)

		http.Redirect(w, r, authUC.AuthCodeURL(state), http.StatusTemporaryRedirect)
	}
}

// oauthCallbackHandler finishes the OAuth flow and issues the session cookie
func oauthCallbackHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if !authUC.OAuthEnabled() {
			errutil.HandleHTTP(ctx, w, usecase.ErrOAuthNotConfigured, http.StatusNotFound)
			return
		}

		// The state check is tolerant: it only fails when both sides
		// present a state and they differ.
		incoming := r.URL.Query().Get("state")
		if c, err := r.Cookie(stateCookieName); err == nil && c.Value != "" && incoming != "" && c.Value != incoming {
			errutil.HandleHTTP(ctx, w, goerr.New("State mismatch"), http.StatusBadRequest)
			return
		}

		// Providers report user denial and other failures via the error param
		if errParam := r.URL.Query().Get("error"); errParam != "" {
			errutil.HandleHTTP(ctx, w, goerr.New("OAuth error: "+errParam), http.StatusBadRequest)
			return
		}

		googleToken, err := authUC.HandleOAuthCallback(ctx, r.URL.Query().Get("code"))
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		signed, err := authUC.IssueSessionToken(googleToken)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		// Clear state cookie
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})

		http.SetCookie(w, authCookie(r, signed))
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
	}
}

// logoutHandler drops the session cookie
func logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     authCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})

		writeJSON(r.Context(), w, http.StatusOK, statusResponse{Status: "ok"})
	}
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}
