package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/hemera/pkg/controller/http"
	"github.com/secmon-lab/hemera/pkg/domain/model/config"
	"github.com/secmon-lab/hemera/pkg/repository/memory"
	"github.com/secmon-lab/hemera/pkg/usecase"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{
		Texts: []string{"This is a test reply from the assistant."},
	}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// testNoteSource is a canned NoteSource for server tests
type testNoteSource struct{}

func (testNoteSource) RecentNotes(ctx context.Context, count int) (string, error) {
	return "No notes found.", nil
}

// setupServer builds the HTTP surface around in-memory dependencies
func setupServer(t *testing.T, llm gollem.LLMClient, authOpts ...usecase.AuthOption) (*httptest.Server, *memory.Repository) {
	t.Helper()

	repo := memory.New()
	chatUC := usecase.NewChatUseCase(llm, testNoteSource{}, repo, config.DefaultPatternCatalog())
	authUC := usecase.NewAuthUseCase(authOpts...)

	srv, err := httpctrl.New(chatUC, authUC)
	gt.NoError(t, err).Required()

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return ts, repo
}

// noRedirectClient returns the first response instead of following redirects
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	gt.NoError(t, err).Required()
	return string(body)
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealth(t *testing.T) {
	ts, _ := setupServer(t, &mockLLMClient{})

	resp, err := http.Get(ts.URL + "/health")
	gt.NoError(t, err).Required()
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	var status struct {
		Status string `json:"status"`
	}
	gt.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &status))
	gt.Value(t, status.Status).Equal("ok")
}

func TestPatterns(t *testing.T) {
	ts, _ := setupServer(t, &mockLLMClient{})

	resp, err := http.Get(ts.URL + "/api/patterns")
	gt.NoError(t, err).Required()
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	var names []string
	gt.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &names))
	gt.Array(t, names).Length(6)
	gt.Value(t, names[0]).Equal("No pattern")
}

func TestLogin(t *testing.T) {
	t.Run("404 when password login is disabled", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{})

		resp, err := http.PostForm(ts.URL+"/api/login", url.Values{"password": {"anything"}})
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
		gt.Value(t, strings.Contains(readBody(t, resp), "Password login disabled")).Equal(true)
	})

	t.Run("401 on wrong password", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{}, usecase.WithMasterPassword("open-sesame"))

		resp, err := http.PostForm(ts.URL+"/api/login", url.Values{"password": {"open-says-me"}})
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusUnauthorized)
		gt.Value(t, strings.Contains(readBody(t, resp), "Invalid password")).Equal(true)
	})

	t.Run("issues session cookie on success", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{}, usecase.WithMasterPassword("open-sesame"))

		resp, err := http.PostForm(ts.URL+"/api/login", url.Values{"password": {"open-sesame"}})
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var status struct {
			Status string `json:"status"`
		}
		gt.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &status))
		gt.Value(t, status.Status).Equal("ok")

		cookie := findCookie(resp.Cookies(), "Auth")
		gt.Value(t, cookie != nil).Equal(true)
		gt.Value(t, cookie.Value != "").Equal(true)
		gt.Value(t, cookie.HttpOnly).Equal(true)
		gt.Value(t, cookie.Path).Equal("/")
	})
}

func TestAuthStatus(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{})

		resp, err := http.Get(ts.URL + "/api/auth/status")
		gt.NoError(t, err).Required()

		var status struct {
			PasswordLogin bool `json:"password_login"`
			OAuth         bool `json:"oauth"`
		}
		gt.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &status))
		gt.Value(t, status.PasswordLogin).Equal(false)
		gt.Value(t, status.OAuth).Equal(false)
	})

	t.Run("both methods configured", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{},
			usecase.WithMasterPassword("open-sesame"),
			usecase.WithGoogleOAuth("client-id", "client-secret", "http://localhost:8080/api/auth/callback"),
		)

		resp, err := http.Get(ts.URL + "/api/auth/status")
		gt.NoError(t, err).Required()

		var status struct {
			PasswordLogin bool `json:"password_login"`
			OAuth         bool `json:"oauth"`
		}
		gt.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &status))
		gt.Value(t, status.PasswordLogin).Equal(true)
		gt.Value(t, status.OAuth).Equal(true)
	})
}

func TestOAuthLogin(t *testing.T) {
	t.Run("404 when oauth is not configured", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{})

		resp, err := noRedirectClient().Get(ts.URL + "/api/auth/google")
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
		gt.Value(t, strings.Contains(readBody(t, resp), "OAuth not configured")).Equal(true)
	})

	t.Run("redirects to consent page with state cookie", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{},
			usecase.WithGoogleOAuth("client-id", "client-secret", "http://localhost:8080/api/auth/callback"),
		)

		resp, err := noRedirectClient().Get(ts.URL + "/api/auth/google")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusTemporaryRedirect)

		location, err := url.Parse(resp.Header.Get("Location"))
		gt.NoError(t, err).Required()
		gt.Value(t, location.Host).Equal("accounts.google.com")

		state := location.Query().Get("state")
		gt.Value(t, state != "").Equal(true)

		cookie := findCookie(resp.Cookies(), "oauth_state")
		gt.Value(t, cookie != nil).Equal(true)
		gt.Value(t, cookie.Value).Equal(state)
	})
}

func TestOAuthCallback(t *testing.T) {
	t.Run("404 when oauth is not configured", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{})

		resp, err := noRedirectClient().Get(ts.URL + "/api/auth/callback?code=x")
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
		resp.Body.Close()
	})

	t.Run("400 on state mismatch", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{},
			usecase.WithGoogleOAuth("client-id", "client-secret", "http://localhost:8080/api/auth/callback"),
		)

		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/auth/callback?state=bbb&code=x", nil)
		gt.NoError(t, err).Required()
		req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "aaa"})

		resp, err := noRedirectClient().Do(req)
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
		gt.Value(t, strings.Contains(readBody(t, resp), "State mismatch")).Equal(true)
	})

	t.Run("400 on provider error", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{},
			usecase.WithGoogleOAuth("client-id", "client-secret", "http://localhost:8080/api/auth/callback"),
		)

		resp, err := noRedirectClient().Get(ts.URL + "/api/auth/callback?error=access_denied")
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
		gt.Value(t, strings.Contains(readBody(t, resp), "OAuth error: access_denied")).Equal(true)
	})
}

func TestLogout(t *testing.T) {
	ts, _ := setupServer(t, &mockLLMClient{})

	resp, err := http.Post(ts.URL+"/api/auth/logout", "", nil)
	gt.NoError(t, err).Required()
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	resp.Body.Close()

	cookie := findCookie(resp.Cookies(), "Auth")
	gt.Value(t, cookie != nil).Equal(true)
	gt.Value(t, cookie.Value).Equal("")
	gt.Value(t, cookie.MaxAge < 0).Equal(true)
}

func TestStaticUI(t *testing.T) {
	t.Run("serves the chat page", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{})

		resp, err := http.Get(ts.URL + "/")
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, strings.Contains(resp.Header.Get("Content-Type"), "text/html")).Equal(true)
		gt.Value(t, strings.Contains(readBody(t, resp), "<title>Hemera</title>")).Equal(true)
	})

	t.Run("unknown paths fall back to the chat page", func(t *testing.T) {
		ts, _ := setupServer(t, &mockLLMClient{})

		resp, err := http.Get(ts.URL + "/no-such-page")
		gt.NoError(t, err).Required()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, strings.Contains(readBody(t, resp), "<title>Hemera</title>")).Equal(true)
	})
}
