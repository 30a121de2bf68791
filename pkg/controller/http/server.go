package http

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hemera/frontend"
	"github.com/secmon-lab/hemera/pkg/usecase"
	"github.com/secmon-lab/hemera/pkg/utils/logging"
	"github.com/secmon-lab/hemera/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
}

// New builds the HTTP surface: JSON endpoints under /api, the chat
// websocket at /ws and the embedded UI as catch-all.
func New(chatUC *usecase.ChatUseCase, authUC *usecase.AuthUseCase) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/patterns", patternsHandler(chatUC))
		r.Post("/login", loginHandler(authUC))

		r.Route("/auth", func(r chi.Router) {
			r.Get("/status", authStatusHandler(authUC))
			r.Get("/google", oauthLoginHandler(authUC))
			r.Get("/callback", oauthCallbackHandler(authUC))
			r.Post("/logout", logoutHandler())
		})
	})

	// Chat endpoint (must be registered before the catch-all route)
	r.Get("/ws", wsHandler(chatUC, authUC))

	// Static file serving for the chat UI (catch-all, must be last)
	staticFS, err := fs.Sub(frontend.StaticFiles, "dist")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to bind dist dir for static")
	}

	r.Get("/*", spaHandler(staticFS))

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// healthHandler reports process liveness
func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, statusResponse{Status: "ok"})
	}
}

// patternsHandler serves the prompt pattern names as a JSON array
func patternsHandler(chatUC *usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, chatUC.PatternNames())
	}
}

// spaHandler serves the embedded UI, falling back to index.html for
// client-side routes.
func spaHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(r.URL.Path, "/")

		if urlPath == "" {
			urlPath = "index.html"
		}

		if file, err := staticFS.Open(urlPath); err != nil {
			// File not found, serve index.html for SPA routing
			if indexFile, err := staticFS.Open("index.html"); err == nil {
				defer safe.Close(r.Context(), indexFile)
				w.Header().Set("Content-Type", "text/html")
				safe.Copy(r.Context(), w, indexFile)
				return
			}

			http.NotFound(w, r)
			return
		} else {
			safe.Close(r.Context(), file)
		}

		fileServer.ServeHTTP(w, r)
	}
}
