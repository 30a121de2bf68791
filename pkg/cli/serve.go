package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/hemera/pkg/cli/config"
	httpctrl "github.com/secmon-lab/hemera/pkg/controller/http"
	"github.com/secmon-lab/hemera/pkg/repository/memory"
	"github.com/secmon-lab/hemera/pkg/service/worker"
	"github.com/secmon-lab/hemera/pkg/usecase"
	"github.com/secmon-lab/hemera/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var baseURL string
	var geminiCfg config.Gemini
	var authCfg config.Auth
	var notesCfg config.Notes
	var patternsCfg config.Patterns
	var sessionCfg config.Session
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("HEMERA_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL for the application (e.g., https://your-domain.com)",
			Sources:     cli.EnvVars("HEMERA_BASE_URL"),
			Destination: &baseURL,
		},
	}

	// Add shared config flags
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, notesCfg.Flags()...)
	flags = append(flags, patternsCfg.Flags()...)
	flags = append(flags, sessionCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sentryClose, err := sentryCfg.Configure(version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Sentry")
			}
			defer sentryClose()

			if err := sessionCfg.Validate(); err != nil {
				return goerr.Wrap(err, "invalid session configuration")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini")
			}

			noteSource, err := notesCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure note source")
			}

			catalog, err := patternsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load pattern catalog")
			}

			authUC, err := authCfg.Configure(baseURL)
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}

			if authUC.PasswordLoginEnabled() {
				logging.Default().Info("Password login enabled")
			}
			if authUC.OAuthEnabled() {
				logging.Default().Info("Google OAuth enabled")
			}

			repo := memory.New()
			chatUC := usecase.NewChatUseCase(llmClient, noteSource, repo, catalog)

			// Expire chat sessions whose connections went away without a close
			reaper := worker.NewSessionReaper(repo, sessionCfg.TTL(), sessionCfg.SweepInterval())
			if err := reaper.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start session reaper")
			}

			srv, err := httpctrl.New(chatUC, authUC)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           srv,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				reaper.Stop()

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
