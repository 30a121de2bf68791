package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration
type Sentry struct {
	dsn string
	env string
}

func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (empty disables reporting)",
			Category:    "Monitoring",
			Sources:     cli.EnvVars("HEMERA_SENTRY_DSN"),
			Destination: &x.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Environment name attached to Sentry events",
			Category:    "Monitoring",
			Sources:     cli.EnvVars("HEMERA_SENTRY_ENV"),
			Destination: &x.env,
		},
	}
}

func (x Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("dsn.len", len(x.dsn)),
		slog.String("env", x.env),
	)
}

// Configure initializes the Sentry SDK. The returned closer flushes
// buffered events, so call it on shutdown.
func (x *Sentry) Configure(version string) (func(), error) {
	if x.dsn == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.env,
		Release:     version,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize Sentry")
	}

	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}
