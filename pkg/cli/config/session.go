package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Session holds chat session registry configuration
type Session struct {
	ttl           time.Duration
	sweepInterval time.Duration
}

func (x *Session) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Idle time after which an abandoned chat session is pruned",
			Category:    "Chat",
			Value:       time.Hour,
			Sources:     cli.EnvVars("HEMERA_SESSION_TTL"),
			Destination: &x.ttl,
		},
		&cli.DurationFlag{
			Name:        "session-sweep-interval",
			Usage:       "How often the session registry is swept for idle sessions",
			Category:    "Chat",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("HEMERA_SESSION_SWEEP_INTERVAL"),
			Destination: &x.sweepInterval,
		},
	}
}

func (x Session) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("ttl", x.ttl),
		slog.Duration("sweep-interval", x.sweepInterval),
	)
}

// Validate checks the sweep timings
func (x *Session) Validate() error {
	if x.ttl <= 0 {
		return goerr.New("session-ttl must be positive", goerr.V("ttl", x.ttl))
	}
	if x.sweepInterval <= 0 {
		return goerr.New("session-sweep-interval must be positive", goerr.V("interval", x.sweepInterval))
	}
	return nil
}

// TTL returns the idle cutoff for chat sessions
func (x *Session) TTL() time.Duration {
	return x.ttl
}

// SweepInterval returns how often idle sessions are pruned
func (x *Session) SweepInterval() time.Duration {
	return x.sweepInterval
}
