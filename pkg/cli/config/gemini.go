package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"
)

// Gemini holds configuration for the Gemini LLM client
type Gemini struct {
	projectID string
	location  string
}

// Flags returns CLI flags for Gemini configuration
func (x *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Category:    "Gemini",
			Sources:     cli.EnvVars("HEMERA_GEMINI_PROJECT"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Category:    "Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("HEMERA_GEMINI_LOCATION"),
			Destination: &x.location,
		},
	}
}

func (x Gemini) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("project_id", x.projectID),
		slog.String("location", x.location),
	)
}

// Configure creates the Gemini LLM client. The chat agent cannot run
// without one, so a missing project ID is an error.
func (x *Gemini) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if x.projectID == "" {
		return nil, goerr.New("gemini-project is required")
	}

	client, err := gemini.New(ctx, x.projectID, x.location)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}

	return client, nil
}
