package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hemera/pkg/domain/interfaces"
	"github.com/secmon-lab/hemera/pkg/service/notes"
	"github.com/urfave/cli/v3"
)

// Notes holds the note directory configuration
type Notes struct {
	dir string
}

func (x *Notes) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "notes-dir",
			Usage:       "Directory holding dated note files (YYYY-MM-DD.md)",
			Category:    "Notes",
			Sources:     cli.EnvVars("HEMERA_NOTES_DIR"),
			Destination: &x.dir,
		},
	}
}

func (x Notes) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", x.dir),
	)
}

// Configure builds the note source. The directory does not need to exist
// yet, but it must be configured.
func (x *Notes) Configure() (interfaces.NoteSource, error) {
	if x.dir == "" {
		return nil, goerr.New("notes-dir is required")
	}

	return notes.New(x.dir), nil
}
