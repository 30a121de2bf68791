package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/hemera/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// Patterns holds the prompt pattern catalog configuration
type Patterns struct {
	path string
}

func (x *Patterns) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "pattern-file",
			Usage:       "TOML file with prompt patterns (replaces built-ins by name, appends new ones)",
			Category:    "Chat",
			Sources:     cli.EnvVars("HEMERA_PATTERN_FILE"),
			Destination: &x.path,
		},
	}
}

func (x Patterns) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("pattern-file", x.path),
	)
}

// patternFile is the TOML shape of a pattern catalog override
type patternFile struct {
	Patterns []patternEntry `toml:"pattern"`
}

type patternEntry struct {
	Name   string `toml:"name"`
	Prompt string `toml:"prompt"`
}

// Configure returns the pattern catalog, merging entries from the
// configured file over the built-in set. A file entry with a known name
// replaces that pattern's prompt; new names are appended.
func (x *Patterns) Configure() (*domainConfig.PatternCatalog, error) {
	catalog := domainConfig.DefaultPatternCatalog()
	if x.path == "" {
		return catalog, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read pattern file", goerr.V(ConfigPathKey, x.path))
	}

	var file patternFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML pattern file", goerr.V(ConfigPathKey, x.path))
	}

	seen := make(map[string]bool)
	for _, entry := range file.Patterns {
		if entry.Name == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "pattern name is required", goerr.V(ConfigPathKey, x.path))
		}
		if entry.Name == domainConfig.DefaultPatternName {
			return nil, goerr.Wrap(ErrInvalidConfig, "pattern name is reserved", goerr.V(PatternKey, entry.Name))
		}
		if entry.Prompt == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "pattern prompt is required", goerr.V(PatternKey, entry.Name))
		}
		if seen[entry.Name] {
			return nil, goerr.Wrap(ErrInvalidConfig, "duplicate pattern name", goerr.V(PatternKey, entry.Name))
		}
		seen[entry.Name] = true

		replaced := false
		for i := range catalog.Patterns {
			if catalog.Patterns[i].Name == entry.Name {
				catalog.Patterns[i].Prompt = entry.Prompt
				replaced = true
				break
			}
		}
		if !replaced {
			catalog.Patterns = append(catalog.Patterns, domainConfig.Pattern{
				Name:   entry.Name,
				Prompt: entry.Prompt,
			})
		}
	}

	return catalog, nil
}
