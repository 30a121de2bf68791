package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hemera/pkg/cli/config"
	domainConfig "github.com/secmon-lab/hemera/pkg/domain/model/config"
)

func writePatternFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patterns.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestPatterns_Configure(t *testing.T) {
	t.Run("returns built-ins when no file is given", func(t *testing.T) {
		catalog, err := config.NewPatternsForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, len(catalog.Patterns)).Equal(6)
		gt.Value(t, catalog.Names()[0]).Equal(domainConfig.DefaultPatternName)
	})

	t.Run("replaces known prompts and appends new ones", func(t *testing.T) {
		path := writePatternFile(t, `
[[pattern]]
name = "Plan Day"
prompt = "Plan tomorrow instead."

[[pattern]]
name = "Weekly Review"
prompt = "Summarize what happened this week."
`)
		catalog, err := config.NewPatternsForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, len(catalog.Patterns)).Equal(7)
		gt.Value(t, catalog.Prompt("Plan Day")).Equal("Plan tomorrow instead.")
		gt.Value(t, catalog.Prompt("Weekly Review")).Equal("Summarize what happened this week.")
	})

	t.Run("rejects the reserved name", func(t *testing.T) {
		path := writePatternFile(t, `
[[pattern]]
name = "No pattern"
prompt = "Do nothing."
`)
		_, err := config.NewPatternsForTest(path).Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		path := writePatternFile(t, `
[[pattern]]
name = "Weekly Review"
prompt = "First."

[[pattern]]
name = "Weekly Review"
prompt = "Second."
`)
		_, err := config.NewPatternsForTest(path).Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("rejects an empty prompt", func(t *testing.T) {
		path := writePatternFile(t, `
[[pattern]]
name = "Weekly Review"
prompt = ""
`)
		_, err := config.NewPatternsForTest(path).Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("fails when the file is missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.toml")
		_, err := config.NewPatternsForTest(path).Configure()
		gt.Error(t, err)
	})

	t.Run("fails on malformed TOML", func(t *testing.T) {
		path := writePatternFile(t, `not = [toml`)
		_, err := config.NewPatternsForTest(path).Configure()
		gt.Error(t, err)
	})
}
