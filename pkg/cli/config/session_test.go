package config_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hemera/pkg/cli/config"
)

func TestSession_Validate(t *testing.T) {
	t.Run("accepts positive timings", func(t *testing.T) {
		cfg := config.NewSessionForTest(time.Hour, 5*time.Minute)
		gt.NoError(t, cfg.Validate())
		gt.Value(t, cfg.TTL()).Equal(time.Hour)
		gt.Value(t, cfg.SweepInterval()).Equal(5 * time.Minute)
	})

	t.Run("rejects a non-positive TTL", func(t *testing.T) {
		cfg := config.NewSessionForTest(0, 5*time.Minute)
		gt.Error(t, cfg.Validate())
	})

	t.Run("rejects a non-positive sweep interval", func(t *testing.T) {
		cfg := config.NewSessionForTest(time.Hour, 0)
		gt.Error(t, cfg.Validate())
	})
}
