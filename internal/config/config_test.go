package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MEDTRACK_DATA_DIR", "/tmp/medtrack-test")
	t.Setenv("MEDTRACK_LOG_FILE", "/tmp/medtrack-test/app.log")
	t.Setenv("MEDTRACK_REMINDER_SPEC", "*/5 * * * *")

	cfg := Load(zap.NewNop())
	assert.Equal(t, "/tmp/medtrack-test", cfg.DataDir)
	assert.Equal(t, "/tmp/medtrack-test/app.log", cfg.LogFile)
	assert.Equal(t, "*/5 * * * *", cfg.ReminderSpec)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	cfg := Load(zap.NewNop())
	assert.Empty(t, cfg.DataDir)
	assert.Equal(t, "/tmp/state/medtrack/medtrack.log", cfg.LogFile)
	assert.Equal(t, "* * * * *", cfg.ReminderSpec)
}
