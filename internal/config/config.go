package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the runtime settings, all optional with sane defaults
type Config struct {
	DataDir      string // store location; "" means the XDG data directory
	LogFile      string // zap output; "" disables file logging
	ReminderSpec string // cron spec for the reminder tick
}

// Load reads .env (if present) and the MEDTRACK_* environment
func Load(log *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using system env")
	}

	return &Config{
		DataDir:      getEnv("MEDTRACK_DATA_DIR", ""),
		LogFile:      getEnv("MEDTRACK_LOG_FILE", defaultLogFile()),
		ReminderSpec: getEnv("MEDTRACK_REMINDER_SPEC", "* * * * *"),
	}
}

func getEnv(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return fallback
}

func defaultLogFile() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = home + "/.local/state"
	}
	return dir + "/medtrack/medtrack.log"
}
