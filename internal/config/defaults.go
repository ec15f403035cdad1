package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = true

	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultGeminiTemperature = 0.1
	DefaultGeminiTimeout     = 2 * time.Minute

	DefaultDatabaseCollection = "meat_check"

	DefaultSessionBackend   = "memory"
	DefaultSessionKeyPrefix = "halalbot:session:"

	DefaultMediaDir    = "media"
	DefaultMediaMaxAge = time.Hour

	// PhotoDownloadTimeout bounds fetching one photo from Telegram.
	PhotoDownloadTimeout = 30 * time.Second

	DefaultMediaCleanupSchedule   = "0 */15 * * * *"
	DefaultSQLMaintenanceSchedule = "0 0 4 * * *"
)

// legacyEnv maps configuration keys to the environment variable names the
// bot has always been deployed with. BOT_-prefixed names work as well.
var legacyEnv = map[string]string{
	"telegram.token":             "BOT_TOKEN",
	"gemini.api_key":             "GEMINI_API",
	"database.connection_string": "CONNECTION_STRING",
	"database.name":              "DB_NAME",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	v.SetDefault("gemini.model", DefaultGeminiModel)
	v.SetDefault("gemini.temperature", DefaultGeminiTemperature)
	v.SetDefault("gemini.timeout", DefaultGeminiTimeout)

	v.SetDefault("database.collection", DefaultDatabaseCollection)

	v.SetDefault("session.backend", DefaultSessionBackend)
	v.SetDefault("session.redis_url", "")
	v.SetDefault("session.key_prefix", DefaultSessionKeyPrefix)

	v.SetDefault("media.dir", DefaultMediaDir)
	v.SetDefault("media.max_age", DefaultMediaMaxAge)

	v.SetDefault("scheduler.tasks.media_cleanup.enabled", true)
	v.SetDefault("scheduler.tasks.media_cleanup.schedule", DefaultMediaCleanupSchedule)
	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", DefaultSQLMaintenanceSchedule)
}
