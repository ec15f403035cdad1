// Package config loads the bot configuration from defaults, an optional YAML
// file, a .env file and environment variables, and validates it.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Session   SessionConfig   `mapstructure:"session"`
	Media     MediaConfig     `mapstructure:"media"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoggerConfig controls slog output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot credential.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
}

// GeminiConfig configures the analysis backend.
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"     validate:"required"`
	Model       string        `mapstructure:"model"       validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"min=1s,max=10m"`
}

// DatabaseConfig selects and addresses the interaction store.
// A mongodb:// connection string selects MongoDB, anything else SQLite.
type DatabaseConfig struct {
	ConnectionString string `mapstructure:"connection_string" validate:"required"`
	Name             string `mapstructure:"name"              validate:"required"`
	Collection       string `mapstructure:"collection"        validate:"required"`
}

// SessionConfig selects the session store backend.
type SessionConfig struct {
	Backend   string `mapstructure:"backend"    validate:"oneof=memory redis"`
	RedisURL  string `mapstructure:"redis_url"  validate:"required_if=Backend redis"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// MediaConfig locates the temporary image artifacts. MaxAge must exceed
// Gemini.Timeout plus PhotoDownloadTimeout, otherwise media_cleanup can remove
// a photo that is still being analyzed.
type MediaConfig struct {
	Dir    string        `mapstructure:"dir"     validate:"required"`
	MaxAge time.Duration `mapstructure:"max_age" validate:"min=1m"`
}

// SchedulerConfig lists the scheduled tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a task and sets its cron schedule (with seconds).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}
