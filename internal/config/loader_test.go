package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/halalbot/internal/config"
	"github.com/edgard/halalbot/internal/errs"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123456:telegram-token")
	t.Setenv("GEMINI_API", "gemini-key")
	t.Setenv("CONNECTION_STRING", "sqlite://halal.db")
	t.Setenv("DB_NAME", "halal")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "123456:telegram-token", cfg.Telegram.Token)
	assert.Equal(t, "gemini-key", cfg.Gemini.APIKey)
	assert.Equal(t, "sqlite://halal.db", cfg.Database.ConnectionString)
	assert.Equal(t, "halal", cfg.Database.Name)

	assert.Equal(t, config.DefaultLogLevel, cfg.Logger.Level)
	assert.Equal(t, config.DefaultGeminiModel, cfg.Gemini.Model)
	assert.Equal(t, config.DefaultGeminiTimeout, cfg.Gemini.Timeout)
	assert.Equal(t, config.DefaultDatabaseCollection, cfg.Database.Collection)
	assert.Equal(t, config.DefaultSessionBackend, cfg.Session.Backend)
	assert.Equal(t, config.DefaultMediaDir, cfg.Media.Dir)

	require.Contains(t, cfg.Scheduler.Tasks, "media_cleanup")
	assert.True(t, cfg.Scheduler.Tasks["media_cleanup"].Enabled)
	assert.Equal(t, config.DefaultMediaCleanupSchedule, cfg.Scheduler.Tasks["media_cleanup"].Schedule)
	require.Contains(t, cfg.Scheduler.Tasks, "sql_maintenance")
}

func TestLoad_PrefixedEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_TELEGRAM_TOKEN", "prefixed-token")
	t.Setenv("BOT_GEMINI_TIMEOUT", "45s")
	t.Setenv("BOT_LOG_LEVEL", "debug")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "prefixed-token", cfg.Telegram.Token)
	assert.Equal(t, 45*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_File(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
gemini:
  model: gemini-2.5-pro
session:
  backend: redis
  redis_url: redis://localhost:6379/0
scheduler:
  tasks:
    sql_maintenance:
      enabled: false
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Session.RedisURL)
	assert.False(t, cfg.Scheduler.Tasks["sql_maintenance"].Enabled)
	assert.Equal(t, config.DefaultSQLMaintenanceSchedule, cfg.Scheduler.Tasks["sql_maintenance"].Schedule)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("GEMINI_API", "")
	t.Setenv("CONNECTION_STRING", "")
	t.Setenv("DB_NAME", "")

	_, err := config.Load("")
	require.Error(t, err)
	assert.Equal(t, errs.CodeConfig, errs.Code(err))
	for _, name := range []string{"BOT_TOKEN", "GEMINI_API", "CONNECTION_STRING", "DB_NAME"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestValidate_RedisRequiresURL(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Logger:   config.LoggerConfig{Level: "info"},
		Telegram: config.TelegramConfig{Token: "t"},
		Gemini:   config.GeminiConfig{APIKey: "k", Model: "m", Timeout: time.Minute},
		Database: config.DatabaseConfig{ConnectionString: "c", Name: "n", Collection: "meat_check"},
		Session:  config.SessionConfig{Backend: "redis"},
		Media:    config.MediaConfig{Dir: "media", MaxAge: time.Hour},
	}

	err := config.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Session.RedisURL is required")

	cfg.Session.RedisURL = "redis://localhost:6379"
	require.NoError(t, config.Validate(cfg))
}

func TestValidate_MediaMaxAgeOutlivesAnalysis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
		maxAge  time.Duration
		wantErr bool
	}{
		{name: "defaults", timeout: config.DefaultGeminiTimeout, maxAge: config.DefaultMediaMaxAge},
		{name: "minimum max_age with short timeout", timeout: 20 * time.Second, maxAge: time.Minute},
		{name: "max_age equal to timeout plus download", timeout: 30 * time.Second, maxAge: time.Minute, wantErr: true},
		{name: "max_age below gemini timeout", timeout: 5 * time.Minute, maxAge: 2 * time.Minute, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{
				Logger:   config.LoggerConfig{Level: "info"},
				Telegram: config.TelegramConfig{Token: "t"},
				Gemini:   config.GeminiConfig{APIKey: "k", Model: "m", Timeout: tt.timeout},
				Database: config.DatabaseConfig{ConnectionString: "c", Name: "n", Collection: "meat_check"},
				Session:  config.SessionConfig{Backend: "memory"},
				Media:    config.MediaConfig{Dir: "media", MaxAge: tt.maxAge},
			}

			err := config.Validate(cfg)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errs.CodeConfig, errs.Code(err))
			assert.Contains(t, err.Error(), "Media.MaxAge")
		})
	}
}
