package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/edgard/halalbot/internal/errs"
)

const envPrefix = "BOT"

// Load loads and validates configuration from:
// 1. Default values
// 2. the YAML file at path, if it exists
// 3. a .env file in the working directory, if it exists
// 4. BOT_* environment variables and the legacy names in legacyEnv
//
// Missing required settings yield an errs.CodeConfig error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errs.NewConfigError("failed to read .env file", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, envName(key), legacy); err != nil {
			return nil, errs.NewConfigError("failed to bind environment", err)
		}
	}

	if err := readConfigFile(v, path); err != nil {
		return nil, errs.NewConfigError("failed to load config file", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errs.NewConfigError("failed to parse config", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cfg and reports every missing or invalid setting at once.
func Validate(cfg *Config) error {
	var problems []string

	err := validator.New().Struct(cfg)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errs.NewConfigError("invalid configuration", err)
		}
		for _, fe := range verrs {
			name := settingName(fe.Namespace())
			if fe.Tag() == "required" || fe.Tag() == "required_if" {
				problems = append(problems, name+" is required")
				continue
			}
			problems = append(problems, fmt.Sprintf("%s fails %q (value %v)", name, fe.Tag(), fe.Value()))
		}
	}

	if limit := cfg.Gemini.Timeout + PhotoDownloadTimeout; cfg.Media.MaxAge <= limit {
		problems = append(problems, fmt.Sprintf("Media.MaxAge (%s) must exceed Gemini.Timeout plus the photo download timeout (%s)", cfg.Media.MaxAge, limit))
	}

	if len(problems) == 0 {
		return nil
	}
	return errs.NewConfigError("invalid configuration: "+strings.Join(problems, "; "), err)
}

func readConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Configuration file not found, using defaults and environment", "path", path)
			return nil
		}
		return err
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// settingName renders a validator namespace such as "Config.Telegram.Token"
// as the environment variable operators set.
func settingName(namespace string) string {
	key := map[string]string{
		"Config.Telegram.Token":            "telegram.token",
		"Config.Gemini.APIKey":             "gemini.api_key",
		"Config.Database.ConnectionString": "database.connection_string",
		"Config.Database.Name":             "database.name",
	}[namespace]
	if legacy, ok := legacyEnv[key]; ok {
		return legacy
	}
	return strings.TrimPrefix(namespace, "Config.")
}
