package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. COACH_SERVER_PORT.
const EnvPrefix = "COACH"

// defaults lists every known key. Viper only maps environment variables onto
// keys it knows about, so keys without a sensible default are bound explicitly.
var defaults = map[string]any{
	"server.port":             8080,
	"server.log_level":        "info",
	"server.shutdown_timeout": "15s",

	"database.max_open_conns":    10,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": "30m",

	"auth.token_lifetime_minutes": 60 * 24 * 30,

	"learning.daily_learn_limit":              50,
	"learning.p1_upcoming_limit":              10,
	"learning.p1_upcoming_window":             "10m",
	"learning.learn_session_size":             5,
	"learning.practice_session_size":          5,
	"learning.review_min_words":               3,
	"learning.review_max_words":               5,
	"learning.options_count":                  4,
	"learning.upcoming_window":                "24h",
	"learning.level_analysis_words_per_level": 10,

	"schedule.p1":                "10m",
	"schedule.p2":                "20h",
	"schedule.p3":                "48h",
	"schedule.p4":                "96h",
	"schedule.p5":                "168h",
	"schedule.p6":                "336h",
	"schedule.review_display":    "1h",
	"schedule.remedial_practice": "20h",

	"events.workers":          2,
	"events.queue_size":       100,
	"events.handler_timeout":  "10s",
	"events.shutdown_timeout": "5s",
}

var requiredKeys = []string{"database.url", "auth.jwt_secret"}

// Load reads configuration from a .env file in the working directory (when
// present), an optional config.yaml, and COACH_* environment variables.
// Environment variables take precedence over the config file.
func Load() (*Config, error) {
	return LoadFromEnvFile(".env")
}

// LoadFromEnvFile is Load with an explicit dotenv path. A missing file is not
// an error; variables already set in the environment are never overridden.
func LoadFromEnvFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range requiredKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
