package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Learning LearningConfig `mapstructure:"learning" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
	Events   EventsConfig   `mapstructure:"events" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// AuthConfig contains bearer token settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// LearningConfig holds the session sizes and admission limits.
type LearningConfig struct {
	DailyLearnLimit            int           `mapstructure:"daily_learn_limit" validate:"gt=0"`
	P1UpcomingLimit            int           `mapstructure:"p1_upcoming_limit" validate:"gt=0"`
	P1UpcomingWindow           time.Duration `mapstructure:"p1_upcoming_window" validate:"gt=0"`
	LearnSessionSize           int           `mapstructure:"learn_session_size" validate:"gt=0"`
	PracticeSessionSize        int           `mapstructure:"practice_session_size" validate:"gt=0"`
	ReviewMinWords             int           `mapstructure:"review_min_words" validate:"gt=0"`
	ReviewMaxWords             int           `mapstructure:"review_max_words" validate:"gtefield=ReviewMinWords"`
	OptionsCount               int           `mapstructure:"options_count" validate:"gte=2"`
	UpcomingWindow             time.Duration `mapstructure:"upcoming_window" validate:"gt=0"`
	LevelAnalysisWordsPerLevel int           `mapstructure:"level_analysis_words_per_level" validate:"gt=0"`
}

// ScheduleConfig is the fixed delay table of the pool state machine.
type ScheduleConfig struct {
	P1               time.Duration `mapstructure:"p1" validate:"gt=0"`
	P2               time.Duration `mapstructure:"p2" validate:"gt=0"`
	P3               time.Duration `mapstructure:"p3" validate:"gt=0"`
	P4               time.Duration `mapstructure:"p4" validate:"gt=0"`
	P5               time.Duration `mapstructure:"p5" validate:"gt=0"`
	P6               time.Duration `mapstructure:"p6" validate:"gt=0"`
	ReviewDisplay    time.Duration `mapstructure:"review_display" validate:"gt=0"`
	RemedialPractice time.Duration `mapstructure:"remedial_practice" validate:"gt=0"`
}

// EventsConfig sizes the background delivery of progress events.
type EventsConfig struct {
	Workers         int           `mapstructure:"workers" validate:"gt=0"`
	QueueSize       int           `mapstructure:"queue_size" validate:"gt=0"`
	HandlerTimeout  time.Duration `mapstructure:"handler_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}
