package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database     DatabaseConfig     `mapstructure:"database"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Study        StudyConfig        `mapstructure:"study"`
	Speech       SpeechConfig       `mapstructure:"speech"`
	Notification NotificationConfig `mapstructure:"notification"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=sqlite3 mysql"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite3"`
	Host            string            `mapstructure:"host" validate:"required_if=Driver mysql"`
	Port            int               `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Database        string            `mapstructure:"database" validate:"required_if=Driver mysql"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"min=0"`
	ConnectAttempts uint              `mapstructure:"connect_attempts" validate:"min=1"`
}

type StorageConfig struct {
	DataDirectory string `mapstructure:"data_directory" validate:"required"`
	StateFile     string `mapstructure:"state_file" validate:"required"`
}

// StatePath returns the state file location, resolved against the data directory when relative.
func (c StorageConfig) StatePath() string {
	if filepath.IsAbs(c.StateFile) {
		return c.StateFile
	}
	return filepath.Join(c.DataDirectory, c.StateFile)
}

type StudyConfig struct {
	WordGroup               string  `mapstructure:"word_group" validate:"oneof=all new learning reviewing mastered favorites difficult"`
	QuizMode                string  `mapstructure:"quiz_mode" validate:"oneof=flashcards multiple_choice dictation auto_play"`
	QuestionCount           int     `mapstructure:"question_count" validate:"min=0"`
	IncludeFavorites        bool    `mapstructure:"include_favorites"`
	AutoPlayMode            string  `mapstructure:"auto_play_mode" validate:"oneof=meaning_only term_only both none"`
	AutoPlayIntervalSeconds float64 `mapstructure:"auto_play_interval_seconds" validate:"gte=1,lte=10"`
}

// AutoPlayInterval returns the configured interval as a duration.
func (c StudyConfig) AutoPlayInterval() time.Duration {
	return time.Duration(c.AutoPlayIntervalSeconds * float64(time.Second))
}

type SpeechConfig struct {
	LearningLanguage string `mapstructure:"learning_language" validate:"language"`
	SystemLanguage   string `mapstructure:"system_language" validate:"language"`
}

type NotificationConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Hour     int    `mapstructure:"hour" validate:"min=0,max=23"`
	Minute   int    `mapstructure:"minute" validate:"min=0,max=59"`
	Timezone string `mapstructure:"timezone" validate:"location"`
}

// Location returns the notification time zone.
func (c NotificationConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vocato")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", filepath.Join("data", "vocato.db"))
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("storage.data_directory", "data")
	v.SetDefault("storage.state_file", "state.yml")
	v.SetDefault("study.word_group", "all")
	v.SetDefault("study.quiz_mode", "flashcards")
	v.SetDefault("study.question_count", 10)
	v.SetDefault("study.include_favorites", false)
	v.SetDefault("study.auto_play_mode", "both")
	v.SetDefault("study.auto_play_interval_seconds", 3.0)
	v.SetDefault("speech.learning_language", "en")
	v.SetDefault("speech.system_language", "ko")
	v.SetDefault("notification.enabled", false)
	v.SetDefault("notification.hour", 20)
	v.SetDefault("notification.minute", 0)
	v.SetDefault("notification.timezone", "Local")

	// Secrets and machine-specific paths come from the environment only
	if err := v.BindEnv("database.password", "VOCATO_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCATO_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("storage.data_directory", "VOCATO_DATA_DIR"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCATO_DATA_DIR environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct() > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
