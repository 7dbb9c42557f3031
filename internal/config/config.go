package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config defines server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	AI       AIConfig       `yaml:"ai"`
	Log      LogConfig      `yaml:"log"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Admin    AdminConfig    `yaml:"admin"`
	Sessions SessionsConfig `yaml:"sessions"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type AIConfig struct {
	APIKey      string        `yaml:"api_key"`
	TextModel   string        `yaml:"text_model"`
	SpeechModel string        `yaml:"speech_model"`
	Voice       string        `yaml:"voice"`
	Timeout     time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	To       string `yaml:"to"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type SessionsConfig struct {
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "debug",
		},
		DB: DBConfig{
			Driver: StorageSQLite,
			Path:   "devify.db",
		},
		AI: AIConfig{
			TextModel:   "gemini-3-flash-preview",
			SpeechModel: "gemini-2.5-flash-preview-tts",
			Voice:       "Kore",
			Timeout:     30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Sessions: SessionsConfig{
			IdleTimeout: 2 * time.Hour,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("DEVIFY_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "DEVIFY_HOST")
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	setString(&cfg.Server.Mode, "GIN_MODE")

	setString(&cfg.DB.Path, "DEVIFY_DB_PATH")
	setString(&cfg.DB.Driver, "DEVIFY_STORAGE")

	setString(&cfg.AI.APIKey, "API_KEY")
	setString(&cfg.AI.APIKey, "GEMINI_API_KEY")
	setString(&cfg.AI.TextModel, "DEVIFY_TEXT_MODEL")
	setString(&cfg.AI.SpeechModel, "DEVIFY_SPEECH_MODEL")
	setString(&cfg.AI.Voice, "DEVIFY_VOICE")
	if err := setDuration(&cfg.AI.Timeout, "DEVIFY_AI_TIMEOUT"); err != nil {
		return err
	}

	setString(&cfg.Log.Level, "DEVIFY_LOG_LEVEL")
	if dev := os.Getenv("DEVIFY_LOG_DEV"); dev != "" {
		v, err := strconv.ParseBool(dev)
		if err != nil {
			return fmt.Errorf("invalid DEVIFY_LOG_DEV: %w", err)
		}
		cfg.Log.Development = v
	}

	setString(&cfg.SMTP.Host, "SMTP_HOST")
	setString(&cfg.SMTP.Port, "SMTP_PORT")
	setString(&cfg.SMTP.User, "SMTP_USER")
	setString(&cfg.SMTP.Password, "SMTP_PASS")
	setString(&cfg.SMTP.To, "TO_EMAIL")

	setString(&cfg.Admin.Username, "ADMIN_USERNAME")
	setString(&cfg.Admin.Password, "ADMIN_PASSWORD")

	return setDuration(&cfg.Sessions.IdleTimeout, "DEVIFY_SESSION_IDLE")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	switch c.DB.Driver {
	case StorageSQLite:
		if c.DB.Path == "" {
			errs = append(errs, errors.New("db.path is required for sqlite storage"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("db.driver %q must be %s or %s", c.DB.Driver, StorageSQLite, StorageMemory))
	}
	if c.AI.Timeout <= 0 {
		errs = append(errs, errors.New("ai.timeout must be positive"))
	}
	if c.Sessions.IdleTimeout <= 0 {
		errs = append(errs, errors.New("sessions.idle_timeout must be positive"))
	}
	return errors.Join(errs...)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
