package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Trust models for resolving the caller's identity.
const (
	TrustModelSession = "session"
	TrustModelTrusted = "trusted"
)

type AppConfig struct {
	Name     string `yaml:"name" validate:"required"`
	Env      string `yaml:"env" validate:"required,oneof=development production test"`
	LogLevel string `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port" validate:"required,numeric"`
	ReadTimeout     time.Duration `yaml:"readTimeout" validate:"gte=0"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" validate:"gte=0"`
}

// Addr returns the listen address for http.Server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver" validate:"required,oneof=mysql postgres sqlite"`
	DSN             string        `yaml:"dsn" validate:"required"`
	MaxOpenConns    int           `yaml:"maxOpenConns" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"maxIdleConns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime" validate:"gte=0"`
	AutoMigrate     bool          `yaml:"autoMigrate"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr" validate:"required_if=Enabled true,omitempty,hostname_port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
	PoolSize int    `yaml:"poolSize" validate:"gte=0"`
	Channel  string `yaml:"channel"`
}

type AuthConfig struct {
	TrustModel     string        `yaml:"trustModel" validate:"required,oneof=session trusted"`
	JWTSecret      string        `yaml:"jwtSecret" validate:"required_if=TrustModel session,omitempty,min=32"`
	TokenTTL       time.Duration `yaml:"tokenTtl" validate:"gte=0"`
	ServiceKeyHash string        `yaml:"serviceKeyHash" validate:"required_if=TrustModel trusted"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type LeaderboardConfig struct {
	DefaultLimit int           `yaml:"defaultLimit" validate:"gte=0"`
	MaxLimit     int           `yaml:"maxLimit" validate:"gte=0"`
	CacheTTL     time.Duration `yaml:"cacheTtl" validate:"gte=0"`
}

// Config is the root of config.yaml.
type Config struct {
	App         AppConfig         `yaml:"app" validate:"required"`
	Server      ServerConfig      `yaml:"server" validate:"required"`
	Database    DatabaseConfig    `yaml:"database" validate:"required"`
	Redis       RedisConfig       `yaml:"redis"`
	Auth        AuthConfig        `yaml:"auth" validate:"required"`
	CORS        CORSConfig        `yaml:"cors"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// envOverrides maps environment variables onto secret-bearing fields.
var envOverrides = map[string]func(*Config, string){
	"CTF_DATABASE_DSN":     func(c *Config, v string) { c.Database.DSN = v },
	"CTF_JWT_SECRET":       func(c *Config, v string) { c.Auth.JWTSecret = v },
	"CTF_SERVICE_KEY_HASH": func(c *Config, v string) { c.Auth.ServiceKeyHash = v },
	"CTF_REDIS_ADDR":       func(c *Config, v string) { c.Redis.Addr = v },
	"CTF_REDIS_PASSWORD":   func(c *Config, v string) { c.Redis.Password = v },
	"CTF_TRUST_MODEL":      func(c *Config, v string) { c.Auth.TrustModel = v },
}

// Load reads the YAML file at path, applies .env and environment overrides,
// fills defaults and validates the result.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file '%s': %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Config from raw YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse YAML config: %w", err)
	}

	for key, apply := range envOverrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			apply(&cfg, v)
		}
	}
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "ctfpractice"
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "info"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 100
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 10
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 100
	}
	if cfg.Redis.Channel == "" {
		cfg.Redis.Channel = "ctf:changes"
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 7 * 24 * time.Hour
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if cfg.Leaderboard.DefaultLimit == 0 {
		cfg.Leaderboard.DefaultLimit = 10
	}
	if cfg.Leaderboard.MaxLimit == 0 {
		cfg.Leaderboard.MaxLimit = 100
	}
	if cfg.Leaderboard.CacheTTL == 0 {
		cfg.Leaderboard.CacheTTL = 15 * time.Second
	}
}

func validate(cfg *Config) error {
	v := validator.New()
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("config validator: %w", err)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fmt.Sprintf("field '%s' failed '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config:\n- %s", strings.Join(messages, "\n- "))
}
