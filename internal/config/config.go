package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port     int    `yaml:"port"`
	GinMode  string `yaml:"gin_mode"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type OTPConfig struct {
	TTL              string `yaml:"ttl"`
	CompletionWindow string `yaml:"completion_window"`
	CleanupAge       string `yaml:"cleanup_age"`
}

type SessionConfig struct {
	UserTTL    string `yaml:"user_ttl"`
	AdminTTL   string `yaml:"admin_ttl"`
	MaxPerUser int    `yaml:"max_per_user"`
}

type MailConfig struct {
	ResendAPIKey string `yaml:"resend_api_key"`
	From         string `yaml:"from"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	OTP      OTPConfig      `yaml:"otp"`
	Session  SessionConfig  `yaml:"session"`
	Mail     MailConfig     `yaml:"mail"`
}

type Config struct {
	Port     string
	GinMode  string
	Env      string
	LogLevel string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OTPTTL              time.Duration
	OTPCompletionWindow time.Duration
	OTPCleanupAge       time.Duration

	UserSessionTTL  time.Duration
	AdminSessionTTL time.Duration
	MaxSessions     int

	ResendAPIKey string
	MailFrom     string
}

// Production reports whether cookies must carry the Secure attribute.
func (c *Config) Production() bool { return c.Env == "production" }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for the
// values that differ between deployments.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

func LoadFrom(path string) (*Config, error) {
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	otpTTL, err := time.ParseDuration(file.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid otp ttl: %w", err)
	}
	completion, err := time.ParseDuration(file.OTP.CompletionWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid otp completion window: %w", err)
	}
	cleanupAge, err := time.ParseDuration(file.OTP.CleanupAge)
	if err != nil {
		return nil, fmt.Errorf("invalid otp cleanup age: %w", err)
	}
	userTTL, err := time.ParseDuration(file.Session.UserTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid user session ttl: %w", err)
	}
	adminTTL, err := time.ParseDuration(file.Session.AdminTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid admin session ttl: %w", err)
	}

	redisDB := file.Redis.DB
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		redisDB = n
	}

	return &Config{
		Port:     env("PORT", fmt.Sprintf("%d", file.App.Port)),
		GinMode:  file.App.GinMode,
		Env:      env("APP_ENV", file.App.Env),
		LogLevel: env("LOG_LEVEL", file.App.LogLevel),

		DSN: env("DATABASE_DSN", file.Database.DSN),

		RedisAddr:     env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:       redisDB,

		OTPTTL:              otpTTL,
		OTPCompletionWindow: completion,
		OTPCleanupAge:       cleanupAge,

		UserSessionTTL:  userTTL,
		AdminSessionTTL: adminTTL,
		MaxSessions:     file.Session.MaxPerUser,

		ResendAPIKey: env("RESEND_API_KEY", file.Mail.ResendAPIKey),
		MailFrom:     env("EMAIL_FROM", file.Mail.From),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
