// Package config loads the API configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevJWTSecret is only acceptable outside release mode.
const DevJWTSecret = "bizintel-dev-secret-change-me"

type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	LogFormat       string
	JWTSecret       string
	JWTTTL          time.Duration
	APIKey          string
	AdminUsername   string
	AdminPassword   string
	FrontendOrigins []string
	SeedSample      bool
	DatabaseURL     string
	Redis           RedisConfig
	ClickHouse      ClickHouseConfig

	// EnvFile is the dotenv file that was loaded, empty when none was found.
	EnvFile string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether analytics counters should live in Redis.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type ClickHouseConfig struct {
	Host       string
	NativePort int
	Database   string
	Username   string
	Password   string
}

// Enabled reports whether raw tracking events should be shipped to ClickHouse.
func (c ClickHouseConfig) Enabled() bool {
	return c.Host != "" && c.NativePort != 0 && c.Database != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	envFile := ""
	if err := godotenv.Load(); err == nil {
		envFile = ".env"
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg, err := FromViper(v)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = envFile
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("jwt_secret_key", DevJWTSecret)
	v.SetDefault("jwt_ttl", "1h")
	v.SetDefault("auth_api_key", "")
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password", "admin")
	v.SetDefault("fe_origins", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("seed_sample", true)
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("clickhouse_host", "")
	v.SetDefault("clickhouse_native_port", 0)
	v.SetDefault("clickhouse_db_name", "")
	v.SetDefault("clickhouse_username", "")
	v.SetDefault("clickhouse_password", "")
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetString("port"),
		GinMode:         v.GetString("gin_mode"),
		LogLevel:        strings.ToLower(v.GetString("log_level")),
		LogFormat:       strings.ToLower(v.GetString("log_format")),
		JWTSecret:       v.GetString("jwt_secret_key"),
		JWTTTL:          v.GetDuration("jwt_ttl"),
		APIKey:          v.GetString("auth_api_key"),
		AdminUsername:   v.GetString("admin_username"),
		AdminPassword:   v.GetString("admin_password"),
		FrontendOrigins: splitList(v.GetString("fe_origins")),
		SeedSample:      v.GetBool("seed_sample"),
		DatabaseURL:     v.GetString("database_url"),
		Redis: RedisConfig{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		ClickHouse: ClickHouseConfig{
			Host:       v.GetString("clickhouse_host"),
			NativePort: v.GetInt("clickhouse_native_port"),
			Database:   v.GetString("clickhouse_db_name"),
			Username:   v.GetString("clickhouse_username"),
			Password:   v.GetString("clickhouse_password"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY must not be empty")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	if c.GinMode == "release" && c.JWTSecret == DevJWTSecret {
		return errors.New("JWT_SECRET_KEY must be set in release mode")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.AdminUsername == "" || c.AdminPassword == "" {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
