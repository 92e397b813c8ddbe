package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Overlay   OverlayConfig   `mapstructure:"overlay"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Latency   LatencyConfig   `mapstructure:"latency"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Payroll   PayrollConfig   `mapstructure:"payroll"`
	Outbound  OutboundConfig  `mapstructure:"outbound"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

// OverlayConfig selects the durable overlay backend. Backend is one of
// file, redis, postgres.
type OverlayConfig struct {
	Backend  string         `mapstructure:"backend"`
	File     FileConfig     `mapstructure:"file"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type FileConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	URL       string `mapstructure:"url"`
	Namespace string `mapstructure:"namespace"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// LatencyConfig bounds the simulated per-dispatch latency in
// milliseconds. Zero max disables it.
type LatencyConfig struct {
	MinMillis int `mapstructure:"min_millis"`
	MaxMillis int `mapstructure:"max_millis"`
}

func (c LatencyConfig) Min() time.Duration { return time.Duration(c.MinMillis) * time.Millisecond }
func (c LatencyConfig) Max() time.Duration { return time.Duration(c.MaxMillis) * time.Millisecond }

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// PayrollConfig bounds salary-structure validation.
type PayrollConfig struct {
	MinTaxPercent float64 `mapstructure:"min_tax_percent"`
	MaxTaxPercent float64 `mapstructure:"max_tax_percent"`
	MinTaxes      int     `mapstructure:"min_taxes"`
	MaxTaxes      int     `mapstructure:"max_taxes"`
}

type OutboundConfig struct {
	BatchSize           int `mapstructure:"batch_size"`
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("overlay.backend", "file")
	viper.SetDefault("overlay.file.path", "data/overlay.json")
	viper.SetDefault("jwt.secret", "dev-secret")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("latency.min_millis", 40)
	viper.SetDefault("latency.max_millis", 120)
	viper.SetDefault("rate_limit.requests_per_second", 50)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("payroll.min_tax_percent", 5)
	viper.SetDefault("payroll.max_tax_percent", 15)
	viper.SetDefault("payroll.min_taxes", 2)
	viper.SetDefault("payroll.max_taxes", 3)
	viper.SetDefault("outbound.batch_size", 10)
	viper.SetDefault("outbound.poll_interval_seconds", 5)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
