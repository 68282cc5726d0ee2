package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	LockBackendRedis = "redis"
	LockBackendEtcd  = "etcd"
)

// Config holds all configuration for the service. Keys match the
// environment variable names in lower case.
type Config struct {
	HTTPAddr string `mapstructure:"http_addr"`

	DBHost       string `mapstructure:"db_host"`
	DBPort       string `mapstructure:"db_port"`
	DBUser       string `mapstructure:"db_user"`
	DBPassword   string `mapstructure:"db_password"`
	DBName       string `mapstructure:"db_name"`
	DBMaxRetries int    `mapstructure:"db_max_retries"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	LockBackend   string        `mapstructure:"lock_backend"`
	EtcdEndpoints []string      `mapstructure:"etcd_endpoints"`
	EtcdTimeout   time.Duration `mapstructure:"etcd_timeout"`

	HoldTTL             time.Duration `mapstructure:"hold_ttl"`
	SweepSchedule       string        `mapstructure:"sweep_schedule"`
	NotifyTimeout       time.Duration `mapstructure:"notify_timeout"`
	NotifyChannelPrefix string        `mapstructure:"notify_channel_prefix"`
	AMQPURL             string        `mapstructure:"amqp_url"`

	GeometryCacheSize int    `mapstructure:"geometry_cache_size"`
	LogLevel          string `mapstructure:"log_level"`
	TracingEnabled    bool   `mapstructure:"tracing_enabled"`
}

var defaults = map[string]any{
	"http_addr":             ":8080",
	"db_host":               "localhost",
	"db_port":               "5432",
	"db_user":               "postgres",
	"db_password":           "",
	"db_name":               "seatlock",
	"db_max_retries":        10,
	"redis_addr":            "localhost:6379",
	"redis_password":        "",
	"redis_db":              0,
	"lock_backend":          LockBackendRedis,
	"etcd_endpoints":        []string{"localhost:2379"},
	"etcd_timeout":          "5s",
	"hold_ttl":              "300s",
	"sweep_schedule":        "@every 30s",
	"notify_timeout":        "2s",
	"notify_channel_prefix": "showtime:",
	"amqp_url":              "",
	"geometry_cache_size":   1024,
	"log_level":             "info",
	"tracing_enabled":       false,
}

// Load reads an optional .env file, an optional config.yaml and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.LockBackend {
	case LockBackendRedis, LockBackendEtcd:
	default:
		return fmt.Errorf("unknown lock backend %q", c.LockBackend)
	}

	if c.HoldTTL <= 0 {
		return errors.New("hold_ttl must be positive")
	}
	if c.GeometryCacheSize <= 0 {
		return errors.New("geometry_cache_size must be positive")
	}
	if c.LockBackend == LockBackendEtcd && len(c.EtcdEndpoints) == 0 {
		return errors.New("etcd_endpoints is required for the etcd lock backend")
	}

	return nil
}
