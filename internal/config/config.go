package config

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Client   ClientConfig   `mapstructure:"client"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

type AppConfig struct {
	Port     string `mapstructure:"port"`
	Debug    bool   `mapstructure:"debug"`
	LoginURL string `mapstructure:"login_url"`
}

// StorageConfig selects the post store. Type is "postgres" or "sqlite";
// Path is only used by sqlite.
type StorageConfig struct {
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
}

type ClientConfig struct {
	Origin string `mapstructure:"origin"`
}

type AuthConfig struct {
	AccessSecret string        `mapstructure:"access_secret"`
	CookieName   string        `mapstructure:"cookie_name"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type RabbitMQConfig struct {
	ConnString string `mapstructure:"conn_string"`
}

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

var ErrNoAccessSecret = errors.New("ACCESS_SECRET is not set")

// Load reads app.yaml from the working directory (or ./config) on top of
// defaults. Environment variables override both.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("app.port", "8000")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.login_url", "/auth/login/")
	v.SetDefault("storage.type", "postgres")
	v.SetDefault("storage.path", "./yatube.db")
	v.SetDefault("client.origin", "http://localhost:8000")
	v.SetDefault("auth.cookie_name", "access_token")
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.BindEnv("auth.access_secret", "ACCESS_SECRET")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("rabbitmq.conn_string", "RABBITMQ_CONN_STRING")
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("app.port", "APP_PORT")

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

	if cfg.Auth.AccessSecret == "" {
		return nil, ErrNoAccessSecret
	}

	return &cfg, nil
}
