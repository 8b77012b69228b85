package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type R2 struct {
	AccountID  string `yaml:"account_id"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	BucketName string `yaml:"bucket_name"`
	PublicURL  string `yaml:"public_url"`
}

type ServerConfig struct {
	Port        string `yaml:"port"`
	FrontendURL string `yaml:"frontend_url"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "postgres" or "sqlite3"
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr       string        `yaml:"addr"`
	Password   string        `yaml:"password"`
	DB         int           `yaml:"db"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type XConfig struct {
	ClientID       string        `yaml:"client_id"`
	ClientSecret   string        `yaml:"client_secret"`
	RedirectURI    string        `yaml:"redirect_uri"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type SchedulerConfig struct {
	Spec                   string        `yaml:"spec"`
	BatchSize              int           `yaml:"batch_size"`
	PostConcurrency        int           `yaml:"post_concurrency"`
	DestinationConcurrency int           `yaml:"destination_concurrency"`
	RetryInterval          time.Duration `yaml:"retry_interval"`
	CycleTimeout           time.Duration `yaml:"cycle_timeout"`
	Location               string        `yaml:"location"`
	WorkerConcurrency      int           `yaml:"worker_concurrency"`
}

type AuthConfig struct {
	SecretKey     string        `yaml:"secret_key"`
	CookieName    string        `yaml:"cookie_name"`
	TokenDuration time.Duration `yaml:"token_duration"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	R2        R2              `yaml:"r2"`
	X         XConfig         `yaml:"x"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Auth      AuthConfig      `yaml:"auth"`
	LogLevel  string          `yaml:"log_level"`
}

// LoadConfig reads the optional YAML file at path, lets environment variables
// fill whatever the file leaves empty and then applies defaults.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.FrontendURL = getEnv("FRONTEND_URL", c.Server.FrontendURL)

	c.Database.Driver = getEnv("DATABASE_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("DATABASE_URL", getEnv("POSTGRES_URI", c.Database.DSN))

	c.Redis.Addr = getEnv("REDIS_URI", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)

	c.RabbitMQ.URL = getEnv("RABBITMQ_URL", c.RabbitMQ.URL)

	c.R2.AccountID = getEnv("R2_ACCOUNT_ID", c.R2.AccountID)
	c.R2.AccessKey = getEnv("R2_ACCESS_KEY", c.R2.AccessKey)
	c.R2.SecretKey = getEnv("R2_SECRET_KEY", c.R2.SecretKey)
	c.R2.BucketName = getEnv("R2_BUCKET_NAME", c.R2.BucketName)
	c.R2.PublicURL = getEnv("R2_PUBLIC_URL", c.R2.PublicURL)

	c.X.ClientID = getEnv("X_CLIENT_ID", c.X.ClientID)
	c.X.ClientSecret = getEnv("X_CLIENT_SECRET", c.X.ClientSecret)
	c.X.RedirectURI = getEnv("X_REDIRECT_URI", c.X.RedirectURI)

	c.Scheduler.Location = getEnv("SCHEDULER_LOCATION", c.Scheduler.Location)
	if v, err := strconv.Atoi(getEnv("SCHEDULER_POST_CONCURRENCY", "")); err == nil {
		c.Scheduler.PostConcurrency = v
	}

	c.Auth.SecretKey = getEnv("SECRET_KEY", c.Auth.SecretKey)
	c.Auth.CookieName = getEnv("COOKIE_NAME", c.Auth.CookieName)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

func (c *Config) setDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "3000"
	}
	if c.Server.FrontendURL == "" {
		c.Server.FrontendURL = "http://localhost:5173"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Redis.SessionTTL == 0 {
		c.Redis.SessionTTL = time.Hour
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "autopost"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "post.outcome"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "post_outcomes"
	}
	if c.X.RequestTimeout == 0 {
		c.X.RequestTimeout = 30 * time.Second
	}
	if c.Scheduler.Spec == "" {
		c.Scheduler.Spec = "@every 1m"
	}
	if c.Scheduler.BatchSize == 0 {
		c.Scheduler.BatchSize = 100
	}
	if c.Scheduler.PostConcurrency == 0 {
		c.Scheduler.PostConcurrency = 1
	}
	if c.Scheduler.DestinationConcurrency == 0 {
		c.Scheduler.DestinationConcurrency = 4
	}
	if c.Scheduler.RetryInterval == 0 {
		c.Scheduler.RetryInterval = 15 * time.Minute
	}
	if c.Scheduler.CycleTimeout == 0 {
		c.Scheduler.CycleTimeout = 10 * time.Minute
	}
	if c.Scheduler.WorkerConcurrency == 0 {
		c.Scheduler.WorkerConcurrency = 10
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "autopost_token"
	}
	if c.Auth.TokenDuration == 0 {
		c.Auth.TokenDuration = 7 * 24 * time.Hour
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the zone the scheduler renders "now" in.
// An empty value means the process local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Scheduler.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Scheduler.Location)
	if err != nil {
		return nil, fmt.Errorf("load scheduler location: %w", err)
	}
	return loc, nil
}

// EncryptionKey is the 32 byte AES key derived from the secret key.
func (c *Config) EncryptionKey() []byte {
	key := make([]byte, 32)
	copy(key, c.Auth.SecretKey)
	return key
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
