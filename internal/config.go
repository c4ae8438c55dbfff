package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Midtrans      MidtransConfig      `mapstructure:"midtrans"`
	Notifier      NotifierConfig      `mapstructure:"notifier"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"required,min=1m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"required,min=1m"`
	Source          string        `mapstructure:"source"`
}

// MidtransConfig carries the credentials shared with the payment provider.
// ServerKey signs every inbound notification; the service must refuse to start
// without it so a missing key can never fail open at request time.
type MidtransConfig struct {
	ServerKey string `mapstructure:"server_key" validate:"required"`
}

type NotifierConfig struct {
	APIURL       string        `mapstructure:"api_url"`
	APIKey       string        `mapstructure:"api_key"`
	SendTimeout  time.Duration `mapstructure:"send_timeout"`
	MaxWorkers   int           `mapstructure:"max_workers"`
	JobQueueSize int           `mapstructure:"job_queue_size"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ----------------- ENV FALLBACK -----------------

// LoadConfigFromEnv builds a Config from environment variables, used for
// container deployments where no config.yml is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_SERVER_PORT", 8080),
			BaseURL:           getEnv("HTTP_SERVER_BASE_URL", ""),
			AllowedOrigins:    getEnv("HTTP_SERVER_ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: getEnvAsDuration("HTTP_SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("HTTP_SERVER_READ_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("HTTP_SERVER_IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("HTTP_SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DATABASE_CONN_MAX_IDLE_TIME", 5*time.Minute),
			Source:          getEnv("DATABASE_SOURCE", ""),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOGGING_LEVEL", "info"),
				Format: getEnv("LOGGING_FORMAT", "json"),
			},
		},
		Midtrans: MidtransConfig{
			ServerKey: getEnv("MIDTRANS_SERVER_KEY", ""),
		},
		Notifier: NotifierConfig{
			APIURL:       getEnv("NOTIFIER_API_URL", ""),
			APIKey:       getEnv("NOTIFIER_API_KEY", ""),
			SendTimeout:  getEnvAsDuration("NOTIFIER_SEND_TIMEOUT", 10*time.Second),
			MaxWorkers:   getEnvAsInt("NOTIFIER_MAX_WORKERS", 5),
			JobQueueSize: getEnvAsInt("NOTIFIER_JOB_QUEUE_SIZE", 100),
		},
	}
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Midtrans.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("midtrans config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *MidtransConfig) Validate() error {
	if c.ServerKey == "" {
		return errors.New("server_key is required")
	}
	return nil
}
