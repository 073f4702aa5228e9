package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver          string        `yaml:"db_driver"`
	DBPath            string        `yaml:"db_path"`
	DBHost            string        `yaml:"db_host"`
	DBPort            string        `yaml:"db_port"`
	DBUser            string        `yaml:"db_user"`
	DBPassword        string        `yaml:"db_password"`
	DBName            string        `yaml:"db_name"`
	DBSSLMode         string        `yaml:"db_sslmode"`
	DBMaxOpenConns    int           `yaml:"db_max_open_conns"`
	DBMaxIdleConns    int           `yaml:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `yaml:"db_conn_max_lifetime"`
	HTTPAddr          string        `yaml:"http_addr"`
	GinMode           string        `yaml:"gin_mode"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
	CORSOrigins       []string      `yaml:"cors_allowed_origins"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// Defaults returns the configuration used when neither a config file nor the
// environment provides a value.
func Defaults() *Config {
	return &Config{
		DBDriver:          "sqlite",
		DBPath:            "notemanager.db",
		DBHost:            "localhost",
		DBPort:            "5432",
		DBUser:            "noteuser",
		DBPassword:        "notepassword",
		DBName:            "notemanager",
		DBSSLMode:         "disable",
		DBMaxOpenConns:    10,
		DBMaxIdleConns:    5,
		DBConnMaxLifetime: 30 * time.Minute,
		HTTPAddr:          ":8080",
		GinMode:           "debug",
		LogLevel:          "info",
		LogFormat:         "text",
		CORSOrigins:       []string{"*"},
		ShutdownTimeout:   10 * time.Second,
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the working
// directory is loaded into the environment first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Defaults()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBSSLMode = getEnv("DB_SSLMODE", c.DBSSLMode)
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}

	var err error
	if c.DBMaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", c.DBMaxOpenConns); err != nil {
		return err
	}
	if c.DBMaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", c.DBMaxIdleConns); err != nil {
		return err
	}
	if c.DBConnMaxLifetime, err = getEnvDuration("DB_CONN_MAX_LIFETIME", c.DBConnMaxLifetime); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

// Validate checks values that would otherwise fail late at connect time.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0 {
		return fmt.Errorf("connection pool sizes must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
