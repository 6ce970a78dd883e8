package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/sirosfoundation/go-hello-server/pkg/logging"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "GREETER"

// Config represents the application configuration
type Config struct {
	Server  ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Admin   AdminConfig    `yaml:"admin" envconfig:"ADMIN"`
	Logging logging.Config `yaml:"logging" envconfig:"LOGGING"`
	CORS    CORSConfig     `yaml:"cors" envconfig:"CORS"`
}

// ServerConfig contains the public HTTP listener configuration.
// Zero timeouts leave the net/http defaults in place.
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST"`
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// AdminConfig contains the operational listener configuration
type AdminConfig struct {
	Port int `yaml:"port" envconfig:"PORT"` // 0 disables the admin listener
}

// CORSConfig contains CORS settings for the public router.
// CORS is only enabled when AllowedOrigins is non-empty.
type CORSConfig struct {
	AllowedOrigins []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	AllowedMethods []string      `yaml:"allowed_methods" envconfig:"ALLOWED_METHODS"`
	AllowedHeaders []string      `yaml:"allowed_headers" envconfig:"ALLOWED_HEADERS"`
	MaxAge         time.Duration `yaml:"max_age" envconfig:"MAX_AGE"`
}

// Enabled reports whether any origin is configured
func (c CORSConfig) Enabled() bool {
	return len(c.AllowedOrigins) > 0
}

// Load loads configuration from defaults, a YAML file, a dotenv file and the
// environment, in increasing order of priority. Missing files are ignored.
func Load(configFile, envFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// godotenv never overrides variables already present in the environment
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns a Config that listens on 0.0.0.0:3000 with the admin
// listener disabled
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: logging.DefaultConfig(),
		CORS: CORSConfig{
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			MaxAge:         12 * time.Hour,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Admin.Port < 0 || c.Admin.Port > 65535 {
		return fmt.Errorf("invalid admin port: %d", c.Admin.Port)
	}

	if c.Admin.Port != 0 && c.Admin.Port == c.Server.Port {
		return fmt.Errorf("admin port must differ from server port %d", c.Server.Port)
	}

	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}

	for _, origin := range c.CORS.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid cors origin: %q (must be * or start with http:// or https://)", origin)
		}
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format)
	}

	return nil
}

// Address returns the server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Address returns the admin server address on the given host
func (c *AdminConfig) Address(host string) string {
	return fmt.Sprintf("%s:%d", host, c.Port)
}
