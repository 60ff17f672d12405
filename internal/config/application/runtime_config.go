package application

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"historian/pkg/utils"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Flags are the raw CLI flag values. Empty strings and a negative RedisDB
// mean the flag was not given.
type Flags struct {
	Store         string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	NodeID        string
	ConfigPath    string
	APIKey        string
	APIPort       string
	LogLevel      string
	LogFormat     string
	LogOutput     string
	DevMode       bool
}

// RuntimeConfig holds all runtime configuration from CLI flags, environment variables, and .env file
type RuntimeConfig struct {
	// API Configuration
	APIKey  string
	APIPort string

	// Development Mode
	DevMode bool

	// Logging Configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// Storage Configuration
	Store         string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Cluster node identity, empty when standalone
	NodeID string

	// Statistics config file path
	ConfigPath string
}

// LoadRuntimeConfig loads configuration with precedence: CLI flags > env vars > .env file > defaults
func LoadRuntimeConfig(f Flags) *RuntimeConfig {
	redisDB := f.RedisDB
	if redisDB < 0 {
		redisDB = getIntEnv("HISTORIAN_REDIS_DB", 0)
	}

	return &RuntimeConfig{
		APIKey:        getValue(f.APIKey, "HISTORIAN_API_KEY", ""),
		APIPort:       getValue(f.APIPort, "HISTORIAN_API_PORT", "8080"),
		DevMode:       f.DevMode || getBoolEnv("HISTORIAN_DEV_MODE", false),
		LogLevel:      getValue(f.LogLevel, "HISTORIAN_LOG_LEVEL", "INFO"),
		LogFormat:     getValue(f.LogFormat, "HISTORIAN_LOG_FORMAT", "text"),
		LogOutput:     getValue(f.LogOutput, "HISTORIAN_LOG_OUTPUT", "stdout"),
		Store:         strings.ToLower(getValue(f.Store, "HISTORIAN_STORE", StoreSQLite)),
		DBPath:        getValue(f.DBPath, "HISTORIAN_DB_PATH", "statistics.db"),
		RedisAddr:     getValue(f.RedisAddr, "HISTORIAN_REDIS_ADDR", "localhost:6379"),
		RedisPassword: getValue(f.RedisPassword, "HISTORIAN_REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		NodeID:        getValue(f.NodeID, "HISTORIAN_NODE_ID", ""),
		ConfigPath:    getValue(f.ConfigPath, "HISTORIAN_CONFIG", ""),
	}
}

// getValue returns the first non-empty value from CLI flag, env var, or default
func getValue(cliValue, envKey, defaultValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable
func getBoolEnv(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "true" || value == "1" || value == "yes" {
		return true
	}
	if value == "false" || value == "0" || value == "no" {
		return false
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// Validate checks the parts of the configuration every command needs.
// The API key is only required to serve, see ValidateServe.
func (c *RuntimeConfig) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			return &ConfigError{Field: "db", Message: "Database path is required for the sqlite store"}
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return &ConfigError{Field: "redis-addr", Message: "Redis address is required for the redis store"}
		}
	default:
		return &ConfigError{Field: "store", Message: fmt.Sprintf("Unknown store %q (expected sqlite or redis)", c.Store)}
	}

	if err := utils.CheckNodeID(c.NodeID); err != nil {
		return &ConfigError{Field: "node-id", Message: err.Error()}
	}

	return nil
}

// ValidateServe additionally requires an API key
func (c *RuntimeConfig) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" && !c.DevMode {
		return &ConfigError{Field: "api-key", Message: "API key is required (set HISTORIAN_API_KEY or use --api-key flag)"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
