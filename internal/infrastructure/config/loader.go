package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// DefaultJWTSecret is only suitable for local development
const DefaultJWTSecret = "super-secret-change-me"

// envPrefix namespaces every environment override
const envPrefix = "FS"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from the optional environment file, .env and FS_ variables
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development
	_ = loadDotEnvFile()

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// loadDotEnvFile loads the first readable .env file from the search paths
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return errors.New("no .env file found in search paths")
}

// setDefaults gives every key a value so the service starts without a config file
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.corsOrigins", []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://127.0.0.1:5173",
		"http://127.0.0.1:5174",
	})
	v.SetDefault("server.rateLimit.rps", 0)
	v.SetDefault("server.rateLimit.burst", 0)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "fraud_app.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.slowQueryMs", 200)
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	v.SetDefault("logger.level", "info")

	v.SetDefault("auth.jwtSecret", DefaultJWTSecret)
	v.SetDefault("auth.tokenTTLMinutes", 1440)
	v.SetDefault("auth.bcryptCost", 10)

	v.SetDefault("model.path", "fraud_model.json")
	v.SetDefault("model.featureOrder", "")

	v.SetDefault("admin.seed", true)
	v.SetDefault("admin.seedEmail", "admin@example.com")
	v.SetDefault("admin.seedUsername", "admin")
	v.SetDefault("admin.seedPassword", "password123")
	v.SetDefault("admin.seedName", "Admin User")

	v.SetDefault("ledger.idleTimeout", 30) // seconds
}

// getEnvironment determines the environment to use based on FS_ENV
func getEnvironment() string {
	env := os.Getenv(envPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides maps flat variable names onto nested keys that AutomaticEnv cannot reach
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"FS_DB_DRIVER":      "database.driver",
		"FS_DB_PATH":        "database.path",
		"FS_DB_HOST":        "database.host",
		"FS_DB_PORT":        "database.port",
		"FS_DB_USERNAME":    "database.username",
		"FS_DB_PASSWORD":    "database.password",
		"FS_DB_NAME":        "database.database",
		"FS_DB_SSL_MODE":    "database.sslMode",
		"FS_JWT_SECRET":     "auth.jwtSecret",
		"FS_MODEL_PATH":     "model.path",
		"FS_FEATURE_ORDER":  "model.featureOrder",
		"FS_ADMIN_EMAIL":    "admin.seedEmail",
		"FS_ADMIN_PASSWORD": "admin.seedPassword",
		"FS_SERVER_HOST":    "server.host",
		"FS_LOGGER_LEVEL":   "logger.level",
		"FS_ADMIN_SEED":     "admin.seed",
		"FS_ADMIN_USERNAME": "admin.seedUsername",
		"FS_ADMIN_NAME":     "admin.seedName",
	}
	for env, key := range stringOverrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	intOverrides := map[string]string{
		"FS_SERVER_PORT":              "server.port",
		"FS_DB_MAX_OPEN_CONNS":        "database.maxOpenConns",
		"FS_DB_MAX_IDLE_CONNS":        "database.maxIdleConns",
		"FS_DB_QUERY_TIMEOUT_SECONDS": "database.queryTimeout",
		"FS_TOKEN_TTL_MINUTES":        "auth.tokenTTLMinutes",
		"FS_BCRYPT_COST":              "auth.bcryptCost",
		"FS_RATE_LIMIT_BURST":         "server.rateLimit.burst",
		"FS_DB_SLOW_QUERY_MS":         "database.slowQueryMs",
		"FS_LEDGER_IDLE_SECONDS":      "ledger.idleTimeout",
	}
	for env, key := range intOverrides {
		if value := getEnvInt(env, 0); value > 0 {
			v.Set(key, value)
		}
	}

	if origins := os.Getenv("FS_CORS_ORIGINS"); origins != "" {
		v.Set("server.corsOrigins", splitList(origins))
	}
	if rps := os.Getenv("FS_RATE_LIMIT_RPS"); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			v.Set("server.rateLimit.rps", value)
		}
	}
}

// splitList parses a comma separated list, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper function to get environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	// Seconds
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second
	config.Ledger.IdleTimeout = time.Duration(config.Ledger.IdleTimeout) * time.Second

	// Minutes
	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Auth.TokenTTL = time.Duration(config.Auth.TokenTTL) * time.Minute

	// Milliseconds
	config.Database.SlowQuery = time.Duration(config.Database.SlowQuery) * time.Millisecond
}
