package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Model       ModelConfig    `mapstructure:"model"`
	Admin       AdminConfig    `mapstructure:"admin"`
	Ledger      LedgerConfig   `mapstructure:"ledger"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string          `mapstructure:"host"`
	Port              int             `mapstructure:"port"`
	ReadTimeout       time.Duration   `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration   `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration   `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration   `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration   `mapstructure:"shutdownTimeout"`   // seconds
	CORSOrigins       []string        `mapstructure:"corsOrigins"`
	RateLimit         RateLimitConfig `mapstructure:"rateLimit"`
}

// RateLimitConfig limits requests per client IP; zero RPS disables the limiter
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	SlowQuery       time.Duration `mapstructure:"slowQueryMs"`     // milliseconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig contains token and password hashing settings
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwtSecret"`
	TokenTTL   time.Duration `mapstructure:"tokenTTLMinutes"` // minutes
	BcryptCost int           `mapstructure:"bcryptCost"`
}

// ModelConfig locates the classifier artifact
type ModelConfig struct {
	Path string `mapstructure:"path"`
	// FeatureOrder is a comma separated list; empty means the artifact or default order
	FeatureOrder string `mapstructure:"featureOrder"`
}

// AdminConfig describes the administrator created on first start
type AdminConfig struct {
	Seed         bool   `mapstructure:"seed"`
	SeedEmail    string `mapstructure:"seedEmail"`
	SeedUsername string `mapstructure:"seedUsername"`
	SeedPassword string `mapstructure:"seedPassword"`
	SeedName     string `mapstructure:"seedName"`
}

// LedgerConfig tunes the per-user sequencer
type LedgerConfig struct {
	IdleTimeout time.Duration `mapstructure:"idleTimeout"` // seconds
}
