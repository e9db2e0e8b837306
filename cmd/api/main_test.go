package main

import (
	"testing"
	"time"

	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *config.Config {
	return &config.Config{
		Environment: config.Development,
		Server: config.ServerConfig{
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			Path:         "fraud_app.db",
			QueryTimeout: 5 * time.Second,
		},
		Logger: config.LoggerConfig{Level: "info"},
		Auth:   config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, BcryptCost: 10},
	}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validConfig()))

	invalid := map[string]func(cfg *config.Config){
		"missing port":        func(cfg *config.Config) { cfg.Server.Port = 0 },
		"missing sqlite path": func(cfg *config.Config) { cfg.Database.Path = "" },
		"unknown driver":      func(cfg *config.Config) { cfg.Database.Driver = "mysql" },
		"missing driver":      func(cfg *config.Config) { cfg.Database.Driver = "" },
		"postgres without host": func(cfg *config.Config) {
			cfg.Database.Driver = "postgres"
		},
		"unknown environment": func(cfg *config.Config) { cfg.Environment = "staging" },
		"empty secret":        func(cfg *config.Config) { cfg.Auth.JWTSecret = "" },
		"zero token ttl":      func(cfg *config.Config) { cfg.Auth.TokenTTL = 0 },
		"incomplete admin seed": func(cfg *config.Config) {
			cfg.Admin = config.AdminConfig{Seed: true, SeedEmail: "admin@example.com"}
		},
	}

	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestValidateConfig_Postgres(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = config.Production
	cfg.Database = config.DatabaseConfig{
		Driver:       "postgres",
		Host:         "db",
		Port:         "5432",
		Username:     "fraud",
		Database:     "fraud",
		SSLMode:      "disable",
		QueryTimeout: 5 * time.Second,
	}

	// insecure production settings only warn
	assert.NoError(t, validateConfig(cfg))
}
