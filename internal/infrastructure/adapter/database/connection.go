package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// dialector selects the gorm driver for the configuration
func dialector(config *Config) (gorm.Dialector, error) {
	switch config.Driver {
	case DriverSQLite:
		return sqlite.Open(config.DSN()), nil
	case DriverPostgres:
		return postgres.Open(config.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", config.Driver)
	}
}
