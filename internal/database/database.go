package database

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a PostgreSQL connection for the given portal URL. The portal
// holds exactly one connection at a time, so the pool is capped at a single
// open connection.
func Connect(dbURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	log.Debug("database connection established")
	return db, nil
}

// Close releases the connection behind db. Safe to call with nil.
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// ValidateURL checks that raw looks like a usable PostgreSQL connection URL:
// postgres scheme, credentials, host, and a database path.
func ValidateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid database URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return fmt.Errorf("database URL must use a postgresql:// scheme, got %q", parsed.Scheme)
	}
	if parsed.User == nil || parsed.User.Username() == "" {
		return fmt.Errorf("database URL must include credentials")
	}
	if parsed.Host == "" {
		return fmt.Errorf("database URL must include a host")
	}
	if strings.Trim(parsed.Path, "/") == "" {
		return fmt.Errorf("database URL must include a database name")
	}
	return nil
}
