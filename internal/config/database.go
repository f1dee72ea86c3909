package config

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance
var DB *gorm.DB

// Connection pool sizing for a single-instance deployment.
const (
	dbMaxIdleConns    = 5
	dbMaxOpenConns    = 50
	dbConnMaxLifetime = 30 * time.Minute
)

// ConnectDatabase opens the MySQL connection and configures the pool
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	// Dev logs every query, prod only errors
	logLevel := logger.Error
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(buildDSN(cfg.Database)), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(dbMaxIdleConns)
	sqlDB.SetMaxOpenConns(dbMaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db

	log.Printf("✅ Connected to MySQL %s:%s/%s (pool %d/%d)",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		dbMaxIdleConns,
		dbMaxOpenConns,
	)

	return db, nil
}

// buildDSN returns the MySQL connection string. Times parse in UTC so
// date columns line up with the calendar-day fee arithmetic.
func buildDSN(d DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
	)
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// HealthCheck pings the database
func HealthCheck() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}
