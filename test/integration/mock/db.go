// Package mock provides test doubles for the integration suite.
package mock

import (
	"database/sql"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDb opens a fresh in-memory SQLite database and migrates the given
// models. Every scenario gets its own database, so there is no cross-scenario
// state to clear.
func NewDb(models ...any) *gorm.DB {
	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		panic("failed to open in-memory database: " + err.Error())
	}

	// A single connection keeps every query on the same in-memory database.
	dbSQL.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	if err := conn.AutoMigrate(models...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return conn
}
