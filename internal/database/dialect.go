package database

import (
	"database/sql"
	"regexp"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect abstracts over the differences between the supported databases.
// Queries throughout the codebase are written with ? placeholders and
// rewritten per dialect.
type Dialect interface {
	DriverName() string
	DSN(cfg DialectConfig) string
	RewriteQuery(query string) string
	SupportsLastInsertId() bool
	ConfigureConnection(db *sql.DB) error
	MigrationsSubdir() string
}

// DialectConfig holds connection parameters; Path is used by SQLite,
// URL by PostgreSQL and MySQL.
type DialectConfig struct {
	Path string
	URL  string
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
}

type sqliteDialect struct{}

func (sqliteDialect) DriverName() string               { return "sqlite3" }
func (sqliteDialect) DSN(cfg DialectConfig) string     { return cfg.Path }
func (sqliteDialect) RewriteQuery(query string) string { return query }
func (sqliteDialect) SupportsLastInsertId() bool       { return true }
func (sqliteDialect) MigrationsSubdir() string         { return "sqlite" }

func (sqliteDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)
	// WAL mode for concurrent readers while a game is being scored.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	_, err := db.Exec("PRAGMA foreign_keys=ON;")
	return err
}

type postgresDialect struct{}

func (postgresDialect) DriverName() string           { return "postgres" }
func (postgresDialect) DSN(cfg DialectConfig) string { return cfg.URL }
func (postgresDialect) SupportsLastInsertId() bool   { return false }
func (postgresDialect) MigrationsSubdir() string     { return "postgres" }

var placeholderRegexp = regexp.MustCompile(`\?`)

func (postgresDialect) RewriteQuery(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

func (postgresDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)
	return nil
}

type mysqlDialect struct{}

func (mysqlDialect) DriverName() string               { return "mysql" }
func (mysqlDialect) DSN(cfg DialectConfig) string     { return cfg.URL }
func (mysqlDialect) RewriteQuery(query string) string { return query }
func (mysqlDialect) SupportsLastInsertId() bool       { return true }
func (mysqlDialect) MigrationsSubdir() string         { return "mysql" }

func (mysqlDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)
	return nil
}
