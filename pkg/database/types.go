// Package database provides a shared SQLite connection and a key/value cache table on top of it.
package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lepinkainen/newsletter-forge/pkg/dbinterfaces"
	"github.com/lepinkainen/newsletter-forge/pkg/filesystem"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// dbCache stores active database connections, keyed by path
	dbCache = make(map[string]*Database)
	// cacheMutex protects the dbCache
	cacheMutex = &sync.Mutex{}
)

// Database represents a thread-safe database connection
type Database struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Ensure Database implements dbinterfaces.Database
var _ dbinterfaces.Database = (*Database)(nil)

// Config holds database configuration
type Config struct {
	Path   string
	Driver string
}

var sqlitePragmas = []string{
	"PRAGMA busy_timeout=5000",  // 5 second timeout for lock contention
	"PRAGMA journal_mode=WAL",   // concurrent readers while a run writes
	"PRAGMA synchronous=NORMAL", // Balance between performance and safety
	"PRAGMA temp_store=memory",  // Store temp tables in memory
}

// NewDatabase opens the database at config.Path, creating its directory if needed.
// Connections are shared per path until closed.
func NewDatabase(config Config) (*Database, error) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	// If a connection for this path already exists, return it
	if db, ok := dbCache[config.Path]; ok {
		return db, nil
	}

	if config.Driver == "" {
		config.Driver = "sqlite"
	}

	if err := filesystem.EnsureDirectoryExists(config.Path); err != nil {
		return nil, err
	}

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", config.Path, err)
	}

	closeOnErr := func(err error) (*Database, error) {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
		return nil, err
	}

	if config.Driver == "sqlite" {
		for _, pragma := range sqlitePragmas {
			if _, err := db.Exec(pragma); err != nil {
				return closeOnErr(fmt.Errorf("failed to apply %q: %w", strings.TrimPrefix(pragma, "PRAGMA "), err))
			}
		}
	}

	// A single run only ever needs a handful of connections
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return closeOnErr(err)
	}

	database := &Database{
		db:     db,
		dbPath: config.Path,
	}
	dbCache[config.Path] = database

	return database, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	// Remove the connection from the cache
	delete(dbCache, db.dbPath)

	db.mu.Lock()
	defer db.mu.Unlock()

	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// DB returns the underlying sql.DB instance (thread-safe)
func (db *Database) DB() *sql.DB {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.db
}

// Path returns the database file path
func (db *Database) Path() string {
	return db.dbPath
}

// ExecuteSchema executes a schema statement
func (db *Database) ExecuteSchema(schema string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.db.Exec(schema)
	return err
}
