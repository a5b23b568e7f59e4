package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lepinkainen/newsletter-forge/pkg/dbinterfaces"
)

// Cache is a key/value table with per-entry expiry. Values are stored as blobs.
type Cache struct {
	db        *Database
	tableName string
	now       func() time.Time
}

// Entry is a single cached value
type Entry struct {
	Key       string
	Value     []byte
	StoredAt  time.Time
	ExpiresAt time.Time
}

// Ensure Cache implements dbinterfaces.CleanupProvider
var _ dbinterfaces.CleanupProvider = (*Cache)(nil)

// NewCache creates a new cache instance
func NewCache(db *Database, tableName string) *Cache {
	return &Cache{
		db:        db,
		tableName: tableName,
		now:       time.Now,
	}
}

// InitializeCache creates the cache table if it doesn't exist
func (c *Cache) InitializeCache() error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			stored_at INTEGER NOT NULL,
			expires_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_%s_expires ON %s(expires_at);
	`, c.tableName, c.tableName, c.tableName)

	return c.db.ExecuteSchema(schema)
}

// Get retrieves an unexpired entry from the cache
func (c *Cache) Get(key string) (*Entry, bool, error) {
	query := fmt.Sprintf(`
		SELECT value, stored_at, expires_at FROM %s
		WHERE key = ? AND expires_at > ?
	`, c.tableName)

	var (
		value              []byte
		storedAt, expireAt int64
	)
	err := c.db.DB().QueryRow(query, key, c.now().Unix()).Scan(&value, &storedAt, &expireAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache value: %w", err)
	}

	return &Entry{
		Key:       key,
		Value:     value,
		StoredAt:  time.Unix(storedAt, 0),
		ExpiresAt: time.Unix(expireAt, 0),
	}, true, nil
}

// Set stores a value in the cache, replacing any previous value for key
func (c *Cache) Set(key string, value []byte, ttl time.Duration) error {
	now := c.now()

	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (key, value, stored_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, c.tableName)

	if _, err := c.db.DB().Exec(query, key, value, now.Unix(), now.Add(ttl).Unix()); err != nil {
		return fmt.Errorf("failed to set cache value: %w", err)
	}

	return nil
}

// CleanupExpired removes expired entries from the cache
func (c *Cache) CleanupExpired() error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= ?`, c.tableName)

	result, err := c.db.DB().Exec(query, c.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to cleanup expired entries: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		slog.Debug("Cleaned up expired cache entries", "table", c.tableName, "count", rowsAffected)
	}

	return nil
}
