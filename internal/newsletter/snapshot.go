package newsletter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lepinkainen/newsletter-forge/pkg/database"
)

const snapshotTable = "feed_snapshots"

// Snapshots stores the last successfully fetched feed body per URL
type Snapshots interface {
	Save(url string, body []byte) error
	Load(url string) ([]byte, bool, error)
}

// SnapshotStore keeps feed snapshots in SQLite
type SnapshotStore struct {
	db    *database.Database
	cache *database.Cache
	ttl   time.Duration
}

// OpenSnapshotStore opens (or creates) the snapshot database at path.
// Snapshots older than ttl are discarded on open.
func OpenSnapshotStore(path string, ttl time.Duration) (*SnapshotStore, error) {
	db, err := database.NewDatabase(database.Config{Path: path})
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}

	cache := database.NewCache(db, snapshotTable)
	if err := cache.InitializeCache(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing snapshot table: %w", err)
	}
	if err := cache.CleanupExpired(); err != nil {
		slog.Warn("Failed to clean up expired feed snapshots", "error", err)
	}

	slog.Debug("Opened feed snapshot store", "path", db.Path(), "ttl", ttl)
	return &SnapshotStore{db: db, cache: cache, ttl: ttl}, nil
}

// Save stores body as the latest snapshot of url
func (s *SnapshotStore) Save(url string, body []byte) error {
	return s.cache.Set(url, body, s.ttl)
}

// Load returns the latest unexpired snapshot of url
func (s *SnapshotStore) Load(url string) ([]byte, bool, error) {
	entry, ok, err := s.cache.Get(url)
	if err != nil || !ok {
		return nil, ok, err
	}
	slog.Debug("Loaded feed snapshot", "url", url, "stored_at", entry.StoredAt)
	return entry.Value, true, nil
}

// Close closes the snapshot database
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
