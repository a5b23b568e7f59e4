// Package dbinterfaces provides shared database interface definitions.
package dbinterfaces

import "io"

// Database defines the common interface for database operations
type Database interface {
	io.Closer // Close() error
}

// CleanupProvider defines the interface for stores that support cleanup operations
type CleanupProvider interface {
	CleanupExpired() error
}
