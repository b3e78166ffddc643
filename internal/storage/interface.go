package storage

import "errors"

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when a backend is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Backend is a flat key/value store holding one JSON document per collection.
type Backend interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// GetConfigPath returns the file backing the store, or a non-sensitive
	// identifier for server databases.
	GetConfigPath() string
}

// Versioned is implemented by backends whose schema is managed by migrations.
type Versioned interface {
	SchemaVersion() (current, latest int, err error)
}
