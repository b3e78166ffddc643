package storage

import "time"

// MaxHistoryPerKey bounds how many previous values a database backend retains per key.
const MaxHistoryPerKey = 10

// HistoryEntry is a previous value of a key, captured when it was overwritten.
type HistoryEntry struct {
	Key        string
	Value      []byte
	ReplacedAt time.Time
}

// Historian is implemented by backends that keep overwritten values.
type Historian interface {
	History(key string, limit int) ([]HistoryEntry, error)
}
