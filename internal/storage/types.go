package storage

import "errors"

// ErrNotFound is returned by Get when a key holds no value.
var ErrNotFound = errors.New("key not found")

// WatchFunc is called with the (unscoped) key after it changed.
type WatchFunc func(key string)

// Stats holds aggregate statistics about a backend.
type Stats struct {
	Driver    string
	TotalKeys int64
	SizeBytes int64
}
