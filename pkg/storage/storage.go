// Package storage abstracts the removable card the logger writes to.
// The control core only sees this interface; the real backend is a
// directory on the host filesystem, tests use the in-memory card.
package storage

import "io"

// File is an open, append-only file on the card.
type File interface {
	io.Writer
	// Sync forces buffered data durable. This is the long-latency
	// operation rate-limited by the sync interval.
	Sync() error
	Close() error
}

// Entry describes one directory entry, with children populated for
// subdirectories so listings can be printed recursively.
type Entry struct {
	Name     string
	Size     int64
	Dir      bool
	Children []Entry
}

// Card is the block-storage boundary. Names follow the backend's own
// convention; the logger uses FAT-style upper-case 8.3 names and all
// comparisons against them are exact.
type Card interface {
	// Begin mounts the card. Failure is fatal to the logger.
	Begin() error
	Exists(name string) bool
	// Create opens name for appending, creating it if absent.
	Create(name string) (File, error)
	Open(name string) (io.ReadCloser, error)
	Remove(name string) error
	// List returns the card's root directory tree.
	List() ([]Entry, error)
}

var (
	_ Card = (*DirCard)(nil)
	_ Card = (*MemCard)(nil)
)
