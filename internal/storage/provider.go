// Package storage defines the source-directory file-system abstraction.
package storage

import "io/fs"

// Provider is the interface for operations on the source directory.
type Provider interface {
	// Root returns the absolute path of the source directory.
	Root() string
	// Entries returns the names of the immediate entries of the root, sorted.
	Entries() ([]string, error)
	// EnsureDir creates dir (relative to root) and any missing parents.
	EnsureDir(dir string) error
	// MoveInto renames the root entry name to dir/name (dir relative to root).
	MoveInto(name, dir string) error
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Stat returns file info for path (relative to root) without following symlinks.
	Stat(path string) (fs.FileInfo, error)
}
