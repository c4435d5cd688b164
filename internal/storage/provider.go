// Package storage defines the content repository file-system abstraction.
package storage

import "io/fs"

// Provider is the interface for repository file operations. All paths are
// slash-separated and relative to the repository root.
type Provider interface {
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Copy atomically copies the file src to dst, creating parent directories.
	Copy(src, dst string) error
	// Rename moves a file or directory from oldPath to newPath.
	Rename(oldPath, newPath string) error
	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error
	// RemoveAll deletes path and everything below it.
	RemoveAll(path string) error
	// Exists reports whether path exists. Errors other than "not exist" are returned.
	Exists(path string) (bool, error)
	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)
	// ReadDir lists the entries of dir sorted by name.
	ReadDir(dir string) ([]fs.DirEntry, error)
	// Files lists every regular file below dir, recursively, relative to dir.
	// A missing dir yields no files.
	Files(dir string) ([]string, error)
	// FS exposes the repository as a read-only fs.FS for globbing.
	FS() fs.FS
	// Root returns the absolute repository root.
	Root() string
}
