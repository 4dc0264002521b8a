package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library, kept as
// a local name so callers of this package do not import io/fs directly.
type FileInfo = fs.FileInfo

// File is a discovered file with its metadata and content accessor.
type File interface {
	// Path returns the absolute path to the file.
	Path() string

	// RelativePath returns the path relative to the directory the walk
	// started from.
	RelativePath() string

	// Info returns file metadata.
	Info() FileInfo

	// ReadContent returns the file's content.
	ReadContent() ([]byte, error)
}

// Directory is a directory tree that can be traversed to discover files.
type Directory interface {
	// Path returns the absolute path to the directory.
	Path() string

	// Walk traverses the directory tree, calling fn for each file and
	// directory. If fn returns an error, walking stops.
	Walk(fn func(File, error) error) error
}

// Provider is a factory for Directory instances plus direct file access.
type Provider interface {
	// Open opens a directory at the specified path.
	Open(path string) (Directory, error)

	// ReadFile reads the file at the given path.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}
