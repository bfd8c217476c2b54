// Package fs provides the filesystem collaborators a listing runs against:
// directory enumeration, a per-entry probe and path joining, backed by either
// the local disk or a git object database.
package fs

// FileInfo holds the metadata a probe returns.
type FileInfo struct {
	Name  string
	IsDir bool
}

// DirEntry represents a single directory entry.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileSystem abstracts directory access so the lister can work with either
// the local filesystem or a git object database.
type FileSystem interface {
	// ReadDir lists the immediate children of path in a stable order.
	ReadDir(path string) ([]DirEntry, error)
	// Stat probes path; an error means the entry is not accessible.
	Stat(path string) (FileInfo, error)
	// Join builds the path of the entry name inside dir.
	Join(dir, name string) string
}
