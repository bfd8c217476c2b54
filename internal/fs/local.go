package fs

import (
	"os"
	"path/filepath"
)

// LocalFS implements FileSystem using the local filesystem.
type LocalFS struct {
	root string
}

// NewLocalFS creates a LocalFS rooted at the given directory. An empty root
// means paths are used as given.
func NewLocalFS(root string) *LocalFS {
	return &LocalFS{root: root}
}

func (l *LocalFS) abs(path string) string {
	if l.root == "" {
		return path
	}
	if path == "" || path == "." {
		return l.root
	}
	return filepath.Join(l.root, path)
}

// Stat returns metadata for the file or directory at the given path. Symbolic
// links are followed, so a dangling link fails the probe.
func (l *LocalFS) Stat(path string) (FileInfo, error) {
	info, err := os.Stat(l.abs(path))
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{
		Name:  info.Name(),
		IsDir: info.IsDir(),
	}, nil
}

// ReadDir lists the immediate children of the directory at the given path,
// sorted by name.
func (l *LocalFS) ReadDir(path string) ([]DirEntry, error) {
	entries, err := os.ReadDir(l.abs(path))
	if err != nil {
		return nil, err
	}
	result := make([]DirEntry, len(entries))
	for i, e := range entries {
		result[i] = DirEntry{
			Name:  e.Name(),
			IsDir: e.IsDir(),
		}
	}
	return result, nil
}

// Join joins dir and name with the OS separator.
func (l *LocalFS) Join(dir, name string) string {
	return filepath.Join(dir, name)
}
