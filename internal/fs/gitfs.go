package fs

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"strings"
)

// ErrNotDir is returned when a directory listing targets a non-tree object.
var ErrNotDir = errors.New("not a directory")

// GitFS implements FileSystem by reading trees from a git ref (branch, tag, or commit).
type GitFS struct {
	repoPath string
	ref      string
}

// NewGitFS creates a GitFS that reads trees from the given ref in the repository at repoPath.
func NewGitFS(repoPath, ref string) *GitFS {
	return &GitFS{repoPath: repoPath, ref: ref}
}

func (g *GitFS) git(args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", g.repoPath}, args...)...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

func cleanObjPath(p string) string {
	p = strings.Trim(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// objectType returns the git object type ("tree", "blob", ...) at p.
func (g *GitFS) objectType(p string) (string, error) {
	if p == "" {
		if _, err := g.git("rev-parse", "--verify", g.ref+"^{tree}"); err != nil {
			return "", os.ErrNotExist
		}
		return "tree", nil
	}
	out, err := g.git("cat-file", "-t", g.ref+":"+p)
	if err != nil {
		return "", os.ErrNotExist
	}
	return strings.TrimSpace(out), nil
}

// Stat returns metadata for the file or directory at the given path in the git ref.
func (g *GitFS) Stat(p string) (FileInfo, error) {
	objPath := cleanObjPath(p)
	objType, err := g.objectType(objPath)
	if err != nil {
		return FileInfo{}, err
	}
	name := path.Base(objPath)
	if objPath == "" {
		name = g.ref
	}
	return FileInfo{
		Name:  name,
		IsDir: objType == "tree",
	}, nil
}

// ReadDir lists the immediate children of the tree at the given path in the
// git ref, in the order git stores them.
func (g *GitFS) ReadDir(p string) ([]DirEntry, error) {
	objPath := cleanObjPath(p)

	objType, err := g.objectType(objPath)
	if err != nil {
		return nil, err
	}
	if objType != "tree" {
		return nil, fmt.Errorf("%s: %w", p, ErrNotDir)
	}

	// git ls-tree -z <ref> [<path>/] -- lists immediate children, names unquoted
	var out string
	if objPath == "" {
		out, err = g.git("ls-tree", "-z", g.ref)
	} else {
		out, err = g.git("ls-tree", "-z", g.ref, objPath+"/")
	}
	if err != nil {
		return nil, err
	}

	entries := []DirEntry{}
	for _, line := range strings.Split(out, "\x00") {
		if line == "" {
			continue
		}
		// Format: "<mode> <type> <hash>\t<name>"
		tabIdx := strings.IndexByte(line, '\t')
		if tabIdx < 0 {
			continue
		}
		fields := strings.Fields(line[:tabIdx])
		if len(fields) < 3 {
			continue
		}
		entries = append(entries, DirEntry{
			Name:  path.Base(line[tabIdx+1:]),
			IsDir: fields[1] == "tree",
		})
	}

	return entries, nil
}

// Join joins dir and name with forward slashes, the separator git uses.
func (g *GitFS) Join(dir, name string) string {
	return path.Join(dir, name)
}
