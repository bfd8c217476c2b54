// Package handler provides HTTP handlers for the dirpager REST API.
package handler

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/CageChen/dirpager/internal/config"
	mfs "github.com/CageChen/dirpager/internal/fs"
	"github.com/CageChen/dirpager/internal/listing"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListHandler handles directory listing API requests
type ListHandler struct {
	cfg *config.Config
	log *zap.Logger
}

// NewListHandler creates a new listing handler
func NewListHandler(cfg *config.Config, log *zap.Logger) *ListHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ListHandler{cfg: cfg, log: log}
}

// fsForFolder returns the appropriate FileSystem for a folder config.
func fsForFolder(folder config.Folder) mfs.FileSystem {
	if folder.GitRef != "" {
		return mfs.NewGitFS(folder.Path, folder.GitRef)
	}
	return mfs.NewLocalFS(folder.Path)
}

// target is a request path resolved against the configured folders.
type target struct {
	folder config.Folder
	dir    string
}

// resolvePath resolves a request path to its folder and the directory
// inside that folder's filesystem.
// Path format: {alias}/{relativePath} e.g., "docs/guides/api"
func (h *ListHandler) resolvePath(reqPath string) (target, error) {
	reqPath = strings.Trim(reqPath, "/")
	if reqPath == "" {
		return target{}, os.ErrNotExist
	}

	// Security: prevent path traversal
	for _, part := range strings.Split(reqPath, "/") {
		if part == ".." {
			return target{}, os.ErrPermission
		}
	}

	alias, rel, _ := strings.Cut(reqPath, "/")
	folder, ok := h.cfg.FolderByAlias(alias)
	if !ok {
		return target{}, os.ErrNotExist
	}

	return target{folder: folder, dir: path.Join(cleanSubPath(folder.SubPath), rel)}, nil
}

// newLister builds a lister for one folder, applying the global and
// folder-level excludes.
func (h *ListHandler) newLister(folder config.Folder) *listing.Lister {
	excludes := folder.Exclude
	filter := func(p string, _ mfs.DirEntry) bool {
		p = filepath.ToSlash(p)
		return h.cfg.IsExcluded(p) || h.cfg.IsFolderExcluded(p, excludes)
	}
	return listing.New(fsForFolder(folder),
		listing.WithDefaultLimit(listing.Max(h.cfg.DefaultLimit)),
		listing.WithSafeMode(h.cfg.SafeMode),
		listing.WithFilter(filter),
		listing.WithLogger(h.log.With(zap.String("folder", folder.Alias))),
	)
}

// publicPath maps a filesystem path back to the {alias}/{relativePath} form.
func publicPath(folder config.Folder, p string) string {
	p = filepath.ToSlash(p)
	if sub := cleanSubPath(folder.SubPath); sub != "" {
		p = strings.TrimPrefix(p, sub+"/")
	}
	return folder.Alias + "/" + p
}

// cleanSubPath normalizes a configured sub_path to the form path.Join
// produces, without leading or trailing slashes.
func cleanSubPath(sub string) string {
	return strings.Trim(path.Clean("/"+sub), "/")
}

type listFunc func(l *listing.Lister, dir, token string, limit listing.Limit) (listing.Page, error)

// ListAll returns a page of directories followed by files
func (h *ListHandler) ListAll(c *gin.Context) {
	h.list(c, (*listing.Lister).ListAll)
}

// ListDirectories returns a page of subdirectories only
func (h *ListHandler) ListDirectories(c *gin.Context) {
	h.list(c, (*listing.Lister).ListDirectories)
}

// ListFiles returns a page of non-directory entries only
func (h *ListHandler) ListFiles(c *gin.Context) {
	h.list(c, (*listing.Lister).ListFiles)
}

func (h *ListHandler) list(c *gin.Context, fn listFunc) {
	t, err := h.resolvePath(c.Query("path"))
	if err != nil {
		status := http.StatusBadRequest
		msg := err.Error()
		if os.IsNotExist(err) {
			status = http.StatusNotFound
			msg = "folder not found"
		} else if os.IsPermission(err) {
			status = http.StatusForbidden
			msg = "invalid path"
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	limit, err := listing.ParseLimit(c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := fn(h.newLister(t.folder), t.dir, c.Query("cursor"), limit)
	if err != nil {
		if errors.Is(err, listing.ErrMalformedCursor) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i, item := range page.Items {
		page.Items[i] = publicPath(t.folder, item)
	}

	h.log.Debug("listed",
		zap.String("folder", t.folder.Alias),
		zap.String("dir", t.dir),
		zap.Stringer("limit", limit),
		zap.Int("items", len(page.Items)),
		zap.Bool("hasMore", page.HasMore),
		zap.Stringer("status", page.Status),
	)

	c.JSON(http.StatusOK, page)
}

// GetFolders returns the configured folders and global excludes
func (h *ListHandler) GetFolders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"folders":       h.cfg.Folders,
		"globalExclude": h.cfg.Exclude,
		"defaultLimit":  h.cfg.DefaultLimit,
	})
}
