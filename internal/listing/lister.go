package listing

import (
	mfs "github.com/CageChen/dirpager/internal/fs"
	"go.uber.org/zap"
)

// DefaultLimit is the page size used when a caller does not give one.
const DefaultLimit = 50

// Status tells a successful page apart from a retryable soft failure.
type Status int

const (
	// StatusOK means the directory was scanned.
	StatusOK Status = iota
	// StatusUnavailable means the directory could not be opened. The page is
	// empty, the cursor is unchanged and HasMore is true so the caller can
	// retry later.
	StatusUnavailable
)

func (s Status) String() string {
	if s == StatusUnavailable {
		return "unavailable"
	}
	return "ok"
}

// Page is the result of one listing call. For the combined listing HasMore
// mirrors the cursor; for a single-phase listing it is the raw outcome of
// the scan, so it stays true on a soft failure.
type Page struct {
	Items     []string `json:"items"`
	NextToken string   `json:"nextToken"`
	HasMore   bool     `json:"hasMore"`

	Cursor Cursor `json:"-"`
	Status Status `json:"-"`
}

func newPage(items []string, cur Cursor, hasMore bool, status Status) Page {
	if items == nil {
		items = []string{}
	}
	return Page{
		Items:     items,
		NextToken: cur.Encode(),
		HasMore:   hasMore,
		Cursor:    cur,
		Status:    status,
	}
}

// Filter reports whether the entry at path should be left out of a listing.
// Filtered entries are skipped before counting, like inaccessible ones.
type Filter func(path string, entry mfs.DirEntry) bool

// Option configures a Lister.
type Option func(*Lister)

// WithDefaultLimit sets the limit applied when a call passes the zero Limit.
func WithDefaultLimit(l Limit) Option {
	return func(ls *Lister) {
		if !l.IsDefault() {
			ls.defaultLimit = l
		}
	}
}

// WithSafeMode toggles probing every entry and skipping the ones that fail.
func WithSafeMode(on bool) Option {
	return func(ls *Lister) { ls.safeMode = on }
}

// WithFilter excludes entries matching f.
func WithFilter(f Filter) Option {
	return func(ls *Lister) { ls.filter = f }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(log *zap.Logger) Option {
	return func(ls *Lister) {
		if log != nil {
			ls.log = log
		}
	}
}

// Lister pages through directories of a FileSystem. It holds no per-listing
// state and may be shared between goroutines.
type Lister struct {
	fs           mfs.FileSystem
	defaultLimit Limit
	safeMode     bool
	filter       Filter
	log          *zap.Logger
}

// New creates a Lister over fsys. Safe mode is on and the default limit is
// DefaultLimit unless options say otherwise.
func New(fsys mfs.FileSystem, opts ...Option) *Lister {
	ls := &Lister{
		fs:           fsys,
		defaultLimit: Max(DefaultLimit),
		safeMode:     true,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ls)
	}
	return ls
}

// DefaultLimit returns the limit used for calls that pass the zero Limit.
func (l *Lister) DefaultLimit() Limit { return l.defaultLimit }

// SafeMode reports whether inaccessible entries are skipped.
func (l *Lister) SafeMode() bool { return l.safeMode }

func (l *Lister) resolve(limit Limit) Limit {
	if limit.IsDefault() {
		return l.defaultLimit
	}
	return limit
}

// ListAll returns up to limit entries of directory, every subdirectory
// before any other entry. The only error is a malformed token.
func (l *Lister) ListAll(directory, token string, limit Limit) (Page, error) {
	cur, err := ParseCursor(token)
	if err != nil {
		return Page{}, err
	}
	return l.ListAllAt(directory, cur, limit), nil
}

// ListDirectories returns up to limit subdirectories of directory.
func (l *Lister) ListDirectories(directory, token string, limit Limit) (Page, error) {
	cur, err := ParseCursor(token)
	if err != nil {
		return Page{}, err
	}
	return l.ListDirectoriesAt(directory, cur, limit), nil
}

// ListFiles returns up to limit non-directory entries of directory.
func (l *Lister) ListFiles(directory, token string, limit Limit) (Page, error) {
	cur, err := ParseCursor(token)
	if err != nil {
		return Page{}, err
	}
	return l.ListFilesAt(directory, cur, limit), nil
}

// ListDirectoriesAt is ListDirectories resuming from a decoded cursor.
func (l *Lister) ListDirectoriesAt(directory string, cur Cursor, limit Limit) Page {
	r := l.listPhase(directory, PhaseDirectories, cur, l.resolve(limit))
	return newPage(r.items, r.cursor, r.hasMore, r.status)
}

// ListFilesAt is ListFiles resuming from a decoded cursor.
func (l *Lister) ListFilesAt(directory string, cur Cursor, limit Limit) Page {
	r := l.listPhase(directory, PhaseFiles, cur, l.resolve(limit))
	return newPage(r.items, r.cursor, r.hasMore, r.status)
}

// ListAllAt is ListAll resuming from a decoded cursor.
//
// The directory phase runs first. When it finishes within the call, the
// file phase continues with whatever budget is left, so a single page can
// hold the tail of the directories and the head of the files.
func (l *Lister) ListAllAt(directory string, cur Cursor, limit Limit) Page {
	limit = l.resolve(limit)
	remaining := limit
	status := StatusOK
	var items []string

	if !cur.FinishedDirectories {
		r := l.listPhase(directory, PhaseDirectories, cur, limit)
		cur = r.cursor
		remaining = limit.less(len(r.items))
		items = append(items, r.items...)
		status = r.status

		// Reported even when the directory phase just ran out; callers
		// depend on this exact cursor sequence.
		if limit.admits(len(items)) {
			cur.HasMore = true
		}
	}

	if cur.FinishedDirectories && !cur.FinishedFiles {
		r := l.listPhase(directory, PhaseFiles, cur, remaining)
		cur = r.cursor
		items = append(items, r.items...)
		if r.status != StatusOK {
			status = r.status
		}
	}

	return newPage(items, cur, cur.HasMore, status)
}
