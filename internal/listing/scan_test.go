package listing

import (
	"errors"
	"os"
	"path"
	"testing"

	mfs "github.com/CageChen/dirpager/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFS serves one directory level from memory and fails the probe for
// entries listed in denied.
type fakeFS struct {
	dirs      map[string][]mfs.DirEntry
	denied    map[string]bool
	readDirs  int
	statCalls map[string]int
}

func newFakeFS(entries ...mfs.DirEntry) *fakeFS {
	return &fakeFS{
		dirs:      map[string][]mfs.DirEntry{"/root": entries},
		denied:    map[string]bool{},
		statCalls: map[string]int{},
	}
}

func (f *fakeFS) ReadDir(p string) ([]mfs.DirEntry, error) {
	f.readDirs++
	entries, ok := f.dirs[p]
	if !ok {
		return nil, os.ErrNotExist
	}
	return entries, nil
}

func (f *fakeFS) Stat(p string) (mfs.FileInfo, error) {
	f.statCalls[p]++
	if f.denied[p] {
		return mfs.FileInfo{}, os.ErrPermission
	}
	return mfs.FileInfo{Name: path.Base(p)}, nil
}

func (f *fakeFS) Join(dir, name string) string {
	return path.Join(dir, name)
}

func TestScan_DeniedEntriesAreNotCounted(t *testing.T) {
	f := newFakeFS(
		mfs.DirEntry{Name: "a", IsDir: true},
		mfs.DirEntry{Name: "secret", IsDir: true},
		mfs.DirEntry{Name: "b", IsDir: true},
		mfs.DirEntry{Name: "x.txt"},
	)
	f.denied["/root/secret"] = true
	l := New(f)

	page := l.ListDirectoriesAt("/root", NewCursor(), Max(1))
	assert.Equal(t, []string{"/root/a"}, page.Items)
	assert.Equal(t, 1, page.Cursor.Position)

	page = l.ListDirectoriesAt("/root", page.Cursor, Max(1))
	assert.Equal(t, []string{"/root/b"}, page.Items)

	page = l.ListDirectoriesAt("/root", NewCursor(), Unlimited)
	assert.Equal(t, []string{"/root/a", "/root/b"}, page.Items)

	// The probe is repeated on every scan rather than remembered.
	assert.Equal(t, 2, f.statCalls["/root/secret"])
}

func TestScan_UnsafeModeSkipsProbe(t *testing.T) {
	f := newFakeFS(mfs.DirEntry{Name: "secret", IsDir: true})
	f.denied["/root/secret"] = true

	page := New(f, WithSafeMode(false)).ListDirectoriesAt("/root", NewCursor(), Unlimited)
	assert.Equal(t, []string{"/root/secret"}, page.Items)
	assert.Empty(t, f.statCalls)
}

func TestScan_ShortCircuitsExhaustedPhase(t *testing.T) {
	f := newFakeFS(mfs.DirEntry{Name: "a", IsDir: true})
	l := New(f)
	cur := Cursor{FinishedDirectories: true}

	r, err := l.scan("/root", PhaseDirectories, cur, Max(10))
	require.NoError(t, err)
	assert.Empty(t, r.items)
	assert.False(t, r.hasMore)
	assert.Equal(t, cur, r.cursor)
	assert.Zero(t, f.readDirs)

	// A finished phase with HasMore set is scanned again.
	cur.HasMore = true
	_, err = l.scan("/root", PhaseDirectories, cur, Max(10))
	require.NoError(t, err)
	assert.Equal(t, 1, f.readDirs)
}

func TestScan_PositionAccounting(t *testing.T) {
	f := newFakeFS(
		mfs.DirEntry{Name: "d1", IsDir: true},
		mfs.DirEntry{Name: "f1"},
		mfs.DirEntry{Name: "d2", IsDir: true},
		mfs.DirEntry{Name: "d3", IsDir: true},
		mfs.DirEntry{Name: "f2"},
	)
	l := New(f)

	r, err := l.scan("/root", PhaseDirectories, Cursor{Position: 1, HasMore: true}, Max(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"/root/d2"}, r.items)
	assert.True(t, r.hasMore)
	assert.Equal(t, 2, r.cursor.Position)
	assert.True(t, r.cursor.HasMore)
}

func TestScan_TerminalCursorNeverReportsMore(t *testing.T) {
	f := newFakeFS(mfs.DirEntry{Name: "f1"}, mfs.DirEntry{Name: "f2"})
	l := New(f)

	r, err := l.scan("/root", PhaseFiles, Cursor{HasMore: true, FinishedDirectories: true, FinishedFiles: true}, Max(1))
	require.NoError(t, err)
	assert.True(t, r.hasMore)
	assert.False(t, r.cursor.HasMore)
}

func TestListPhase_ReadDirFailure(t *testing.T) {
	l := New(newFakeFS())
	cur := Cursor{Position: 2, HasMore: true}

	r := l.listPhase("/elsewhere", PhaseFiles, cur, Max(5))
	assert.Empty(t, r.items)
	assert.True(t, r.hasMore)
	assert.Equal(t, cur, r.cursor)
	assert.Equal(t, StatusUnavailable, r.status)

	_, err := l.scan("/elsewhere", PhaseFiles, cur, Max(5))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestListAll_FilePhaseUnavailable(t *testing.T) {
	l := New(newFakeFS())
	cur := Cursor{Position: 3, HasMore: true, FinishedDirectories: true}

	page := l.ListAllAt("/elsewhere", cur, Max(5))
	assert.Empty(t, page.Items)
	assert.Equal(t, cur, page.Cursor)
	assert.Equal(t, StatusUnavailable, page.Status)
}
