package listing

import (
	"go.uber.org/zap"
)

type scanResult struct {
	items   []string
	cursor  Cursor
	hasMore bool
	status  Status
}

// scan makes one pass over directory collecting entries of phase p that
// come after cur.Position, stopping once limit items are held and another
// entry is waiting.
func (l *Lister) scan(directory string, p Phase, cur Cursor, limit Limit) (scanResult, error) {
	if !cur.HasMore && cur.finished(p) {
		l.log.Debug("phase already exhausted",
			zap.String("dir", directory), zap.Stringer("phase", p))
		return scanResult{cursor: cur}, nil
	}

	entries, err := l.fs.ReadDir(directory)
	if err != nil {
		return scanResult{}, err
	}

	var items []string
	count := 0
	hasMore := false
	wantDir := p == PhaseDirectories

	for _, entry := range entries {
		if limit.reached(len(items)) {
			hasMore = true
			break
		}

		path := l.fs.Join(directory, entry.Name)

		if l.filter != nil && l.filter(path, entry) {
			continue
		}

		if l.safeMode {
			if _, err := l.fs.Stat(path); err != nil {
				l.log.Debug("skipping inaccessible entry",
					zap.String("path", path), zap.Error(err))
				continue
			}
		}

		if entry.IsDir != wantDir {
			continue
		}

		count++
		if count <= cur.Position {
			continue
		}
		items = append(items, path)
	}

	next := cur
	next.Position = len(items) + cur.Position
	next.HasMore = hasMore && !cur.Terminal()

	return scanResult{items: items, cursor: next, hasMore: hasMore}, nil
}

// listPhase runs scan for one phase and records the phase as finished when
// the scan ran out of entries. A directory that cannot be read gives an
// empty page with the cursor it was called with and HasMore set.
func (l *Lister) listPhase(directory string, p Phase, cur Cursor, limit Limit) scanResult {
	r, err := l.scan(directory, p, cur, limit)
	if err != nil {
		l.log.Warn("directory unavailable",
			zap.String("dir", directory), zap.Stringer("phase", p), zap.Error(err))
		return scanResult{cursor: cur, hasMore: true, status: StatusUnavailable}
	}

	if !r.hasMore {
		r.cursor = r.cursor.finish(p)
	}
	return r
}
