// Package listing pages through the immediate children of a directory,
// directories first, carrying all progress in an opaque cursor token so no
// state is kept between calls.
package listing

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedCursor is returned when a cursor token cannot be decoded.
var ErrMalformedCursor = errors.New("malformed cursor")

// Phase identifies which kind of entry a cursor is currently paging through.
type Phase int

// Listing phases, in the order they run.
const (
	PhaseDirectories Phase = iota
	PhaseFiles
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseDirectories:
		return "directories"
	case PhaseFiles:
		return "files"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Cursor is the pagination state threaded through successive calls.
//
// Position counts the entries of the active phase already returned. HasMore
// records whether the last scan stopped on the limit rather than running out
// of entries. The field order is the wire order of the encoded token.
type Cursor struct {
	Position            int  `json:"position"`
	HasMore             bool `json:"hasMore"`
	FinishedDirectories bool `json:"finishedDirectories"`
	FinishedFiles       bool `json:"finishedFiles"`
}

// NewCursor returns the cursor that starts a listing from the beginning.
func NewCursor() Cursor {
	return Cursor{HasMore: true}
}

// ParseCursor decodes a token produced by Encode. The empty token yields
// NewCursor. Field values are taken as they are.
func ParseCursor(token string) (Cursor, error) {
	if token == "" {
		return NewCursor(), nil
	}
	var c *Cursor
	if err := json.Unmarshal([]byte(token), &c); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrMalformedCursor, err)
	}
	if c == nil {
		return Cursor{}, fmt.Errorf("%w: token is not an object", ErrMalformedCursor)
	}
	return *c, nil
}

// Encode serializes the cursor into an opaque token.
func (c Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return string(data)
}

// Phase reports the active phase.
func (c Cursor) Phase() Phase {
	switch {
	case !c.FinishedDirectories:
		return PhaseDirectories
	case !c.FinishedFiles:
		return PhaseFiles
	default:
		return PhaseDone
	}
}

// Terminal reports whether both phases are finished.
func (c Cursor) Terminal() bool {
	return c.FinishedDirectories && c.FinishedFiles
}

func (c Cursor) finished(p Phase) bool {
	switch p {
	case PhaseDirectories:
		return c.FinishedDirectories
	case PhaseFiles:
		return c.FinishedFiles
	default:
		return true
	}
}

// finish marks p exhausted and rewinds the position for the next phase.
func (c Cursor) finish(p Phase) Cursor {
	switch p {
	case PhaseDirectories:
		c.FinishedDirectories = true
	case PhaseFiles:
		c.FinishedFiles = true
	}
	c.Position = 0
	return c
}
