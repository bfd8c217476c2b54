package listing

import (
	"fmt"
	"strconv"
	"strings"
)

type limitMode int

const (
	limitDefault limitMode = iota
	limitBounded
	limitUnlimited
)

// Limit is the maximum number of items a single call may return.
//
// The zero value defers to the lister's default limit.
type Limit struct {
	mode limitMode
	n    int
}

// Unlimited lets a call scan every remaining entry.
var Unlimited = Limit{mode: limitUnlimited}

// Max returns a limit of n items. Any negative n means Unlimited.
func Max(n int) Limit {
	if n < 0 {
		return Unlimited
	}
	return Limit{mode: limitBounded, n: n}
}

// ParseLimit parses a decimal page size. The empty string selects the
// lister's default.
func ParseLimit(s string) (Limit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Limit{}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Limit{}, fmt.Errorf("invalid limit %q: %w", s, err)
	}
	return Max(n), nil
}

// IsDefault reports whether l defers to the lister's default.
func (l Limit) IsDefault() bool { return l.mode == limitDefault }

// IsUnlimited reports whether l never stops a scan.
func (l Limit) IsUnlimited() bool { return l.mode == limitUnlimited }

// Value returns the bounded page size, or -1 when unlimited.
func (l Limit) Value() int {
	if l.mode == limitUnlimited {
		return -1
	}
	return l.n
}

func (l Limit) String() string {
	switch l.mode {
	case limitDefault:
		return "default"
	case limitUnlimited:
		return "unlimited"
	default:
		return strconv.Itoa(l.n)
	}
}

// reached reports whether emitted items fill the page.
func (l Limit) reached(emitted int) bool {
	return l.mode == limitBounded && emitted == l.n
}

// less returns the budget left after used items were spent.
func (l Limit) less(used int) Limit {
	if l.mode != limitBounded {
		return l
	}
	return Limit{mode: limitBounded, n: l.n - used}
}

// admits reports whether total items fit within the limit.
func (l Limit) admits(total int) bool {
	return l.mode != limitBounded || total <= l.n
}
