// Package motion resolves motion requests against editor snapshots.
//
// A resolver call is a pure computation: given a view, a caret, a
// motion with its count, and the mode context, it produces a target
// offset plus a motion-type classification. It never mutates text or
// caret state; the dispatcher applies results.
package motion

import "fmt"

// AdjustedOffset is a resolved target offset, optionally carrying the
// "last column" marker. A last-column offset tracks the true end of its
// line even if the line length changes later; hosts keep the caret
// pinned to end-of-line until the next horizontal motion.
type AdjustedOffset struct {
	// Offset is the resolved rune offset.
	Offset int

	// LastColumn marks an offset pinned to its line's end.
	LastColumn bool
}

// Plain returns an unadjusted offset.
func Plain(offset int) AdjustedOffset {
	return AdjustedOffset{Offset: offset}
}

// LastColumn returns an offset carrying the last-column marker.
func LastColumnOffset(offset int) AdjustedOffset {
	return AdjustedOffset{Offset: offset, LastColumn: true}
}

// String returns a human-readable representation.
func (a AdjustedOffset) String() string {
	if a.LastColumn {
		return fmt.Sprintf("%d$", a.Offset)
	}
	return fmt.Sprintf("%d", a.Offset)
}
