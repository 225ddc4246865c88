package editor

import "fmt"

// Point represents a line and column position.
// Both Line and Col are 0-indexed. Col is measured in runes from the
// start of the line.
type Point struct {
	Line int
	Col  int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// Caret is an immutable snapshot of a cursor position.
// The engine references carets; it never owns them.
type Caret struct {
	// Offset is the rune offset into the buffer text.
	Offset int

	// Point is the equivalent line/column position.
	Point Point
}

// String returns a human-readable representation of the caret.
func (c Caret) String() string {
	return fmt.Sprintf("%d%s", c.Offset, c.Point)
}
