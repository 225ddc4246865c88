package editor

// View provides read-only access to buffer text.
// All offsets are rune offsets; all queries are over a consistent
// snapshot of the text (the engine is driven from a single goroutine).
type View interface {
	// Length returns the total text length in runes.
	Length() int

	// LineCount returns the number of lines. An empty buffer has one line.
	LineCount() int

	// LineOf returns the 0-indexed line containing the given offset.
	LineOf(offset int) int

	// LineStart returns the offset of the first character of the line.
	LineStart(line int) int

	// LineEnd returns the offset of the line's terminator, or Length()
	// for the final line.
	LineEnd(line int) int

	// CharAt returns the rune at the given offset, or 0 past the end.
	CharAt(offset int) rune

	// Slice returns the text covered by the range.
	Slice(r Range) string

	// PointOf converts a rune offset to a line/column position.
	PointOf(offset int) Point

	// OffsetOf converts a line/column position to a rune offset,
	// clamping the column to the line's length.
	OffsetOf(p Point) int
}

// Buffer extends View with the mutation surface. Only the dispatcher
// invokes mutations; the parser and motion resolver see View alone.
type Buffer interface {
	View

	// Replace substitutes the text in the range.
	Replace(r Range, text string)

	// Insert places text at the given offset.
	Insert(offset int, text string)

	// Delete removes the text in the range.
	Delete(r Range)

	// Caret returns a snapshot of the current cursor position.
	Caret() Caret

	// MoveCaret relocates the cursor to the given offset, clamped to
	// the buffer bounds.
	MoveCaret(offset int)
}
