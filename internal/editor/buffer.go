package editor

import "sort"

// LineBuffer is an in-memory Buffer backed by a rune slice.
// It exists for tests and the bundled terminal host; real hosts adapt
// their own text storage to the Buffer interface.
type LineBuffer struct {
	text  []rune
	lines []int // rune offsets of line starts; lines[0] is always 0
	caret int
}

// NewLineBuffer creates a buffer with the given initial text.
func NewLineBuffer(text string) *LineBuffer {
	b := &LineBuffer{text: []rune(text)}
	b.reindex()
	return b
}

// reindex rebuilds the line start table.
func (b *LineBuffer) reindex() {
	b.lines = b.lines[:0]
	b.lines = append(b.lines, 0)
	for i, r := range b.text {
		if r == '\n' {
			b.lines = append(b.lines, i+1)
		}
	}
}

// String returns the full buffer text.
func (b *LineBuffer) String() string {
	return string(b.text)
}

// Length returns the total text length in runes.
func (b *LineBuffer) Length() int {
	return len(b.text)
}

// LineCount returns the number of lines.
func (b *LineBuffer) LineCount() int {
	return len(b.lines)
}

// LineOf returns the 0-indexed line containing the given offset.
func (b *LineBuffer) LineOf(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset > len(b.text) {
		offset = len(b.text)
	}
	// First line start strictly after offset, minus one.
	i := sort.Search(len(b.lines), func(i int) bool {
		return b.lines[i] > offset
	})
	return i - 1
}

// LineStart returns the offset of the first character of the line.
func (b *LineBuffer) LineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(b.lines) {
		return len(b.text)
	}
	return b.lines[line]
}

// LineEnd returns the offset of the line's terminator, or the buffer
// length for the final line.
func (b *LineBuffer) LineEnd(line int) int {
	if line < 0 {
		line = 0
	}
	if line+1 < len(b.lines) {
		return b.lines[line+1] - 1
	}
	return len(b.text)
}

// CharAt returns the rune at the given offset, or 0 past the end.
func (b *LineBuffer) CharAt(offset int) rune {
	if offset < 0 || offset >= len(b.text) {
		return 0
	}
	return b.text[offset]
}

// Slice returns the text covered by the range.
func (b *LineBuffer) Slice(r Range) string {
	r = r.Clamp(len(b.text))
	return string(b.text[r.Start:r.End])
}

// PointOf converts a rune offset to a line/column position.
func (b *LineBuffer) PointOf(offset int) Point {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.text) {
		offset = len(b.text)
	}
	line := b.LineOf(offset)
	return Point{Line: line, Col: offset - b.lines[line]}
}

// OffsetOf converts a line/column position to a rune offset, clamping
// the column to the line's length.
func (b *LineBuffer) OffsetOf(p Point) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(b.lines) {
		return len(b.text)
	}
	start := b.lines[p.Line]
	end := b.LineEnd(p.Line)
	col := p.Col
	if col < 0 {
		col = 0
	}
	if start+col > end {
		return end
	}
	return start + col
}

// Replace substitutes the text in the range.
func (b *LineBuffer) Replace(r Range, text string) {
	r = r.Clamp(len(b.text))
	repl := []rune(text)
	out := make([]rune, 0, len(b.text)-r.Len()+len(repl))
	out = append(out, b.text[:r.Start]...)
	out = append(out, repl...)
	out = append(out, b.text[r.End:]...)
	b.text = out
	b.reindex()
	if b.caret > len(b.text) {
		b.caret = len(b.text)
	}
}

// Insert places text at the given offset.
func (b *LineBuffer) Insert(offset int, text string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.text) {
		offset = len(b.text)
	}
	b.Replace(Range{Start: offset, End: offset}, text)
}

// Delete removes the text in the range.
func (b *LineBuffer) Delete(r Range) {
	b.Replace(r, "")
}

// Caret returns a snapshot of the current cursor position.
func (b *LineBuffer) Caret() Caret {
	return Caret{Offset: b.caret, Point: b.PointOf(b.caret)}
}

// MoveCaret relocates the cursor, clamped to the buffer bounds.
func (b *LineBuffer) MoveCaret(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.text) {
		offset = len(b.text)
	}
	b.caret = offset
}
