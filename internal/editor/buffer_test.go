package editor

import "testing"

func TestLineBufferIndexing(t *testing.T) {
	b := NewLineBuffer("alpha\nbravo\ncharlie")

	if got := b.LineCount(); got != 3 {
		t.Fatalf("expected 3 lines, got %d", got)
	}

	tests := []struct {
		name      string
		line      int
		wantStart int
		wantEnd   int
	}{
		{"first line", 0, 0, 5},
		{"middle line", 1, 6, 11},
		{"last line", 2, 12, 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.LineStart(tt.line); got != tt.wantStart {
				t.Errorf("LineStart(%d) = %d, want %d", tt.line, got, tt.wantStart)
			}
			if got := b.LineEnd(tt.line); got != tt.wantEnd {
				t.Errorf("LineEnd(%d) = %d, want %d", tt.line, got, tt.wantEnd)
			}
		})
	}
}

func TestLineBufferLineOf(t *testing.T) {
	b := NewLineBuffer("ab\ncd\nef")

	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{2, 0},  // the newline belongs to line 0
		{3, 1},  // first char of line 1
		{5, 1},
		{6, 2},
		{8, 2},  // end of buffer
		{99, 2}, // clamped
		{-1, 0}, // clamped
	}

	for _, tt := range tests {
		if got := b.LineOf(tt.offset); got != tt.want {
			t.Errorf("LineOf(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestLineBufferPointRoundTrip(t *testing.T) {
	b := NewLineBuffer("one\ntwo three\nfour")

	for off := 0; off <= b.Length(); off++ {
		p := b.PointOf(off)
		if got := b.OffsetOf(p); got != off {
			t.Errorf("OffsetOf(PointOf(%d)) = %d", off, got)
		}
	}

	// Column clamps to line end.
	if got := b.OffsetOf(Point{Line: 0, Col: 99}); got != 3 {
		t.Errorf("expected clamp to 3, got %d", got)
	}
}

func TestLineBufferMutation(t *testing.T) {
	b := NewLineBuffer("hello world")
	b.MoveCaret(6)

	b.Delete(Range{Start: 5, End: 11})
	if got := b.String(); got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
	if got := b.Caret().Offset; got != 5 {
		t.Errorf("caret not clamped after delete: %d", got)
	}

	b.Insert(5, ", go")
	if got := b.String(); got != "hello, go" {
		t.Fatalf("expected %q, got %q", "hello, go", got)
	}

	b.Replace(Range{Start: 0, End: 5}, "howdy")
	if got := b.String(); got != "howdy, go" {
		t.Fatalf("expected %q, got %q", "howdy, go", got)
	}
}

func TestLineBufferUnicode(t *testing.T) {
	b := NewLineBuffer("héllo\nwörld")

	if got := b.Length(); got != 11 {
		t.Fatalf("expected rune length 11, got %d", got)
	}
	if got := b.CharAt(1); got != 'é' {
		t.Errorf("CharAt(1) = %q", got)
	}
	if got := b.LineStart(1); got != 6 {
		t.Errorf("LineStart(1) = %d, want 6", got)
	}
	if got := b.Slice(Range{Start: 6, End: 11}); got != "wörld" {
		t.Errorf("Slice = %q", got)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeNormal, "normal"},
		{ModeInsert, "insert"},
		{ModeVisualChar, "visual"},
		{ModeVisualLine, "visual-line"},
		{ModeVisualBlock, "visual-block"},
		{ModeSelect, "select"},
		{ModeOperatorPending, "operator-pending"},
		{Mode(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}

	if ModeNormal.IsVisual() {
		t.Error("normal mode should not be visual")
	}
	if !ModeVisualLine.IsVisual() {
		t.Error("visual-line mode should be visual")
	}
}
