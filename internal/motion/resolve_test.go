package motion

import (
	"testing"

	"github.com/duhaesbaert/ideavim/internal/editor"
	"github.com/duhaesbaert/ideavim/internal/option"
)

func testContext(t *testing.T, mode editor.Mode, opPending bool, set func(r *option.Registry)) Context {
	t.Helper()
	r := option.NewRegistryWithDefaults()
	if set != nil {
		set(r)
	}
	return Context{Mode: mode, OperatorPending: opPending, Options: r.GlobalAccessor()}
}

func resolveAt(t *testing.T, text string, caretOff int, m *Motion, count int, char rune, ctx Context) (Result, bool) {
	t.Helper()
	buf := editor.NewLineBuffer(text)
	buf.MoveCaret(caretOff)
	return Resolve(buf, buf.Caret(), Request{Motion: m, Count: count, Char: char}, ctx)
}

func TestHorizontalNoWrap(t *testing.T) {
	// "ab\ncd": without '<'/'h' wrapping, right motion clamps at the
	// line's last character no matter the count.
	ctx := testContext(t, editor.ModeNormal, false, nil)

	res, ok := resolveAt(t, "ab\ncd", 0, &Right, 3, 0, ctx)
	if !ok {
		t.Fatal("resolve failed")
	}
	if res.Offset.Offset != 1 {
		t.Errorf("expected clamp at offset 1, got %d", res.Offset.Offset)
	}
	if res.Type != Exclusive {
		t.Errorf("horizontal motion must be exclusive, got %v", res.Type)
	}

	res, _ = resolveAt(t, "ab\ncd", 3, &Left, 5, 0, ctx)
	if res.Offset.Offset != 3 {
		t.Errorf("expected clamp at line start 3, got %d", res.Offset.Offset)
	}
}

func TestHorizontalWhichwrap(t *testing.T) {
	withWrap := func(r *option.Registry) {
		r.SetValue(option.Global(), "whichwrap", "b,s,h,l,<,>", "ww")
	}

	tests := []struct {
		name  string
		m     *Motion
		start int
		count int
		want  int
	}{
		// "ab\ncd" offsets: a0 b1 \n2 c3 d4
		{"l wraps to next line", &Right, 1, 1, 3},
		{"l wraps with count 3", &Right, 0, 3, 4},
		{"h wraps to previous line end", &Left, 3, 1, 1},
		{"arrow right wraps", &ArrowRight, 1, 1, 3},
		{"arrow left wraps", &ArrowLeft, 3, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t, editor.ModeNormal, false, withWrap)
			res, ok := resolveAt(t, "ab\ncd", tt.start, tt.m, tt.count, 0, ctx)
			if !ok {
				t.Fatal("resolve failed")
			}
			if res.Offset.Offset != tt.want {
				t.Errorf("got %d, want %d", res.Offset.Offset, tt.want)
			}
		})
	}

	// Count 3 without '<' stays on the line even when it exceeds the
	// remaining columns; with '<' it crosses.
	noWrap := testContext(t, editor.ModeNormal, false, nil)
	res, _ := resolveAt(t, "ab\ncd", 0, &ArrowRight, 3, 0, noWrap)
	if res.Offset.Offset != 1 {
		t.Errorf("without < expected 1, got %d", res.Offset.Offset)
	}
	wrap := testContext(t, editor.ModeNormal, false, withWrap)
	res, _ = resolveAt(t, "ab\ncd", 0, &ArrowRight, 3, 0, wrap)
	if res.Offset.Offset != 4 {
		t.Errorf("with < expected 4, got %d", res.Offset.Offset)
	}
}

func TestHorizontalOperatorPendingAbsorbsNewline(t *testing.T) {
	withWrap := func(r *option.Registry) {
		r.SetValue(option.Global(), "whichwrap", "b,s,h,l", "ww")
	}

	// Operator-pending right may step onto the terminator even
	// without wrapping: "dl" on the last character deletes it.
	ctx := testContext(t, editor.ModeNormal, true, nil)
	res, _ := resolveAt(t, "ab\ncd", 1, &Right, 1, 0, ctx)
	if res.Offset.Offset != 2 {
		t.Errorf("op-pending l at last char: got %d, want 2", res.Offset.Offset)
	}

	// With wrapping the span crosses the terminator itself.
	ctx = testContext(t, editor.ModeNormal, true, withWrap)
	res, _ = resolveAt(t, "ab\ncd", 1, &Right, 2, 0, ctx)
	if res.Offset.Offset != 3 {
		t.Errorf("op-pending 2l with wrap: got %d, want 3", res.Offset.Offset)
	}

	// Leftward: the span may start at the previous terminator.
	res, _ = resolveAt(t, "ab\ncd", 3, &Left, 1, 0, ctx)
	if res.Offset.Offset != 2 {
		t.Errorf("op-pending h with wrap: got %d, want 2", res.Offset.Offset)
	}
}

func TestLineEndModes(t *testing.T) {
	// "abc\ndef": line 0 end char at 2, terminator at 3.
	tests := []struct {
		name       string
		mode       editor.Mode
		selection  string
		wantOffset int
		wantLast   bool
	}{
		{"normal clamps to last char", editor.ModeNormal, "inclusive", 2, true},
		{"insert lands one past", editor.ModeInsert, "inclusive", 3, false},
		{"visual non-old lands one past", editor.ModeVisualChar, "inclusive", 3, false},
		{"visual exclusive lands one past", editor.ModeVisualChar, "exclusive", 3, false},
		{"visual old clamps", editor.ModeVisualChar, "old", 2, true},
		{"select non-old lands one past", editor.ModeSelect, "inclusive", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t, tt.mode, false, func(r *option.Registry) {
				r.SetValue(option.Global(), "selection", tt.selection, "sel")
			})
			res, ok := resolveAt(t, "abc\ndef", 0, &LineEnd, 1, 0, ctx)
			if !ok {
				t.Fatal("resolve failed")
			}
			if res.Offset.Offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", res.Offset.Offset, tt.wantOffset)
			}
			if res.Offset.LastColumn != tt.wantLast {
				t.Errorf("lastColumn = %v, want %v", res.Offset.LastColumn, tt.wantLast)
			}
			if res.Type != Inclusive {
				t.Errorf("$ must be inclusive, got %v", res.Type)
			}
		})
	}
}

func TestLineEndWithCount(t *testing.T) {
	// 3$ advances two lines then lands on that line's end.
	ctx := testContext(t, editor.ModeNormal, false, nil)
	res, _ := resolveAt(t, "ab\ncdef\nghi", 0, &LineEnd, 3, 0, ctx)
	// line 2 "ghi" spans 8..11; last char at 10.
	if res.Offset.Offset != 10 || !res.Offset.LastColumn {
		t.Errorf("3$ got %v", res.Offset)
	}

	// Count past the final line clamps to it.
	res, _ = resolveAt(t, "ab\ncdef\nghi", 0, &LineEnd, 99, 0, ctx)
	if res.Offset.Offset != 10 {
		t.Errorf("99$ got %d", res.Offset.Offset)
	}
}

func TestMotionTypeIndependentOfDestination(t *testing.T) {
	ctx := testContext(t, editor.ModeNormal, false, nil)

	// The same motion classifies identically wherever it lands.
	for _, off := range []int{0, 2, 5, 9} {
		res, ok := resolveAt(t, "foo bar baz", off, &WordForward, 1, 0, ctx)
		if !ok {
			t.Fatal("resolve failed")
		}
		if res.Type != Exclusive {
			t.Errorf("w at %d: type %v", off, res.Type)
		}
		res, ok = resolveAt(t, "foo bar baz", off, &WordEnd, 1, 0, ctx)
		if !ok {
			t.Fatal("resolve failed")
		}
		if res.Type != Inclusive {
			t.Errorf("e at %d: type %v", off, res.Type)
		}
	}
}

func TestWordMotions(t *testing.T) {
	ctx := testContext(t, editor.ModeNormal, false, nil)
	text := "foo bar, baz"
	// f0 o1 o2 ' '3 b4 a5 r6 ,7 ' '8 b9 a10 z11

	tests := []struct {
		name  string
		m     *Motion
		start int
		count int
		want  int
	}{
		{"w to next word", &WordForward, 0, 1, 4},
		{"w stops at punctuation", &WordForward, 4, 1, 7},
		{"2w", &WordForward, 0, 2, 7},
		{"W skips punctuation", &WORDForward, 4, 1, 9},
		{"b to word start", &WordBackward, 6, 1, 4},
		{"b across punctuation", &WordBackward, 9, 1, 7},
		{"B to WORD start", &WORDBackward, 9, 1, 4},
		{"e to word end", &WordEnd, 0, 1, 2},
		{"e from word end hops", &WordEnd, 2, 1, 6},
		{"w clamps at buffer end", &WordForward, 9, 3, 11},
		{"b clamps at start", &WordBackward, 2, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := resolveAt(t, text, tt.start, tt.m, tt.count, 0, ctx)
			if !ok {
				t.Fatal("resolve failed")
			}
			if res.Offset.Offset != tt.want {
				t.Errorf("got %d, want %d", res.Offset.Offset, tt.want)
			}
		})
	}
}

func TestWordMotionIskeyword(t *testing.T) {
	text := "foo_bar baz"
	// f0 o1 o2 _3 b4 a5 r6 ' '7 b8 a9 z10

	def := testContext(t, editor.ModeNormal, false, nil)
	res, ok := resolveAt(t, text, 0, &WordForward, 0, 0, def)
	if !ok {
		t.Fatal("resolve failed")
	}
	if res.Offset.Offset != 8 {
		t.Fatalf("w over foo_bar: got %d, want 8", res.Offset.Offset)
	}

	// iskeyword-=_ splits foo_bar into three words.
	noUnderscore := testContext(t, editor.ModeNormal, false, func(r *option.Registry) {
		if err := r.RemoveValue(option.Global(), "iskeyword", "_", "isk"); err != nil {
			t.Fatal(err)
		}
	})

	tests := []struct {
		name  string
		m     *Motion
		start int
		want  int
	}{
		{"w stops at underscore", &WordForward, 0, 3},
		{"w leaves underscore", &WordForward, 3, 4},
		{"e stops before underscore", &WordEnd, 0, 2},
		{"b stops after underscore", &WordBackward, 6, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := resolveAt(t, text, tt.start, tt.m, 0, 0, noUnderscore)
			if !ok {
				t.Fatal("resolve failed")
			}
			if res.Offset.Offset != tt.want {
				t.Errorf("got %d, want %d", res.Offset.Offset, tt.want)
			}
		})
	}
}

func TestDocumentMotions(t *testing.T) {
	ctx := testContext(t, editor.ModeNormal, false, nil)
	text := "one\n  two\nthree"

	res, _ := resolveAt(t, text, 12, &DocumentStart, 0, 0, ctx)
	if res.Offset.Offset != 0 {
		t.Errorf("gg got %d", res.Offset.Offset)
	}
	if res.Type != Linewise {
		t.Errorf("gg must be linewise, got %v", res.Type)
	}

	// G lands on the last line's first non-blank.
	res, _ = resolveAt(t, text, 0, &DocumentEnd, 0, 0, ctx)
	if res.Offset.Offset != 10 {
		t.Errorf("G got %d", res.Offset.Offset)
	}

	// 2G goes to line 2's first non-blank (offset 6, past the indent).
	res, _ = resolveAt(t, text, 0, &DocumentEnd, 2, 0, ctx)
	if res.Offset.Offset != 6 {
		t.Errorf("2G got %d", res.Offset.Offset)
	}

	// 99gg clamps to the last line.
	res, _ = resolveAt(t, text, 0, &DocumentStart, 99, 0, ctx)
	if res.Offset.Offset != 10 {
		t.Errorf("99gg got %d", res.Offset.Offset)
	}
}

func TestFindChar(t *testing.T) {
	ctx := testContext(t, editor.ModeNormal, false, nil)
	text := "abcabc\nxbz"

	tests := []struct {
		name  string
		m     *Motion
		start int
		count int
		char  rune
		want  int
		ok    bool
	}{
		{"f finds forward", &FindChar, 0, 1, 'c', 2, true},
		{"2f finds second", &FindChar, 0, 2, 'c', 5, true},
		{"f fails when absent", &FindChar, 0, 1, 'q', 0, false},
		{"f stays on line", &FindChar, 0, 1, 'x', 0, false},
		{"t stops before", &TillChar, 0, 1, 'c', 1, true},
		{"F finds backward", &FindCharBack, 5, 1, 'a', 3, true},
		{"T stops after", &TillCharBack, 5, 1, 'a', 4, true},
		{"3f fails with too few", &FindChar, 0, 3, 'c', 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := resolveAt(t, text, tt.start, tt.m, tt.count, tt.char, ctx)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && res.Offset.Offset != tt.want {
				t.Errorf("got %d, want %d", res.Offset.Offset, tt.want)
			}
		})
	}
}

func TestParagraphMotions(t *testing.T) {
	ctx := testContext(t, editor.ModeNormal, false, nil)
	text := "one\ntwo\n\nthree\nfour\n\nfive"
	// Empty lines at line 2 (offset 8) and line 5 (offset 20).

	res, _ := resolveAt(t, text, 0, &ParagraphForward, 1, 0, ctx)
	if res.Offset.Offset != 8 {
		t.Errorf("} got %d, want 8", res.Offset.Offset)
	}

	res, _ = resolveAt(t, text, 0, &ParagraphForward, 2, 0, ctx)
	if res.Offset.Offset != 20 {
		t.Errorf("2} got %d, want 20", res.Offset.Offset)
	}

	res, _ = resolveAt(t, text, 22, &ParagraphBackward, 1, 0, ctx)
	if res.Offset.Offset != 20 {
		t.Errorf("{ got %d, want 20", res.Offset.Offset)
	}

	// Past the final paragraph, } lands at end of buffer.
	res, _ = resolveAt(t, text, 22, &ParagraphForward, 1, 0, ctx)
	if res.Offset.Offset != len(text) {
		t.Errorf("} at tail got %d, want %d", res.Offset.Offset, len(text))
	}
}

func TestMatchPair(t *testing.T) {
	ctx := testContext(t, editor.ModeNormal, false, nil)
	text := "a(b(c)d)e"

	res, ok := resolveAt(t, text, 1, &MatchPair, 1, 0, ctx)
	if !ok || res.Offset.Offset != 7 {
		t.Errorf("%% on ( got %v ok=%v", res.Offset, ok)
	}

	res, ok = resolveAt(t, text, 7, &MatchPair, 1, 0, ctx)
	if !ok || res.Offset.Offset != 1 {
		t.Errorf("%% on ) got %v ok=%v", res.Offset, ok)
	}

	// Seeks forward on the line to the first pair character.
	res, ok = resolveAt(t, text, 0, &MatchPair, 1, 0, ctx)
	if !ok || res.Offset.Offset != 7 {
		t.Errorf("%% seeking got %v ok=%v", res.Offset, ok)
	}

	if _, ok := resolveAt(t, "plain text", 0, &MatchPair, 1, 0, ctx); ok {
		t.Error("% must fail without a pair character")
	}

	// Custom matchpairs from the option registry.
	angle := testContext(t, editor.ModeNormal, false, func(r *option.Registry) {
		r.SetValue(option.Global(), "matchpairs", "<:>", "mps")
	})
	res, ok = resolveAt(t, "a<b>c", 1, &MatchPair, 1, 0, angle)
	if !ok || res.Offset.Offset != 3 {
		t.Errorf("%% with <:> got %v ok=%v", res.Offset, ok)
	}
}

func TestVerticalMotions(t *testing.T) {
	ctx := testContext(t, editor.ModeNormal, false, nil)
	text := "alpha\nhi\ncharlie"

	// Down from col 4 clamps to the short line's last char.
	res, _ := resolveAt(t, text, 4, &Down, 1, 0, ctx)
	if res.Offset.Offset != 7 {
		t.Errorf("j got %d, want 7", res.Offset.Offset)
	}
	if res.Type != Linewise {
		t.Errorf("j must be linewise, got %v", res.Type)
	}

	// 2j keeps the column where the target line permits.
	res, _ = resolveAt(t, text, 4, &Down, 2, 0, ctx)
	if res.Offset.Offset != 13 {
		t.Errorf("2j got %d, want 13", res.Offset.Offset)
	}

	// Up clamps at the first line.
	res, _ = resolveAt(t, text, 6, &Up, 9, 0, ctx)
	if res.Offset.Offset != 0 {
		t.Errorf("9k got %d, want 0", res.Offset.Offset)
	}
}

func TestLineStartMotions(t *testing.T) {
	ctx := testContext(t, editor.ModeNormal, false, nil)
	text := "  indented\nplain"

	res, _ := resolveAt(t, text, 8, &LineStart, 1, 0, ctx)
	if res.Offset.Offset != 0 {
		t.Errorf("0 got %d", res.Offset.Offset)
	}

	res, _ = resolveAt(t, text, 8, &FirstNonBlank, 1, 0, ctx)
	if res.Offset.Offset != 2 {
		t.Errorf("^ got %d, want 2", res.Offset.Offset)
	}
}
