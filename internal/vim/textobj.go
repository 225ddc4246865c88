package vim

import (
	"github.com/duhaesbaert/ideavim/internal/editor"
)

// objKind selects the resolution strategy for a text object.
type objKind uint8

const (
	objWord objKind = iota
	objWORD
	objParagraph
	objQuote
	objPair
)

// TextObject describes a structural region selectable with i/a.
type TextObject struct {
	// Name is the object identifier (e.g., "word", "paren").
	Name string

	// Key is the key that identifies the object. Pair objects also
	// answer to their closing delimiter.
	Key rune

	// Linewise marks objects that select whole lines.
	Linewise bool

	kind        objKind
	open, close rune
}

var (
	objWordDef      = TextObject{Name: "word", Key: 'w', kind: objWord}
	objWORDDef      = TextObject{Name: "WORD", Key: 'W', kind: objWORD}
	objParagraphDef = TextObject{Name: "paragraph", Key: 'p', Linewise: true, kind: objParagraph}
	objParenDef     = TextObject{Name: "paren", Key: '(', kind: objPair, open: '(', close: ')'}
	objBraceDef     = TextObject{Name: "brace", Key: '{', kind: objPair, open: '{', close: '}'}
	objBracketDef   = TextObject{Name: "bracket", Key: '[', kind: objPair, open: '[', close: ']'}
	objAngleDef     = TextObject{Name: "angle", Key: '<', kind: objPair, open: '<', close: '>'}
	objDQuoteDef    = TextObject{Name: "doubleQuote", Key: '"', kind: objQuote, open: '"', close: '"'}
	objSQuoteDef    = TextObject{Name: "singleQuote", Key: '\'', kind: objQuote, open: '\'', close: '\''}
	objBacktickDef  = TextObject{Name: "backtick", Key: '`', kind: objQuote, open: '`', close: '`'}
)

// textObjects maps object keys to their definitions. Closing
// delimiters and the b/B aliases select the same objects.
var textObjects = map[rune]*TextObject{
	'w':  &objWordDef,
	'W':  &objWORDDef,
	'p':  &objParagraphDef,
	'(':  &objParenDef,
	')':  &objParenDef,
	'b':  &objParenDef,
	'{':  &objBraceDef,
	'}':  &objBraceDef,
	'B':  &objBraceDef,
	'[':  &objBracketDef,
	']':  &objBracketDef,
	'<':  &objAngleDef,
	'>':  &objAngleDef,
	'"':  &objDQuoteDef,
	'\'': &objSQuoteDef,
	'`':  &objBacktickDef,
}

// GetTextObject returns the text object for the key, or nil.
func GetTextObject(key rune) *TextObject {
	return textObjects[key]
}

// Resolve maps the object to a buffer range around the caret. inner
// excludes the delimiters (or surrounding whitespace, for words). kw
// classifies keyword runes for word objects; nil applies the
// iskeyword default.
func (t *TextObject) Resolve(v editor.View, caret int, inner bool, kw func(rune) bool) (editor.Range, bool) {
	switch t.kind {
	case objWord, objWORD:
		if kw == nil {
			kw = editor.KeywordMatcher(nil)
		}
		return resolveWordObject(v, caret, t.kind == objWORD, inner, kw)
	case objParagraph:
		return resolveParagraphObject(v, caret, inner)
	case objQuote:
		return resolveQuoteObject(v, caret, t.open, inner)
	default:
		return resolvePairObject(v, caret, t.open, t.close, inner)
	}
}

func objCharClass(r rune, big bool, kw func(rune) bool) int {
	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == 0:
		return 0
	case big:
		return 1
	case kw(r):
		return 1
	default:
		return 2
	}
}

// resolveWordObject selects the word (or whitespace run) under the
// caret. The around form extends over trailing whitespace, or leading
// whitespace when none trails.
func resolveWordObject(v editor.View, caret int, big, inner bool, kw func(rune) bool) (editor.Range, bool) {
	n := v.Length()
	if n == 0 || caret >= n {
		return editor.Range{}, false
	}
	line := v.LineOf(caret)
	lo, hi := v.LineStart(line), v.LineEnd(line)
	if lo == hi {
		return editor.Range{}, false
	}
	if caret >= hi {
		caret = hi - 1
	}

	cl := objCharClass(v.CharAt(caret), big, kw)
	start, end := caret, caret+1
	for start > lo && objCharClass(v.CharAt(start-1), big, kw) == cl {
		start--
	}
	for end < hi && objCharClass(v.CharAt(end), big, kw) == cl {
		end++
	}
	if inner {
		return editor.NewRange(start, end), true
	}

	// Around: absorb trailing whitespace, else leading.
	aEnd := end
	for aEnd < hi && objCharClass(v.CharAt(aEnd), big, kw) == 0 {
		aEnd++
	}
	if aEnd > end {
		return editor.NewRange(start, aEnd), true
	}
	for start > lo && objCharClass(v.CharAt(start-1), big, kw) == 0 {
		start--
	}
	return editor.NewRange(start, end), true
}

// resolveParagraphObject selects the paragraph's lines. The around
// form extends over the trailing blank lines.
func resolveParagraphObject(v editor.View, caret int, inner bool) (editor.Range, bool) {
	line := v.LineOf(caret)
	last := v.LineCount() - 1
	isEmpty := func(l int) bool { return v.LineStart(l) == v.LineEnd(l) }

	if isEmpty(line) {
		// On a blank run the object is the run itself.
		first, lastB := line, line
		for first > 0 && isEmpty(first-1) {
			first--
		}
		for lastB < last && isEmpty(lastB+1) {
			lastB++
		}
		return lineSpan(v, first, lastB), true
	}

	first, lastL := line, line
	for first > 0 && !isEmpty(first-1) {
		first--
	}
	for lastL < last && !isEmpty(lastL+1) {
		lastL++
	}
	if !inner {
		for lastL < last && isEmpty(lastL+1) {
			lastL++
		}
	}
	return lineSpan(v, first, lastL), true
}

// lineSpan covers the lines including the final terminator.
func lineSpan(v editor.View, first, last int) editor.Range {
	end := v.LineEnd(last)
	if end < v.Length() {
		end++
	}
	return editor.NewRange(v.LineStart(first), end)
}

// resolveQuoteObject finds the enclosing or next quoted span on the
// caret's line.
func resolveQuoteObject(v editor.View, caret int, q rune, inner bool) (editor.Range, bool) {
	line := v.LineOf(caret)
	lo, hi := v.LineStart(line), v.LineEnd(line)

	// Collect quote positions; pair them left to right.
	var marks []int
	for off := lo; off < hi; off++ {
		if v.CharAt(off) == q {
			marks = append(marks, off)
		}
	}
	for i := 0; i+1 < len(marks); i += 2 {
		open, close := marks[i], marks[i+1]
		if caret <= close {
			if inner {
				return editor.NewRange(open+1, close), true
			}
			return editor.NewRange(open, close+1), true
		}
	}
	return editor.Range{}, false
}

// resolvePairObject finds the innermost enclosing delimiter pair.
func resolvePairObject(v editor.View, caret int, open, close rune, inner bool) (editor.Range, bool) {
	n := v.Length()
	if n == 0 {
		return editor.Range{}, false
	}
	if caret >= n {
		caret = n - 1
	}

	// Walk outward for the unmatched opener before (or at) the caret.
	depth := 0
	start := -1
	for off := caret; off >= 0; off-- {
		switch v.CharAt(off) {
		case close:
			if off != caret {
				depth++
			}
		case open:
			if depth == 0 {
				start = off
			} else {
				depth--
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return editor.Range{}, false
	}

	depth = 0
	for off := start; off < n; off++ {
		switch v.CharAt(off) {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				if inner {
					return editor.NewRange(start+1, off), true
				}
				return editor.NewRange(start, off+1), true
			}
		}
	}
	return editor.Range{}, false
}
