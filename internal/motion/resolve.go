package motion

import (
	"strings"

	"github.com/duhaesbaert/ideavim/internal/editor"
)

// eff returns the effective count (1 if none was specified).
func eff(count int) int {
	if count <= 0 {
		return 1
	}
	return count
}

// wrapAllowed reports whether whichwrap permits the given flag.
func (ctx Context) wrapAllowed(flag rune) bool {
	if ctx.Options == nil {
		return false
	}
	return ctx.Options.Has("whichwrap", string(flag))
}

// selection returns the effective 'selection' option value.
func (ctx Context) selection() string {
	if ctx.Options == nil {
		return "inclusive"
	}
	if s := ctx.Options.String("selection"); s != "" {
		return s
	}
	return "inclusive"
}

// horizontalResolver builds the left/right resolver. dir is -1 or +1;
// wrapKey is the whichwrap flag gating line boundary crossing.
func horizontalResolver(dir int, wrapKey rune) resolveFunc {
	return func(v editor.View, caret editor.Caret, count int, _ rune, ctx Context) (AdjustedOffset, bool) {
		wrap := ctx.wrapAllowed(wrapKey)
		off := caret.Offset
		for i := 0; i < eff(count); i++ {
			line := v.LineOf(off)
			if dir < 0 {
				start := v.LineStart(line)
				if off > start {
					off--
					continue
				}
				if !wrap || line == 0 {
					break
				}
				term := v.LineEnd(line - 1)
				if ctx.OperatorPending {
					// The span may absorb the terminator.
					off = term
				} else if term-1 >= v.LineStart(line-1) {
					off = term - 1
				} else {
					off = v.LineStart(line - 1)
				}
				continue
			}

			end := v.LineEnd(line)
			limit := end - 1
			if ctx.OperatorPending || ctx.Mode == editor.ModeInsert {
				limit = end
			}
			if off < limit {
				off++
				continue
			}
			if !wrap || line >= v.LineCount()-1 {
				break
			}
			if ctx.OperatorPending && off == end {
				off = end + 1 // past the terminator: delete absorbs the newline
			} else {
				off = v.LineStart(line + 1)
			}
		}
		return Plain(off), true
	}
}

// verticalResolver builds the up/down resolver, preserving the caret
// column where the target line permits.
func verticalResolver(dir int) resolveFunc {
	return func(v editor.View, caret editor.Caret, count int, _ rune, ctx Context) (AdjustedOffset, bool) {
		line := caret.Point.Line + dir*eff(count)
		if line < 0 {
			line = 0
		}
		if last := v.LineCount() - 1; line > last {
			line = last
		}
		off := v.OffsetOf(editor.Point{Line: line, Col: caret.Point.Col})
		off = clampToLine(v, line, off, ctx)
		return Plain(off), true
	}
}

func resolveUp(v editor.View, caret editor.Caret, count int, arg rune, ctx Context) (AdjustedOffset, bool) {
	return verticalResolver(-1)(v, caret, count, arg, ctx)
}

func resolveDown(v editor.View, caret editor.Caret, count int, arg rune, ctx Context) (AdjustedOffset, bool) {
	return verticalResolver(+1)(v, caret, count, arg, ctx)
}

// clampToLine keeps the offset on the line's last character outside
// insert mode.
func clampToLine(v editor.View, line, off int, ctx Context) int {
	if ctx.Mode == editor.ModeInsert || ctx.OperatorPending {
		return off
	}
	start, end := v.LineStart(line), v.LineEnd(line)
	if off >= end && end > start {
		return end - 1
	}
	return off
}

func resolveLineStart(v editor.View, caret editor.Caret, _ int, _ rune, _ Context) (AdjustedOffset, bool) {
	return Plain(v.LineStart(v.LineOf(caret.Offset))), true
}

func resolveFirstNonBlank(v editor.View, caret editor.Caret, _ int, _ rune, _ Context) (AdjustedOffset, bool) {
	line := v.LineOf(caret.Offset)
	return Plain(firstNonBlank(v, line)), true
}

func firstNonBlank(v editor.View, line int) int {
	off := v.LineStart(line)
	end := v.LineEnd(line)
	for off < end {
		if c := v.CharAt(off); c != ' ' && c != '\t' {
			break
		}
		off++
	}
	if off == end && end > v.LineStart(line) {
		off = end - 1
	}
	return off
}

// resolveLineEnd implements $. With a count it advances count-1 lines
// first. Outside insert mode, and outside visual/select mode unless
// 'selection' is "old", the result lands on the last character and
// carries the last-column marker; otherwise it lands one past it.
func resolveLineEnd(v editor.View, caret editor.Caret, count int, _ rune, ctx Context) (AdjustedOffset, bool) {
	line := v.LineOf(caret.Offset) + eff(count) - 1
	if last := v.LineCount() - 1; line > last {
		line = last
	}
	start, end := v.LineStart(line), v.LineEnd(line)

	pastEnd := ctx.Mode == editor.ModeInsert ||
		(ctx.Mode.IsVisual() && ctx.selection() != "old")
	if pastEnd {
		return Plain(end), true
	}

	off := end - 1
	if off < start {
		off = start
	}
	return LastColumnOffset(off), true
}

// keywordFunc builds the keyword predicate from iskeyword.
func (ctx Context) keywordFunc() func(rune) bool {
	if ctx.Options == nil {
		return editor.KeywordMatcher(nil)
	}
	return editor.KeywordMatcher(ctx.Options.List("iskeyword"))
}

// charClass buckets runes for word motions: whitespace, keyword, or
// other punctuation. big collapses keyword and punctuation.
func charClass(r rune, big bool, kw func(rune) bool) int {
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

func wordResolver(big bool) resolveFunc {
	return func(v editor.View, caret editor.Caret, count int, _ rune, ctx Context) (AdjustedOffset, bool) {
		kw := ctx.keywordFunc()
		off := caret.Offset
		n := v.Length()
		for i := 0; i < eff(count); i++ {
			if off >= n {
				break
			}
			cl := charClass(v.CharAt(off), big, kw)
			for off < n && cl != 0 && charClass(v.CharAt(off), big, kw) == cl {
				off++
			}
			for off < n && charClass(v.CharAt(off), big, kw) == 0 {
				off++
			}
		}
		if !ctx.OperatorPending && ctx.Mode != editor.ModeInsert && off >= n && n > 0 {
			off = n - 1
		}
		return Plain(off), true
	}
}

func wordBackResolver(big bool) resolveFunc {
	return func(v editor.View, caret editor.Caret, count int, _ rune, ctx Context) (AdjustedOffset, bool) {
		kw := ctx.keywordFunc()
		off := caret.Offset
		for i := 0; i < eff(count); i++ {
			if off == 0 {
				break
			}
			off--
			for off > 0 && charClass(v.CharAt(off), big, kw) == 0 {
				off--
			}
			cl := charClass(v.CharAt(off), big, kw)
			for off > 0 && charClass(v.CharAt(off-1), big, kw) == cl && cl != 0 {
				off--
			}
		}
		return Plain(off), true
	}
}

func wordEndResolver(big bool) resolveFunc {
	return func(v editor.View, caret editor.Caret, count int, _ rune, ctx Context) (AdjustedOffset, bool) {
		kw := ctx.keywordFunc()
		off := caret.Offset
		n := v.Length()
		for i := 0; i < eff(count); i++ {
			if off >= n-1 {
				break
			}
			off++
			for off < n && charClass(v.CharAt(off), big, kw) == 0 {
				off++
			}
			cl := charClass(v.CharAt(off), big, kw)
			for off+1 < n && charClass(v.CharAt(off+1), big, kw) == cl && cl != 0 {
				off++
			}
		}
		if off >= n && n > 0 {
			off = n - 1
		}
		return Plain(off), true
	}
}

// resolveDocumentStart implements gg: with a count, goes to that line.
func resolveDocumentStart(v editor.View, caret editor.Caret, count int, _ rune, _ Context) (AdjustedOffset, bool) {
	line := 0
	if count > 0 {
		line = count - 1
	}
	if last := v.LineCount() - 1; line > last {
		line = last
	}
	return Plain(firstNonBlank(v, line)), true
}

// resolveDocumentEnd implements G: last line without a count, line N
// with one.
func resolveDocumentEnd(v editor.View, caret editor.Caret, count int, _ rune, _ Context) (AdjustedOffset, bool) {
	line := v.LineCount() - 1
	if count > 0 {
		line = count - 1
		if last := v.LineCount() - 1; line > last {
			line = last
		}
	}
	return Plain(firstNonBlank(v, line)), true
}

// findResolver builds f/F/t/T. The search stays on the caret's line
// and fails when the character does not occur count times.
func findResolver(dir int, till bool) resolveFunc {
	return func(v editor.View, caret editor.Caret, count int, arg rune, _ Context) (AdjustedOffset, bool) {
		line := v.LineOf(caret.Offset)
		start, end := v.LineStart(line), v.LineEnd(line)

		off := caret.Offset
		for i := 0; i < eff(count); i++ {
			found := -1
			for probe := off + dir; probe >= start && probe < end; probe += dir {
				if v.CharAt(probe) == arg {
					found = probe
					break
				}
			}
			if found < 0 {
				return AdjustedOffset{}, false
			}
			off = found
		}
		if till {
			off -= dir
		}
		return Plain(off), true
	}
}

// paragraphResolver builds { and }: boundaries are empty lines.
func paragraphResolver(dir int) resolveFunc {
	return func(v editor.View, caret editor.Caret, count int, _ rune, _ Context) (AdjustedOffset, bool) {
		line := v.LineOf(caret.Offset)
		last := v.LineCount() - 1
		isEmpty := func(l int) bool { return v.LineStart(l) == v.LineEnd(l) }

		for i := 0; i < eff(count); i++ {
			for line >= 0 && line <= last && isEmpty(line) {
				line += dir
			}
			for line >= 0 && line <= last && !isEmpty(line) {
				line += dir
			}
		}
		if line < 0 {
			return Plain(0), true
		}
		if line > last {
			if dir > 0 {
				return Plain(v.Length()), true
			}
			line = last
		}
		return Plain(v.LineStart(line)), true
	}
}

// resolveMatchPair implements %: jump between the pair characters
// declared by 'matchpairs'.
func resolveMatchPair(v editor.View, caret editor.Caret, _ int, _ rune, ctx Context) (AdjustedOffset, bool) {
	pairs := matchPairs(ctx)
	closers := reverse(pairs)
	line := v.LineOf(caret.Offset)
	end := v.LineEnd(line)

	// Find the first pair character at or after the caret on this line.
	off := caret.Offset
	var openCh, closeCh rune
	forward := true
	for ; off < end; off++ {
		c := v.CharAt(off)
		if cl, ok := pairs[c]; ok {
			openCh, closeCh = c, cl
			break
		}
		if op, ok := closers[c]; ok {
			openCh, closeCh = op, c
			forward = false
			break
		}
	}
	if off >= end {
		return AdjustedOffset{}, false
	}

	depth := 0
	if forward {
		for probe := off; probe < v.Length(); probe++ {
			switch v.CharAt(probe) {
			case openCh:
				depth++
			case closeCh:
				depth--
				if depth == 0 {
					return Plain(probe), true
				}
			}
		}
	} else {
		for probe := off; probe >= 0; probe-- {
			switch v.CharAt(probe) {
			case closeCh:
				depth++
			case openCh:
				depth--
				if depth == 0 {
					return Plain(probe), true
				}
			}
		}
	}
	return AdjustedOffset{}, false
}

// matchPairs parses the 'matchpairs' option ("(:),{:},[:]") into an
// open-to-close map.
func matchPairs(ctx Context) map[rune]rune {
	value := "(:),{:},[:]"
	if ctx.Options != nil {
		if s := ctx.Options.String("matchpairs"); s != "" {
			value = s
		}
	}
	pairs := make(map[rune]rune)
	for _, entry := range strings.Split(value, ",") {
		r := []rune(entry)
		if len(r) == 3 && r[1] == ':' {
			pairs[r[0]] = r[2]
		}
	}
	return pairs
}

func reverse(pairs map[rune]rune) map[rune]rune {
	out := make(map[rune]rune, len(pairs))
	for o, c := range pairs {
		out[c] = o
	}
	return out
}
