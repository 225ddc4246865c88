package dispatch

import (
	"strings"
	"unicode"

	"github.com/duhaesbaert/ideavim/internal/editor"
	"github.com/duhaesbaert/ideavim/internal/motion"
	"github.com/duhaesbaert/ideavim/internal/vim"
)

// applyMotionOperator turns a resolved motion into an operator span.
// Inclusive motions take one character past the destination; exclusive
// stop at it; linewise expand to whole lines.
func (d *Dispatcher) applyMotionOperator(op *vim.Operator, register rune, from int, res motion.Result) {
	to := res.Offset.Offset
	lo, hi := from, to
	if hi < lo {
		lo, hi = hi, lo
	}

	linewise := false
	var span editor.Range
	switch res.Type {
	case motion.Linewise:
		linewise = true
		span = lineSpan(d.buf, d.buf.LineOf(lo), d.buf.LineOf(hi))
	case motion.Inclusive:
		span = editor.NewRange(lo, minInt(hi+1, d.buf.Length()))
	default:
		span = editor.NewRange(lo, hi)
	}

	if span.IsEmpty() && !linewise {
		return
	}
	d.applyOperator(op, register, span, linewise)
}

// applyLinewiseOperator handles doubled operators (dd, yy, guu). The
// count selects that many lines from the caret down.
func (d *Dispatcher) applyLinewiseOperator(cmd *vim.Command) {
	line := d.buf.LineOf(d.buf.Caret().Offset)
	last := minInt(line+cmd.EffectiveCount()-1, d.buf.LineCount()-1)
	d.applyOperator(cmd.Operator, cmd.Register, lineSpan(d.buf, line, last), true)
}

// applyOperatorToSelection runs a visual-mode operator and returns to
// normal mode.
func (d *Dispatcher) applyOperatorToSelection(op *vim.Operator, register rune) {
	span := d.selectionSpan()
	linewise := d.mode == editor.ModeVisualLine
	d.recordVisualMarks()
	d.mode = editor.ModeNormal
	d.applyOperator(op, register, span, linewise)
}

func (d *Dispatcher) applyOperator(op *vim.Operator, register rune, span editor.Range, linewise bool) {
	switch op.Kind {
	case vim.OpDelete:
		d.deleteSpan(span, register, linewise)
	case vim.OpChange:
		d.changeSpan(span, register, linewise)
	case vim.OpYank:
		d.yankSpan(span, register, linewise)
	case vim.OpIndentRight:
		d.indentSpan(span, +1)
	case vim.OpIndentLeft:
		d.indentSpan(span, -1)
	case vim.OpLowercase:
		d.mapSpan(span, strings.ToLower)
	case vim.OpUppercase:
		d.mapSpan(span, strings.ToUpper)
	case vim.OpToggleCase:
		d.mapSpan(span, toggleCase)
	}
}

// deleteSpan removes the span and records it in the registers. After
// a linewise delete the caret lands on the first non-blank of the
// line that took the deleted lines' place.
func (d *Dispatcher) deleteSpan(span editor.Range, register rune, linewise bool) {
	text := d.buf.Slice(span)
	d.recordKill(register, text, linewise, true)

	line := d.buf.LineOf(span.Start)
	if linewise && span.End >= d.buf.Length() && span.Start > 0 {
		// Deleting through the final line takes the preceding
		// terminator with it, so no empty last line remains.
		span = editor.NewRange(span.Start-1, span.End)
	}
	d.buf.Delete(span)

	if linewise {
		line = minInt(line, d.buf.LineCount()-1)
		d.buf.MoveCaret(firstNonBlankOffset(d.buf, line))
		return
	}
	d.moveCaret(span.Start)
}

// changeSpan deletes and enters insert mode. A linewise change keeps
// one empty line in the deleted lines' place.
func (d *Dispatcher) changeSpan(span editor.Range, register rune, linewise bool) {
	text := d.buf.Slice(span)
	d.recordKill(register, text, linewise, true)

	d.buf.Delete(span)
	if linewise && strings.HasSuffix(text, "\n") {
		// Keep an empty line where the changed lines were.
		d.buf.Insert(span.Start, "\n")
	}
	d.enterInsert(span.Start)
}

// yankSpan records the span without mutating. A characterwise yank
// moves the caret to the span start, matching the behavior after a
// forward-motion yank.
func (d *Dispatcher) yankSpan(span editor.Range, register rune, linewise bool) {
	text := d.buf.Slice(span)
	d.recordKill(register, text, linewise, false)
	if !linewise {
		d.moveCaret(minInt(span.Start, d.buf.Caret().Offset))
	}
}

// recordKill writes removed or yanked text to the register file. The
// black hole register suppresses all recording.
func (d *Dispatcher) recordKill(register rune, text string, linewise, removed bool) {
	if register == '_' {
		return
	}
	if register != 0 {
		d.regs.Set(register, text, linewise)
	}
	if removed {
		d.regs.RecordDelete(text, linewise)
		return
	}
	if register == 0 {
		d.regs.RecordYank(text, linewise)
	} else {
		d.regs.Set('"', text, linewise)
	}
}

// indentSpan shifts the span's lines by one shiftwidth.
func (d *Dispatcher) indentSpan(span editor.Range, dir int) {
	width := d.opts.Accessor(d.buf).Int("shiftwidth")
	if width <= 0 {
		width = 8
	}
	first := d.buf.LineOf(span.Start)
	last := d.buf.LineOf(maxInt(span.Start, span.End-1))

	// Back to front so earlier offsets stay valid.
	for line := last; line >= first; line-- {
		start, end := d.buf.LineStart(line), d.buf.LineEnd(line)
		if dir > 0 {
			if start < end {
				d.buf.Insert(start, strings.Repeat(" ", width))
			}
			continue
		}
		strip := 0
		for start+strip < end && strip < width {
			c := d.buf.CharAt(start + strip)
			if c != ' ' && c != '\t' {
				break
			}
			strip++
		}
		if strip > 0 {
			d.buf.Delete(editor.NewRange(start, start+strip))
		}
	}
	d.buf.MoveCaret(firstNonBlankOffset(d.buf, first))
}

// mapSpan rewrites the span through a text transform.
func (d *Dispatcher) mapSpan(span editor.Range, f func(string) string) {
	if span.IsEmpty() {
		return
	}
	d.buf.Replace(span, f(d.buf.Slice(span)))
	d.moveCaret(span.Start)
}

// put inserts register content at the caret. Linewise content opens
// below (or above) the caret line; characterwise lands after (or at)
// the caret.
func (d *Dispatcher) put(register rune, count int, after bool) {
	name := register
	if name == 0 {
		name = '"'
	}
	content, linewise := d.regs.Get(name)
	if content == "" {
		return
	}

	caret := d.buf.Caret()
	line := d.buf.LineOf(caret.Offset)

	if linewise {
		text := content
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		text = strings.Repeat(text, count)
		if after {
			end := d.buf.LineEnd(line)
			if end >= d.buf.Length() {
				// Last line without a terminator: open below it.
				d.buf.Insert(d.buf.Length(), "\n"+strings.TrimSuffix(text, "\n"))
			} else {
				d.buf.Insert(end+1, text)
			}
			d.buf.MoveCaret(firstNonBlankOffset(d.buf, line+1))
			return
		}
		start := d.buf.LineStart(line)
		d.buf.Insert(start, text)
		d.buf.MoveCaret(firstNonBlankOffset(d.buf, line))
		return
	}

	at := caret.Offset
	if after && at < d.buf.LineEnd(line) {
		at++
	}
	text := strings.Repeat(content, count)
	d.buf.Insert(at, text)
	d.moveCaret(at + len([]rune(text)) - 1)
}

// joinLines joins count lines into the caret line, collapsing the
// boundary whitespace to one space.
func (d *Dispatcher) joinLines(line, count int) {
	joins := maxInt(count-1, 1)
	for i := 0; i < joins; i++ {
		if line+1 >= d.buf.LineCount() {
			return
		}
		end := d.buf.LineEnd(line)
		next := d.buf.LineStart(line + 1)
		nextEnd := d.buf.LineEnd(line + 1)
		for next < nextEnd {
			if c := d.buf.CharAt(next); c != ' ' && c != '\t' {
				break
			}
			next++
		}
		sep := " "
		if next >= nextEnd {
			// Joining a blank line adds no separator.
			sep = ""
		}
		d.buf.Replace(editor.NewRange(end, next), sep)
		d.buf.MoveCaret(end)
	}
}

func toggleCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		default:
			return r
		}
	}, s)
}
