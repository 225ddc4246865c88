package dispatch

import (
	"github.com/duhaesbaert/ideavim/internal/editor"
	"github.com/duhaesbaert/ideavim/internal/motion"
	"github.com/duhaesbaert/ideavim/internal/option"
	"github.com/duhaesbaert/ideavim/internal/vim"
)

// Dispatcher owns the modal state for one buffer.
type Dispatcher struct {
	buf    editor.Buffer
	opts   *option.Registry
	regs   *vim.RegisterStore
	parser *vim.Parser
	host   Host

	mode         editor.Mode
	visualAnchor int
	marks        map[rune]int
	status       string

	// visualObjPrefix holds 'i' or 'a' while visual mode waits for a
	// text object key.
	visualObjPrefix rune

	lastSubPat  string
	lastSubRepl string
}

// New creates a dispatcher in normal mode. A nil host ignores file
// commands.
func New(buf editor.Buffer, opts *option.Registry, host Host) *Dispatcher {
	if host == nil {
		host = NopHost{}
	}
	if opts == nil {
		opts = option.NewRegistryWithDefaults()
	}
	return &Dispatcher{
		buf:    buf,
		opts:   opts,
		regs:   vim.NewRegisterStore(),
		parser: vim.NewParser(),
		host:   host,
		mode:   editor.ModeNormal,
		marks:  make(map[rune]int),
	}
}

// Mode returns the current mode. A captured operator reports
// operator-pending.
func (d *Dispatcher) Mode() editor.Mode {
	if d.mode == editor.ModeNormal && d.parser.OperatorPending() {
		return editor.ModeOperatorPending
	}
	return d.mode
}

// Pending returns the keys consumed so far by an incomplete command.
func (d *Dispatcher) Pending() string {
	return d.parser.Pending()
}

// Status returns the last status message.
func (d *Dispatcher) Status() string {
	return d.status
}

// Registers exposes the register store.
func (d *Dispatcher) Registers() *vim.RegisterStore {
	return d.regs
}

// Options exposes the option registry.
func (d *Dispatcher) Options() *option.Registry {
	return d.opts
}

// Buffer exposes the buffer being edited.
func (d *Dispatcher) Buffer() editor.Buffer {
	return d.buf
}

// VisualRange returns the active selection span. In line visual mode
// the span covers whole lines. ok is false outside visual modes.
func (d *Dispatcher) VisualRange() (editor.Range, bool) {
	if !d.mode.IsVisual() {
		return editor.Range{}, false
	}
	return d.selectionSpan(), true
}

// HandleKey routes one key by mode.
func (d *Dispatcher) HandleKey(k Key) {
	switch {
	case d.mode == editor.ModeInsert:
		d.handleInsertKey(k)
	default:
		d.handleNormalKey(k)
	}
}

// handleNormalKey covers normal, visual, and operator-pending input.
func (d *Dispatcher) handleNormalKey(k Key) {
	if k.Kind != KeyRune {
		d.visualObjPrefix = 0
	}
	switch k.Kind {
	case KeyEscape:
		d.cancel()
		return
	case KeyLeft, KeyRight, KeyUp, KeyDown:
		d.parser.Reset()
		d.applyBareMotion(arrowMotion(k.Kind), 0, 0)
		return
	case KeyEnter:
		d.parser.Reset()
		d.applyBareMotion(&motion.Down, 0, 0)
		return
	case KeyBackspace:
		d.parser.Reset()
		d.applyBareMotion(&motion.Left, 0, 0)
		return
	}

	// Visual-mode operators apply to the selection the moment the
	// operator key lands; there is no operator-pending in visual.
	if d.mode.IsVisual() {
		if d.visualObjPrefix != 0 {
			prefix := d.visualObjPrefix
			d.visualObjPrefix = 0
			d.expandVisualObject(prefix, k.Rune)
			return
		}
		result := d.parser.Feed(k.Rune)
		if result.Status == vim.StatusPending {
			if d.parser.PendingOperator() != nil {
				cmd := d.parser.TakeCommand()
				d.applyOperatorToSelection(cmd.Operator, cmd.Register)
			}
			return
		}
		d.dispatchResult(result)
		return
	}

	d.dispatchResult(d.parser.Feed(k.Rune))
}

func arrowMotion(kind KeyKind) *motion.Motion {
	switch kind {
	case KeyLeft:
		return &motion.ArrowLeft
	case KeyRight:
		return &motion.ArrowRight
	case KeyUp:
		return &motion.Up
	default:
		return &motion.Down
	}
}

// cancel discards pending state. Escaping an incomplete command never
// mutates the buffer.
func (d *Dispatcher) cancel() {
	d.parser.Reset()
	d.status = ""
	d.visualObjPrefix = 0
	if d.mode.IsVisual() {
		d.recordVisualMarks()
		d.mode = editor.ModeNormal
	}
}

func (d *Dispatcher) dispatchResult(result vim.ParseResult) {
	switch result.Status {
	case vim.StatusPending, vim.StatusInvalid:
		return
	case vim.StatusComplete:
		d.executeCommand(result.Command)
	case vim.StatusPassthrough:
		d.handleSimpleKey(result.Command)
	}
}

// executeCommand runs a completed parser command.
func (d *Dispatcher) executeCommand(cmd *vim.Command) {
	switch {
	case cmd.Linewise:
		d.applyLinewiseOperator(cmd)

	case cmd.TextObject != nil:
		// The parser only reaches a text object through an operator;
		// bare i/a in visual mode expands the selection elsewhere.
		r, ok := cmd.TextObject.Resolve(d.buf, d.buf.Caret().Offset, cmd.Inner, d.keywordFunc())
		if !ok {
			return
		}
		if cmd.Operator != nil {
			d.applyOperator(cmd.Operator, cmd.Register, r, cmd.TextObject.Linewise)
		}

	case cmd.Motion != nil:
		d.executeMotionCommand(cmd)
	}
}

func (d *Dispatcher) executeMotionCommand(cmd *vim.Command) {
	caret := d.buf.Caret()
	ctx := motion.Context{
		Mode:            d.mode,
		OperatorPending: cmd.Operator != nil,
		Options:         d.opts.Accessor(d.buf),
	}
	req := motion.Request{Motion: cmd.Motion, Count: cmd.Count, Char: cmd.CharArg}
	res, ok := motion.Resolve(d.buf, caret, req, ctx)
	if !ok {
		// A failed motion aborts the whole command, operator included.
		return
	}

	if cmd.Operator != nil {
		d.applyMotionOperator(cmd.Operator, cmd.Register, caret.Offset, res)
		return
	}
	d.moveCaret(res.Offset.Offset)
}

// applyBareMotion resolves and applies a motion outside the parser.
func (d *Dispatcher) applyBareMotion(m *motion.Motion, count int, char rune) {
	caret := d.buf.Caret()
	ctx := motion.Context{Mode: d.mode, Options: d.opts.Accessor(d.buf)}
	res, ok := motion.Resolve(d.buf, caret, motion.Request{Motion: m, Count: count, Char: char}, ctx)
	if !ok {
		return
	}
	d.moveCaret(res.Offset.Offset)
}

// moveCaret relocates the caret. Outside insert and visual modes it
// stays off the line terminator.
func (d *Dispatcher) moveCaret(offset int) {
	if d.mode == editor.ModeNormal {
		line := d.buf.LineOf(offset)
		start, end := d.buf.LineStart(line), d.buf.LineEnd(line)
		if offset >= end && end > start {
			offset = end - 1
		}
	}
	d.buf.MoveCaret(offset)
}

// handleSimpleKey covers keys outside the parser grammar. cmd carries
// any count and register prefix that had accumulated.
func (d *Dispatcher) handleSimpleKey(cmd *vim.Command) {
	r := cmd.CharArg
	count := cmd.EffectiveCount()

	if d.mode.IsVisual() {
		d.handleVisualSimpleKey(r, cmd)
		return
	}

	caret := d.buf.Caret()
	line := d.buf.LineOf(caret.Offset)
	lineStart, lineEnd := d.buf.LineStart(line), d.buf.LineEnd(line)

	switch r {
	case 'i':
		d.enterInsert(caret.Offset)
	case 'I':
		d.enterInsert(firstNonBlankOffset(d.buf, line))
	case 'a':
		off := caret.Offset
		if off < lineEnd {
			off++
		}
		d.enterInsert(off)
	case 'A':
		d.enterInsert(lineEnd)
	case 'o':
		d.buf.Insert(lineEnd, "\n")
		d.enterInsert(lineEnd + 1)
	case 'O':
		d.buf.Insert(lineStart, "\n")
		d.enterInsert(lineStart)

	case 'v':
		d.mode = editor.ModeVisualChar
		d.visualAnchor = caret.Offset
	case 'V':
		d.mode = editor.ModeVisualLine
		d.visualAnchor = caret.Offset

	case 'x':
		end := minInt(caret.Offset+count, lineEnd)
		if end > caret.Offset {
			d.deleteSpan(editor.NewRange(caret.Offset, end), cmd.Register, false)
		}
	case 'X':
		start := maxInt(caret.Offset-count, lineStart)
		if start < caret.Offset {
			d.deleteSpan(editor.NewRange(start, caret.Offset), cmd.Register, false)
		}
	case 'D':
		if caret.Offset < lineEnd {
			d.deleteSpan(editor.NewRange(caret.Offset, lineEnd), cmd.Register, false)
		}
	case 'C':
		if caret.Offset < lineEnd {
			d.deleteSpan(editor.NewRange(caret.Offset, lineEnd), cmd.Register, false)
		}
		d.enterInsert(d.buf.Caret().Offset)
	case 'Y':
		last := minInt(line+count-1, d.buf.LineCount()-1)
		d.yankSpan(lineSpan(d.buf, line, last), cmd.Register, true)

	case 'p':
		d.put(cmd.Register, count, true)
	case 'P':
		d.put(cmd.Register, count, false)

	case '~':
		end := minInt(caret.Offset+count, lineEnd)
		if end > caret.Offset {
			span := editor.NewRange(caret.Offset, end)
			d.buf.Replace(span, toggleCase(d.buf.Slice(span)))
			d.moveCaret(end)
		}
	case 'J':
		d.joinLines(line, count)
	}
}

func (d *Dispatcher) handleVisualSimpleKey(r rune, cmd *vim.Command) {
	switch r {
	case 'v':
		if d.mode == editor.ModeVisualChar {
			d.cancel()
		} else {
			d.mode = editor.ModeVisualChar
		}
	case 'V':
		if d.mode == editor.ModeVisualLine {
			d.cancel()
		} else {
			d.mode = editor.ModeVisualLine
		}
	case 'o':
		caret := d.buf.Caret().Offset
		d.buf.MoveCaret(d.visualAnchor)
		d.visualAnchor = caret
	case 'x':
		d.applyOperatorToSelection(vim.GetOperator('d'), cmd.Register)
	case 'i', 'a':
		// The next key names a text object; the selection grows to it.
		d.visualObjPrefix = r
	}
}

// expandVisualObject grows the visual selection to the text object
// under the caret. An unknown object key leaves the selection alone.
func (d *Dispatcher) expandVisualObject(prefix, key rune) {
	obj := vim.GetTextObject(key)
	if obj == nil {
		return
	}
	r, ok := obj.Resolve(d.buf, d.buf.Caret().Offset, prefix == 'i', d.keywordFunc())
	if !ok {
		return
	}
	if obj.Linewise && d.mode == editor.ModeVisualChar {
		d.mode = editor.ModeVisualLine
	}
	d.visualAnchor = r.Start
	d.buf.MoveCaret(maxInt(r.Start, r.End-1))
}

// keywordFunc builds the word classifier from the buffer's iskeyword.
func (d *Dispatcher) keywordFunc() func(rune) bool {
	return editor.KeywordMatcher(d.opts.Accessor(d.buf).List("iskeyword"))
}

// enterInsert switches to insert mode with the caret at offset.
func (d *Dispatcher) enterInsert(offset int) {
	d.mode = editor.ModeInsert
	d.buf.MoveCaret(offset)
}

// handleInsertKey edits the buffer directly.
func (d *Dispatcher) handleInsertKey(k Key) {
	caret := d.buf.Caret()
	switch k.Kind {
	case KeyEscape:
		d.mode = editor.ModeNormal
		off := caret.Offset
		line := d.buf.LineOf(off)
		if off > d.buf.LineStart(line) {
			off--
		}
		d.moveCaret(off)
	case KeyEnter:
		d.buf.Insert(caret.Offset, "\n")
		d.buf.MoveCaret(caret.Offset + 1)
	case KeyBackspace:
		if caret.Offset > 0 {
			d.buf.Delete(editor.NewRange(caret.Offset-1, caret.Offset))
			d.buf.MoveCaret(caret.Offset - 1)
		}
	case KeyLeft, KeyRight, KeyUp, KeyDown:
		d.applyBareMotion(arrowMotion(k.Kind), 0, 0)
	case KeyRune:
		d.buf.Insert(caret.Offset, string(k.Rune))
		d.buf.MoveCaret(caret.Offset + 1)
	}
}

// selectionSpan is the active visual span in buffer offsets.
func (d *Dispatcher) selectionSpan() editor.Range {
	caret := d.buf.Caret().Offset
	lo, hi := d.visualAnchor, caret
	if hi < lo {
		lo, hi = hi, lo
	}
	if d.mode == editor.ModeVisualLine {
		return lineSpan(d.buf, d.buf.LineOf(lo), d.buf.LineOf(hi))
	}
	// Character visual selection includes the caret cell.
	return editor.NewRange(lo, minInt(hi+1, d.buf.Length()))
}

// recordVisualMarks stores '< and '> for later ranges.
func (d *Dispatcher) recordVisualMarks() {
	span := d.selectionSpan()
	d.marks['<'] = d.buf.LineOf(span.Start)
	d.marks['>'] = d.buf.LineOf(maxInt(span.Start, span.End-1))
}

func (d *Dispatcher) markLookup() func(rune) (int, bool) {
	return func(name rune) (int, bool) {
		line, ok := d.marks[name]
		if !ok {
			return 0, false
		}
		if line >= d.buf.LineCount() {
			line = d.buf.LineCount() - 1
		}
		return line, true
	}
}

func firstNonBlankOffset(v editor.View, line int) int {
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

// lineSpan covers whole lines including the final terminator.
func lineSpan(v editor.View, first, last int) editor.Range {
	end := v.LineEnd(last)
	if end < v.Length() {
		end++
	}
	return editor.NewRange(v.LineStart(first), end)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
