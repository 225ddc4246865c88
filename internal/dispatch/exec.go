package dispatch

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/duhaesbaert/ideavim/internal/editor"
	"github.com/duhaesbaert/ideavim/internal/ex"
	"github.com/duhaesbaert/ideavim/internal/option"
	"github.com/duhaesbaert/ideavim/internal/vim"
)

// ExecuteCommandLine parses and runs one ex command line. The returned
// message becomes the status line; a failed command leaves the buffer
// untouched, drops any pending input, and returns to normal mode with
// the error text as the status.
func (d *Dispatcher) ExecuteCommandLine(text string) (string, error) {
	d.parser.Reset()
	if d.mode.IsVisual() {
		d.recordVisualMarks()
		d.mode = editor.ModeNormal
	}

	cmd, err := ex.Parse(text)
	if err == nil {
		var msg string
		msg, err = d.runEx(cmd)
		if err == nil {
			d.status = msg
			return msg, nil
		}
	}
	d.status = err.Error()
	return "", err
}

func (d *Dispatcher) runEx(cmd ex.Command) (string, error) {
	switch cmd.Kind {
	case ex.KindGotoLine:
		if !cmd.Range.IsPresent() {
			return "", nil
		}
		_, end, err := d.exLines(cmd)
		if err != nil {
			return "", err
		}
		d.gotoLine(end)
		return "", nil
	case ex.KindGoto:
		return "", d.exGoto(cmd)

	case ex.KindSet, ex.KindSetGlobal:
		return d.exSet(option.Global(), cmd.Arg)
	case ex.KindSetLocal:
		return d.exSet(option.Local(d.buf), cmd.Arg)

	case ex.KindWrite:
		return "", d.host.Write(cmd.Arg, cmd.Bang)
	case ex.KindWriteNext:
		if err := d.host.Write("", cmd.Bang); err != nil {
			return "", err
		}
		return "", d.host.NextFile(cmd.Bang)
	case ex.KindWriteAll:
		return "", d.host.WriteAll(cmd.Bang)
	case ex.KindWriteQuit:
		if err := d.host.Write(cmd.Arg, cmd.Bang); err != nil {
			return "", err
		}
		return "", d.host.Quit(cmd.Bang)
	case ex.KindWriteQuitAll:
		if err := d.host.WriteAll(cmd.Bang); err != nil {
			return "", err
		}
		return "", d.host.QuitAll(cmd.Bang)
	case ex.KindQuit:
		return "", d.host.Quit(cmd.Bang)
	case ex.KindQuitAll:
		return "", d.host.QuitAll(cmd.Bang)
	case ex.KindNext:
		return "", d.host.NextFile(cmd.Bang)
	case ex.KindPrevious:
		return "", d.host.PrevFile(cmd.Bang)
	case ex.KindEdit:
		return "", d.host.Edit(cmd.Arg, cmd.Bang)

	case ex.KindDelete:
		return d.exDelete(cmd)
	case ex.KindYank:
		return d.exYank(cmd)
	case ex.KindPut:
		return "", d.exPut(cmd)
	case ex.KindCopy:
		return d.exCopyMove(cmd, false)
	case ex.KindMove:
		return d.exCopyMove(cmd, true)
	case ex.KindPrint:
		return d.exPrint(cmd)
	case ex.KindSubstitute:
		return d.exSubstitute(cmd)
	case ex.KindGlobal:
		return d.exGlobal(cmd)
	case ex.KindNormal:
		return "", d.exNormal(cmd)

	case ex.KindMark:
		return "", d.exMark(cmd)
	case ex.KindMarks:
		return d.exMarks(), nil
	case ex.KindRegisters:
		return d.exRegisters(), nil
	case ex.KindNoHLSearch:
		return "", nil
	}
	return "", nil
}

// exLines resolves the command range, defaulting to the caret line.
func (d *Dispatcher) exLines(cmd ex.Command) (int, int, error) {
	caretLine := d.buf.LineOf(d.buf.Caret().Offset)
	if !cmd.Range.IsPresent() {
		return caretLine, caretLine, nil
	}
	return cmd.Range.Resolve(d.buf.LineCount(), caretLine, d.markLookup())
}

// gotoLine places the caret on the first non-blank of a line.
func (d *Dispatcher) gotoLine(line int) {
	d.buf.MoveCaret(firstNonBlankOffset(d.buf, line))
}

func (d *Dispatcher) exSet(scope option.Scope, args string) (string, error) {
	msgs, err := ex.ApplySet(d.opts, scope, args)
	if err != nil {
		return "", err
	}
	return strings.Join(msgs, "\n"), nil
}

func (d *Dispatcher) exGoto(cmd ex.Command) error {
	line := d.buf.LineOf(d.buf.Caret().Offset)
	if cmd.Range.IsPresent() {
		var err error
		if _, line, err = d.exLines(cmd); err != nil {
			return err
		}
	}
	if arg := strings.TrimSpace(cmd.Arg); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > d.buf.LineCount() {
			return &ex.Error{Token: arg, Err: ex.ErrInvalidRange}
		}
		line = n - 1
	}
	d.gotoLine(line)
	return nil
}

// exRegister reads an optional register argument.
func exRegister(arg string) (rune, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, nil
	}
	r := []rune(arg)
	if len(r) != 1 || !vim.IsValidRegister(r[0]) {
		return 0, fmt.Errorf("E488: Trailing characters: %s", arg)
	}
	return r[0], nil
}

func (d *Dispatcher) exDelete(cmd ex.Command) (string, error) {
	start, end, err := d.exLines(cmd)
	if err != nil {
		return "", err
	}
	reg, err := exRegister(cmd.Arg)
	if err != nil {
		return "", err
	}
	n := end - start + 1
	d.deleteSpan(lineSpan(d.buf, start, end), reg, true)
	if n < 3 {
		return "", nil
	}
	return fmt.Sprintf("%d fewer lines", n), nil
}

func (d *Dispatcher) exYank(cmd ex.Command) (string, error) {
	start, end, err := d.exLines(cmd)
	if err != nil {
		return "", err
	}
	reg, err := exRegister(cmd.Arg)
	if err != nil {
		return "", err
	}
	n := end - start + 1
	d.yankSpan(lineSpan(d.buf, start, end), reg, true)
	if n < 3 {
		return "", nil
	}
	return fmt.Sprintf("%d lines yanked", n), nil
}

func (d *Dispatcher) exPut(cmd ex.Command) error {
	_, end, err := d.exLines(cmd)
	if err != nil {
		return err
	}
	reg, err := exRegister(cmd.Arg)
	if err != nil {
		return err
	}
	name := reg
	if name == 0 {
		name = '"'
	}
	content, _ := d.regs.Get(name)
	if content == "" {
		return fmt.Errorf("E353: Nothing in register %c", name)
	}
	first := d.insertLinesAfter(end, content)
	d.gotoLine(first + countLines(content) - 1)
	return nil
}

func (d *Dispatcher) exCopyMove(cmd ex.Command, move bool) (string, error) {
	start, end, err := d.exLines(cmd)
	if err != nil {
		return "", err
	}
	addr, ok := ex.ParseAddress(cmd.Arg)
	if !ok {
		return "", fmt.Errorf("E14: Invalid address: %s", strings.TrimSpace(cmd.Arg))
	}

	// Address zero puts the lines above the first line.
	dst := -1
	if addr.Kind != ex.AddrLine || addr.Line != 0 || addr.Offset != 0 {
		caretLine := d.buf.LineOf(d.buf.Caret().Offset)
		if dst, err = addr.Resolve(d.buf.LineCount(), caretLine, d.markLookup()); err != nil {
			return "", err
		}
	}

	n := end - start + 1
	text := d.buf.Slice(lineSpan(d.buf, start, end))

	if move {
		switch {
		case dst == start-1 || dst == end:
			return "", nil
		case dst >= start && dst < end:
			return "", errors.New("E134: Cannot move a range of lines into itself")
		}
		d.buf.Delete(lineDeleteSpan(d.buf, start, end))
		if dst > end {
			dst -= n
		}
	}

	first := d.insertLinesAfter(dst, text)
	d.gotoLine(first + n - 1)
	if n < 3 {
		return "", nil
	}
	if move {
		return fmt.Sprintf("%d lines moved", n), nil
	}
	return fmt.Sprintf("%d more lines", n), nil
}

func (d *Dispatcher) exPrint(cmd ex.Command) (string, error) {
	start, end, err := d.exLines(cmd)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, end-start+1)
	for line := start; line <= end; line++ {
		lines = append(lines, d.buf.Slice(editor.NewRange(d.buf.LineStart(line), d.buf.LineEnd(line))))
	}
	d.gotoLine(end)
	return strings.Join(lines, "\n"), nil
}

func (d *Dispatcher) exSubstitute(cmd ex.Command) (string, error) {
	start, end, err := d.exLines(cmd)
	if err != nil {
		return "", err
	}
	pat, repl, flags, err := d.parseSubstituteArg(cmd.Arg)
	if err != nil {
		return "", err
	}

	acc := d.opts.Accessor(d.buf)
	global := acc.Bool("gdefault")
	insensitive := acc.Bool("ignorecase")
	for _, f := range flags {
		switch f {
		case 'g':
			global = !global
		case 'i':
			insensitive = true
		case 'I':
			insensitive = false
		default:
			return "", fmt.Errorf("E488: Trailing characters: %s", flags)
		}
	}

	expr := pat
	if insensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return "", fmt.Errorf("E383: Invalid search string: %s", pat)
	}
	template := expandReplacement(repl)

	replaced, lines, lastLine := 0, 0, -1
	for line := end; line >= start; line-- {
		span := editor.NewRange(d.buf.LineStart(line), d.buf.LineEnd(line))
		text := d.buf.Slice(span)
		out, n := substituteLine(re, template, text, global)
		if n == 0 {
			continue
		}
		d.buf.Replace(span, out)
		replaced += n
		lines++
		if lastLine < 0 {
			lastLine = line
		}
	}
	if replaced == 0 {
		return "", fmt.Errorf("E486: Pattern not found: %s", pat)
	}
	d.lastSubPat, d.lastSubRepl = pat, repl
	d.gotoLine(lastLine)
	if replaced < 3 {
		return "", nil
	}
	return fmt.Sprintf("%d substitutions on %d lines", replaced, lines), nil
}

// parseSubstituteArg splits /pat/repl/flags on its delimiter. A bare
// :s repeats the previous substitution.
func (d *Dispatcher) parseSubstituteArg(arg string) (pat, repl, flags string, err error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		if d.lastSubPat == "" {
			return "", "", "", errors.New("E35: No previous regular expression")
		}
		return d.lastSubPat, d.lastSubRepl, "", nil
	}
	delim := arg[0]
	pat, rest := splitPattern(arg[1:], delim)
	repl, flags = splitPattern(rest, delim)
	pat = unescapeDelim(pat, delim)
	repl = unescapeDelim(repl, delim)
	flags = strings.TrimSpace(flags)
	if pat == "" {
		if d.lastSubPat == "" {
			return "", "", "", errors.New("E35: No previous regular expression")
		}
		pat = d.lastSubPat
	}
	return pat, repl, flags, nil
}

// splitPattern cuts s at the first unescaped delimiter.
func splitPattern(s string, delim byte) (string, string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case delim:
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

func unescapeDelim(s string, delim byte) string {
	return strings.ReplaceAll(s, `\`+string(delim), string(delim))
}

// substituteLine applies the replacement to one line's text and
// reports how many matches were rewritten.
func substituteLine(re *regexp.Regexp, template, text string, global bool) (string, int) {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}
	if !global {
		matches = matches[:1]
	}
	var b strings.Builder
	prev := 0
	for _, m := range matches {
		b.WriteString(text[prev:m[0]])
		b.Write(re.ExpandString(nil, template, text, m))
		prev = m[1]
	}
	b.WriteString(text[prev:])
	return b.String(), len(matches)
}

// expandReplacement rewrites \1..\9 and & group references to the
// template syntax the regexp package expands.
func expandReplacement(repl string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case c == '\\' && i+1 < len(repl):
			n := repl[i+1]
			switch {
			case n >= '0' && n <= '9':
				b.WriteString("${")
				b.WriteByte(n)
				b.WriteString("}")
			default:
				b.WriteByte(n)
			}
			i++
		case c == '&':
			b.WriteString("${0}")
		case c == '$':
			b.WriteString("$$")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (d *Dispatcher) exGlobal(cmd ex.Command) (string, error) {
	start, end := 0, d.buf.LineCount()-1
	if cmd.Range.IsPresent() {
		var err error
		if start, end, err = d.exLines(cmd); err != nil {
			return "", err
		}
	}
	arg := cmd.Arg
	if arg == "" {
		return "", errors.New("E35: No previous regular expression")
	}
	delim := arg[0]
	pat, rest := splitPattern(arg[1:], delim)
	pat = unescapeDelim(pat, delim)

	expr := pat
	if d.opts.Accessor(d.buf).Bool("ignorecase") {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return "", fmt.Errorf("E383: Invalid search string: %s", pat)
	}

	sub := strings.TrimLeft(rest, " \t")
	if sub == "" {
		sub = "print"
	}
	subCmd, err := ex.Parse(sub)
	if err != nil {
		return "", err
	}
	if subCmd.Range.IsPresent() {
		return "", errors.New("E16: Invalid range")
	}

	// Matching lines are collected up front so the command's own
	// edits cannot re-match.
	var lines []int
	for line := start; line <= end; line++ {
		text := d.buf.Slice(editor.NewRange(d.buf.LineStart(line), d.buf.LineEnd(line)))
		if re.MatchString(text) != cmd.Bang {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("E486: Pattern not found: %s", pat)
	}

	var out []string
	delta := 0
	for _, line := range lines {
		line += delta
		if line < 0 || line >= d.buf.LineCount() {
			continue
		}
		before := d.buf.LineCount()
		d.buf.MoveCaret(d.buf.LineStart(line))
		c := subCmd
		c.Range = ex.Range{Start: ex.Address{Kind: ex.AddrLine, Line: line + 1}}
		msg, err := d.runEx(c)
		if err != nil {
			return "", err
		}
		if msg != "" && subCmd.Kind == ex.KindPrint {
			out = append(out, msg)
		}
		delta += d.buf.LineCount() - before
	}
	return strings.Join(out, "\n"), nil
}

// exNormal replays the argument as normal-mode keys, once per range
// line or once at the caret.
func (d *Dispatcher) exNormal(cmd ex.Command) error {
	if cmd.Arg == "" {
		return nil
	}
	run := func() {
		for _, r := range cmd.Arg {
			d.HandleKey(RuneKey(r))
		}
		// Unfinished input does not survive the replay.
		if d.parser.Pending() != "" || d.mode != editor.ModeNormal {
			d.HandleKey(Key{Kind: KeyEscape})
		}
	}
	if !cmd.Range.IsPresent() {
		run()
		return nil
	}
	start, end, err := d.exLines(cmd)
	if err != nil {
		return err
	}
	delta := 0
	for line := start; line <= end; line++ {
		l := line + delta
		if l < 0 || l >= d.buf.LineCount() {
			break
		}
		before := d.buf.LineCount()
		d.buf.MoveCaret(d.buf.LineStart(l))
		run()
		delta += d.buf.LineCount() - before
	}
	return nil
}

func (d *Dispatcher) exMark(cmd ex.Command) error {
	name := []rune(strings.TrimSpace(cmd.Arg))
	if len(name) != 1 || name[0] < 'a' || name[0] > 'z' {
		return errors.New("E191: Argument must be a letter or forward/backward quote")
	}
	line := d.buf.LineOf(d.buf.Caret().Offset)
	if cmd.Range.IsPresent() {
		var err error
		if _, line, err = d.exLines(cmd); err != nil {
			return err
		}
	}
	d.marks[name[0]] = line
	return nil
}

func (d *Dispatcher) exMarks() string {
	names := make([]rune, 0, len(d.marks))
	for name := range d.marks {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	lines := []string{"mark line  col"}
	for _, name := range names {
		lines = append(lines, fmt.Sprintf(" %c   %4d    0", name, d.marks[name]+1))
	}
	return strings.Join(lines, "\n")
}

var registerListing = []rune(`"0123456789-abcdefghijklmnopqrstuvwxyz`)

func (d *Dispatcher) exRegisters() string {
	lines := []string{"Type Name Content"}
	for _, name := range registerListing {
		content, linewise := d.regs.Get(name)
		if content == "" {
			continue
		}
		kind := "c"
		if linewise {
			kind = "l"
		}
		lines = append(lines, fmt.Sprintf("  %s  \"%c   %s", kind, name, strings.ReplaceAll(content, "\n", "^J")))
	}
	return strings.Join(lines, "\n")
}

// insertLinesAfter inserts register or copied text as whole lines
// below dst (-1 means above the first line) and returns the first
// inserted line.
func (d *Dispatcher) insertLinesAfter(dst int, text string) int {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if dst < 0 {
		d.buf.Insert(0, text)
		return 0
	}
	end := d.buf.LineEnd(dst)
	if end >= d.buf.Length() {
		// Last line without a terminator: open below it.
		d.buf.Insert(d.buf.Length(), "\n"+strings.TrimSuffix(text, "\n"))
	} else {
		d.buf.Insert(end+1, text)
	}
	return dst + 1
}

// lineDeleteSpan is lineSpan widened so removing the final line also
// takes the preceding terminator.
func lineDeleteSpan(v editor.View, first, last int) editor.Range {
	span := lineSpan(v, first, last)
	if span.End >= v.Length() && span.Start > 0 {
		span.Start--
	}
	return span
}

func countLines(text string) int {
	return strings.Count(strings.TrimSuffix(text, "\n"), "\n") + 1
}
