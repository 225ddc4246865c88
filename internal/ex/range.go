package ex

// AddrKind identifies the base of a range address.
type AddrKind uint8

const (
	// AddrNone marks an absent address.
	AddrNone AddrKind = iota

	// AddrLine is an absolute 1-based line number.
	AddrLine

	// AddrCurrent is '.', the caret line.
	AddrCurrent

	// AddrLast is '$', the final line.
	AddrLast

	// AddrMark is 'x, a mark line. The visual-selection marks '< and
	// '> use this kind with those runes.
	AddrMark
)

// Address is one endpoint of a command range, kept symbolic until the
// command runs against a buffer.
type Address struct {
	Kind AddrKind

	// Line is the absolute line for AddrLine.
	Line int

	// Mark names the mark for AddrMark.
	Mark rune

	// Offset is the trailing +n/-n adjustment.
	Offset int
}

// Range is a parsed command range. A zero Range (Start.Kind ==
// AddrNone) means no range was given.
type Range struct {
	Start Address
	End   Address
}

// IsPresent reports whether the command line carried a range.
func (r Range) IsPresent() bool { return r.Start.Kind != AddrNone }

// MarkLookup resolves a mark name to a 0-based buffer line.
type MarkLookup func(name rune) (line int, ok bool)

// Resolve maps the address to a 0-based line. caretLine is 0-based.
func (a Address) Resolve(lineCount, caretLine int, marks MarkLookup) (int, error) {
	var line int
	switch a.Kind {
	case AddrLine:
		line = a.Line - 1
	case AddrCurrent:
		line = caretLine
	case AddrLast:
		line = lineCount - 1
	case AddrMark:
		if marks == nil {
			return 0, errMark(a.Mark)
		}
		l, ok := marks(a.Mark)
		if !ok {
			return 0, errMark(a.Mark)
		}
		line = l
	default:
		return 0, errRange("")
	}
	line += a.Offset
	if line < 0 || line >= lineCount {
		return 0, errRange("")
	}
	return line, nil
}

// Resolve maps the range to a 0-based [start, end] line pair. A
// single-address range yields start == end. Reversed ranges fail.
func (r Range) Resolve(lineCount, caretLine int, marks MarkLookup) (int, int, error) {
	start, err := r.Start.Resolve(lineCount, caretLine, marks)
	if err != nil {
		return 0, 0, err
	}
	if r.End.Kind == AddrNone {
		return start, start, nil
	}
	end, err := r.End.Resolve(lineCount, caretLine, marks)
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, errRange("")
	}
	return start, end, nil
}

// ParseAddress parses a single address, as used by the :copy and
// :move targets. ok is false when text does not start an address.
func ParseAddress(text string) (Address, bool) {
	a, rest, ok, err := parseAddress(skipSpace(text))
	if err != nil || !ok || skipSpace(rest) != "" {
		return Address{}, false
	}
	return a, true
}

// parseRange consumes a leading range from s and returns the rest.
func parseRange(s string) (Range, string, error) {
	s = skipSpace(s)
	if s == "" {
		return Range{}, "", nil
	}

	// '%' is shorthand for 1,$.
	if s[0] == '%' {
		r := Range{
			Start: Address{Kind: AddrLine, Line: 1},
			End:   Address{Kind: AddrLast},
		}
		return r, skipSpace(s[1:]), nil
	}

	start, rest, ok, err := parseAddress(s)
	if err != nil {
		return Range{}, "", err
	}
	if !ok {
		return Range{}, s, nil
	}

	r := Range{Start: start}
	rest = skipSpace(rest)
	if rest != "" && (rest[0] == ',' || rest[0] == ';') {
		end, after, ok, err := parseAddress(skipSpace(rest[1:]))
		if err != nil {
			return Range{}, "", err
		}
		if !ok {
			// A dangling separator implies the caret line.
			end = Address{Kind: AddrCurrent}
			after = rest[1:]
		}
		r.End = end
		rest = after
	}
	return r, skipSpace(rest), nil
}

// parseAddress consumes one address. ok is false when s does not start
// an address at all.
func parseAddress(s string) (Address, string, bool, error) {
	var a Address
	switch {
	case s == "":
		return a, s, false, nil
	case s[0] >= '0' && s[0] <= '9':
		n, rest := parseNumber(s)
		a = Address{Kind: AddrLine, Line: n}
		s = rest
	case s[0] == '.':
		a = Address{Kind: AddrCurrent}
		s = s[1:]
	case s[0] == '$':
		a = Address{Kind: AddrLast}
		s = s[1:]
	case s[0] == '\'':
		if len(s) < 2 {
			return a, s, false, errRange(s)
		}
		a = Address{Kind: AddrMark, Mark: rune(s[1])}
		s = s[2:]
	case s[0] == '+' || s[0] == '-':
		// A bare offset is relative to the caret line.
		a = Address{Kind: AddrCurrent}
	default:
		return a, s, false, nil
	}

	for s != "" && (s[0] == '+' || s[0] == '-') {
		sign := 1
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
		n := 1
		if s != "" && s[0] >= '0' && s[0] <= '9' {
			n, s = parseNumber(s)
		}
		a.Offset += sign * n
	}
	return a, s, true, nil
}

func parseNumber(s string) (int, string) {
	n := 0
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, s[i:]
}

func skipSpace(s string) string {
	for s != "" && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	return s
}
