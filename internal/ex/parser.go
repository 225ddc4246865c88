package ex

// Command is a parsed command line. It is a plain value: parsing equal
// text yields equal Commands.
type Command struct {
	Kind Kind

	// Name is the canonical command name, regardless of how it was
	// abbreviated. Empty for a bare range.
	Name string

	Range Range

	// Bang is true when the name carried a trailing '!'.
	Bang bool

	// Arg is the remaining command-line text, verbatim.
	Arg string
}

// Parse maps a command-line string to a Command. Leading colons and
// whitespace are skipped. A bare range becomes a KindGotoLine command;
// an empty line becomes a KindGotoLine with no range, which executes
// as a no-op.
func Parse(text string) (Command, error) {
	s := skipSpace(text)
	for s != "" && s[0] == ':' {
		s = skipSpace(s[1:])
	}

	rng, rest, err := parseRange(s)
	if err != nil {
		return Command{}, err
	}

	name, rest := splitName(rest)
	if name == "" {
		return Command{Kind: KindGotoLine, Range: rng}, nil
	}

	bang := false
	if rest != "" && rest[0] == '!' {
		bang = true
		rest = rest[1:]
	}

	def, err := Lookup(name)
	if err != nil {
		return Command{}, err
	}
	if rng.IsPresent() && !def.TakesRange {
		return Command{}, errNoRange()
	}
	if bang && !def.TakesBang {
		return Command{}, errNoBang()
	}

	return Command{
		Kind:  def.Kind,
		Name:  def.Name,
		Range: rng,
		Bang:  bang,
		Arg:   skipSpace(rest),
	}, nil
}

// splitName consumes the leading run of letters.
func splitName(s string) (string, string) {
	i := 0
	for i < len(s) && ((s[i] >= 'a' && s[i] <= 'z') || (s[i] >= 'A' && s[i] <= 'Z')) {
		i++
	}
	return s[:i], s[i:]
}
