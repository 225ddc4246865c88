package editor

import (
	"strconv"
	"strings"
)

// defaultIskeyword mirrors the registered 'iskeyword' default.
const defaultIskeyword = "@,48-57,_"

// KeywordMatcher compiles an iskeyword flag list into a rune
// predicate. Recognized entries: "@" for letters plus all runes past
// ASCII, numeric character codes ("95"), numeric ranges ("48-57"),
// "@-@" for a literal at sign, and single literal characters. An
// empty list falls back to the option default.
func KeywordMatcher(flags []string) func(rune) bool {
	if len(flags) == 0 {
		flags = strings.Split(defaultIskeyword, ",")
	}
	type span struct{ lo, hi rune }
	var (
		letters bool
		spans   []span
	)
	for _, f := range flags {
		switch {
		case f == "":
		case f == "@":
			letters = true
		case f == "@-@":
			spans = append(spans, span{'@', '@'})
		default:
			if lo, hi, ok := parseCharRange(f); ok {
				spans = append(spans, span{lo, hi})
			} else if rs := []rune(f); len(rs) == 1 {
				spans = append(spans, span{rs[0], rs[0]})
			}
		}
	}
	return func(r rune) bool {
		if letters && (r > 127 ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return true
		}
		for _, s := range spans {
			if r >= s.lo && r <= s.hi {
				return true
			}
		}
		return false
	}
}

// parseCharRange reads a numeric entry: a character code or a "lo-hi"
// code range.
func parseCharRange(f string) (rune, rune, bool) {
	if i := strings.IndexByte(f, '-'); i > 0 && i < len(f)-1 {
		lo, err1 := strconv.Atoi(f[:i])
		hi, err2 := strconv.Atoi(f[i+1:])
		if err1 != nil || err2 != nil || lo > hi {
			return 0, 0, false
		}
		return rune(lo), rune(hi), true
	}
	if n, err := strconv.Atoi(f); err == nil {
		return rune(n), rune(n), true
	}
	return 0, 0, false
}
