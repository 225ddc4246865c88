package ex

import "strings"

// Kind identifies a built-in command.
type Kind uint8

const (
	// KindGotoLine is a bare range with no command name.
	KindGotoLine Kind = iota
	KindWrite
	KindWriteNext
	KindWriteAll
	KindWriteQuit
	KindWriteQuitAll
	KindQuit
	KindQuitAll
	KindNext
	KindPrevious
	KindEdit
	KindSet
	KindSetLocal
	KindSetGlobal
	KindNoHLSearch
	KindRegisters
	KindDelete
	KindYank
	KindPut
	KindCopy
	KindMove
	KindGoto
	KindGlobal
	KindSubstitute
	KindPrint
	KindNormal
	KindMark
	KindMarks
)

// String returns the canonical command name.
func (k Kind) String() string {
	for i := range table {
		if table[i].Kind == k {
			return table[i].Name
		}
	}
	return "gotoLine"
}

// Definition describes one built-in command.
type Definition struct {
	// Name is the full command name.
	Name string

	// MinPrefix is the shortest abbreviation that selects this
	// command. Enumerated per command; Vim's table is irregular.
	MinPrefix string

	Kind Kind

	// TakesRange permits a leading range.
	TakesRange bool

	// TakesBang permits a trailing '!' on the name.
	TakesBang bool
}

// table lists the built-in commands. Order is presentation only;
// matching never depends on it.
var table = []Definition{
	{Name: "copy", MinPrefix: "co", Kind: KindCopy, TakesRange: true},
	{Name: "delete", MinPrefix: "d", Kind: KindDelete, TakesRange: true},
	{Name: "edit", MinPrefix: "e", Kind: KindEdit, TakesBang: true},
	{Name: "global", MinPrefix: "g", Kind: KindGlobal, TakesRange: true, TakesBang: true},
	{Name: "goto", MinPrefix: "go", Kind: KindGoto, TakesRange: true},
	{Name: "mark", MinPrefix: "ma", Kind: KindMark, TakesRange: true},
	{Name: "marks", MinPrefix: "marks", Kind: KindMarks},
	{Name: "move", MinPrefix: "m", Kind: KindMove, TakesRange: true},
	{Name: "next", MinPrefix: "n", Kind: KindNext, TakesBang: true},
	{Name: "nohlsearch", MinPrefix: "noh", Kind: KindNoHLSearch},
	{Name: "normal", MinPrefix: "norm", Kind: KindNormal, TakesRange: true, TakesBang: true},
	{Name: "previous", MinPrefix: "prev", Kind: KindPrevious, TakesBang: true},
	{Name: "print", MinPrefix: "p", Kind: KindPrint, TakesRange: true},
	{Name: "put", MinPrefix: "pu", Kind: KindPut, TakesRange: true},
	{Name: "quit", MinPrefix: "q", Kind: KindQuit, TakesBang: true},
	{Name: "qall", MinPrefix: "qa", Kind: KindQuitAll, TakesBang: true},
	{Name: "registers", MinPrefix: "reg", Kind: KindRegisters},
	{Name: "set", MinPrefix: "se", Kind: KindSet},
	{Name: "setglobal", MinPrefix: "setg", Kind: KindSetGlobal},
	{Name: "setlocal", MinPrefix: "setl", Kind: KindSetLocal},
	{Name: "substitute", MinPrefix: "s", Kind: KindSubstitute, TakesRange: true},
	{Name: "wall", MinPrefix: "wa", Kind: KindWriteAll, TakesBang: true},
	{Name: "wnext", MinPrefix: "wn", Kind: KindWriteNext, TakesBang: true},
	{Name: "wq", MinPrefix: "wq", Kind: KindWriteQuit, TakesRange: true, TakesBang: true},
	{Name: "wqall", MinPrefix: "wqa", Kind: KindWriteQuitAll, TakesBang: true},
	{Name: "write", MinPrefix: "w", Kind: KindWrite, TakesRange: true, TakesBang: true},
	{Name: "yank", MinPrefix: "y", Kind: KindYank, TakesRange: true},
}

// match selects the definition a token abbreviates within defs. An
// exact name always wins; otherwise the token must reach a command's
// minimal prefix, and reaching two is ambiguous.
func match(defs []Definition, token string) (*Definition, error) {
	var found *Definition
	for i := range defs {
		d := &defs[i]
		if d.Name == token {
			return d, nil
		}
		if strings.HasPrefix(d.Name, token) && len(token) >= len(d.MinPrefix) {
			if found != nil {
				return nil, errAmbiguous(token)
			}
			found = d
		}
	}
	if found == nil {
		return nil, errUnknownCommand(token)
	}
	return found, nil
}

// Lookup resolves a command name or abbreviation against the built-in
// table.
func Lookup(token string) (*Definition, error) {
	return match(table, token)
}
