package ex

import (
	"errors"
	"fmt"
)

// Parser errors.
var (
	// ErrNotEditorCommand indicates the command name matches nothing.
	ErrNotEditorCommand = errors.New("not an editor command")

	// ErrAmbiguousCommand indicates an abbreviation that reaches the
	// minimal prefix of two or more commands.
	ErrAmbiguousCommand = errors.New("ambiguous command")

	// ErrInvalidRange indicates a range that cannot be parsed or that
	// resolves outside the buffer.
	ErrInvalidRange = errors.New("invalid range")

	// ErrNoRangeAllowed indicates a range on a command that takes none.
	ErrNoRangeAllowed = errors.New("no range allowed")

	// ErrMarkNotSet indicates a range address naming an unset mark.
	ErrMarkNotSet = errors.New("mark not set")

	// ErrNoBangAllowed indicates '!' on a command that takes none.
	ErrNoBangAllowed = errors.New("no ! allowed")
)

// Error is a command-line failure carrying the Vim error code and the
// user-typed token. The token is the fragment as typed, never the
// canonical command name.
type Error struct {
	// Code is the stable Vim error code (e.g., "E492").
	Code string

	// Token is the original user-typed text fragment.
	Token string

	// Err is the sentinel category for errors.Is.
	Err error
}

func (e *Error) Error() string {
	switch e.Code {
	case "E492":
		return fmt.Sprintf("E492: Not an editor command: %s", e.Token)
	case "E464":
		return fmt.Sprintf("E464: Ambiguous use of user-defined command: %s", e.Token)
	case "E481":
		return "E481: No range allowed"
	case "E477":
		return "E477: No ! allowed"
	case "E20":
		return fmt.Sprintf("E20: Mark not set: %s", e.Token)
	default:
		if e.Token != "" {
			return fmt.Sprintf("E16: Invalid range: %s", e.Token)
		}
		return "E16: Invalid range"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// errUnknownCommand builds an E492 error for the given token.
func errUnknownCommand(token string) error {
	return &Error{Code: "E492", Token: token, Err: ErrNotEditorCommand}
}

// errAmbiguous builds an E464 error for the given token.
func errAmbiguous(token string) error {
	return &Error{Code: "E464", Token: token, Err: ErrAmbiguousCommand}
}

// errRange builds an E16 error for the given token.
func errRange(token string) error {
	return &Error{Code: "E16", Token: token, Err: ErrInvalidRange}
}

// errNoRange builds an E481 error.
func errNoRange() error {
	return &Error{Code: "E481", Err: ErrNoRangeAllowed}
}

// errNoBang builds an E477 error.
func errNoBang() error {
	return &Error{Code: "E477", Err: ErrNoBangAllowed}
}

// errMark builds an E20 error for the given mark name.
func errMark(mark rune) error {
	return &Error{Code: "E20", Token: string(mark), Err: ErrMarkNotSet}
}
