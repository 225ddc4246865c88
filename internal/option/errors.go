package option

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	// ErrUnknownOption indicates the option name or alias is not registered.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidArgument indicates a value of the wrong type or outside
	// the option's bounded set.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNumberRequired indicates a non-numeric operand on a number option.
	ErrNumberRequired = errors.New("number required")

	// ErrAlreadyRegistered indicates a duplicate option registration.
	ErrAlreadyRegistered = errors.New("option already registered")
)

// Error is an option failure carrying the Vim error code and the
// user-typed token. The token, not the canonical option name, appears
// in the message so external tooling can match on it.
type Error struct {
	// Code is the stable Vim error code (e.g., "E518").
	Code string

	// Token is the original user-typed text fragment.
	Token string

	// Err is the sentinel category for errors.Is.
	Err error
}

func (e *Error) Error() string {
	switch e.Code {
	case "E518":
		return fmt.Sprintf("E518: Unknown option: %s", e.Token)
	case "E521":
		return fmt.Sprintf("E521: Number required after =: %s", e.Token)
	default:
		return fmt.Sprintf("%s: Invalid argument: %s", e.Code, e.Token)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// errUnknown builds an E518 error for the given token.
func errUnknown(token string) error {
	return &Error{Code: "E518", Token: token, Err: ErrUnknownOption}
}

// errInvalid builds an E474 error for the given token.
func errInvalid(token string) error {
	return &Error{Code: "E474", Token: token, Err: ErrInvalidArgument}
}

// errNumber builds an E521 error for the given token.
func errNumber(token string) error {
	return &Error{Code: "E521", Token: token, Err: ErrNumberRequired}
}
