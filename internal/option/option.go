// Package option provides the Vim option registry.
//
// The registry maintains definitions of all known options with their
// types, defaults, and validation rules, holds the current global and
// per-view values, and notifies listeners when a value changes.
package option

// Type is the declared data type of an option.
type Type uint8

const (
	// TypeToggle is a boolean option, settable only via set/unset/toggle.
	TypeToggle Type = iota

	// TypeNumber is an integer option.
	TypeNumber

	// TypeString is a string option, optionally a comma-delimited flag
	// list or a bounded enumeration.
	TypeString
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeToggle:
		return "toggle"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Option defines a Vim option with its metadata.
// Exactly one canonical Name exists per option; the Abbrev resolves to
// the same instance.
type Option struct {
	// Name is the canonical option name (e.g., "whichwrap").
	Name string

	// Abbrev is the short alias (e.g., "ww"). Empty if none.
	Abbrev string

	// Type is the option's declared type.
	Type Type

	// Default is the declared default value (bool, int, or string).
	Default any

	// BoundedValues lists the permitted values for a bounded-enum
	// string option. Nil means unrestricted.
	BoundedValues []string

	// IsList marks a string option whose value is an ordered
	// comma-delimited set of flags.
	IsList bool

	// LocalScoped marks options that support a per-view override.
	// Options without it always read and write the global value.
	LocalScoped bool
}

// IsToggle returns true for boolean options.
func (o *Option) IsToggle() bool { return o.Type == TypeToggle }

// permits reports whether the value is inside the bounded set.
// Unrestricted options permit everything.
func (o *Option) permits(value string) bool {
	if len(o.BoundedValues) == 0 {
		return true
	}
	for _, v := range o.BoundedValues {
		if v == value {
			return true
		}
	}
	return false
}

// checkType validates a runtime value against the declared type.
func (o *Option) checkType(value any) bool {
	switch o.Type {
	case TypeToggle:
		_, ok := value.(bool)
		return ok
	case TypeNumber:
		switch value.(type) {
		case int, int64:
			return true
		}
		return false
	case TypeString:
		_, ok := value.(string)
		return ok
	}
	return false
}

// Listener is a change callback. It receives the option's committed
// value. Listeners run synchronously, in registration order, after the
// value is committed; a listener that recursively mutates the same
// option is a documented hazard, not an enforced one.
type Listener func(value any)
