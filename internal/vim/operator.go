package vim

// OpKind identifies what an operator does to its span.
type OpKind uint8

const (
	OpDelete OpKind = iota
	OpChange
	OpYank
	OpIndentRight
	OpIndentLeft
	OpLowercase
	OpUppercase
	OpToggleCase
)

// String returns the operator kind name.
func (k OpKind) String() string {
	switch k {
	case OpDelete:
		return "delete"
	case OpChange:
		return "change"
	case OpYank:
		return "yank"
	case OpIndentRight:
		return "indentRight"
	case OpIndentLeft:
		return "indentLeft"
	case OpLowercase:
		return "lowercase"
	case OpUppercase:
		return "uppercase"
	case OpToggleCase:
		return "toggleCase"
	default:
		return "unknown"
	}
}

// Operator describes an operator command awaiting a span.
type Operator struct {
	// Kind selects the edit applied to the span.
	Kind OpKind

	// Key is the trigger key; doubling it selects line-wise
	// operation (dd, yy, guu).
	Key rune

	// ChangesText is false only for yank.
	ChangesText bool

	// EntersInsert switches to insert mode after the edit.
	EntersInsert bool
}

var (
	opDelete     = Operator{Kind: OpDelete, Key: 'd', ChangesText: true}
	opChange     = Operator{Kind: OpChange, Key: 'c', ChangesText: true, EntersInsert: true}
	opYank       = Operator{Kind: OpYank, Key: 'y'}
	opIndentR    = Operator{Kind: OpIndentRight, Key: '>', ChangesText: true}
	opIndentL    = Operator{Kind: OpIndentLeft, Key: '<', ChangesText: true}
	opLowercase  = Operator{Kind: OpLowercase, Key: 'u', ChangesText: true}
	opUppercase  = Operator{Kind: OpUppercase, Key: 'U', ChangesText: true}
	opToggleCase = Operator{Kind: OpToggleCase, Key: '~', ChangesText: true}
)

// operators maps operator keys to their definitions.
var operators = map[rune]*Operator{
	'd': &opDelete,
	'c': &opChange,
	'y': &opYank,
	'>': &opIndentR,
	'<': &opIndentL,
}

// gOperators maps g-prefixed operator keys.
var gOperators = map[rune]*Operator{
	'u': &opLowercase,
	'U': &opUppercase,
	'~': &opToggleCase,
}

// GetOperator returns the operator for the key, or nil.
func GetOperator(key rune) *Operator {
	return operators[key]
}

// GetGOperator returns the g-prefixed operator for the key, or nil.
func GetGOperator(key rune) *Operator {
	return gOperators[key]
}
