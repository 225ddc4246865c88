package motion

import (
	"github.com/duhaesbaert/ideavim/internal/editor"
	"github.com/duhaesbaert/ideavim/internal/option"
)

// Type categorizes motions by how an operator's span is built from
// them. It is a static property of the motion and the current mode,
// never of the destination the motion reaches.
type Type uint8

const (
	// Exclusive motions leave the destination character out of an
	// operator's span.
	Exclusive Type = iota

	// Inclusive motions include the destination character.
	Inclusive

	// Linewise motions expand the span to whole lines.
	Linewise

	// Blockwise motions span a rectangular block.
	Blockwise
)

// String returns the motion type name.
func (t Type) String() string {
	switch t {
	case Exclusive:
		return "exclusive"
	case Inclusive:
		return "inclusive"
	case Linewise:
		return "linewise"
	case Blockwise:
		return "blockwise"
	default:
		return "unknown"
	}
}

// Context carries the mode-dependent inputs of a resolution.
type Context struct {
	// Mode is the current editing mode.
	Mode editor.Mode

	// OperatorPending is true when the motion completes an operator.
	OperatorPending bool

	// Options provides option lookups (whichwrap, selection, matchpairs).
	Options *option.Accessor
}

// resolveFunc computes a target for one motion. The bool result is
// false when the motion fails (e.g., character search without a match).
type resolveFunc func(v editor.View, caret editor.Caret, count int, arg rune, ctx Context) (AdjustedOffset, bool)

// Motion is a motion definition: a data record plus a pure resolve
// function, looked up by key.
type Motion struct {
	// Name is the motion identifier (e.g., "wordForward").
	Name string

	// Key is the key that triggers this motion.
	Key rune

	// Type classifies the motion (exclusive, inclusive, linewise).
	Type Type

	// WrapKey is the whichwrap flag gating line wrap for horizontal
	// motions (0 for motions that never consult whichwrap).
	WrapKey rune

	// NeedsChar marks motions requiring a character argument (f/F/t/T).
	NeedsChar bool

	resolve resolveFunc
}

// Request pairs a motion with its count and character argument.
type Request struct {
	Motion *Motion
	Count  int
	Char   rune
}

// Result is a resolved motion: target offset plus classification.
type Result struct {
	Offset AdjustedOffset
	Type   Type
}

// Resolve computes the target for a motion request. The bool result is
// false when the motion cannot complete; the caller leaves the caret
// and any pending operator untouched in that case.
func Resolve(v editor.View, caret editor.Caret, req Request, ctx Context) (Result, bool) {
	if req.Motion == nil {
		return Result{}, false
	}
	// The raw count reaches the resolver: gg and G distinguish "no
	// count" from an explicit line number.
	off, ok := req.Motion.resolve(v, caret, req.Count, req.Char, ctx)
	if !ok {
		return Result{}, false
	}
	return Result{Offset: off, Type: req.Motion.Type}, true
}

// Standard motions.
var (
	Left = Motion{Name: "left", Key: 'h', Type: Exclusive, WrapKey: 'h', resolve: horizontalResolver(-1, 'h')}

	Right = Motion{Name: "right", Key: 'l', Type: Exclusive, WrapKey: 'l', resolve: horizontalResolver(+1, 'l')}

	// ArrowLeft and ArrowRight are the <Left>/<Right> variants; they
	// differ from h/l only in the whichwrap flag consulted.
	ArrowLeft = Motion{Name: "arrowLeft", Key: 'h', Type: Exclusive, WrapKey: '<', resolve: horizontalResolver(-1, '<')}

	ArrowRight = Motion{Name: "arrowRight", Key: 'l', Type: Exclusive, WrapKey: '>', resolve: horizontalResolver(+1, '>')}

	Up = Motion{Name: "up", Key: 'k', Type: Linewise, resolve: resolveUp}

	Down = Motion{Name: "down", Key: 'j', Type: Linewise, resolve: resolveDown}

	LineStart = Motion{Name: "lineStart", Key: '0', Type: Exclusive, resolve: resolveLineStart}

	FirstNonBlank = Motion{Name: "firstNonBlank", Key: '^', Type: Exclusive, resolve: resolveFirstNonBlank}

	LineEnd = Motion{Name: "lineEnd", Key: '$', Type: Inclusive, resolve: resolveLineEnd}

	WordForward = Motion{Name: "wordForward", Key: 'w', Type: Exclusive, resolve: wordResolver(false)}

	WORDForward = Motion{Name: "WORDForward", Key: 'W', Type: Exclusive, resolve: wordResolver(true)}

	WordBackward = Motion{Name: "wordBackward", Key: 'b', Type: Exclusive, resolve: wordBackResolver(false)}

	WORDBackward = Motion{Name: "WORDBackward", Key: 'B', Type: Exclusive, resolve: wordBackResolver(true)}

	WordEnd = Motion{Name: "wordEnd", Key: 'e', Type: Inclusive, resolve: wordEndResolver(false)}

	WORDEnd = Motion{Name: "WORDEnd", Key: 'E', Type: Inclusive, resolve: wordEndResolver(true)}

	DocumentStart = Motion{Name: "documentStart", Key: 'g', Type: Linewise, resolve: resolveDocumentStart}

	DocumentEnd = Motion{Name: "documentEnd", Key: 'G', Type: Linewise, resolve: resolveDocumentEnd}

	FindChar = Motion{Name: "findChar", Key: 'f', Type: Inclusive, NeedsChar: true, resolve: findResolver(+1, false)}

	FindCharBack = Motion{Name: "findCharBack", Key: 'F', Type: Exclusive, NeedsChar: true, resolve: findResolver(-1, false)}

	TillChar = Motion{Name: "tillChar", Key: 't', Type: Inclusive, NeedsChar: true, resolve: findResolver(+1, true)}

	TillCharBack = Motion{Name: "tillCharBack", Key: 'T', Type: Exclusive, NeedsChar: true, resolve: findResolver(-1, true)}

	ParagraphForward = Motion{Name: "paragraphForward", Key: '}', Type: Exclusive, resolve: paragraphResolver(+1)}

	ParagraphBackward = Motion{Name: "paragraphBackward", Key: '{', Type: Exclusive, resolve: paragraphResolver(-1)}

	MatchPair = Motion{Name: "matchPair", Key: '%', Type: Inclusive, resolve: resolveMatchPair}
)

// motions maps single-key motions to their definitions.
var motions = map[rune]*Motion{
	'h': &Left,
	'l': &Right,
	'k': &Up,
	'j': &Down,
	'0': &LineStart,
	'^': &FirstNonBlank,
	'$': &LineEnd,
	'w': &WordForward,
	'W': &WORDForward,
	'b': &WordBackward,
	'B': &WORDBackward,
	'e': &WordEnd,
	'E': &WORDEnd,
	'G': &DocumentEnd,
	'f': &FindChar,
	'F': &FindCharBack,
	't': &TillChar,
	'T': &TillCharBack,
	'}': &ParagraphForward,
	'{': &ParagraphBackward,
	'%': &MatchPair,
}

// gMotions maps g-prefixed motion keys to their definitions.
var gMotions = map[rune]*Motion{
	'g': &DocumentStart, // gg
}

// Get returns the motion for the given key, or nil.
func Get(key rune) *Motion {
	return motions[key]
}

// GetG returns the g-prefixed motion for the given key, or nil.
func GetG(key rune) *Motion {
	return gMotions[key]
}

// IsCharSearch returns true if the key's motion requires a character
// argument.
func IsCharSearch(key rune) bool {
	m := motions[key]
	return m != nil && m.NeedsChar
}
