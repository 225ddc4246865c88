package vim

import (
	"github.com/duhaesbaert/ideavim/internal/motion"
)

// ParseStatus indicates the result of feeding a key to the parser.
type ParseStatus uint8

const (
	// StatusPending indicates more input is needed.
	StatusPending ParseStatus = iota

	// StatusComplete indicates a complete command was parsed.
	StatusComplete

	// StatusInvalid indicates the sequence is invalid.
	StatusInvalid

	// StatusPassthrough indicates the key is not part of the grammar
	// and the caller should handle it.
	StatusPassthrough
)

// String returns a string representation of the status.
func (s ParseStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusInvalid:
		return "invalid"
	case StatusPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// ParseState represents the current state of the parser.
type ParseState uint8

const (
	// StateInitial is waiting for initial input.
	StateInitial ParseState = iota

	// StateCount is accumulating a count prefix.
	StateCount

	// StateRegister is waiting for a register name after ".
	StateRegister

	// StateOperator has received an operator, waiting for a motion or
	// text object.
	StateOperator

	// StateOperatorCount is accumulating a count after the operator.
	StateOperatorCount

	// StateGPrefix has received 'g', waiting for the second key.
	StateGPrefix

	// StateTextObjectPrefix has received 'i' or 'a' after an operator.
	StateTextObjectPrefix

	// StateCharSearch has received f/F/t/T, waiting for the target.
	StateCharSearch
)

// String returns a string representation of the state.
func (s ParseState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateCount:
		return "count"
	case StateRegister:
		return "register"
	case StateOperator:
		return "operator"
	case StateOperatorCount:
		return "operatorCount"
	case StateGPrefix:
		return "gPrefix"
	case StateTextObjectPrefix:
		return "textObjectPrefix"
	case StateCharSearch:
		return "charSearch"
	default:
		return "unknown"
	}
}

// Command is a parsed normal-mode command.
type Command struct {
	// Count is the combined repeat count (0 means none given).
	Count int

	// Register is the selected register (0 means default).
	Register rune

	// Operator is the pending operator, if any.
	Operator *Operator

	// Motion is the motion, if any.
	Motion *motion.Motion

	// TextObject is the text object, if any.
	TextObject *TextObject

	// Inner is true for i-objects, false for a-objects.
	Inner bool

	// CharArg is the target character for f/F/t/T.
	CharArg rune

	// Linewise marks doubled-operator commands (dd, yy, guu).
	Linewise bool
}

// EffectiveCount returns the count with 1 substituted for none.
func (c *Command) EffectiveCount() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}

// ParseResult is the outcome of one key.
type ParseResult struct {
	Status ParseStatus

	// Command is set when Status is StatusComplete. On passthrough it
	// carries the key in CharArg plus any accumulated count and
	// register for the caller.
	Command *Command

	// Pending shows the keys consumed so far, for the status line.
	Pending string
}

// Parser parses normal-mode key sequences.
type Parser struct {
	state ParseState

	count1     countState
	count2     countState
	register   rune
	operator   *Operator
	inner      bool
	charSearch rune

	pending []rune
}

// NewParser creates an empty parser.
func NewParser() *Parser {
	return &Parser{pending: make([]rune, 0, 8)}
}

// Reset clears all parser state.
func (p *Parser) Reset() {
	p.state = StateInitial
	p.count1.reset()
	p.count2.reset()
	p.register = 0
	p.operator = nil
	p.inner = false
	p.charSearch = 0
	p.pending = p.pending[:0]
}

// State returns the current parser state.
func (p *Parser) State() ParseState {
	return p.state
}

// Pending returns the consumed keys as a display string.
func (p *Parser) Pending() string {
	return string(p.pending)
}

// OperatorPending reports whether an operator is waiting for a span.
func (p *Parser) OperatorPending() bool {
	return p.operator != nil
}

// PendingOperator returns the captured operator, or nil.
func (p *Parser) PendingOperator() *Operator {
	return p.operator
}

// TakeCommand assembles the accumulated state and resets the parser.
// Visual mode uses this to apply an operator the moment its key lands.
func (p *Parser) TakeCommand() *Command {
	cmd := p.buildCommand()
	p.Reset()
	return cmd
}

// Feed processes one key.
func (p *Parser) Feed(r rune) ParseResult {
	p.pending = append(p.pending, r)

	switch p.state {
	case StateInitial:
		return p.feedInitial(r)
	case StateCount:
		return p.feedCount(r)
	case StateRegister:
		return p.feedRegister(r)
	case StateOperator:
		return p.feedOperator(r)
	case StateOperatorCount:
		return p.feedOperatorCount(r)
	case StateGPrefix:
		return p.feedGPrefix(r)
	case StateTextObjectPrefix:
		return p.feedTextObjectPrefix(r)
	case StateCharSearch:
		return p.feedCharSearch(r)
	default:
		p.Reset()
		return ParseResult{Status: StatusInvalid}
	}
}

func (p *Parser) pendingResult() ParseResult {
	return ParseResult{Status: StatusPending, Pending: p.Pending()}
}

func (p *Parser) feedInitial(r rune) ParseResult {
	if isCountStart(r) {
		p.state = StateCount
		p.count1.accumulate(r)
		return p.pendingResult()
	}
	if r == '"' {
		p.state = StateRegister
		return p.pendingResult()
	}
	if r == 'g' {
		p.state = StateGPrefix
		return p.pendingResult()
	}
	if op := GetOperator(r); op != nil {
		p.operator = op
		p.state = StateOperator
		return p.pendingResult()
	}
	if motion.IsCharSearch(r) {
		p.charSearch = r
		p.state = StateCharSearch
		return p.pendingResult()
	}
	if m := motion.Get(r); m != nil {
		return p.completeMotion(m)
	}

	// Not ours. Hand back whatever prefix had accumulated.
	return p.passthrough(r)
}

func (p *Parser) feedCount(r rune) ParseResult {
	if isDigit(r) {
		p.count1.accumulate(r)
		return p.pendingResult()
	}
	if r == '"' {
		p.state = StateRegister
		return p.pendingResult()
	}
	if r == 'g' {
		p.state = StateGPrefix
		return p.pendingResult()
	}
	if op := GetOperator(r); op != nil {
		p.operator = op
		p.state = StateOperator
		return p.pendingResult()
	}
	if motion.IsCharSearch(r) {
		p.charSearch = r
		p.state = StateCharSearch
		return p.pendingResult()
	}
	if m := motion.Get(r); m != nil {
		return p.completeMotion(m)
	}
	return p.passthrough(r)
}

func (p *Parser) feedRegister(r rune) ParseResult {
	if !IsValidRegister(r) {
		p.Reset()
		return ParseResult{Status: StatusInvalid}
	}
	p.register = r
	p.state = StateInitial
	return p.pendingResult()
}

func (p *Parser) feedOperator(r rune) ParseResult {
	if isCountStart(r) {
		p.state = StateOperatorCount
		p.count2.accumulate(r)
		return p.pendingResult()
	}

	// Doubled operator key is line-wise (dd, yy, cc).
	if p.operator.Key == r {
		return p.completeLinewise()
	}

	if r == 'g' {
		p.state = StateGPrefix
		return p.pendingResult()
	}
	if r == 'i' || r == 'a' {
		p.inner = r == 'i'
		p.state = StateTextObjectPrefix
		return p.pendingResult()
	}
	if motion.IsCharSearch(r) {
		p.charSearch = r
		p.state = StateCharSearch
		return p.pendingResult()
	}
	if m := motion.Get(r); m != nil {
		return p.completeMotion(m)
	}

	p.Reset()
	return ParseResult{Status: StatusInvalid}
}

func (p *Parser) feedOperatorCount(r rune) ParseResult {
	if isDigit(r) {
		p.count2.accumulate(r)
		return p.pendingResult()
	}
	if r == 'g' {
		p.state = StateGPrefix
		return p.pendingResult()
	}
	if r == 'i' || r == 'a' {
		p.inner = r == 'i'
		p.state = StateTextObjectPrefix
		return p.pendingResult()
	}
	if motion.IsCharSearch(r) {
		p.charSearch = r
		p.state = StateCharSearch
		return p.pendingResult()
	}
	if m := motion.Get(r); m != nil {
		return p.completeMotion(m)
	}

	p.Reset()
	return ParseResult{Status: StatusInvalid}
}

func (p *Parser) feedGPrefix(r rune) ParseResult {
	if m := motion.GetG(r); m != nil {
		return p.completeMotion(m)
	}
	if op := GetGOperator(r); op != nil {
		if p.operator != nil {
			p.Reset()
			return ParseResult{Status: StatusInvalid}
		}
		p.operator = op
		p.state = StateOperator
		return p.pendingResult()
	}
	p.Reset()
	return ParseResult{Status: StatusInvalid}
}

func (p *Parser) feedTextObjectPrefix(r rune) ParseResult {
	obj := GetTextObject(r)
	if obj == nil {
		p.Reset()
		return ParseResult{Status: StatusInvalid}
	}
	cmd := p.buildCommand()
	cmd.TextObject = obj
	cmd.Inner = p.inner
	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

func (p *Parser) feedCharSearch(r rune) ParseResult {
	m := motion.Get(p.charSearch)
	if m == nil {
		p.Reset()
		return ParseResult{Status: StatusInvalid}
	}
	cmd := p.buildCommand()
	cmd.Motion = m
	cmd.CharArg = r
	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

func (p *Parser) completeMotion(m *motion.Motion) ParseResult {
	cmd := p.buildCommand()
	cmd.Motion = m
	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

func (p *Parser) completeLinewise() ParseResult {
	cmd := p.buildCommand()
	cmd.Linewise = true
	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

// passthrough hands the key back along with any accumulated count and
// register, so callers can apply them to keys outside the grammar
// ("2x", "\"ap").
func (p *Parser) passthrough(r rune) ParseResult {
	cmd := p.buildCommand()
	cmd.CharArg = r
	p.Reset()
	return ParseResult{Status: StatusPassthrough, Command: cmd}
}

// buildCommand assembles the accumulated state. The counts multiply
// across the operator boundary.
func (p *Parser) buildCommand() *Command {
	cmd := &Command{
		Register: p.register,
		Operator: p.operator,
	}
	cmd.Count = combineCounts(p.count1.get(), p.count2.get())
	if cmd.Count == 1 && !p.count1.active && !p.count2.active {
		cmd.Count = 0
	}
	return cmd
}
