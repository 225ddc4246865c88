package vim

import "math"

// countState accumulates a count prefix during parsing.
type countState struct {
	value  int
	active bool
}

func (c *countState) reset() {
	c.value = 0
	c.active = false
}

// accumulate adds a digit. A leading '0' is refused: it is the
// line-start motion, not a count.
func (c *countState) accumulate(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	digit := int(r - '0')
	if !c.active && digit == 0 {
		return false
	}
	c.active = true
	if c.value > (math.MaxInt-digit)/10 {
		c.value = math.MaxInt / 10
		return true
	}
	c.value = c.value*10 + digit
	return true
}

// get returns the effective count (1 when none accumulated).
func (c *countState) get() int {
	if c.value <= 0 {
		return 1
	}
	return c.value
}

// isCountStart reports whether r can begin a count ('0' cannot).
func isCountStart(r rune) bool {
	return r >= '1' && r <= '9'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// combineCounts multiplies the pre- and post-operator counts with
// overflow protection.
func combineCounts(a, b int) int {
	if a <= 0 {
		a = 1
	}
	if b <= 0 {
		b = 1
	}
	if a > math.MaxInt/b {
		return math.MaxInt / 10
	}
	return a * b
}
