package dispatch

// KeyKind distinguishes rune keys from the named keys the state
// machine treats specially.
type KeyKind uint8

const (
	// KeyRune is a printable key carrying its rune.
	KeyRune KeyKind = iota

	// KeyEscape cancels pending state or leaves the mode.
	KeyEscape

	// KeyEnter is the return key.
	KeyEnter

	// KeyBackspace deletes backward in insert mode.
	KeyBackspace

	// KeyLeft and friends are the arrow keys.
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Key is one keyboard event.
type Key struct {
	Kind KeyKind
	Rune rune
}

// RuneKey wraps a printable rune.
func RuneKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}
