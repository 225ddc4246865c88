package editor

// Mode identifies an editing mode.
type Mode uint8

const (
	// ModeNormal is the default command mode.
	ModeNormal Mode = iota

	// ModeInsert inserts typed text at the caret.
	ModeInsert

	// ModeVisualChar is character-wise visual selection.
	ModeVisualChar

	// ModeVisualLine is line-wise visual selection.
	ModeVisualLine

	// ModeVisualBlock is block-wise visual selection.
	ModeVisualBlock

	// ModeSelect is select mode (typing replaces the selection).
	ModeSelect

	// ModeOperatorPending awaits a motion or text object to complete a
	// pending operator.
	ModeOperatorPending
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeVisualChar:
		return "visual"
	case ModeVisualLine:
		return "visual-line"
	case ModeVisualBlock:
		return "visual-block"
	case ModeSelect:
		return "select"
	case ModeOperatorPending:
		return "operator-pending"
	default:
		return "unknown"
	}
}

// IsVisual returns true for the visual and select modes.
func (m Mode) IsVisual() bool {
	switch m {
	case ModeVisualChar, ModeVisualLine, ModeVisualBlock, ModeSelect:
		return true
	default:
		return false
	}
}

// DisplayName returns the status-line label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeNormal:
		return ""
	case ModeInsert:
		return "-- INSERT --"
	case ModeVisualChar:
		return "-- VISUAL --"
	case ModeVisualLine:
		return "-- VISUAL LINE --"
	case ModeVisualBlock:
		return "-- VISUAL BLOCK --"
	case ModeSelect:
		return "-- SELECT --"
	case ModeOperatorPending:
		return ""
	default:
		return ""
	}
}
