package vim

import (
	"sync"
	"unicode"
)

// RegisterType categorizes registers by their behavior.
type RegisterType uint8

const (
	// RegisterNamed is a named register (a-z).
	RegisterNamed RegisterType = iota

	// RegisterNumbered is a numbered register (1-9), the rotating
	// delete history.
	RegisterNumbered

	// RegisterLastYank is register 0.
	RegisterLastYank

	// RegisterUnnamed is the default register (").
	RegisterUnnamed

	// RegisterSmallDelete is the small delete register (-).
	RegisterSmallDelete

	// RegisterBlackHole is the black hole register (_).
	RegisterBlackHole

	// RegisterClipboard is a system clipboard register (+ or *).
	RegisterClipboard
)

// Register is one storage slot for yanked or deleted text.
type Register struct {
	Name rune
	Type RegisterType

	// Content is the stored text.
	Content string

	// Linewise tags content taken from whole lines.
	Linewise bool
}

// ClipboardProvider abstracts system clipboard access for the + and *
// registers.
type ClipboardProvider interface {
	Get() (string, error)
	Set(content string) error
}

// RegisterStore manages the register file.
type RegisterStore struct {
	mu        sync.RWMutex
	registers map[rune]*Register
	numbered  [9]*Register
	clipboard ClipboardProvider
}

// NewRegisterStore creates a store with every register empty.
func NewRegisterStore() *RegisterStore {
	rs := &RegisterStore{registers: make(map[rune]*Register)}
	rs.registers['"'] = &Register{Name: '"', Type: RegisterUnnamed}
	for r := 'a'; r <= 'z'; r++ {
		rs.registers[r] = &Register{Name: r, Type: RegisterNamed}
	}
	rs.registers['0'] = &Register{Name: '0', Type: RegisterLastYank}
	for i := 1; i <= 9; i++ {
		r := rune('0' + i)
		rs.registers[r] = &Register{Name: r, Type: RegisterNumbered}
		rs.numbered[i-1] = rs.registers[r]
	}
	rs.registers['-'] = &Register{Name: '-', Type: RegisterSmallDelete}
	rs.registers['_'] = &Register{Name: '_', Type: RegisterBlackHole}
	rs.registers['+'] = &Register{Name: '+', Type: RegisterClipboard}
	rs.registers['*'] = &Register{Name: '*', Type: RegisterClipboard}
	return rs
}

// SetClipboard wires a system clipboard behind + and *.
func (rs *RegisterStore) SetClipboard(clipboard ClipboardProvider) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.clipboard = clipboard
}

// IsValidRegister reports whether r names a register the " prefix
// accepts.
func IsValidRegister(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '"' || r == '-' || r == '_' || r == '+' || r == '*':
		return true
	default:
		return false
	}
}

// Get returns a register's content and linewise tag. Uppercase names
// read their lowercase register.
func (rs *RegisterStore) Get(name rune) (string, bool) {
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
	}

	if name == '+' || name == '*' {
		rs.mu.RLock()
		clipboard := rs.clipboard
		rs.mu.RUnlock()
		if clipboard != nil {
			content, err := clipboard.Get()
			if err != nil {
				return "", false
			}
			return content, false
		}
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()
	reg, ok := rs.registers[name]
	if !ok {
		return "", false
	}
	return reg.Content, reg.Linewise
}

// Set stores content in a register. Uppercase names append to their
// lowercase register; the black hole discards.
func (rs *RegisterStore) Set(name rune, content string, linewise bool) {
	if name == '_' {
		return
	}

	if name == '+' || name == '*' {
		rs.mu.RLock()
		clipboard := rs.clipboard
		rs.mu.RUnlock()
		if clipboard != nil {
			_ = clipboard.Set(content)
			return
		}
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	appendMode := false
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
		appendMode = true
	}
	reg, ok := rs.registers[name]
	if !ok {
		return
	}

	if appendMode && reg.Type == RegisterNamed {
		if reg.Linewise {
			reg.Content += "\n" + content
		} else {
			reg.Content += content
		}
		return
	}
	reg.Content = content
	reg.Linewise = linewise
}

// RecordYank stores a yank in register 0 and the unnamed register.
func (rs *RegisterStore) RecordYank(content string, linewise bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	for _, name := range []rune{'0', '"'} {
		if reg, ok := rs.registers[name]; ok {
			reg.Content = content
			reg.Linewise = linewise
		}
	}
}

// RecordDelete stores a delete in the unnamed register and the delete
// history. Deletes of less than one line go to the small delete
// register; larger ones rotate registers 1-9.
func (rs *RegisterStore) RecordDelete(content string, linewise bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	small := !linewise && !containsNewline(content)
	if small {
		if reg, ok := rs.registers['-']; ok {
			reg.Content = content
			reg.Linewise = false
		}
	} else {
		for i := len(rs.numbered) - 1; i > 0; i-- {
			rs.numbered[i].Content = rs.numbered[i-1].Content
			rs.numbered[i].Linewise = rs.numbered[i-1].Linewise
		}
		rs.numbered[0].Content = content
		rs.numbered[0].Linewise = linewise
	}

	if reg, ok := rs.registers['"']; ok {
		reg.Content = content
		reg.Linewise = linewise
	}
}

func containsNewline(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return true
		}
	}
	return false
}
