package option

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Scope selects which value of an option an operation reads or writes.
// The zero value is the global scope.
type Scope struct {
	local bool
	view  any
}

// Global returns the global scope.
func Global() Scope { return Scope{} }

// Local returns a per-view scope. Options that do not support local
// scoping fall back to the global value.
func Local(view any) Scope { return Scope{local: true, view: view} }

// Registry owns all Option instances and their current values.
type Registry struct {
	mu        sync.RWMutex
	byName    map[string]*Option // canonical names and abbreviations
	order     []string           // canonical names in registration order
	global    map[string]any     // committed global values (absent = default)
	local     map[any]map[string]any
	listeners map[string][]Listener
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:    make(map[string]*Option),
		global:    make(map[string]any),
		local:     make(map[any]map[string]any),
		listeners: make(map[string][]Listener),
	}
}

// NewRegistryWithDefaults creates a registry with the built-in Vim
// option table registered.
func NewRegistryWithDefaults() *Registry {
	r := NewRegistry()
	r.RegisterDefaults()
	return r
}

// Register adds an option definition to the registry.
func (r *Registry) Register(opt Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[opt.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, opt.Name)
	}
	if opt.Abbrev != "" {
		if _, exists := r.byName[opt.Abbrev]; exists {
			return fmt.Errorf("%w: %s", ErrAlreadyRegistered, opt.Abbrev)
		}
	}
	if !opt.checkType(opt.Default) {
		return fmt.Errorf("default for %s is not a %s", opt.Name, opt.Type)
	}

	o := &opt // Copy to heap
	r.byName[opt.Name] = o
	if opt.Abbrev != "" {
		r.byName[opt.Abbrev] = o
	}
	r.order = append(r.order, opt.Name)
	return nil
}

// MustRegister registers an option and panics on error.
// Useful for registering the built-in table at construction.
func (r *Registry) MustRegister(opt Option) {
	if err := r.Register(opt); err != nil {
		panic(err)
	}
}

// Lookup resolves a name or abbreviation to its option definition.
// Returns nil if unregistered.
func (r *Registry) Lookup(name string) *Option {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// All returns the canonical names in registration order.
func (r *Registry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// valueLocked returns the effective value for the scope.
func (r *Registry) valueLocked(scope Scope, opt *Option) any {
	if scope.local && opt.LocalScoped {
		if m, ok := r.local[scope.view]; ok {
			if v, ok := m[opt.Name]; ok {
				return v
			}
		}
	}
	if v, ok := r.global[opt.Name]; ok {
		return v
	}
	return opt.Default
}

// commit stores the value and returns the listeners to notify.
// Listeners run after the commit, outside the lock.
func (r *Registry) commit(scope Scope, opt *Option, value any) []Listener {
	if scope.local && opt.LocalScoped {
		m, ok := r.local[scope.view]
		if !ok {
			m = make(map[string]any)
			r.local[scope.view] = m
		}
		m[opt.Name] = value
	} else {
		r.global[opt.Name] = value
	}
	ls := r.listeners[opt.Name]
	out := make([]Listener, len(ls))
	copy(out, ls)
	return out
}

func notify(listeners []Listener, value any) {
	for _, l := range listeners {
		l(value)
	}
}

// GetValue returns the effective value of an option.
func (r *Registry) GetValue(scope Scope, name, token string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	opt := r.byName[name]
	if opt == nil {
		return nil, errUnknown(token)
	}
	return r.valueLocked(scope, opt), nil
}

// SetValue assigns a value after validating its runtime type and, for
// bounded-enum string options, its membership in the permitted set.
// Validation completes before any state changes.
func (r *Registry) SetValue(scope Scope, name string, value any, token string) error {
	r.mu.Lock()
	opt := r.byName[name]
	if opt == nil {
		r.mu.Unlock()
		return errUnknown(token)
	}
	if !opt.checkType(value) {
		r.mu.Unlock()
		return errInvalid(token)
	}
	if n, ok := value.(int64); ok {
		value = int(n)
	}
	if s, ok := value.(string); ok && opt.Type == TypeString {
		if err := r.checkBoundedLocked(opt, s, token); err != nil {
			r.mu.Unlock()
			return err
		}
	}
	listeners := r.commit(scope, opt, value)
	r.mu.Unlock()

	notify(listeners, value)
	return nil
}

// checkBoundedLocked validates a string value (each flag of it, for
// list options) against the option's bounded set.
func (r *Registry) checkBoundedLocked(opt *Option, value, token string) error {
	if len(opt.BoundedValues) == 0 {
		return nil
	}
	if opt.IsList {
		for _, flag := range splitList(value) {
			if !opt.permits(flag) {
				return errInvalid(token)
			}
		}
		return nil
	}
	if !opt.permits(value) {
		return errInvalid(token)
	}
	return nil
}

// SetValueText assigns from command-line text, parsing it according to
// the option's declared type. Toggle options reject assignment.
func (r *Registry) SetValueText(scope Scope, name, text, token string) error {
	opt := r.Lookup(name)
	if opt == nil {
		return errUnknown(token)
	}
	switch opt.Type {
	case TypeToggle:
		return errInvalid(token)
	case TypeNumber:
		n, err := strconv.Atoi(text)
		if err != nil {
			return errNumber(token)
		}
		return r.SetValue(scope, name, n, token)
	default:
		return r.SetValue(scope, name, text, token)
	}
}

// listOp is the shared body of AppendValue, PrependValue, and RemoveValue.
func (r *Registry) listOp(scope Scope, name, operand, token string, apply func(cur []string) []string, delta func(cur, n int) int) error {
	r.mu.Lock()
	opt := r.byName[name]
	if opt == nil {
		r.mu.Unlock()
		return errUnknown(token)
	}

	switch opt.Type {
	case TypeToggle:
		// Set-style operators are meaningless for booleans.
		r.mu.Unlock()
		return errInvalid(token)

	case TypeNumber:
		n, err := strconv.Atoi(operand)
		if err != nil {
			r.mu.Unlock()
			return errNumber(token)
		}
		cur, _ := r.valueLocked(scope, opt).(int)
		next := delta(cur, n)
		listeners := r.commit(scope, opt, next)
		r.mu.Unlock()
		notify(listeners, next)
		return nil

	default:
		if err := r.checkBoundedLocked(opt, operand, token); err != nil {
			r.mu.Unlock()
			return err
		}
		cur, _ := r.valueLocked(scope, opt).(string)
		next := strings.Join(apply(splitList(cur)), ",")
		listeners := r.commit(scope, opt, next)
		r.mu.Unlock()
		notify(listeners, next)
		return nil
	}
}

// AppendValue appends flags to a string option (skipping flags already
// present) or adds to a number option.
func (r *Registry) AppendValue(scope Scope, name, operand, token string) error {
	return r.listOp(scope, name, operand, token,
		func(cur []string) []string {
			for _, flag := range splitList(operand) {
				if !containsFlag(cur, flag) {
					cur = append(cur, flag)
				}
			}
			return cur
		},
		func(cur, n int) int { return cur + n })
}

// PrependValue prepends flags to a string option (skipping flags
// already present) or subtracts from a number option.
func (r *Registry) PrependValue(scope Scope, name, operand, token string) error {
	return r.listOp(scope, name, operand, token,
		func(cur []string) []string {
			add := splitList(operand)
			out := make([]string, 0, len(add)+len(cur))
			for _, flag := range add {
				if !containsFlag(cur, flag) {
					out = append(out, flag)
				}
			}
			return append(out, cur...)
		},
		func(cur, n int) int { return cur - n })
}

// RemoveValue removes flags from a string option. On number options it
// validates the operand and leaves the value unchanged.
func (r *Registry) RemoveValue(scope Scope, name, operand, token string) error {
	return r.listOp(scope, name, operand, token,
		func(cur []string) []string {
			for _, flag := range splitList(operand) {
				for i, f := range cur {
					if f == flag {
						cur = append(cur[:i], cur[i+1:]...)
						break
					}
				}
			}
			return cur
		},
		func(cur, n int) int { return cur })
}

// Contains reports whether a string option's flag set includes the
// value. Advisory: unknown or non-string options return false, never
// an error.
func (r *Registry) Contains(scope Scope, name, value string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	opt := r.byName[name]
	if opt == nil || opt.Type != TypeString {
		return false
	}
	cur, _ := r.valueLocked(scope, opt).(string)
	return containsFlag(splitList(cur), value)
}

// GetValues returns a string option's value as an ordered flag list.
// The second result is false for unknown or non-string options.
func (r *Registry) GetValues(scope Scope, name string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	opt := r.byName[name]
	if opt == nil || opt.Type != TypeString {
		return nil, false
	}
	cur, _ := r.valueLocked(scope, opt).(string)
	return splitList(cur), true
}

// IsDefault reports whether the effective value equals the declared
// default.
func (r *Registry) IsDefault(scope Scope, name, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	opt := r.byName[name]
	if opt == nil {
		return false, errUnknown(token)
	}
	return r.valueLocked(scope, opt) == opt.Default, nil
}

// ResetDefault restores the declared default in the given scope.
func (r *Registry) ResetDefault(scope Scope, name, token string) error {
	r.mu.Lock()
	opt := r.byName[name]
	if opt == nil {
		r.mu.Unlock()
		return errUnknown(token)
	}
	if scope.local && opt.LocalScoped {
		if m, ok := r.local[scope.view]; ok {
			delete(m, opt.Name)
		}
	} else {
		delete(r.global, opt.Name)
	}
	ls := r.listeners[opt.Name]
	listeners := make([]Listener, len(ls))
	copy(listeners, ls)
	value := opt.Default
	r.mu.Unlock()

	notify(listeners, value)
	return nil
}

// ResetAll restores every option to its declared default in all scopes.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	type pending struct {
		listeners []Listener
		value     any
	}
	var queue []pending
	for _, name := range r.order {
		opt := r.byName[name]
		_, hadGlobal := r.global[name]
		hadLocal := false
		for _, m := range r.local {
			if _, ok := m[name]; ok {
				hadLocal = true
				delete(m, name)
			}
		}
		delete(r.global, name)
		if hadGlobal || hadLocal {
			ls := r.listeners[name]
			listeners := make([]Listener, len(ls))
			copy(listeners, ls)
			queue = append(queue, pending{listeners: listeners, value: opt.Default})
		}
	}
	r.mu.Unlock()

	for _, p := range queue {
		notify(p.listeners, p.value)
	}
}

// toggleOp is the shared body of SetOption, UnsetOption, and ToggleOption.
func (r *Registry) toggleOp(scope Scope, name, token string, next func(cur bool) bool) error {
	r.mu.Lock()
	opt := r.byName[name]
	if opt == nil {
		r.mu.Unlock()
		return errUnknown(token)
	}
	if !opt.IsToggle() {
		r.mu.Unlock()
		return errInvalid(token)
	}
	cur, _ := r.valueLocked(scope, opt).(bool)
	value := next(cur)
	listeners := r.commit(scope, opt, value)
	r.mu.Unlock()

	notify(listeners, value)
	return nil
}

// SetOption turns a toggle option on.
func (r *Registry) SetOption(scope Scope, name, token string) error {
	return r.toggleOp(scope, name, token, func(bool) bool { return true })
}

// UnsetOption turns a toggle option off.
func (r *Registry) UnsetOption(scope Scope, name, token string) error {
	return r.toggleOp(scope, name, token, func(bool) bool { return false })
}

// ToggleOption inverts a toggle option.
func (r *Registry) ToggleOption(scope Scope, name, token string) error {
	return r.toggleOp(scope, name, token, func(cur bool) bool { return !cur })
}

// AddListener registers a change callback for the named option.
// With executeOnAdd the listener is invoked immediately with the
// option's current value before AddListener returns.
func (r *Registry) AddListener(name string, l Listener, executeOnAdd bool) error {
	r.mu.Lock()
	opt := r.byName[name]
	if opt == nil {
		r.mu.Unlock()
		return errUnknown(name)
	}
	r.listeners[opt.Name] = append(r.listeners[opt.Name], l)
	var current any
	if executeOnAdd {
		current = r.valueLocked(Global(), opt)
	}
	r.mu.Unlock()

	if executeOnAdd {
		l(current)
	}
	return nil
}

// Accessor returns a read-mostly view-bound accessor.
func (r *Registry) Accessor(view any) *Accessor {
	return &Accessor{registry: r, scope: Local(view)}
}

// GlobalAccessor returns an accessor bound to the global scope.
func (r *Registry) GlobalAccessor() *Accessor {
	return &Accessor{registry: r, scope: Global()}
}

// splitList splits a comma-delimited flag set, treating the empty
// string as the empty set.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// containsFlag reports membership in an ordered flag set.
func containsFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
