package option

// Accessor provides ergonomic option lookups for read-mostly consumers
// such as the motion resolver. Lookups never fail: unknown names yield
// zero values, so accessor reads stay off the error path.
type Accessor struct {
	registry *Registry
	scope    Scope
}

// Bool returns a toggle option's effective value.
func (a *Accessor) Bool(name string) bool {
	v, err := a.registry.GetValue(a.scope, name, name)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Int returns a number option's effective value.
func (a *Accessor) Int(name string) int {
	v, err := a.registry.GetValue(a.scope, name, name)
	if err != nil {
		return 0
	}
	n, _ := v.(int)
	return n
}

// String returns a string option's effective value.
func (a *Accessor) String(name string) string {
	v, err := a.registry.GetValue(a.scope, name, name)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// List returns a string option's value as an ordered flag list.
func (a *Accessor) List(name string) []string {
	flags, _ := a.registry.GetValues(a.scope, name)
	return flags
}

// Has reports whether a string option's flag set includes the value.
func (a *Accessor) Has(name, flag string) bool {
	return a.registry.Contains(a.scope, name, flag)
}
