package ex

import (
	"fmt"
	"strings"

	"github.com/duhaesbaert/ideavim/internal/option"
)

// ApplySet interprets a :set argument string against the registry.
// scope selects where values land: setlocal passes a view scope,
// setglobal and plain set pass the global one. It returns the query
// output lines for interrogative arguments and stops at the first
// failing argument.
//
// Per argument the grammar is:
//
//	{name}        enable a toggle; show any other option's value
//	no{name}      disable a toggle
//	inv{name}     invert a toggle
//	{name}!       invert a toggle
//	{name}?       show the value
//	{name}&       reset to the default
//	{name}={v}    assign (also {name}:{v})
//	{name}+={v}   append (numbers add)
//	{name}^={v}   prepend (numbers subtract)
//	{name}-={v}   remove (numbers keep their value)
//
// The error token is always the argument fragment as the user typed
// it, never the canonical option name.
func ApplySet(reg *option.Registry, scope option.Scope, args string) ([]string, error) {
	var out []string
	for _, item := range strings.Fields(args) {
		msgs, err := applySetItem(reg, scope, item)
		if err != nil {
			return out, err
		}
		out = append(out, msgs...)
	}
	return out, nil
}

func applySetItem(reg *option.Registry, scope option.Scope, item string) ([]string, error) {
	// Assignment operators take priority: "invlist=x" assigns to an
	// option named invlist, it does not invert "list=x".
	if name, op, value, ok := splitAssign(item); ok {
		switch op {
		case "+=":
			return nil, reg.AppendValue(scope, name, value, item)
		case "^=":
			return nil, reg.PrependValue(scope, name, value, item)
		case "-=":
			return nil, reg.RemoveValue(scope, name, value, item)
		default:
			return nil, reg.SetValueText(scope, name, value, item)
		}
	}

	switch {
	case strings.HasSuffix(item, "?"):
		return queryOption(reg, scope, strings.TrimSuffix(item, "?"), item)
	case strings.HasSuffix(item, "!"):
		return nil, reg.ToggleOption(scope, strings.TrimSuffix(item, "!"), item)
	case strings.HasSuffix(item, "&"):
		return nil, reg.ResetDefault(scope, strings.TrimSuffix(item, "&"), item)
	}

	// "no" and "inv" prefixes apply only when the remainder names a
	// registered option; "number" must not parse as "no" + "umber".
	if rest, ok := strings.CutPrefix(item, "no"); ok && reg.Lookup(rest) != nil {
		return nil, reg.UnsetOption(scope, rest, item)
	}
	if rest, ok := strings.CutPrefix(item, "inv"); ok && reg.Lookup(rest) != nil {
		return nil, reg.ToggleOption(scope, rest, item)
	}

	opt := reg.Lookup(item)
	if opt == nil {
		// Fall back so "nosuchopt" reports the unknown name.
		_, err := reg.GetValue(scope, item, item)
		return nil, err
	}
	if opt.Type == option.TypeToggle {
		return nil, reg.SetOption(scope, item, item)
	}
	return queryOption(reg, scope, item, item)
}

// queryOption renders one option the way :set {name}? shows it.
func queryOption(reg *option.Registry, scope option.Scope, name, token string) ([]string, error) {
	opt := reg.Lookup(name)
	if opt == nil {
		_, err := reg.GetValue(scope, name, token)
		return nil, err
	}
	v, err := reg.GetValue(scope, name, token)
	if err != nil {
		return nil, err
	}
	switch val := v.(type) {
	case bool:
		if val {
			return []string{"  " + opt.Name}, nil
		}
		return []string{"no" + opt.Name}, nil
	case int:
		return []string{fmt.Sprintf("  %s=%d", opt.Name, val)}, nil
	default:
		return []string{fmt.Sprintf("  %s=%v", opt.Name, val)}, nil
	}
}

// splitAssign detects {name}{op}{value} where op is one of
// = := += ^= -=.
func splitAssign(item string) (name, op, value string, ok bool) {
	i := strings.IndexAny(item, "=:")
	if i < 0 {
		return "", "", "", false
	}
	if item[i] == ':' {
		if i+1 >= len(item) || item[i+1] != '=' {
			return "", "", "", false
		}
		return item[:i], "=", item[i+2:], true
	}
	if i > 0 {
		switch item[i-1] {
		case '+', '^', '-':
			return item[:i-1], string(item[i-1]) + "=", item[i+1:], true
		}
	}
	return item[:i], "=", item[i+1:], true
}
