package option

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Loader reads option values from a TOML rc file and applies them
// through the registry's mutation API, so validation and listeners
// behave exactly as for interactive :set commands.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given rc file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the rc file path.
func (l *Loader) Path() string { return l.path }

// ParseError reports a malformed rc file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the rc file. A missing file is not an error; it yields an
// empty value map.
func (l *Loader) Load() (map[string]any, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rc file %s: %w", l.path, err)
	}

	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, &ParseError{Path: l.path, Message: err.Error(), Err: err}
	}
	return values, nil
}

// Apply loads the rc file and sets each value in the global scope.
// Application is sorted by name so failures are deterministic; the
// first invalid entry aborts with its option error.
func (l *Loader) Apply(reg *Registry) error {
	values, err := l.Load()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := applyValue(reg, name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

// applyValue routes a TOML value through the matching mutation method.
func applyValue(reg *Registry, name string, value any) error {
	switch v := value.(type) {
	case bool:
		if v {
			return reg.SetOption(Global(), name, name)
		}
		return reg.UnsetOption(Global(), name, name)
	case int64:
		return reg.SetValue(Global(), name, int(v), name)
	case string:
		return reg.SetValue(Global(), name, v, name)
	default:
		return errInvalid(fmt.Sprintf("%s=%v", name, value))
	}
}
