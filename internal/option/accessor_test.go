package option

import "testing"

func TestAccessorTypedGetters(t *testing.T) {
	r := NewRegistryWithDefaults()
	acc := r.GlobalAccessor()

	if acc.Bool("hlsearch") != true {
		t.Error("expected hlsearch default true")
	}
	if got := acc.Int("history"); got != 50 {
		t.Errorf("history = %d, want 50", got)
	}
	if got := acc.String("selection"); got != "inclusive" {
		t.Errorf("selection = %q", got)
	}
	if got := acc.List("whichwrap"); len(got) != 2 || got[0] != "b" {
		t.Errorf("whichwrap list = %v", got)
	}
	if !acc.Has("whichwrap", "s") {
		t.Error("expected whichwrap to have s")
	}

	// Unknown names yield zero values, never errors.
	if acc.Bool("bogus") || acc.Int("bogus") != 0 || acc.String("bogus") != "" {
		t.Error("unknown option must yield zero values")
	}
	if acc.List("bogus") != nil || acc.Has("bogus", "x") {
		t.Error("unknown option must yield empty set")
	}
}

func TestAccessorViewBound(t *testing.T) {
	r := NewRegistryWithDefaults()
	view := struct{ name string }{"win"}

	if err := r.SetValue(Local(view), "iskeyword", "@,_", "isk"); err != nil {
		t.Fatal(err)
	}

	acc := r.Accessor(view)
	if got := acc.String("iskeyword"); got != "@,_" {
		t.Errorf("view accessor read %q", got)
	}

	other := r.Accessor(struct{ name string }{"other"})
	if got := other.String("iskeyword"); got != "@,48-57,_" {
		t.Errorf("other view read %q", got)
	}
}
