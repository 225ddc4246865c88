package option

// RegisterDefaults registers the built-in Vim option table.
func (r *Registry) RegisterDefaults() {
	r.MustRegister(Option{
		Name:    "whichwrap",
		Abbrev:  "ww",
		Type:    TypeString,
		Default: "b,s",
		IsList:  true,
		BoundedValues: []string{
			"b", "s", "h", "l", "<", ">", "~", "[", "]",
		},
	})

	r.MustRegister(Option{
		Name:          "selection",
		Abbrev:        "sel",
		Type:          TypeString,
		Default:       "inclusive",
		BoundedValues: []string{"old", "inclusive", "exclusive"},
	})

	r.MustRegister(Option{
		Name:    "virtualedit",
		Abbrev:  "ve",
		Type:    TypeString,
		Default: "",
		IsList:  true,
		BoundedValues: []string{
			"block", "insert", "all", "onemore",
		},
	})

	r.MustRegister(Option{
		Name:    "clipboard",
		Abbrev:  "cb",
		Type:    TypeString,
		Default: "",
		IsList:  true,
	})

	r.MustRegister(Option{
		Name:    "iskeyword",
		Abbrev:  "isk",
		Type:    TypeString,
		Default: "@,48-57,_",
		IsList:  true,
		LocalScoped: true,
	})

	r.MustRegister(Option{
		Name:    "matchpairs",
		Abbrev:  "mps",
		Type:    TypeString,
		Default: "(:),{:},[:]",
		IsList:  true,
		LocalScoped: true,
	})

	r.MustRegister(Option{Name: "wrap", Type: TypeToggle, Default: true, LocalScoped: true})
	r.MustRegister(Option{Name: "number", Abbrev: "nu", Type: TypeToggle, Default: false, LocalScoped: true})
	r.MustRegister(Option{Name: "relativenumber", Abbrev: "rnu", Type: TypeToggle, Default: false, LocalScoped: true})
	r.MustRegister(Option{Name: "ignorecase", Abbrev: "ic", Type: TypeToggle, Default: false})
	r.MustRegister(Option{Name: "smartcase", Abbrev: "scs", Type: TypeToggle, Default: false})
	r.MustRegister(Option{Name: "hlsearch", Abbrev: "hls", Type: TypeToggle, Default: true})
	r.MustRegister(Option{Name: "incsearch", Abbrev: "is", Type: TypeToggle, Default: true})
	r.MustRegister(Option{Name: "showmode", Abbrev: "smd", Type: TypeToggle, Default: true})
	r.MustRegister(Option{Name: "startofline", Abbrev: "sol", Type: TypeToggle, Default: true})
	r.MustRegister(Option{Name: "gdefault", Abbrev: "gd", Type: TypeToggle, Default: false})

	r.MustRegister(Option{Name: "scrolloff", Abbrev: "so", Type: TypeNumber, Default: 0, LocalScoped: true})
	r.MustRegister(Option{Name: "sidescrolloff", Abbrev: "siso", Type: TypeNumber, Default: 0, LocalScoped: true})
	r.MustRegister(Option{Name: "history", Abbrev: "hi", Type: TypeNumber, Default: 50})
	r.MustRegister(Option{Name: "timeoutlen", Abbrev: "tm", Type: TypeNumber, Default: 1000})
	r.MustRegister(Option{Name: "shiftwidth", Abbrev: "sw", Type: TypeNumber, Default: 8, LocalScoped: true})
	r.MustRegister(Option{Name: "tabstop", Abbrev: "ts", Type: TypeNumber, Default: 8, LocalScoped: true})
}
