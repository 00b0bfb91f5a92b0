package params

// Declaration stages parameters for the next task to be defined.
//
// Required and Optional replace what was staged before; Alias accumulates.
// Drain hands the staged values over and resets the declaration, so nothing
// leaks into the task defined after that.
type Declaration struct {
	required    []string
	optional    []Param
	aliases     []aliasDecl
	interactive bool
}

type aliasDecl struct {
	alias     string
	canonical string
}

// NewDeclaration returns an empty Declaration.
func NewDeclaration() *Declaration {
	return &Declaration{}
}

// Required replaces the staged required parameters.
func (d *Declaration) Required(names ...string) *Declaration {
	d.required = append([]string(nil), names...)
	return d
}

// Optional replaces the staged optional parameters.
func (d *Declaration) Optional(ps ...Param) *Declaration {
	d.optional = append([]Param(nil), ps...)
	return d
}

// Alias stages alias as an alternate key for canonical. Calls accumulate.
func (d *Declaration) Alias(alias, canonical string) *Declaration {
	d.aliases = append(d.aliases, aliasDecl{alias: alias, canonical: canonical})
	return d
}

// Interactive makes the next task prompt for missing required parameters.
func (d *Declaration) Interactive() *Declaration {
	d.interactive = true
	return d
}

// Pending reports whether anything is staged.
func (d *Declaration) Pending() bool {
	return len(d.required) > 0 || len(d.optional) > 0 || len(d.aliases) > 0 || d.interactive
}

// Drain builds a Spec from the staged values and resets the declaration.
func (d *Declaration) Drain() *Spec {
	spec := NewSpec()
	for _, name := range d.required {
		spec.AddRequired(name)
	}
	for _, p := range d.optional {
		spec.AddOptional(p.Name, p.Default)
	}
	for _, a := range d.aliases {
		spec.AddAlias(a.alias, a.canonical)
	}
	spec.Interactive = d.interactive

	*d = Declaration{}
	return spec
}
