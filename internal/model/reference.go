// Package model defines the data structures for dependency isolation.
package model

// Tag classifies a discovered free-variable reference.
type Tag string

const (
	// TagPlain marks an ordinary bound value or function, patched by default.
	TagPlain Tag = "plain"
	// TagBuiltin marks a reference resolved through the builtin seam
	// namespace, left real by default except the identity seam.
	TagBuiltin Tag = "builtin"
	// TagError marks a binding whose current value implements error.
	// Left real by default so errors.Is assertions keep meaning.
	TagError Tag = "error"
	// TagDouble marks a binding already carrying a substitute installed by
	// an active outer session. Never re-patched.
	TagDouble Tag = "double"
)

// FreeName is one free-variable occurrence discovered in a callable body:
// a bare identifier, or a one-level selector root with its first selector.
type FreeName struct {
	Name string
	Sel  string // first selector when the occurrence was Name.Sel, else ""
	Line int
}

// Reference is a classified free-variable reference. Path is the dotted
// location of the resolved binding ("pkgpath.Name"), empty when unresolved.
type Reference struct {
	Name string
	Sel  string
	Path string
	Tag  Tag
}

// Key returns the identifier the reference was discovered under. Selector
// occurrences keep their one-level shape so "builtins.ID" and a bare "ID"
// stay distinct analysis keys.
func (r Reference) Key() string {
	if r.Sel == "" {
		return r.Name
	}

	return r.Name + "." + r.Sel
}
