package domain

// universeNames lists the predeclared identifiers that can never resolve to
// a registered binding: builtin functions and basic type names. Predeclared
// constants are filtered earlier, during the walk.
var universeNames = map[string]struct{}{
	"append":     {},
	"cap":        {},
	"clear":      {},
	"close":      {},
	"complex":    {},
	"copy":       {},
	"delete":     {},
	"imag":       {},
	"len":        {},
	"make":       {},
	"max":        {},
	"min":        {},
	"new":        {},
	"panic":      {},
	"print":      {},
	"println":    {},
	"real":       {},
	"recover":    {},
	"any":        {},
	"bool":       {},
	"byte":       {},
	"comparable": {},
	"complex64":  {},
	"complex128": {},
	"error":      {},
	"float32":    {},
	"float64":    {},
	"int":        {},
	"int8":       {},
	"int16":      {},
	"int32":      {},
	"int64":      {},
	"rune":       {},
	"string":     {},
	"uint":       {},
	"uint8":      {},
	"uint16":     {},
	"uint32":     {},
	"uint64":     {},
	"uintptr":    {},
}

// IsUniverseName reports whether name is predeclared language surface.
func IsUniverseName(name string) bool {
	_, ok := universeNames[name]
	return ok
}
