package domain

import (
	"log/slog"
	"path"
	"reflect"

	"stunt.dev/pkg/stunt/double"
	m "stunt.dev/pkg/stunt/internal/model"
	"stunt.dev/pkg/stunt/namespace"
)

// ClassifiedRef pairs one free reference with the registered binding it
// resolved to.
type ClassifiedRef struct {
	Ref     m.Reference
	Binding *namespace.Binding
}

// Key returns the reference key policy matching works against.
func (c ClassifiedRef) Key() string {
	return c.Ref.Key()
}

// InstalledFunc reports whether a binding currently carries an installed
// double. Sessions supply it so nested isolation never doubles a double.
type InstalledFunc func(*namespace.Binding) bool

// ReferenceClassifier resolves free names against the namespace registry and
// tags every binding it finds. Names nothing declares are dropped.
type ReferenceClassifier interface {
	Classify(analysis m.Analysis, installed InstalledFunc) []ClassifiedRef
}

// RegistryClassifier is the concrete ReferenceClassifier backed by the
// global namespace registry.
type RegistryClassifier struct {
	factory double.Factory
}

// NewRegistryClassifier constructs a RegistryClassifier. The factory is
// consulted as a second line of double detection, for values installed by
// other sessions or by hand.
func NewRegistryClassifier(factory double.Factory) *RegistryClassifier {
	return &RegistryClassifier{factory: factory}
}

// Classify resolves and tags the free names of one analysis. References to
// the same binding collapse into the first occurrence.
func (c *RegistryClassifier) Classify(analysis m.Analysis, installed InstalledFunc) []ClassifiedRef {
	own, _ := namespace.Lookup(analysis.ID.PkgPath)

	var out []ClassifiedRef

	seen := map[*namespace.Binding]struct{}{}

	for _, free := range analysis.Free {
		if free.Sel == "" && IsUniverseName(free.Name) {
			continue
		}

		binding, nsPath, tag := c.resolve(own, analysis, free)
		if binding == nil {
			slog.Debug("free name is not a registered binding", "name", free.Name, "sel", free.Sel, "pkg", analysis.ID.PkgPath)
			continue
		}

		if _, dup := seen[binding]; dup {
			continue
		}

		seen[binding] = struct{}{}

		if c.doubled(binding, installed) {
			tag = m.TagDouble
		}

		out = append(out, ClassifiedRef{
			Ref:     m.Reference{Name: free.Name, Sel: free.Sel, Path: nsPath, Tag: tag},
			Binding: binding,
		})
	}

	return out
}

// resolve finds the binding behind one free name. Bare names resolve in the
// defining package's namespace. Selector roots resolve first as bindings of
// the defining package, then as imports: the selector picks a binding out of
// the imported package's namespace.
func (c *RegistryClassifier) resolve(own *namespace.Namespace, analysis m.Analysis, free m.FreeName) (*namespace.Binding, string, m.Tag) {
	if own != nil {
		if b, ok := own.Resolve(free.Name); ok {
			return b, own.Path(), tagOf(b)
		}
	}

	if free.Sel == "" {
		return nil, "", ""
	}

	importPath, ok := analysis.Imports[free.Name]
	if !ok {
		return nil, "", ""
	}

	ns, found := namespace.Lookup(importPath)
	if !found && path.Base(importPath) == namespace.BuiltinPath {
		ns, found = namespace.Lookup(namespace.BuiltinPath)
	}

	if !found {
		return nil, "", ""
	}

	b, ok := ns.Resolve(free.Sel)
	if !ok {
		return nil, "", ""
	}

	if ns.Path() == namespace.BuiltinPath {
		return b, ns.Path(), m.TagBuiltin
	}

	return b, ns.Path(), tagOf(b)
}

func (c *RegistryClassifier) doubled(b *namespace.Binding, installed InstalledFunc) bool {
	if installed != nil && installed(b) {
		return true
	}

	return c.factory != nil && c.factory.IsDouble(b.Value())
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// tagOf tags a binding by its slot: error-shaped bindings stay real by
// default, everything else is plain.
func tagOf(b *namespace.Binding) m.Tag {
	t := b.Type()

	if t.Implements(errType) || (t.Kind() != reflect.Ptr && reflect.PtrTo(t).Implements(errType)) {
		return m.TagError
	}

	return m.TagPlain
}
