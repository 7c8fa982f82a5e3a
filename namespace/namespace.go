// Package namespace is the binding registry the isolation engine patches
// through. Go has no runtime-rebindable module dictionary, so a package
// opts in by declaring its dependencies as package-level var seams and
// registering pointers to them:
//
//	var (
//		ReadFile = os.ReadFile
//		Clock    = time.Now
//	)
//
//	var _ = namespace.Register(
//		namespace.Var("ReadFile", &ReadFile),
//		namespace.Var("Clock", &Clock),
//	)
//
// Register derives the namespace path from the calling package. Names the
// engine later discovers in a function body resolve against that package's
// namespace; unregistered names are skipped.
package namespace

import (
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// BuiltinPath is the reserved namespace path for engine-owned builtin seams.
const BuiltinPath = "builtins"

// Binding is one rebindable package-level name: a pointer to the var slot
// it was registered with. Set and Swap assign through that pointer, so the
// owning package observes the new value immediately.
type Binding struct {
	name string
	path string
	slot reflect.Value // pointer; Elem is the settable var
}

// Name returns the registered name.
func (b *Binding) Name() string { return b.name }

// Path returns the dotted location, "<namespace path>.<name>".
func (b *Binding) Path() string { return b.path }

// Type returns the static type of the underlying var.
func (b *Binding) Type() reflect.Type { return b.slot.Type().Elem() }

// Pointer returns the slot address. Two bindings alias when their pointers
// are equal; identity-based policy matching compares against this.
func (b *Binding) Pointer() uintptr { return b.slot.Pointer() }

// Value returns the current value of the underlying var.
func (b *Binding) Value() any { return b.slot.Elem().Interface() }

// Set assigns v through the slot. v must be assignable to the var's type.
func (b *Binding) Set(v any) error {
	target := b.slot.Elem()

	if v == nil {
		switch target.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			target.Set(reflect.Zero(target.Type()))
			return nil
		default:
			return fmt.Errorf("namespace: cannot assign nil to %s (%s)", b.path, target.Type())
		}
	}

	val := reflect.ValueOf(v)
	if !val.Type().AssignableTo(target.Type()) {
		return fmt.Errorf("namespace: %s value of type %s is not assignable to %s", b.path, val.Type(), target.Type())
	}

	target.Set(val)

	return nil
}

// Swap assigns v and returns the value it displaced.
func (b *Binding) Swap(v any) (any, error) {
	old := b.Value()
	if err := b.Set(v); err != nil {
		return nil, err
	}

	return old, nil
}

// Namespace holds the registered bindings of one package, in registration
// order.
type Namespace struct {
	path  string
	names map[string]*Binding
	order []string
}

// Path returns the namespace path (normally the package import path).
func (n *Namespace) Path() string { return n.path }

// Resolve looks a name up. The ok result is false for unregistered names.
func (n *Namespace) Resolve(name string) (*Binding, bool) {
	b, ok := n.names[name]
	return b, ok
}

// Names returns the registered names in registration order.
func (n *Namespace) Names() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)

	return out
}

// Decl is one name→slot declaration passed to Register or At.
type Decl struct {
	name string
	ptr  any
}

// Var declares a binding for the var behind ptr. ptr must be a non-nil
// pointer; anything else is a registration-time programming error and
// panics when the declaration is installed.
func Var(name string, ptr any) Decl {
	return Decl{name: name, ptr: ptr}
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Namespace{}
)

// Register installs bindings into the namespace of the calling package,
// creating it on first use. Meant for package-level wiring:
//
//	var _ = namespace.Register(namespace.Var("Clock", &Clock))
func Register(decls ...Decl) *Namespace {
	return At(callerPackage(), decls...)
}

// At installs bindings into the namespace at an explicit path.
func At(path string, decls ...Decl) *Namespace {
	if strings.TrimSpace(path) == "" {
		panic("namespace: empty namespace path")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	ns, ok := registry[path]
	if !ok {
		ns = &Namespace{path: path, names: map[string]*Binding{}}
		registry[path] = ns
	}

	for _, d := range decls {
		ns.install(d)
	}

	return ns
}

// Lookup returns the namespace registered at path, if any.
func Lookup(path string) (*Namespace, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ns, ok := registry[path]

	return ns, ok
}

// Builtins returns the engine-owned builtin seam namespace, if registered.
func Builtins() (*Namespace, bool) {
	return Lookup(BuiltinPath)
}

// Paths returns every registered namespace path, sorted.
func Paths() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]string, 0, len(registry))
	for p := range registry {
		out = append(out, p)
	}

	sort.Strings(out)

	return out
}

func (n *Namespace) install(d Decl) {
	if d.name == "" {
		panic(fmt.Sprintf("namespace: empty binding name in %s", n.path))
	}

	if _, dup := n.names[d.name]; dup {
		panic(fmt.Sprintf("namespace: %s.%s registered twice", n.path, d.name))
	}

	if d.ptr == nil {
		panic(fmt.Sprintf("namespace: %s.%s declared with a nil pointer", n.path, d.name))
	}

	slot := reflect.ValueOf(d.ptr)
	if slot.Kind() != reflect.Pointer || slot.IsNil() {
		panic(fmt.Sprintf("namespace: %s.%s must be declared with a pointer to its var, got %T", n.path, d.name, d.ptr))
	}

	n.names[d.name] = &Binding{
		name: d.name,
		path: n.path + "." + d.name,
		slot: slot,
	}
	n.order = append(n.order, d.name)
}

// callerPackage derives the import path of the package that called into
// this one, from the runtime symbol of the calling function. Package-level
// var initializers and init funcs report their own package, which is what
// Register wants.
func callerPackage() string {
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		panic("namespace: cannot determine calling package")
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		panic("namespace: cannot determine calling package")
	}

	return packageOfSymbol(fn.Name())
}

// packageOfSymbol trims the function part of a runtime symbol, leaving the
// import path. Symbols look like "path/to/pkg.Func", "path/to/pkg.(*T).M"
// or "path/to/pkg.init.0"; the package ends at the first dot after the
// last slash.
func packageOfSymbol(symbol string) string {
	slash := strings.LastIndex(symbol, "/")
	dot := strings.Index(symbol[slash+1:], ".")

	if dot < 0 {
		return symbol
	}

	return symbol[:slash+1+dot]
}
