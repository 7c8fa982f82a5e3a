package double

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/stretchr/testify/mock"
)

// maxDepth caps placeholder nesting so self-referential types (a func
// type returning itself, a struct chaining to its own kind) terminate.
const maxDepth = 6

// Factory produces doubles. Make receives the dotted path of the name being
// replaced, the static type of the slot, and the original value currently
// held there; it returns the recording substitute. IsDouble reports whether
// a value was produced by this factory, so substitutes already in place are
// never doubled again.
type Factory interface {
	Make(path string, typ reflect.Type, original any) (*Double, error)
	IsDouble(v any) bool
}

type reflectFactory struct {
	mu   sync.Mutex
	made map[uintptr]struct{}
	seq  int
}

// NewFactory returns the default reflect-based factory.
func NewFactory() Factory {
	return &reflectFactory{made: map[uintptr]struct{}{}}
}

// Make builds a recording substitute for typ.
func (f *reflectFactory) Make(path string, typ reflect.Type, _ any) (*Double, error) {
	if typ == nil {
		return nil, fmt.Errorf("double: nil type for %q", path)
	}

	return f.build(path, typ, 0), nil
}

// IsDouble reports whether v came out of this factory.
func (f *reflectFactory) IsDouble(v any) bool {
	switch v.(type) {
	case *Stub, stubError:
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Func, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan:
		f.mu.Lock()
		defer f.mu.Unlock()

		_, ok := f.made[rv.Pointer()]

		return ok
	default:
		return false
	}
}

func (f *reflectFactory) build(path string, typ reflect.Type, depth int) *Double {
	d := &Double{path: path, typ: typ}

	if depth >= maxDepth {
		d.value = reflect.Zero(typ)
		d.inert = true

		return d
	}

	// A zero slog.Logger panics the moment anything logs through it, so
	// logger slots get a live logger over a recording handler instead of
	// the generic pointer treatment.
	if typ == loggerType {
		f.buildLogger(d)
		return d
	}

	switch typ.Kind() {
	case reflect.Func:
		f.buildFunc(d, depth)
	case reflect.Ptr:
		f.buildPointer(d, depth)
	case reflect.Struct:
		d.value = f.doubledStruct(d, typ, depth)
	case reflect.Interface:
		f.buildInterface(d)
	case reflect.String:
		d.value = reflect.ValueOf(fmt.Sprintf("double:%s#%d", path, f.next())).Convert(typ)
	case reflect.Bool:
		d.value = reflect.ValueOf(true).Convert(typ)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		d.value = reflect.ValueOf(f.next()).Convert(typ)
	case reflect.Map:
		d.value = reflect.MakeMap(typ)
		f.remember(d.value.Pointer())
	case reflect.Slice:
		d.value = reflect.MakeSlice(typ, 0, 0)
	case reflect.Chan:
		d.value = reflect.MakeChan(typ, 1)
		f.remember(d.value.Pointer())
	default:
		d.value = reflect.Zero(typ)
		d.inert = true
	}

	return d
}

// buildFunc wires a trampoline that records each call and yields either the
// configured returns or the per-result placeholder doubles.
func (f *reflectFactory) buildFunc(d *Double, depth int) {
	typ := d.typ

	d.outs = make([]*Double, typ.NumOut())

	for i := range d.outs {
		out := typ.Out(i)

		// Error slots stay nil so doubled happy paths keep flowing.
		if out == errorType {
			continue
		}

		d.outs[i] = f.build(fmt.Sprintf("%s()#%d", d.path, i), out, depth+1)
	}

	d.value = reflect.MakeFunc(typ, func(args []reflect.Value) []reflect.Value {
		recorded := make(mock.Arguments, len(args))
		for i, a := range args {
			recorded[i] = a.Interface()
		}

		d.record(recorded)

		if rets := d.configuredReturns(); rets != nil {
			return rets
		}

		results := make([]reflect.Value, typ.NumOut())

		for i := range results {
			if d.outs[i] == nil {
				results[i] = reflect.Zero(typ.Out(i))
				continue
			}

			results[i] = d.outs[i].value
		}

		return results
	})

	f.remember(d.value.Pointer())
}

// buildPointer doubles *S as a fresh S with every func field replaced by a
// recording child; other pointers get a fresh zero target.
func (f *reflectFactory) buildPointer(d *Double, depth int) {
	elem := d.typ.Elem()

	ptr := reflect.New(elem)

	if elem.Kind() == reflect.Struct {
		child := &Double{path: d.path, typ: elem}
		ptr.Elem().Set(f.doubledStruct(child, elem, depth))
		d.fields = child.fields
	}

	d.value = ptr
	f.remember(ptr.Pointer())
}

// doubledStruct returns a struct value whose exported func fields record
// through child doubles and whose containers are non-nil and empty.
func (f *reflectFactory) doubledStruct(d *Double, typ reflect.Type, depth int) reflect.Value {
	v := reflect.New(typ).Elem()

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		slot := v.Field(i)

		switch field.Type.Kind() {
		case reflect.Func:
			child := f.build(d.path+"."+field.Name, field.Type, depth+1)

			slot.Set(child.value)

			if d.fields == nil {
				d.fields = map[string]*Double{}
			}

			d.fields[field.Name] = child
		case reflect.Map:
			slot.Set(reflect.MakeMap(field.Type))
		case reflect.Slice:
			slot.Set(reflect.MakeSlice(field.Type, 0, 0))
		}
	}

	return v
}

// buildLogger doubles *slog.Logger as a silent recording logger: every
// record lands in the call log as (level, message, attrs...) and goes
// nowhere else.
func (f *reflectFactory) buildLogger(d *Double) {
	logger := slog.New(&recordingHandler{d: d})

	d.value = reflect.ValueOf(logger)
	f.remember(d.value.Pointer())
}

type recordingHandler struct {
	d     *Double
	attrs []slog.Attr
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	args := mock.Arguments{r.Level.String(), r.Message}

	for _, a := range h.attrs {
		args = append(args, a.String())
	}

	r.Attrs(func(a slog.Attr) bool {
		args = append(args, a.String())
		return true
	})

	h.d.record(args)

	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &recordingHandler{d: h.d, attrs: merged}
}

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

// buildInterface fills the interface kinds a recording value can satisfy;
// anything with a wider method set stays a zero value.
func (f *reflectFactory) buildInterface(d *Double) {
	switch {
	case d.typ == errorType:
		d.value = reflect.ValueOf(stubError{d: d})
	case d.typ.NumMethod() == 0:
		stub := &Stub{path: d.path}
		d.value = reflect.ValueOf(stub).Convert(d.typ)

		f.remember(reflect.ValueOf(stub).Pointer())
	default:
		d.value = reflect.Zero(d.typ)
		d.inert = true
	}
}

func (f *reflectFactory) remember(p uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.made[p] = struct{}{}
}

func (f *reflectFactory) next() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++

	return 100 + f.seq
}

var (
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
	loggerType = reflect.TypeOf((*slog.Logger)(nil))
)
