package isolate

import (
	"fmt"
	"reflect"

	"stunt.dev/pkg/stunt/double"
	"stunt.dev/pkg/stunt/internal/domain"
)

// Arguments is the synthesized argument list of an isolated callable:
// receiver-first positional order, with access by declared name. Each
// non-variadic slot is backed by a double that keeps the assertion handle
// even after the value is overridden; the variadic tail is an empty pack.
type Arguments struct {
	session *Session
	slots   []argSlot
	byName  map[string]int
}

type argSlot struct {
	name     string
	receiver bool
	variadic bool
	double   *double.Double
	value    reflect.Value
}

func newArguments(session *Session, synth []domain.SynthArg) *Arguments {
	a := &Arguments{
		session: session,
		slots:   make([]argSlot, 0, len(synth)),
		byName:  make(map[string]int, len(synth)),
	}

	for i, s := range synth {
		a.slots = append(a.slots, argSlot{
			name:     s.Name,
			receiver: s.Receiver,
			variadic: s.Variadic,
			double:   s.Double,
			value:    s.Value,
		})
		a.byName[s.Name] = i
	}

	return a
}

// Len returns the number of slots, the receiver included.
func (a *Arguments) Len() int { return len(a.slots) }

// Names returns the slot names in positional order.
func (a *Arguments) Names() []string {
	out := make([]string, len(a.slots))
	for i, s := range a.slots {
		out[i] = s.name
	}

	return out
}

// At returns the value at position i, receiver first. It panics out of
// range, like a slice.
func (a *Arguments) At(i int) any {
	return a.slots[i].value.Interface()
}

// Get returns the value behind a declared name.
func (a *Arguments) Get(name string) (any, bool) {
	i, ok := a.byName[name]
	if !ok {
		return nil, false
	}

	return a.At(i), true
}

// Double returns the assertion handle behind a declared name. The ok result
// is false for unknown names and for the variadic pack, which has no double.
func (a *Arguments) Double(name string) (*double.Double, bool) {
	i, ok := a.byName[name]
	if !ok || a.slots[i].double == nil {
		return nil, false
	}

	return a.slots[i].double, true
}

// DoubleAt returns the assertion handle at position i, nil for the variadic
// pack.
func (a *Arguments) DoubleAt(i int) *double.Double {
	return a.slots[i].double
}

// Receiver returns the receiver stand-in, nil when the target has none.
func (a *Arguments) Receiver() *double.Double {
	if len(a.slots) == 0 || !a.slots[0].receiver {
		return nil
	}

	return a.slots[0].double
}

// Values returns every slot value in positional order, the variadic pack as
// its slice.
func (a *Arguments) Values() []any {
	out := make([]any, len(a.slots))
	for i := range a.slots {
		out[i] = a.At(i)
	}

	return out
}

// Set replaces the value behind a declared name. The double, if any, keeps
// recording; only the value handed to the target changes.
func (a *Arguments) Set(name string, v any) error {
	i, ok := a.byName[name]
	if !ok {
		return fmt.Errorf("isolate: no argument named %q", name)
	}

	return a.SetAt(i, v)
}

// SetAt replaces the value at position i.
func (a *Arguments) SetAt(i int, v any) error {
	a.session.ensureActive("set argument")

	if i < 0 || i >= len(a.slots) {
		return fmt.Errorf("isolate: argument index %d out of range [0,%d)", i, len(a.slots))
	}

	val, err := coerce(v, a.slots[i].value.Type())
	if err != nil {
		return fmt.Errorf("isolate: argument %q: %w", a.slots[i].name, err)
	}

	a.slots[i].value = val

	return nil
}

// Append extends the variadic pack. It fails for targets without one.
func (a *Arguments) Append(vals ...any) error {
	a.session.ensureActive("append argument")

	if len(a.slots) == 0 || !a.slots[len(a.slots)-1].variadic {
		return fmt.Errorf("isolate: target takes no variadic arguments")
	}

	slot := &a.slots[len(a.slots)-1]
	elem := slot.value.Type().Elem()

	pack := slot.value

	for _, v := range vals {
		val, err := coerce(v, elem)
		if err != nil {
			return fmt.Errorf("isolate: variadic %q: %w", slot.name, err)
		}

		pack = reflect.Append(pack, val)
	}

	slot.value = pack

	return nil
}

// Destructure assigns the positional values into the given targets, padding
// the tail with nil when there are more targets than slots.
func (a *Arguments) Destructure(dst ...*any) {
	for i, p := range dst {
		if p == nil {
			continue
		}

		if i < len(a.slots) {
			*p = a.At(i)
			continue
		}

		*p = nil
	}
}

// callValues renders the slots into the reflect argument list of one
// invocation, applying positional overrides first.
func (a *Arguments) callValues(overrides []any) ([]reflect.Value, error) {
	if len(overrides) > len(a.slots) {
		return nil, fmt.Errorf("%d overrides for %d arguments", len(overrides), len(a.slots))
	}

	out := make([]reflect.Value, len(a.slots))

	for i, s := range a.slots {
		if i < len(overrides) {
			val, err := coerce(overrides[i], s.value.Type())
			if err != nil {
				return nil, fmt.Errorf("override %q: %w", s.name, err)
			}

			out[i] = val

			continue
		}

		out[i] = s.value
	}

	return out, nil
}

// coerce turns v into a value assignable to typ, letting nil stand for the
// zero value of nilable kinds.
func coerce(v any, typ reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch typ.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(typ), nil
		default:
			return reflect.Value{}, fmt.Errorf("nil is not assignable to %s", typ)
		}
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(typ) {
		return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", rv.Type(), typ)
	}

	return rv, nil
}
