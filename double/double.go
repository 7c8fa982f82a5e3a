// Package double produces and tracks recording substitutes. A Double
// answers to the same static shape as the value it replaces, records every
// invocation for later assertion, and hands out further Doubles as
// placeholder results so chained assertions need no setup. The Factory
// boundary lets callers swap in their own substitute source (for example
// generated mocks); the default factory is reflect-based.
package double

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Double is one recording substitute, bound to the dotted path of the name
// it stands in for.
type Double struct {
	path  string
	typ   reflect.Type
	value reflect.Value
	inert bool

	mu    sync.Mutex
	calls []mock.Arguments
	rets  []reflect.Value

	outs   []*Double
	fields map[string]*Double
}

// Path returns the dotted name this double stands in for.
func (d *Double) Path() string { return d.path }

// Type returns the static type the double was shaped to.
func (d *Double) Type() reflect.Type { return d.typ }

// Value returns the substitute value to install in place of the original.
func (d *Double) Value() any {
	if !d.value.IsValid() {
		return nil
	}

	return d.value.Interface()
}

// ReflectValue returns the substitute as a reflect.Value, keeping the static
// type of slots whose placeholder is a typed zero.
func (d *Double) ReflectValue() reflect.Value { return d.value }

// Inert reports whether the factory could not produce a recording shape for
// the type and fell back to a zero value.
func (d *Double) Inert() bool { return d.inert }

// Calls returns a copy of every recorded invocation, oldest first.
func (d *Double) Calls() []mock.Arguments {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]mock.Arguments, len(d.calls))
	copy(out, d.calls)

	return out
}

// CallCount returns how many times the double was invoked.
func (d *Double) CallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.calls)
}

// Called reports whether the double was invoked at least once.
func (d *Double) Called() bool { return d.CallCount() > 0 }

// CalledWith reports whether any recorded invocation matches args.
func (d *Double) CalledWith(args ...any) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, call := range d.calls {
		if len(call) != len(args) {
			continue
		}

		match := true

		for i := range call {
			if !assert.ObjectsAreEqual(args[i], call[i]) {
				match = false
				break
			}
		}

		if match {
			return true
		}
	}

	return false
}

// LastCall returns the most recent invocation, if any.
func (d *Double) LastCall() (mock.Arguments, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.calls) == 0 {
		return nil, false
	}

	return d.calls[len(d.calls)-1], true
}

// Reset forgets recorded invocations. Configured returns are kept.
func (d *Double) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = nil
}

// Return configures the values future invocations yield instead of the
// placeholder doubles. Panics on non-callable doubles or arity mismatch;
// configuring a double wrong is a programming error in the test itself.
func (d *Double) Return(vals ...any) *Double {
	if d.typ.Kind() != reflect.Func {
		panic(fmt.Sprintf("double: Return on non-callable %s", d.path))
	}

	if len(vals) != d.typ.NumOut() {
		panic(fmt.Sprintf("double: %s returns %d values, Return got %d", d.path, d.typ.NumOut(), len(vals)))
	}

	rets := make([]reflect.Value, len(vals))

	for i, v := range vals {
		out := d.typ.Out(i)

		if v == nil {
			rets[i] = reflect.Zero(out)
			continue
		}

		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(out) {
			panic(fmt.Sprintf("double: %s result %d wants %s, Return got %s", d.path, i, out, rv.Type()))
		}

		rets[i] = rv
	}

	d.mu.Lock()
	d.rets = rets
	d.mu.Unlock()

	return d
}

// Out returns the placeholder double standing in for result i of a callable
// double, the value invocations yield when no Return is configured.
func (d *Double) Out(i int) *Double {
	if i < 0 || i >= len(d.outs) {
		panic(fmt.Sprintf("double: %s has no result %d", d.path, i))
	}

	return d.outs[i]
}

// OutValue returns the placeholder value for result i, nil for results the
// factory leaves zero (such as error slots).
func (d *Double) OutValue(i int) any {
	out := d.Out(i)
	if out == nil {
		return nil
	}

	return out.Value()
}

// Field returns the double standing behind a func-typed field of a struct
// double.
func (d *Double) Field(name string) (*Double, bool) {
	f, ok := d.fields[name]
	return f, ok
}

// String implements fmt.Stringer.
func (d *Double) String() string {
	return fmt.Sprintf("double(%s)", d.path)
}

func (d *Double) record(args mock.Arguments) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, args)
}

func (d *Double) configuredReturns() []reflect.Value {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.rets
}

// Stub is the opaque stand-in used where any value will do (empty
// interface slots). Its pointer identity is what makes it recognizable.
type Stub struct {
	path string
}

// String implements fmt.Stringer.
func (s *Stub) String() string {
	return fmt.Sprintf("stub(%s)", s.path)
}

// stubError is the error-shaped double value.
type stubError struct {
	d *Double
}

func (e stubError) Error() string {
	return "double: " + e.d.path
}
