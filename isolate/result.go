package isolate

import (
	"reflect"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"stunt.dev/pkg/stunt/double"
	"stunt.dev/pkg/stunt/logprobe"
)

// Result is what an opened session hands the test: the target and its
// synthesized arguments, the doubles standing in for its dependencies, the
// sub-fixtures of excluded callables, and the session owning it all. The
// zero Result is not usable; Open, Call and CallLogged build them.
type Result struct {
	session *Session
	target  any
	fnValue reflect.Value
	dotted  string
	args    *Arguments

	byName map[string]*double.Double
	bySlot map[uintptr]*double.Double

	exclOrder  []string
	exclByPath map[string]*Result
	exclBySlot map[uintptr]*Result

	skipped []Skipped
	probe   *logprobe.Probe

	mu  sync.Mutex
	out mock.Arguments
}

// Skipped is one reference the session deliberately left alone.
type Skipped struct {
	// Key is the reference as written in the target's body.
	Key string
	// Path is the dotted binding path, empty for unresolved names.
	Path string
	// Reason says why: already a double, a default that stays real, an
	// exclusion, or a name no namespace declares.
	Reason string
}

// Session returns the session owning this result's patches.
func (r *Result) Session() *Session { return r.session }

// Target returns the callable the session isolates, unreplaced.
func (r *Result) Target() any { return r.target }

// Args returns the synthesized argument list.
func (r *Result) Args() *Arguments { return r.args }

// Receiver returns the synthesized receiver stand-in, nil for plain
// functions, literals and bound method values.
func (r *Result) Receiver() *double.Double { return r.args.Receiver() }

// Double returns the recording substitute behind a dependency. String keys
// match the registered name, the dotted path, or the reference key as
// written; pointer keys match the seam var itself. When two namespaces
// register the same bare name, the first discovered wins; use the dotted
// path to disambiguate.
func (r *Result) Double(key any) (*double.Double, bool) {
	switch k := key.(type) {
	case string:
		d, ok := r.byName[k]
		return d, ok
	default:
		rv := reflect.ValueOf(key)
		if rv.Kind() == reflect.Pointer && !rv.IsNil() {
			d, ok := r.bySlot[rv.Pointer()]
			return d, ok
		}

		return nil, false
	}
}

// Exclusion returns the nested sub-fixture of an excluded callable. String
// keys match the dotted path or the bare registered name; pointer keys
// match the seam var itself.
func (r *Result) Exclusion(key any) (*Result, bool) {
	switch k := key.(type) {
	case string:
		if sub, ok := r.exclByPath[k]; ok {
			return sub, true
		}

		for _, path := range r.exclOrder {
			if strings.HasSuffix(path, "."+k) {
				return r.exclByPath[path], true
			}
		}

		return nil, false
	default:
		rv := reflect.ValueOf(key)
		if rv.Kind() == reflect.Pointer && !rv.IsNil() {
			sub, ok := r.exclBySlot[rv.Pointer()]
			return sub, ok
		}

		return nil, false
	}
}

// Exclusions returns the nested sub-fixtures in discovery order.
func (r *Result) Exclusions() []*Result {
	out := make([]*Result, len(r.exclOrder))
	for i, path := range r.exclOrder {
		out[i] = r.exclByPath[path]
	}

	return out
}

// ExclusionPaths returns the dotted paths of the excluded callables, in
// discovery order.
func (r *Result) ExclusionPaths() []string {
	out := make([]string, len(r.exclOrder))
	copy(out, r.exclOrder)

	return out
}

// Skipped reports everything the session saw and left untouched.
func (r *Result) Skipped() []Skipped {
	out := make([]Skipped, len(r.skipped))
	copy(out, r.skipped)

	return out
}

// Probe returns the log interposer of a CallLogged session, nil otherwise.
func (r *Result) Probe() *logprobe.Probe { return r.probe }

// Call invokes the target with the synthesized arguments, the receiver
// stand-in first. Positional overrides replace the leading slots. The
// results are returned and kept for Out. Call panics with an "isolate:"
// prefix when the session is closed or an override does not fit; panics
// from the target itself pass through untouched.
func (r *Result) Call(overrides ...any) mock.Arguments {
	r.session.ensureActive("call")

	in, err := r.args.callValues(overrides)
	if err != nil {
		panic("isolate: call " + r.dotted + ": " + err.Error())
	}

	var outs []reflect.Value
	if r.fnValue.Type().IsVariadic() {
		outs = r.fnValue.CallSlice(in)
	} else {
		outs = r.fnValue.Call(in)
	}

	results := make(mock.Arguments, len(outs))
	for i, o := range outs {
		results[i] = o.Interface()
	}

	r.mu.Lock()
	r.out = results
	r.mu.Unlock()

	return results
}

// Out returns the results of the most recent Call, nil before the first.
func (r *Result) Out() mock.Arguments {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.out
}

// Unpack splits the result the way call sites like to bind it: the session,
// the invoker, the arguments, and the receiver stand-in (nil when the
// target has none).
func (r *Result) Unpack() (*Session, func(...any) mock.Arguments, *Arguments, *double.Double) {
	return r.session, r.Call, r.args, r.args.Receiver()
}

// Close tears the session down: nested sub-fixtures first, then this
// session's rebindings in reverse order. Safe to call more than once.
func (r *Result) Close() error {
	return r.session.Close()
}
