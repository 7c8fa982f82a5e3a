// Package isolate opens reversible isolation sessions around a callable.
// A session discovers the callable's free names, replaces every registered
// dependency with a recording double, synthesizes a receiver-first argument
// list, and hands back a Result that restores every slot on Close.
//
//	r, err := isolate.Open(report.Deliver)
//	if err != nil { ... }
//	defer r.Close()
//
//	r.Call()
//	send, _ := r.Double("SendReport")
//	if !send.Called() { ... }
//
// Everything that can fail — analysis, classification, double construction,
// argument synthesis, exclusion planning — happens before the first
// rebinding, so a failed Open never leaves partial patches behind.
package isolate

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"stunt.dev/pkg/stunt/double"
	"stunt.dev/pkg/stunt/internal/adapter"
	"stunt.dev/pkg/stunt/internal/domain"
	m "stunt.dev/pkg/stunt/internal/model"
	"stunt.dev/pkg/stunt/logprobe"
	"stunt.dev/pkg/stunt/namespace"
)

// openMu serializes session construction. Planning reads the active-slot
// registry and installing writes it; two overlapping Opens could otherwise
// both claim the same seam before either installs its substitute, and the
// later Close would put a stale double back.
var openMu sync.Mutex

// Open isolates fn: every registered dependency is replaced by a recording
// double, honoring the Include and Exclude options. The identity builtin is
// doubled by default; other builtin seams and error values stay real unless
// included; excluded callables come back as nested sub-fixtures. The caller
// owns the Result and must Close it.
func Open(fn any, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)

	openMu.Lock()
	defer openMu.Unlock()

	return newEngine(cfg).open(fn, cfg.policy(), nil)
}

// Call is Open plus one invocation of the target with the synthesized
// arguments. The session stays open for assertions on a normal return; if
// the target panics, the session closes first and the panic continues.
func Call(fn any, opts ...Option) (*Result, error) {
	r, err := Open(fn, opts...)
	if err != nil {
		return nil, err
	}

	invokeClosingOnPanic(r)

	return r, nil
}

// CallLogged is Call with logger seams interposed instead of doubled: every
// *slog.Logger dependency keeps logging through a probe that records and
// lints each record. The probe is available on the Result and on every
// nested sub-fixture.
func CallLogged(fn any, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)
	cfg.logged = true

	openMu.Lock()
	r, err := newEngine(cfg).open(fn, cfg.policy(), nil)
	openMu.Unlock()

	if err != nil {
		return nil, err
	}

	invokeClosingOnPanic(r)

	return r, nil
}

func invokeClosingOnPanic(r *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			_ = r.Close()
			panic(rec)
		}
	}()

	r.Call()
}

// engine wires one Open invocation through the pipeline: analyze, classify,
// resolve, build, synthesize, plan exclusions, install. One engine serves a
// session tree; pending tracks the slots the tree has claimed so far so a
// nested session never re-patches what an enclosing one owns.
type engine struct {
	analyzer    domain.ScopeAnalyzer
	classifier  domain.ReferenceClassifier
	resolver    domain.OverrideResolver
	synthesizer domain.ArgumentSynthesizer
	factory     double.Factory

	logged  bool
	probe   *logprobe.Probe
	pending map[uintptr]bool
}

func newEngine(cfg *config) *engine {
	factory := cfg.factory
	if factory == nil {
		factory = double.NewFactory()
	}

	fs := adapter.NewLocalSourceFSAdapter()
	sources := adapter.NewLocalGoSourceAdapter()
	locator := adapter.NewRuntimeFuncLocator()

	return &engine{
		analyzer:    domain.NewASTScopeAnalyzer(locator, sources, fs),
		classifier:  domain.NewRegistryClassifier(factory),
		resolver:    domain.NewPolicyResolver(),
		synthesizer: domain.NewReflectSynthesizer(),
		factory:     factory,
		logged:      cfg.logged,
		pending:     map[uintptr]bool{},
	}
}

func (e *engine) open(fn any, policy domain.PatchPolicy, parent *Session) (*Result, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil callable", ErrAnalysisUnavailable)
	}

	analysis, err := e.analyzer.Analyze(fn)
	if err != nil {
		return nil, err
	}

	installed := func(b *namespace.Binding) bool {
		return e.pending[b.Pointer()] || slotActive(b.Pointer())
	}

	refs := e.classifier.Classify(analysis, installed)
	plan := e.resolver.Resolve(refs, policy)

	session := newSession(analysis.ID.Dotted())

	r := &Result{
		session:    session,
		target:     fn,
		fnValue:    reflect.ValueOf(fn),
		dotted:     analysis.ID.Dotted(),
		byName:     map[string]*double.Double{},
		bySlot:     map[uintptr]*double.Double{},
		exclByPath: map[string]*Result{},
		exclBySlot: map[uintptr]*Result{},
	}

	// Build every substitute before the first rebinding.
	patches, err := e.buildPatches(r, plan.Double)
	if err != nil {
		return nil, err
	}

	synth, err := e.synthesizer.Synthesize(analysis, r.fnValue.Type(), e.factory)
	if err != nil {
		return nil, err
	}

	r.args = newArguments(session, synth)

	// Claim the slots before planning exclusions, so nested sessions see
	// them as taken.
	for _, p := range patches {
		e.pending[p.binding.Pointer()] = true
	}

	for _, ref := range plan.Recurse {
		child, err := e.open(ref.Binding.Value(), domain.PatchPolicy{}, session)
		if err != nil {
			session.closeChildren()
			return nil, fmt.Errorf("exclusion %s: %w", ref.Binding.Path(), err)
		}

		session.adopt(child.session)

		path := ref.Binding.Path()
		r.exclOrder = append(r.exclOrder, path)
		r.exclByPath[path] = child
		r.exclBySlot[ref.Binding.Pointer()] = child
	}

	r.skipped = skippedOf(analysis, refs, plan)

	// The probe comes into being with the first interposed logger, which
	// may sit in this session or in a nested one.
	r.probe = e.probe

	// Nothing below can fail.
	session.install(patches)

	if parent == nil {
		slog.Debug("isolation session opened",
			"target", r.dotted, "patched", len(patches), "exclusions", len(r.exclOrder))
	}

	return r, nil
}

// buildPatches turns the to-double references into planned rebindings. In
// logged mode, logger slots get a probe-wrapped live logger instead of a
// double.
func (e *engine) buildPatches(r *Result, refs []domain.ClassifiedRef) ([]patch, error) {
	patches := make([]patch, 0, len(refs))

	for _, ref := range refs {
		b := ref.Binding

		if e.logged && b.Type() == loggerType {
			patches = append(patches, patch{binding: b, substitute: e.probeLogger(b)})
			continue
		}

		d, err := e.factory.Make(b.Path(), b.Type(), b.Value())
		if err != nil {
			return nil, fmt.Errorf("double %s: %w", b.Path(), err)
		}

		r.byName[b.Name()] = firstDouble(r.byName[b.Name()], d)
		r.byName[b.Path()] = firstDouble(r.byName[b.Path()], d)
		r.byName[ref.Key()] = firstDouble(r.byName[ref.Key()], d)
		r.bySlot[b.Pointer()] = d

		patches = append(patches, patch{binding: b, substitute: d.Value()})
	}

	return patches, nil
}

// probeLogger wraps the logger currently behind b so it keeps writing to
// its own handler while the shared probe sees every record.
func (e *engine) probeLogger(b *namespace.Binding) *slog.Logger {
	if e.probe == nil {
		e.probe = logprobe.New()
	}

	var next slog.Handler
	if current, ok := b.Value().(*slog.Logger); ok && current != nil {
		next = current.Handler()
	}

	return slog.New(e.probe.Wrap(next))
}

func firstDouble(existing, d *double.Double) *double.Double {
	if existing != nil {
		return existing
	}

	return d
}

// skippedOf reports everything classification or resolution left real:
// skipped bindings with their reasons, plus free names no namespace
// declares.
func skippedOf(analysis m.Analysis, refs []domain.ClassifiedRef, plan domain.ResolvedPlan) []Skipped {
	var out []Skipped

	for _, ref := range plan.Skip {
		out = append(out, Skipped{
			Key:    ref.Key(),
			Path:   ref.Binding.Path(),
			Reason: skipReason(ref.Ref.Tag),
		})
	}

	// Classification collapses references to one binding into the first
	// occurrence, so coverage is tracked both by full key and by the bare
	// roots that resolved in the target's own namespace: "Log.Debug" is not
	// unresolved when "Log.Info" already pinned the Log binding.
	resolved := map[string]struct{}{}
	ownRoots := map[string]struct{}{}

	for _, ref := range refs {
		resolved[ref.Key()] = struct{}{}

		if ref.Ref.Path == analysis.ID.PkgPath {
			ownRoots[ref.Ref.Name] = struct{}{}
		}
	}

	seen := map[string]struct{}{}

	for _, free := range analysis.Free {
		key := free.Name
		if free.Sel != "" {
			key += "." + free.Sel
		}

		if _, ok := resolved[key]; ok {
			continue
		}

		if _, ok := ownRoots[free.Name]; ok {
			continue
		}

		if free.Sel == "" && domain.IsUniverseName(free.Name) {
			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}

		out = append(out, Skipped{Key: key, Reason: "unresolved"})
	}

	return out
}

func skipReason(tag m.Tag) string {
	switch tag {
	case m.TagDouble:
		return "already a double"
	case m.TagBuiltin:
		return "builtin seam stays real"
	case m.TagError:
		return "error value stays real"
	default:
		return "excluded"
	}
}

var loggerType = reflect.TypeOf((*slog.Logger)(nil))
