package isolate

import (
	"errors"
	"fmt"
	"sync"

	"stunt.dev/pkg/stunt/namespace"
)

// Session owns the rebindings of one isolation scope. It moves through
// three states: planned while doubles are still being built (nothing is
// patched yet, so a failure at that stage has nothing to undo), active once
// every substitute is installed, and closed after teardown. Close restores
// this session's entries in reverse application order, after closing nested
// sessions newest-first, and is idempotent.
type Session struct {
	mu       sync.Mutex
	target   string
	state    sessionState
	applied  []appliedPatch
	children []*Session
}

type sessionState int

const (
	statePlanned sessionState = iota
	stateActive
	stateClosed
)

// patch is one planned rebinding: the substitute waits until install.
type patch struct {
	binding    *namespace.Binding
	substitute any
}

// appliedPatch remembers what install displaced, for restore.
type appliedPatch struct {
	binding  *namespace.Binding
	original any
}

func newSession(target string) *Session {
	return &Session{target: target}
}

// Target returns the dotted name of the callable this session isolates.
func (s *Session) Target() string { return s.target }

// Active reports whether the session's patches are currently installed.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state == stateActive
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state == stateClosed
}

// Patched returns the dotted paths this session rebound, in application
// order. Nested sessions report their own.
func (s *Session) Patched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.applied))
	for i, entry := range s.applied {
		out[i] = entry.binding.Path()
	}

	return out
}

// install swaps every planned substitute in, in order. The substitutes were
// built from the slot types, so the swaps cannot fail; a failure here is a
// programming error inside the engine and panics.
func (s *Session) install(patches []patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range patches {
		old, err := p.binding.Swap(p.substitute)
		if err != nil {
			panic(fmt.Sprintf("isolate: install %s: %v", p.binding.Path(), err))
		}

		s.applied = append(s.applied, appliedPatch{binding: p.binding, original: old})
		slotInstalled(p.binding.Pointer())
	}

	s.state = stateActive
}

// adopt registers a nested session for teardown before this one.
func (s *Session) adopt(child *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.children = append(s.children, child)
}

// Close tears the session down: nested sessions newest-first, then this
// session's own rebindings in reverse application order. Closing twice is
// a no-op.
func (s *Session) Close() error {
	s.mu.Lock()

	if s.state != stateActive {
		s.mu.Unlock()
		return nil
	}

	s.state = stateClosed
	children := s.children
	s.children = nil
	applied := s.applied

	s.mu.Unlock()

	var errs []error

	for i := len(children) - 1; i >= 0; i-- {
		if err := children[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}

	for i := len(applied) - 1; i >= 0; i-- {
		entry := applied[i]

		if err := entry.binding.Set(entry.original); err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", entry.binding.Path(), err))
		}

		slotRestored(entry.binding.Pointer())
	}

	return errors.Join(errs...)
}

// closeChildren tears down the sessions adopted so far, newest-first. Used
// when planning a later exclusion fails and the already-opened ones must
// not leak.
func (s *Session) closeChildren() {
	s.mu.Lock()
	children := s.children
	s.children = nil
	s.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		_ = children[i].Close()
	}
}

// ensureActive guards operations that only make sense while the patches
// are installed.
func (s *Session) ensureActive(op string) {
	if !s.Active() {
		panic(fmt.Sprintf("isolate: %s after session close (%s)", op, s.target))
	}
}

// The active-slot registry tracks which seam slots currently hold an
// engine-installed substitute, across every live session. Classification
// consults it so a dependency already doubled by an enclosing or earlier
// session is never doubled again, even across factories.
var (
	activeMu    sync.Mutex
	activeSlots = map[uintptr]int{}
)

func slotInstalled(p uintptr) {
	activeMu.Lock()
	defer activeMu.Unlock()

	activeSlots[p]++
}

func slotRestored(p uintptr) {
	activeMu.Lock()
	defer activeMu.Unlock()

	if activeSlots[p] > 1 {
		activeSlots[p]--
		return
	}

	delete(activeSlots, p)
}

func slotActive(p uintptr) bool {
	activeMu.Lock()
	defer activeMu.Unlock()

	return activeSlots[p] > 0
}
