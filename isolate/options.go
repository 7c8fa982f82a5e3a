package isolate

import (
	"fmt"
	"log/slog"
	"reflect"

	"stunt.dev/pkg/stunt/double"
	"stunt.dev/pkg/stunt/internal/domain"
)

// Option configures one Open, Call or CallLogged invocation.
type Option func(*config)

type config struct {
	includes []any
	excludes []any
	factory  double.Factory
	logged   bool
}

// Include opts references into doubling that the defaults leave real:
// builtin seams beyond the identity seam, and error values. Keys are
// strings (a bare name, a "pkg/path.Name" path, or a "Name.Sel" reference
// key) or pointers to the registered seam vars themselves. Keys that match
// nothing are ignored.
func Include(keys ...any) Option {
	return func(c *config) {
		c.includes = append(c.includes, keys...)
	}
}

// Exclude keeps references real that the defaults would double. An excluded
// callable comes back on the Result as a nested sub-fixture of its own.
// Exclude always wins over Include for the same target, whether the two
// name it the same way or not.
func Exclude(keys ...any) Option {
	return func(c *config) {
		c.excludes = append(c.excludes, keys...)
	}
}

// WithFactory substitutes the double factory for this session. Sessions
// sharing one factory recognize each other's doubles without consulting
// the active-slot registry.
func WithFactory(f double.Factory) Option {
	return func(c *config) {
		c.factory = f
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{}

	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return cfg
}

// policy splits the mixed include/exclude keys into the string patterns and
// slot identities override resolution matches on.
func (c *config) policy() domain.PatchPolicy {
	var p domain.PatchPolicy

	p.Includes, p.IncludeSlots = splitKeys(c.includes, "include")
	p.Excludes, p.ExcludeSlots = splitKeys(c.excludes, "exclude")

	return p
}

func splitKeys(keys []any, kind string) ([]string, []uintptr) {
	var (
		patterns []string
		slots    []uintptr
	)

	for _, k := range keys {
		switch v := k.(type) {
		case string:
			patterns = append(patterns, v)
		default:
			rv := reflect.ValueOf(k)
			if rv.Kind() == reflect.Pointer && !rv.IsNil() {
				slots = append(slots, rv.Pointer())
				continue
			}

			slog.Debug("ignoring policy key that is neither a string nor a seam pointer",
				"kind", kind, "key", fmt.Sprintf("%T", k))
		}
	}

	return patterns, slots
}
