package domain

import (
	"reflect"

	m "stunt.dev/pkg/stunt/internal/model"
)

// PatchPolicy carries per-session include and exclude overrides. String
// entries match a reference by its key ("Name" or "Name.Sel"), by its bare
// name, by its selector, or by its fully qualified "path.Name" form. Slot
// entries match by the address of the registered seam variable, so callers
// can pin a target by identity instead of spelling. Entries that match
// nothing are silently ignored.
type PatchPolicy struct {
	Includes     []string
	Excludes     []string
	IncludeSlots []uintptr
	ExcludeSlots []uintptr
}

// ResolvedPlan splits classified references into what the session does with
// them.
type ResolvedPlan struct {
	// Double is replaced by recording substitutes.
	Double []ClassifiedRef
	// Recurse stays real; each entry is callable and gets a nested session
	// of its own.
	Recurse []ClassifiedRef
	// Skip stays untouched: already doubled, policy-excluded non-callables,
	// or default-excluded builtins and error values.
	Skip []ClassifiedRef
}

// OverrideResolver applies a PatchPolicy to classified references. Excludes
// win over includes. Already-installed doubles are never touched. Builtin
// seams default to the identity seam only; error values default to real.
type OverrideResolver interface {
	Resolve(refs []ClassifiedRef, policy PatchPolicy) ResolvedPlan
}

// PolicyResolver is the concrete OverrideResolver.
type PolicyResolver struct{}

// NewPolicyResolver constructs a PolicyResolver.
func NewPolicyResolver() *PolicyResolver {
	return &PolicyResolver{}
}

// defaultBuiltinIncludes names the builtin seams doubled without opt-in.
// Identity is the one builtin whose output tests routinely pin down.
var defaultBuiltinIncludes = map[string]struct{}{
	"ID": {},
}

// Resolve applies policy to refs, keeping input order within each bucket.
func (r *PolicyResolver) Resolve(refs []ClassifiedRef, policy PatchPolicy) ResolvedPlan {
	var plan ResolvedPlan

	for _, ref := range refs {
		switch {
		case ref.Ref.Tag == m.TagDouble:
			plan.Skip = append(plan.Skip, ref)
		case matchesPolicy(policy.Excludes, policy.ExcludeSlots, ref):
			if callable(ref) {
				plan.Recurse = append(plan.Recurse, ref)
			} else {
				plan.Skip = append(plan.Skip, ref)
			}
		case ref.Ref.Tag == m.TagBuiltin:
			if r.builtinIncluded(policy, ref) {
				plan.Double = append(plan.Double, ref)
			} else {
				plan.Skip = append(plan.Skip, ref)
			}
		case ref.Ref.Tag == m.TagError:
			if matchesPolicy(policy.Includes, policy.IncludeSlots, ref) {
				plan.Double = append(plan.Double, ref)
			} else {
				plan.Skip = append(plan.Skip, ref)
			}
		default:
			plan.Double = append(plan.Double, ref)
		}
	}

	return plan
}

func (r *PolicyResolver) builtinIncluded(policy PatchPolicy, ref ClassifiedRef) bool {
	if matchesPolicy(policy.Includes, policy.IncludeSlots, ref) {
		return true
	}

	_, ok := defaultBuiltinIncludes[ref.Binding.Name()]

	return ok
}

func matchesPolicy(patterns []string, slots []uintptr, ref ClassifiedRef) bool {
	for _, slot := range slots {
		if slot != 0 && slot == ref.Binding.Pointer() {
			return true
		}
	}

	for _, p := range patterns {
		if p == "" {
			continue
		}

		if p == ref.Key() || p == ref.Ref.Name || (ref.Ref.Sel != "" && p == ref.Ref.Sel) {
			return true
		}

		if p == ref.Ref.Path+"."+ref.Binding.Name() {
			return true
		}
	}

	return false
}

func callable(ref ClassifiedRef) bool {
	if ref.Binding.Type().Kind() != reflect.Func {
		return false
	}

	v := reflect.ValueOf(ref.Binding.Value())

	return v.IsValid() && !v.IsNil()
}
