package domain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	_ "stunt.dev/pkg/stunt/builtins"
	m "stunt.dev/pkg/stunt/internal/model"
	"stunt.dev/pkg/stunt/namespace"
)

var (
	sendReport  = func(addr string) error { return nil }
	retryLimit  = 3
	errTransfer = errors.New("transfer down")
	brokenHook  func()

	resolverNS = namespace.At("resolvertest/app",
		namespace.Var("SendReport", &sendReport),
		namespace.Var("RetryLimit", &retryLimit),
		namespace.Var("ErrTransfer", &errTransfer),
		namespace.Var("BrokenHook", &brokenHook),
	)
)

func planRef(t *testing.T, name string, tag m.Tag) ClassifiedRef {
	t.Helper()

	b, ok := resolverNS.Resolve(name)
	require.True(t, ok, "fixture binding %s", name)

	return ClassifiedRef{
		Ref:     m.Reference{Name: name, Path: "resolvertest/app", Tag: tag},
		Binding: b,
	}
}

func builtinPlanRef(t *testing.T, name string) ClassifiedRef {
	t.Helper()

	ns, ok := namespace.Builtins()
	require.True(t, ok)

	b, ok := ns.Resolve(name)
	require.True(t, ok)

	return ClassifiedRef{
		Ref:     m.Reference{Name: "builtins", Sel: name, Path: namespace.BuiltinPath, Tag: m.TagBuiltin},
		Binding: b,
	}
}

func TestResolve_PlainReferencesDoubleByDefault(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		planRef(t, "SendReport", m.TagPlain),
	}, PatchPolicy{})

	require.Len(t, plan.Double, 1)
	require.Empty(t, plan.Recurse)
	require.Empty(t, plan.Skip)
}

func TestResolve_IdentitySeamIsTheOnlyDefaultBuiltin(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		builtinPlanRef(t, "ID"),
		builtinPlanRef(t, "Length"),
	}, PatchPolicy{})

	require.Len(t, plan.Double, 1)
	require.Equal(t, "builtins.ID", plan.Double[0].Key())

	require.Len(t, plan.Skip, 1)
	require.Equal(t, "builtins.Length", plan.Skip[0].Key())
}

func TestResolve_BuiltinIncludedOnRequest(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		builtinPlanRef(t, "Length"),
	}, PatchPolicy{Includes: []string{"builtins.Length"}})

	require.Len(t, plan.Double, 1)
	require.Empty(t, plan.Skip)
}

func TestResolve_ErrorValuesStayRealUnlessIncluded(t *testing.T) {
	ref := planRef(t, "ErrTransfer", m.TagError)

	plan := NewPolicyResolver().Resolve([]ClassifiedRef{ref}, PatchPolicy{})
	require.Empty(t, plan.Double)
	require.Len(t, plan.Skip, 1)

	plan = NewPolicyResolver().Resolve([]ClassifiedRef{ref}, PatchPolicy{Includes: []string{"ErrTransfer"}})
	require.Len(t, plan.Double, 1)
	require.Empty(t, plan.Skip)
}

func TestResolve_ExcludeWinsOverInclude(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		planRef(t, "SendReport", m.TagPlain),
	}, PatchPolicy{
		Includes: []string{"SendReport"},
		Excludes: []string{"SendReport"},
	})

	require.Empty(t, plan.Double)
	require.Len(t, plan.Recurse, 1)
}

func TestResolve_ExcludedNonCallablesAreSkipped(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		planRef(t, "RetryLimit", m.TagPlain),
		planRef(t, "BrokenHook", m.TagPlain),
	}, PatchPolicy{Excludes: []string{"RetryLimit", "BrokenHook"}})

	require.Empty(t, plan.Double)
	require.Empty(t, plan.Recurse)
	require.Len(t, plan.Skip, 2)
}

func TestResolve_InstalledDoublesNeverReenter(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		planRef(t, "SendReport", m.TagDouble),
	}, PatchPolicy{Includes: []string{"SendReport"}})

	require.Empty(t, plan.Double)
	require.Empty(t, plan.Recurse)
	require.Len(t, plan.Skip, 1)
}

func TestResolve_UnmatchedPolicyEntriesSilentlyIgnored(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		planRef(t, "SendReport", m.TagPlain),
	}, PatchPolicy{
		Includes: []string{"Missing", ""},
		Excludes: []string{"AlsoMissing"},
	})

	require.Len(t, plan.Double, 1)
}

func TestResolve_PathQualifiedPatternsMatch(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		planRef(t, "SendReport", m.TagPlain),
	}, PatchPolicy{Excludes: []string{"resolvertest/app.SendReport"}})

	require.Len(t, plan.Recurse, 1)
}

func TestResolve_SelectorPatternsMatchBySelAlone(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		builtinPlanRef(t, "ID"),
	}, PatchPolicy{Excludes: []string{"ID"}})

	require.Empty(t, plan.Double)
	require.Len(t, plan.Recurse, 1)
}

func TestResolve_SlotIdentityExcludes(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		planRef(t, "SendReport", m.TagPlain),
	}, PatchPolicy{ExcludeSlots: []uintptr{reflect.ValueOf(&sendReport).Pointer()}})

	require.Empty(t, plan.Double)
	require.Len(t, plan.Recurse, 1)
}

func TestResolve_SlotIdentityIncludesErrorValue(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		planRef(t, "ErrTransfer", m.TagError),
	}, PatchPolicy{IncludeSlots: []uintptr{reflect.ValueOf(&errTransfer).Pointer()}})

	require.Len(t, plan.Double, 1)
	require.Empty(t, plan.Skip)
}

func TestResolve_SlotExcludeWinsOverStringInclude(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		planRef(t, "SendReport", m.TagPlain),
	}, PatchPolicy{
		Includes:     []string{"SendReport"},
		ExcludeSlots: []uintptr{reflect.ValueOf(&sendReport).Pointer()},
	})

	require.Empty(t, plan.Double)
	require.Len(t, plan.Recurse, 1)
}

func TestResolve_ForeignSlotsMatchNothing(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		planRef(t, "SendReport", m.TagPlain),
	}, PatchPolicy{ExcludeSlots: []uintptr{reflect.ValueOf(&retryLimit).Pointer(), 0}})

	require.Len(t, plan.Double, 1)
	require.Empty(t, plan.Recurse)
}

func TestResolve_KeepsInputOrderWithinBuckets(t *testing.T) {
	plan := NewPolicyResolver().Resolve([]ClassifiedRef{
		planRef(t, "SendReport", m.TagPlain),
		planRef(t, "RetryLimit", m.TagPlain),
		planRef(t, "ErrTransfer", m.TagError),
	}, PatchPolicy{Excludes: []string{"RetryLimit"}})

	require.Len(t, plan.Double, 1)
	require.Equal(t, "SendReport", plan.Double[0].Key())

	require.Len(t, plan.Skip, 2)
	require.Equal(t, "RetryLimit", plan.Skip[0].Key())
	require.Equal(t, "ErrTransfer", plan.Skip[1].Key())
}
