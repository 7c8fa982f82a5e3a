// Package builtins ships the engine-owned builtin seams: tiny reflect-backed
// stand-ins for ambient operations that code under isolation may call
// through a rebindable name (Go's real builtins cannot be patched). They
// register into the reserved "builtins" namespace, the final fallback of
// reference classification; the identity seam ID is the only name the
// engine includes by default.
package builtins

import (
	"reflect"

	"stunt.dev/pkg/stunt/namespace"
)

// ID reports an identity for v: the data pointer for pointer-shaped kinds,
// otherwise the address of the boxed copy. Only stability within one call
// matters to callers; the seam exists to be observed, not computed with.
var ID = func(v any) uintptr {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.Pointer()
	default:
		return reflect.ValueOf(&v).Pointer()
	}
}

// TypeOf reports the dynamic type of v.
var TypeOf = func(v any) reflect.Type {
	return reflect.TypeOf(v)
}

// Length reports the length of strings and len-able containers, -1 for
// everything else.
var Length = func(v any) int {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len()
	default:
		return -1
	}
}

var _ = namespace.At(namespace.BuiltinPath,
	namespace.Var("ID", &ID),
	namespace.Var("TypeOf", &TypeOf),
	namespace.Var("Length", &Length),
)
