package model

import "fmt"

// ReceiverKind describes the first-argument shape of a target callable.
type ReceiverKind int

const (
	// ReceiverNone marks plain functions, function literals and bound
	// method values (the receiver is pre-bound, no slot to synthesize).
	ReceiverNone ReceiverKind = iota
	// ReceiverInstance marks pointer-receiver method expressions: the first
	// synthesized argument stands in for the instance.
	ReceiverInstance
	// ReceiverType marks value-receiver method expressions: the first
	// synthesized argument stands in for the type's value.
	ReceiverType
)

// String implements fmt.Stringer.
func (k ReceiverKind) String() string {
	switch k {
	case ReceiverNone:
		return "none"
	case ReceiverInstance:
		return "instance"
	case ReceiverType:
		return "type"
	}

	return fmt.Sprintf("receiverkind(%d)", int(k))
}

// FuncID identifies a located callable: where its symbol lives and where
// its declaration starts in source.
type FuncID struct {
	Symbol   string // full runtime symbol, e.g. "stunt.dev/pkg/stunt/internal/fixture.(*Report).Render"
	PkgPath  string
	TypeName string // receiver type for methods, "" otherwise
	FuncName string
	Pointer  bool // receiver was *T
	Bound    bool // method value (symbol suffix -fm); receiver pre-bound
	Literal  bool // function literal (symbol contains .funcN)
	File     string
	Line     int
}

// Dotted returns the in-package dotted name: "Func", "Type.Func" for
// methods, keeping the shape include/exclude path matching works against.
func (f FuncID) Dotted() string {
	if f.TypeName == "" {
		return f.FuncName
	}

	return f.TypeName + "." + f.FuncName
}

// Param is one declared parameter of a target callable, in declaration
// order. Names come from the AST; reflect alone does not keep them.
type Param struct {
	Name     string
	Variadic bool
}

// Signature captures what argument synthesis needs to know about a target.
type Signature struct {
	Receiver     string // receiver identifier, "" when ReceiverNone
	ReceiverKind ReceiverKind
	Params       []Param
}

// Analysis is the full static picture of one callable: its identity, its
// signature and every name it reaches for beyond its own scope. Imports maps
// the names the declaring file knows packages by to their import paths.
type Analysis struct {
	ID      FuncID
	Sig     Signature
	Free    []FreeName
	Imports map[string]string
}
