package adapter

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	m "stunt.dev/pkg/stunt/internal/model"
)

// FuncLocator resolves a live callable to the identity of its declaration:
// import path, receiver, name, and the file/line where its source lives.
type FuncLocator interface {
	// Locate inspects fn through the runtime tables. It fails with
	// model.ErrAnalysisUnavailable when fn is not a callable or its source
	// cannot be pinned to a file.
	Locate(fn any) (m.FuncID, error)
}

// RuntimeFuncLocator is the concrete FuncLocator backed by runtime.FuncForPC.
type RuntimeFuncLocator struct{}

// NewRuntimeFuncLocator constructs a RuntimeFuncLocator.
func NewRuntimeFuncLocator() *RuntimeFuncLocator {
	return &RuntimeFuncLocator{}
}

var literalSegment = regexp.MustCompile(`^(func\d+|\d+|gowrap\d+)$`)

// Locate resolves fn to its declaration identity.
func (l *RuntimeFuncLocator) Locate(fn any) (m.FuncID, error) {
	v := reflect.ValueOf(fn)

	if !v.IsValid() || v.Kind() != reflect.Func {
		return m.FuncID{}, fmt.Errorf("%w: not a callable", m.ErrAnalysisUnavailable)
	}

	if v.IsNil() {
		return m.FuncID{}, fmt.Errorf("%w: nil callable", m.ErrAnalysisUnavailable)
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return m.FuncID{}, fmt.Errorf("%w: callable has no runtime symbol", m.ErrAnalysisUnavailable)
	}

	file, line := rf.FileLine(rf.Entry())
	if file == "" || strings.HasPrefix(file, "<") {
		return m.FuncID{}, fmt.Errorf("%w: no source file for %s", m.ErrAnalysisUnavailable, rf.Name())
	}

	id := parseSymbol(rf.Name())
	id.File = file
	id.Line = line

	return id, nil
}

// parseSymbol splits a runtime symbol into package path, receiver type and
// function name. Symbols look like:
//
//	example.com/pkg.Render
//	example.com/pkg.(*Journal).Record
//	example.com/pkg.Journal.Snapshot
//	example.com/pkg.(*Journal).Record-fm
//	example.com/pkg.Render.func1
//	example.com/pkg.glob..func1
func parseSymbol(sym string) m.FuncID {
	id := m.FuncID{Symbol: sym}

	rest := sym

	if strings.HasSuffix(rest, "-fm") {
		id.Bound = true
		rest = strings.TrimSuffix(rest, "-fm")
	}

	// The package path runs through the last slash; the first dot after it
	// separates the path from the declaration chain.
	start := strings.LastIndexByte(rest, '/') + 1

	dot := strings.IndexByte(rest[start:], '.')
	if dot < 0 {
		id.PkgPath = rest
		return id
	}

	id.PkgPath = rest[:start+dot]
	rest = rest[start+dot+1:]

	if strings.HasPrefix(rest, "(*") {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			id.FuncName = rest
			return id
		}

		id.TypeName = stripTypeParams(rest[2:end])
		id.Pointer = true
		rest = strings.TrimPrefix(rest[end+1:], ".")
	}

	segments := strings.Split(rest, ".")

	var names []string

	for _, seg := range segments {
		if seg == "" || seg == "glob" || literalSegment.MatchString(seg) {
			id.Literal = true
			continue
		}

		names = append(names, stripTypeParams(seg))
	}

	switch {
	case len(names) == 0:
		// Package-scope literal such as glob..func1.
		id.FuncName = segments[len(segments)-1]
	case id.TypeName == "" && len(names) == 2 && !id.Literal:
		// Two identifiers without a (*...) wrapper is a value-receiver
		// method expression.
		id.TypeName = names[0]
		id.FuncName = names[1]
	default:
		id.FuncName = names[len(names)-1]

		if id.TypeName == "" && len(names) > 1 {
			id.TypeName = names[0]
		}
	}

	return id
}

func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}

	return s
}
