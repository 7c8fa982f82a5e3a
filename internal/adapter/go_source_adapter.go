package adapter

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/inspector"

	m "stunt.dev/pkg/stunt/internal/model"
)

// GoSourceAdapter encapsulates Go-specific parsing and declaration lookup so
// the domain layer can focus on reference rules while delegating compilation
// details to an infrastructure component.
type GoSourceAdapter interface {
	// Parse builds an AST using the provided file set and optional source bytes.
	Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// FuncAt returns the innermost function declaration or literal whose
	// source span covers the given line.
	FuncAt(fileSet *token.FileSet, file *ast.File, line int) (FuncSite, error)

	// Imports maps the names a file's imports are known by to their import
	// paths. Unnamed imports are keyed by the last path segment.
	Imports(file *ast.File) map[string]string
}

// FuncSite is one located function: either a declaration or a literal.
type FuncSite struct {
	Decl *ast.FuncDecl
	Lit  *ast.FuncLit
}

// Type returns the located function's signature node.
func (s FuncSite) Type() *ast.FuncType {
	if s.Decl != nil {
		return s.Decl.Type
	}

	return s.Lit.Type
}

// Body returns the located function's body.
func (s FuncSite) Body() *ast.BlockStmt {
	if s.Decl != nil {
		return s.Decl.Body
	}

	return s.Lit.Body
}

// Recv returns the receiver field list, nil for literals and plain funcs.
func (s FuncSite) Recv() *ast.FieldList {
	if s.Decl != nil {
		return s.Decl.Recv
	}

	return nil
}

// Name returns the declared name, empty for literals.
func (s FuncSite) Name() string {
	if s.Decl != nil {
		return s.Decl.Name.Name
	}

	return ""
}

// LocalGoSourceAdapter provides a concrete GoSourceAdapter backed by
// go/parser and x/tools AST utilities.
type LocalGoSourceAdapter struct{}

// NewLocalGoSourceAdapter constructs a LocalGoSourceAdapter.
func NewLocalGoSourceAdapter() *LocalGoSourceAdapter {
	return &LocalGoSourceAdapter{}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoSourceAdapter) Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// FuncAt locates the innermost func declaration or literal whose span covers
// line. Literals opening mid-line (var initializers, call arguments) win over
// the declaration that merely encloses them, matching how the runtime
// attributes a literal's entry point to its own first line.
func (a *LocalGoSourceAdapter) FuncAt(fileSet *token.FileSet, file *ast.File, line int) (FuncSite, error) {
	tf := fileSet.File(file.Pos())
	if tf == nil || line < 1 || line > tf.LineCount() {
		return FuncSite{}, fmt.Errorf("%w: line %d is outside the file", m.ErrAnalysisUnavailable, line)
	}

	funcs := []ast.Node{(*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)}

	// Preorder visits enclosing functions before the functions nested in
	// them, so the last covering node is the innermost one.
	var innermost ast.Node

	inspector.New([]*ast.File{file}).Preorder(funcs, func(n ast.Node) {
		if fileSet.Position(n.Pos()).Line > line || fileSet.Position(n.End()).Line < line {
			return
		}

		innermost = n
	})

	switch fn := innermost.(type) {
	case *ast.FuncLit:
		return FuncSite{Lit: fn}, nil
	case *ast.FuncDecl:
		return FuncSite{Decl: fn}, nil
	}

	return FuncSite{}, fmt.Errorf("%w: no function declared at line %d", m.ErrAnalysisUnavailable, line)
}

// Imports maps visible import names to import paths.
func (a *LocalGoSourceAdapter) Imports(file *ast.File) map[string]string {
	out := make(map[string]string, len(file.Imports))

	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		var name string

		if imp.Name != nil {
			name = imp.Name.Name
		} else {
			name = guessPackageName(p)
		}

		if name == "_" || name == "." {
			continue
		}

		out[name] = p
	}

	return out
}

// guessPackageName approximates the package name of an import path without
// loading the package. Versioned tails such as /v2 and .v3 are folded away.
func guessPackageName(importPath string) string {
	name := path.Base(importPath)

	if strings.HasPrefix(name, "v") && len(name) > 1 && name[1] >= '0' && name[1] <= '9' {
		name = path.Base(path.Dir(importPath))
	}

	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}

	if i := strings.LastIndexByte(name, '-'); i >= 0 {
		name = name[i+1:]
	}

	return name
}
