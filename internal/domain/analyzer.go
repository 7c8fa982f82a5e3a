// Package domain implements the isolation engine: scope analysis, reference
// classification, override resolution and argument synthesis, plus the
// static planning workflow behind the CLI.
package domain

import (
	"fmt"
	"go/ast"
	"go/token"
	"sync"

	"stunt.dev/pkg/stunt/internal/adapter"
	m "stunt.dev/pkg/stunt/internal/model"
)

// ScopeAnalyzer turns a live callable into the static picture isolation
// works from: identity, signature and free names.
type ScopeAnalyzer interface {
	// Analyze locates fn's declaration and walks it. It fails with
	// model.ErrAnalysisUnavailable when the source cannot be found and with
	// model.ErrAmbiguousReceiver when runtime identity and declared receiver
	// disagree.
	Analyze(fn any) (m.Analysis, error)
}

// ASTScopeAnalyzer is the concrete ScopeAnalyzer backed by the runtime
// symbol tables and go/parser. Parsed files are cached per analyzer.
type ASTScopeAnalyzer struct {
	locator adapter.FuncLocator
	sources adapter.GoSourceAdapter
	fs      adapter.SourceFSAdapter

	mu     sync.Mutex
	fset   *token.FileSet
	parsed map[string]*ast.File
}

// NewASTScopeAnalyzer constructs an ASTScopeAnalyzer from its adapters.
func NewASTScopeAnalyzer(
	locator adapter.FuncLocator,
	sources adapter.GoSourceAdapter,
	fs adapter.SourceFSAdapter,
) *ASTScopeAnalyzer {
	return &ASTScopeAnalyzer{
		locator: locator,
		sources: sources,
		fs:      fs,
		fset:    token.NewFileSet(),
		parsed:  map[string]*ast.File{},
	}
}

// Analyze resolves fn to its declaration and extracts signature and free
// names.
func (a *ASTScopeAnalyzer) Analyze(fn any) (m.Analysis, error) {
	id, err := a.locator.Locate(fn)
	if err != nil {
		return m.Analysis{}, err
	}

	file, err := a.parse(id.File)
	if err != nil {
		return m.Analysis{}, err
	}

	site, err := a.sources.FuncAt(a.fset, file, id.Line)
	if err != nil {
		return m.Analysis{}, err
	}

	sig, err := signatureOf(site, id)
	if err != nil {
		return m.Analysis{}, err
	}

	return m.Analysis{
		ID:      id,
		Sig:     sig,
		Free:    FreeNames(a.fset, site),
		Imports: a.sources.Imports(file),
	}, nil
}

func (a *ASTScopeAnalyzer) parse(filename string) (*ast.File, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if f, ok := a.parsed[filename]; ok {
		return f, nil
	}

	src, err := a.fs.ReadFile(m.Path(filename))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", m.ErrAnalysisUnavailable, err)
	}

	f, err := a.sources.Parse(a.fset, filename, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", m.ErrAnalysisUnavailable, err)
	}

	a.parsed[filename] = f

	return f, nil
}

// signatureOf derives the receiver shape and parameter list of a located
// function, cross-checking the runtime identity against the declaration.
func signatureOf(site adapter.FuncSite, id m.FuncID) (m.Signature, error) {
	var sig m.Signature

	recv := site.Recv()

	switch {
	case id.Bound || id.Literal:
		// Bound method values and literals carry no receiver slot.
		sig.ReceiverKind = m.ReceiverNone
	case id.TypeName == "" && recv == nil:
		sig.ReceiverKind = m.ReceiverNone
	case id.TypeName == "" || recv == nil:
		return sig, fmt.Errorf("%w: runtime and source disagree about the receiver of %s", m.ErrAmbiguousReceiver, id.Symbol)
	case id.Pointer:
		sig.ReceiverKind = m.ReceiverInstance
	default:
		sig.ReceiverKind = m.ReceiverType
	}

	if sig.ReceiverKind != m.ReceiverNone && len(recv.List) == 1 && len(recv.List[0].Names) == 1 {
		name := recv.List[0].Names[0].Name
		if name != "_" {
			sig.Receiver = name
		}
	}

	for _, field := range site.Type().Params.List {
		_, variadic := field.Type.(*ast.Ellipsis)

		if len(field.Names) == 0 {
			sig.Params = append(sig.Params, m.Param{Variadic: variadic})
			continue
		}

		for _, n := range field.Names {
			name := n.Name
			if name == "_" {
				name = ""
			}

			sig.Params = append(sig.Params, m.Param{Name: name, Variadic: variadic})
		}
	}

	return sig, nil
}
