package domain

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"

	"stunt.dev/pkg/stunt/internal/adapter"
	m "stunt.dev/pkg/stunt/internal/model"
)

// ErrNoGoFiles reports a directory with nothing to plan, e.g. one holding
// only test files while tests are excluded.
var ErrNoGoFiles = errors.New("no Go files")

// Planner statically derives an isolation plan for a package directory:
// which names each function reaches for and what the engine would do with
// them at run time.
type Planner interface {
	PlanPackage(dir m.Path, includeTests bool) (m.PackagePlan, error)
}

// ASTPlanner is the concrete Planner backed by go/parser. It sees one
// package at a time and needs no type information, so verdicts on names
// rooted in other packages stay coarse.
type ASTPlanner struct {
	fs      adapter.SourceFSAdapter
	sources adapter.GoSourceAdapter
}

// NewASTPlanner constructs an ASTPlanner from its adapters.
func NewASTPlanner(fs adapter.SourceFSAdapter, sources adapter.GoSourceAdapter) *ASTPlanner {
	return &ASTPlanner{fs: fs, sources: sources}
}

// pkgScope indexes the package-level declarations of every file in the
// package, keyed by name.
type pkgScope map[string]m.Verdict

// PlanPackage parses every Go file under dir (not descending) and plans each
// declared function.
func (p *ASTPlanner) PlanPackage(dir m.Path, includeTests bool) (m.PackagePlan, error) {
	files, err := p.goFiles(dir, includeTests)
	if err != nil {
		return m.PackagePlan{}, err
	}

	if len(files) == 0 {
		return m.PackagePlan{}, fmt.Errorf("%w in %s", ErrNoGoFiles, dir)
	}

	fset := token.NewFileSet()

	parsed := make([]*ast.File, 0, len(files))

	for _, file := range files {
		src, err := p.fs.ReadFile(file)
		if err != nil {
			return m.PackagePlan{}, fmt.Errorf("read %s: %w", file, err)
		}

		f, err := p.sources.Parse(fset, string(file), src)
		if err != nil {
			return m.PackagePlan{}, fmt.Errorf("parse %s: %w", file, err)
		}

		parsed = append(parsed, f)
	}

	scope := packageScope(parsed)

	importPath, err := p.importPath(dir)
	if err != nil {
		return m.PackagePlan{}, err
	}

	plan := m.PackagePlan{Dir: dir, ImportPath: importPath}

	for i, file := range files {
		hash, err := p.fs.HashFile(file)
		if err != nil {
			return m.PackagePlan{}, fmt.Errorf("hash %s: %w", file, err)
		}

		filePlan := m.FilePlan{File: file, Hash: hash}

		imports := p.sources.Imports(parsed[i])

		for _, decl := range parsed[i].Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Body == nil {
				continue
			}

			filePlan.Functions = append(filePlan.Functions, p.planFunction(fset, file, fd, scope, imports))
		}

		plan.Files = append(plan.Files, filePlan)
	}

	return plan, nil
}

func (p *ASTPlanner) goFiles(dir m.Path, includeTests bool) ([]m.Path, error) {
	var files []m.Path

	err := p.fs.Walk(dir, false, func(walked string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(walked, ".go") {
			return nil
		}

		if !includeTests && strings.HasSuffix(walked, "_test.go") {
			return nil
		}

		files = append(files, m.Path(walked))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	sortFiles(files)

	return files, nil
}

// planFunction runs the free-name walk over one declaration and attaches
// static verdicts.
func (p *ASTPlanner) planFunction(fset *token.FileSet, file m.Path, fd *ast.FuncDecl, scope pkgScope, imports map[string]string) m.FunctionPlan {
	site := adapter.FuncSite{Decl: fd}

	fn := m.FunctionPlan{
		Function:     fd.Name.Name,
		ReceiverKind: m.ReceiverNone.String(),
		File:         string(file),
		Line:         fset.Position(fd.Pos()).Line,
	}

	if fd.Recv != nil && len(fd.Recv.List) == 1 {
		recv := fd.Recv.List[0]

		if _, ptr := recv.Type.(*ast.StarExpr); ptr {
			fn.ReceiverKind = m.ReceiverInstance.String()
		} else {
			fn.ReceiverKind = m.ReceiverType.String()
		}

		if len(recv.Names) == 1 && recv.Names[0].Name != "_" {
			fn.Receiver = recv.Names[0].Name
		}
	}

	for _, field := range fd.Type.Params.List {
		for _, name := range field.Names {
			fn.Params = append(fn.Params, name.Name)
		}
	}

	for _, free := range FreeNames(fset, site) {
		verdict, reason := verdictFor(free, scope, imports)

		fn.Refs = append(fn.Refs, m.PlannedReference{
			Name:    free.Name,
			Sel:     free.Sel,
			Line:    free.Line,
			Verdict: verdict,
			Reason:  reason,
		})
	}

	fn.Refs = append(fn.Refs, receiverRefs(fset, fd, fn.Receiver)...)

	return fn
}

// receiverRefs lists the selectors rooted at the receiver name. They are not
// free names — the receiver is a bound parameter — but the plan reports them
// because the engine satisfies them through the synthesized receiver double.
func receiverRefs(fset *token.FileSet, fd *ast.FuncDecl, recv string) []m.PlannedReference {
	if recv == "" || fd.Body == nil {
		return nil
	}

	var out []m.PlannedReference

	seen := map[string]struct{}{}

	ast.Inspect(fd.Body, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		root, ok := sel.X.(*ast.Ident)
		if !ok || root.Name != recv {
			return true
		}

		if _, dup := seen[sel.Sel.Name]; dup {
			return true
		}

		seen[sel.Sel.Name] = struct{}{}

		out = append(out, m.PlannedReference{
			Name:    root.Name,
			Sel:     sel.Sel.Name,
			Line:    fset.Position(root.Pos()).Line,
			Verdict: m.VerdictReceiver,
			Reason:  "travels through the receiver double",
		})

		return true
	})

	return out
}

// verdictFor decides what the engine would do with one free name, using only
// what a single-package parse can know.
func verdictFor(free m.FreeName, scope pkgScope, imports map[string]string) (m.Verdict, string) {
	if free.Sel == "" && IsUniverseName(free.Name) {
		return m.VerdictLanguageBuiltin, ""
	}

	if v, ok := scope[free.Name]; ok {
		return v, ""
	}

	if importPath, ok := imports[free.Name]; ok {
		if path.Base(importPath) == "builtins" {
			return m.VerdictBuiltinSeam, fmt.Sprintf("seam %s.%s", free.Name, free.Sel)
		}

		return m.VerdictCrossPackage, fmt.Sprintf("rooted at import %q", importPath)
	}

	return m.VerdictUnresolved, "no package-level declaration found"
}

// packageScope collects the package-level names of all parsed files.
func packageScope(files []*ast.File) pkgScope {
	scope := pkgScope{}

	for _, file := range files {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil {
					scope[d.Name.Name] = m.VerdictDirectFunc
				}
			case *ast.GenDecl:
				collectGenDecl(d, scope)
			}
		}
	}

	return scope
}

func collectGenDecl(d *ast.GenDecl, scope pkgScope) {
	for _, spec := range d.Specs {
		switch sp := spec.(type) {
		case *ast.ValueSpec:
			verdict := m.VerdictPatch

			if d.Tok == token.CONST {
				verdict = m.VerdictConstant
			}

			for _, name := range sp.Names {
				if name.Name == "_" {
					continue
				}

				v := verdict
				if v == m.VerdictPatch && looksLikeErrorName(name.Name) {
					v = m.VerdictErrorValue
				}

				scope[name.Name] = v
			}
		case *ast.TypeSpec:
			scope[sp.Name.Name] = m.VerdictType
		}
	}
}

// looksLikeErrorName applies the stdlib sentinel naming convention.
func looksLikeErrorName(name string) bool {
	return strings.HasPrefix(name, "Err") || strings.HasPrefix(name, "err") || strings.HasSuffix(name, "Error")
}

// importPath derives the package import path from the enclosing go.mod.
func (p *ASTPlanner) importPath(dir m.Path) (string, error) {
	probe := p.fs.JoinPath(string(dir), "x.go")

	root, err := p.fs.FindProjectRoot(probe)
	if err != nil {
		return "", fmt.Errorf("locate module root for %s: %w", dir, err)
	}

	data, err := p.fs.ReadFile(p.fs.JoinPath(string(root), "go.mod"))
	if err != nil {
		return "", fmt.Errorf("read go.mod under %s: %w", root, err)
	}

	module := modfile.ModulePath(data)
	if module == "" {
		return "", fmt.Errorf("no module path declared in %s/go.mod", root)
	}

	rel, err := p.fs.RelPath(root, dir)
	if err != nil {
		return "", err
	}

	if rel == "." {
		return module, nil
	}

	return module + "/" + filepath.ToSlash(string(rel)), nil
}

func sortFiles(files []m.Path) {
	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })
}
