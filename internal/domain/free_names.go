package domain

import (
	"go/ast"
	"go/token"

	"stunt.dev/pkg/stunt/internal/adapter"
	m "stunt.dev/pkg/stunt/internal/model"
)

// FreeNames walks a located function and returns every identifier it
// references but does not bind, in first-use order and without duplicates.
// Nested function literals contribute their free names to the enclosing
// result. Selector chains contribute the root identifier plus one attribute
// level; deeper access stays with the root.
func FreeNames(fset *token.FileSet, site adapter.FuncSite) []m.FreeName {
	w := &freeWalker{fset: fset, seen: map[string]struct{}{}}

	w.push()
	w.bindFields(site.Recv())
	w.bindFields(site.Type().Params)
	w.bindFields(site.Type().Results)

	if body := site.Body(); body != nil {
		w.stmts(body.List)
	}

	w.pop()

	return w.free
}

// freeWalker tracks a lexical scope stack while visiting statements. Names
// bound in any live scope are not free; everything else is recorded once.
type freeWalker struct {
	fset   *token.FileSet
	scopes []map[string]struct{}
	free   []m.FreeName
	seen   map[string]struct{}
}

func (w *freeWalker) push() {
	w.scopes = append(w.scopes, map[string]struct{}{})
}

func (w *freeWalker) pop() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

func (w *freeWalker) bind(name string) {
	if name == "" || name == "_" {
		return
	}

	w.scopes[len(w.scopes)-1][name] = struct{}{}
}

func (w *freeWalker) bindFields(fields *ast.FieldList) {
	if fields == nil {
		return
	}

	for _, field := range fields.List {
		for _, name := range field.Names {
			w.bind(name.Name)
		}
	}
}

func (w *freeWalker) bound(name string) bool {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if _, ok := w.scopes[i][name]; ok {
			return true
		}
	}

	return false
}

// universeConstants never resolve to bindings; they are values, not names.
var universeConstants = map[string]struct{}{
	"true":  {},
	"false": {},
	"nil":   {},
	"iota":  {},
}

func (w *freeWalker) record(root *ast.Ident, sel string) {
	if root.Name == "_" || w.bound(root.Name) {
		return
	}

	if _, constant := universeConstants[root.Name]; constant {
		return
	}

	key := root.Name
	if sel != "" {
		key += "." + sel
	}

	if _, dup := w.seen[key]; dup {
		return
	}

	w.seen[key] = struct{}{}
	w.free = append(w.free, m.FreeName{
		Name: root.Name,
		Sel:  sel,
		Line: w.fset.Position(root.Pos()).Line,
	})
}

func (w *freeWalker) stmts(list []ast.Stmt) {
	for _, s := range list {
		w.stmt(s)
	}
}

func (w *freeWalker) stmt(s ast.Stmt) {
	switch st := s.(type) {
	case nil:
	case *ast.BlockStmt:
		w.push()
		w.stmts(st.List)
		w.pop()
	case *ast.AssignStmt:
		for _, rhs := range st.Rhs {
			w.expr(rhs)
		}

		for _, lhs := range st.Lhs {
			if id, ok := lhs.(*ast.Ident); ok && st.Tok == token.DEFINE {
				w.bind(id.Name)
				continue
			}

			w.expr(lhs)
		}
	case *ast.DeclStmt:
		w.decl(st.Decl)
	case *ast.ExprStmt:
		w.expr(st.X)
	case *ast.SendStmt:
		w.expr(st.Chan)
		w.expr(st.Value)
	case *ast.IncDecStmt:
		w.expr(st.X)
	case *ast.ReturnStmt:
		for _, e := range st.Results {
			w.expr(e)
		}
	case *ast.IfStmt:
		w.push()
		w.stmt(st.Init)
		w.expr(st.Cond)
		w.stmt(st.Body)
		w.stmt(st.Else)
		w.pop()
	case *ast.ForStmt:
		w.push()
		w.stmt(st.Init)
		w.expr(st.Cond)
		w.stmt(st.Post)
		w.stmt(st.Body)
		w.pop()
	case *ast.RangeStmt:
		w.rangeStmt(st)
	case *ast.SwitchStmt:
		w.push()
		w.stmt(st.Init)
		w.expr(st.Tag)

		for _, clause := range st.Body.List {
			if cc, ok := clause.(*ast.CaseClause); ok {
				w.caseClause(cc, "")
			}
		}

		w.pop()
	case *ast.TypeSwitchStmt:
		w.typeSwitch(st)
	case *ast.SelectStmt:
		for _, clause := range st.Body.List {
			if comm, ok := clause.(*ast.CommClause); ok {
				w.push()
				w.stmt(comm.Comm)
				w.stmts(comm.Body)
				w.pop()
			}
		}
	case *ast.GoStmt:
		w.expr(st.Call)
	case *ast.DeferStmt:
		w.expr(st.Call)
	case *ast.LabeledStmt:
		w.stmt(st.Stmt)
	case *ast.BranchStmt:
		// Labels are control flow, not value references.
	case *ast.EmptyStmt:
	}
}

func (w *freeWalker) rangeStmt(st *ast.RangeStmt) {
	w.push()
	defer w.pop()

	w.expr(st.X)

	if st.Tok == token.DEFINE {
		if id, ok := st.Key.(*ast.Ident); ok {
			w.bind(id.Name)
		}

		if id, ok := st.Value.(*ast.Ident); ok {
			w.bind(id.Name)
		}
	} else {
		if st.Key != nil {
			w.expr(st.Key)
		}

		if st.Value != nil {
			w.expr(st.Value)
		}
	}

	w.stmt(st.Body)
}

func (w *freeWalker) typeSwitch(st *ast.TypeSwitchStmt) {
	w.push()
	defer w.pop()

	w.stmt(st.Init)

	var bindName string

	switch assign := st.Assign.(type) {
	case *ast.AssignStmt:
		w.expr(assign.Rhs[0])

		if id, ok := assign.Lhs[0].(*ast.Ident); ok {
			bindName = id.Name
		}
	case *ast.ExprStmt:
		w.expr(assign.X)
	}

	for _, clause := range st.Body.List {
		if cc, ok := clause.(*ast.CaseClause); ok {
			w.caseClause(cc, bindName)
		}
	}
}

func (w *freeWalker) caseClause(cc *ast.CaseClause, bindName string) {
	w.push()
	defer w.pop()

	w.bind(bindName)

	for _, e := range cc.List {
		w.expr(e)
	}

	w.stmts(cc.Body)
}

func (w *freeWalker) decl(d ast.Decl) {
	gd, ok := d.(*ast.GenDecl)
	if !ok {
		return
	}

	for _, spec := range gd.Specs {
		switch sp := spec.(type) {
		case *ast.ValueSpec:
			w.expr(sp.Type)

			for _, v := range sp.Values {
				w.expr(v)
			}

			for _, n := range sp.Names {
				w.bind(n.Name)
			}
		case *ast.TypeSpec:
			w.bind(sp.Name.Name)
			w.expr(sp.Type)
		}
	}
}

func (w *freeWalker) expr(e ast.Expr) {
	switch ex := e.(type) {
	case nil:
	case *ast.Ident:
		w.record(ex, "")
	case *ast.SelectorExpr:
		if root, ok := ex.X.(*ast.Ident); ok {
			if !w.bound(root.Name) {
				w.record(root, ex.Sel.Name)
			}

			return
		}

		w.expr(ex.X)
	case *ast.CallExpr:
		w.expr(ex.Fun)

		for _, arg := range ex.Args {
			w.expr(arg)
		}
	case *ast.FuncLit:
		w.push()
		w.bindFields(ex.Type.Params)
		w.bindFields(ex.Type.Results)
		w.stmts(ex.Body.List)
		w.pop()
	case *ast.CompositeLit:
		w.expr(ex.Type)

		// Map and array literals key on expressions; everything else is
		// assumed to key on struct field names.
		var exprKeys bool

		switch ex.Type.(type) {
		case *ast.MapType, *ast.ArrayType:
			exprKeys = true
		}

		for _, elt := range ex.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				if _, isIdent := kv.Key.(*ast.Ident); !isIdent || exprKeys {
					w.expr(kv.Key)
				}

				w.expr(kv.Value)

				continue
			}

			w.expr(elt)
		}
	case *ast.BasicLit:
	case *ast.BinaryExpr:
		w.expr(ex.X)
		w.expr(ex.Y)
	case *ast.UnaryExpr:
		w.expr(ex.X)
	case *ast.ParenExpr:
		w.expr(ex.X)
	case *ast.StarExpr:
		w.expr(ex.X)
	case *ast.IndexExpr:
		w.expr(ex.X)
		w.expr(ex.Index)
	case *ast.IndexListExpr:
		w.expr(ex.X)

		for _, idx := range ex.Indices {
			w.expr(idx)
		}
	case *ast.SliceExpr:
		w.expr(ex.X)
		w.expr(ex.Low)
		w.expr(ex.High)
		w.expr(ex.Max)
	case *ast.TypeAssertExpr:
		w.expr(ex.X)

		if ex.Type != nil {
			w.expr(ex.Type)
		}
	case *ast.KeyValueExpr:
		w.expr(ex.Key)
		w.expr(ex.Value)
	case *ast.ArrayType:
		w.expr(ex.Len)
		w.expr(ex.Elt)
	case *ast.MapType:
		w.expr(ex.Key)
		w.expr(ex.Value)
	case *ast.ChanType:
		w.expr(ex.Value)
	case *ast.StructType:
		for _, field := range ex.Fields.List {
			w.expr(field.Type)
		}
	case *ast.InterfaceType:
		for _, method := range ex.Methods.List {
			w.expr(method.Type)
		}
	case *ast.FuncType:
		if ex.Params != nil {
			for _, field := range ex.Params.List {
				w.expr(field.Type)
			}
		}

		if ex.Results != nil {
			for _, field := range ex.Results.List {
				w.expr(field.Type)
			}
		}
	case *ast.Ellipsis:
		w.expr(ex.Elt)
	}
}
