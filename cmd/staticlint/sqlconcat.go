package main

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// queryArg сопоставляет методам database/sql индекс аргумента с SQL.
var queryArg = map[string]int{
	"Exec":            0,
	"ExecContext":     1,
	"Query":           0,
	"QueryContext":    1,
	"QueryRow":        0,
	"QueryRowContext": 1,
	"Prepare":         0,
	"PrepareContext":  1,
}

// SQLConcatAnalyzer сообщает о SQL, собранном через fmt.Sprint* или
// оператор + прямо в вызове database/sql. Значения передаются параметрами.
var SQLConcatAnalyzer = &analysis.Analyzer{
	Name:     "sqlconcat",
	Doc:      "reports SQL built with fmt.Sprint* or string concatenation passed to database/sql",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runSQLConcat,
}

func runSQLConcat(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}
		idx, ok := queryArg[sel.Sel.Name]
		if !ok || len(call.Args) <= idx {
			return
		}
		fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
		if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "database/sql" {
			return
		}

		if arg := call.Args[idx]; dynamicSQL(pass, arg) {
			pass.Reportf(arg.Pos(), "SQL passed to %s is built dynamically; use bind parameters", sel.Sel.Name)
		}
	})
	return nil, nil
}

func dynamicSQL(pass *analysis.Pass, expr ast.Expr) bool {
	if tv, ok := pass.TypesInfo.Types[expr]; ok && tv.Value != nil {
		return false
	}
	switch e := ast.Unparen(expr).(type) {
	case *ast.BinaryExpr:
		return e.Op == token.ADD
	case *ast.CallExpr:
		sel, ok := e.Fun.(*ast.SelectorExpr)
		return ok && strings.HasPrefix(sel.Sel.Name, "Sprint") && isPkgFunc(pass, e, "fmt", sel.Sel.Name)
	}
	return false
}
