// Package resolver performs the static lexical-depth analysis pass: for
// every Variable/Assign node bound by some enclosing local scope, it
// records how many environment frames to walk outward from the frame
// active at that call site to find the binding. The evaluator consults
// this map instead of re-walking the environment chain at runtime, which
// is what makes closures and shadowing behave consistently.
package resolver

import (
	"loxgo/internal/ast"
	"loxgo/internal/reporting"
	"loxgo/internal/token"
)

type functionType int

const (
	functionNone functionType = iota
	functionFunction
)

// Locals maps a Variable/Assign expression node (by pointer identity) to
// the number of enclosing scopes to skip to find its binding. Absence
// means "resolve globally."
type Locals map[ast.Expr]int

type Resolver struct {
	locals      Locals
	scopes      []map[string]bool
	currentFunc functionType
	diags       reporting.Bag
}

func New() *Resolver {
	return &Resolver{locals: make(Locals)}
}

// Resolve walks the whole program and returns the hop-count map and any
// resolution diagnostics.
func (r *Resolver) Resolve(stmts []ast.Stmt) (Locals, reporting.Bag) {
	r.resolveStmts(stmts)
	return r.locals, r.diags
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)

	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name.Lexeme)

	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name.Lexeme)
		r.resolveFunction(s, functionFunction)

	case *ast.ReturnStmt:
		if r.currentFunc == functionNone {
			r.diags.Add(reporting.Diagnostic{
				Line:    s.Keyword.Line,
				Where:   s.Keyword.Lexeme,
				Message: "Cannot return from top-level code.",
			})
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, typ functionType) {
	enclosing := r.currentFunc
	r.currentFunc = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param.Lexeme)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunc = enclosing
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		// nothing to resolve

	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.diags.Add(reporting.Diagnostic{
					Line:    e.Name.Line,
					Where:   e.Name.Lexeme,
					Message: "Cannot read local variable in its own initializer.",
				})
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.GroupingExpr:
		r.resolveExpr(e.Expression)

	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)

	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	default:
		panic("resolver: unhandled expression type")
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.diags.Add(reporting.Diagnostic{
			Line:    name.Line,
			Where:   name.Lexeme,
			Message: "Already a variable named '" + name.Lexeme + "' in this scope.",
		})
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal walks the scope stack from innermost outward. The hop
// count recorded is the number of scopes from the innermost (0 means
// "the current scope"), matching how the evaluator's environment chain
// is walked at runtime.
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	last := len(r.scopes) - 1
	for i := last; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = last - i
			return
		}
	}
	// Not found in any local scope: leave unmapped, resolved globally.
}
