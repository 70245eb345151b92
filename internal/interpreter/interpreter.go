// Package interpreter is the tree-walking evaluator (component C8). It
// holds the current environment frame and the resolver's identity→hops
// map, and drives statement execution, function calls, control flow, and
// runtime-error reporting.
//
// Every statement-executing method returns (value, returned, err): a
// three-way result rather than a thrown exception, so that "a return
// statement happened" and "a runtime error happened" are never confused
// with each other as they propagate up through nested blocks and loops.
package interpreter

import (
	"fmt"
	"io"
	"time"

	"loxgo/internal/ast"
	"loxgo/internal/environment"
	"loxgo/internal/object"
	"loxgo/internal/resolver"
	"loxgo/internal/token"
)

type Interpreter struct {
	globals *environment.Environment
	env     *environment.Environment
	locals  resolver.Locals
	out     io.Writer
}

// New creates an interpreter whose global scope is seeded with the
// standard native registry (currently just clock/0).
func New(out io.Writer) *Interpreter {
	globals := environment.New(nil)
	globals.Define("clock", &object.Native{
		Name: "clock",
		Ar:   0,
		Fn: func(args []object.Value) object.Value {
			return object.Number{V: float64(time.Now().UnixMilli())}
		},
	})
	return &Interpreter{globals: globals, env: globals}
}

// Interpret runs a whole program against the resolver's hop-count map.
// It stops at the first runtime error rather than the batched-and-continue
// strategy used for lex/parse/resolve diagnostics.
func (i *Interpreter) Interpret(stmts []ast.Stmt, locals resolver.Locals, out io.Writer) error {
	i.locals = locals
	i.out = out
	for _, stmt := range stmts {
		if _, _, err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Stmt) (object.Value, bool, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression)
		return nil, false, err

	case *ast.PrintStmt:
		val, err := i.evaluate(s.Expression)
		if err != nil {
			return nil, false, err
		}
		fmt.Fprintln(i.out, val.String())
		return nil, false, nil

	case *ast.VarStmt:
		var val object.Value = object.Nil{}
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return nil, false, err
			}
			val = v
		}
		i.env.Define(s.Name.Lexeme, val)
		return nil, false, nil

	case *ast.BlockStmt:
		return i.ExecuteBlock(s.Statements, environment.New(i.env))

	case *ast.IfStmt:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return nil, false, err
		}
		if object.IsTruthy(cond) {
			return i.execute(s.ThenBranch)
		}
		if s.ElseBranch != nil {
			return i.execute(s.ElseBranch)
		}
		return nil, false, nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return nil, false, err
			}
			if !object.IsTruthy(cond) {
				return nil, false, nil
			}
			val, returned, err := i.execute(s.Body)
			if err != nil || returned {
				return val, returned, err
			}
		}

	case *ast.FunctionStmt:
		fn := &object.Function{Decl: s, Closure: i.env}
		i.env.Define(s.Name.Lexeme, fn)
		return nil, false, nil

	case *ast.ReturnStmt:
		var val object.Value = object.Nil{}
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return nil, false, err
			}
			val = v
		}
		return val, true, nil

	default:
		panic("interpreter: unhandled statement type")
	}
}

// ExecuteBlock runs stmts against env, restoring the previous environment
// on every exit path — normal completion, a return signal, or an error.
// It also implements object.Interpreter, which is how a user-defined
// function's Call re-enters statement execution for its body.
func (i *Interpreter) ExecuteBlock(stmts []ast.Stmt, env *environment.Environment) (object.Value, bool, error) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range stmts {
		val, returned, err := i.execute(stmt)
		if err != nil || returned {
			return val, returned, err
		}
	}
	return nil, false, nil
}

func (i *Interpreter) evaluate(expr ast.Expr) (object.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(e.Value), nil

	case *ast.GroupingExpr:
		return i.evaluate(e.Expression)

	case *ast.VariableExpr:
		return i.lookupVariable(e.Name, e)

	case *ast.AssignExpr:
		val, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if hops, ok := i.locals[e]; ok {
			if err := i.env.AssignAt(hops, e.Name.Lexeme, val); err != nil {
				return nil, &object.RuntimeError{Line: e.Name.Line, Message: err.Error()}
			}
		} else if err := i.env.Assign(e.Name.Lexeme, val); err != nil {
			return nil, &object.RuntimeError{Line: e.Name.Line, Message: err.Error()}
		}
		return val, nil

	case *ast.UnaryExpr:
		return i.evaluateUnary(e)

	case *ast.BinaryExpr:
		return i.evaluateBinary(e)

	case *ast.LogicalExpr:
		return i.evaluateLogical(e)

	case *ast.CallExpr:
		return i.evaluateCall(e)

	default:
		panic("interpreter: unhandled expression type")
	}
}

func literalValue(v any) object.Value {
	switch t := v.(type) {
	case nil:
		return object.Nil{}
	case bool:
		return object.Bool{V: t}
	case float64:
		return object.Number{V: t}
	case string:
		return object.String{V: t}
	default:
		panic("interpreter: unrecognized literal value")
	}
}

func (i *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (object.Value, error) {
	var (
		val object.Value
		err error
	)
	if hops, ok := i.locals[expr]; ok {
		val, err = i.env.GetAt(hops, name.Lexeme)
	} else {
		val, err = i.env.Get(name.Lexeme)
	}
	if err != nil {
		return nil, &object.RuntimeError{Line: name.Line, Message: err.Error()}
	}
	return val, nil
}

func (i *Interpreter) evaluateUnary(e *ast.UnaryExpr) (object.Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.BANG:
		return object.Bool{V: !object.IsTruthy(right)}, nil
	case token.MINUS:
		n, ok := right.(object.Number)
		if !ok {
			return nil, runtimeErr(e.Op, "Operand must be a number.")
		}
		return object.Number{V: -n.V}, nil
	}
	panic("interpreter: unhandled unary operator")
}

func (i *Interpreter) evaluateBinary(e *ast.BinaryExpr) (object.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.PLUS:
		if ln, lok := left.(object.Number); lok {
			if rn, rok := right.(object.Number); rok {
				return object.Number{V: ln.V + rn.V}, nil
			}
			return nil, runtimeErr(e.Op, "Right operand must be a Number.")
		}
		if ls, lok := left.(object.String); lok {
			if rs, rok := right.(object.String); rok {
				return object.String{V: ls.V + rs.V}, nil
			}
			return nil, runtimeErr(e.Op, "Right operand must be a String.")
		}
		return nil, runtimeErr(e.Op, "Left operand must be a Number or a String.")

	case token.MINUS:
		l, r, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return object.Number{V: l - r}, nil

	case token.STAR:
		l, r, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return object.Number{V: l * r}, nil

	case token.SLASH:
		l, r, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return object.Number{V: l / r}, nil

	case token.GREATER:
		l, r, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return object.Bool{V: l > r}, nil

	case token.GREATER_EQUAL:
		l, r, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return object.Bool{V: l >= r}, nil

	case token.LESS:
		l, r, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return object.Bool{V: l < r}, nil

	case token.LESS_EQUAL:
		l, r, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return object.Bool{V: l <= r}, nil

	case token.EQUAL_EQUAL:
		return object.Bool{V: object.IsEqual(left, right)}, nil

	case token.BANG_EQUAL:
		return object.Bool{V: !object.IsEqual(left, right)}, nil
	}
	panic("interpreter: unhandled binary operator")
}

func bothNumbers(op token.Token, left, right object.Value) (float64, float64, error) {
	l, lok := left.(object.Number)
	r, rok := right.(object.Number)
	if !lok || !rok {
		return 0, 0, runtimeErr(op, "Operands must be numbers.")
	}
	return l.V, r.V, nil
}

func (i *Interpreter) evaluateLogical(e *ast.LogicalExpr) (object.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Op.Type == token.OR {
		if object.IsTruthy(left) {
			return left, nil
		}
	} else { // AND
		if !object.IsTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) evaluateCall(e *ast.CallExpr) (object.Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]object.Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(object.Callable)
	if !ok {
		return nil, runtimeErr(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, runtimeErr(e.Paren, fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)))
	}
	return callable.Call(i, args)
}

func runtimeErr(tok token.Token, message string) *object.RuntimeError {
	return &object.RuntimeError{Line: tok.Line, Message: message}
}
