// Package object defines the runtime value variants the evaluator
// produces and consumes, and the Callable contract shared by
// user-defined and native functions.
package object

import (
	"fmt"
	"strconv"

	"loxgo/internal/ast"
	"loxgo/internal/environment"
)

// Value is the tagged union of runtime values: Nil, Bool, Number, String,
// *Function, *Native. A Go type switch plays the role of the tag.
type Value interface {
	String() string
}

type Nil struct{}

func (Nil) String() string { return "nil" }

type Bool struct{ V bool }

func (b Bool) String() string { return strconv.FormatBool(b.V) }

type Number struct{ V float64 }

func (n Number) String() string {
	if n.V == float64(int64(n.V)) {
		return strconv.FormatInt(int64(n.V), 10)
	}
	return strconv.FormatFloat(n.V, 'g', -1, 64)
}

type String struct{ V string }

func (s String) String() string { return s.V }

// IsTruthy implements the language's truthiness rule: nil and false are
// falsey, everything else (including 0 and "") is truthy.
func IsTruthy(v Value) bool {
	switch t := v.(type) {
	case Nil:
		return false
	case Bool:
		return t.V
	default:
		return true
	}
}

// IsEqual implements same-variant-by-value equality. Because Function and
// Native are always handled as pointers, comparing the Value interface
// values directly falls out to pointer identity for those two variants
// and to field-wise value equality for the rest — including NaN, which
// compares unequal to itself via ordinary float64 comparison.
func IsEqual(a, b Value) bool {
	return a == b
}

// Callable is implemented by anything the evaluator can invoke via a
// Call expression: both user-defined functions and natives.
type Callable interface {
	Value
	Arity() int
	Call(interp Interpreter, args []Value) (Value, error)
}

// Interpreter is the narrow slice of the evaluator a user-defined
// function's Call needs: the ability to run a function body against a
// fresh environment and report how it completed. Defined here (rather
// than depending on the interpreter package) to avoid an import cycle —
// internal/interpreter implements this interface on its Interpreter type.
type Interpreter interface {
	ExecuteBlock(body []ast.Stmt, env *environment.Environment) (Value, bool, error)
}

// Function is a user-defined function value: its declaration, the
// environment that was current when it was declared (its closure), and
// an identity distinct from its name so two functions with the same
// name/arity are never mistaken for each other.
type Function struct {
	Decl    *ast.FunctionStmt
	Closure *environment.Environment
}

func (f *Function) String() string { return fmt.Sprintf("<fun %s>", f.Decl.Name.Lexeme) }
func (f *Function) Arity() int     { return len(f.Decl.Params) }

func (f *Function) Call(interp Interpreter, args []Value) (Value, error) {
	env := environment.New(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	value, returned, err := interp.ExecuteBlock(f.Decl.Body, env)
	if err != nil {
		return nil, err
	}
	if returned {
		return value, nil
	}
	return Nil{}, nil
}

// Native is a built-in function implemented in Go. Its Fn must be
// infallible: natives cannot raise runtime errors.
type Native struct {
	Name  string
	Ar    int
	Fn    func(args []Value) Value
}

func (n *Native) String() string        { return fmt.Sprintf("<native fun %s>", n.Name) }
func (n *Native) Arity() int            { return n.Ar }
func (n *Native) Call(_ Interpreter, args []Value) (Value, error) {
	return n.Fn(args), nil
}

// RuntimeError is a fail-fast error raised during evaluation, carrying
// the source line it occurred at.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }
