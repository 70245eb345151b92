// Package runner wires the lexer, parser, resolver, and interpreter into
// a single pipeline, shared by the CLI and the test suite so both drive
// the exact same sequence of phases.
package runner

import (
	"bytes"
	"io"

	"loxgo/internal/interpreter"
	"loxgo/internal/lexer"
	"loxgo/internal/object"
	"loxgo/internal/parser"
	"loxgo/internal/reporting"
	"loxgo/internal/resolver"
)

// Runner owns one interpreter instance, so that variables declared on
// one Run call remain visible to the next — the behavior a REPL needs.
type Runner struct {
	interp *interpreter.Interpreter
}

func New() *Runner {
	return &Runner{interp: interpreter.New(io.Discard)}
}

// Result separates the three phases a caller may care about
// distinguishing: static diagnostics (lex/parse/resolve, batched), a
// runtime error (fail-fast), and the program's stdout.
type Result struct {
	Diagnostics reporting.Bag
	RuntimeErr  error
	Output      string
}

// HasStaticErrors reports whether lexing, parsing, or resolving produced
// any diagnostic. The interpreter never runs in that case.
func (r Result) HasStaticErrors() bool { return r.Diagnostics.HasErrors() }

// Run lexes, parses, resolves, and — if no static errors were found —
// evaluates source, capturing everything the program prints.
func (rn *Runner) Run(source string) Result {
	lx := lexer.New(source)
	tokens, diags := lx.Scan()

	p := parser.New(tokens)
	stmts, parseDiags := p.Parse()
	diags = append(diags, parseDiags...)

	res := resolver.New()
	locals, resolveDiags := res.Resolve(stmts)
	diags = append(diags, resolveDiags...)

	if diags.HasErrors() {
		return Result{Diagnostics: diags}
	}

	var out bytes.Buffer
	err := rn.interp.Interpret(stmts, locals, &out)
	return Result{Diagnostics: diags, RuntimeErr: err, Output: out.String()}
}

// RuntimeErrorLine extracts the source line a runtime error occurred at,
// when the error is one the interpreter raised.
func RuntimeErrorLine(err error) (int, bool) {
	rte, ok := err.(*object.RuntimeError)
	if !ok {
		return 0, false
	}
	return rte.Line, true
}
