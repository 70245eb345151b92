// Package reporting collects and prints the static diagnostics produced by
// the lexer, parser, and resolver. Each phase accumulates its own Bag
// instead of aborting at the first problem, so a single run can report
// every lexical, syntax, or resolution error it finds.
package reporting

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Diagnostic is one static error with a source line and, when available,
// the token text it occurred at.
type Diagnostic struct {
	Line    int
	Where   string
	Message string
}

func (d Diagnostic) String() string {
	if d.Where != "" {
		return fmt.Sprintf("[line %d] Error at '%s': %s", d.Line, d.Where, d.Message)
	}
	return fmt.Sprintf("[line %d] Error: %s", d.Line, d.Message)
}

// Bag accumulates diagnostics across a lex/parse/resolve pass.
type Bag []Diagnostic

func (b *Bag) Add(d Diagnostic) {
	*b = append(*b, d)
}

func (b Bag) HasErrors() bool {
	return len(b) > 0
}

// Fprint writes every diagnostic in the bag to w, one per line, coloring
// the "Error" tag red when fatih/color has color output enabled; that
// library decides from standard output and NO_COLOR, not from w.
func (b Bag) Fprint(w io.Writer) {
	errTag := color.New(color.FgRed, color.Bold).Sprint("Error")
	for _, d := range b {
		if d.Where != "" {
			fmt.Fprintf(w, "[line %d] %s at '%s': %s\n", d.Line, errTag, d.Where, d.Message)
		} else {
			fmt.Fprintf(w, "[line %d] %s: %s\n", d.Line, errTag, d.Message)
		}
	}
}
