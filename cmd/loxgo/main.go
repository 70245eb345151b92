// Command loxgo runs Lox-family scripts and hosts an interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"loxgo/internal/runner"
)

func main() {
	switch len(os.Args) {
	case 1:
		runREPL()
	case 2:
		runFile(os.Args[1])
	default:
		fmt.Fprintln(os.Stderr, "Usage: loxgo [script]")
		os.Exit(1)
	}
}

func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loxgo: %v\n", err)
		os.Exit(1)
	}

	rn := runner.New()
	result := rn.Run(string(source))

	if result.HasStaticErrors() {
		result.Diagnostics.Fprint(os.Stderr)
		os.Exit(65)
	}

	fmt.Print(result.Output)

	if result.RuntimeErr != nil {
		printRuntimeError(result.RuntimeErr)
		os.Exit(70)
	}
}

func printRuntimeError(err error) {
	if line, ok := runner.RuntimeErrorLine(err); ok {
		fmt.Fprintf(os.Stderr, "[line %d] %s: %s\n", line, color.RedString("Error"), err.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", color.RedString("Error"), err.Error())
}
