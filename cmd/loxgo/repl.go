package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"loxgo/internal/runner"
)

func runREPL() {
	fmt.Println(color.CyanString("loxgo") + " — press Ctrl+D or Ctrl+C to exit")

	rl, err := readline.New(color.GreenString("> "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "loxgo: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	rn := runner.New()
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "loxgo: %v\n", err)
			return
		}
		if line == "" {
			continue
		}

		result := rn.Run(line)
		if result.HasStaticErrors() {
			result.Diagnostics.Fprint(os.Stderr)
			continue
		}
		fmt.Print(result.Output)
		if result.RuntimeErr != nil {
			printRuntimeError(result.RuntimeErr)
		}
	}
}
