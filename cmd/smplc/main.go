// Command smplc is the thin driver around the analysis core: it loads one
// or more YAML fixture files (internal/fixture), prepends the builtin
// module sources (internal/stdlib), runs module resolution
// (internal/resolve), and reports the result.
//
// Usage: smplc <fixture.yaml> [fixture2.yaml ...]
//
// Grounded on the teacher's cmd/funxy/main.go: bare os.Args parsing (no
// flag package), read-file-then-run-pipeline shape, diagnostics to
// stderr with a non-zero exit on failure. Everything else in that file —
// bytecode bundling, backend selection, REPL eval mode — has no
// counterpart here, since this core never runs or compiles a program; it
// only resolves and type-checks one.
package main

import (
	"fmt"
	"os"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/config"
	"github.com/smpl-lang/smplc/internal/fixture"
	"github.com/smpl-lang/smplc/internal/resolve"
	"github.com/smpl-lang/smplc/internal/stdlib"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <fixture.yaml> [fixture2.yaml ...]\n", args[0])
		return 2
	}

	modules := append([]*ast.Module{}, stdlib.Modules()...)
	for _, path := range args[1:] {
		m, err := fixture.LoadModule(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			return 1
		}
		modules = append(modules, m)
	}

	prog, err := resolve.Run(modules, nil)
	if err != nil {
		if rerr, ok := err.(*resolve.ResolveError); ok {
			for _, r := range rerr.Reports() {
				fmt.Fprintln(os.Stderr, r.Error())
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}

	fmt.Printf("run %s: %d module(s) resolved", prog.RunID, len(args)-1+len(stdlib.Modules()))
	if prog.Metadata.Main != nil {
		fmt.Printf(", main = %s", prog.Metadata.Main)
	}
	fmt.Println()
	for name, enabled := range prog.Features {
		if enabled {
			fmt.Printf("feature: %s\n", name)
		}
	}
	return 0
}

func init() {
	config.IsTestMode = false
}
