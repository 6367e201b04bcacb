// Command rexc compiles a pattern and either tests it against an input
// string or emits it as standalone Go source.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/relang/rex"
	"github.com/relang/rex/internal/ast"
	"github.com/relang/rex/internal/bytecode"
	"github.com/relang/rex/internal/emit"
	"github.com/relang/rex/internal/nfa"
	"github.com/relang/rex/internal/parser"
	"github.com/relang/rex/internal/subset"
)

var (
	pattern  = flag.String("pattern", "", "pattern to compile (required)")
	input    = flag.String("input", "", "input string to test the pattern against")
	strategy = flag.String("strategy", "deterministic", "match strategy: backtrack, deterministic, lazy, bytecode")
	verbose  = flag.Bool("verbose", false, "log construction phases to stderr")
	emitOut  = flag.String("emit", "", "write a standalone Go source file implementing pattern to this path instead of matching")
	emitPkg  = flag.String("emit-package", "main", "package name for -emit output")
	emitFunc = flag.String("emit-func", "Match", "function name for -emit output")
)

func main() {
	flag.Parse()

	if *pattern == "" {
		fmt.Fprintln(os.Stderr, "rexc: -pattern is required")
		flag.Usage()
		os.Exit(2)
	}

	if *emitOut != "" {
		if err := runEmit(); err != nil {
			fmt.Fprintf(os.Stderr, "rexc: %v\n", err)
			os.Exit(1)
		}
		return
	}

	m, err := rex.CompileWithOptions(*pattern, rex.CompileOptions{Verbose: *verbose})
	if err != nil {
		fmt.Fprintf(os.Stderr, "rexc: %v\n", err)
		os.Exit(1)
	}

	s, err := strategyFromFlag(*strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rexc: %v\n", err)
		os.Exit(2)
	}

	matched := m.MatchWith(*input, s)
	fmt.Println(matched)
	if !matched {
		os.Exit(1)
	}
}

func strategyFromFlag(s string) (rex.Strategy, error) {
	switch s {
	case "backtrack":
		return rex.StrategyBacktrack, nil
	case "deterministic":
		return rex.StrategyDeterministic, nil
	case "lazy":
		return rex.StrategyLazy, nil
	case "bytecode":
		return rex.StrategyBytecode, nil
	default:
		return 0, fmt.Errorf("unknown -strategy %q", s)
	}
}

func runEmit() error {
	root, err := parser.Parse(*pattern)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	// Match rex.Compile's unanchored "search anywhere" contract (§6.4) so
	// the generated function agrees with Matcher.Match on the same pattern.
	dotStar := &ast.Quantified{Item: &ast.MatchAny{}, Quantifier: ast.Quantifier{Kind: ast.QuantStar}}
	wrapped := &ast.Expression{Items: []ast.Node{dotStar, root}}

	n, err := nfa.Build(wrapped)
	if err != nil {
		return fmt.Errorf("build nfa: %w", err)
	}
	dfa := subset.Determinize(n)
	prog := bytecode.Compile(dfa)

	src, err := emit.Generate(*emitPkg, *emitFunc, prog)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return os.WriteFile(*emitOut, []byte(src), 0o644)
}
