// Command shiika-run compiles an HIR JSON program to LLVM IR, then shells
// out to clang to assemble and link it (clang subsumes llc for a single
// .ll input) and runs the resulting binary, relaying its stdout/stderr and
// exit code. Modeled on cmd/alas-run's flag/stdin shape plus os/exec; the
// actual LLVM assembler/linker/runtime are an external toolchain dependency,
// not something this module implements.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/aisk/shiika/internal/codegen"
	"github.com/aisk/shiika/internal/hir"
	"github.com/aisk/shiika/internal/stdlib"
	"github.com/aisk/shiika/internal/validator"
)

func main() {
	file := flag.String("file", "", "HIR JSON input file (default: stdin)")
	clang := flag.String("clang", "clang", "clang binary to assemble and link with")
	keep := flag.Bool("keep", false, "keep the generated .ll and binary instead of deleting them")
	flag.Parse()

	if err := run(*file, *clang, *keep); err != nil {
		fmt.Fprintf(os.Stderr, "shiika-run: %v\n", err)
		os.Exit(1)
	}
}

func run(file, clang string, keep bool) error {
	data, err := readInput(file)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var prog hir.Program
	if err := json.Unmarshal(data, &prog); err != nil {
		return fmt.Errorf("parsing HIR JSON: %w", err)
	}
	prog.Classes = append(stdlib.Classes(), prog.Classes...)

	if errs := validator.ValidateProgram(&prog); len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "shiika-run: %s\n", e)
		}
		return fmt.Errorf("%d validation error(s)", len(errs))
	}

	gen := codegen.NewGenerator(codegen.WithNativeAllocator())
	stdlib.Register(gen)
	module, err := gen.GenerateModule(&prog)
	if err != nil {
		return fmt.Errorf("generating module: %w", err)
	}

	workDir, err := os.MkdirTemp("", "shiika-run-*")
	if err != nil {
		return fmt.Errorf("creating work dir: %w", err)
	}
	if !keep {
		defer os.RemoveAll(workDir)
	}

	llPath := filepath.Join(workDir, "main.ll")
	if err := os.WriteFile(llPath, []byte(module.String()), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", llPath, err)
	}

	binPath := filepath.Join(workDir, "main")
	build := exec.Command(clang, llPath, "-o", binPath)
	build.Stdout = os.Stderr
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", clang, err)
	}

	if keep {
		fmt.Fprintf(os.Stderr, "shiika-run: kept %s\n", workDir)
	}

	prog2 := exec.Command(binPath)
	prog2.Stdin = os.Stdin
	prog2.Stdout = os.Stdout
	prog2.Stderr = os.Stderr
	return prog2.Run()
}

func readInput(file string) ([]byte, error) {
	if file == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(file)
}
