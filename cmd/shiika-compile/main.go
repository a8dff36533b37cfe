// Command shiika-compile lowers an HIR JSON program into an LLVM IR (.ll)
// text file. Modeled on cmd/alas-compile: a flag-based CLI that reads a
// file or stdin, validates, compiles, and writes the result.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aisk/shiika/internal/codegen"
	"github.com/aisk/shiika/internal/hir"
	"github.com/aisk/shiika/internal/stdlib"
	"github.com/aisk/shiika/internal/validator"
)

func main() {
	file := flag.String("file", "", "HIR JSON input file (default: stdin)")
	output := flag.String("o", "", "output .ll file (default: stdout)")
	nativeAllocator := flag.Bool("native-allocator", false, "define gc_malloc as a libc malloc forwarder instead of leaving it external")
	flag.Parse()

	if err := run(*file, *output, *nativeAllocator); err != nil {
		fmt.Fprintf(os.Stderr, "shiika-compile: %v\n", err)
		os.Exit(1)
	}
}

func run(file, output string, nativeAllocator bool) error {
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
			fmt.Fprintf(os.Stderr, "shiika-compile: %s\n", e)
		}
		return fmt.Errorf("%d validation error(s)", len(errs))
	}

	var opts []codegen.Option
	if nativeAllocator {
		opts = append(opts, codegen.WithNativeAllocator())
	}
	gen := codegen.NewGenerator(opts...)
	stdlib.Register(gen)

	module, err := gen.GenerateModule(&prog)
	if err != nil {
		return fmt.Errorf("generating module: %w", err)
	}

	return writeOutput(output, module.String())
}

func readInput(file string) ([]byte, error) {
	if file == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(file)
}

func writeOutput(output, text string) error {
	if output == "" {
		_, err := fmt.Fprint(os.Stdout, text)
		return err
	}
	return os.WriteFile(output, []byte(text), 0600)
}
