package codegen

import "fmt"

// ProgramError is the "well-formed but not actually lowerable" error class:
// a condition the type checker upstream cannot rule out but that lowering
// itself detects (break outside a loop, an ArgRef in a non-callable
// context, a captures-array expression that is not an array literal). It is
// returned up the call stack and aborts lowering; the partially built module
// is discarded by the caller.
type ProgramError struct {
	Msg string
}

func (e *ProgramError) Error() string { return e.Msg }

func programError(format string, args ...interface{}) error {
	return &ProgramError{Msg: fmt.Sprintf(format, args...)}
}

// bug panics with a "[BUG]"-prefixed diagnostic for internal invariant
// violations: a missing global for a declared constant, an unknown lvar,
// mismatched phi input types. These are never recovered inside this
// package — the process halts rather than emitting a malformed module.
func bug(format string, args ...interface{}) {
	panic(fmt.Sprintf("[BUG] "+format, args...))
}
