// Package validator runs structural checks over an hir.Program before it
// reaches the code-generation core: conditions a type checker upstream is
// assumed to have already ruled out, plus a few lowering can't cheaply
// re-check on every call (ivar index bounds, break-outside-loop). Errors
// accumulate in a Validator rather than failing fast, so a caller can report
// every problem found in one pass.
package validator

import (
	"fmt"

	"github.com/aisk/shiika/internal/hir"
)

// Validator accumulates human-readable error strings rather than failing
// fast, so a caller can report every problem found in one pass.
type Validator struct {
	errors []string
}

func New() *Validator { return &Validator{} }

func (v *Validator) addError(format string, args ...interface{}) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

// Errors returns every problem found so far.
func (v *Validator) Errors() []string { return v.errors }

// Valid reports whether no problems were found.
func (v *Validator) Valid() bool { return len(v.errors) == 0 }

// ValidateProgram runs every check over prog and returns the accumulated
// error strings (empty if the program is well-formed).
func ValidateProgram(prog *hir.Program) []string {
	v := New()
	v.validateProgram(prog)
	return v.errors
}

func (v *Validator) validateProgram(prog *hir.Program) {
	for i := range prog.Classes {
		v.validateClass(&prog.Classes[i])
	}
	for i := range prog.Constants {
		v.validateExpr(&prog.Constants[i].Init, nil, false)
	}
	for i := range prog.TopLevel {
		v.validateExpr(&prog.TopLevel[i], nil, false)
	}
}

func (v *Validator) validateClass(c *hir.Class) {
	if c.Fullname == "" {
		v.addError("a class has an empty fullname")
		return
	}
	for i := range c.Methods {
		m := &c.Methods[i]
		for j := range m.Body {
			v.validateExpr(&m.Body[j], c, false)
		}
	}
}

// validateExpr walks e looking for the checks cheaper to do once here than
// on every lowering call: ivar indices within the owning class's layout,
// and break only
// appearing lexically inside a while loop (resetting at a lambda boundary,
// since a lambda body has no loop of its own unless it opens one).
func (v *Validator) validateExpr(e *hir.Expr, owner *hir.Class, inLoop bool) {
	switch e.Kind {
	case hir.KindIVarRef, hir.KindIVarAssign:
		if owner == nil {
			v.addError("ivar %q referenced outside any class", e.Name)
		} else if e.IvarIdx < 0 || e.IvarIdx >= len(owner.IvarLayout) {
			v.addError("class %s: ivar index %d out of range (layout has %d slots)",
				owner.Fullname, e.IvarIdx, len(owner.IvarLayout))
		}
		if e.Kind == hir.KindIVarAssign && e.RHS != nil {
			v.validateExpr(e.RHS, owner, inLoop)
		}
	case hir.KindBreak:
		if !inLoop {
			v.addError("break used outside a while loop")
		}
	case hir.KindWhile:
		v.validateExpr(e.Cond, owner, inLoop)
		for i := range e.Body {
			v.validateExpr(&e.Body[i], owner, true)
		}
	case hir.KindIf:
		v.validateExpr(e.Cond, owner, inLoop)
		for i := range e.Then {
			v.validateExpr(&e.Then[i], owner, inLoop)
		}
		for i := range e.Else {
			v.validateExpr(&e.Else[i], owner, inLoop)
		}
	case hir.KindMethodCall:
		v.validateExpr(e.Receiver, owner, inLoop)
		for i := range e.Args {
			v.validateExpr(&e.Args[i], owner, inLoop)
		}
	case hir.KindLVarAssign, hir.KindConstAssign:
		if e.RHS != nil {
			v.validateExpr(e.RHS, owner, inLoop)
		}
	case hir.KindLogicalAnd, hir.KindLogicalOr:
		v.validateExpr(e.Left, owner, inLoop)
		v.validateExpr(e.Right, owner, inLoop)
	case hir.KindLogicalNot:
		v.validateExpr(e.Operand, owner, inLoop)
	case hir.KindArray:
		for i := range e.Items {
			v.validateExpr(&e.Items[i], owner, inLoop)
		}
	case hir.KindLambda:
		if e.CapturesArray == nil || e.CapturesArray.Kind != hir.KindArray {
			v.addError("lambda %q: captures must be an array literal", e.LambdaName)
		} else {
			v.validateExpr(e.CapturesArray, owner, false)
		}
		for i := range e.LambdaBody {
			v.validateExpr(&e.LambdaBody[i], owner, false)
		}
	case hir.KindBitCast:
		v.validateExpr(e.Target, owner, inLoop)
	}
}
