package codegen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/aisk/shiika/internal/hir"
)

// lowerExpr is expression lowering's single entry point: dispatch on e.Kind
// and append the corresponding LLIR instructions at the current cursor,
// returning the boxed value the expression evaluates to (nil for While,
// Break and a Void-typed If; a Void-typed call yields the Void instance).
func (g *Generator) lowerExpr(e *hir.Expr) (value.Value, error) {
	switch e.Kind {
	case hir.KindBool:
		return g.lowerBoolLit(e)
	case hir.KindInt:
		return g.lowerIntLit(e)
	case hir.KindFloat:
		return g.lowerFloatLit(e)
	case hir.KindString:
		return g.lowerStringLit(e)
	case hir.KindClass:
		return g.lowerClassLit(e)
	case hir.KindArray:
		return g.lowerArrayLit(e)
	case hir.KindArgRef:
		return g.lowerArgRef(e)
	case hir.KindLVarRef:
		return g.lowerLVarRef(e)
	case hir.KindIVarRef:
		return g.lowerIVarRef(e)
	case hir.KindConstRef:
		return g.lowerConstRef(e)
	case hir.KindLambdaCaptureRef:
		return g.lowerLambdaCaptureRef(e)
	case hir.KindSelf:
		return g.lowerSelfExpr(e)
	case hir.KindLVarAssign:
		return g.lowerLVarAssign(e)
	case hir.KindIVarAssign:
		return g.lowerIVarAssign(e)
	case hir.KindConstAssign:
		return g.lowerConstAssign(e)
	case hir.KindIf:
		return g.lowerIf(e)
	case hir.KindWhile:
		return g.lowerWhile(e)
	case hir.KindBreak:
		return g.lowerBreak(e)
	case hir.KindLogicalNot:
		return g.lowerLogicalNot(e)
	case hir.KindLogicalAnd:
		return g.lowerLogicalAnd(e)
	case hir.KindLogicalOr:
		return g.lowerLogicalOr(e)
	case hir.KindMethodCall:
		return g.lowerMethodCall(e)
	case hir.KindLambda:
		return g.lowerLambda(e)
	case hir.KindBitCast:
		return g.lowerBitCast(e)
	default:
		bug("lowerExpr: unhandled kind %q", e.Kind)
		return nil, nil
	}
}

// currentSelf resolves the receiver visible at the current point in the
// function being compiled: the method's first parameter, the cached main
// object at top level, or the enclosing self smuggled through captures slot
// 0 inside a lambda — see DESIGN.md's lambda-self-access decision.
func (g *Generator) currentSelf() value.Value {
	switch g.scope.origin {
	case originMethod:
		return g.scope.fn.Params[0]
	case originTopLevel:
		return g.theMain
	case originLambda:
		capturesParam := g.scope.fn.Params[len(g.scope.fn.Params)-1]
		raw := g.loadCapture(capturesParam, 0)
		return g.cur.NewBitCast(raw, g.objectPtrType(g.scope.selfFullname))
	default:
		bug("currentSelf: unknown origin")
		return nil
	}
}

// voidInstance returns the one Void object standing in for a void-returning
// call's result: an LLVM void value can't be stored, returned, or passed
// anywhere a real value is expected, so every void call site substitutes
// this in its place instead of the call instruction's own result.
func (g *Generator) voidInstance() value.Value {
	return g.theVoid
}
