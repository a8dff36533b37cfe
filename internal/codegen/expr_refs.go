package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/aisk/shiika/internal/hir"
)

// lowerArgRef reads a parameter directly off the enclosing function's
// signature: methods offset by one slot for self, lambdas read straight
// through.
func (g *Generator) lowerArgRef(e *hir.Expr) (value.Value, error) {
	switch g.scope.origin {
	case originMethod:
		return g.scope.fn.Params[e.ArgIdx+1], nil
	case originLambda:
		return g.scope.fn.Params[e.ArgIdx], nil
	default:
		return nil, programError("arg_ref outside a method or lambda body")
	}
}

func (g *Generator) lowerLVarRef(e *hir.Expr) (value.Value, error) {
	slot := g.scope.lookupLVar(e.Name)
	if slot == nil {
		bug("lvar %q read before assignment", e.Name)
	}
	return g.cur.NewLoad(g.llvmType(e.Ty), slot), nil
}

func (g *Generator) lowerLVarAssign(e *hir.Expr) (value.Value, error) {
	val, err := g.lowerExpr(e.RHS)
	if err != nil {
		return nil, err
	}
	slot := g.scope.lookupLVar(e.Name)
	if slot == nil {
		slot = g.cur.NewAlloca(g.llvmType(e.RHS.Ty))
		g.scope.declareLVar(e.Name, slot)
	}
	g.cur.NewStore(val, slot)
	return val, nil
}

func (g *Generator) lowerIVarRef(e *hir.Expr) (value.Value, error) {
	self := g.currentSelf()
	structTy := g.objectStructType(g.scope.selfFullname)
	slot := g.cur.NewGetElementPtr(structTy, self,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(e.IvarIdx))))
	return g.cur.NewLoad(g.llvmType(e.Ty), slot), nil
}

func (g *Generator) lowerIVarAssign(e *hir.Expr) (value.Value, error) {
	val, err := g.lowerExpr(e.RHS)
	if err != nil {
		return nil, err
	}
	self := g.currentSelf()
	structTy := g.objectStructType(g.scope.selfFullname)
	slot := g.cur.NewGetElementPtr(structTy, self,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(e.IvarIdx))))
	g.cur.NewStore(val, slot)
	return val, nil
}

func (g *Generator) lowerConstRef(e *hir.Expr) (value.Value, error) {
	glob, ok := g.constants[e.Name]
	if !ok {
		bug("unknown constant %q", e.Name)
	}
	return g.cur.NewLoad(glob.ContentType, glob), nil
}

func (g *Generator) lowerConstAssign(e *hir.Expr) (value.Value, error) {
	val, err := g.lowerExpr(e.RHS)
	if err != nil {
		return nil, err
	}
	glob, ok := g.constants[e.Name]
	if !ok {
		bug("unknown constant %q", e.Name)
	}
	g.cur.NewStore(val, glob)
	return val, nil
}

// lowerLambdaCaptureRef reads a captured variable out of the trailing
// captures-array parameter. Slot 0 is always reserved for the enclosing
// self (see currentSelf); explicit captures start at slot 1 — see
// DESIGN.md's lambda-self-access decision.
func (g *Generator) lowerLambdaCaptureRef(e *hir.Expr) (value.Value, error) {
	capturesParam := g.scope.fn.Params[len(g.scope.fn.Params)-1]
	raw := g.loadCapture(capturesParam, e.ArgIdx+1)
	return g.cur.NewBitCast(raw, g.llvmType(e.Ty)), nil
}

func (g *Generator) lowerSelfExpr(e *hir.Expr) (value.Value, error) {
	self := g.currentSelf()
	want := g.llvmType(e.Ty)
	if !types.Equal(self.Type(), want) {
		return g.cur.NewBitCast(self, want), nil
	}
	return self, nil
}

// loadCapture indexes into a captures array's element buffer (ivar0 @ptr)
// and loads slot idx, returning a generic Object*.
func (g *Generator) loadCapture(capturesArr value.Value, idx int) value.Value {
	arrStructTy := g.objectStructType("Array")
	objPtrTy := g.objectPtrType("Object")

	ptrField := g.cur.NewGetElementPtr(arrStructTy, capturesArr,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(0))))
	bufPtr := g.cur.NewLoad(types.NewPointer(objPtrTy), ptrField)

	slot := g.cur.NewGetElementPtr(objPtrTy, bufPtr, constant.NewInt(types.I64, int64(idx)))
	return g.cur.NewLoad(objPtrTy, slot)
}
