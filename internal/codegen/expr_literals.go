package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/aisk/shiika/internal/hir"
)

func (g *Generator) lowerBoolLit(e *hir.Expr) (value.Value, error) {
	v := int64(0)
	if e.BoolVal {
		v = 1
	}
	return g.boxBool(constant.NewInt(types.I1, v)), nil
}

func (g *Generator) lowerIntLit(e *hir.Expr) (value.Value, error) {
	return g.boxInt(constant.NewInt(types.I32, int64(e.IntVal))), nil
}

func (g *Generator) lowerFloatLit(e *hir.Expr) (value.Value, error) {
	return g.boxFloat(constant.NewFloat(types.Double, e.FloatVal)), nil
}

// lowerStringLit builds a String object whose ivar0 (@ptr) points at the
// pooled str_<i> global and ivar1 (@bytesize) holds its length.
func (g *Generator) lowerStringLit(e *hir.Expr) (value.Value, error) {
	glob := g.strGlobals[e.StrIdx]
	arrTy, ok := glob.ContentType.(*types.ArrayType)
	if !ok {
		bug("string pool global %d has unexpected type %v", e.StrIdx, glob.ContentType)
	}
	size := int64(arrTy.Len) - 1 // exclude the NUL terminator appended at pool-declare time

	obj := g.allocateSkObj("String")
	structTy := g.objectStructType("String")

	ptr := g.cur.NewBitCast(glob, types.I8Ptr)
	ptrField := g.cur.NewGetElementPtr(structTy, obj,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(0))))
	g.cur.NewStore(ptr, ptrField)

	sizeField := g.cur.NewGetElementPtr(structTy, obj,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(1))))
	g.cur.NewStore(constant.NewInt(types.I32, size), sizeField)

	return obj, nil
}

// lowerClassLit loads the singleton class object for e.ClassName out of its
// "::Name" global slot (classes are bootstrapped once in user_main's
// prologue, see compileUserMain).
func (g *Generator) lowerClassLit(e *hir.Expr) (value.Value, error) {
	glob := g.classConstant(e.ClassName)
	return g.cur.NewLoad(glob.ContentType, glob), nil
}

// lowerArrayLit builds a heap buffer of Object* slots, one per item, and
// wraps it in an Array object (ivar0 @ptr, ivar1 @size) — a genuine
// heap-backed array object (see DESIGN.md).
func (g *Generator) lowerArrayLit(e *hir.Expr) (value.Value, error) {
	n := int64(len(e.Items))
	objPtrTy := g.objectPtrType("Object")

	bufRaw := g.cur.NewCall(g.gcMalloc(), constant.NewInt(types.I64, n*8))
	bufPtr := g.cur.NewBitCast(bufRaw, types.NewPointer(objPtrTy))

	for i := range e.Items {
		itemVal, err := g.lowerExpr(&e.Items[i])
		if err != nil {
			return nil, err
		}
		asObj := itemVal
		if !types.Equal(itemVal.Type(), objPtrTy) {
			asObj = g.cur.NewBitCast(itemVal, objPtrTy)
		}
		slot := g.cur.NewGetElementPtr(objPtrTy, bufPtr, constant.NewInt(types.I64, int64(i)))
		g.cur.NewStore(asObj, slot)
	}

	arrObj := g.allocateSkObj("Array")
	structTy := g.objectStructType("Array")

	ptrField := g.cur.NewGetElementPtr(structTy, arrObj,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(0))))
	g.cur.NewStore(bufPtr, ptrField)

	sizeField := g.cur.NewGetElementPtr(structTy, arrObj,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(1))))
	g.cur.NewStore(constant.NewInt(types.I32, n), sizeField)

	return arrObj, nil
}
