package stdlib

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/aisk/shiika/internal/codegen"
	"github.com/aisk/shiika/internal/hir"
)

func registerArray(g *codegen.Generator) {
	g.RegisterNative(hir.MethodFullname("Array", "length"), func(g *codegen.Generator, fn *ir.Func, entry *ir.Block) error {
		structTy := g.ObjectStructType("Array")
		slot := entry.NewGetElementPtr(structTy, fn.Params[0],
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(codegen.IvarFieldIndex(1))))
		entry.NewRet(g.BoxInt(entry.NewLoad(types.I32, slot)))
		return nil
	})

	g.RegisterNative(hir.MethodFullname("Array", "nth"), func(g *codegen.Generator, fn *ir.Func, entry *ir.Block) error {
		structTy := g.ObjectStructType("Array")
		objPtrTy := g.ObjectPtrType("Object")

		bufField := entry.NewGetElementPtr(structTy, fn.Params[0],
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(codegen.IvarFieldIndex(0))))
		bufPtr := entry.NewLoad(types.NewPointer(objPtrTy), bufField)

		index := g.UnboxInt(fn.Params[1])
		index64 := entry.NewSExt(index, types.I64)
		slot := entry.NewGetElementPtr(objPtrTy, bufPtr, index64)
		entry.NewRet(entry.NewLoad(objPtrTy, slot))
		return nil
	})
}
