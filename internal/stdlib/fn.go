package stdlib

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/aisk/shiika/internal/codegen"
	"github.com/aisk/shiika/internal/hir"
)

// registerFn attaches "new" to each Fn<k> wrapper's metaclass, 0 through 3.
func registerFn(g *codegen.Generator) {
	for arity := 0; arity <= 3; arity++ {
		registerFnNew(g, arity)
	}
}

// registerFnNew builds Meta:Fn<arity>#new: allocate an Fn<arity> instance,
// bitcast the generic "fn" argument down to a bare code pointer and store it
// in ivar 0, store the captures array in ivar 1.
func registerFnNew(g *codegen.Generator, arity int) {
	kClass := fnClassName(arity)
	metaFullname := hir.MetaName(kClass)

	g.RegisterNative(hir.MethodFullname(metaFullname, "new"), func(g *codegen.Generator, fn *ir.Func, entry *ir.Block) error {
		obj := g.AllocateObject(kClass)
		structTy := g.ObjectStructType(kClass)

		fnPtrField := entry.NewGetElementPtr(structTy, obj,
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(codegen.IvarFieldIndex(0))))
		entry.NewStore(entry.NewBitCast(fn.Params[1], types.I8Ptr), fnPtrField)

		capturesField := entry.NewGetElementPtr(structTy, obj,
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(codegen.IvarFieldIndex(1))))
		entry.NewStore(fn.Params[2], capturesField)

		entry.NewRet(obj)
		return nil
	})
}
