package stdlib

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/aisk/shiika/internal/codegen"
	"github.com/aisk/shiika/internal/hir"
)

func registerString(g *codegen.Generator) {
	g.RegisterNative(hir.MethodFullname("String", "bytesize"), func(g *codegen.Generator, fn *ir.Func, entry *ir.Block) error {
		structTy := g.ObjectStructType("String")
		slot := entry.NewGetElementPtr(structTy, fn.Params[0],
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(codegen.IvarFieldIndex(1))))
		entry.NewRet(g.BoxInt(entry.NewLoad(types.I32, slot)))
		return nil
	})
}
