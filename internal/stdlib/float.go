package stdlib

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/aisk/shiika/internal/codegen"
	"github.com/aisk/shiika/internal/hir"
)

func registerFloat(g *codegen.Generator) {
	floatBinOp(g, "+", func(b *ir.Block, x, y value.Value) value.Value { return b.NewFAdd(x, y) }, true)
	floatBinOp(g, "-", func(b *ir.Block, x, y value.Value) value.Value { return b.NewFSub(x, y) }, true)
	floatBinOp(g, "*", func(b *ir.Block, x, y value.Value) value.Value { return b.NewFMul(x, y) }, true)
	floatBinOp(g, "<", func(b *ir.Block, x, y value.Value) value.Value { return b.NewFCmp(enum.FPredOLT, x, y) }, false)
	floatBinOp(g, "==", func(b *ir.Block, x, y value.Value) value.Value { return b.NewFCmp(enum.FPredOEQ, x, y) }, false)

	g.RegisterNative(hir.MethodFullname("Float", "to_i"), func(g *codegen.Generator, fn *ir.Func, entry *ir.Block) error {
		raw := g.UnboxFloat(fn.Params[0])
		entry.NewRet(g.BoxInt(entry.NewFPToSI(raw, types.I32)))
		return nil
	})
}

func floatBinOp(g *codegen.Generator, op string, build func(b *ir.Block, x, y value.Value) value.Value, resultIsFloat bool) {
	g.RegisterNative(hir.MethodFullname("Float", op), func(g *codegen.Generator, fn *ir.Func, entry *ir.Block) error {
		x := g.UnboxFloat(fn.Params[0])
		y := g.UnboxFloat(fn.Params[1])
		raw := build(entry, x, y)
		if resultIsFloat {
			entry.NewRet(g.BoxFloat(raw))
		} else {
			entry.NewRet(g.BoxBool(raw))
		}
		return nil
	})
}
