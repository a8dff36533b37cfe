package stdlib

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/aisk/shiika/internal/codegen"
	"github.com/aisk/shiika/internal/hir"
)

func registerInt(g *codegen.Generator) {
	intBinOp(g, "+", func(b *ir.Block, x, y value.Value) value.Value { return b.NewAdd(x, y) }, true)
	intBinOp(g, "-", func(b *ir.Block, x, y value.Value) value.Value { return b.NewSub(x, y) }, true)
	intBinOp(g, "*", func(b *ir.Block, x, y value.Value) value.Value { return b.NewMul(x, y) }, true)
	intBinOp(g, "<", func(b *ir.Block, x, y value.Value) value.Value { return b.NewICmp(enum.IPredSLT, x, y) }, false)
	intBinOp(g, "==", func(b *ir.Block, x, y value.Value) value.Value { return b.NewICmp(enum.IPredEQ, x, y) }, false)

	g.RegisterNative(hir.MethodFullname("Int", "to_f"), func(g *codegen.Generator, fn *ir.Func, entry *ir.Block) error {
		raw := g.UnboxInt(fn.Params[0])
		entry.NewRet(g.BoxFloat(entry.NewSIToFP(raw, types.Double)))
		return nil
	})
}

// intBinOp registers a native body for Int#<op>: unbox both operands, run
// build, and box the i32 or i1 result back up depending on resultIsInt.
func intBinOp(g *codegen.Generator, op string, build func(b *ir.Block, x, y value.Value) value.Value, resultIsInt bool) {
	g.RegisterNative(hir.MethodFullname("Int", op), func(g *codegen.Generator, fn *ir.Func, entry *ir.Block) error {
		x := g.UnboxInt(fn.Params[0])
		y := g.UnboxInt(fn.Params[1])
		raw := build(entry, x, y)
		if resultIsInt {
			entry.NewRet(g.BoxInt(raw))
		} else {
			entry.NewRet(g.BoxBool(raw))
		}
		return nil
	})
}
