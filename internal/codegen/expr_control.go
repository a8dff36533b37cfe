package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/aisk/shiika/internal/hir"
)

// branch is one arm of a merge point: the value it produced (nil for Void)
// and the block it actually falls through from, recorded only when that
// block didn't already terminate some other way (e.g. via Break).
type branch struct {
	val value.Value
	blk *ir.Block
}

// lowerIf lowers an if/else expression: IfThen/IfElse/IfEnd block naming.
// The merge point is reached by zero, one, or two predecessors depending on
// whether either arm exits early (e.g. via Break); a phi is only built when
// two live arms remain.
func (g *Generator) lowerIf(e *hir.Expr) (value.Value, error) {
	condObj, err := g.lowerExpr(e.Cond)
	if err != nil {
		return nil, err
	}
	condRaw := g.unboxBool(condObj)

	fn := g.scope.fn
	condBlk := g.cur
	thenBlk := fn.NewBlock("IfThen")
	endBlk := fn.NewBlock("IfEnd")

	var elseBlk *ir.Block
	if e.HasElse {
		elseBlk = fn.NewBlock("IfElse")
		g.cur.NewCondBr(condRaw, thenBlk, elseBlk)
	} else {
		g.cur.NewCondBr(condRaw, thenBlk, endBlk)
	}

	var live []branch

	g.cur = thenBlk
	thenVal, err := g.lowerBlock(e.Then)
	if err != nil {
		return nil, err
	}
	if g.cur.Term == nil {
		g.cur.NewBr(endBlk)
		live = append(live, branch{thenVal, g.cur})
	}

	if e.HasElse {
		g.cur = elseBlk
		elseVal, err := g.lowerBlock(e.Else)
		if err != nil {
			return nil, err
		}
		if g.cur.Term == nil {
			g.cur.NewBr(endBlk)
			live = append(live, branch{elseVal, g.cur})
		}
	} else {
		live = append(live, branch{nil, condBlk}) // implicit empty else: the condition block branches straight to IfEnd
	}

	g.cur = endBlk

	if e.Ty.IsVoid() {
		return nil, nil
	}
	if !e.HasElse {
		bug("if without else has non-Void type %v", e.Ty)
	}
	switch len(live) {
	case 0:
		g.cur.NewUnreachable()
		return nil, nil
	case 1:
		return live[0].val, nil
	default:
		incs := make([]*ir.Incoming, len(live))
		for i, b := range live {
			incs[i] = ir.NewIncoming(b.val, b.blk)
		}
		return g.cur.NewPhi(incs...), nil
	}
}

// lowerWhile implements While: WhileBegin/WhileBody/WhileEnd block naming.
// The loop always evaluates to Void; WhileEnd is pushed as the current
// loop-end target for the duration of the body so Break can find it.
func (g *Generator) lowerWhile(e *hir.Expr) (value.Value, error) {
	fn := g.scope.fn
	beginBlk := fn.NewBlock("WhileBegin")
	bodyBlk := fn.NewBlock("WhileBody")
	endBlk := fn.NewBlock("WhileEnd")

	if g.cur.Term == nil {
		g.cur.NewBr(beginBlk)
	}

	g.cur = beginBlk
	condObj, err := g.lowerExpr(e.Cond)
	if err != nil {
		return nil, err
	}
	condRaw := g.unboxBool(condObj)
	g.cur.NewCondBr(condRaw, bodyBlk, endBlk)

	g.scope.pushLoopEnd(endBlk)
	g.cur = bodyBlk
	_, err = g.lowerBlock(e.Body)
	g.scope.popLoopEnd()
	if err != nil {
		return nil, err
	}
	if g.cur.Term == nil {
		g.cur.NewBr(beginBlk)
	}

	g.cur = endBlk
	return nil, nil
}

func (g *Generator) lowerBreak(*hir.Expr) (value.Value, error) {
	target := g.scope.currentLoopEnd()
	if target == nil {
		return nil, programError("break used outside a loop")
	}
	g.cur.NewBr(target)
	return nil, nil
}

func (g *Generator) lowerLogicalNot(e *hir.Expr) (value.Value, error) {
	obj, err := g.lowerExpr(e.Operand)
	if err != nil {
		return nil, err
	}
	raw := g.unboxBool(obj)
	flipped := g.cur.NewXor(raw, constant.NewInt(types.I1, 1))
	return g.boxBool(flipped), nil
}

// lowerLogicalAnd short-circuits: AndBegin/AndMore/AndEnd.
func (g *Generator) lowerLogicalAnd(e *hir.Expr) (value.Value, error) {
	fn := g.scope.fn
	beginBlk := fn.NewBlock("AndBegin")
	if g.cur.Term == nil {
		g.cur.NewBr(beginBlk)
	}
	g.cur = beginBlk

	leftObj, err := g.lowerExpr(e.Left)
	if err != nil {
		return nil, err
	}
	leftRaw := g.unboxBool(leftObj)

	moreBlk := fn.NewBlock("AndMore")
	endBlk := fn.NewBlock("AndEnd")
	g.cur.NewCondBr(leftRaw, moreBlk, endBlk)
	shortCircuitBlk := beginBlk

	g.cur = moreBlk
	rightObj, err := g.lowerExpr(e.Right)
	if err != nil {
		return nil, err
	}
	rightRaw := g.unboxBool(rightObj)
	moreEndBlk := g.cur
	moreEndBlk.NewBr(endBlk)

	g.cur = endBlk
	phi := g.cur.NewPhi(
		ir.NewIncoming(constant.NewInt(types.I1, 0), shortCircuitBlk),
		ir.NewIncoming(rightRaw, moreEndBlk),
	)
	return g.boxBool(phi), nil
}

// lowerLogicalOr short-circuits: OrBegin/OrElse/OrEnd.
func (g *Generator) lowerLogicalOr(e *hir.Expr) (value.Value, error) {
	fn := g.scope.fn
	beginBlk := fn.NewBlock("OrBegin")
	if g.cur.Term == nil {
		g.cur.NewBr(beginBlk)
	}
	g.cur = beginBlk

	leftObj, err := g.lowerExpr(e.Left)
	if err != nil {
		return nil, err
	}
	leftRaw := g.unboxBool(leftObj)

	elseBlk := fn.NewBlock("OrElse")
	endBlk := fn.NewBlock("OrEnd")
	g.cur.NewCondBr(leftRaw, endBlk, elseBlk)
	shortCircuitBlk := beginBlk

	g.cur = elseBlk
	rightObj, err := g.lowerExpr(e.Right)
	if err != nil {
		return nil, err
	}
	rightRaw := g.unboxBool(rightObj)
	elseEndBlk := g.cur
	elseEndBlk.NewBr(endBlk)

	g.cur = endBlk
	phi := g.cur.NewPhi(
		ir.NewIncoming(constant.NewInt(types.I1, 1), shortCircuitBlk),
		ir.NewIncoming(rightRaw, elseEndBlk),
	)
	return g.boxBool(phi), nil
}
