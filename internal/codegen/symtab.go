package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/aisk/shiika/internal/hir"
)

// functionOrigin distinguishes the three kinds of LLIR function bodies
// expression lowering can be running inside of — it changes how ArgRef,
// SelfExpr and the captures-array lookup behave.
type functionOrigin int

const (
	originMethod functionOrigin = iota
	originLambda
	originTopLevel
)

// funcScope is the per-function state pushed before lowering a body and
// popped afterward: a stack-like per-function context of local variables,
// the current loop-end target, the function's origin, and its HIR params.
type funcScope struct {
	fn           *ir.Func
	lvars        map[string]value.Value // name -> alloca'd slot, insertion order not semantically relevant
	loopEnds     []*ir.Block            // stack of current_loop_end; Break targets the top
	origin       functionOrigin
	params       []hir.Param // the HIR parameter list (excludes self for methods; full list, including the captures slot, for lambdas)
	selfFullname string      // class fullname of self: the method's receiver, "Object" at top level, or the enclosing scope's for a lambda
}

func newFuncScope(fn *ir.Func, origin functionOrigin, params []hir.Param, selfFullname string) *funcScope {
	return &funcScope{
		fn:           fn,
		lvars:        make(map[string]value.Value),
		origin:       origin,
		params:       params,
		selfFullname: selfFullname,
	}
}

// lookupLVar returns the alloca for name, or nil if none has been allocated
// yet on this path.
func (s *funcScope) lookupLVar(name string) value.Value {
	return s.lvars[name]
}

func (s *funcScope) declareLVar(name string, slot value.Value) {
	s.lvars[name] = slot
}

func (s *funcScope) pushLoopEnd(b *ir.Block) {
	s.loopEnds = append(s.loopEnds, b)
}

func (s *funcScope) popLoopEnd() {
	s.loopEnds = s.loopEnds[:len(s.loopEnds)-1]
}

// currentLoopEnd returns the innermost live loop's end block, or nil if
// Break would be a program error: a stack of basic-block handles, Break
// always reading the top.
func (s *funcScope) currentLoopEnd() *ir.Block {
	if len(s.loopEnds) == 0 {
		return nil
	}
	return s.loopEnds[len(s.loopEnds)-1]
}

// classInfo is the Symbol Table's per-class registry entry (C4): the LLIR
// struct type, its pointer type, and the ivar-name/index to physical
// struct-field-index mapping (offset by one for the class-pointer header —
// see DESIGN.md).
type classInfo struct {
	class    *hir.Class
	structTy *types.StructType
	ptrTy    *types.PointerType
	ivarIdx  map[string]int // ivar name -> logical index into IvarLayout
}

// ivarFieldIndex returns the physical LLIR struct field index for logical
// ivar index idx (the class-pointer header occupies physical field 0).
func ivarFieldIndex(idx int) int { return idx + 1 }
