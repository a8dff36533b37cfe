package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// The functions in this file are the surface internal/stdlib builds its
// NativeBody implementations against. A native body runs with the cursor
// already pointed at its own entry block (see compileMethodBodies), so it
// can simply call these the same way expression lowering does.

// Block returns the block a NativeBody should currently be appending to.
func (g *Generator) Block() *ir.Block { return g.cur }

// SetBlock repositions the cursor, for a NativeBody that builds its own
// control flow (e.g. a bounds check).
func (g *Generator) SetBlock(b *ir.Block) { g.cur = b }

func (g *Generator) BoxBool(raw value.Value) value.Value  { return g.boxBool(raw) }
func (g *Generator) BoxInt(raw value.Value) value.Value   { return g.boxInt(raw) }
func (g *Generator) BoxFloat(raw value.Value) value.Value { return g.boxFloat(raw) }

func (g *Generator) UnboxBool(obj value.Value) value.Value  { return g.unboxBool(obj) }
func (g *Generator) UnboxInt(obj value.Value) value.Value   { return g.unboxInt(obj) }
func (g *Generator) UnboxFloat(obj value.Value) value.Value { return g.unboxFloat(obj) }

// AllocateObject runs the Object Allocator for classFullname at the current
// cursor.
func (g *Generator) AllocateObject(classFullname string) value.Value {
	return g.allocateSkObj(classFullname)
}

// ObjectStructType and ObjectPtrType expose the Type Mapper's per-class
// layout, for a NativeBody that reaches into ivars directly (Array#nth and
// friends).
func (g *Generator) ObjectStructType(classFullname string) *types.StructType {
	return g.objectStructType(classFullname)
}

func (g *Generator) ObjectPtrType(classFullname string) *types.PointerType {
	return g.objectPtrType(classFullname)
}

// IvarFieldIndex converts a logical ivar index (as used in a class's
// IvarLayout) to the physical LLIR struct field index.
func IvarFieldIndex(logicalIdx int) int { return ivarFieldIndex(logicalIdx) }

// ExternFunc declares (or returns the existing declaration for) a
// free-standing external function symbol, for a NativeBody that calls out
// to a libc helper.
func (g *Generator) ExternFunc(name string, retType types.Type, paramTypes ...types.Type) *ir.Func {
	return g.externFunc(name, retType, paramTypes...)
}

// ClassConstant returns the global slot backing a class's "::Fullname"
// descriptor constant.
func (g *Generator) ClassConstant(classFullname string) *ir.Global {
	return g.classConstant(classFullname)
}
