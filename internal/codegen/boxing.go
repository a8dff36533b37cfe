package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// primitiveIvar is the logical ivar index holding the raw machine value
// inside Bool/Int/Float's one-slot layout (ivar 0 of each, per the bootstrap
// classes internal/stdlib registers).
const primitiveIvar = 0

// boxPrimitive allocates an instance of className and stores raw into its
// single ivar slot: wrapping a raw machine value into a heap object of the
// corresponding class.
func (g *Generator) boxPrimitive(className string, raw value.Value) value.Value {
	obj := g.allocateSkObj(className)
	slot := g.cur.NewGetElementPtr(g.objectStructType(className), obj,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(primitiveIvar))))
	g.cur.NewStore(raw, slot)
	return obj
}

// unboxPrimitive loads the raw machine value out of a boxed Bool/Int/Float.
func (g *Generator) unboxPrimitive(className string, obj value.Value, raw types.Type) value.Value {
	slot := g.cur.NewGetElementPtr(g.objectStructType(className), obj,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(primitiveIvar))))
	return g.cur.NewLoad(raw, slot)
}

func (g *Generator) boxBool(raw value.Value) value.Value  { return g.boxPrimitive("Bool", raw) }
func (g *Generator) boxInt(raw value.Value) value.Value   { return g.boxPrimitive("Int", raw) }
func (g *Generator) boxFloat(raw value.Value) value.Value { return g.boxPrimitive("Float", raw) }

func (g *Generator) unboxBool(obj value.Value) value.Value  { return g.unboxPrimitive("Bool", obj, types.I1) }
func (g *Generator) unboxInt(obj value.Value) value.Value   { return g.unboxPrimitive("Int", obj, types.I32) }
func (g *Generator) unboxFloat(obj value.Value) value.Value { return g.unboxPrimitive("Float", obj, types.Double) }
