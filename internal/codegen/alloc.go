package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// fieldSize returns a rough, target-independent byte size for an LLIR type,
// enough to size a gc_malloc call. Aggregate sizes are the sum of their
// fields; no alignment padding is modeled.
func fieldSize(t types.Type) int64 {
	switch t := t.(type) {
	case *types.IntType:
		return int64((t.BitSize + 7) / 8)
	case *types.FloatType:
		if t.Kind == types.FloatKindDouble {
			return 8
		}
		return 4
	case *types.PointerType:
		return 8
	case *types.StructType:
		var sum int64
		for _, f := range t.Fields {
			sum += fieldSize(f)
		}
		return sum
	default:
		bug("fieldSize: unsupported type %v", t)
		return 0
	}
}

// structSize returns the byte size of fullname's object struct as an LLIR
// i64 constant, for the gc_malloc call size argument.
func (g *Generator) structSize(fullname string) *constant.Int {
	return constant.NewInt(types.I64, fieldSize(g.objectStructType(fullname)))
}

// allocateSkObj computes the struct size, calls the external allocator,
// bitcasts the raw pointer to the class's object-pointer type, and stores
// the class's metaclass constant into the header field.
//
// For a metaclass fullname (allocating a Class literal's runtime
// representation) there is no further "metaclass of the metaclass" in this
// two-level scheme, so the header is left null — see DESIGN.md.
func (g *Generator) allocateSkObj(fullname string) value.Value {
	raw := g.cur.NewCall(g.gcMalloc(), g.structSize(fullname))
	objPtr := g.cur.NewBitCast(raw, g.objectPtrType(fullname))

	header := g.cur.NewGetElementPtr(g.objectStructType(fullname), objPtr,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 0))

	isMeta := len(fullname) >= 5 && fullname[:5] == "Meta:"
	if isMeta {
		g.cur.NewStore(constant.NewNull(types.I8Ptr), header)
		return objPtr
	}

	glob := g.classConstant(fullname)
	metaPtr := g.cur.NewLoad(glob.ContentType, glob)
	metaHeader := g.cur.NewBitCast(metaPtr, types.I8Ptr)
	g.cur.NewStore(metaHeader, header)
	return objPtr
}

// classConstant returns the global slot backing "::<fullname>", the
// class-descriptor constant every non-meta class in the program gets
// (the generic top-level Constant mechanism, specialized for classes — see
// DESIGN.md). It panics if fullname wasn't registered as a class.
func (g *Generator) classConstant(fullname string) *ir.Global {
	g.classInfoOf(fullname)
	glob, ok := g.constants["::"+fullname]
	if !ok {
		bug("no class constant registered for %q", fullname)
	}
	return glob
}
