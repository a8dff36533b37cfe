package codegen

import (
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// openTestFunc builds a Generator with the bootstrap classes laid out and
// their class constants declared, plus one open function+block to emit
// into — enough scaffolding for boxing/allocation helpers that assume a
// live g.cur.
func openTestFunc(t *testing.T) (*Generator, *ir.Func, *ir.Block) {
	t.Helper()
	g := NewGenerator()
	g.module = ir.NewModule()
	g.registerClasses(bootstrapClasses())
	g.layoutClasses()
	g.declareClassConstants(bootstrapClasses())

	fn := g.module.NewFunc("test_fn", types.Void)
	block := fn.NewBlock("entry")
	g.cur = block
	return g, fn, block
}

func TestBoxInt_roundTripsThroughUnbox(t *testing.T) {
	g, fn, block := openTestFunc(t)

	raw := constant.NewInt(types.I32, 42)
	boxed := g.boxInt(raw)
	if !types.Equal(boxed.Type(), g.objectPtrType("Int")) {
		t.Fatalf("boxInt result type = %v, want Int*", boxed.Type())
	}

	unboxed := g.unboxInt(boxed)
	if !types.Equal(unboxed.Type(), types.I32) {
		t.Fatalf("unboxInt result type = %v, want i32", unboxed.Type())
	}
	block.NewRet(nil)

	out := fn.LLString()
	if !strings.Contains(out, "gc_malloc") {
		t.Errorf("expected boxInt to allocate via gc_malloc, got:\n%s", out)
	}
	if strings.Count(out, "getelementptr") < 2 {
		t.Errorf("expected box+unbox to each GEP into the ivar slot, got:\n%s", out)
	}
}

func TestBoxBool_andBoxFloat_useTheirOwnClass(t *testing.T) {
	g, _, _ := openTestFunc(t)

	boxedBool := g.boxBool(constant.NewInt(types.I1, 1))
	if !types.Equal(boxedBool.Type(), g.objectPtrType("Bool")) {
		t.Errorf("boxBool result type = %v, want Bool*", boxedBool.Type())
	}

	boxedFloat := g.boxFloat(constant.NewFloat(types.Double, 1.5))
	if !types.Equal(boxedFloat.Type(), g.objectPtrType("Float")) {
		t.Errorf("boxFloat result type = %v, want Float*", boxedFloat.Type())
	}
}
