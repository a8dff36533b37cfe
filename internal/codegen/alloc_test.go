package codegen

import (
	"strings"
	"testing"

	"github.com/llir/llvm/ir/types"
)

func TestFieldSize_primitivesAndPointers(t *testing.T) {
	cases := []struct {
		ty   types.Type
		want int64
	}{
		{types.I1, 1},
		{types.I32, 4},
		{types.I64, 8},
		{types.Double, 8},
		{types.I8Ptr, 8},
	}
	for _, c := range cases {
		if got := fieldSize(c.ty); got != c.want {
			t.Errorf("fieldSize(%v) = %d, want %d", c.ty, got, c.want)
		}
	}
}

func TestFieldSize_structSumsItsFields(t *testing.T) {
	st := &types.StructType{Fields: []types.Type{types.I8Ptr, types.I32, types.Double}}
	if got, want := fieldSize(st), int64(8+4+8); got != want {
		t.Errorf("fieldSize(struct) = %d, want %d", got, want)
	}
}

func TestStructSize_matchesClassLayout(t *testing.T) {
	g := newTestGenerator(bootstrapClasses())
	// Int: header (i8*, 8) + @value (i32, 4) = 12.
	got := g.structSize("Int")
	if got.X.Int64() != 12 {
		t.Errorf("structSize(Int) = %d, want 12", got.X.Int64())
	}
}

func TestAllocateSkObj_loadsClassConstantIntoHeader(t *testing.T) {
	g, fn, block := openTestFunc(t)

	obj := g.allocateSkObj("Int")
	if !types.Equal(obj.Type(), g.objectPtrType("Int")) {
		t.Fatalf("allocateSkObj(Int) type = %v, want Int*", obj.Type())
	}
	block.NewRet(nil)

	out := fn.LLString()
	if !strings.Contains(out, "::Int") {
		t.Errorf("expected the header store to reference the ::Int class constant, got:\n%s", out)
	}
}

func TestAllocateSkObj_metaclassGetsNullHeader(t *testing.T) {
	g, fn, block := openTestFunc(t)

	obj := g.allocateSkObj("Meta:Int")
	if !types.Equal(obj.Type(), g.objectPtrType("Meta:Int")) {
		t.Fatalf("allocateSkObj(Meta:Int) type = %v, want Meta:Int*", obj.Type())
	}
	block.NewRet(nil)

	out := fn.LLString()
	if !strings.Contains(out, "null") {
		t.Errorf("expected a null header store for a metaclass allocation, got:\n%s", out)
	}
	if strings.Contains(out, "::Meta:Int") {
		t.Errorf("a metaclass allocation must not look up its own class constant, got:\n%s", out)
	}
}

func TestClassConstant_panicsForUnregisteredClass(t *testing.T) {
	g := newTestGenerator(bootstrapClasses())

	defer func() {
		if recover() == nil {
			t.Fatal("expected classConstant to panic for an unregistered class")
		}
	}()
	g.classConstant("NoSuchClass")
}
