package stdlib_test

import (
	"strings"
	"testing"

	"github.com/aisk/shiika/internal/codegen"
	"github.com/aisk/shiika/internal/hir"
	"github.com/aisk/shiika/internal/stdlib"
)

// generate runs Classes()+Register() through a bare GenerateModule, with no
// user code beyond the bootstrap classes themselves, and returns the
// resulting LLVM IR text.
func generate(t *testing.T) string {
	t.Helper()
	gen := codegen.NewGenerator()
	stdlib.Register(gen)

	mod, err := gen.GenerateModule(&hir.Program{Classes: stdlib.Classes()})
	if err != nil {
		t.Fatalf("GenerateModule failed: %v", err)
	}
	return mod.String()
}

func TestRegister_intArithmeticGetsRealBodies(t *testing.T) {
	out := generate(t)
	if !strings.Contains(out, "Int#+") {
		t.Errorf("expected an Int#+ function, got:\n%s", out)
	}
	if strings.Count(out, "add i32") < 1 {
		t.Errorf("expected Int#+'s body to contain an i32 add, got:\n%s", out)
	}
}

func TestRegister_intComparisonReturnsBool(t *testing.T) {
	out := generate(t)
	if !strings.Contains(out, "icmp slt") {
		t.Errorf("expected Int#< to lower to icmp slt, got:\n%s", out)
	}
	if !strings.Contains(out, "icmp eq") {
		t.Errorf("expected Int#== to lower to icmp eq, got:\n%s", out)
	}
}

func TestRegister_floatArithmeticAndConversions(t *testing.T) {
	out := generate(t)
	if !strings.Contains(out, "fadd") {
		t.Errorf("expected Float#+ to lower to fadd, got:\n%s", out)
	}
	if !strings.Contains(out, "fcmp olt") {
		t.Errorf("expected Float#< to lower to fcmp olt, got:\n%s", out)
	}
	if !strings.Contains(out, "sitofp") {
		t.Errorf("expected Int#to_f to lower to sitofp, got:\n%s", out)
	}
	if !strings.Contains(out, "fptosi") {
		t.Errorf("expected Float#to_i to lower to fptosi, got:\n%s", out)
	}
}

func TestRegister_arrayAndStringNatives(t *testing.T) {
	out := generate(t)
	if !strings.Contains(out, "Array#nth") {
		t.Errorf("expected Array#nth to be declared/defined, got:\n%s", out)
	}
	if !strings.Contains(out, "String#bytesize") {
		t.Errorf("expected String#bytesize to be declared/defined, got:\n%s", out)
	}
}

func TestClasses_includesAllFourFnArities(t *testing.T) {
	classes := stdlib.Classes()
	want := map[string]bool{"Fn0": false, "Fn1": false, "Fn2": false, "Fn3": false}
	for _, c := range classes {
		if _, ok := want[c.Fullname]; ok {
			want[c.Fullname] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Classes() is missing %s", name)
		}
	}
}
