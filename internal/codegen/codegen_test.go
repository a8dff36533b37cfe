package codegen

import (
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/aisk/shiika/internal/hir"
)

// bootstrapClasses mirrors internal/stdlib.Classes() closely enough for
// structural tests that don't need the native method bodies themselves.
func bootstrapClasses() []hir.Class {
	return []hir.Class{
		{Fullname: "Object"},
		{Fullname: "Meta:Object"},
		{Fullname: "Void"},
		{Fullname: "Meta:Void"},
		{Fullname: "Bool", IvarLayout: []hir.IvarSlot{{Name: "@value", Ty: hir.Bool}}},
		{Fullname: "Meta:Bool"},
		{
			Fullname:   "Int",
			IvarLayout: []hir.IvarSlot{{Name: "@value", Ty: hir.Int}},
			Methods: []hir.Method{
				{Fullname: "Int#+", Name: "+", Params: []hir.Param{{Name: "other", Ty: hir.Int}}, RetTy: hir.Int},
			},
		},
		{Fullname: "Meta:Int"},
		{Fullname: "Float", IvarLayout: []hir.IvarSlot{{Name: "@value", Ty: hir.Float}}},
		{Fullname: "Meta:Float"},
		{Fullname: "String"},
		{Fullname: "Meta:String"},
		{Fullname: "Array"},
		{Fullname: "Meta:Array"},
		{Fullname: "Fn0"},
		{Fullname: "Meta:Fn0"},
		{Fullname: "Fn1"},
		{
			Fullname: "Meta:Fn1",
			Methods: []hir.Method{
				{
					Fullname: "Meta:Fn1#new", Name: "new",
					Params: []hir.Param{
						{Name: "fn", Ty: hir.Raw("Object")},
						{Name: "captures", Ty: hir.ArrayTy(hir.Raw("Object"))},
					},
					RetTy: hir.Raw("Fn1"),
				},
			},
		},
	}
}

// registerFn1New mirrors internal/stdlib's Meta:Fn1#new native body closely
// enough for a structural test: allocate an Fn1, store the type-erased
// function pointer and captures array into its two ivars.
func registerFn1New(g *Generator) {
	g.RegisterNative("Meta:Fn1#new", func(g *Generator, fn *ir.Func, entry *ir.Block) error {
		obj := g.allocateSkObj("Fn1")
		structTy := g.objectStructType("Fn1")

		fnPtrField := entry.NewGetElementPtr(structTy, obj,
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(0))))
		entry.NewStore(entry.NewBitCast(fn.Params[1], types.I8Ptr), fnPtrField)

		capturesField := entry.NewGetElementPtr(structTy, obj,
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(1))))
		entry.NewStore(fn.Params[2], capturesField)

		entry.NewRet(obj)
		return nil
	})
}

func TestGenerateModule_arithmeticCall(t *testing.T) {
	prog := &hir.Program{
		Classes: bootstrapClasses(),
		TopLevel: []hir.Expr{
			{
				Kind: hir.KindMethodCall, Ty: hir.Int, MethodFullname: "Int#+",
				Receiver: &hir.Expr{Kind: hir.KindInt, Ty: hir.Int, IntVal: 1},
				Args:     []hir.Expr{{Kind: hir.KindInt, Ty: hir.Int, IntVal: 2}},
			},
		},
	}

	gen := NewGenerator()
	mod, err := gen.GenerateModule(prog)
	if err != nil {
		t.Fatalf("GenerateModule failed: %v", err)
	}

	out := mod.String()
	if !strings.Contains(out, "define i32 @user_main(i32") {
		t.Errorf("expected a user_main(argc, argv) -> i32 definition, got:\n%s", out)
	}
	if !strings.Contains(out, "define i32 @main(i32") {
		t.Errorf("expected a @main forwarding to user_main, got:\n%s", out)
	}
	if !strings.Contains(out, "call i32 @user_main") {
		t.Errorf("expected @main to call user_main, got:\n%s", out)
	}
	if !strings.Contains(out, "declare") || !strings.Contains(out, "gc_malloc") {
		t.Errorf("expected a gc_malloc declaration, got:\n%s", out)
	}
}

func TestGenerateModule_ifWithElseBuildsPhi(t *testing.T) {
	prog := &hir.Program{
		Classes: bootstrapClasses(),
		TopLevel: []hir.Expr{
			{
				Kind: hir.KindIf, Ty: hir.Int, HasElse: true,
				Cond: &hir.Expr{Kind: hir.KindBool, Ty: hir.Bool, BoolVal: true},
				Then: []hir.Expr{{Kind: hir.KindInt, Ty: hir.Int, IntVal: 1}},
				Else: []hir.Expr{{Kind: hir.KindInt, Ty: hir.Int, IntVal: 2}},
			},
		},
	}

	gen := NewGenerator()
	mod, err := gen.GenerateModule(prog)
	if err != nil {
		t.Fatalf("GenerateModule failed: %v", err)
	}

	out := mod.String()
	for _, want := range []string{"IfThen", "IfElse", "IfEnd", "phi"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestGenerateModule_whileWithBreak(t *testing.T) {
	prog := &hir.Program{
		Classes: bootstrapClasses(),
		TopLevel: []hir.Expr{
			{
				Kind: hir.KindWhile, Ty: hir.Void,
				Cond: &hir.Expr{Kind: hir.KindBool, Ty: hir.Bool, BoolVal: true},
				Body: []hir.Expr{{Kind: hir.KindBreak}},
			},
		},
	}

	gen := NewGenerator()
	mod, err := gen.GenerateModule(prog)
	if err != nil {
		t.Fatalf("GenerateModule failed: %v", err)
	}

	out := mod.String()
	for _, want := range []string{"WhileBegin", "WhileBody", "WhileEnd"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestGenerateModule_breakOutsideLoopIsProgramError(t *testing.T) {
	prog := &hir.Program{
		Classes:  bootstrapClasses(),
		TopLevel: []hir.Expr{{Kind: hir.KindBreak}},
	}

	gen := NewGenerator()
	_, err := gen.GenerateModule(prog)
	if err == nil {
		t.Fatal("expected a ProgramError, got nil")
	}
	if _, ok := err.(*ProgramError); !ok {
		t.Errorf("expected *ProgramError, got %T: %v", err, err)
	}
}

func TestGenerateModule_logicalAndOr(t *testing.T) {
	prog := &hir.Program{
		Classes: bootstrapClasses(),
		TopLevel: []hir.Expr{
			{
				Kind: hir.KindLogicalAnd, Ty: hir.Bool,
				Left:  &hir.Expr{Kind: hir.KindBool, Ty: hir.Bool, BoolVal: true},
				Right: &hir.Expr{Kind: hir.KindBool, Ty: hir.Bool, BoolVal: false},
			},
			{
				Kind: hir.KindLogicalOr, Ty: hir.Bool,
				Left:  &hir.Expr{Kind: hir.KindBool, Ty: hir.Bool, BoolVal: true},
				Right: &hir.Expr{Kind: hir.KindBool, Ty: hir.Bool, BoolVal: false},
			},
		},
	}

	gen := NewGenerator()
	mod, err := gen.GenerateModule(prog)
	if err != nil {
		t.Fatalf("GenerateModule failed: %v", err)
	}

	out := mod.String()
	for _, want := range []string{"AndBegin", "AndMore", "AndEnd", "OrBegin", "OrElse", "OrEnd"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestGenerateModule_arrayLiteral(t *testing.T) {
	prog := &hir.Program{
		Classes: bootstrapClasses(),
		TopLevel: []hir.Expr{
			{
				Kind: hir.KindArray, Ty: hir.ArrayTy(hir.Raw("Object")),
				Items: []hir.Expr{{Kind: hir.KindInt, Ty: hir.Int, IntVal: 42}},
			},
		},
	}

	gen := NewGenerator()
	mod, err := gen.GenerateModule(prog)
	if err != nil {
		t.Fatalf("GenerateModule failed: %v", err)
	}

	out := mod.String()
	if !strings.Contains(out, "malloc") {
		t.Errorf("expected the array literal to allocate its buffer, got:\n%s", out)
	}
}

// TestGenerateModule_lambdaBuildAndCall builds f = fn(x){ x + captured }
// with captured = 7 folded into its captures array, then calls f(3)
// end-to-end, exercising both lowerLambda's Meta:Fn1#new call and
// lowerFnCall's indirect invocation through the stored function pointer.
func TestGenerateModule_lambdaBuildAndCall(t *testing.T) {
	lambdaBody := []hir.Expr{
		{
			Kind: hir.KindMethodCall, Ty: hir.Int, MethodFullname: "Int#+",
			Receiver: &hir.Expr{Kind: hir.KindArgRef, Ty: hir.Int, ArgIdx: 0},
			Args:     []hir.Expr{{Kind: hir.KindLambdaCaptureRef, Ty: hir.Int, ArgIdx: 0}},
		},
	}
	lambdaExpr := hir.Expr{
		Kind: hir.KindLambda, Ty: hir.Raw("Fn1"), LambdaName: "lambda_0",
		Params: []hir.Param{
			{Name: "x", Ty: hir.Int},
			{Name: "captures", Ty: hir.ArrayTy(hir.Raw("Object"))},
		},
		LambdaBody: lambdaBody,
		CapturesArray: &hir.Expr{
			Kind: hir.KindArray, Ty: hir.ArrayTy(hir.Raw("Object")),
			Items: []hir.Expr{
				{Kind: hir.KindSelf, Ty: hir.Raw("Object")},
				{Kind: hir.KindInt, Ty: hir.Int, IntVal: 7},
			},
		},
	}

	prog := &hir.Program{
		Classes: bootstrapClasses(),
		TopLevel: []hir.Expr{
			{Kind: hir.KindLVarAssign, Ty: hir.Raw("Fn1"), Name: "f", RHS: &lambdaExpr},
			{
				Kind: hir.KindMethodCall, Ty: hir.Int, MethodFullname: "Fn1#call",
				Receiver: &hir.Expr{Kind: hir.KindLVarRef, Ty: hir.Raw("Fn1"), Name: "f"},
				Args:     []hir.Expr{{Kind: hir.KindInt, Ty: hir.Int, IntVal: 3}},
			},
		},
	}

	gen := NewGenerator()
	registerFn1New(gen)
	mod, err := gen.GenerateModule(prog)
	if err != nil {
		t.Fatalf("GenerateModule failed: %v", err)
	}

	out := mod.String()
	if !strings.Contains(out, "define") || !strings.Contains(out, "@lambda_0") {
		t.Errorf("expected the lambda's own function to be defined, got:\n%s", out)
	}
	if !strings.Contains(out, "@\"Meta:Fn1#new\"") && !strings.Contains(out, "@Meta:Fn1#new") {
		t.Errorf("expected lowerLambda to call Meta:Fn1#new, got:\n%s", out)
	}
	if !strings.Contains(out, "bitcast") {
		t.Errorf("expected lowerFnCall to bitcast the stored code pointer before calling it, got:\n%s", out)
	}
}

// TestGenerateModule_voidMethodCall exercises a top-level call to a
// void-returning method: lowering succeeds and the call is emitted as a
// void LLVM call (lowerMethodCall hands back the Void singleton in place of
// its unusable result).
func TestGenerateModule_voidMethodCall(t *testing.T) {
	classes := bootstrapClasses()
	for i := range classes {
		if classes[i].Fullname == "Object" {
			classes[i].Methods = append(classes[i].Methods,
				hir.Method{Fullname: "Object#ping", Name: "ping", RetTy: hir.Void})
		}
	}

	prog := &hir.Program{
		Classes: classes,
		TopLevel: []hir.Expr{
			{
				Kind: hir.KindMethodCall, Ty: hir.Void, MethodFullname: "Object#ping",
				Receiver: &hir.Expr{Kind: hir.KindSelf, Ty: hir.Raw("Object")},
			},
		},
	}

	gen := NewGenerator()
	mod, err := gen.GenerateModule(prog)
	if err != nil {
		t.Fatalf("GenerateModule failed: %v", err)
	}

	out := mod.String()
	if !strings.Contains(out, "call void @\"Object#ping\"") && !strings.Contains(out, "call void @Object#ping") {
		t.Errorf("expected a void call to Object#ping, got:\n%s", out)
	}
}

func TestGenerateModule_classConstantsBootstrapped(t *testing.T) {
	prog := &hir.Program{Classes: bootstrapClasses()}

	gen := NewGenerator()
	mod, err := gen.GenerateModule(prog)
	if err != nil {
		t.Fatalf("GenerateModule failed: %v", err)
	}

	out := mod.String()
	if !strings.Contains(out, "::Int") {
		t.Errorf("expected a ::Int class constant global, got:\n%s", out)
	}
}
