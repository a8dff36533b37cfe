package validator

import (
	"testing"

	"github.com/aisk/shiika/internal/hir"
)

func TestValidateProgram_clean(t *testing.T) {
	prog := &hir.Program{
		Classes: []hir.Class{
			{
				Fullname:   "Counter",
				IvarLayout: []hir.IvarSlot{{Name: "@n", Ty: hir.Int}},
				Methods: []hir.Method{
					{
						Fullname: "Counter#bump",
						Name:     "bump",
						RetTy:    hir.Void,
						Body: []hir.Expr{
							{Kind: hir.KindIVarAssign, Ty: hir.Int, IvarIdx: 0,
								RHS: &hir.Expr{Kind: hir.KindIVarRef, Ty: hir.Int, IvarIdx: 0}},
						},
					},
				},
			},
		},
		TopLevel: []hir.Expr{
			{Kind: hir.KindInt, Ty: hir.Int, IntVal: 1},
		},
	}

	errs := ValidateProgram(prog)
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateProgram_ivarOutOfRange(t *testing.T) {
	prog := &hir.Program{
		Classes: []hir.Class{
			{
				Fullname: "Counter",
				Methods: []hir.Method{
					{
						Fullname: "Counter#bump",
						Body: []hir.Expr{
							{Kind: hir.KindIVarRef, Ty: hir.Int, IvarIdx: 3},
						},
					},
				},
			},
		},
	}

	errs := ValidateProgram(prog)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
}

func TestValidateProgram_breakOutsideLoop(t *testing.T) {
	prog := &hir.Program{
		TopLevel: []hir.Expr{
			{Kind: hir.KindBreak},
		},
	}

	errs := ValidateProgram(prog)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
}

func TestValidateProgram_breakInsideWhileOK(t *testing.T) {
	prog := &hir.Program{
		TopLevel: []hir.Expr{
			{
				Kind: hir.KindWhile,
				Ty:   hir.Void,
				Cond: &hir.Expr{Kind: hir.KindBool, Ty: hir.Bool, BoolVal: true},
				Body: []hir.Expr{{Kind: hir.KindBreak}},
			},
		},
	}

	errs := ValidateProgram(prog)
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateProgram_lambdaCapturesMustBeArray(t *testing.T) {
	prog := &hir.Program{
		TopLevel: []hir.Expr{
			{
				Kind:          hir.KindLambda,
				LambdaName:    "lambda_0",
				CapturesArray: &hir.Expr{Kind: hir.KindInt, Ty: hir.Int},
			},
		},
	}

	errs := ValidateProgram(prog)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
}
