package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/aisk/shiika/internal/hir"
)

// lowerLambda builds the captures array, forward-declares and immediately
// compiles the lambda's own LLIR function, then wraps a type-erased pointer
// to it together with the captures array by calling Meta:Fn<k>#new — the
// same allocation path internal/stdlib registers for every other caller of
// that constructor, never a hand-rolled duplicate of it.
func (g *Generator) lowerLambda(e *hir.Expr) (value.Value, error) {
	if e.CapturesArray == nil || e.CapturesArray.Kind != hir.KindArray {
		return nil, programError("lambda %q captures must be an array literal", e.LambdaName)
	}
	capturesVal, err := g.lowerExpr(e.CapturesArray)
	if err != nil {
		return nil, err
	}

	var bodyTy *hir.Type = hir.Void
	if n := len(e.LambdaBody); n > 0 {
		bodyTy = e.LambdaBody[n-1].Ty
	}

	fnTy := g.lambdaFuncType(e.Params, bodyTy)
	params := make([]*ir.Param, len(fnTy.Params))
	for i, pt := range fnTy.Params {
		name := "captures"
		if i < len(e.Params) {
			name = e.Params[i].Name
		}
		params[i] = ir.NewParam(name, pt)
	}
	lambdaFn := g.module.NewFunc(e.LambdaName, fnTy.RetType, params...)

	if err := g.compileFunctionBody(lambdaFn, originLambda, e.Params, e.LambdaBody, g.scope.selfFullname); err != nil {
		return nil, err
	}

	// e.Params' last entry is the synthetic captures parameter (see
	// lambdaFuncType), so the lambda's own user-facing arity is one less
	// than len(e.Params); that arity names the Fn<k> wrapper class.
	arity := len(e.Params) - 1
	kClass := fmt.Sprintf("Fn%d", arity)
	metaFullname := hir.MetaName(kClass)

	newFn, ok := g.methods[hir.MethodFullname(metaFullname, "new")]
	if !ok {
		bug("%s not declared (internal/stdlib.Classes() missing from the program's classes?)", hir.MethodFullname(metaFullname, "new"))
	}

	glob := g.classConstant(kClass)
	selfMeta := g.cur.NewLoad(glob.ContentType, glob)
	fnPtrAsObj := g.cur.NewBitCast(lambdaFn, g.objectPtrType("Object"))

	return g.cur.NewCall(newFn, selfMeta, fnPtrAsObj, capturesVal), nil
}
