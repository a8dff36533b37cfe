package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/aisk/shiika/internal/hir"
)

// lowerMethodCall lowers the receiver and each argument in order, then
// calls the method's already-declared LLIR function: every function is
// declared before any body is compiled, so the callee is always resolvable
// here regardless of definition order. Calling a lambda value ("Fn<k>#call")
// has no such declared function to look up — lowerFnCall handles it
// separately.
func (g *Generator) lowerMethodCall(e *hir.Expr) (value.Value, error) {
	if arity, ok := fnCallArity(e.MethodFullname); ok {
		return g.lowerFnCall(e, arity)
	}

	recv, err := g.lowerExpr(e.Receiver)
	if err != nil {
		return nil, err
	}

	fn, ok := g.methods[e.MethodFullname]
	if !ok {
		return nil, programError("call to undeclared method %q", e.MethodFullname)
	}

	args := make([]value.Value, 0, len(e.Args)+1)
	args = append(args, recv)
	for i := range e.Args {
		v, err := g.lowerExpr(&e.Args[i])
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	call := g.cur.NewCall(fn, args...)
	if e.Ty.IsVoid() {
		return g.voidInstance(), nil
	}
	return call, nil
}

// fnCallArity reports the arity k if methodFullname names a lambda
// invocation ("Fn<k>#call"), for k in 0..3 — the only method on Fn<k> with
// no single fixed signature, since the same wrapper class stores lambdas
// whose real body return type varies from one literal to the next (see
// DESIGN.md's lambda-return-type decision), so it can't be declared once as
// an ordinary LLIR function the way Meta:Fn<k>#new is.
func fnCallArity(methodFullname string) (int, bool) {
	for k := 0; k <= 3; k++ {
		if methodFullname == fmt.Sprintf("Fn%d#call", k) {
			return k, true
		}
	}
	return 0, false
}

// lowerFnCall invokes a boxed lambda: load the raw code pointer and
// captures array back out of the Fn<k> receiver's ivars, bitcast the code
// pointer to a lambda function type (every argument Object*, then the
// captures array, returning the call's own result type — the shape
// lambdaFuncType gave the originating literal), bitcast each argument to
// Object*, and call through it directly. There is no declared "Fn<k>#call" LLIR function
// anywhere for this to dispatch to — the call is always built inline at
// the use site.
func (g *Generator) lowerFnCall(e *hir.Expr, arity int) (value.Value, error) {
	recv, err := g.lowerExpr(e.Receiver)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, 0, len(e.Args))
	for i := range e.Args {
		v, err := g.lowerExpr(&e.Args[i])
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	if len(args) != arity {
		bug("Fn%d#call: got %d args, want %d", arity, len(args), arity)
	}

	kClass := fmt.Sprintf("Fn%d", arity)
	structTy := g.objectStructType(kClass)

	fnPtrField := g.cur.NewGetElementPtr(structTy, recv,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(0))))
	rawFnPtr := g.cur.NewLoad(types.I8Ptr, fnPtrField)

	arrPtrTy := types.NewPointer(g.objectStructType("Array"))
	capturesField := g.cur.NewGetElementPtr(structTy, recv,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(ivarFieldIndex(1))))
	capturesArr := g.cur.NewLoad(arrPtrTy, capturesField)

	objPtr := g.objectPtrType("Object")
	paramTys := make([]types.Type, 0, arity+1)
	for range args {
		paramTys = append(paramTys, objPtr)
	}
	paramTys = append(paramTys, arrPtrTy)
	fnTy := types.NewFunc(g.llvmType(e.Ty), paramTys...)
	fnPtr := g.cur.NewBitCast(rawFnPtr, types.NewPointer(fnTy))

	callArgs := make([]value.Value, 0, arity+1)
	for _, a := range args {
		if !types.Equal(a.Type(), objPtr) {
			a = g.cur.NewBitCast(a, objPtr)
		}
		callArgs = append(callArgs, a)
	}
	callArgs = append(callArgs, capturesArr)

	call := g.cur.NewCall(fnPtr, callArgs...)
	if e.Ty.IsVoid() {
		return g.voidInstance(), nil
	}
	return call, nil
}

func (g *Generator) lowerBitCast(e *hir.Expr) (value.Value, error) {
	v, err := g.lowerExpr(e.Target)
	if err != nil {
		return nil, err
	}
	return g.cur.NewBitCast(v, g.llvmType(e.Ty)), nil
}
