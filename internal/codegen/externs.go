package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// externFunc returns the module-level declaration for a plain (non-method)
// external function symbol, declaring it on first use: the allocator, and
// whatever libc helper the native stdlib bootstrap needs.
func (g *Generator) externFunc(name string, retType types.Type, paramTypes ...types.Type) *ir.Func {
	if fn, ok := g.externs[name]; ok {
		return fn
	}
	params := make([]*ir.Param, len(paramTypes))
	for i, t := range paramTypes {
		params[i] = ir.NewParam("", t)
	}
	fn := g.module.NewFunc(name, retType, params...)
	g.externs[name] = fn
	return fn
}

// gcMalloc is the assumed runtime allocator, gc_malloc(size) -> i8*. By
// default the core only declares it; with WithNativeAllocator,
// defineNativeAllocator gives it a body for standalone builds.
func (g *Generator) gcMalloc() *ir.Func {
	return g.externFunc("gc_malloc", types.I8Ptr, types.I64)
}

// libcMalloc backs the optional native gc_malloc body that
// defineNativeAllocator emits; nothing else calls it.
func (g *Generator) libcMalloc() *ir.Func {
	return g.externFunc("malloc", types.I8Ptr, types.I64)
}

// defineNativeAllocator turns the gc_malloc declaration into a definition
// that forwards straight to libc malloc, so a module built with
// WithNativeAllocator links and runs without a separate runtime library.
func (g *Generator) defineNativeAllocator() {
	fn := g.gcMalloc()
	if len(fn.Blocks) > 0 {
		return
	}
	entry := fn.NewBlock("entry")
	call := entry.NewCall(g.libcMalloc(), fn.Params[0])
	entry.NewRet(call)
}
