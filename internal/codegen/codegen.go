// Package codegen lowers a typed, desugared HIR program (package
// github.com/aisk/shiika/internal/hir) into an LLIR module, using
// github.com/llir/llvm as the IR builder: type mapping, boxing, object
// allocation, the class symbol table, expression lowering, method
// compilation, and module assembly.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/aisk/shiika/internal/hir"
)

// NativeBody is the hook internal/stdlib uses to supply a method's LLIR
// body directly (by emitting instructions into entry) instead of lowering
// an HIR tree, for methods the HIR never fully desugars down to (arithmetic
// primitives, Array#nth, String#bytesize — symbols assumed to be supplied
// by the runtime rather than compiled from a body). The generator itself
// never calls into internal/stdlib; it only runs whatever NativeBody was
// registered under a method's fullname, so there is no import cycle.
type NativeBody func(g *Generator, fn *ir.Func, entry *ir.Block) error

// Generator holds all mutable state threaded through the C1-C7 components
// while building one LLIR module from one HIR program. The zero value is
// not usable; construct with NewGenerator.
type Generator struct {
	module *ir.Module

	classes   map[string]*classInfo
	constants map[string]*ir.Global // "::Fullname" -> global slot
	externs   map[string]*ir.Func
	methods   map[string]*ir.Func // method fullname -> declared function
	natives   map[string]NativeBody

	strGlobals []*ir.Global // string_pool index -> str_<i> global

	// cur is the mutable cursor: the basic block instructions are currently
	// being appended to.
	cur *ir.Block

	// scope is the per-function context of the method or lambda currently
	// being lowered; nil while building the module-level bootstrap.
	scope *funcScope

	// theMain is the cached main object, allocated once in user_main's
	// prologue and returned by every bare `self` reference seen while
	// origin == originTopLevel.
	theMain value.Value

	// theVoid is the one Void instance a void-returning call hands back in
	// place of an unusable LLVM void value, allocated once in user_main's
	// prologue.
	theVoid value.Value

	nativeAllocator bool
}

// Option configures a Generator at construction time.
type Option func(*Generator)

// WithNativeAllocator attaches a malloc-backed definition to the gc_malloc
// declaration instead of leaving it as a bare external symbol, so the
// emitted module links and runs standalone (used by cmd/shiika-run; by
// default gc_malloc is left as a bare declaration, to be supplied by
// whatever runtime links the module).
func WithNativeAllocator() Option {
	return func(g *Generator) { g.nativeAllocator = true }
}

// NewGenerator constructs an empty Generator ready for GenerateModule.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		classes:   make(map[string]*classInfo),
		constants: make(map[string]*ir.Global),
		externs:   make(map[string]*ir.Func),
		methods:   make(map[string]*ir.Func),
		natives:   make(map[string]NativeBody),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RegisterNative registers a native LLIR body for methodFullname, to be
// used instead of lowering an HIR tree when the Method Compiler reaches a
// method whose Body is nil. Called by internal/stdlib during bootstrap,
// before GenerateModule.
func (g *Generator) RegisterNative(methodFullname string, body NativeBody) {
	g.natives[methodFullname] = body
}

// GenerateModule assembles the final LLIR module: declare everything (class
// layouts, string pool, class constants, user constants, method signatures),
// then define everything (the native allocator if requested, every method
// body, user_main). prog.Classes is expected to already include the stdlib
// bootstrap classes (internal/stdlib.Classes()) merged ahead of the user's
// own — GenerateModule itself has no stdlib-specific knowledge.
func (g *Generator) GenerateModule(prog *hir.Program) (_ *ir.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			if msg, ok := r.(string); ok {
				panic(msg) // compiler bugs are never recovered, only re-panicked here
			}
			panic(r)
		}
	}()

	g.module = ir.NewModule()

	g.registerClasses(prog.Classes)
	g.layoutClasses()

	g.declareStringPool(prog.StringPool)
	g.declareClassConstants(prog.Classes)
	for i := range prog.Constants {
		g.declareConstant(&prog.Constants[i])
	}
	g.declareMethods(prog.Classes)

	if g.nativeAllocator {
		g.defineNativeAllocator()
	}

	if err := g.compileMethodBodies(prog.Classes); err != nil {
		return nil, err
	}

	if err := g.compileUserMain(prog); err != nil {
		return nil, err
	}

	return g.module, nil
}

// declareStringPool emits one module global per pooled string literal:
// "str_<i>" globals of type [N x i8], one per entry in the program's
// deduplicated string pool.
func (g *Generator) declareStringPool(pool []string) {
	g.strGlobals = make([]*ir.Global, len(pool))
	for i, s := range pool {
		data := constant.NewCharArrayFromString(s + "\x00")
		g.strGlobals[i] = g.module.NewGlobalDef(fmt.Sprintf("str_%d", i), data)
	}
}

// declareClassConstants gives every non-meta class a "::Fullname" global
// slot holding a pointer to its class-descriptor object (null until
// user_main's prologue allocates and stores it) —
// see DESIGN.md's resolution of the Class/metaclass constant mechanism.
func (g *Generator) declareClassConstants(classes []hir.Class) {
	for i := range classes {
		c := &classes[i]
		if c.IsMeta() {
			continue
		}
		metaPtrTy := g.objectPtrType(hir.MetaName(c.Fullname))
		glob := g.module.NewGlobalDef("::"+c.Fullname, constant.NewNull(metaPtrTy))
		g.constants["::"+c.Fullname] = glob
	}
}

// declareConstant gives a user-level `::name` constant its global slot. The
// initializer itself is run at user_main's prologue, so the global starts
// out null, typed to the constant's resolved type.
func (g *Generator) declareConstant(c *hir.Constant) {
	ty := g.llvmType(c.Init.Ty)
	glob := g.module.NewGlobalDef(c.Fullname, zeroValue(ty))
	g.constants[c.Fullname] = glob
}

func zeroValue(t types.Type) constant.Constant {
	switch t := t.(type) {
	case *types.IntType:
		return constant.NewInt(t, 0)
	case *types.FloatType:
		return constant.NewFloat(t, 0)
	case *types.PointerType:
		return constant.NewNull(t)
	default:
		bug("zeroValue: unsupported type %v", t)
		return nil
	}
}

// declareMethods declares the LLIR function signature for every method of
// every class, user-defined or stdlib, before any method body is compiled —
// so a method can call another method declared later in the same class list,
// or one on a class declared later in prog.Classes.
func (g *Generator) declareMethods(classes []hir.Class) {
	for i := range classes {
		c := &classes[i]
		for j := range c.Methods {
			m := &c.Methods[j]
			fnTy := g.methodFuncType(c.Fullname, m)
			params := make([]*ir.Param, len(fnTy.Params))
			params[0] = ir.NewParam("self", fnTy.Params[0])
			for k, p := range m.Params {
				params[k+1] = ir.NewParam(p.Name, fnTy.Params[k+1])
			}
			fn := g.module.NewFunc(llvmMethodName(m.Fullname), fnTy.RetType, params...)
			g.methods[m.Fullname] = fn
		}
	}
}

// llvmMethodName turns a HIR method fullname into a valid LLIR global
// identifier; llir/llvm quotes names containing special characters itself,
// so this is purely cosmetic stability, not a correctness requirement.
func llvmMethodName(fullname string) string { return fullname }
