package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/aisk/shiika/internal/hir"
)

// compileUserMain assembles the module's entry point: allocate the cached
// main object, bootstrap every class's descriptor constant, run user
// constant initializers in order, then lower the top-level statement
// sequence. user_main takes the standard C (argc, argv) pair — unused by
// the program itself, but there for a native C main (or clang's own libc
// startup) to forward straight through — and returns the process exit code
// as an i32, 0 on the implicit fall-through path.
func (g *Generator) compileUserMain(prog *hir.Program) error {
	argc := ir.NewParam("argc", types.I32)
	argv := ir.NewParam("argv", types.NewPointer(types.I8Ptr))
	mainFn := g.module.NewFunc("user_main", types.I32, argc, argv)
	entry := mainFn.NewBlock("entry")

	g.cur = entry
	g.scope = newFuncScope(mainFn, originTopLevel, nil, "Object")
	defer func() { g.cur, g.scope = nil, nil }()

	g.theMain = g.allocateSkObj("Object")
	g.theVoid = g.allocateSkObj("Void")

	for i := range prog.Classes {
		c := &prog.Classes[i]
		if c.IsMeta() {
			continue
		}
		metaObj := g.allocateSkObj(hir.MetaName(c.Fullname))
		g.cur.NewStore(metaObj, g.constants["::"+c.Fullname])
	}

	for i := range prog.Constants {
		c := &prog.Constants[i]
		val, err := g.lowerExpr(&c.Init)
		if err != nil {
			return err
		}
		g.cur.NewStore(val, g.constants[c.Fullname])
	}

	if _, err := g.lowerBlock(prog.TopLevel); err != nil {
		return err
	}

	if g.cur.Term == nil {
		g.cur.NewRet(constant.NewInt(types.I32, 0))
	}

	g.defineCMain(mainFn)
	return nil
}

// defineCMain emits the real C entry point: a trivial @main that forwards
// argc/argv straight to user_main and relays its exit code, so clang's libc
// startup (which calls @main, never @user_main) has something to call.
func (g *Generator) defineCMain(userMain *ir.Func) {
	argc := ir.NewParam("argc", types.I32)
	argv := ir.NewParam("argv", types.NewPointer(types.I8Ptr))
	mainFn := g.module.NewFunc("main", types.I32, argc, argv)
	entry := mainFn.NewBlock("entry")
	entry.NewRet(entry.NewCall(userMain, argc, argv))
}
