package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/aisk/shiika/internal/hir"
)

// compileMethodBodies walks every already-declared method: lower its HIR
// body if it has one, otherwise run whatever native body internal/stdlib
// registered for it, otherwise leave the function as a bare declaration (an
// opaque external symbol assumed to be supplied by the runtime).
func (g *Generator) compileMethodBodies(classes []hir.Class) error {
	for i := range classes {
		c := &classes[i]
		for j := range c.Methods {
			m := &c.Methods[j]
			fn := g.methods[m.Fullname]
			switch {
			case m.Body != nil:
				if err := g.compileFunctionBody(fn, originMethod, m.Params, m.Body, c.Fullname); err != nil {
					return err
				}
			case g.natives[m.Fullname] != nil:
				entry := fn.NewBlock("entry")
				prevCur := g.cur
				g.cur = entry
				err := g.natives[m.Fullname](g, fn, entry)
				g.cur = prevCur
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// compileFunctionBody is the shared function-body builder behind methods
// and lambdas (user_main is built by compileUserMain): open the entry
// block, push a fresh funcScope,
// lower the statement sequence in order, and emit the closing return.
func (g *Generator) compileFunctionBody(fn *ir.Func, origin functionOrigin, params []hir.Param, body []hir.Expr, selfFullname string) error {
	entry := fn.NewBlock("entry")

	prevCur, prevScope := g.cur, g.scope
	g.cur = entry
	g.scope = newFuncScope(fn, origin, params, selfFullname)
	defer func() { g.cur, g.scope = prevCur, prevScope }()

	last, err := g.lowerBlock(body)
	if err != nil {
		return err
	}

	if g.cur.Term != nil {
		return nil // every path already returned or broke out
	}
	if types.Equal(fn.Sig.RetType, types.Void) {
		g.cur.NewRet(nil)
	} else {
		if last == nil {
			bug("function %s: empty body for non-Void return type", fn.Name())
		}
		g.cur.NewRet(last)
	}
	return nil
}

// lowerBlock lowers a statement sequence in order, short-circuiting once a
// statement has terminated the current block (a Break or, in a richer
// language, a Return) so later statements in the same list — which the type
// checker only permits as genuinely unreachable tail code — are never
// appended past a terminator.
func (g *Generator) lowerBlock(exprs []hir.Expr) (value.Value, error) {
	var last value.Value
	for i := range exprs {
		if g.cur.Term != nil {
			break
		}
		v, err := g.lowerExpr(&exprs[i])
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}
