package stdlib

import "github.com/aisk/shiika/internal/codegen"

// Register attaches every native method body this package supplies to g.
// Call it once, before GenerateModule, on a Generator whose program's
// Classes already include Classes().
func Register(g *codegen.Generator) {
	registerInt(g)
	registerFloat(g)
	registerArray(g)
	registerString(g)
	registerFn(g)
}
