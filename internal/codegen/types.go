package codegen

import (
	"github.com/llir/llvm/ir/types"

	"github.com/aisk/shiika/internal/hir"
)

// headerType is the uniform class-pointer header every object struct
// starts with (LLIR struct field 0), typed generically as i8* rather than
// as a pointer to a specific Meta:<C> struct so that no class's layout
// needs to know about its own metaclass's layout up front (see DESIGN.md:
// "Object header vs. ivar 0").
var headerType = types.I8Ptr

// registerClasses is pass 1 of the Type Mapper / Module Assembler: declare
// an (initially empty) LLIR struct type and pointer type for every class in
// the program, so that any class's ivar types may reference any other
// class's pointer type regardless of declaration order.
func (g *Generator) registerClasses(classes []hir.Class) {
	for i := range classes {
		c := &classes[i]
		st := &types.StructType{}
		pt := types.NewPointer(st)
		ivarIdx := make(map[string]int, len(c.IvarLayout))
		for idx, slot := range c.IvarLayout {
			ivarIdx[slot.Name] = idx
		}
		g.classes[c.Fullname] = &classInfo{
			class:    c,
			structTy: st,
			ptrTy:    pt,
			ivarIdx:  ivarIdx,
		}
	}
}

// layoutClasses is pass 2: now that every class has a pointer type, fill in
// each struct's fields: the header, then each ivar's mapped LLIR type in
// declaration order.
func (g *Generator) layoutClasses() {
	for fullname, ci := range g.classes {
		if fields := builtinStructFields(fullname, g); fields != nil {
			ci.structTy.Fields = fields
			continue
		}
		fields := make([]types.Type, 0, len(ci.class.IvarLayout)+1)
		fields = append(fields, headerType)
		for _, slot := range ci.class.IvarLayout {
			fields = append(fields, g.llvmType(slot.Ty))
		}
		ci.structTy.Fields = fields
	}
}

// builtinStructFields special-cases the handful of classes whose storage
// isn't an ordinary boxed-pointer ivar list: Bool/Int/Float hold their raw
// machine value directly (the one place a primitive's own HIR type must NOT
// map through llvmType's uniform boxed-pointer rule, on pain of a class
// whose single ivar is a pointer to another instance of itself), String's
// byte buffer, Array's element buffer, and Fn<k>'s type-erased function
// pointer. Returns nil for any other class, which lays out like an ordinary
// user class (Object and the Meta: classes have no ivars at all).
func builtinStructFields(fullname string, g *Generator) []types.Type {
	switch {
	case fullname == "Bool":
		return []types.Type{headerType, types.I1}
	case fullname == "Int":
		return []types.Type{headerType, types.I32}
	case fullname == "Float":
		return []types.Type{headerType, types.Double}
	case fullname == "String":
		return []types.Type{headerType, types.I8Ptr, types.I32}
	case fullname == "Array":
		return []types.Type{headerType, types.NewPointer(g.objectPtrType("Object")), types.I32}
	case isFnClass(fullname):
		return []types.Type{headerType, types.I8Ptr, g.objectPtrType("Array")}
	default:
		return nil
	}
}

// fnClassNames are the closed set of lambda-wrapper classes lambda lowering
// allocates, one per arity, 0 through 3.
var fnClassNames = map[string]bool{"Fn0": true, "Fn1": true, "Fn2": true, "Fn3": true}

func isFnClass(fullname string) bool { return fnClassNames[fullname] }

func (g *Generator) classInfoOf(fullname string) *classInfo {
	ci, ok := g.classes[fullname]
	if !ok {
		bug("class %q not registered", fullname)
	}
	return ci
}

func (g *Generator) objectStructType(fullname string) *types.StructType {
	return g.classInfoOf(fullname).structTy
}

func (g *Generator) objectPtrType(fullname string) *types.PointerType {
	return g.classInfoOf(fullname).ptrTy
}

// llvmType maps a HIR type to its LLIR type for a value in storage: an
// ivar, an lvar slot, a method/lambda parameter or return, a global. Every
// value of every type, Bool/Int/Float included, is a boxed pointer to its
// class's struct here — boxInt/boxFloat/boxBool and unboxInt/unboxFloat/
// unboxBool are the only places a primitive is briefly unwrapped to its raw
// machine type (i1/i32/double) to feed an LLVM instruction that requires
// one, and that raw type never otherwise escapes into a slot, signature, or
// field typed by llvmType.
func (g *Generator) llvmType(t *hir.Type) types.Type {
	if t == nil {
		bug("llvmType: nil type")
	}
	if t.Array {
		return types.NewPointer(g.objectStructType("Array"))
	}
	if t.IsVoid() {
		return types.Void
	}
	return g.objectPtrType(t.ClassFullname())
}

// methodFuncType builds the LLIR function type for an instance or class
// method: (ret) (self_ptr, param1, ..., paramN). selfFullname is the
// receiver's class fullname (already Meta:-prefixed for class methods).
func (g *Generator) methodFuncType(selfFullname string, m *hir.Method) *types.FuncType {
	params := make([]types.Type, 0, len(m.Params)+1)
	params = append(params, g.objectPtrType(selfFullname))
	for _, p := range m.Params {
		params = append(params, g.llvmType(p.Ty))
	}
	return types.NewFunc(g.llvmType(m.RetTy), params...)
}

// lambdaFuncType builds the LLIR function type for a lambda: params are
// uniformly Object* except the final synthetic captures-array parameter
// (Array<Object>*); the return type is the lowered body's real type rather
// than a uniform Object* — see DESIGN.md's lambda-return-type decision.
func (g *Generator) lambdaFuncType(params []hir.Param, bodyTy *hir.Type) *types.FuncType {
	objPtr := g.objectPtrType("Object")
	arrPtr := types.NewPointer(g.objectStructType("Array"))

	llvmParams := make([]types.Type, len(params))
	for i := range params {
		if i == len(params)-1 {
			llvmParams[i] = arrPtr
		} else {
			llvmParams[i] = objPtr
		}
	}
	return types.NewFunc(g.llvmType(bodyTy), llvmParams...)
}
