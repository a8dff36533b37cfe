// Package stdlib bootstraps the handful of classes the code-generation
// core assumes but never type-checks the HIR of: Object, Void, the three
// boxed primitives, String, Array, and the Fn<k> lambda wrappers. Classes()
// supplies their HIR class descriptions (merged ahead of a program's own
// classes before codegen.Generator.GenerateModule runs); Register attaches
// the native LLIR bodies for the methods an HIR tree never lowers a body
// for (arithmetic, comparisons, Array#nth), as Go closures registered
// against codegen.NativeBody.
package stdlib

import "github.com/aisk/shiika/internal/hir"

func method(class, name string, params []hir.Param, ret *hir.Type) hir.Method {
	return hir.Method{
		Fullname: hir.MethodFullname(class, name),
		Name:     name,
		Params:   params,
		RetTy:    ret,
	}
}

func p(name string, ty *hir.Type) hir.Param { return hir.Param{Name: name, Ty: ty} }

// Classes returns the stdlib bootstrap classes and their metaclasses, in an
// order safe to merge ahead of a program's user-defined classes.
func Classes() []hir.Class {
	return []hir.Class{
		{Fullname: "Object"},
		{Fullname: "Meta:Object"},

		// Void has no ivars and no methods of its own: it exists so a
		// void-returning method call has a real object to hand back instead
		// of an unusable LLVM void value — see codegen's voidInstance.
		{Fullname: "Void"},
		{Fullname: "Meta:Void"},

		{
			Fullname:   "Bool",
			IvarLayout: []hir.IvarSlot{{Name: "@value", Ty: hir.Bool}},
		},
		{Fullname: "Meta:Bool"},

		{
			Fullname:   "Int",
			IvarLayout: []hir.IvarSlot{{Name: "@value", Ty: hir.Int}},
			Methods: []hir.Method{
				method("Int", "+", []hir.Param{p("other", hir.Int)}, hir.Int),
				method("Int", "-", []hir.Param{p("other", hir.Int)}, hir.Int),
				method("Int", "*", []hir.Param{p("other", hir.Int)}, hir.Int),
				method("Int", "<", []hir.Param{p("other", hir.Int)}, hir.Bool),
				method("Int", "==", []hir.Param{p("other", hir.Int)}, hir.Bool),
				method("Int", "to_f", nil, hir.Float),
			},
		},
		{Fullname: "Meta:Int"},

		{
			Fullname:   "Float",
			IvarLayout: []hir.IvarSlot{{Name: "@value", Ty: hir.Float}},
			Methods: []hir.Method{
				method("Float", "+", []hir.Param{p("other", hir.Float)}, hir.Float),
				method("Float", "-", []hir.Param{p("other", hir.Float)}, hir.Float),
				method("Float", "*", []hir.Param{p("other", hir.Float)}, hir.Float),
				method("Float", "<", []hir.Param{p("other", hir.Float)}, hir.Bool),
				method("Float", "==", []hir.Param{p("other", hir.Float)}, hir.Bool),
				method("Float", "to_i", nil, hir.Int),
			},
		},
		{Fullname: "Meta:Float"},

		// String and Array's real storage is special-cased in
		// internal/codegen's Type Mapper (see builtinStructFields); their
		// IvarLayout here is deliberately left empty.
		{
			Fullname: "String",
			Methods: []hir.Method{
				method("String", "bytesize", nil, hir.Int),
			},
		},
		{Fullname: "Meta:String"},

		{
			Fullname: "Array",
			Methods: []hir.Method{
				method("Array", "length", nil, hir.Int),
				method("Array", "nth", []hir.Param{p("index", hir.Int)}, hir.Raw("Object")),
			},
		},
		{Fullname: "Meta:Array"},

		fnClass(0), fnMetaClass(0),
		fnClass(1), fnMetaClass(1),
		fnClass(2), fnMetaClass(2),
		fnClass(3), fnMetaClass(3),
	}
}

func fnClass(arity int) hir.Class {
	return hir.Class{Fullname: fnClassName(arity)}
}

// fnMetaClass gives Meta:Fn<arity> its one class method, "new": the
// allocation path a lambda expression's construction site calls into,
// taking the type-erased function pointer (boxed as a plain Object) and the
// captures array, and returning the wrapped Fn<arity> instance.
func fnMetaClass(arity int) hir.Class {
	metaFullname := hir.MetaName(fnClassName(arity))
	return hir.Class{
		Fullname: metaFullname,
		Methods: []hir.Method{
			method(metaFullname, "new",
				[]hir.Param{p("fn", hir.Raw("Object")), p("captures", hir.ArrayTy(hir.Raw("Object")))},
				hir.Raw(fnClassName(arity))),
		},
	}
}

func fnClassName(arity int) string {
	digits := "0123456789"
	return "Fn" + string(digits[arity])
}
