// Package hir defines the typed, desugared High-level Intermediate
// Representation consumed by the code-generation core. The shape mirrors
// the flattened, JSON-tagged variant style the rest of the pack's ASTs use:
// one struct shared by every node kind, with a Kind discriminator and the fields each
// kind needs left zero for the others.
package hir

// Type is a language-level type (TermTy). Primitives are named directly
// ("Bool", "Int", "Float", "Void"); any other Name is a class (or, when Meta
// is set, a metaclass) reference. Array is only ever Array<Object> in
// practice (the captures array), but the field is general.
type Type struct {
	Name  string `json:"name"`
	Meta  bool   `json:"meta,omitempty"`
	Array bool   `json:"array,omitempty"`
	Elem  *Type  `json:"elem,omitempty"`
}

// Raw returns the instance type of a class.
func Raw(name string) *Type { return &Type{Name: name} }

// MetaTy returns the metaclass type of a class.
func MetaTy(name string) *Type { return &Type{Name: name, Meta: true} }

// ArrayTy returns the type of an array of elem.
func ArrayTy(elem *Type) *Type { return &Type{Name: "Array", Array: true, Elem: elem} }

var (
	Void  = &Type{Name: "Void"}
	Bool  = &Type{Name: "Bool"}
	Int   = &Type{Name: "Int"}
	Float = &Type{Name: "Float"}
)

// IsVoid reports whether t is the Void type.
func (t *Type) IsVoid() bool { return t != nil && !t.Meta && !t.Array && t.Name == "Void" }

// ClassFullname returns the fullname of the class this type denotes:
// "Meta:<Name>" for a metaclass type, "<Name>" otherwise.
func (t *Type) ClassFullname() string {
	if t.Meta {
		return "Meta:" + t.Name
	}
	return t.Name
}

func (t *Type) String() string {
	if t.Array {
		return "Array<" + t.Elem.String() + ">"
	}
	return t.ClassFullname()
}

// MetaName prefixes a class fullname with "Meta:", naming that class's
// metaclass.
func MetaName(classFullname string) string { return "Meta:" + classFullname }

// MethodFullname builds "<ClassName>#<method_name>" (or, for a class method,
// the caller passes a Meta:-prefixed class name already).
func MethodFullname(classFullname, methodName string) string {
	return classFullname + "#" + methodName
}

// Param is a method or lambda parameter.
type Param struct {
	Name string `json:"name"`
	Ty   *Type  `json:"ty"`
}

// IvarSlot is one entry in a class's index-addressed instance-variable
// layout.
type IvarSlot struct {
	Name string `json:"name"`
	Ty   *Type  `json:"ty"`
}

// Method is a compiled function: "<ClassName>#<name>" for instance methods,
// "Meta:<ClassName>#<name>" for class methods. Body is nil for methods whose
// LLIR is supplied by the native stdlib bootstrap (internal/stdlib) rather
// than by lowering a HIR tree.
type Method struct {
	Fullname string  `json:"fullname"`
	Name     string  `json:"name"`
	Params   []Param `json:"params"`
	RetTy    *Type   `json:"ret_ty"`
	Body     []Expr  `json:"body,omitempty"`
}

// Class holds a class's fullname, instance type, methods and ivar layout.
// Metaclasses are separate Class values whose Fullname starts with "Meta:".
type Class struct {
	Fullname   string     `json:"fullname"`
	InstanceTy *Type      `json:"instance_ty"`
	Methods    []Method   `json:"methods"`
	IvarLayout []IvarSlot `json:"ivar_layout,omitempty"`
}

// IsMeta reports whether this class is a metaclass.
func (c *Class) IsMeta() bool { return len(c.Fullname) >= 5 && c.Fullname[:5] == "Meta:" }

// Constant is a top-level `::`-prefixed constant with its initializer.
type Constant struct {
	Fullname string `json:"fullname"`
	Init     Expr   `json:"init"`
}

// Program is the entire HIR input: the string-literal pool, classes,
// constants, and the top-level expression sequence run from user_main.
type Program struct {
	StringPool []string   `json:"string_pool"`
	Classes    []Class    `json:"classes"`
	Constants  []Constant `json:"constants"`
	TopLevel   []Expr     `json:"top_level"`
}
