package hir

// Kind discriminates an Expr's variant; every variant the generator switches
// on is listed here.
type Kind string

const (
	KindBool    Kind = "bool"
	KindInt     Kind = "int"
	KindFloat   Kind = "float"
	KindString  Kind = "string"
	KindClass   Kind = "class"
	KindArray   Kind = "array"
	KindArgRef  Kind = "arg_ref"
	KindLVarRef Kind = "lvar_ref"
	KindIVarRef Kind = "ivar_ref"
	KindConstRef Kind = "const_ref"
	KindLambdaCaptureRef Kind = "lambda_capture_ref"
	KindSelf    Kind = "self"
	KindLVarAssign  Kind = "lvar_assign"
	KindIVarAssign  Kind = "ivar_assign"
	KindConstAssign Kind = "const_assign"
	KindIf    Kind = "if"
	KindWhile Kind = "while"
	KindBreak Kind = "break"
	KindLogicalNot Kind = "logical_not"
	KindLogicalAnd Kind = "logical_and"
	KindLogicalOr  Kind = "logical_or"
	KindMethodCall Kind = "method_call"
	KindLambda     Kind = "lambda"
	KindBitCast    Kind = "bitcast"
)

// Expr is a single HIR expression node. Every node carries its fully
// resolved result type Ty; the remaining fields are populated according to
// Kind and left zero otherwise, following the same flattened-variant
// convention the pack's other ASTs use.
type Expr struct {
	Kind Kind  `json:"kind"`
	Ty   *Type `json:"ty"`

	// Literals.
	BoolVal   bool    `json:"bool_val,omitempty"`
	IntVal    int32   `json:"int_val,omitempty"`
	FloatVal  float64 `json:"float_val,omitempty"`
	StrIdx    int     `json:"str_idx,omitempty"`    // String, Class (name string index)
	ClassName string  `json:"class_name,omitempty"` // Class
	Items     []Expr  `json:"items,omitempty"`      // Array

	// References / assignments. Name carries the lvar name, ivar name, or
	// const fullname depending on Kind.
	Name    string `json:"name,omitempty"`
	ArgIdx  int    `json:"arg_idx,omitempty"`  // ArgRef, LambdaCaptureRef
	IvarIdx int    `json:"ivar_idx,omitempty"` // IVarRef, IVarAssign
	RHS     *Expr  `json:"rhs,omitempty"`      // LVarAssign, IVarAssign, ConstAssign

	// Control flow.
	Cond    *Expr  `json:"cond,omitempty"`
	Then    []Expr `json:"then,omitempty"`
	Else    []Expr `json:"else,omitempty"`
	HasElse bool   `json:"has_else,omitempty"`
	Body    []Expr `json:"body,omitempty"` // While

	// Logic.
	Left    *Expr `json:"left,omitempty"`
	Right   *Expr `json:"right,omitempty"`
	Operand *Expr `json:"operand,omitempty"` // LogicalNot

	// Method call.
	MethodFullname string `json:"method_fullname,omitempty"`
	Receiver       *Expr  `json:"receiver,omitempty"`
	Args           []Expr `json:"args,omitempty"`

	// Lambda.
	LambdaName    string  `json:"lambda_name,omitempty"`
	Params        []Param `json:"params,omitempty"`
	LambdaBody    []Expr  `json:"lambda_body,omitempty"`
	CapturesArray *Expr   `json:"captures_array,omitempty"`

	// BitCast.
	Target *Expr `json:"target,omitempty"`
}
