package ast

// ============= VARIABLES =============

// SimpleVariable is `$name`. Name is stored without the leading dollar.
type SimpleVariable struct {
	baseNode
	Name string `json:"name"`
}

func (*SimpleVariable) expressionNode() {}

// VariableVariable is `$$expr` (the inner expression is itself a variable).
type VariableVariable struct {
	baseNode
	Var Expression `json:"var"`
}

func (*VariableVariable) expressionNode() {}

// BracedVariable is `${expr}`.
type BracedVariable struct {
	baseNode
	Expr Expression `json:"expr"`
}

func (*BracedVariable) expressionNode() {}

// ============= LITERALS =============

type IntegerLiteral struct {
	baseNode
	Value int64  `json:"value"`
	Raw   string `json:"raw"`
}

func (*IntegerLiteral) expressionNode() {}

type FloatLiteral struct {
	baseNode
	Value float64 `json:"value"`
	Raw   string  `json:"raw"`
}

func (*FloatLiteral) expressionNode() {}

// StringLiteral is a single- or double-quoted string without interpolation,
// or one fragment of an interpolated string. Value is the cooked text.
type StringLiteral struct {
	baseNode
	Value string `json:"value"`
	Raw   string `json:"raw"`
}

func (*StringLiteral) expressionNode() {}

// InterpolatedString is a double-quoted string with interpolation; parts
// alternate literal fragments and embedded expressions.
type InterpolatedString struct {
	baseNode
	Parts []Expression `json:"parts"`
}

func (*InterpolatedString) expressionNode() {}

// HeredocString covers both heredoc and nowdoc bodies.
type HeredocString struct {
	baseNode
	Label  string `json:"label"`
	Value  string `json:"value"`
	Nowdoc bool   `json:"nowdoc,omitempty"`
}

func (*HeredocString) expressionNode() {}

// MagicConstant is `__LINE__`, `__FILE__`, `__CLASS__` and friends.
type MagicConstant struct {
	baseNode
	Name string `json:"name"`
}

func (*MagicConstant) expressionNode() {}

// ============= OPERATORS =============

// BinaryExpression is any infix operator application; Op is the operator's
// source text (`+`, `.`, `===`, `instanceof`, `and`, ...).
type BinaryExpression struct {
	baseNode
	Left  Expression `json:"left"`
	Op    string     `json:"op"`
	Right Expression `json:"right"`
}

func (*BinaryExpression) expressionNode() {}

// AssignmentExpression covers `=` and every compound assignment operator.
type AssignmentExpression struct {
	baseNode
	Target Expression `json:"target"`
	Op     string     `json:"op"`
	Value  Expression `json:"value"`
}

func (*AssignmentExpression) expressionNode() {}

// PrefixExpression is `!x`, `-x`, `+x`, `~x`, `++x`, `--x`.
type PrefixExpression struct {
	baseNode
	Op      string     `json:"op"`
	Operand Expression `json:"operand"`
}

func (*PrefixExpression) expressionNode() {}

// PostfixExpression is `x++` or `x--`.
type PostfixExpression struct {
	baseNode
	Operand Expression `json:"operand"`
	Op      string     `json:"op"`
}

func (*PostfixExpression) expressionNode() {}

// CastExpression is `(int) x` and the other cast forms; Kind is the
// normalized cast word.
type CastExpression struct {
	baseNode
	Kind    string     `json:"kind"`
	Operand Expression `json:"operand"`
}

func (*CastExpression) expressionNode() {}

// ErrorSuppressExpression is `@expr`.
type ErrorSuppressExpression struct {
	baseNode
	Operand Expression `json:"operand"`
}

func (*ErrorSuppressExpression) expressionNode() {}

// TernaryExpression is `cond ? then : else`; Then is nil for the short form
// `cond ?: else`.
type TernaryExpression struct {
	baseNode
	Cond Expression `json:"cond"`
	Then Expression `json:"then,omitempty"`
	Else Expression `json:"else"`
}

func (*TernaryExpression) expressionNode() {}

// CoalesceExpression is `left ?? right`.
type CoalesceExpression struct {
	baseNode
	Left  Expression `json:"left"`
	Right Expression `json:"right"`
}

func (*CoalesceExpression) expressionNode() {}

// ============= ACCESS & CALLS =============

// PropertyFetch is `target->prop` or `target?->prop`.
type PropertyFetch struct {
	baseNode
	Target   Expression `json:"target"`
	NullSafe bool       `json:"null_safe,omitempty"`
	Property Expression `json:"property"`
}

func (*PropertyFetch) expressionNode() {}

// StaticAccess is `Class::member`; the member may be an identifier
// (constant or the `class` keyword), a variable, or a braced expression.
type StaticAccess struct {
	baseNode
	Class  Expression `json:"class"`
	Member Expression `json:"member"`
}

func (*StaticAccess) expressionNode() {}

// MemberName wraps an identifier used on the right of `->` or `::`;
// reserved words are permitted there.
type MemberName struct {
	baseNode
	Value string `json:"value"`
}

func (*MemberName) expressionNode() {}

// CallExpression is any call; the callee shape distinguishes plain calls,
// method calls (PropertyFetch), and static calls (StaticAccess).
type CallExpression struct {
	baseNode
	Callee Expression `json:"callee"`
	Args   []Argument `json:"args"`
}

func (*CallExpression) expressionNode() {}

// ArrayAccess is `target[index]`; Index is nil for the push form `target[]`.
type ArrayAccess struct {
	baseNode
	Target Expression `json:"target"`
	Index  Expression `json:"index,omitempty"`
}

func (*ArrayAccess) expressionNode() {}

// ============= COMPOSITE =============

// ArrayItem is one element of an array or list literal.
type ArrayItem struct {
	baseNode
	Key    Expression `json:"key,omitempty"`
	ByRef  bool       `json:"by_ref,omitempty"`
	Spread bool       `json:"spread,omitempty"`
	Value  Expression `json:"value"`
}

// ArrayExpression is `[...]` or `array(...)`.
type ArrayExpression struct {
	baseNode
	Items []ArrayItem `json:"items"`
	Short bool        `json:"short,omitempty"`
}

func (*ArrayExpression) expressionNode() {}

// ListExpression is a `list(...)` destructuring target.
type ListExpression struct {
	baseNode
	Items []ArrayItem `json:"items"`
}

func (*ListExpression) expressionNode() {}

// ClosureUse is one entry of a closure's `use (...)` clause.
type ClosureUse struct {
	baseNode
	ByRef bool            `json:"by_ref,omitempty"`
	Var   *SimpleVariable `json:"var"`
}

// ClosureExpression is `function (...) use (...) { ... }`.
type ClosureExpression struct {
	baseNode
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Static     bool         `json:"static,omitempty"`
	ByRef      bool         `json:"by_ref,omitempty"`
	Params     []Parameter  `json:"params"`
	Uses       []ClosureUse `json:"uses,omitempty"`
	ReturnType Type         `json:"return_type,omitempty"`
	Body       []Statement  `json:"body"`
}

func (*ClosureExpression) expressionNode() {}

// ArrowFunction is `fn (...) => expr`.
type ArrowFunction struct {
	baseNode
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Static     bool        `json:"static,omitempty"`
	ByRef      bool        `json:"by_ref,omitempty"`
	Params     []Parameter `json:"params"`
	ReturnType Type        `json:"return_type,omitempty"`
	Body       Expression  `json:"body"`
}

func (*ArrowFunction) expressionNode() {}

// NewExpression is `new Class(args)`.
type NewExpression struct {
	baseNode
	Class Expression `json:"class"`
	Args  []Argument `json:"args"`
}

func (*NewExpression) expressionNode() {}

// CloneExpression is `clone expr`.
type CloneExpression struct {
	baseNode
	Operand Expression `json:"operand"`
}

func (*CloneExpression) expressionNode() {}

// MatchArm is one arm of a match expression; Conditions is nil for default.
type MatchArm struct {
	baseNode
	Conditions []Expression `json:"conditions,omitempty"`
	Body       Expression   `json:"body"`
}

// MatchExpression is `match (subject) { conds => body, ... }`.
type MatchExpression struct {
	baseNode
	Subject Expression `json:"subject"`
	Arms    []MatchArm `json:"arms"`
}

func (*MatchExpression) expressionNode() {}

// YieldExpression is `yield`, `yield v`, or `yield k => v`.
type YieldExpression struct {
	baseNode
	Key   Expression `json:"key,omitempty"`
	Value Expression `json:"value,omitempty"`
}

func (*YieldExpression) expressionNode() {}

// YieldFromExpression is `yield from expr`.
type YieldFromExpression struct {
	baseNode
	Operand Expression `json:"operand"`
}

func (*YieldFromExpression) expressionNode() {}

// ThrowExpression is `throw expr` in expression position.
type ThrowExpression struct {
	baseNode
	Operand Expression `json:"operand"`
}

func (*ThrowExpression) expressionNode() {}

// PrintExpression is `print expr`.
type PrintExpression struct {
	baseNode
	Operand Expression `json:"operand"`
}

func (*PrintExpression) expressionNode() {}

// ExitExpression is `exit` / `die`, with an optional status argument.
type ExitExpression struct {
	baseNode
	Operand Expression `json:"operand,omitempty"`
}

func (*ExitExpression) expressionNode() {}

// IssetExpression is `isset(v, ...)`.
type IssetExpression struct {
	baseNode
	Vars []Expression `json:"vars"`
}

func (*IssetExpression) expressionNode() {}

// EmptyExpression is `empty(expr)`.
type EmptyExpression struct {
	baseNode
	Operand Expression `json:"operand"`
}

func (*EmptyExpression) expressionNode() {}

// EvalExpression is `eval(expr)`.
type EvalExpression struct {
	baseNode
	Operand Expression `json:"operand"`
}

func (*EvalExpression) expressionNode() {}

// IncludeKind selects among include/include_once/require/require_once.
type IncludeKind int

const (
	Include IncludeKind = iota
	IncludeOnce
	Require
	RequireOnce
)

var includeKindNames = map[IncludeKind]string{
	Include:     "include",
	IncludeOnce: "include_once",
	Require:     "require",
	RequireOnce: "require_once",
}

func (k IncludeKind) String() string { return includeKindNames[k] }

// IncludeExpression is one of the include/require forms.
type IncludeExpression struct {
	baseNode
	Kind    IncludeKind `json:"kind"`
	Operand Expression  `json:"operand"`
}

func (*IncludeExpression) expressionNode() {}
