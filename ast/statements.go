package ast

// InlineHTMLStatement is raw markup between close and open tags.
type InlineHTMLStatement struct {
	baseNode
	Value string `json:"value"`
}

func (*InlineHTMLStatement) statementNode() {}

// EchoStatement is `echo e, e2, ...;`.
type EchoStatement struct {
	baseNode
	Values []Expression `json:"values"`
}

func (*EchoStatement) statementNode() {}

// ShortEchoStatement is `<?= e, e2 ... ?>`.
type ShortEchoStatement struct {
	baseNode
	Values []Expression `json:"values"`
}

func (*ShortEchoStatement) statementNode() {}

// ExpressionStatement is an expression terminated by a semicolon.
type ExpressionStatement struct {
	baseNode
	Expr Expression `json:"expr"`
}

func (*ExpressionStatement) statementNode() {}

// NoopStatement is a stray `;`.
type NoopStatement struct {
	baseNode
}

func (*NoopStatement) statementNode() {}

// BlockStatement is `{ ... }`.
type BlockStatement struct {
	baseNode
	Statements []Statement `json:"statements"`
}

func (*BlockStatement) statementNode() {}

// NamespaceStatement covers both the unbraced (`namespace A;`) and braced
// (`namespace A { ... }`) forms. Only the braced form fills Statements; the
// statements after an unbraced declaration stay top-level in the Program.
type NamespaceStatement struct {
	baseNode
	Name       *Name       `json:"name,omitempty"`
	Braced     bool        `json:"braced,omitempty"`
	Statements []Statement `json:"statements"`
}

func (*NamespaceStatement) statementNode() {}

// UseKind distinguishes plain, function, and const imports.
type UseKind int

const (
	UseNormal UseKind = iota
	UseFunction
	UseConst
)

var useKindNames = map[UseKind]string{
	UseNormal:   "normal",
	UseFunction: "function",
	UseConst:    "const",
}

func (k UseKind) String() string { return useKindNames[k] }

// UseItem is one imported name with an optional alias.
type UseItem struct {
	baseNode
	Name  *Name       `json:"name"`
	Alias *Identifier `json:"alias,omitempty"`
}

// UseStatement is `use A\B, C as D;` or a group use `use A\{B, C};`.
type UseStatement struct {
	baseNode
	Kind   UseKind   `json:"kind"`
	Prefix *Name     `json:"prefix,omitempty"`
	Uses   []UseItem `json:"uses"`
}

func (*UseStatement) statementNode() {}

// ConstEntry is one `NAME = expr` declarator.
type ConstEntry struct {
	baseNode
	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

// ConstStatement is a top-level `const A = 1, B = 2;`.
type ConstStatement struct {
	baseNode
	Entries []ConstEntry `json:"entries"`
}

func (*ConstStatement) statementNode() {}

// HaltCompilerStatement is `__halt_compiler();`; Content holds the text of
// the inline HTML tokens that follow it.
type HaltCompilerStatement struct {
	baseNode
	Content string `json:"content,omitempty"`
}

func (*HaltCompilerStatement) statementNode() {}

// ============= CONTROL FLOW =============

// ElseIfClause is one `elseif (cond) { ... }` branch.
type ElseIfClause struct {
	baseNode
	Cond Expression  `json:"cond"`
	Body []Statement `json:"body"`
}

// IfStatement covers both brace and alternative (`endif`) syntax.
type IfStatement struct {
	baseNode
	Cond    Expression     `json:"cond"`
	Then    []Statement    `json:"then"`
	ElseIfs []ElseIfClause `json:"elseifs,omitempty"`
	Else    []Statement    `json:"else,omitempty"`
	HasElse bool           `json:"has_else,omitempty"`
}

func (*IfStatement) statementNode() {}

// WhileStatement is `while (cond) body` (brace or `endwhile` form).
type WhileStatement struct {
	baseNode
	Cond Expression  `json:"cond"`
	Body []Statement `json:"body"`
}

func (*WhileStatement) statementNode() {}

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	baseNode
	Body []Statement `json:"body"`
	Cond Expression  `json:"cond"`
}

func (*DoWhileStatement) statementNode() {}

// ForStatement is `for (init; cond; loop) body`; each section holds zero or
// more comma-separated expressions.
type ForStatement struct {
	baseNode
	Init []Expression `json:"init,omitempty"`
	Cond []Expression `json:"cond,omitempty"`
	Loop []Expression `json:"loop,omitempty"`
	Body []Statement  `json:"body"`
}

func (*ForStatement) statementNode() {}

// ForeachStatement is `foreach (subject as [key =>] [&]value) body`.
type ForeachStatement struct {
	baseNode
	Subject Expression  `json:"subject"`
	Key     Expression  `json:"key,omitempty"`
	ByRef   bool        `json:"by_ref,omitempty"`
	Value   Expression  `json:"value"`
	Body    []Statement `json:"body"`
}

func (*ForeachStatement) statementNode() {}

// SwitchCase is one `case expr:` or `default:` arm.
type SwitchCase struct {
	baseNode
	Cond Expression  `json:"cond,omitempty"`
	Body []Statement `json:"body"`
}

// SwitchStatement is `switch (subject) { cases }`.
type SwitchStatement struct {
	baseNode
	Subject Expression   `json:"subject"`
	Cases   []SwitchCase `json:"cases"`
}

func (*SwitchStatement) statementNode() {}

// BreakStatement is `break;` or `break n;`.
type BreakStatement struct {
	baseNode
	Level Expression `json:"level,omitempty"`
}

func (*BreakStatement) statementNode() {}

// ContinueStatement is `continue;` or `continue n;`.
type ContinueStatement struct {
	baseNode
	Level Expression `json:"level,omitempty"`
}

func (*ContinueStatement) statementNode() {}

// ReturnStatement is `return;` or `return expr;`.
type ReturnStatement struct {
	baseNode
	Value Expression `json:"value,omitempty"`
}

func (*ReturnStatement) statementNode() {}

// GotoStatement is `goto label;`.
type GotoStatement struct {
	baseNode
	Label *Identifier `json:"label"`
}

func (*GotoStatement) statementNode() {}

// LabelStatement is `label:`.
type LabelStatement struct {
	baseNode
	Name *Identifier `json:"name"`
}

func (*LabelStatement) statementNode() {}

// DeclareForm distinguishes the four declare body shapes.
type DeclareForm int

const (
	DeclareNoop DeclareForm = iota // declare(...);
	DeclareBraced                  // declare(...) { ... }
	DeclareAlternative             // declare(...): ... enddeclare;
	DeclareExpression              // declare(...) expr;
)

var declareFormNames = map[DeclareForm]string{
	DeclareNoop:        "noop",
	DeclareBraced:      "braced",
	DeclareAlternative: "alternative",
	DeclareExpression:  "expression",
}

func (f DeclareForm) String() string { return declareFormNames[f] }

// DeclareEntry is one `key=value` directive.
type DeclareEntry struct {
	baseNode
	Key   *Identifier `json:"key"`
	Value Expression  `json:"value"`
}

// DeclareStatement is `declare(entries) body`.
type DeclareStatement struct {
	baseNode
	Entries    []DeclareEntry `json:"entries"`
	Form       DeclareForm    `json:"form"`
	Statements []Statement    `json:"statements,omitempty"`
	Expr       Expression     `json:"expr,omitempty"`
}

func (*DeclareStatement) statementNode() {}

// GlobalStatement is `global $a, $b;`.
type GlobalStatement struct {
	baseNode
	Vars []Expression `json:"vars"`
}

func (*GlobalStatement) statementNode() {}

// StaticVar is one `$v` or `$v = default` binding.
type StaticVar struct {
	baseNode
	Var     *SimpleVariable `json:"var"`
	Default Expression      `json:"default,omitempty"`
}

// StaticStatement is `static $a, $b = 1;`.
type StaticStatement struct {
	baseNode
	Vars []StaticVar `json:"vars"`
}

func (*StaticStatement) statementNode() {}

// CatchClause is one `catch (A|B $e) { ... }`.
type CatchClause struct {
	baseNode
	Types []*Name         `json:"types"`
	Var   *SimpleVariable `json:"var,omitempty"`
	Body  []Statement     `json:"body"`
}

// TryStatement is `try { ... } catch ... finally { ... }`.
type TryStatement struct {
	baseNode
	Body       []Statement   `json:"body"`
	Catches    []CatchClause `json:"catches,omitempty"`
	Finally    []Statement   `json:"finally,omitempty"`
	HasFinally bool          `json:"has_finally,omitempty"`
}

func (*TryStatement) statementNode() {}

// UnsetStatement is `unset(v, ...);`.
type UnsetStatement struct {
	baseNode
	Vars []Expression `json:"vars"`
}

func (*UnsetStatement) statementNode() {}
