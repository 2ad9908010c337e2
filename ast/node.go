package ast

import (
	"github.com/wudi/php-parser/lexer"
)

// Node is implemented by every AST node. A node's span covers the bytes of
// its first through last consumed token, so tools can slice the original
// source back out.
type Node interface {
	Span() lexer.Span
}

// Statement marks statement nodes.
type Statement interface {
	Node
	statementNode()
}

// Expression marks expression nodes.
type Expression interface {
	Node
	expressionNode()
}

type baseNode struct {
	Loc lexer.Span `json:"span"`
}

func (b baseNode) Span() lexer.Span { return b.Loc }

// Program is an ordered sequence of top-level statements.
type Program struct {
	baseNode
	Statements []Statement `json:"statements"`
}

// ============= NAMES =============

// NameKind distinguishes the four syntactic name forms.
type NameKind int

const (
	NameUnqualified NameKind = iota // Foo
	NameQualified                   // Foo\Bar
	NameFullyQualified              // \Foo\Bar
	NameRelative                    // namespace\Foo
)

var nameKindNames = map[NameKind]string{
	NameUnqualified:    "unqualified",
	NameQualified:      "qualified",
	NameFullyQualified: "fully-qualified",
	NameRelative:       "relative",
}

func (k NameKind) String() string { return nameKindNames[k] }

// Name is a possibly-qualified name in either a type or an expression
// position (a bare constant fetch is a Name expression).
type Name struct {
	baseNode
	Kind  NameKind `json:"kind"`
	Value string   `json:"value"`
}

func (*Name) expressionNode() {}

// Identifier is a single unqualified symbol at a declaration or member site.
type Identifier struct {
	baseNode
	Value string `json:"value"`
}

// ============= VISIBILITY & MODIFIERS =============

type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

var visibilityNames = map[Visibility]string{
	Public:    "public",
	Protected: "protected",
	Private:   "private",
}

func (v Visibility) String() string { return visibilityNames[v] }

// ConstantModifiers is the projection of a modifier bag legal on a classish
// constant group.
type ConstantModifiers struct {
	Visibility Visibility `json:"visibility"`
	Final      bool       `json:"final,omitempty"`
}

// PropertyModifiers is the projection legal on a property group. A missing
// visibility defaults to public.
type PropertyModifiers struct {
	Visibility Visibility `json:"visibility"`
	Static     bool       `json:"static,omitempty"`
	Readonly   bool       `json:"readonly,omitempty"`
}

// MethodModifiers is the projection legal on a method.
type MethodModifiers struct {
	Visibility Visibility `json:"visibility"`
	Static     bool       `json:"static,omitempty"`
	Abstract   bool       `json:"abstract,omitempty"`
	Final      bool       `json:"final,omitempty"`
}

// ============= TYPE HINTS =============

// Type is a parameter, property, or return type hint.
type Type interface {
	Node
	typeNode()
}

// NamedType is a plain (possibly nullable) type name: `int`, `?Foo\Bar`.
type NamedType struct {
	baseNode
	Name     *Name `json:"name"`
	Nullable bool  `json:"nullable,omitempty"`
}

func (*NamedType) typeNode() {}

// UnionType is `A|B|C`.
type UnionType struct {
	baseNode
	Parts []Type `json:"parts"`
}

func (*UnionType) typeNode() {}

// IntersectionType is `A&B&C`.
type IntersectionType struct {
	baseNode
	Parts []Type `json:"parts"`
}

func (*IntersectionType) typeNode() {}

// ============= ATTRIBUTES =============

// Attribute is one `Name(args)` entry inside an attribute group.
type Attribute struct {
	baseNode
	Name *Name      `json:"name"`
	Args []Argument `json:"args,omitempty"`
}

// AttributeGroup is one `#[...]` group.
type AttributeGroup struct {
	baseNode
	Attrs []Attribute `json:"attrs"`
}

// Argument is a single call argument, possibly spread.
type Argument struct {
	baseNode
	Spread bool       `json:"spread,omitempty"`
	Value  Expression `json:"value"`
}

// Parameter is a function, method, closure, or arrow-function parameter.
// Promoted is set for constructor property promotion.
type Parameter struct {
	baseNode
	Attributes []AttributeGroup   `json:"attributes,omitempty"`
	Promoted   *PropertyModifiers `json:"promoted,omitempty"`
	Type       Type               `json:"type,omitempty"`
	ByRef      bool               `json:"by_ref,omitempty"`
	Variadic   bool               `json:"variadic,omitempty"`
	Var        *SimpleVariable    `json:"var"`
	Default    Expression         `json:"default,omitempty"`
}
