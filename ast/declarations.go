package ast

// FunctionDeclaration is a named top-level (or namespaced) function.
type FunctionDeclaration struct {
	baseNode
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	ByRef      bool             `json:"by_ref,omitempty"`
	Name       *Identifier      `json:"name"`
	Params     []Parameter      `json:"params"`
	ReturnType Type             `json:"return_type,omitempty"`
	Body       []Statement      `json:"body"`
}

func (*FunctionDeclaration) statementNode() {}

// ClassishMember is anything that may appear inside a class-like body.
type ClassishMember interface {
	Node
	classishMemberNode()
}

// ClassModifiers is the modifier set legal on a class header.
type ClassModifiers struct {
	Abstract bool `json:"abstract,omitempty"`
	Final    bool `json:"final,omitempty"`
	Readonly bool `json:"readonly,omitempty"`
}

// ClassDeclaration is `class Name extends B implements I, J { members }`.
type ClassDeclaration struct {
	baseNode
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Modifiers  ClassModifiers   `json:"modifiers"`
	Name       *Identifier      `json:"name"`
	Extends    *Name            `json:"extends,omitempty"`
	Implements []*Name          `json:"implements,omitempty"`
	Members    []ClassishMember `json:"members"`
}

func (*ClassDeclaration) statementNode() {}

// InterfaceDeclaration is `interface Name extends A, B { members }`.
type InterfaceDeclaration struct {
	baseNode
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Name       *Identifier      `json:"name"`
	Extends    []*Name          `json:"extends,omitempty"`
	Members    []ClassishMember `json:"members"`
}

func (*InterfaceDeclaration) statementNode() {}

// TraitDeclaration is `trait Name { members }`.
type TraitDeclaration struct {
	baseNode
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Name       *Identifier      `json:"name"`
	Members    []ClassishMember `json:"members"`
}

func (*TraitDeclaration) statementNode() {}

// EnumDeclaration is `enum Name [: backing] implements I { members }`.
type EnumDeclaration struct {
	baseNode
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Name       *Identifier      `json:"name"`
	Backing    Type             `json:"backing,omitempty"`
	Implements []*Name          `json:"implements,omitempty"`
	Members    []ClassishMember `json:"members"`
}

func (*EnumDeclaration) statementNode() {}

// ============= MEMBERS =============

// ConstantMember is a classish constant group:
// `final public const A = 1, B = 2;`.
type ConstantMember struct {
	baseNode
	Attributes []AttributeGroup  `json:"attributes,omitempty"`
	Modifiers  ConstantModifiers `json:"modifiers"`
	Entries    []ConstEntry      `json:"entries"`
}

func (*ConstantMember) classishMemberNode() {}

// PropertyEntry is one property declarator with an optional default.
type PropertyEntry struct {
	baseNode
	Var     *SimpleVariable `json:"var"`
	Default Expression      `json:"default,omitempty"`
}

// PropertyMember is a property group. Var-declared properties (`var $x;`)
// project to public visibility.
type PropertyMember struct {
	baseNode
	Attributes []AttributeGroup  `json:"attributes,omitempty"`
	Modifiers  PropertyModifiers `json:"modifiers"`
	Type       Type              `json:"type,omitempty"`
	Entries    []PropertyEntry   `json:"entries"`
}

func (*PropertyMember) classishMemberNode() {}

// MethodMember is a concrete or abstract method. HasBody is false for
// abstract methods and interface signatures.
type MethodMember struct {
	baseNode
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Modifiers  MethodModifiers  `json:"modifiers"`
	ByRef      bool             `json:"by_ref,omitempty"`
	Name       *Identifier      `json:"name"`
	Params     []Parameter      `json:"params"`
	ReturnType Type             `json:"return_type,omitempty"`
	HasBody    bool             `json:"has_body,omitempty"`
	Body       []Statement      `json:"body,omitempty"`
}

func (*MethodMember) classishMemberNode() {}

// EnumCaseMember is one `case Name[= value];` of an enum.
type EnumCaseMember struct {
	baseNode
	Attributes []AttributeGroup `json:"attributes,omitempty"`
	Name       *Identifier      `json:"name"`
	Value      Expression       `json:"value,omitempty"`
}

func (*EnumCaseMember) classishMemberNode() {}

// ============= TRAIT USE =============

// TraitAdaptation is one clause inside `use A, B { ... }`.
type TraitAdaptation interface {
	Node
	traitAdaptationNode()
}

// TraitAlias is `[Trait::]method as [visibility] alias;`.
type TraitAlias struct {
	baseNode
	Trait      *Name       `json:"trait,omitempty"`
	Method     *Identifier `json:"method"`
	Visibility *Visibility `json:"visibility,omitempty"`
	Alias      *Identifier `json:"alias"`
}

func (*TraitAlias) traitAdaptationNode() {}

// TraitVisibility is `[Trait::]method as visibility;` with no alias.
type TraitVisibility struct {
	baseNode
	Trait      *Name       `json:"trait,omitempty"`
	Method     *Identifier `json:"method"`
	Visibility Visibility  `json:"visibility"`
}

func (*TraitVisibility) traitAdaptationNode() {}

// TraitPrecedence is `Trait::method insteadof A, B;`.
type TraitPrecedence struct {
	baseNode
	Trait     *Name       `json:"trait"`
	Method    *Identifier `json:"method"`
	Insteadof []*Name     `json:"insteadof"`
}

func (*TraitPrecedence) traitAdaptationNode() {}

// TraitUseMember is `use A, B;` or `use A, B { adaptations }` inside a
// classish body.
type TraitUseMember struct {
	baseNode
	Traits      []*Name           `json:"traits"`
	Adaptations []TraitAdaptation `json:"adaptations,omitempty"`
}

func (*TraitUseMember) classishMemberNode() {}
