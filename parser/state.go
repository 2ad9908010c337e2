package parser

import (
	"github.com/wudi/php-parser/ast"
)

// ScopeKind names the innermost enclosing construct while a production runs.
type ScopeKind int

const (
	ScopeNamespace ScopeKind = iota
	ScopeClass
	ScopeInterface
	ScopeTrait
	ScopeEnum
	ScopeFunction
	ScopeClosure
	ScopeArrowFn
	ScopeMatch
)

// Scope is one frame of the parser's context stack.
type Scope struct {
	Kind ScopeKind
	Name string
}

// enterScope pushes a frame and returns the paired release. Callers must
// defer the result so the stack is restored on every exit path, including
// errors.
func (p *Parser) enterScope(s Scope) func() {
	p.scopes = append(p.scopes, s)
	return func() {
		p.scopes = p.scopes[:len(p.scopes)-1]
	}
}

// classish reports whether the frame is a class-like body.
func (k ScopeKind) classish() bool {
	switch k {
	case ScopeClass, ScopeInterface, ScopeTrait, ScopeEnum:
		return true
	}
	return false
}

// enclosingClassish returns the nearest class-like frame, if any.
func (p *Parser) enclosingClassish() (Scope, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if p.scopes[i].Kind.classish() {
			return p.scopes[i], true
		}
	}
	return Scope{}, false
}

// pushAttributes appends gathered attribute groups to the pending buffer.
func (p *Parser) pushAttributes(groups []ast.AttributeGroup) {
	p.attributes = append(p.attributes, groups...)
}

// drainAttributes empties and returns the pending attribute buffer. Every
// attributable declaration drains at construction time; the buffer must be
// empty at each statement boundary.
func (p *Parser) drainAttributes() []ast.AttributeGroup {
	attrs := p.attributes
	p.attributes = nil
	return attrs
}
