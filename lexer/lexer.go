package lexer

import "strings"

type lexState int

const (
	stInitial lexState = iota
	stScripting
	stDoubleQuotes
	stVarname
)

// Lexer turns PHP source text into a token stream. It is a hand-written
// state machine: HTML mode until an open tag, scripting mode inside, plus
// sub-states for double-quoted string interpolation.
type Lexer struct {
	input string
	pos   int
	line  int
	col   int

	state   lexState
	pending []Token

	// brace nesting per open string interpolation ({$...})
	interp []int
}

// New creates a lexer over input. A leading shebang line is skipped.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 1, state: stInitial}
	if strings.HasPrefix(input, "#!") {
		for l.pos < len(input) && input[l.pos] != '\n' {
			l.advance()
		}
		if l.pos < len(input) {
			l.advance()
		}
	}
	return l
}

// Tokenize lexes the whole input, returning a slice terminated by T_EOF.
func Tokenize(input string) []Token {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == T_EOF {
			return tokens
		}
	}
}

// NextToken returns the next significant token. Whitespace and comments are
// consumed silently.
func (l *Lexer) NextToken() Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	switch l.state {
	case stInitial:
		return l.lexInitial()
	case stDoubleQuotes:
		return l.lexDoubleQuotes()
	case stVarname:
		return l.lexVarname()
	default:
		return l.lexScripting()
	}
}

// ============= HTML MODE =============

func (l *Lexer) lexInitial() Token {
	if l.pos >= len(l.input) {
		return l.eof()
	}

	start, pos := l.mark()
	idx := strings.Index(l.input[l.pos:], "<?")
	if idx < 0 {
		l.advanceTo(len(l.input))
		return l.make(T_INLINE_HTML, start, pos)
	}
	if idx > 0 {
		l.advanceTo(l.pos + idx)
		return l.make(T_INLINE_HTML, start, pos)
	}

	rest := l.input[l.pos:]
	l.state = stScripting
	switch {
	case strings.HasPrefix(rest, "<?="):
		l.advanceTo(l.pos + 3)
		return l.make(T_OPEN_TAG_WITH_ECHO, start, pos)
	case hasOpenTagPrefix(rest):
		l.advanceTo(l.pos + 5)
		return l.make(T_OPEN_TAG, start, pos)
	default:
		l.advanceTo(l.pos + 2)
		return l.make(T_OPEN_TAG, start, pos)
	}
}

func hasOpenTagPrefix(s string) bool {
	if len(s) < 5 || strings.ToLower(s[:5]) != "<?php" {
		return false
	}
	return len(s) == 5 || isWhitespace(s[5])
}

// ============= SCRIPTING MODE =============

func (l *Lexer) lexScripting() Token {
	l.skipWhitespaceAndComments()
	if l.pos >= len(l.input) {
		return l.eof()
	}

	start, pos := l.mark()
	ch := l.cur()

	switch {
	case ch == '?' && l.peekAt(1) == '>':
		l.advanceN(2)
		l.state = stInitial
		return l.make(T_CLOSE_TAG, start, pos)

	case isIdentStart(ch):
		return l.scanName()

	case ch == '\\' && isIdentStart(l.peekAt(1)):
		l.advance()
		l.readIdent()
		for l.cur() == '\\' && isIdentStart(l.peekAt(1)) {
			l.advance()
			l.readIdent()
		}
		return l.make(T_NAME_FULLY_QUALIFIED, start, pos)

	case ch == '$' && isIdentStart(l.peekAt(1)):
		l.advance()
		l.readIdent()
		return l.make(T_VARIABLE, start, pos)

	case ch == '$' && l.peekAt(1) == '{':
		l.advanceN(2)
		return l.make(T_DOLLAR_OPEN_CURLY_BRACES, start, pos)

	case isDigit(ch), ch == '.' && isDigit(l.peekAt(1)):
		return l.scanNumber()

	case ch == '\'':
		return l.scanSingleQuoted()

	case ch == '"':
		return l.scanDoubleQuoted()

	case ch == '<' && l.peekAt(1) == '<' && l.peekAt(2) == '<':
		return l.scanHeredoc()

	case ch == '(':
		if tok, ok := l.scanCast(); ok {
			return tok
		}
		l.advance()
		return l.make(TOKEN_LPAREN, start, pos)

	case ch == '#' && l.peekAt(1) == '[':
		l.advanceN(2)
		return l.make(T_ATTRIBUTE, start, pos)

	case ch == '{':
		l.advance()
		if n := len(l.interp); n > 0 {
			l.interp[n-1]++
		}
		return l.make(TOKEN_LBRACE, start, pos)

	case ch == '}':
		l.advance()
		if n := len(l.interp); n > 0 {
			if l.interp[n-1] == 0 {
				l.interp = l.interp[:n-1]
				l.state = stDoubleQuotes
			} else {
				l.interp[n-1]--
			}
		}
		return l.make(TOKEN_RBRACE, start, pos)

	default:
		return l.scanOperator()
	}
}

func (l *Lexer) scanName() Token {
	start, pos := l.mark()
	l.readIdent()
	lower := strings.ToLower(l.input[start:l.pos])

	if lower == "namespace" && l.cur() == '\\' && isIdentStart(l.peekAt(1)) {
		for l.cur() == '\\' && isIdentStart(l.peekAt(1)) {
			l.advance()
			l.readIdent()
		}
		return l.make(T_NAME_RELATIVE, start, pos)
	}

	if kw, ok := Keywords[lower]; ok {
		if kw == T_YIELD {
			if end, found := l.peekYieldFrom(); found {
				l.advanceTo(end)
				return l.make(T_YIELD_FROM, start, pos)
			}
		}
		return l.make(kw, start, pos)
	}

	if l.cur() == '\\' && isIdentStart(l.peekAt(1)) {
		for l.cur() == '\\' && isIdentStart(l.peekAt(1)) {
			l.advance()
			l.readIdent()
		}
		return l.make(T_NAME_QUALIFIED, start, pos)
	}

	return l.make(T_STRING, start, pos)
}

// peekYieldFrom looks past whitespace for the contextual `from` keyword.
func (l *Lexer) peekYieldFrom() (int, bool) {
	i := l.pos
	for i < len(l.input) && isWhitespace(l.input[i]) {
		i++
	}
	if i == l.pos {
		return 0, false
	}
	j := i
	for j < len(l.input) && isIdentPart(l.input[j]) {
		j++
	}
	if strings.ToLower(l.input[i:j]) == "from" {
		return j, true
	}
	return 0, false
}

func (l *Lexer) scanNumber() Token {
	start, pos := l.mark()
	isFloat := false

	if l.cur() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.cur()) || l.cur() == '_' {
			l.advance()
		}
		return l.make(T_LNUMBER, start, pos)
	}
	if l.cur() == '0' && (l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		l.advanceN(2)
		for l.cur() == '0' || l.cur() == '1' || l.cur() == '_' {
			l.advance()
		}
		return l.make(T_LNUMBER, start, pos)
	}
	if l.cur() == '0' && (l.peekAt(1) == 'o' || l.peekAt(1) == 'O') {
		l.advanceN(2)
		for isDigit(l.cur()) || l.cur() == '_' {
			l.advance()
		}
		return l.make(T_LNUMBER, start, pos)
	}

	for isDigit(l.cur()) || l.cur() == '_' {
		l.advance()
	}
	if l.cur() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.cur()) || l.cur() == '_' {
			l.advance()
		}
	}
	if l.cur() == 'e' || l.cur() == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			isFloat = true
			l.advanceN(2)
			for isDigit(l.cur()) {
				l.advance()
			}
		}
	}

	if isFloat {
		return l.make(T_DNUMBER, start, pos)
	}
	return l.make(T_LNUMBER, start, pos)
}

func (l *Lexer) scanSingleQuoted() Token {
	start, pos := l.mark()
	l.advance()
	for l.pos < len(l.input) {
		switch l.cur() {
		case '\\':
			l.advanceN(2)
		case '\'':
			l.advance()
			return l.make(T_CONSTANT_ENCAPSED_STRING, start, pos)
		default:
			l.advance()
		}
	}
	return l.make(T_CONSTANT_ENCAPSED_STRING, start, pos)
}

func (l *Lexer) scanDoubleQuoted() Token {
	start, pos := l.mark()

	if !l.hasInterpolation() {
		l.advance()
		for l.pos < len(l.input) {
			switch l.cur() {
			case '\\':
				l.advanceN(2)
			case '"':
				l.advance()
				return l.make(T_CONSTANT_ENCAPSED_STRING, start, pos)
			default:
				l.advance()
			}
		}
		return l.make(T_CONSTANT_ENCAPSED_STRING, start, pos)
	}

	l.advance()
	l.state = stDoubleQuotes
	return l.make(TOKEN_QUOTE, start, pos)
}

// hasInterpolation scans ahead (without advancing) for `$name`, `${` or `{$`
// before the closing quote.
func (l *Lexer) hasInterpolation() bool {
	for i := l.pos + 1; i < len(l.input); i++ {
		switch l.input[i] {
		case '\\':
			i++
		case '"':
			return false
		case '$':
			if i+1 < len(l.input) && (isIdentStart(l.input[i+1]) || l.input[i+1] == '{') {
				return true
			}
		case '{':
			if i+1 < len(l.input) && l.input[i+1] == '$' {
				return true
			}
		}
	}
	return false
}

func (l *Lexer) lexDoubleQuotes() Token {
	if l.pos >= len(l.input) {
		return l.eof()
	}

	start, pos := l.mark()
	ch := l.cur()

	switch {
	case ch == '"':
		l.advance()
		l.state = stScripting
		return l.make(TOKEN_QUOTE, start, pos)

	case ch == '$' && isIdentStart(l.peekAt(1)):
		l.advance()
		l.readIdent()
		return l.make(T_VARIABLE, start, pos)

	case ch == '$' && l.peekAt(1) == '{':
		l.advanceN(2)
		if l.simpleVarnameAhead() {
			l.state = stVarname
		} else {
			l.interp = append(l.interp, 0)
			l.state = stScripting
		}
		return l.make(T_DOLLAR_OPEN_CURLY_BRACES, start, pos)

	case ch == '{' && l.peekAt(1) == '$':
		l.advance()
		l.interp = append(l.interp, 0)
		l.state = stScripting
		return l.make(T_CURLY_OPEN, start, pos)

	default:
		for l.pos < len(l.input) {
			c := l.cur()
			if c == '"' {
				break
			}
			if c == '\\' {
				l.advanceN(2)
				continue
			}
			if c == '$' && (isIdentStart(l.peekAt(1)) || l.peekAt(1) == '{') {
				break
			}
			if c == '{' && l.peekAt(1) == '$' {
				break
			}
			l.advance()
		}
		return l.make(T_ENCAPSED_AND_WHITESPACE, start, pos)
	}
}

func (l *Lexer) simpleVarnameAhead() bool {
	i := l.pos
	if i >= len(l.input) || !isIdentStart(l.input[i]) {
		return false
	}
	for i < len(l.input) && isIdentPart(l.input[i]) {
		i++
	}
	return i < len(l.input) && l.input[i] == '}'
}

func (l *Lexer) lexVarname() Token {
	start, pos := l.mark()
	if isIdentStart(l.cur()) {
		l.readIdent()
		return l.make(T_STRING_VARNAME, start, pos)
	}
	l.state = stDoubleQuotes
	if l.cur() == '}' {
		l.advance()
		return l.make(TOKEN_RBRACE, start, pos)
	}
	return l.lexDoubleQuotes()
}

// ============= HEREDOC / NOWDOC =============

// scanHeredoc lexes the whole heredoc or nowdoc construct up front, queueing
// the body and end tokens behind the start token.
func (l *Lexer) scanHeredoc() Token {
	start, pos := l.mark()
	l.advanceN(3)
	for l.cur() == ' ' || l.cur() == '\t' {
		l.advance()
	}

	quote := byte(0)
	if l.cur() == '\'' || l.cur() == '"' {
		quote = l.cur()
		l.advance()
	}
	labelStart := l.pos
	l.readIdent()
	label := l.input[labelStart:l.pos]
	if quote != 0 && l.cur() == quote {
		l.advance()
	}
	if l.cur() == '\r' {
		l.advance()
	}
	if l.cur() == '\n' {
		l.advance()
	}
	startTok := l.make(T_START_HEREDOC, start, pos)

	// Find the terminating line: optional indentation then the label
	// followed by a non-identifier character.
	bodyStart := l.pos
	lineStart := l.pos
	endLine, endLabel := -1, -1
	for i := l.pos; i <= len(l.input); i++ {
		if i == len(l.input) || l.input[i] == '\n' {
			if at, ok := matchHeredocEnd(l.input, lineStart, label); ok {
				endLine, endLabel = lineStart, at
				break
			}
			lineStart = i + 1
		}
	}
	if endLine < 0 {
		endLine, endLabel = len(l.input), len(l.input)
	}

	bodyEnd := endLine
	if bodyEnd > bodyStart {
		bStart, bPos := l.mark()
		l.advanceTo(bodyEnd)
		l.pending = append(l.pending, l.make(T_ENCAPSED_AND_WHITESPACE, bStart, bPos))
	}
	eStart, ePos := l.mark()
	l.advanceTo(endLabel)
	l.pending = append(l.pending, l.make(T_END_HEREDOC, eStart, ePos))

	return startTok
}

func matchHeredocEnd(input string, lineStart int, label string) (int, bool) {
	i := lineStart
	for i < len(input) && (input[i] == ' ' || input[i] == '\t') {
		i++
	}
	end := i + len(label)
	if end > len(input) || input[i:end] != label {
		return 0, false
	}
	if end < len(input) && isIdentPart(input[end]) {
		return 0, false
	}
	return end, true
}

// ============= OPERATORS =============

func (l *Lexer) scanCast() (Token, bool) {
	start, pos := l.mark()
	i := l.pos + 1
	for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t') {
		i++
	}
	j := i
	for j < len(l.input) && isIdentPart(l.input[j]) {
		j++
	}
	word := strings.ToLower(l.input[i:j])
	k := j
	for k < len(l.input) && (l.input[k] == ' ' || l.input[k] == '\t') {
		k++
	}
	if k >= len(l.input) || l.input[k] != ')' {
		return Token{}, false
	}

	var tokType TokenType
	switch word {
	case "int", "integer":
		tokType = T_INT_CAST
	case "bool", "boolean":
		tokType = T_BOOL_CAST
	case "float", "double", "real":
		tokType = T_DOUBLE_CAST
	case "string", "binary":
		tokType = T_STRING_CAST
	case "array":
		tokType = T_ARRAY_CAST
	case "object":
		tokType = T_OBJECT_CAST
	case "unset":
		tokType = T_UNSET_CAST
	default:
		return Token{}, false
	}

	l.advanceTo(k + 1)
	return l.make(tokType, start, pos), true
}

var threeByteOps = []struct {
	text string
	tok  TokenType
}{
	{"===", T_IS_IDENTICAL},
	{"!==", T_IS_NOT_IDENTICAL},
	{"<=>", T_SPACESHIP},
	{"**=", T_POW_EQUAL},
	{"<<=", T_SL_EQUAL},
	{">>=", T_SR_EQUAL},
	{"...", T_ELLIPSIS},
	{"??=", T_COALESCE_EQUAL},
	{"?->", T_NULLSAFE_OBJECT_OPERATOR},
}

var twoByteOps = []struct {
	text string
	tok  TokenType
}{
	{"==", T_IS_EQUAL},
	{"!=", T_IS_NOT_EQUAL},
	{"<>", T_IS_NOT_EQUAL},
	{"<=", T_IS_SMALLER_OR_EQUAL},
	{">=", T_IS_GREATER_OR_EQUAL},
	{"&&", T_BOOLEAN_AND},
	{"||", T_BOOLEAN_OR},
	{"??", T_COALESCE},
	{"++", T_INC},
	{"--", T_DEC},
	{"+=", T_PLUS_EQUAL},
	{"-=", T_MINUS_EQUAL},
	{"*=", T_MUL_EQUAL},
	{"/=", T_DIV_EQUAL},
	{".=", T_CONCAT_EQUAL},
	{"%=", T_MOD_EQUAL},
	{"&=", T_AND_EQUAL},
	{"|=", T_OR_EQUAL},
	{"^=", T_XOR_EQUAL},
	{"<<", T_SL},
	{">>", T_SR},
	{"**", T_POW},
	{"->", T_OBJECT_OPERATOR},
	{"=>", T_DOUBLE_ARROW},
	{"::", T_PAAMAYIM_NEKUDOTAYIM},
}

func (l *Lexer) scanOperator() Token {
	start, pos := l.mark()
	rest := l.input[l.pos:]

	for _, op := range threeByteOps {
		if strings.HasPrefix(rest, op.text) {
			l.advanceN(3)
			return l.make(op.tok, start, pos)
		}
	}
	for _, op := range twoByteOps {
		if strings.HasPrefix(rest, op.text) {
			l.advanceN(2)
			return l.make(op.tok, start, pos)
		}
	}

	ch := l.cur()
	l.advance()
	switch ch {
	case ';', ',', '.', '{', '}', '(', ')', '[', ']', '+', '-', '*', '/',
		'%', '&', '|', '^', '~', '<', '>', '=', '!', '?', ':', '@', '$', '\\', '"':
		return l.make(TokenType(1000+int(ch)), start, pos)
	default:
		return l.make(T_BAD_CHARACTER, start, pos)
	}
}

// ============= HELPERS =============

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		ch := l.cur()
		switch {
		case isWhitespace(ch):
			l.advance()
		case ch == '/' && l.peekAt(1) == '/':
			l.skipLineComment()
		case ch == '#' && l.peekAt(1) != '[':
			l.skipLineComment()
		case ch == '/' && l.peekAt(1) == '*':
			l.advanceN(2)
			for l.pos < len(l.input) {
				if l.cur() == '*' && l.peekAt(1) == '/' {
					l.advanceN(2)
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

// skipLineComment stops at the newline or before a close tag; `// ?>` ends
// both the comment and the script block.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.input) {
		if l.cur() == '\n' {
			return
		}
		if l.cur() == '?' && l.peekAt(1) == '>' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) cur() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(k int) byte {
	if l.pos+k >= len(l.input) {
		return 0
	}
	return l.input[l.pos+k]
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) advanceTo(off int) {
	for l.pos < off {
		l.advance()
	}
}

func (l *Lexer) readIdent() {
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.advance()
	}
}

func (l *Lexer) mark() (int, Position) {
	return l.pos, Position{Line: l.line, Column: l.col}
}

func (l *Lexer) make(tokType TokenType, start int, pos Position) Token {
	return Token{
		Type:  tokType,
		Value: l.input[start:l.pos],
		Span:  Span{Start: start, End: l.pos},
		Pos:   pos,
	}
}

func (l *Lexer) eof() Token {
	return Token{
		Type: T_EOF,
		Span: Span{Start: len(l.input), End: len(l.input)},
		Pos:  Position{Line: l.line, Column: l.col},
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch >= 0x80 ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
