// Package parser implements the RPAL parser.
//
// The parser is a straightforward recursive descent over the RPAL
// reference grammar, one method per production:
//
//	E  -> let D in E | fn Vb+ . E | Ew
//	Ew -> T where Dr | T
//	T  -> Ta (, Ta)+ | Ta
//	Ta -> Ta aug Tc | Tc
//	Tc -> B -> Tc | Tc | B
//	B  -> B or Bt | Bt
//	Bt -> Bt & Bs | Bs
//	Bs -> not Bp | Bp
//	Bp -> A (gr|ge|ls|le|eq|ne) A | A
//	A  -> A + At | A - At | + At | - At | At
//	At -> At * Af | At / Af | Af
//	Af -> Ap ** Af | Ap
//	Ap -> Ap @ <Id> R | R
//	R  -> R Rn | Rn
//	Rn -> <Id> | <Int> | <Str> | true | false | nil | dummy | ( E )
//	D  -> Da within D | Da
//	Da -> Dr (and Dr)+ | Dr
//	Dr -> rec Db | Db
//	Db -> Vl = E | <Id> Vb+ = E | ( D )
//	Vb -> <Id> | ( Vl ) | ( )
//	Vl -> <Id> (, <Id>)*
//
// The grammar is already factored into precedence layers, so no
// operator-precedence machinery is needed. Comparison aliases
// (>, >=, <, <=) normalize to their keyword forms (gr, ge, ls, le).
package parser

import (
	"fmt"

	"github.com/dilanka-heshan/go-rpal/internal/ast"
	"github.com/dilanka-heshan/go-rpal/internal/lexer"
)

// ParserError represents a syntax error with its source position.
type ParserError struct {
	Message string
	Pos     lexer.Position
}

// Error implements the error interface.
func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// Parser represents the RPAL parser.
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []*ParserError
}

// New creates a parser reading tokens from the given lexer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the syntax errors encountered so far.
func (p *Parser) Errors() []*ParserError {
	return p.errors
}

// Parse parses a complete RPAL program (a single expression followed
// by EOF) and returns its raw syntax tree. Returns nil if the program
// has syntax errors; the errors are available via Errors().
func (p *Parser) Parse() *ast.Node {
	e := p.parseE()
	if e == nil {
		return nil
	}
	if !p.curIs(lexer.EOF) {
		p.addError("unexpected %s after expression", p.curToken)
		return nil
	}
	return e
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) addError(format string, args ...any) {
	p.errors = append(p.errors, &ParserError{
		Message: fmt.Sprintf(format, args...),
		Pos:     p.curToken.Pos,
	})
}

// expect consumes the current token if it has the wanted type,
// recording an error otherwise.
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, bool) {
	if !p.curIs(t) {
		p.addError("expected %s, got %s", t, p.curToken)
		return p.curToken, false
	}
	tok := p.curToken
	p.nextToken()
	return tok, true
}

// E -> let D in E | fn Vb+ . E | Ew
func (p *Parser) parseE() *ast.Node {
	switch p.curToken.Type {
	case lexer.LET:
		p.nextToken()
		d := p.parseD()
		if d == nil {
			return nil
		}
		if _, ok := p.expect(lexer.IN); !ok {
			return nil
		}
		e := p.parseE()
		if e == nil {
			return nil
		}
		return ast.New("let", d, e)

	case lexer.FN:
		p.nextToken()
		var params []*ast.Node
		for p.curIs(lexer.IDENT) || p.curIs(lexer.LPAREN) {
			vb := p.parseVb()
			if vb == nil {
				return nil
			}
			params = append(params, vb)
		}
		if len(params) == 0 {
			p.addError("fn requires at least one parameter, got %s", p.curToken)
			return nil
		}
		if _, ok := p.expect(lexer.DOT); !ok {
			return nil
		}
		e := p.parseE()
		if e == nil {
			return nil
		}
		return ast.New("lambda", append(params, e)...)

	default:
		return p.parseEw()
	}
}

// Ew -> T where Dr | T
func (p *Parser) parseEw() *ast.Node {
	t := p.parseT()
	if t == nil {
		return nil
	}
	if p.curIs(lexer.WHERE) {
		p.nextToken()
		dr := p.parseDr()
		if dr == nil {
			return nil
		}
		return ast.New("where", t, dr)
	}
	return t
}

// T -> Ta (, Ta)+ | Ta
func (p *Parser) parseT() *ast.Node {
	nodes := []*ast.Node{p.parseTa()}
	if nodes[0] == nil {
		return nil
	}
	for p.curIs(lexer.COMMA) {
		p.nextToken()
		ta := p.parseTa()
		if ta == nil {
			return nil
		}
		nodes = append(nodes, ta)
	}
	if len(nodes) > 1 {
		return ast.New("tau", nodes...)
	}
	return nodes[0]
}

// Ta -> Ta aug Tc | Tc
func (p *Parser) parseTa() *ast.Node {
	left := p.parseTc()
	for left != nil && p.curIs(lexer.AUG) {
		p.nextToken()
		right := p.parseTc()
		if right == nil {
			return nil
		}
		left = ast.New("aug", left, right)
	}
	return left
}

// Tc -> B -> Tc | Tc | B
func (p *Parser) parseTc() *ast.Node {
	cond := p.parseB()
	if cond == nil {
		return nil
	}
	if p.curIs(lexer.ARROW) {
		p.nextToken()
		then := p.parseTc()
		if then == nil {
			return nil
		}
		if _, ok := p.expect(lexer.BAR); !ok {
			return nil
		}
		els := p.parseTc()
		if els == nil {
			return nil
		}
		return ast.New("->", cond, then, els)
	}
	return cond
}

// B -> B or Bt | Bt
func (p *Parser) parseB() *ast.Node {
	left := p.parseBt()
	for left != nil && p.curIs(lexer.OR) {
		p.nextToken()
		right := p.parseBt()
		if right == nil {
			return nil
		}
		left = ast.New("or", left, right)
	}
	return left
}

// Bt -> Bt & Bs | Bs
func (p *Parser) parseBt() *ast.Node {
	left := p.parseBs()
	for left != nil && p.curIs(lexer.AMP) {
		p.nextToken()
		right := p.parseBs()
		if right == nil {
			return nil
		}
		left = ast.New("&", left, right)
	}
	return left
}

// Bs -> not Bp | Bp
func (p *Parser) parseBs() *ast.Node {
	if p.curIs(lexer.NOT) {
		p.nextToken()
		bp := p.parseBp()
		if bp == nil {
			return nil
		}
		return ast.New("not", bp)
	}
	return p.parseBp()
}

// comparisonOps normalizes comparison tokens (including the symbolic
// aliases) to their standardized operator labels.
var comparisonOps = map[lexer.TokenType]string{
	lexer.GR:         "gr",
	lexer.GREATER:    "gr",
	lexer.GE:         "ge",
	lexer.GREATER_EQ: "ge",
	lexer.LS:         "ls",
	lexer.LESS:       "ls",
	lexer.LE:         "le",
	lexer.LESS_EQ:    "le",
	lexer.EQ:         "eq",
	lexer.NE:         "ne",
}

// Bp -> A (gr|ge|ls|le|eq|ne) A | A
func (p *Parser) parseBp() *ast.Node {
	left := p.parseA()
	if left == nil {
		return nil
	}
	if op, ok := comparisonOps[p.curToken.Type]; ok {
		p.nextToken()
		right := p.parseA()
		if right == nil {
			return nil
		}
		return ast.New(op, left, right)
	}
	return left
}

// A -> A + At | A - At | + At | - At | At
// The neg keyword is accepted as a spelled-out unary minus.
func (p *Parser) parseA() *ast.Node {
	var left *ast.Node
	switch p.curToken.Type {
	case lexer.PLUS:
		p.nextToken()
		left = p.parseAt()
	case lexer.MINUS, lexer.NEG:
		p.nextToken()
		at := p.parseAt()
		if at == nil {
			return nil
		}
		left = ast.New("neg", at)
	default:
		left = p.parseAt()
	}
	for left != nil && (p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS)) {
		op := p.curToken.Literal
		p.nextToken()
		right := p.parseAt()
		if right == nil {
			return nil
		}
		left = ast.New(op, left, right)
	}
	return left
}

// At -> At * Af | At / Af | Af
func (p *Parser) parseAt() *ast.Node {
	left := p.parseAf()
	for left != nil && (p.curIs(lexer.ASTERISK) || p.curIs(lexer.SLASH)) {
		op := p.curToken.Literal
		p.nextToken()
		right := p.parseAf()
		if right == nil {
			return nil
		}
		left = ast.New(op, left, right)
	}
	return left
}

// Af -> Ap ** Af | Ap
func (p *Parser) parseAf() *ast.Node {
	left := p.parseAp()
	if left == nil {
		return nil
	}
	if p.curIs(lexer.POWER) {
		p.nextToken()
		right := p.parseAf() // right-associative
		if right == nil {
			return nil
		}
		return ast.New("**", left, right)
	}
	return left
}

// Ap -> Ap @ <Id> R | R
func (p *Parser) parseAp() *ast.Node {
	left := p.parseR()
	for left != nil && p.curIs(lexer.AT) {
		p.nextToken()
		id, ok := p.expect(lexer.IDENT)
		if !ok {
			return nil
		}
		right := p.parseR()
		if right == nil {
			return nil
		}
		left = ast.New("@", left, ast.Identifier(id.Literal), right)
	}
	return left
}

// operandStart reports whether a token can begin an operand (Rn).
// Application is juxtaposition, so R keeps consuming operands while
// the next token can start one.
func operandStart(t lexer.TokenType) bool {
	switch t {
	case lexer.IDENT, lexer.INT, lexer.STRING,
		lexer.TRUE, lexer.FALSE, lexer.NIL, lexer.DUMMY, lexer.LPAREN:
		return true
	}
	return false
}

// R -> R Rn | Rn
func (p *Parser) parseR() *ast.Node {
	left := p.parseRn()
	for left != nil && operandStart(p.curToken.Type) {
		right := p.parseRn()
		if right == nil {
			return nil
		}
		left = ast.New("gamma", left, right)
	}
	return left
}

// Rn -> <Id> | <Int> | <Str> | true | false | nil | dummy | ( E )
func (p *Parser) parseRn() *ast.Node {
	switch p.curToken.Type {
	case lexer.IDENT:
		tok := p.curToken
		p.nextToken()
		return ast.Identifier(tok.Literal)
	case lexer.INT:
		tok := p.curToken
		p.nextToken()
		return ast.Integer(tok.Literal)
	case lexer.STRING:
		tok := p.curToken
		p.nextToken()
		return ast.Str(tok.Literal)
	case lexer.TRUE:
		p.nextToken()
		return ast.True()
	case lexer.FALSE:
		p.nextToken()
		return ast.False()
	case lexer.NIL:
		p.nextToken()
		return ast.Nil()
	case lexer.DUMMY:
		p.nextToken()
		return ast.Dummy()
	case lexer.LPAREN:
		p.nextToken()
		e := p.parseE()
		if e == nil {
			return nil
		}
		if _, ok := p.expect(lexer.RPAREN); !ok {
			return nil
		}
		return e
	default:
		p.addError("unexpected %s in expression", p.curToken)
		return nil
	}
}

// D -> Da within D | Da
func (p *Parser) parseD() *ast.Node {
	left := p.parseDa()
	if left == nil {
		return nil
	}
	if p.curIs(lexer.WITHIN) {
		p.nextToken()
		right := p.parseD()
		if right == nil {
			return nil
		}
		return ast.New("within", left, right)
	}
	return left
}

// Da -> Dr (and Dr)+ | Dr
func (p *Parser) parseDa() *ast.Node {
	nodes := []*ast.Node{p.parseDr()}
	if nodes[0] == nil {
		return nil
	}
	for p.curIs(lexer.AND) {
		p.nextToken()
		dr := p.parseDr()
		if dr == nil {
			return nil
		}
		nodes = append(nodes, dr)
	}
	if len(nodes) > 1 {
		return ast.New("and", nodes...)
	}
	return nodes[0]
}

// Dr -> rec Db | Db
func (p *Parser) parseDr() *ast.Node {
	if p.curIs(lexer.REC) {
		p.nextToken()
		db := p.parseDb()
		if db == nil {
			return nil
		}
		return ast.New("rec", db)
	}
	return p.parseDb()
}

// Db -> Vl = E | <Id> Vb+ = E | ( D )
func (p *Parser) parseDb() *ast.Node {
	if p.curIs(lexer.LPAREN) {
		p.nextToken()
		d := p.parseD()
		if d == nil {
			return nil
		}
		if _, ok := p.expect(lexer.RPAREN); !ok {
			return nil
		}
		return d
	}

	id, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}

	// <Id> Vb+ = E  (function form)
	if p.curIs(lexer.IDENT) || p.curIs(lexer.LPAREN) {
		params := []*ast.Node{ast.Identifier(id.Literal)}
		for p.curIs(lexer.IDENT) || p.curIs(lexer.LPAREN) {
			vb := p.parseVb()
			if vb == nil {
				return nil
			}
			params = append(params, vb)
		}
		if _, ok := p.expect(lexer.ASSIGN); !ok {
			return nil
		}
		e := p.parseE()
		if e == nil {
			return nil
		}
		return ast.New("function_form", append(params, e)...)
	}

	// Vl = E  (possibly a comma-separated name list)
	binder := ast.Identifier(id.Literal)
	if p.curIs(lexer.COMMA) {
		names := []*ast.Node{binder}
		for p.curIs(lexer.COMMA) {
			p.nextToken()
			next, ok := p.expect(lexer.IDENT)
			if !ok {
				return nil
			}
			names = append(names, ast.Identifier(next.Literal))
		}
		binder = ast.New(",", names...)
	}
	if _, ok := p.expect(lexer.ASSIGN); !ok {
		return nil
	}
	e := p.parseE()
	if e == nil {
		return nil
	}
	return ast.New("=", binder, e)
}

// Vb -> <Id> | ( Vl ) | ( )
func (p *Parser) parseVb() *ast.Node {
	switch p.curToken.Type {
	case lexer.IDENT:
		tok := p.curToken
		p.nextToken()
		return ast.Identifier(tok.Literal)
	case lexer.LPAREN:
		p.nextToken()
		if p.curIs(lexer.RPAREN) {
			p.nextToken()
			return ast.New("()")
		}
		vl := p.parseVl()
		if vl == nil {
			return nil
		}
		if _, ok := p.expect(lexer.RPAREN); !ok {
			return nil
		}
		return vl
	default:
		p.addError("invalid parameter, got %s", p.curToken)
		return nil
	}
}

// Vl -> <Id> (, <Id>)*
func (p *Parser) parseVl() *ast.Node {
	tok, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}
	nodes := []*ast.Node{ast.Identifier(tok.Literal)}
	for p.curIs(lexer.COMMA) {
		p.nextToken()
		next, ok := p.expect(lexer.IDENT)
		if !ok {
			return nil
		}
		nodes = append(nodes, ast.Identifier(next.Literal))
	}
	if len(nodes) == 1 {
		return nodes[0]
	}
	return ast.New(",", nodes...)
}
