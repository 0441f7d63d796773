// Package parser implements a recursive-descent, Pratt-style parser that
// turns a token stream into the AST defined in internal/ast.
package parser

import (
	"github.com/nyjc-computing/pseudo9608/internal/ast"
	cerrors "github.com/nyjc-computing/pseudo9608/internal/errors"
	"github.com/nyjc-computing/pseudo9608/internal/lexer"
	"github.com/nyjc-computing/pseudo9608/internal/token"
	"github.com/nyjc-computing/pseudo9608/internal/types"
)

// Parser consumes a fixed token slice produced by the lexer.
type Parser struct {
	toks []token.Token
	pos  int
}

// New creates a Parser over an already-scanned token stream.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse scans src and parses it into a Program, stopping at the first
// scan or parse error.
func Parse(src string) (*ast.Program, *cerrors.Diagnostic) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(toks).ParseProgram()
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}
func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) errorf(format string, args ...any) *cerrors.Diagnostic {
	return cerrors.New(cerrors.Parse, p.cur().Pos, format, args...)
}

func (p *Parser) expect(kind token.Kind) (token.Token, *cerrors.Diagnostic) {
	if p.cur().Kind != kind {
		return token.Token{}, p.errorf("expected %s, got %s %q", kind, p.cur().Kind, p.cur().Lexeme)
	}
	return p.advance(), nil
}

// skipNewlines consumes zero or more NEWLINE tokens (blank statements
// between real ones).
func (p *Parser) skipNewlines() {
	for p.cur().Kind == token.NEWLINE {
		p.advance()
	}
}

// endOfStatement consumes the statement terminator: a NEWLINE or EOF.
func (p *Parser) endOfStatement() *cerrors.Diagnostic {
	switch p.cur().Kind {
	case token.NEWLINE:
		p.advance()
		return nil
	case token.EOF:
		return nil
	default:
		return p.errorf("expected end of statement, got %s %q", p.cur().Kind, p.cur().Lexeme)
	}
}

// ParseProgram parses the entire token stream into a Program.
func (p *Parser) ParseProgram() (*ast.Program, *cerrors.Diagnostic) {
	prog := &ast.Program{}
	p.skipNewlines()
	for p.cur().Kind != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
		p.skipNewlines()
	}
	return prog, nil
}

// parseBlock parses statements until one of the given terminator keywords
// is encountered (without consuming it).
func (p *Parser) parseBlock(terminators ...token.Kind) (ast.Block, *cerrors.Diagnostic) {
	var block ast.Block
	p.skipNewlines()
	for !p.atAny(terminators...) {
		if p.cur().Kind == token.EOF {
			return nil, p.errorf("unexpected end of file, expected one of %v", terminators)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block = append(block, stmt)
		p.skipNewlines()
	}
	return block, nil
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.cur().Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) parseStatement() (ast.Stmt, *cerrors.Diagnostic) {
	switch p.cur().Kind {
	case token.DECLARE:
		return p.parseDeclare()
	case token.TYPE:
		return p.parseTypeDecl()
	case token.IF:
		return p.parseIf()
	case token.CASE:
		return p.parseCase()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.REPEAT:
		return p.parseRepeat()
	case token.PROCEDURE:
		return p.parseProcedureDecl()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.CALL:
		return p.parseCallStmt()
	case token.RETURN:
		return p.parseReturn()
	case token.INPUT:
		return p.parseInput()
	case token.OUTPUT:
		return p.parseOutput()
	case token.OPENFILE:
		return p.parseOpenFile()
	case token.READFILE:
		return p.parseReadFile()
	case token.WRITEFILE:
		return p.parseWriteFile()
	case token.CLOSEFILE:
		return p.parseCloseFile()
	case token.IDENT:
		return p.parseAssign()
	default:
		return nil, p.errorf("unexpected token %s %q at start of statement", p.cur().Kind, p.cur().Lexeme)
	}
}

// parseTypeAnnotation parses the type reference that follows a ':' in a
// DECLARE or parameter list: a primitive keyword or a record type name.
func (p *Parser) parseTypeAnnotation() (types.Type, *cerrors.Diagnostic) {
	switch p.cur().Kind {
	case token.INTEGER:
		p.advance()
		return types.Integer, nil
	case token.REALTYPE:
		p.advance()
		return types.RealT, nil
	case token.STRINGTYPE:
		p.advance()
		return types.StringT, nil
	case token.BOOLEAN:
		p.advance()
		return types.Bool, nil
	case token.IDENT:
		name := p.advance().Lexeme
		return types.NewRecord(name), nil
	default:
		return types.Type{}, p.errorf("expected a type name, got %s %q", p.cur().Kind, p.cur().Lexeme)
	}
}

func (p *Parser) parseDeclare() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // DECLARE
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if p.cur().Kind == token.ARRAY {
		return p.parseDeclareArray(pos, name.Lexeme)
	}
	typ, err := p.parseTypeAnnotation()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewDeclare(pos, name.Lexeme, typ), nil
}

func (p *Parser) parseDeclareArray(pos token.Position, name string) (ast.Stmt, *cerrors.Diagnostic) {
	p.advance() // ARRAY
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	var bounds []ast.BoundSpec
	for {
		lo, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		hi, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, ast.BoundSpec{Lo: lo, Hi: hi})
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OF); err != nil {
		return nil, err
	}
	elemType, err := p.parseTypeAnnotation()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewDeclareArray(pos, name, bounds, elemType), nil
}

func (p *Parser) parseTypeDecl() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // TYPE
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	p.skipNewlines()
	var fields []ast.FieldDecl
	seen := map[string]bool{}
	for p.cur().Kind != token.ENDTYPE {
		if p.cur().Kind == token.EOF {
			return nil, p.errorf("unterminated TYPE declaration, expected ENDTYPE")
		}
		if _, err := p.expect(token.DECLARE); err != nil {
			return nil, err
		}
		fname, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if seen[fname.Lexeme] {
			return nil, cerrors.New(cerrors.Parse, fname.Pos, "duplicate field %q in TYPE %s", fname.Lexeme, name.Lexeme)
		}
		seen[fname.Lexeme] = true
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		ftype, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		if e := p.endOfStatement(); e != nil {
			return nil, e
		}
		p.skipNewlines()
		fields = append(fields, ast.FieldDecl{Name: fname.Lexeme, Type: ftype})
	}
	p.advance() // ENDTYPE
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewTypeDecl(pos, name.Lexeme, fields), nil
}

func (p *Parser) parseAssign() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	target, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewAssign(pos, target, value), nil
}

func (p *Parser) parseOutput() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // OUTPUT
	var exprs []ast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewOutput(pos, exprs), nil
}

func (p *Parser) parseInput() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // INPUT
	target, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewInput(pos, target), nil
}

func (p *Parser) parseIf() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // IF
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(token.THEN); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock(token.ELSE, token.ENDIF)
	if err != nil {
		return nil, err
	}
	var elseBlock ast.Block
	if p.cur().Kind == token.ELSE {
		p.advance()
		elseBlock, err = p.parseBlock(token.ENDIF)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.ENDIF); err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewIf(pos, cond, thenBlock, elseBlock), nil
}

func (p *Parser) parseCase() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // CASE
	if _, err := p.expect(token.OF); err != nil {
		return nil, err
	}
	subject, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	p.skipNewlines()

	c := ast.NewCase(pos, subject)
	sawOtherwise := false
	for p.cur().Kind != token.ENDCASE {
		if p.cur().Kind == token.EOF {
			return nil, p.errorf("unterminated CASE, expected ENDCASE")
		}
		if p.cur().Kind == token.OTHERWISE {
			if sawOtherwise {
				return nil, p.errorf("OTHERWISE may appear at most once in a CASE")
			}
			sawOtherwise = true
			p.advance()
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			c.Otherwise = stmt
			p.skipNewlines()
			continue
		}
		if sawOtherwise {
			return nil, p.errorf("OTHERWISE must be the last clause in a CASE")
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		c.Clauses = append(c.Clauses, ast.CaseClause{Value: value, Stmt: stmt})
		p.skipNewlines()
	}
	p.advance() // ENDCASE
	if p.cur().Kind == token.IDENT { // tolerated trailing identifier, e.g. ENDCASE Column
		p.advance()
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return c, nil
}

func (p *Parser) parseWhile() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // WHILE
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DO); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(token.ENDWHILE)
	if err != nil {
		return nil, err
	}
	p.advance() // ENDWHILE
	if p.cur().Kind == token.IDENT {
		p.advance()
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewWhile(pos, cond, body), nil
}

func (p *Parser) parseRepeat() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // REPEAT
	body, err := p.parseBlock(token.UNTIL)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.UNTIL); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewRepeat(pos, body, cond), nil
}

func (p *Parser) parseFor() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // FOR
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TO); err != nil {
		return nil, err
	}
	stop, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var step ast.Expr
	if p.cur().Kind == token.STEP {
		p.advance()
		step, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock(token.ENDFOR)
	if err != nil {
		return nil, err
	}
	p.advance() // ENDFOR
	if p.cur().Kind == token.IDENT { // tolerated trailing loop-variable name
		p.advance()
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewFor(pos, name.Lexeme, start, stop, step, body), nil
}

func (p *Parser) parseParamList() ([]ast.Param, *cerrors.Diagnostic) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	if p.cur().Kind == token.RPAREN {
		p.advance()
		return params, nil
	}
	for {
		mode := types.ByValue
		switch p.cur().Kind {
		case token.BYVALUE:
			p.advance()
		case token.BYREF:
			mode = types.ByRef
			p.advance()
		}
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		ptype, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name.Lexeme, Type: ptype, Mode: mode})
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseProcedureDecl() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // PROCEDURE
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	body, err := p.parseBlock(token.ENDPROCEDURE)
	if err != nil {
		return nil, err
	}
	p.advance() // ENDPROCEDURE
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewProcedureDecl(pos, &ast.CallableDecl{Name: name.Lexeme, Params: params, Body: body}), nil
}

func (p *Parser) parseFunctionDecl() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // FUNCTION
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RETURNS); err != nil {
		return nil, err
	}
	ret, err := p.parseTypeAnnotation()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	body, err := p.parseBlock(token.ENDFUNCTION)
	if err != nil {
		return nil, err
	}
	p.advance() // ENDFUNCTION
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewFunctionDecl(pos, &ast.CallableDecl{Name: name.Lexeme, Params: params, ReturnType: &ret, Body: body}), nil
}

func (p *Parser) parseArgs() ([]ast.Expr, *cerrors.Diagnostic) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if p.cur().Kind == token.RPAREN {
		p.advance()
		return args, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseCallStmt() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // CALL
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	var args []ast.Expr
	if p.cur().Kind == token.LPAREN {
		args, err = p.parseArgs()
		if err != nil {
			return nil, err
		}
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewCallStmt(pos, name.Lexeme, args), nil
}

func (p *Parser) parseReturn() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // RETURN
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewReturn(pos, value), nil
}

// parseDottedFilename parses an IDENT (DOT IDENT)* sequence used in file
// statements (e.g. FileA.txt) and joins it back into a single string,
// since the language has no string-typed filename syntax of its own.
func (p *Parser) parseDottedFilename() (string, *cerrors.Diagnostic) {
	first, err := p.expect(token.IDENT)
	if err != nil {
		return "", err
	}
	name := first.Lexeme
	for p.cur().Kind == token.DOT {
		p.advance()
		part, err := p.expect(token.IDENT)
		if err != nil {
			return "", err
		}
		name += "." + part.Lexeme
	}
	return name, nil
}

func (p *Parser) parseOpenFile() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // OPENFILE
	name, err := p.parseDottedFilename()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FOR); err != nil {
		return nil, err
	}
	var mode types.FileMode
	switch p.cur().Kind {
	case token.READ:
		mode = types.ReadMode
	case token.WRITE:
		mode = types.WriteMode
	case token.APPEND:
		mode = types.AppendMode
	default:
		return nil, p.errorf("expected READ, WRITE, or APPEND, got %s %q", p.cur().Kind, p.cur().Lexeme)
	}
	p.advance()
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewOpenFile(pos, name, mode), nil
}

func (p *Parser) parseReadFile() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // READFILE
	name, err := p.parseDottedFilename()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	target, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewReadFile(pos, name, target), nil
}

func (p *Parser) parseWriteFile() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // WRITEFILE
	name, err := p.parseDottedFilename()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewWriteFile(pos, name, value), nil
}

func (p *Parser) parseCloseFile() (ast.Stmt, *cerrors.Diagnostic) {
	pos := p.cur().Pos
	p.advance() // CLOSEFILE
	name, err := p.parseDottedFilename()
	if err != nil {
		return nil, err
	}
	if e := p.endOfStatement(); e != nil {
		return nil, e
	}
	return ast.NewCloseFile(pos, name), nil
}

// --- Expressions ---

func (p *Parser) parseExpr() (ast.Expr, *cerrors.Diagnostic) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, *cerrors.Diagnostic) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.OR {
		pos := p.cur().Pos
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(pos, token.OR, left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, *cerrors.Diagnostic) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.AND {
		pos := p.cur().Pos
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(pos, token.AND, left, right)
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Expr, *cerrors.Diagnostic) {
	if p.cur().Kind == token.NOT {
		pos := p.cur().Pos
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(pos, token.NOT, operand), nil
	}
	return p.parseRelational()
}

var relOps = map[token.Kind]bool{
	token.EQ: true, token.NE: true, token.LT: true, token.GT: true, token.LE: true, token.GE: true,
}

func (p *Parser) parseRelational() (ast.Expr, *cerrors.Diagnostic) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if !relOps[p.cur().Kind] {
		return left, nil
	}
	pos := p.cur().Pos
	op := p.advance().Kind
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	result := ast.Expr(ast.NewBinary(pos, op, left, right))
	if relOps[p.cur().Kind] {
		return nil, p.errorf("comparison operators do not chain: unexpected %s after comparison", p.cur().Kind)
	}
	return result, nil
}

func (p *Parser) parseAdditive() (ast.Expr, *cerrors.Diagnostic) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.PLUS || p.cur().Kind == token.MINUS {
		pos := p.cur().Pos
		op := p.advance().Kind
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(pos, op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, *cerrors.Diagnostic) {
	left, err := p.parseUnaryMinus()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.STAR || p.cur().Kind == token.SLASH {
		pos := p.cur().Pos
		op := p.advance().Kind
		right, err := p.parseUnaryMinus()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(pos, op, left, right)
	}
	return left, nil
}

func (p *Parser) parseUnaryMinus() (ast.Expr, *cerrors.Diagnostic) {
	if p.cur().Kind == token.MINUS {
		pos := p.cur().Pos
		p.advance()
		operand, err := p.parseUnaryMinus()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(pos, token.MINUS, operand), nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, *cerrors.Diagnostic) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case token.LBRACKET:
			pos := p.cur().Pos
			p.advance()
			var indices []ast.Expr
			for {
				idx, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				indices = append(indices, idx)
				if p.cur().Kind == token.COMMA {
					p.advance()
					continue
				}
				break
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			expr = ast.NewIndex(pos, expr, indices)
		case token.DOT:
			pos := p.cur().Pos
			p.advance()
			field, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			expr = ast.NewField(pos, expr, field.Lexeme)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, *cerrors.Diagnostic) {
	tok := p.cur()
	switch tok.Kind {
	case token.INT, token.REAL, token.STRING, token.TRUE, token.FALSE:
		p.advance()
		return ast.NewLiteral(tok.Pos, tok.Literal), nil
	case token.LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case token.IDENT:
		p.advance()
		if p.cur().Kind == token.LPAREN {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return ast.NewCall(tok.Pos, tok.Lexeme, args), nil
		}
		return ast.NewName(tok.Pos, tok.Lexeme), nil
	default:
		return nil, p.errorf("unexpected token %s %q in expression", tok.Kind, tok.Lexeme)
	}
}
