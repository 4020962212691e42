package lang

import (
	"fmt"
	"strconv"

	"oocesk/cesk"
)

// Parser is a recursive-descent parser over the concrete surface language,
// building cesk.ClassDef/Stmt/Expr graphs directly. Classes are registered
// into ctx.Classes and labels into ctx.Labels as they are constructed,
// mirroring the "registers itself at construction" discipline the core
// assumes (spec.md §4.1, §4.2).
type Parser struct {
	ctx *cesk.Context
	l   *Lexer

	cur  Token
	peek Token

	errs []error
}

// NewParser returns a Parser that will register parsed classes and labels
// into ctx.
func NewParser(ctx *cesk.Context, l *Lexer) *Parser {
	p := &Parser{ctx: ctx, l: l}
	p.next()
	p.next()
	return p
}

// ParseSource lexes and parses a full source file into a sequence of class
// definitions. Every class is registered into the parser's Context as a
// side effect of parsing, so the returned slice is a convenience view, not
// the sole record.
func ParseSource(ctx *cesk.Context, source string) ([]*cesk.ClassDef, error) {
	p := NewParser(ctx, New(source))
	classes := p.ParseProgram()
	if len(p.errs) > 0 {
		return nil, p.errs[0]
	}
	return classes, nil
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...any) {
	p.errs = append(p.errs, fmt.Errorf("line %d: %s", p.cur.Line, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(t TokenType) Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf("expected %s, got %s (%q)", t, p.cur.Type, p.cur.Literal)
	}
	p.next()
	return tok
}

// ParseProgram parses a sequence of class-defs until EOF.
func (p *Parser) ParseProgram() []*cesk.ClassDef {
	var classes []*cesk.ClassDef
	for p.cur.Type != TokenEOF && len(p.errs) == 0 {
		classes = append(classes, p.parseClassDef())
	}
	return classes
}

func (p *Parser) parseClassDef() *cesk.ClassDef {
	p.expect(TokenClass)
	name := p.expect(TokenIdent).Literal
	p.expect(TokenExtends)
	parent := p.expect(TokenIdent).Literal
	p.expect(TokenLBrace)

	class := cesk.NewClassDef(name)
	// The concrete grammar makes 'extends Id' mandatory, leaving no syntax
	// for a parentless root class. By convention the bundled parser treats
	// a class that extends itself as that root: SetParent is skipped, so
	// IsInstanceOf/LookupMethod's parent-chain walk terminates there instead
	// of looping on a self-referential parent forever.
	if parent != name {
		class.SetParent(parent)
	}

	for p.cur.Type == TokenVar {
		p.next()
		fieldName := p.expect(TokenIdent).Literal
		p.expect(TokenSemi)
		class.Fields[fieldName] = &cesk.FieldDef{Name: fieldName}
	}

	for p.cur.Type == TokenDef {
		method := p.parseMethodDef()
		class.Methods[method.Name] = method
	}

	p.expect(TokenRBrace)
	p.ctx.Classes.Register(class)
	return class
}

func (p *Parser) parseMethodDef() *cesk.MethodDef {
	p.expect(TokenDef)
	name := p.expect(TokenIdent).Literal
	p.expect(TokenLParen)

	var params []string
	for p.cur.Type == TokenRegister {
		params = append(params, p.cur.Literal)
		p.next()
		if p.cur.Type == TokenComma {
			p.next()
		}
	}
	p.expect(TokenRParen)
	p.expect(TokenLBrace)

	entry := p.parseStmtSequence()

	p.expect(TokenRBrace)
	return &cesk.MethodDef{Name: name, Params: params, Entry: entry}
}

// parseStmtSequence parses statements until a closing brace, linking them
// via SetNext, and returns the first one (nil if the body is empty).
func (p *Parser) parseStmtSequence() cesk.Stmt {
	var stmts []cesk.Stmt
	for p.cur.Type != TokenRBrace && p.cur.Type != TokenEOF && len(p.errs) == 0 {
		stmts = append(stmts, p.parseStmt())
	}
	for i := 0; i < len(stmts)-1; i++ {
		cesk.SetNext(stmts[i], stmts[i+1])
	}
	if len(stmts) == 0 {
		return nil
	}
	return stmts[0]
}

func (p *Parser) parseStmt() cesk.Stmt {
	switch p.cur.Type {
	case TokenSkip:
		p.next()
		p.expect(TokenSemi)
		return &cesk.SkipStmt{}

	case TokenLabel:
		p.next()
		name := p.expect(TokenIdent).Literal
		p.expect(TokenColon)
		label := &cesk.LabelStmt{Name: name}
		p.ctx.Labels.Register(name, label)
		return label

	case TokenGoto:
		p.next()
		label := p.expect(TokenIdent).Literal
		p.expect(TokenSemi)
		return &cesk.GotoStmt{Label: label}

	case TokenIf:
		p.next()
		cond := p.parseAexp()
		p.expect(TokenGoto)
		label := p.expect(TokenIdent).Literal
		p.expect(TokenSemi)
		return &cesk.IfStmt{Cond: cond, Label: label}

	case TokenReturn:
		p.next()
		result := p.parseAexp()
		p.expect(TokenSemi)
		return &cesk.ReturnStmt{Result: result}

	case TokenPushHandler:
		p.next()
		class := p.expect(TokenIdent).Literal
		label := p.expect(TokenIdent).Literal
		p.expect(TokenSemi)
		return &cesk.PushHandlerStmt{Class: class, Label: label}

	case TokenPopHandler:
		p.next()
		p.expect(TokenSemi)
		return &cesk.PopHandlerStmt{}

	case TokenThrow:
		p.next()
		exc := p.parseAexp()
		p.expect(TokenSemi)
		return &cesk.ThrowStmt{Exc: exc}

	case TokenMoveException:
		p.next()
		reg := p.expect(TokenRegister).Literal
		p.expect(TokenSemi)
		return &cesk.MoveExceptionStmt{Reg: reg}

	case TokenPrint:
		p.next()
		p.expect(TokenLParen)
		args := []cesk.Expr{p.parseAexp()}
		for p.cur.Type == TokenComma {
			p.next()
			args = append(args, p.parseAexp())
		}
		p.expect(TokenRParen)
		p.expect(TokenSemi)
		return &cesk.PrintStmt{Args: args}

	case TokenRegister:
		return p.parseRegisterAssignment()

	default:
		p.errorf("unexpected token starting a statement: %s (%q)", p.cur.Type, p.cur.Literal)
		p.next()
		return &cesk.SkipStmt{}
	}
}

// parseRegisterAssignment handles every statement form beginning with a
// register: a field write (register '.' Id ':=' aexp), or, after ':=',
// plain assignment, object allocation, and the two invoke forms.
func (p *Parser) parseRegisterAssignment() cesk.Stmt {
	reg := p.expect(TokenRegister).Literal

	if p.cur.Type == TokenDot {
		p.next()
		field := p.expect(TokenIdent).Literal
		p.expect(TokenAssign)
		rhs := p.parseAexp()
		p.expect(TokenSemi)
		return &cesk.FieldAssignStmt{Obj: cesk.RegisterExpr{Name: reg}, Field: field, Rhs: rhs}
	}

	p.expect(TokenAssign)

	switch p.cur.Type {
	case TokenNew:
		p.next()
		class := p.expect(TokenIdent).Literal
		p.expect(TokenSemi)
		return &cesk.NewStmt{Reg: reg, Class: class}

	case TokenInvoke:
		p.next()
		if p.cur.Type == TokenSuper {
			p.next()
			p.expect(TokenDot)
			method := p.expect(TokenIdent).Literal
			args := p.parseArgList()
			p.expect(TokenSemi)
			return &cesk.InvokeSuperStmt{Reg: reg, Method: method, Args: args}
		}
		obj := p.parseAexpPrime()
		p.expect(TokenDot)
		method := p.expect(TokenIdent).Literal
		args := p.parseArgList()
		p.expect(TokenSemi)
		return &cesk.InvokeStmt{Reg: reg, Obj: obj, Method: method, Args: args}

	default:
		rhs := p.parseAexp()
		p.expect(TokenSemi)
		return &cesk.AssignAExpStmt{Reg: reg, Rhs: rhs}
	}
}

func (p *Parser) parseArgList() []cesk.Expr {
	p.expect(TokenLParen)
	var args []cesk.Expr
	if p.cur.Type != TokenRParen {
		args = append(args, p.parseAexp())
		for p.cur.Type == TokenComma {
			p.next()
			args = append(args, p.parseAexp())
		}
	}
	p.expect(TokenRParen)
	return args
}

// parseAexp parses aexp ::= aexp' ('.' Id)?
func (p *Parser) parseAexp() cesk.Expr {
	base := p.parseAexpPrime()
	if p.cur.Type == TokenDot {
		p.next()
		field := p.expect(TokenIdent).Literal
		return cesk.FieldExpr{Obj: base, Field: field}
	}
	return base
}

func (p *Parser) parseAexpPrime() cesk.Expr {
	switch p.cur.Type {
	case TokenThis:
		p.next()
		return cesk.ThisExpr{}
	case TokenTrue:
		p.next()
		return cesk.BoolExpr{Value: true}
	case TokenFalse:
		p.next()
		return cesk.BoolExpr{Value: false}
	case TokenNull:
		p.next()
		return cesk.NullExpr{}
	case TokenVoid:
		p.next()
		return cesk.VoidExpr{}
	case TokenRegister:
		name := p.cur.Literal
		p.next()
		return cesk.RegisterExpr{Name: name}
	case TokenInt:
		lit := p.cur.Literal
		p.next()
		n, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			p.errorf("invalid integer literal %q: %v", lit, err)
		}
		return cesk.IntExpr{Value: int32(n)}
	case TokenPlus, TokenMinus, TokenStar, TokenEquals:
		op := atomicOpFor(p.cur.Type)
		p.next()
		args := p.parseArgList()
		return cesk.AtomicOpExpr{Op: op, Args: args}
	case TokenInstanceof:
		p.next()
		p.expect(TokenLParen)
		obj := p.parseAexp()
		p.expect(TokenComma)
		class := p.expect(TokenIdent).Literal
		p.expect(TokenRParen)
		return cesk.InstanceOfExpr{Obj: obj, Class: class}
	default:
		p.errorf("unexpected token in expression: %s (%q)", p.cur.Type, p.cur.Literal)
		p.next()
		return cesk.VoidExpr{}
	}
}

func atomicOpFor(t TokenType) cesk.AtomicOp {
	switch t {
	case TokenPlus:
		return cesk.OpAdd
	case TokenMinus:
		return cesk.OpSub
	case TokenStar:
		return cesk.OpMul
	default:
		return cesk.OpEq
	}
}
