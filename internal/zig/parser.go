package zig

import (
	"fmt"

	"github.com/phobologic/zigtags/internal/ast"
)

// SyntaxError reports where the declaration structure could not be parsed.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Parse builds the declaration tree of a Zig source file. The file itself
// is a struct, so the top-level list may hold fields as well as decls.
func Parse(src []byte) (*ast.Tree, error) {
	p := &parser{
		tree: &ast.Tree{Source: src, Tokens: Tokenize(src)},
	}
	decls, err := p.members("struct", ast.EOF)
	if err != nil {
		return nil, err
	}
	p.tree.Decls = decls
	return p.tree, nil
}

type parser struct {
	tree *ast.Tree
	pos  int
}

func (p *parser) tag() ast.Tag {
	return p.tree.Tokens[p.pos].Tag
}

func (p *parser) text() string {
	return p.tree.TokenSlice(ast.TokenIndex(p.pos))
}

func (p *parser) peekTag(off int) ast.Tag {
	if i := p.pos + off; i < len(p.tree.Tokens) {
		return p.tree.Tokens[i].Tag
	}
	return ast.EOF
}

func (p *parser) isKeyword(kw string) bool {
	return p.tag() == ast.Keyword && p.text() == kw
}

func (p *parser) advance() ast.TokenIndex {
	i := ast.TokenIndex(p.pos)
	if p.tag() != ast.EOF {
		p.pos++
	}
	return i
}

func (p *parser) errorf(format string, args ...any) error {
	start := int(p.tree.Tokens[p.pos].Start)
	line, col := 1, 1
	for _, b := range p.tree.Source[:start] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(tag ast.Tag) (ast.TokenIndex, error) {
	if p.tag() != tag {
		return 0, p.errorf("expected %s, found %s", tag, p.tag())
	}
	return p.advance(), nil
}

// members parses container members until the end tag, which is left
// unconsumed. kind is the container keyword; it decides whether a bare
// identifier is a tag name (enum, union) or a tuple field type (struct).
func (p *parser) members(kind string, end ast.Tag) ([]ast.Node, error) {
	var nodes []ast.Node
	for p.tag() != end {
		if p.tag() == ast.EOF {
			return nil, p.errorf("expected %s, found end of file", end)
		}
		if p.tag() == ast.Comma || p.tag() == ast.Semicolon {
			p.advance()
			continue
		}
		n, err := p.member(kind)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (p *parser) member(kind string) (ast.Node, error) {
	switch {
	case p.isKeyword("test"):
		tok := p.advance()
		if p.tag() == ast.StringLiteral || p.tag() == ast.Identifier {
			p.advance()
		}
		return &ast.OtherDecl{Token: tok}, p.block()
	case p.isKeyword("comptime") && p.peekTag(1) == ast.LBrace:
		tok := p.advance()
		return &ast.OtherDecl{Token: tok}, p.block()
	case p.isKeyword("usingnamespace"):
		tok := p.advance()
		return &ast.OtherDecl{Token: tok}, p.skipPast(ast.Semicolon)
	}

	p.modifiers()

	switch {
	case p.isKeyword("usingnamespace"):
		tok := p.advance()
		return &ast.OtherDecl{Token: tok}, p.skipPast(ast.Semicolon)
	case p.isKeyword("fn"):
		return p.fnDecl()
	case p.isKeyword("const"), p.isKeyword("var"):
		return p.varDecl()
	case p.tag() == ast.Identifier:
		return p.field(kind)
	case p.tag() == ast.Keyword || p.tag() == ast.Builtin || p.tag() == ast.LBracket ||
		p.tag() == ast.Operator || p.tag() == ast.Period || p.tag() == ast.LParen:
		// Tuple-like field whose type starts with something other than a name.
		return &ast.ContainerField{Name: ast.NoToken}, p.skipField()
	}
	return nil, p.errorf("unexpected %s %q in container", p.tag(), p.text())
}

// modifiers skips visibility, linkage and storage prefixes.
func (p *parser) modifiers() {
	for p.tag() == ast.Keyword {
		switch p.text() {
		case "pub", "export", "inline", "noinline", "threadlocal", "comptime":
			p.advance()
		case "extern":
			p.advance()
			if p.tag() == ast.StringLiteral {
				p.advance()
			}
		default:
			return
		}
	}
}

func (p *parser) fnDecl() (ast.Node, error) {
	p.advance()
	fn := &ast.FnProto{Name: ast.NoToken}
	if p.tag() == ast.Identifier {
		fn.Name = p.advance()
	}
	if p.tag() != ast.LParen {
		return nil, p.errorf("expected parameter list, found %s", p.tag())
	}
	if err := p.group(); err != nil {
		return nil, err
	}

	// Return type, then a body or ';'. A '{' right after a container or
	// error keyword (and its optional argument) belongs to the type.
	typeBrace := false
	for {
		switch p.tag() {
		case ast.EOF:
			return nil, p.errorf("unterminated function declaration")
		case ast.Semicolon:
			p.advance()
			return fn, nil
		case ast.LBrace:
			if typeBrace {
				typeBrace = false
				if err := p.group(); err != nil {
					return nil, err
				}
				continue
			}
			return fn, p.block()
		case ast.LParen, ast.LBracket:
			if err := p.group(); err != nil {
				return nil, err
			}
		case ast.Keyword:
			switch p.text() {
			case "struct", "union", "enum", "opaque":
				typeBrace = true
			case "error":
				typeBrace = p.peekTag(1) == ast.LBrace
			}
			p.advance()
		default:
			p.advance()
		}
	}
}

func (p *parser) varDecl() (ast.Node, error) {
	decl := &ast.VarDecl{Mut: p.advance()}
	name, err := p.expect(ast.Identifier)
	if err != nil {
		return nil, err
	}
	decl.Name = name

	// Type annotation, align, linksection and addrspace up to '=' or ';'.
	if err := p.skipUntil(ast.Equal, ast.Semicolon); err != nil {
		return nil, err
	}
	if p.tag() == ast.Semicolon {
		p.advance()
		return decl, nil
	}
	p.advance()

	init, err := p.initializer()
	if err != nil {
		return nil, err
	}
	decl.Init = init
	_, err = p.expect(ast.Semicolon)
	return decl, err
}

// initializer parses the expression after '=' up to, but not including,
// the terminating ';'.
func (p *parser) initializer() (ast.Expr, error) {
	first := ast.TokenIndex(p.pos)

	if p.isKeyword("extern") || p.isKeyword("packed") {
		p.advance()
	}
	switch {
	case p.isKeyword("struct"), p.isKeyword("union"), p.isKeyword("enum"), p.isKeyword("opaque"):
		c, err := p.container()
		if err != nil {
			return nil, err
		}
		if p.tag() == ast.Semicolon {
			return c, nil
		}
	case p.isKeyword("error") && p.peekTag(1) == ast.LBrace:
		e, err := p.errorSet()
		if err != nil {
			return nil, err
		}
		if p.tag() == ast.Semicolon {
			return e, nil
		}
	case p.isKeyword("error") && p.peekTag(1) == ast.Period && p.peekTag(2) == ast.Identifier &&
		p.peekTag(3) == ast.Semicolon:
		tok := p.advance()
		p.advance()
		p.advance()
		return &ast.ErrorType{Token: tok}, nil
	case p.tag() == ast.Identifier && p.text() == "anyerror" && p.peekTag(1) == ast.Semicolon:
		return &ast.ErrorType{Token: p.advance()}, nil
	}

	if err := p.skipUntil(ast.Semicolon); err != nil {
		return nil, err
	}
	return &ast.OtherExpr{First: first, Last: ast.TokenIndex(p.pos - 1)}, nil
}

func (p *parser) container() (*ast.ContainerDecl, error) {
	c := &ast.ContainerDecl{Keyword: p.advance()}
	kind := p.tree.TokenSlice(c.Keyword)
	if p.tag() == ast.LParen {
		if err := p.group(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ast.LBrace); err != nil {
		return nil, err
	}
	members, err := p.members(kind, ast.RBrace)
	if err != nil {
		return nil, err
	}
	c.Members = members
	p.advance()
	return c, nil
}

func (p *parser) errorSet() (*ast.ErrorSetDecl, error) {
	e := &ast.ErrorSetDecl{Error: p.advance()}
	p.advance()
	for p.tag() != ast.RBrace {
		switch p.tag() {
		case ast.EOF:
			return nil, p.errorf("unterminated error set")
		case ast.Identifier:
			e.Names = append(e.Names, p.advance())
		default:
			p.advance()
		}
	}
	p.advance()
	return e, nil
}

func (p *parser) field(kind string) (ast.Node, error) {
	f := &ast.ContainerField{Name: ast.NoToken}
	switch next := p.peekTag(1); {
	case next == ast.Colon:
		f.Name = p.advance()
	case kind != "struct" && (next == ast.Comma || next == ast.RBrace || next == ast.Equal):
		f.Name = p.advance()
	}
	return f, p.skipField()
}

// skipField skips a field's type, alignment and default value, consuming
// the trailing ',' if present.
func (p *parser) skipField() error {
	if err := p.skipUntil(ast.Comma, ast.RBrace); err != nil {
		return err
	}
	if p.tag() == ast.Comma {
		p.advance()
	}
	return nil
}

// block skips a brace-delimited body.
func (p *parser) block() error {
	if p.tag() != ast.LBrace {
		return p.errorf("expected %s, found %s", ast.LBrace, p.tag())
	}
	return p.group()
}

// group skips a balanced (), [] or {} run starting at the opening token.
func (p *parser) group() error {
	depth := 0
	for {
		switch p.tag() {
		case ast.EOF:
			return p.errorf("unbalanced delimiters: unexpected end of file")
		case ast.LBrace, ast.LParen, ast.LBracket:
			depth++
		case ast.RBrace, ast.RParen, ast.RBracket:
			depth--
		}
		p.advance()
		if depth <= 0 {
			return nil
		}
	}
}

// skipUntil advances to the first token at nesting depth zero whose tag is
// one of stops. A closing delimiter at depth zero also stops the scan so a
// missing ';' cannot swallow the enclosing container.
func (p *parser) skipUntil(stops ...ast.Tag) error {
	for {
		tag := p.tag()
		for _, s := range stops {
			if tag == s {
				return nil
			}
		}
		switch tag {
		case ast.EOF:
			return p.errorf("expected %s, found end of file", stops[0])
		case ast.LBrace, ast.LParen, ast.LBracket:
			if err := p.group(); err != nil {
				return err
			}
		case ast.RBrace, ast.RParen, ast.RBracket:
			return p.errorf("expected %s, found %s", stops[0], tag)
		default:
			p.advance()
		}
	}
}

func (p *parser) skipPast(tag ast.Tag) error {
	if err := p.skipUntil(tag); err != nil {
		return err
	}
	p.advance()
	return nil
}
