// Package zig tokenizes and parses the declaration structure of Zig source
// files into an ast.Tree. Expressions and function bodies are skipped as
// balanced token runs; only the shapes needed for tagging are built.
package zig

import (
	"strings"

	"github.com/phobologic/zigtags/internal/ast"
)

var keywords = map[string]struct{}{
	"addrspace": {}, "align": {}, "allowzero": {}, "and": {}, "anyframe": {},
	"anytype": {}, "asm": {}, "async": {}, "await": {}, "break": {},
	"callconv": {}, "catch": {}, "comptime": {}, "const": {}, "continue": {},
	"defer": {}, "else": {}, "enum": {}, "errdefer": {}, "error": {},
	"export": {}, "extern": {}, "fn": {}, "for": {}, "if": {},
	"inline": {}, "linksection": {}, "noalias": {}, "noinline": {}, "nosuspend": {},
	"opaque": {}, "or": {}, "orelse": {}, "packed": {}, "pub": {},
	"resume": {}, "return": {}, "struct": {}, "suspend": {}, "switch": {},
	"test": {}, "threadlocal": {}, "try": {}, "union": {}, "unreachable": {},
	"usingnamespace": {}, "var": {}, "volatile": {}, "while": {},
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// Tokenize splits src into tokens. Comments, including doc comments, are
// dropped. The returned slice always ends with an EOF token.
func Tokenize(src []byte) []ast.Token {
	t := tokenizer{src: src}
	toks := make([]ast.Token, 0, len(src)/4+1)
	for {
		tok := t.next()
		toks = append(toks, tok)
		if tok.Tag == ast.EOF {
			return toks
		}
	}
}

type tokenizer struct {
	src []byte
	pos int
}

func (t *tokenizer) peek(off int) byte {
	if t.pos+off < len(t.src) {
		return t.src[t.pos+off]
	}
	return 0
}

func (t *tokenizer) next() ast.Token {
	t.skipSpaceAndComments()
	start := t.pos
	if t.pos >= len(t.src) {
		return ast.Token{Tag: ast.EOF, Start: uint32(start), End: uint32(start)}
	}

	c := t.src[t.pos]
	var tag ast.Tag
	switch {
	case isIdentStart(c):
		t.identifier()
		tag = ast.Identifier
		if IsKeyword(string(t.src[start:t.pos])) {
			tag = ast.Keyword
		}
	case isDigit(c):
		t.number()
		tag = ast.NumberLiteral
	case c == '@':
		t.pos++
		switch {
		case t.peek(0) == '"':
			t.quoted('"')
			tag = ast.Identifier
		case isIdentStart(t.peek(0)):
			t.identifier()
			tag = ast.Builtin
		default:
			tag = ast.Invalid
		}
	case c == '"':
		t.quoted('"')
		tag = ast.StringLiteral
	case c == '\'':
		t.quoted('\'')
		tag = ast.CharLiteral
	case c == '\\' && t.peek(1) == '\\':
		t.toEndOfLine()
		tag = ast.MultilineStringLiteral
	default:
		tag = t.punctuation(c)
	}
	return ast.Token{Tag: tag, Start: uint32(start), End: uint32(t.pos)}
}

func (t *tokenizer) skipSpaceAndComments() {
	for t.pos < len(t.src) {
		switch c := t.src[t.pos]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			t.pos++
		case c == '/' && t.peek(1) == '/':
			t.toEndOfLine()
		default:
			return
		}
	}
}

func (t *tokenizer) toEndOfLine() {
	for t.pos < len(t.src) && t.src[t.pos] != '\n' {
		t.pos++
	}
}

func (t *tokenizer) identifier() {
	for t.pos < len(t.src) && isIdentPart(t.src[t.pos]) {
		t.pos++
	}
}

// number consumes digits, radix prefixes, separators, fractions and
// exponents. A '.' is only taken when a digit follows so `0..9` stays a
// range.
func (t *tokenizer) number() {
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		switch {
		case isIdentPart(c):
			t.pos++
		case c == '.' && isDigit(t.peek(1)):
			t.pos++
		case (c == '+' || c == '-') && t.pos > 0 && isExponent(t.src[t.pos-1]):
			t.pos++
		default:
			return
		}
	}
}

// quoted consumes a literal delimited by q on a single line. An unterminated
// literal ends at the line break.
func (t *tokenizer) quoted(q byte) {
	t.pos++
	for t.pos < len(t.src) {
		switch t.src[t.pos] {
		case '\\':
			t.pos += 2
		case q:
			t.pos++
			return
		case '\n':
			return
		default:
			t.pos++
		}
	}
	if t.pos > len(t.src) {
		t.pos = len(t.src)
	}
}

// operatorTail holds bytes that extend an operator token, so `+=`, `<<=`,
// `||` and `**` each become a single Operator.
const operatorTail = "=%|<>*+"

func (t *tokenizer) punctuation(c byte) ast.Tag {
	t.pos++
	switch c {
	case '{':
		return ast.LBrace
	case '}':
		return ast.RBrace
	case '(':
		return ast.LParen
	case ')':
		return ast.RParen
	case '[':
		return ast.LBracket
	case ']':
		return ast.RBracket
	case ';':
		return ast.Semicolon
	case ',':
		return ast.Comma
	case ':':
		return ast.Colon
	case '=':
		if n := t.peek(0); n == '=' || n == '>' {
			t.pos++
			return ast.Operator
		}
		return ast.Equal
	case '.':
		if t.peek(0) == '.' {
			t.pos++
			if t.peek(0) == '.' {
				t.pos++
			}
			return ast.Operator
		}
		return ast.Period
	case '!', '%', '&', '*', '+', '-', '/', '<', '>', '^', '|', '~', '?':
		for t.pos < len(t.src) && strings.IndexByte(operatorTail, t.src[t.pos]) >= 0 {
			t.pos++
		}
		return ast.Operator
	}
	return ast.Invalid
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isExponent(c byte) bool {
	return c == 'e' || c == 'E' || c == 'p' || c == 'P'
}
