// Package ast defines the read-only syntax tree consumed by the tag emitter:
// a token table over the source bytes and a closed set of declaration
// shapes.
package ast

// Tree owns the source buffer, its token table and the top-level
// declarations. Token indices are only valid against the tree that
// produced them.
type Tree struct {
	Source []byte
	Tokens []Token
	Decls  []Node
}

// TokenSlice returns the source text of token i.
func (t *Tree) TokenSlice(i TokenIndex) string {
	tok := t.Tokens[i]
	return string(t.Source[tok.Start:tok.End])
}

// LineSpan returns the byte offsets of the start and end of the line
// holding the first byte of token i. The end excludes the line terminator.
func (t *Tree) LineSpan(i TokenIndex) (start, end int) {
	pos := int(t.Tokens[i].Start)
	start = pos
	for start > 0 && t.Source[start-1] != '\n' {
		start--
	}
	end = pos
	for end < len(t.Source) && t.Source[end] != '\n' {
		end++
	}
	if end > start && t.Source[end-1] == '\r' {
		end--
	}
	return start, end
}

// Line returns the full source line holding token i.
func (t *Tree) Line(i TokenIndex) string {
	start, end := t.LineSpan(i)
	return string(t.Source[start:end])
}

// LineNumber returns the 1-based line of token i.
func (t *Tree) LineNumber(i TokenIndex) int {
	n := 1
	for _, b := range t.Source[:t.Tokens[i].Start] {
		if b == '\n' {
			n++
		}
	}
	return n
}

// Node is a declaration: a member of the top-level list or of a container.
type Node interface {
	declNode()
}

// Expr is the initializer of a VarDecl.
type Expr interface {
	exprNode()
}

// FnProto is a function declaration or prototype. Name is NoToken for
// anonymous function types.
type FnProto struct {
	Name TokenIndex
}

// VarDecl is a const/var binding. Init is nil when there is no initializer.
// Mut is NoToken for front ends whose bindings have no const/var keyword.
type VarDecl struct {
	Mut  TokenIndex
	Name TokenIndex
	Init Expr
}

// ContainerField is a struct/union field or an enum tag. Name is NoToken
// for tuple-like fields.
type ContainerField struct {
	Name TokenIndex
}

// OtherDecl is a member that carries no name, such as a test or a
// comptime block.
type OtherDecl struct {
	Token TokenIndex
}

// ContainerDecl is a struct, union, enum or opaque body.
type ContainerDecl struct {
	Keyword TokenIndex
	Members []Node
}

// ErrorSetDecl is an `error{...}` literal.
type ErrorSetDecl struct {
	Error TokenIndex
	Names []TokenIndex
}

// ErrorType is a bare reference to an error type or value, such as
// `anyerror` or `error.OutOfMemory`.
type ErrorType struct {
	Token TokenIndex
}

// OtherExpr is any initializer without a structural meaning for tagging.
type OtherExpr struct {
	First TokenIndex
	Last  TokenIndex
}

func (*FnProto) declNode()        {}
func (*VarDecl) declNode()        {}
func (*ContainerField) declNode() {}
func (*OtherDecl) declNode()      {}

func (*ContainerDecl) exprNode() {}
func (*ErrorSetDecl) exprNode()  {}
func (*ErrorType) exprNode()     {}
func (*OtherExpr) exprNode()     {}
