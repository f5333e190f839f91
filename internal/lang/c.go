package lang

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/phobologic/zigtags/internal/ast"
)

func init() {
	Languages["c"] = &Language{
		Name:       "c",
		Extensions: []string{".c", ".h"},
		parse:      cParse,
	}
}

// cParse maps a tree-sitter C translation unit onto the declaration tree.
// Named struct/union/enum specifiers become container bindings so their
// fields and enumerators are scoped like Zig container members.
func cParse(ctx context.Context, source []byte) (*ast.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(c.GetLanguage())

	st, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter: %w", err)
	}
	defer st.Close()

	root := st.RootNode()
	if root.HasError() {
		zerolog.Ctx(ctx).Warn().Msg("c source has syntax errors; unrecognized declarations are skipped")
	}

	b := &cBuilder{tree: &ast.Tree{Source: source}}
	b.tree.Decls = b.items(root)
	zerolog.Ctx(ctx).Debug().
		Int("tokens", len(b.tree.Tokens)).
		Int("decls", len(b.tree.Decls)).
		Msg("parsed c source")
	return b.tree, nil
}

// cBuilder records only the tokens the emitter dereferences: names,
// container keywords and initializer spans.
type cBuilder struct {
	tree *ast.Tree
}

func (b *cBuilder) token(n *sitter.Node, tag ast.Tag) ast.TokenIndex {
	b.tree.Tokens = append(b.tree.Tokens, ast.Token{Tag: tag, Start: n.StartByte(), End: n.EndByte()})
	return ast.TokenIndex(len(b.tree.Tokens) - 1)
}

func (b *cBuilder) items(n *sitter.Node) []ast.Node {
	var nodes []ast.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		nodes = append(nodes, b.item(n.NamedChild(i))...)
	}
	return nodes
}

func (b *cBuilder) item(n *sitter.Node) []ast.Node {
	switch n.Type() {
	case "function_definition":
		if name := cDeclaratorName(n.ChildByFieldName("declarator")); name != nil {
			return []ast.Node{&ast.FnProto{Name: b.token(name, ast.Identifier)}}
		}
	case "declaration":
		return b.declaration(n)
	case "type_definition":
		return b.typeDefinition(n)
	case "struct_specifier", "union_specifier", "enum_specifier":
		if d := b.specifier(n); d != nil {
			return []ast.Node{d}
		}
	case "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif", "preproc_elifdef":
		return b.items(n)
	case "linkage_specification":
		body := n.ChildByFieldName("body")
		if body == nil {
			return nil
		}
		if body.Type() == "declaration_list" {
			return b.items(body)
		}
		return b.item(body)
	}
	return nil
}

func (b *cBuilder) declaration(n *sitter.Node) []ast.Node {
	var nodes []ast.Node
	if d := b.specifier(n.ChildByFieldName("type")); d != nil {
		nodes = append(nodes, d)
	}
	for _, d := range cFieldChildren(n, "declarator") {
		name := cDeclaratorName(d)
		if name == nil {
			continue
		}
		tok := b.token(name, ast.Identifier)
		switch {
		case cIsFunction(d):
			nodes = append(nodes, &ast.FnProto{Name: tok})
		case d.Type() == "init_declarator" && d.ChildByFieldName("value") != nil:
			nodes = append(nodes, &ast.VarDecl{Mut: ast.NoToken, Name: tok, Init: b.span(d.ChildByFieldName("value"))})
		default:
			nodes = append(nodes, &ast.VarDecl{Mut: ast.NoToken, Name: tok})
		}
	}
	return nodes
}

// typeDefinition binds `typedef struct { ... } Name;` as a container named
// Name. Other typedefs are plain bindings.
func (b *cBuilder) typeDefinition(n *sitter.Node) []ast.Node {
	var nodes []ast.Node
	typ := n.ChildByFieldName("type")
	anonymous := cIsSpecifier(typ) && typ.ChildByFieldName("name") == nil && typ.ChildByFieldName("body") != nil
	if !anonymous {
		if d := b.specifier(typ); d != nil {
			nodes = append(nodes, d)
		}
	}
	for _, d := range cFieldChildren(n, "declarator") {
		name := cDeclaratorName(d)
		if name == nil {
			continue
		}
		decl := &ast.VarDecl{Mut: ast.NoToken, Name: b.token(name, ast.Identifier)}
		if anonymous && d.Type() == "type_identifier" {
			decl.Init = b.container(typ)
			anonymous = false
		} else if typ != nil {
			decl.Init = b.span(typ)
		}
		nodes = append(nodes, decl)
	}
	return nodes
}

// specifier returns a container binding for a named specifier with a body,
// or nil.
func (b *cBuilder) specifier(n *sitter.Node) ast.Node {
	if !cIsSpecifier(n) {
		return nil
	}
	name := n.ChildByFieldName("name")
	if name == nil || n.ChildByFieldName("body") == nil {
		return nil
	}
	return &ast.VarDecl{Mut: ast.NoToken, Name: b.token(name, ast.Identifier), Init: b.container(n)}
}

func (b *cBuilder) container(n *sitter.Node) *ast.ContainerDecl {
	c := &ast.ContainerDecl{Keyword: ast.NoToken}
	for i := 0; i < int(n.ChildCount()); i++ {
		if kw := n.Child(i); kw.Type() == "struct" || kw.Type() == "union" || kw.Type() == "enum" {
			c.Keyword = b.token(kw, ast.Keyword)
			break
		}
	}
	body := n.ChildByFieldName("body")
	for i := 0; i < int(body.NamedChildCount()); i++ {
		m := body.NamedChild(i)
		switch m.Type() {
		case "field_declaration":
			if d := b.specifier(m.ChildByFieldName("type")); d != nil {
				c.Members = append(c.Members, d)
			}
			for _, d := range cFieldChildren(m, "declarator") {
				if name := cDeclaratorName(d); name != nil {
					c.Members = append(c.Members, &ast.ContainerField{Name: b.token(name, ast.Identifier)})
				}
			}
		case "enumerator":
			if name := m.ChildByFieldName("name"); name != nil {
				c.Members = append(c.Members, &ast.ContainerField{Name: b.token(name, ast.Identifier)})
			}
		}
	}
	return c
}

func (b *cBuilder) span(n *sitter.Node) *ast.OtherExpr {
	tok := b.token(n, ast.Invalid)
	return &ast.OtherExpr{First: tok, Last: tok}
}

// cDeclaratorName follows a declarator chain (pointer, array, function,
// parenthesized, init) down to the declared identifier.
func cDeclaratorName(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "identifier", "field_identifier", "type_identifier":
			return n
		}
		next := n.ChildByFieldName("declarator")
		if next == nil && n.NamedChildCount() > 0 {
			next = n.NamedChild(0)
		}
		n = next
	}
	return nil
}

// cIsFunction reports whether a declarator declares a function rather than
// a function pointer.
func cIsFunction(n *sitter.Node) bool {
	for n != nil {
		switch n.Type() {
		case "function_declarator":
			inner := n.ChildByFieldName("declarator")
			return inner != nil && inner.Type() == "identifier"
		case "pointer_declarator":
			n = n.ChildByFieldName("declarator")
		default:
			return false
		}
	}
	return false
}

func cIsSpecifier(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "struct_specifier", "union_specifier", "enum_specifier":
		return true
	}
	return false
}

func cFieldChildren(n *sitter.Node, field string) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.FieldNameForChild(i) == field {
			out = append(out, n.Child(i))
		}
	}
	return out
}
