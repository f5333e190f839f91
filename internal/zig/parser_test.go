package zig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/zigtags/internal/ast"
)

func parse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, err := Parse([]byte(src))
	require.NoError(t, err)
	return tree
}

func name(tree *ast.Tree, i ast.TokenIndex) string {
	if i == ast.NoToken {
		return ""
	}
	return tree.TokenSlice(i)
}

func TestParseFunction(t *testing.T) {
	t.Parallel()

	tree := parse(t, "pub fn add(a: i32, b: i32) i32 { return a + b; }\n")
	require.Len(t, tree.Decls, 1)
	fn, ok := tree.Decls[0].(*ast.FnProto)
	require.True(t, ok, "got %T", tree.Decls[0])
	assert.Equal(t, "add", name(tree, fn.Name))
}

func TestParseFunctionReturnTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		fn   string
	}{
		{"error set", "fn f() error{ A, B }!void { return; }\nconst after = 1;", "f"},
		{"inferred error", "fn f() !void {}\nconst after = 1;", "f"},
		{"struct type", "fn f() struct { a: i32 } { return .{ .a = 1 }; }\nconst after = 1;", "f"},
		{"enum with tag type", "fn f() enum(u8) { a, b } { return .a; }\nconst after = 1;", "f"},
		{"callconv", "export fn f() callconv(.C) void {}\nconst after = 1;", "f"},
		{"prototype", "extern \"c\" fn f(x: c_int) c_int;\nconst after = 1;", "f"},
		{"generic", "fn List(comptime T: type) type { return struct { items: []T }; }\nconst after = 1;", "List"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tree := parse(t, tt.src)
			require.Len(t, tree.Decls, 2)
			fn, ok := tree.Decls[0].(*ast.FnProto)
			require.True(t, ok)
			assert.Equal(t, tt.fn, name(tree, fn.Name))
			v, ok := tree.Decls[1].(*ast.VarDecl)
			require.True(t, ok)
			assert.Equal(t, "after", name(tree, v.Name))
		})
	}
}

func TestParseVarDecls(t *testing.T) {
	t.Parallel()

	src := `const std = @import("std");
var x: i32 = 5;
var y: [4]u8 align(4) = undefined;
extern var z: c_int;
threadlocal var counter: usize = 0;
`
	tree := parse(t, src)
	require.Len(t, tree.Decls, 5)

	want := []struct {
		name    string
		hasInit bool
	}{
		{"std", true},
		{"x", true},
		{"y", true},
		{"z", false},
		{"counter", true},
	}
	for i, w := range want {
		v, ok := tree.Decls[i].(*ast.VarDecl)
		require.True(t, ok, "decl %d is %T", i, tree.Decls[i])
		assert.Equal(t, w.name, name(tree, v.Name))
		assert.Equal(t, w.hasInit, v.Init != nil, w.name)
	}
}

func TestParseContainer(t *testing.T) {
	t.Parallel()

	src := `pub const Point = extern struct {
    x: f32,
    y: f32 = 0,

    pub fn len(self: Point) f32 {
        return @sqrt(self.x * self.x + self.y * self.y);
    }

    const Inner = struct {};
};
`
	tree := parse(t, src)
	require.Len(t, tree.Decls, 1)
	v := tree.Decls[0].(*ast.VarDecl)
	c, ok := v.Init.(*ast.ContainerDecl)
	require.True(t, ok, "init is %T", v.Init)
	assert.Equal(t, "struct", tree.TokenSlice(c.Keyword))
	require.Len(t, c.Members, 4)

	assert.Equal(t, "x", name(tree, c.Members[0].(*ast.ContainerField).Name))
	assert.Equal(t, "y", name(tree, c.Members[1].(*ast.ContainerField).Name))
	assert.Equal(t, "len", name(tree, c.Members[2].(*ast.FnProto).Name))
	inner := c.Members[3].(*ast.VarDecl)
	assert.Equal(t, "Inner", name(tree, inner.Name))
	assert.IsType(t, &ast.ContainerDecl{}, inner.Init)
}

func TestParseEnumAndUnionTags(t *testing.T) {
	t.Parallel()

	src := `const Color = enum(u8) { red, green = 2, _ };
const Value = union(enum) { int: i64, none };
`
	tree := parse(t, src)
	require.Len(t, tree.Decls, 2)

	color := tree.Decls[0].(*ast.VarDecl).Init.(*ast.ContainerDecl)
	assert.Equal(t, "enum", tree.TokenSlice(color.Keyword))
	var names []string
	for _, m := range color.Members {
		names = append(names, name(tree, m.(*ast.ContainerField).Name))
	}
	assert.Equal(t, []string{"red", "green", "_"}, names)

	value := tree.Decls[1].(*ast.VarDecl).Init.(*ast.ContainerDecl)
	assert.Equal(t, "union", tree.TokenSlice(value.Keyword))
	names = names[:0]
	for _, m := range value.Members {
		names = append(names, name(tree, m.(*ast.ContainerField).Name))
	}
	assert.Equal(t, []string{"int", "none"}, names)
}

func TestParseTupleFieldsHaveNoName(t *testing.T) {
	t.Parallel()

	tree := parse(t, "const Pair = struct { u32, ?*const u8 };\n")
	c := tree.Decls[0].(*ast.VarDecl).Init.(*ast.ContainerDecl)
	require.Len(t, c.Members, 2)
	for _, m := range c.Members {
		assert.Equal(t, ast.NoToken, m.(*ast.ContainerField).Name)
	}
}

func TestParseErrorInitializers(t *testing.T) {
	t.Parallel()

	src := `const E = error{ OutOfMemory, Overflow };
const e = error.OutOfMemory;
const Any = anyerror;
const Merged = E || error{Extra};
`
	tree := parse(t, src)
	require.Len(t, tree.Decls, 4)

	set, ok := tree.Decls[0].(*ast.VarDecl).Init.(*ast.ErrorSetDecl)
	require.True(t, ok)
	require.Len(t, set.Names, 2)
	assert.Equal(t, "Overflow", tree.TokenSlice(set.Names[1]))

	assert.IsType(t, &ast.ErrorType{}, tree.Decls[1].(*ast.VarDecl).Init)
	assert.IsType(t, &ast.ErrorType{}, tree.Decls[2].(*ast.VarDecl).Init)
	assert.IsType(t, &ast.OtherExpr{}, tree.Decls[3].(*ast.VarDecl).Init)
}

func TestParseContainerUsedInExpression(t *testing.T) {
	t.Parallel()

	tree := parse(t, "const v = struct { a: i32 }{ .a = 1 };\n")
	require.Len(t, tree.Decls, 1)
	assert.IsType(t, &ast.OtherExpr{}, tree.Decls[0].(*ast.VarDecl).Init)
}

func TestParseOpaqueAndPacked(t *testing.T) {
	t.Parallel()

	tree := parse(t, "const H = opaque {};\nconst Flags = packed struct(u8) { a: bool, _pad: u7 };\n")
	require.Len(t, tree.Decls, 2)
	h := tree.Decls[0].(*ast.VarDecl).Init.(*ast.ContainerDecl)
	assert.Equal(t, "opaque", tree.TokenSlice(h.Keyword))
	assert.Empty(t, h.Members)
	flags := tree.Decls[1].(*ast.VarDecl).Init.(*ast.ContainerDecl)
	assert.Equal(t, "struct", tree.TokenSlice(flags.Keyword))
	assert.Len(t, flags.Members, 2)
}

func TestParseOtherDecls(t *testing.T) {
	t.Parallel()

	src := `test "adds" {
    try expect(add(1, 2) == 3);
}
test {}
comptime {
    _ = @import("x.zig");
}
pub usingnamespace @import("y.zig");
`
	tree := parse(t, src)
	require.Len(t, tree.Decls, 4)
	for _, d := range tree.Decls {
		assert.IsType(t, &ast.OtherDecl{}, d)
	}
}

func TestParseAnonymousFunctionType(t *testing.T) {
	t.Parallel()

	tree := parse(t, "const Handler = *const fn (ctx: *anyopaque) error{Failed}!void;\n")
	require.Len(t, tree.Decls, 1)
	v := tree.Decls[0].(*ast.VarDecl)
	assert.Equal(t, "Handler", name(tree, v.Name))
	assert.IsType(t, &ast.OtherExpr{}, v.Init)
}

func TestParseStringsAndCharsDoNotUnbalance(t *testing.T) {
	t.Parallel()

	src := "const a = \"}{\";\nconst b = '{';\nconst c =\n    \\\\ multi } line\n;\nconst d = 1;\n"
	tree := parse(t, src)
	require.Len(t, tree.Decls, 4)
	assert.Equal(t, "d", name(tree, tree.Decls[3].(*ast.VarDecl).Name))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"unterminated struct", "const S = struct {\n    a: i32,\n"},
		{"unterminated body", "fn f() void {\n"},
		{"missing name", "const = 5;"},
		{"stray brace", "}"},
		{"missing semicolon before brace", "const S = struct { const a = 1 };"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			var se *SyntaxError
			assert.ErrorAs(t, err, &se)
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("const a = 1;\nconst = 2;\n"))
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Line)
	assert.Equal(t, 7, se.Column)
	assert.Contains(t, err.Error(), "2:7:")
}
