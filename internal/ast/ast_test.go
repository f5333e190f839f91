package ast

import "testing"

// tree builds a Tree whose single token covers src[start:end].
func tree(src string, start, end uint32) *Tree {
	return &Tree{
		Source: []byte(src),
		Tokens: []Token{{Tag: Identifier, Start: start, End: end}},
	}
}

func TestLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		start uint32
		end   uint32
		want  string
		line  int
	}{
		{"first line", "const a = 1;\nconst b = 2;\n", 6, 7, "const a = 1;", 1},
		{"second line", "const a = 1;\nconst b = 2;\n", 19, 20, "const b = 2;", 2},
		{"no trailing newline", "x\nfn f() void {}", 5, 6, "fn f() void {}", 2},
		{"crlf", "const a = 1;\r\nconst b = 2;\r\n", 20, 21, "const b = 2;", 2},
		{"indented", "struct {\n    x: i32,\n}", 13, 14, "    x: i32,", 2},
		{"empty line before", "\n\nvar v = 0;", 6, 7, "var v = 0;", 3},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr := tree(tt.src, tt.start, tt.end)
			if got := tr.Line(0); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
			if got := tr.LineNumber(0); got != tt.line {
				t.Errorf("LineNumber() = %d, want %d", got, tt.line)
			}
		})
	}
}

func TestLineSpanBareCarriageReturn(t *testing.T) {
	t.Parallel()

	// Only a '\r' right before the line break is dropped.
	tr := tree("a\rb\n", 0, 1)
	start, end := tr.LineSpan(0)
	if start != 0 || end != 3 {
		t.Errorf("LineSpan() = (%d, %d), want (0, 3)", start, end)
	}
}

func TestTokenSlice(t *testing.T) {
	t.Parallel()

	tr := tree("const answer = 42;", 6, 12)
	if got := tr.TokenSlice(0); got != "answer" {
		t.Errorf("TokenSlice() = %q, want %q", got, "answer")
	}
}

func TestTagString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  Tag
		want string
	}{
		{LBrace, "'{'"},
		{Semicolon, "';'"},
		{EOF, "end of file"},
		{Identifier, "identifier"},
	}
	for _, tt := range tests {
		tt := tt
		if got := tt.tag.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
