package lang

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/phobologic/zigtags/internal/ast"
	"github.com/phobologic/zigtags/internal/zig"
)

func init() {
	Languages["zig"] = &Language{
		Name:       "zig",
		Extensions: []string{".zig"},
		parse:      zigParse,
	}
}

func zigParse(ctx context.Context, source []byte) (*ast.Tree, error) {
	tree, err := zig.Parse(source)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().
		Int("tokens", len(tree.Tokens)).
		Int("decls", len(tree.Decls)).
		Msg("parsed zig source")
	return tree, nil
}
