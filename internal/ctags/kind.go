package ctags

import (
	"github.com/phobologic/zigtags/internal/ast"
	"github.com/phobologic/zigtags/internal/model"
)

// Classify returns the kind of a declaration node, or model.KindNone when
// no rule applies. The tree is needed to read a container's keyword.
func Classify(tree *ast.Tree, node ast.Node) model.Kind {
	switch n := node.(type) {
	case *ast.FnProto:
		return model.KindFunction
	case *ast.VarDecl:
		switch init := n.Init.(type) {
		case nil:
			return model.KindVariable
		case *ast.ContainerDecl:
			return containerKind(tree.TokenSlice(init.Keyword))
		case *ast.ErrorSetDecl, *ast.ErrorType:
			return model.KindErrorSet
		default:
			return model.KindVariable
		}
	case *ast.ContainerField:
		return model.KindMember
	}
	return model.KindNone
}

func containerKind(keyword string) model.Kind {
	switch keyword {
	case "struct":
		return model.KindStruct
	case "union":
		return model.KindUnion
	case "enum":
		return model.KindEnum
	}
	return model.KindNone
}
