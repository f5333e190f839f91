// Package ctags turns a syntax tree into tag records: it classifies
// declarations, tracks the nested container scope and writes one line per
// named declaration.
package ctags

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/phobologic/zigtags/internal/ast"
	"github.com/phobologic/zigtags/internal/model"
)

// ErrWrite is matched by every error caused by the output stream.
var ErrWrite = errors.New("write failure")

// WriteError wraps an output failure for the tag named Name.
type WriteError struct {
	Name string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing tag %q: %v", e.Name, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrWrite) hold for any WriteError.
func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// Emitter walks the declarations of one tree and writes their tags.
type Emitter struct {
	tree  *ast.Tree
	path  string
	out   Writer
	kinds model.KindSet
	log   zerolog.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithKinds restricts written records to the given kinds. Traversal and
// scoping are unaffected.
func WithKinds(kinds model.KindSet) Option {
	return func(e *Emitter) { e.kinds = kinds }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Emitter) { e.log = l }
}

// NewEmitter returns an Emitter writing tags for tree to out. path is
// copied verbatim into every record.
func NewEmitter(tree *ast.Tree, path string, out Writer, opts ...Option) *Emitter {
	e := &Emitter{tree: tree, path: path, out: out, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run emits every top-level declaration with an empty scope.
func (e *Emitter) Run() error {
	for _, n := range e.tree.Decls {
		if err := e.Emit(n, model.Scope{}); err != nil {
			return err
		}
	}
	return nil
}

// Emit writes the tag for node and, when node binds a container, the tags
// of its members first. The first write failure stops the traversal.
func (e *Emitter) Emit(node ast.Node, scope model.Scope) error {
	name := ast.NoToken
	switch n := node.(type) {
	case *ast.ContainerField:
		name = n.Name
	case *ast.FnProto:
		name = n.Name
	case *ast.VarDecl:
		name = n.Name
		if c, ok := n.Init.(*ast.ContainerDecl); ok {
			inner := scope.Enter(e.tree.TokenSlice(c.Keyword), e.tree.TokenSlice(n.Name))
			for _, m := range c.Members {
				if err := e.Emit(m, inner); err != nil {
					return err
				}
			}
		}
	}
	if name == ast.NoToken {
		return nil
	}

	tag := model.Tag{
		Name:    e.tree.TokenSlice(name),
		Path:    e.path,
		Pattern: Escape(e.tree.Line(name)),
		Kind:    Classify(e.tree, node),
		Scope:   scope,
	}
	if tag.Kind == model.KindNone {
		e.log.Debug().
			Str("name", tag.Name).
			Int("line", e.tree.LineNumber(name)).
			Msg("declaration has no kind")
	}
	if !e.kinds.Has(tag.Kind) {
		return nil
	}
	if err := e.out.WriteTag(tag); err != nil {
		return &WriteError{Name: tag.Name, Err: err}
	}
	return nil
}

// Generate writes the tags of every declaration in tree to out.
func Generate(tree *ast.Tree, path string, out Writer, opts ...Option) error {
	return NewEmitter(tree, path, out, opts...).Run()
}
