// Package model defines core data structures for zigtags.
package model

import "fmt"

// Kind is the single-character classification of a tagged declaration.
type Kind byte

const (
	// KindNone is written for named declarations that no rule classifies.
	KindNone     Kind = 0
	KindFunction Kind = 'f'
	KindVariable Kind = 'v'
	KindStruct   Kind = 's'
	KindUnion    Kind = 'u'
	KindEnum     Kind = 'e'
	KindErrorSet Kind = 'r'
	KindMember   Kind = 'm'
)

var kindNames = map[Kind]string{
	KindFunction: "function",
	KindVariable: "variable",
	KindStruct:   "struct",
	KindUnion:    "union",
	KindEnum:     "enum",
	KindErrorSet: "errorset",
	KindMember:   "member",
}

// Name returns the long name of the kind, or "" for KindNone.
func (k Kind) Name() string {
	return kindNames[k]
}

// Kinds lists every kind letter in the order they are documented.
const Kinds = "fvsuerm"

// KindSet is a filter over kinds. A nil set matches every kind, including
// KindNone.
type KindSet map[Kind]struct{}

// ParseKinds builds a KindSet from a string of kind letters such as "fvs".
// An empty string yields a nil set.
func ParseKinds(letters string) (KindSet, error) {
	if letters == "" {
		return nil, nil
	}
	set := make(KindSet, len(letters))
	for i := 0; i < len(letters); i++ {
		k := Kind(letters[i])
		if _, ok := kindNames[k]; !ok {
			return nil, fmt.Errorf("unknown kind %q (valid kinds: %s)", letters[i], Kinds)
		}
		set[k] = struct{}{}
	}
	return set, nil
}

// Has reports whether k passes the filter.
func (s KindSet) Has(k Kind) bool {
	if s == nil {
		return true
	}
	_, ok := s[k]
	return ok
}

// Scope is the enclosing named container of a declaration: the innermost
// container keyword and the dotted path of container names.
type Scope struct {
	Kind string
	Path string
}

// Enter returns the scope for members of the container name declared with
// keyword kind inside s.
func (s Scope) Enter(kind, name string) Scope {
	path := name
	if s.Path != "" {
		path = s.Path + "." + name
	}
	return Scope{Kind: kind, Path: path}
}

// Tag is a single tag record.
type Tag struct {
	Name    string
	Path    string
	Pattern string // escaped source line, without the /^ $/ anchors
	Kind    Kind
	Scope   Scope
}
