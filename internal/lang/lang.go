// Package lang provides a language registry mapping file extensions to the
// front ends that turn source bytes into an ast.Tree.
package lang

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/phobologic/zigtags/internal/ast"
)

// DefaultLanguage is used when a file extension is not registered.
const DefaultLanguage = "zig"

// Language holds the configuration of a supported source language.
type Language struct {
	Name       string
	Extensions []string

	// parse builds the declaration tree of one source file.
	parse func(ctx context.Context, source []byte) (*ast.Tree, error)
}

// Parse builds the declaration tree of source.
func (l *Language) Parse(ctx context.Context, source []byte) (*ast.Tree, error) {
	return l.parse(ctx, source)
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// extensionMap is built lazily after all init() functions have run.
var extensionMap map[string]string
var extensionOnce sync.Once

func getExtensionMap() map[string]string {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]string)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[ext] = l.Name
			}
		}
	})
	return extensionMap
}

// ForExtension returns the language name for a file extension, or "" if unsupported.
func ForExtension(ext string) string {
	return getExtensionMap()[strings.ToLower(ext)]
}

// ForPath returns the language for path by extension, falling back to
// DefaultLanguage.
func ForPath(path string) *Language {
	if name := ForExtension(filepath.Ext(path)); name != "" {
		return Languages[name]
	}
	return Languages[DefaultLanguage]
}

// Names returns the registered language names, sorted.
func Names() []string {
	names := make([]string, 0, len(Languages))
	for name := range Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
