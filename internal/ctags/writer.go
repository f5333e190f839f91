package ctags

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/phobologic/zigtags/internal/model"
)

// Writer serializes tag records. Each record is written with a single
// Write call on the underlying stream; nothing is buffered across records.
type Writer interface {
	WriteHeader(program, version string) error
	WriteTag(tag model.Tag) error
}

// Formats lists the names accepted by NewWriter.
var Formats = []string{"ctags", "json"}

// NewWriter returns the writer for format.
func NewWriter(format string, w io.Writer) (Writer, error) {
	switch format {
	case "", "ctags":
		return &lineWriter{w: w}, nil
	case "json":
		return &jsonWriter{w: w}, nil
	}
	return nil, fmt.Errorf("unsupported format %q (valid formats: %v)", format, Formats)
}

// lineWriter writes the extended ctags format:
//
//	name<TAB>path<TAB>/^pattern$/;"<TAB>kind[<TAB>scopeKind:scope]
type lineWriter struct {
	w   io.Writer
	buf []byte
}

func (lw *lineWriter) WriteHeader(program, version string) error {
	header := "!_TAG_FILE_FORMAT\t2\t/extended format; --format=1 will not append ;\" to lines/\n" +
		"!_TAG_FILE_SORTED\t0\t/0=unsorted, 1=sorted, 2=foldcase/\n" +
		"!_TAG_PROGRAM_NAME\t" + program + "\t//\n" +
		"!_TAG_PROGRAM_VERSION\t" + version + "\t//\n"
	_, err := io.WriteString(lw.w, header)
	return err
}

func (lw *lineWriter) WriteTag(tag model.Tag) error {
	b := lw.buf[:0]
	b = append(b, tag.Name...)
	b = append(b, '\t')
	b = append(b, tag.Path...)
	b = append(b, "\t/^"...)
	b = append(b, tag.Pattern...)
	b = append(b, "$/;\"\t"...)
	b = append(b, byte(tag.Kind))
	if tag.Scope.Path != "" {
		b = append(b, '\t')
		b = append(b, tag.Scope.Kind...)
		b = append(b, ':')
		b = append(b, tag.Scope.Path...)
	}
	b = append(b, '\n')
	lw.buf = b
	_, err := lw.w.Write(b)
	return err
}

type jsonTag struct {
	Type      string `json:"_type"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Pattern   string `json:"pattern"`
	Kind      string `json:"kind,omitempty"`
	Scope     string `json:"scope,omitempty"`
	ScopeKind string `json:"scopeKind,omitempty"`
}

// jsonWriter writes one JSON object per line, in the shape of universal
// ctags' JSON output.
type jsonWriter struct {
	w   io.Writer
	buf bytes.Buffer
}

func (jw *jsonWriter) WriteHeader(program, version string) error {
	ptags := []jsonTag{
		{Type: "ptag", Name: "TAG_FILE_FORMAT", Path: "2", Pattern: "extended format"},
		{Type: "ptag", Name: "TAG_FILE_SORTED", Path: "0", Pattern: "0=unsorted, 1=sorted, 2=foldcase"},
		{Type: "ptag", Name: "TAG_PROGRAM_NAME", Path: program},
		{Type: "ptag", Name: "TAG_PROGRAM_VERSION", Path: version},
	}
	for _, p := range ptags {
		if err := jw.write(p); err != nil {
			return err
		}
	}
	return nil
}

func (jw *jsonWriter) WriteTag(tag model.Tag) error {
	jt := jsonTag{
		Type:      "tag",
		Name:      tag.Name,
		Path:      tag.Path,
		Pattern:   "/^" + tag.Pattern + "$/",
		Scope:     tag.Scope.Path,
		ScopeKind: tag.Scope.Kind,
	}
	if tag.Kind != model.KindNone {
		jt.Kind = string(rune(tag.Kind))
	}
	return jw.write(jt)
}

func (jw *jsonWriter) write(v jsonTag) error {
	jw.buf.Reset()
	enc := json.NewEncoder(&jw.buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := jw.w.Write(jw.buf.Bytes())
	return err
}
