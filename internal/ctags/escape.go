package ctags

import "strings"

// Escape makes line safe inside a /^...$/ search pattern by prefixing
// every '/' and '\' with a '\'. No other byte is changed.
func Escape(line string) string {
	if !strings.ContainsAny(line, `/\`) {
		return line
	}
	var b strings.Builder
	b.Grow(len(line) + 8)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '/' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Unescape reverses Escape.
func Unescape(pattern string) string {
	if !strings.Contains(pattern, `\`) {
		return pattern
	}
	var b strings.Builder
	b.Grow(len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '\\' && i+1 < len(pattern) && (pattern[i+1] == '/' || pattern[i+1] == '\\') {
			i++
			c = pattern[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}
