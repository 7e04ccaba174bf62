package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SanitizePaste cleans pasted text before it reaches an input: escape
// sequences and control characters are removed, line endings become LF and
// trailing whitespace is trimmed from every line.
func SanitizePaste(content string) string {
	content = ansi.Strip(content)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var b strings.Builder
	b.Grow(len(content))
	for _, r := range content {
		if r == '\n' || r == '\t' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
		}
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// CollapseNewlines joins the lines of content with single spaces, for
// single-line inputs.
func CollapseNewlines(content string) string {
	var parts []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
