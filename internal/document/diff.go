package document

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// Diff returns a unified diff between two renderings of a document, or ""
// when they are identical.
func Diff(before, after string) string {
	if before == after {
		return ""
	}
	if !strings.HasSuffix(before, "\n") {
		before += "\n"
	}
	if !strings.HasSuffix(after, "\n") {
		after += "\n"
	}
	return udiff.Unified("saved", "edited", before, after)
}
