package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// highlightJSON colors JSON for the terminal. The source is returned as-is
// when highlighting fails.
func highlightJSON(source string) string {
	var buf strings.Builder
	if err := quick.Highlight(&buf, source, "json", "terminal256", "monokai"); err != nil {
		return source
	}
	return buf.String()
}
