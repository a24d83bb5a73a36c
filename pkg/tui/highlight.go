package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/weftdev/weft/pkg/site"
)

const highlightStyle = "monokai"

func lexerFor(section site.Section) string {
	switch section {
	case site.SectionCSS:
		return "css"
	case site.SectionJS:
		return "javascript"
	default:
		return "html"
	}
}

// highlightCode renders source with ANSI colors for the given section.
// Falls back to the plain source if the highlighter chokes on partial code,
// which happens routinely mid-reveal.
func highlightCode(section site.Section, source string) string {
	var buf strings.Builder
	if err := quick.Highlight(&buf, source, lexerFor(section), "terminal256", highlightStyle); err != nil {
		return source
	}
	return buf.String()
}
