// Package extract recovers structured website code from free-form model
// responses. Extraction is best-effort: a response that does not follow the
// expected EXPLANATION:/HTML:/CSS:/JS: layout degrades to fewer populated
// fields, never to an error.
package extract

import (
	"regexp"
	"strings"

	"github.com/weftdev/weft/pkg/site"
)

// Result holds the fields recovered from a single model response.
type Result struct {
	Explanation string
	Code        site.Code
}

var (
	htmlRegex = regexp.MustCompile("(?is)HTML:\\s*```(?:html)?\\s*(.*?)```")
	cssRegex  = regexp.MustCompile("(?is)CSS:\\s*```(?:css)?\\s*(.*?)```")
	jsRegex   = regexp.MustCompile("(?is)JS:\\s*```(?:javascript|js)?\\s*(.*?)```")

	markerRegex = regexp.MustCompile(`(?i)EXPLANATION:|HTML:|CSS:|JS:`)
	buildRegex  = regexp.MustCompile(`(?i)build.*?(\w+\s+\w+)`)
)

// Parse extracts the explanation and code fields from a raw response.
// Fields are located independently, so their order in the response does not
// matter and any absent field yields an empty string.
func Parse(raw string) Result {
	result := Result{
		Code: site.Code{
			HTML: firstGroup(htmlRegex, raw),
			CSS:  firstGroup(cssRegex, raw),
			JS:   firstGroup(jsRegex, raw),
		},
	}

	segments := splitOnMarkers(raw)
	if segments == nil {
		// No structured segments at all: the whole response is prose.
		result.Explanation = strings.TrimSpace(raw)
		return result
	}

	for _, segment := range segments {
		if len(segment) >= len("EXPLANATION:") && strings.EqualFold(segment[:len("EXPLANATION:")], "EXPLANATION:") {
			result.Explanation = strings.TrimSpace(segment[len("EXPLANATION:"):])
			break
		}
	}

	return result
}

// ProjectTitle derives a display title from the user's original prompt, not
// the model response. Falls back to a fixed placeholder when the prompt does
// not mention building anything.
func ProjectTitle(prompt string) string {
	if m := buildRegex.FindStringSubmatch(prompt); m != nil {
		return m[1]
	}
	return "My Website"
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// splitOnMarkers partitions raw at the start of every section marker,
// keeping the marker with its segment. Returns nil when no marker occurs.
func splitOnMarkers(raw string) []string {
	locs := markerRegex.FindAllStringIndex(raw, -1)
	if len(locs) == 0 {
		return nil
	}

	var segments []string
	if locs[0][0] > 0 {
		segments = append(segments, raw[:locs[0][0]])
	}
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, raw[loc[0]:end])
	}
	return segments
}
