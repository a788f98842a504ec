package inference

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/pdfrename/pkg/types"
)

// titleFieldRe matches a pdf_title string field anywhere in the completion,
// honoring backslash escapes inside the value.
var titleFieldRe = regexp.MustCompile(`"pdf_title"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// ParseTitle scans a raw completion for the first non-empty pdf_title
// value. The completion need not be valid JSON; models often wrap the
// object in prose or code fences.
func ParseTitle(completion string) types.GeneratedTitle {
	for _, m := range titleFieldRe.FindAllStringSubmatch(completion, -1) {
		value := unescape(m[1])
		if strings.TrimSpace(value) != "" {
			return types.Found(strings.TrimSpace(value))
		}
	}
	return types.NotFound
}

func unescape(raw string) string {
	if s, err := strconv.Unquote(`"` + raw + `"`); err == nil {
		return s
	}
	// Escapes Go does not know (\/ for instance) fall back to dropping the
	// backslash.
	return strings.NewReplacer(`\"`, `"`, `\\`, `\`, `\/`, `/`).Replace(raw)
}
