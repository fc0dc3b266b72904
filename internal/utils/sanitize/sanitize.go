package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every HTML tag and attribute. bluemonday policies are
// read-only after build, so sharing one across goroutines is safe.
var strict = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true) // prevents word concatenation
	return p
}()

// Clean strips HTML from user input and normalizes whitespace. All note titles
// and bodies pass through Clean before persistence; repositories assume
// already-clean input.
//
// Examples:
//   - "<script>alert('x')</script>hi" -> "hi"
//   - "<b>a</b> <b>b</b>"             -> "a b"
//   - "&nbsp;test"                    -> " test" trimmed to "test"
func Clean(s string) string {
	out := strict.Sanitize(s)
	out = strings.TrimSpace(out)

	// Unescape entities so &#13; etc. become single characters
	out = html.UnescapeString(out)

	// Normalize non-breaking spaces for search friendliness
	out = strings.ReplaceAll(out, "\u00a0", " ")

	// Collapse runs of spaces per line, keeping newlines intact
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
