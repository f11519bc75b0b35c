package template

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	boldPattern   = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicPattern = regexp.MustCompile(`_([^_\n]+)_`)
	strikePattern = regexp.MustCompile(`~([^~\n]+)~`)
)

// sampleValues stand in for variables that have no example yet, keyed by
// (index-1) mod len, so the live preview never shows a raw token.
var sampleValues = []string{"John", "123456", "ACME", "tomorrow", "10%"}

// RenderPreview substitutes placeholders with the given values (falling
// back to fixed samples), then rewrites WhatsApp inline markup to display
// markup: *bold*, _italic_, ~strikethrough~ and newlines to <br>. Unmatched
// markers are left as literal characters rather than treated as an error;
// escaping is deliberately not supported.
func RenderPreview(text string, values map[int]string) string {
	out := placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		idx, err := strconv.Atoi(placeholderPattern.FindStringSubmatch(token)[1])
		if err != nil || idx < 1 {
			return token
		}
		if v, ok := values[idx]; ok && v != "" {
			return v
		}
		return sampleValues[(idx-1)%len(sampleValues)]
	})

	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicPattern.ReplaceAllString(out, "<em>$1</em>")
	out = strikePattern.ReplaceAllString(out, "<s>$1</s>")
	out = strings.ReplaceAll(out, "\n", "<br>")
	return out
}
