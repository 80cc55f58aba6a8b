package token

import "strings"

// Token delimiters. openMarker also doubles as the cheap pre-check
// substring used by ContainsTokens and the JSON walker.
const (
	openMarker  = "{{"
	closeMarker = "}}"
)

// segmentKind discriminates scanner output spans.
type segmentKind int

const (
	segText segmentKind = iota
	segEscape
	segToken
)

// span is one scanner output unit: a literal text run, an escaped token
// marker, or the raw inner content of a {{...}} token.
type span struct {
	kind segmentKind
	text string
}

// scan splits a template into literal text, escaped markers and raw token
// spans. It never fails: an unterminated token is kept as literal text so
// the renderer degrades instead of erroring. Nested braces inside a token
// are not interpreted; the first }} closes the span and whatever is left
// inside fails to parse and degrades per the renderer's policy.
func scan(template string) []span {
	var spans []span
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			spans = append(spans, span{kind: segText, text: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(template) {
		// \{{ is the one escape the grammar has: it consumes the
		// backslash and emits a literal {{ at render time.
		if template[i] == '\\' && strings.HasPrefix(template[i+1:], openMarker) {
			flush()
			spans = append(spans, span{kind: segEscape})
			i += 1 + len(openMarker)
			continue
		}
		if strings.HasPrefix(template[i:], openMarker) {
			rel := strings.Index(template[i+len(openMarker):], closeMarker)
			if rel < 0 {
				// Unterminated token: keep the rest verbatim.
				text.WriteString(template[i:])
				break
			}
			flush()
			inner := template[i+len(openMarker) : i+len(openMarker)+rel]
			spans = append(spans, span{kind: segToken, text: inner})
			i += len(openMarker) + rel + len(closeMarker)
			continue
		}
		text.WriteByte(template[i])
		i++
	}
	flush()
	return spans
}
