package token

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationResult is the verdict of ValidateTokenSyntax.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

var emptyTokenPattern = regexp.MustCompile(`\{\{\s*\}\}`)

// ValidateTokenSyntax lints raw template text before save. Each rule is
// checked independently, so one call may report several errors. This is a
// linting pass for editors, not a parser: text that fails validation still
// renders without error, it just degrades.
func ValidateTokenSyntax(text string) ValidationResult {
	var errs []string

	if emptyTokenPattern.MatchString(text) {
		errs = append(errs, "Empty token detected")
	}
	if hasNestedToken(text) {
		errs = append(errs, "Nested tokens are not supported")
	}
	opens := strings.Count(text, openMarker)
	closes := strings.Count(text, closeMarker)
	if opens != closes {
		errs = append(errs, fmt.Sprintf("Unbalanced token delimiters: %d opening, %d closing", opens, closes))
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// hasNestedToken reports whether any {{ opens again before its own span
// closes.
func hasNestedToken(text string) bool {
	i := 0
	for {
		open := strings.Index(text[i:], openMarker)
		if open < 0 {
			return false
		}
		open += i
		rest := text[open+len(openMarker):]
		end := strings.Index(rest, closeMarker)
		if end < 0 {
			return false
		}
		if strings.Contains(rest[:end], openMarker) {
			return true
		}
		i = open + len(openMarker) + end + len(closeMarker)
	}
}

// ExtractTokenPaths returns the dotted path of every well-formed token in
// text, ignoring modifiers. Editors use it to feed autocompletion.
func ExtractTokenPaths(text string) []string {
	var paths []string
	for _, sp := range scan(text) {
		if sp.kind != segToken {
			continue
		}
		tok, err := parseToken(sp.text)
		if err != nil {
			continue
		}
		paths = append(paths, tok.dotted())
	}
	return paths
}

// ContainsTokens is a cheap substring pre-check for token syntax.
func ContainsTokens(text string) bool {
	return strings.Contains(text, openMarker)
}
