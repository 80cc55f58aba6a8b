package token

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// parsedToken is one parsed {{...}} span: a dotted path plus an ordered
// modifier chain.
type parsedToken struct {
	path      []string
	modifiers []modifierCall
}

// modifierCall is a single invocation in a token's modifier chain.
// args hold literal values only: string, float64 or bool.
type modifierCall struct {
	name string
	args []any
}

func (t *parsedToken) namespace() string { return t.path[0] }

func (t *parsedToken) dotted() string { return strings.Join(t.path, ".") }

var (
	segmentPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	modifierPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?:\((.*)\))?$`)
	// name:arg is the legacy modifier syntax; it rewrites to name(arg)
	// before parsing.
	colonPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):(.+)$`)
)

// parseToken parses the raw inner content of a token span. Modifier
// arguments must not contain an unescaped pipe; the top-level split is
// deliberately that simple.
func parseToken(raw string) (*parsedToken, error) {
	parts := strings.Split(raw, "|")
	path, err := parsePath(parts[0])
	if err != nil {
		return nil, err
	}
	tok := &parsedToken{path: path}
	for _, part := range parts[1:] {
		call, err := parseModifier(part)
		if err != nil {
			return nil, err
		}
		tok.modifiers = append(tok.modifiers, call)
	}
	return tok, nil
}

func parsePath(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty token path")
	}
	segments := strings.Split(raw, ".")
	for _, seg := range segments {
		if !segmentPattern.MatchString(seg) {
			return nil, fmt.Errorf("invalid path segment %q", seg)
		}
	}
	return segments, nil
}

func parseModifier(raw string) (modifierCall, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "(") {
		if m := colonPattern.FindStringSubmatch(raw); m != nil {
			raw = m[1] + "(" + m[2] + ")"
		}
	}
	m := modifierPattern.FindStringSubmatch(raw)
	if m == nil {
		return modifierCall{}, fmt.Errorf("invalid modifier %q", raw)
	}
	call := modifierCall{name: m[1]}
	if m[2] != "" {
		for _, arg := range splitArgs(m[2]) {
			v, err := parseLiteral(arg)
			if err != nil {
				return modifierCall{}, fmt.Errorf("modifier %s: %w", call.name, err)
			}
			call.args = append(call.args, v)
		}
	}
	return call, nil
}

// splitArgs splits comma-separated modifier arguments, respecting quoted
// strings.
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := byte(0)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuote:
			current.WriteByte(ch)
			if ch == quoteChar {
				inQuote = false
			}
		case ch == '"' || ch == '\'':
			inQuote = true
			quoteChar = ch
			current.WriteByte(ch)
		case ch == ',':
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	if current.Len() > 0 {
		args = append(args, strings.TrimSpace(current.String()))
	}
	return args
}

// parseLiteral interprets one modifier argument: quoted strings, numbers
// and booleans. Unquoted bare words are accepted as strings for
// compatibility with hand-written templates like date:2006-01-02.
func parseLiteral(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty argument")
	}
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1], nil
		}
	}
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n, nil
	}
	return s, nil
}
