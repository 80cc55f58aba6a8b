package token

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/sveltycms/tokens/pkg/logging"
)

// Engine renders token templates. An Engine is immutable after
// construction and safe for concurrent use: all per-call state lives in
// the call's arguments and output buffer.
type Engine struct {
	policy    *Policy
	modifiers *Registry
	logger    *slog.Logger
}

// Config customizes an Engine. Zero fields fall back to defaults:
// DefaultPolicy, DefaultModifiers and a no-op logger.
type Config struct {
	Policy    *Policy
	Modifiers *Registry
	Logger    *slog.Logger
}

// New creates an engine with the default policy and modifier set.
func New() *Engine { return NewWithConfig(Config{}) }

// NewWithConfig creates an engine from explicit configuration. The policy
// and registry are treated as immutable from this point on.
func NewWithConfig(cfg Config) *Engine {
	e := &Engine{
		policy:    cfg.Policy,
		modifiers: cfg.Modifiers,
		logger:    cfg.Logger,
	}
	if e.policy == nil {
		e.policy = DefaultPolicy()
	}
	if e.modifiers == nil {
		e.modifiers = DefaultModifiers()
	}
	if e.logger == nil {
		e.logger = logging.Nop()
	}
	return e
}

// Render interpolates every {{...}} token in template against tc. Tokens
// are resolved left to right, one at a time, so diagnostic order and any
// lazy-resolver side effects match source order.
//
// Malformed tokens, unresolvable paths, policy-blocked paths, composite
// values and modifier failures all substitute the empty string and append
// to the result's Issues; no template content can make Render return an
// error. The error
// return is reserved for engine misuse and is nil for every template.
func (e *Engine) Render(ctx context.Context, template string, tc *Context) (*RenderResult, error) {
	res := &RenderResult{}
	if !strings.Contains(template, openMarker) {
		res.Output = template
		return res, nil
	}

	var out strings.Builder
	for _, sp := range scan(template) {
		switch sp.kind {
		case segText:
			out.WriteString(sp.text)
		case segEscape:
			out.WriteString(openMarker)
		case segToken:
			out.WriteString(e.renderToken(ctx, sp.text, tc, res))
		}
	}
	res.Output = out.String()
	return res, nil
}

// renderToken runs parse, resolve and the modifier chain for one raw token
// span and returns its substitution text.
func (e *Engine) renderToken(ctx context.Context, raw string, tc *Context, res *RenderResult) string {
	tok, err := parseToken(raw)
	if err != nil {
		e.report(res, Issue{Kind: IssueParseFailure, Path: strings.TrimSpace(raw), Detail: err.Error()})
		return ""
	}

	value, issue := e.resolvePath(ctx, tok, tc)
	if issue != nil {
		e.report(res, *issue)
		return ""
	}

	for _, call := range tok.modifiers {
		fn, ok := e.modifiers.lookup(call.name)
		if !ok {
			e.report(res, Issue{
				Kind:   IssueUnknownModifier,
				Path:   tok.dotted(),
				Detail: fmt.Sprintf("unknown modifier %q", call.name),
			})
			return ""
		}
		value, err = fn(ctx, value, call.args)
		if err != nil {
			e.report(res, Issue{
				Kind:   IssueModifierMismatch,
				Path:   tok.dotted(),
				Detail: err.Error(),
			})
			return ""
		}
	}

	if isComposite(value) {
		e.report(res, Issue{
			Kind:   IssueUnresolved,
			Path:   tok.dotted(),
			Detail: "composite value is not renderable",
		})
		return ""
	}

	return stringify(value)
}

// resolvePath resolves the token's path against the Context. The security
// policy runs before the binding is even looked up, so a blocked path
// causes no resolver side effects and reports Blocked whether or not the
// namespace is bound.
func (e *Engine) resolvePath(ctx context.Context, tok *parsedToken, tc *Context) (any, *Issue) {
	namespace, rest := tok.namespace(), tok.path[1:]

	if e.policy.IsBlocked(namespace, rest) {
		return nil, &Issue{Kind: IssueBlocked, Path: tok.dotted(), Detail: "blocked by security policy"}
	}

	b, ok := tc.binding(namespace)
	if !ok {
		return nil, &Issue{
			Kind:   IssueUnresolved,
			Path:   tok.dotted(),
			Detail: fmt.Sprintf("namespace %q not bound", namespace),
		}
	}

	value, err := b.resolve(ctx, rest)
	if err != nil {
		return nil, &Issue{Kind: IssueUnresolved, Path: tok.dotted(), Detail: err.Error()}
	}
	return value, nil
}

func (e *Engine) report(res *RenderResult, issue Issue) {
	res.Issues = append(res.Issues, issue)
	e.logger.Debug("token render issue",
		"kind", string(issue.Kind),
		"path", issue.Path,
		"detail", issue.Detail,
	)
}

// isComposite reports whether a value is a map, slice or array. Composite
// values never render: dumping their textual form would expose every
// child, including fields the security policy denies, so the renderer
// substitutes the empty string and reports a diagnostic instead.
func isComposite(v any) bool {
	switch v.(type) {
	case nil, string, bool, time.Time:
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// stringify converts a resolved scalar to its substitution text. Times use
// RFC 3339 unless a date modifier formatted them earlier in the chain.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
