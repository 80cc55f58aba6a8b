package token

import (
	"context"
	"fmt"

	"github.com/ohler55/ojg/oj"
)

// RenderJSON applies Render to every string leaf of a JSON-like value,
// preserving the value's shape exactly: key sets, array lengths and the
// type at every path are untouched, only string content changes. Opaque
// values such as time.Time and all non-string primitives pass through
// unchanged. The input must be acyclic.
func (e *Engine) RenderJSON(ctx context.Context, value any, tc *Context) (any, []Issue, error) {
	var issues []Issue
	out := e.walkJSON(ctx, value, tc, &issues)
	return out, issues, nil
}

func (e *Engine) walkJSON(ctx context.Context, value any, tc *Context, issues *[]Issue) any {
	switch v := value.(type) {
	case string:
		// Cheap pre-check: most leaves are plain text.
		if !ContainsTokens(v) {
			return v
		}
		// Render's error return is nil for every template.
		res, _ := e.Render(ctx, v, tc)
		*issues = append(*issues, res.Issues...)
		return res.Output
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = e.walkJSON(ctx, val, tc, issues)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = e.walkJSON(ctx, val, tc, issues)
		}
		return out
	default:
		return value
	}
}

// RenderJSONBytes renders every string leaf of a raw JSON document and
// re-serializes it. This is the entry point HTTP handlers use for
// templated response bodies.
func (e *Engine) RenderJSONBytes(ctx context.Context, raw []byte, tc *Context) ([]byte, []Issue, error) {
	data, err := oj.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("parse document: %w", err)
	}
	out, issues, err := e.RenderJSON(ctx, data, tc)
	if err != nil {
		return nil, issues, err
	}
	encoded, err := oj.Marshal(out)
	if err != nil {
		return nil, issues, fmt.Errorf("encode document: %w", err)
	}
	return encoded, issues, nil
}
