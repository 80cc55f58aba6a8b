package token

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// errNotFound marks a path with no value under a binding. The renderer
// turns it into an Unresolved diagnostic, never an error.
var errNotFound = errors.New("path not found")

// Binding supplies the values of one Context namespace. The
// implementations are the closed set returned by Static, Lazy, Document
// and SystemBinding, so the resolver never type-switches on caller data.
type Binding interface {
	resolve(ctx context.Context, segments []string) (any, error)
}

// ResolverFunc backs a Lazy binding. It receives the path segments after
// the namespace and returns the resolved value. Any error it returns is
// swallowed into an Unresolved diagnostic.
type ResolverFunc func(ctx context.Context, segments []string) (any, error)

// Static binds a plain value graph: nested maps, slices and scalars of
// the kind produced by encoding/json.
func Static(value any) Binding { return staticBinding{value: value} }

type staticBinding struct{ value any }

func (b staticBinding) resolve(_ context.Context, segments []string) (any, error) {
	current := b.value
	for _, seg := range segments {
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, errNotFound
			}
			current = next
		case map[string]string:
			next, ok := v[seg]
			if !ok {
				return nil, errNotFound
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, errNotFound
			}
			current = v[idx]
		default:
			return nil, errNotFound
		}
	}
	return current, nil
}

// Lazy binds a resolver function, typically a database-backed lookup.
// The function is only invoked for paths the security policy permits.
func Lazy(fn ResolverFunc) Binding { return lazyBinding{fn: fn} }

type lazyBinding struct{ fn ResolverFunc }

func (b lazyBinding) resolve(ctx context.Context, segments []string) (any, error) {
	return b.fn(ctx, segments)
}

// Document binds a raw JSON document. Paths resolve through JSONPath
// child and index fragments, so "items.0.id" addresses array elements.
func Document(raw []byte) (Binding, error) {
	data, err := oj.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return documentBinding{data: data}, nil
}

type documentBinding struct{ data any }

func (b documentBinding) resolve(_ context.Context, segments []string) (any, error) {
	if len(segments) == 0 {
		return b.data, nil
	}
	expr := jp.Expr{}
	for _, seg := range segments {
		if idx, err := strconv.Atoi(seg); err == nil {
			expr = append(expr, jp.Nth(idx))
		} else {
			expr = append(expr, jp.Child(seg))
		}
	}
	results := expr.Get(b.data)
	if len(results) == 0 {
		return nil, errNotFound
	}
	return results[0], nil
}

// SystemBinding supplies the system namespace: fresh identifier and clock
// values on every resolution.
//
//	{{system.uuid}}       random UUID v4
//	{{system.now}}        current time, RFC 3339 unless a date modifier formats it
//	{{system.timestamp}}  current Unix timestamp
func SystemBinding() Binding {
	return Lazy(func(_ context.Context, segments []string) (any, error) {
		if len(segments) != 1 {
			return nil, errNotFound
		}
		switch segments[0] {
		case "uuid":
			return uuid.NewString(), nil
		case "now":
			return time.Now().UTC(), nil
		case "timestamp":
			return time.Now().Unix(), nil
		}
		return nil, errNotFound
	})
}
