package token

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ModifierFunc transforms a resolved value. Modifiers receive the render
// context so custom entries may perform I/O; the builtin set is pure.
type ModifierFunc func(ctx context.Context, value any, args []any) (any, error)

// errMismatch reports a modifier applied to a value it cannot operate on,
// or called with the wrong arguments.
var errMismatch = errors.New("type mismatch")

// modifierNames is the closed set of recognized modifier names. A custom
// registry may omit entries but never add names outside this set, which
// makes an unrecognized name a construction-time configuration error
// instead of a silent render-time no-op.
var modifierNames = map[string]struct{}{
	"upper":   {},
	"lower":   {},
	"title":   {},
	"trim":    {},
	"default": {},
	"gt":      {},
	"lt":      {},
	"gte":     {},
	"lte":     {},
	"eq":      {},
	"if":      {},
	"date":    {},
	"number":  {},
}

// Registry is the immutable modifier table consulted during rendering.
type Registry struct {
	funcs map[string]ModifierFunc
}

// NewRegistry builds a Registry, validating every name against the
// recognized modifier set.
func NewRegistry(funcs map[string]ModifierFunc) (*Registry, error) {
	table := make(map[string]ModifierFunc, len(funcs))
	for name, fn := range funcs {
		if _, ok := modifierNames[name]; !ok {
			return nil, fmt.Errorf("unrecognized modifier %q", name)
		}
		table[name] = fn
	}
	return &Registry{funcs: table}, nil
}

// DefaultModifiers returns the full builtin modifier set.
func DefaultModifiers() *Registry {
	r, err := NewRegistry(map[string]ModifierFunc{
		"upper":   modUpper,
		"lower":   modLower,
		"title":   modTitle,
		"trim":    modTrim,
		"default": modDefault,
		"gt":      compareModifier("gt", func(a, b float64) bool { return a > b }),
		"lt":      compareModifier("lt", func(a, b float64) bool { return a < b }),
		"gte":     compareModifier("gte", func(a, b float64) bool { return a >= b }),
		"lte":     compareModifier("lte", func(a, b float64) bool { return a <= b }),
		"eq":      modEq,
		"if":      modIf,
		"date":    modDate,
		"number":  modNumber,
	})
	if err != nil {
		// The builtin table is defined against modifierNames; a mismatch
		// is a programming error.
		panic(err)
	}
	return r
}

func (r *Registry) lookup(name string) (ModifierFunc, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// String modifiers

func modUpper(_ context.Context, value any, _ []any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("upper wants a string: %w", errMismatch)
	}
	return strings.ToUpper(s), nil
}

func modLower(_ context.Context, value any, _ []any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("lower wants a string: %w", errMismatch)
	}
	return strings.ToLower(s), nil
}

func modTitle(_ context.Context, value any, _ []any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("title wants a string: %w", errMismatch)
	}
	// cases.Caser carries state; build one per call for concurrency safety.
	return cases.Title(language.Und).String(s), nil
}

func modTrim(_ context.Context, value any, _ []any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("trim wants a string: %w", errMismatch)
	}
	return strings.TrimSpace(s), nil
}

func modDefault(_ context.Context, value any, args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("default wants one argument: %w", errMismatch)
	}
	if value == nil || value == "" {
		return args[0], nil
	}
	return value, nil
}

// Comparison modifiers

func compareModifier(name string, cmp func(a, b float64) bool) ModifierFunc {
	return func(_ context.Context, value any, args []any) (any, error) {
		a, ok := toNumber(value)
		if !ok {
			return nil, fmt.Errorf("%s wants a number: %w", name, errMismatch)
		}
		if len(args) != 1 {
			return nil, fmt.Errorf("%s wants one numeric argument: %w", name, errMismatch)
		}
		b, ok := toNumber(args[0])
		if !ok {
			return nil, fmt.Errorf("%s wants a numeric argument: %w", name, errMismatch)
		}
		return cmp(a, b), nil
	}
}

func modEq(_ context.Context, value any, args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("eq wants one argument: %w", errMismatch)
	}
	if a, ok := toNumber(value); ok {
		if b, ok := toNumber(args[0]); ok {
			return a == b, nil
		}
	}
	return stringify(value) == stringify(args[0]), nil
}

func modIf(_ context.Context, value any, args []any) (any, error) {
	cond, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("if wants a boolean input: %w", errMismatch)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("if wants two arguments: %w", errMismatch)
	}
	if cond {
		return args[0], nil
	}
	return args[1], nil
}

// Formatting modifiers

func modDate(_ context.Context, value any, args []any) (any, error) {
	t, ok := toTime(value)
	if !ok {
		return nil, fmt.Errorf("date wants a time value: %w", errMismatch)
	}
	layout := time.RFC3339
	if len(args) > 0 {
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("date wants a layout string: %w", errMismatch)
		}
		layout = namedLayout(s)
	}
	return t.Format(layout), nil
}

// namedLayout maps friendly layout names onto Go reference layouts; any
// other string is used as a layout directly.
func namedLayout(name string) string {
	switch name {
	case "date":
		return "2006-01-02"
	case "time":
		return "15:04:05"
	case "datetime":
		return "2006-01-02 15:04:05"
	default:
		return name
	}
}

func modNumber(_ context.Context, value any, args []any) (any, error) {
	n, ok := toNumber(value)
	if !ok {
		return nil, fmt.Errorf("number wants a numeric value: %w", errMismatch)
	}
	precision := -1
	if len(args) > 0 {
		p, ok := toNumber(args[0])
		if !ok {
			return nil, fmt.Errorf("number wants a numeric precision: %w", errMismatch)
		}
		precision = int(p)
	}
	return strconv.FormatFloat(n, 'f', precision, 64), nil
}

// Conversions shared by the builtin set.

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		return parsed, err == nil
	case float64:
		return time.Unix(int64(t), 0).UTC(), true
	case int64:
		return time.Unix(t, 0).UTC(), true
	default:
		return time.Time{}, false
	}
}
