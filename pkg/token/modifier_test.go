package token

import (
	"context"
	"testing"
	"time"
)

func applyModifier(t *testing.T, name string, value any, args ...any) (any, error) {
	t.Helper()
	fn, ok := DefaultModifiers().lookup(name)
	if !ok {
		t.Fatalf("builtin modifier %q missing from default registry", name)
	}
	return fn(context.Background(), value, args)
}

func TestStringModifiers(t *testing.T) {
	tests := []struct {
		name     string
		modifier string
		value    any
		args     []any
		want     any
	}{
		{"upper", "upper", "hello", nil, "HELLO"},
		{"lower", "lower", "HeLLo", nil, "hello"},
		{"title", "title", "hello world", nil, "Hello World"},
		{"trim", "trim", "  padded  ", nil, "padded"},
		{"default used", "default", "", []any{"fallback"}, "fallback"},
		{"default on nil", "default", nil, []any{"fallback"}, "fallback"},
		{"default skipped", "default", "value", []any{"fallback"}, "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyModifier(t, tt.modifier, tt.value, tt.args...)
			if err != nil {
				t.Fatalf("%s error = %v", tt.modifier, err)
			}
			if got != tt.want {
				t.Errorf("%s = %v, want %v", tt.modifier, got, tt.want)
			}
		})
	}
}

func TestStringModifierMismatch(t *testing.T) {
	for _, name := range []string{"upper", "lower", "title", "trim"} {
		t.Run(name, func(t *testing.T) {
			if _, err := applyModifier(t, name, 42); err == nil {
				t.Errorf("%s on a number should fail", name)
			}
		})
	}
}

func TestComparisonModifiers(t *testing.T) {
	tests := []struct {
		name     string
		modifier string
		value    any
		arg      any
		want     bool
	}{
		{"gt true", "gt", 50, float64(10), true},
		{"gt false", "gt", 5, float64(10), false},
		{"gt equal is false", "gt", float64(10), float64(10), false},
		{"lt true", "lt", 5, float64(10), true},
		{"gte equal", "gte", float64(10), float64(10), true},
		{"lte above", "lte", 11, float64(10), false},
		{"numeric string input", "gt", "50", float64(10), true},
		{"eq numbers", "eq", 10, float64(10), true},
		{"eq strings", "eq", "Hello", "Hello", true},
		{"eq mixed false", "eq", "Hello", "World", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyModifier(t, tt.modifier, tt.value, tt.arg)
			if err != nil {
				t.Fatalf("%s error = %v", tt.modifier, err)
			}
			if got != tt.want {
				t.Errorf("%s = %v, want %v", tt.modifier, got, tt.want)
			}
		})
	}
}

func TestComparisonModifierMismatch(t *testing.T) {
	if _, err := applyModifier(t, "gt", "not a number", float64(10)); err == nil {
		t.Error("gt on a non-numeric string should fail")
	}
	if _, err := applyModifier(t, "gt", 5); err == nil {
		t.Error("gt without an argument should fail")
	}
}

func TestIfModifier(t *testing.T) {
	got, err := applyModifier(t, "if", true, "Big", "Small")
	if err != nil {
		t.Fatalf("if error = %v", err)
	}
	if got != "Big" {
		t.Errorf("if(true) = %v, want Big", got)
	}

	got, err = applyModifier(t, "if", false, "Big", "Small")
	if err != nil {
		t.Fatalf("if error = %v", err)
	}
	if got != "Small" {
		t.Errorf("if(false) = %v, want Small", got)
	}

	if _, err := applyModifier(t, "if", "truthy", "a", "b"); err == nil {
		t.Error("if on a non-boolean should fail")
	}
	if _, err := applyModifier(t, "if", true, "only one"); err == nil {
		t.Error("if with one argument should fail")
	}
}

func TestDateModifier(t *testing.T) {
	when := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		args  []any
		want  string
	}{
		{"time no layout", when, nil, "2025-06-01T12:30:45Z"},
		{"named date layout", when, []any{"date"}, "2025-06-01"},
		{"named time layout", when, []any{"time"}, "12:30:45"},
		{"named datetime layout", when, []any{"datetime"}, "2025-06-01 12:30:45"},
		{"go reference layout", when, []any{"02 Jan 2006"}, "01 Jun 2025"},
		{"rfc3339 string input", "2025-06-01T12:30:45Z", []any{"date"}, "2025-06-01"},
		{"unix seconds input", float64(when.Unix()), []any{"date"}, "2025-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyModifier(t, "date", tt.value, tt.args...)
			if err != nil {
				t.Fatalf("date error = %v", err)
			}
			if got != tt.want {
				t.Errorf("date = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := applyModifier(t, "date", "yesterday"); err == nil {
		t.Error("date on an unparseable string should fail")
	}
}

func TestNumberModifier(t *testing.T) {
	tests := []struct {
		name  string
		value any
		args  []any
		want  string
	}{
		{"no precision", 2.5, nil, "2.5"},
		{"fixed precision", 2.5, []any{float64(2)}, "2.50"},
		{"round down", 3.14159, []any{float64(2)}, "3.14"},
		{"integer input", 50, []any{float64(2)}, "50.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyModifier(t, "number", tt.value, tt.args...)
			if err != nil {
				t.Fatalf("number error = %v", err)
			}
			if got != tt.want {
				t.Errorf("number = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRegistryRejectsUnknownName(t *testing.T) {
	_, err := NewRegistry(map[string]ModifierFunc{
		"reverse": func(_ context.Context, v any, _ []any) (any, error) { return v, nil },
	})
	if err == nil {
		t.Fatal("NewRegistry should reject names outside the recognized set")
	}
}

func TestNewRegistrySubset(t *testing.T) {
	r, err := NewRegistry(map[string]ModifierFunc{"upper": modUpper})
	if err != nil {
		t.Fatalf("NewRegistry error = %v", err)
	}
	if _, ok := r.lookup("upper"); !ok {
		t.Error("upper should be registered")
	}
	if _, ok := r.lookup("lower"); ok {
		t.Error("lower should not be registered in a subset registry")
	}
}
