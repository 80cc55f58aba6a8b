package token

import (
	"reflect"
	"testing"
)

func TestParseTokenPaths(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single segment", "user", []string{"user"}},
		{"dotted path", "user.profile.name", []string{"user", "profile", "name"}},
		{"numeric segment", "entry.items.0.id", []string{"entry", "items", "0", "id"}},
		{"surrounding whitespace", "  entry.title  ", []string{"entry", "title"}},
		{"underscores and dashes", "site.main_nav.sub-item", []string{"site", "main_nav", "sub-item"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := parseToken(tt.raw)
			if err != nil {
				t.Fatalf("parseToken(%q) error = %v", tt.raw, err)
			}
			if !reflect.DeepEqual(tok.path, tt.want) {
				t.Errorf("path = %v, want %v", tok.path, tt.want)
			}
			if len(tok.modifiers) != 0 {
				t.Errorf("modifiers = %v, want none", tok.modifiers)
			}
		})
	}
}

func TestParseTokenModifiers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []modifierCall
	}{
		{
			"bare modifier",
			"entry.title | upper",
			[]modifierCall{{name: "upper"}},
		},
		{
			"chained modifiers",
			"entry.title | trim | upper",
			[]modifierCall{{name: "trim"}, {name: "upper"}},
		},
		{
			"numeric argument",
			"entry.price | gt(10)",
			[]modifierCall{{name: "gt", args: []any{float64(10)}}},
		},
		{
			"string arguments",
			`entry.price | if("Big", "Small")`,
			[]modifierCall{{name: "if", args: []any{"Big", "Small"}}},
		},
		{
			"comma inside quotes",
			`entry.title | default("a, b")`,
			[]modifierCall{{name: "default", args: []any{"a, b"}}},
		},
		{
			"boolean argument",
			"entry.flag | eq(true)",
			[]modifierCall{{name: "eq", args: []any{true}}},
		},
		{
			"bare word argument",
			"entry.published | date(date)",
			[]modifierCall{{name: "date", args: []any{"date"}}},
		},
		{
			"single quotes",
			"entry.title | eq('Hello')",
			[]modifierCall{{name: "eq", args: []any{"Hello"}}},
		},
		{
			"colon style rewrites to call style",
			"entry.price | gt:10",
			[]modifierCall{{name: "gt", args: []any{float64(10)}}},
		},
		{
			"colon style with layout",
			"entry.published | date:2006-01-02",
			[]modifierCall{{name: "date", args: []any{"2006-01-02"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := parseToken(tt.raw)
			if err != nil {
				t.Fatalf("parseToken(%q) error = %v", tt.raw, err)
			}
			if !reflect.DeepEqual(tok.modifiers, tt.want) {
				t.Errorf("modifiers = %#v, want %#v", tok.modifiers, tt.want)
			}
		})
	}
}

func TestParseTokenFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"double dot", "entry..title"},
		{"leading dot", ".entry"},
		{"trailing dot", "entry."},
		{"brace in segment", "{{x"},
		{"pipe with empty modifier", "entry.title |"},
		{"modifier starts with digit", "entry.title | 5x"},
		{"unbalanced parens", "entry.title | if(\"a\""},
		{"path with space", "entry title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseToken(tt.raw); err == nil {
				t.Errorf("parseToken(%q) should fail", tt.raw)
			}
		})
	}
}

func TestParseTokenDotted(t *testing.T) {
	tok, err := parseToken("user.profile.name | upper")
	if err != nil {
		t.Fatalf("parseToken() error = %v", err)
	}
	if tok.namespace() != "user" {
		t.Errorf("namespace() = %q, want %q", tok.namespace(), "user")
	}
	if tok.dotted() != "user.profile.name" {
		t.Errorf("dotted() = %q, want %q", tok.dotted(), "user.profile.name")
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`"a", "b"`, []string{`"a"`, `"b"`}},
		{`"a, b", "c"`, []string{`"a, b"`, `"c"`}},
		{`1, 2, 3`, []string{"1", "2", "3"}},
		{`'x,y'`, []string{`'x,y'`}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := splitArgs(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitArgs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
