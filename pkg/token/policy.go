package token

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// NamespaceRule restricts which paths of one namespace may resolve.
type NamespaceRule struct {
	// DenyPaths lists dotted sub-paths (relative to the namespace) that
	// always resolve as blocked, e.g. "password" or "meta.internal".
	// Matching is prefix-based: denying "meta.internal" also blocks
	// "meta.internal.key".
	DenyPaths []string `yaml:"deny"`

	// DenySegments lists segment names blocked at any depth.
	DenySegments []string `yaml:"deny_segments"`

	// AllowPaths, when non-empty, restricts resolution to paths under one
	// of the listed prefixes. Deny rules still apply first.
	AllowPaths []string `yaml:"allow"`
}

// Policy is the per-namespace field access policy. It is consulted before
// the Context is touched, so a blocked path never reaches a lazy binding
// and cannot trigger a database lookup. Blocking does not depend on the
// caller or on whether the field exists.
//
// A Policy is immutable after construction and safe for concurrent use.
type Policy struct {
	rules map[string]compiledRule
}

type compiledRule struct {
	denyPaths    [][]string
	denySegments map[string]struct{}
	allowPaths   [][]string
}

// NewPolicy compiles a rule set into a Policy. Namespaces without a rule
// are unrestricted.
func NewPolicy(rules map[string]NamespaceRule) *Policy {
	p := &Policy{rules: make(map[string]compiledRule, len(rules))}
	for namespace, rule := range rules {
		compiled := compiledRule{denySegments: make(map[string]struct{}, len(rule.DenySegments))}
		for _, path := range rule.DenyPaths {
			compiled.denyPaths = append(compiled.denyPaths, strings.Split(path, "."))
		}
		for _, seg := range rule.DenySegments {
			compiled.denySegments[seg] = struct{}{}
		}
		for _, path := range rule.AllowPaths {
			compiled.allowPaths = append(compiled.allowPaths, strings.Split(path, "."))
		}
		p.rules[namespace] = compiled
	}
	return p
}

// DefaultPolicy returns the stock CMS policy: credential fields of the
// user namespace are blocked, as is any user segment named token or
// secret. The policy is defense-in-depth; context providers must not
// expose these fields in the first place.
func DefaultPolicy() *Policy {
	return NewPolicy(map[string]NamespaceRule{
		"user": {
			DenyPaths:    []string{"password", "hashed_password", "resetToken", "sessions"},
			DenySegments: []string{"token", "secret"},
		},
	})
}

// policyFile is the YAML schema for policy configuration files.
type policyFile struct {
	Namespaces map[string]NamespaceRule `yaml:"namespaces"`
}

// ParsePolicy builds a Policy from YAML configuration:
//
//	namespaces:
//	  user:
//	    deny: [password, hashed_password]
//	    deny_segments: [token, secret]
//	  entry:
//	    allow: [title, slug, fields]
func ParsePolicy(data []byte) (*Policy, error) {
	var pf policyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	return NewPolicy(pf.Namespaces), nil
}

// LoadPolicy reads a YAML policy file from disk. Policies are process-wide
// configuration: load once at startup and share the result.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}
	return ParsePolicy(data)
}

// IsBlocked reports whether the policy denies the path. segments exclude
// the namespace itself.
func (p *Policy) IsBlocked(namespace string, segments []string) bool {
	if p == nil {
		return false
	}
	rule, ok := p.rules[namespace]
	if !ok {
		return false
	}
	for _, seg := range segments {
		if _, deny := rule.denySegments[seg]; deny {
			return true
		}
	}
	for _, deny := range rule.denyPaths {
		if hasSegmentPrefix(segments, deny) {
			return true
		}
	}
	if len(rule.allowPaths) > 0 {
		for _, allow := range rule.allowPaths {
			if hasSegmentPrefix(segments, allow) {
				return false
			}
		}
		return true
	}
	return false
}

func hasSegmentPrefix(segments, prefix []string) bool {
	if len(prefix) > len(segments) {
		return false
	}
	for i, p := range prefix {
		if segments[i] != p {
			return false
		}
	}
	return true
}
