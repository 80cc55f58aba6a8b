// Package token implements the CMS token-templating engine: it
// interpolates {{namespace.path}} tokens into text, emails, SEO strings
// and JSON payloads.
//
// # Syntax
//
// A token is a dotted path with an optional pipeline of modifiers:
//
//	{{user.username}}
//	{{entry.title | upper}}
//	{{entry.price | gt(10) | if("Big", "Small")}}
//
// The first path segment selects a namespace in the render Context.
// A backslash escapes the opening marker: \{{ renders a literal {{.
// There is no other escape, and tokens do not nest.
//
// Modifier arguments are literals only: quoted strings, numbers and
// booleans. The legacy colon form name:arg is accepted and rewritten to
// name(arg) before parsing.
//
// # Resolution and security
//
// Values resolve against a Context of named bindings: Static for plain
// value graphs, Lazy for resolver functions (typically database-backed),
// Document for raw JSON documents, SystemBinding for clock and identifier
// values. The engine's security Policy is consulted before any binding is
// touched, so a denied path (user.password, any segment named token or
// secret, ...) never triggers a lookup and always renders empty.
//
// # Failure behavior
//
// Malformed tokens, unresolvable paths, blocked paths and modifier
// failures never abort a render. Each substitutes the empty string and
// appends an Issue to the RenderResult; the raw token text is never echoed
// back into the output. Only scalars render: a token that resolves to a
// map or array substitutes the empty string too, since dumping a composite
// would expose children the Policy denies. Diagnostics are for editors and
// administrators, not end users.
//
// # Builtin modifiers
//
// String: upper, lower, title, trim, default(fallback).
// Comparison: gt(n), lt(n), gte(n), lte(n), eq(v) — all return booleans.
// Conditional: if(whenTrue, whenFalse) on a boolean input.
// Formatting: date(layout) with the named layouts "date", "time" and
// "datetime" or a Go reference layout; number(precision).
//
// An Engine is stateless and safe for concurrent use; the Policy and
// modifier Registry it holds are immutable after construction.
package token
