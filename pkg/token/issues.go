package token

// IssueKind classifies a non-fatal render failure.
type IssueKind string

// Issue kinds. All of them substitute the empty string in the output.
const (
	IssueParseFailure     IssueKind = "parse_failure"
	IssueUnresolved       IssueKind = "unresolved"
	IssueBlocked          IssueKind = "blocked"
	IssueUnknownModifier  IssueKind = "unknown_modifier"
	IssueModifierMismatch IssueKind = "modifier_mismatch"
)

// Issue is one out-of-band diagnostic from a render call. Issues are
// surfaced to editors and administrators; they are never embedded in the
// rendered output, so template authors cannot probe security boundaries
// through error text.
type Issue struct {
	// Kind classifies the failure.
	Kind IssueKind
	// Path is the dotted token path, or the raw span for parse failures.
	Path string
	// Detail is a human-readable explanation.
	Detail string
}

// RenderResult is the output of one render call: the assembled string and
// the diagnostics collected along the way, in source order.
type RenderResult struct {
	Output string
	Issues []Issue
}
