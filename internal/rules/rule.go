package rules

import "github.com/wharflab/fortitude/internal/syntax"

// Settings carries the per-run knobs some rules need.
type Settings struct {
	// LineLength is the maximum allowed line length in characters.
	LineLength int

	// Indent is the whitespace unit used when a fix has to indent a new line.
	Indent string
}

// DefaultLineLength is the built-in line-length limit.
const DefaultLineLength = 100

// DefaultIndent is used when no .editorconfig says otherwise.
const DefaultIndent = "    "

// Input contains everything a rule may look at for one version of one file.
//
// Input is read-only. Rules must not mutate Source or Tree: other rules see
// the same values during the same pass.
type Input struct {
	// Path is the file being linted.
	Path string

	// Source is the text the Tree was parsed from.
	Source []byte

	// Tree is the parsed file. It may contain error nodes.
	Tree *syntax.Tree

	Settings Settings
}

// Stability marks whether a rule is ready for general use.
type Stability int

const (
	// Stable rules run without opt-in.
	Stable Stability = iota
	// Preview rules only run with --preview.
	Preview
)

// String returns the string representation of the stability.
func (s Stability) String() string {
	if s == Preview {
		return "preview"
	}
	return "stable"
}

// FixAvailability describes whether a rule offers fixes.
type FixAvailability int

const (
	FixNone FixAvailability = iota
	FixSometimes
	FixAlways
)

// String returns the string representation of the fix availability.
func (f FixAvailability) String() string {
	switch f {
	case FixSometimes:
		return "sometimes"
	case FixAlways:
		return "always"
	default:
		return "none"
	}
}

// RuleMetadata contains static information about a rule.
type RuleMetadata struct {
	// Code is the unique identifier (e.g., "S001").
	Code Code `json:"code"`

	// Name is the kebab-case rule name (e.g., "line-too-long").
	Name string `json:"name"`

	// Summary is a one-line description of what the rule checks.
	Summary string `json:"summary"`

	// Explain is the long-form text shown by `fortitude explain`: what the
	// rule tests for, why it matters and how to fix it.
	Explain string `json:"explain"`

	Stability Stability       `json:"stability"`
	Fix       FixAvailability `json:"fix"`

	// DefaultEnabled rules are part of the built-in selection.
	DefaultEnabled bool `json:"defaultEnabled"`
}

// Rule is implemented by every rule. A rule additionally implements one of
// the capability interfaces below, which determines when the engine calls it.
// Rules implementing none are synthesized by the engine itself.
type Rule interface {
	Metadata() RuleMetadata
}

// PathRule inspects only the file path. Called once per file.
type PathRule interface {
	Rule
	CheckPath(path string) []Diagnostic
}

// TextRule inspects the raw text. Called once per file.
type TextRule interface {
	Rule
	CheckText(input Input) []Diagnostic
}

// TreeRule inspects the whole tree. Called once per file.
type TreeRule interface {
	Rule
	CheckTree(input Input) []Diagnostic
}

// NodeRule subscribes to specific node kinds. Called for every named node
// whose kind is listed in Entrypoints. Anonymous keyword leaves sharing a
// construct's kind, such as the "module" in "end module", are not
// dispatched.
type NodeRule interface {
	Rule
	Entrypoints() []string
	CheckNode(node *syntax.Node, input Input) []Diagnostic
}

// TokenRule inspects leaf nodes. Called for every leaf of the tree.
type TokenRule interface {
	Rule
	CheckToken(leaf *syntax.Node, input Input) []Diagnostic
}
