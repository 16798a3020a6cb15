package rules

// Codes of the diagnostics the engine produces on its own. They are
// registered like any other rule so that they can be selected and ignored.
var (
	SyntaxErrorCode   = MustParseCode("E001")
	InternalErrorCode = MustParseCode("E011")
)

type syntheticRule struct {
	meta RuleMetadata
}

func (r syntheticRule) Metadata() RuleMetadata { return r.meta }

// SyntaxError returns the rule reported once per region the parser could
// not understand.
func SyntaxError() Rule {
	return syntheticRule{meta: RuleMetadata{
		Code:    SyntaxErrorCode,
		Name:    "syntax-error",
		Summary: "Syntax error",
		Explain: `## What it does
Reports regions of a file the parser could not understand.

## Why is this bad?
Other rules still run on the rest of the file, but anything inside an
unparsable region is skipped, so the diagnostics for that file are
incomplete. A syntax error may also be a false positive of the parser
for very new or very old language features.`,
		DefaultEnabled: true,
	}}
}

// InternalError returns the rule reported when another rule fails.
func InternalError() Rule {
	return syntheticRule{meta: RuleMetadata{
		Code:    InternalErrorCode,
		Name:    "internal-error",
		Summary: "Internal error in a rule",
		Explain: `## What it does
Reports that a rule crashed or produced an invalid fix while checking a
file. The output of that rule is discarded for the affected node; every
other rule keeps running.

## What to do
This is a bug in fortitude. Please report it together with the file that
triggers it, and ignore the failing rule in the meantime.`,
		DefaultEnabled: true,
	}}
}
