// Package filesystem implements rules about source file names.
package filesystem

import (
	"path/filepath"

	"github.com/wharflab/fortitude/internal/rules"
)

// NonStandardFileExtensionRule reports Fortran sources not named *.f90.
type NonStandardFileExtensionRule struct{}

// NewNonStandardFileExtensionRule creates a new non-standard-file-extension rule instance.
func NewNonStandardFileExtensionRule() *NonStandardFileExtensionRule {
	return &NonStandardFileExtensionRule{}
}

// Metadata returns the rule metadata.
func (r *NonStandardFileExtensionRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("F001"),
		Name:    "non-standard-file-extension",
		Summary: "Non-standard file extension",
		Explain: `## What it does
Checks that Fortran source files use the '.f90' extension, or '.F90' for
files that need the preprocessor.

## Why is this bad?
Compilers treat '.f', '.for' and '.f77' as fixed-form sources, and the
'.f95', '.f03' and '.f08' extensions are not recognised everywhere. The
'90' in '.f90' denotes free-form source, not a standard revision, so it
is the right choice for modern code of any standard.`,
		Stability:      rules.Stable,
		Fix:            rules.FixNone,
		DefaultEnabled: true,
	}
}

// CheckPath runs the rule on the file name.
func (r *NonStandardFileExtensionRule) CheckPath(path string) []rules.Diagnostic {
	switch filepath.Ext(path) {
	case ".f90", ".F90":
		return nil
	}
	return []rules.Diagnostic{rules.NewDiagnostic(r.Metadata().Code,
		"file extension should be '.f90' or '.F90'",
		rules.TextRange{})}
}
