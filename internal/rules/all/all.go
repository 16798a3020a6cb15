// Package all assembles the built-in rule registry.
package all

import (
	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/filesystem"
	"github.com/wharflab/fortitude/internal/rules/modules"
	"github.com/wharflab/fortitude/internal/rules/precision"
	"github.com/wharflab/fortitude/internal/rules/style"
	"github.com/wharflab/fortitude/internal/rules/typing"
)

// Rules returns a fresh instance of every built-in rule, including the
// diagnostics the engine synthesizes itself.
func Rules() []rules.Rule {
	return []rules.Rule{
		rules.SyntaxError(),
		rules.InternalError(),

		filesystem.NewNonStandardFileExtensionRule(),

		style.NewLineTooLongRule(),
		style.NewOldStyleArrayLiteralRule(),
		style.NewDeprecatedRelationalOperatorRule(),
		style.NewUnnamedEndStatementRule(),
		style.NewTrailingWhitespaceRule(),

		typing.NewImplicitTypingRule(),
		typing.NewInterfaceImplicitTypingRule(),
		typing.NewLiteralKindRule(),
		typing.NewStarKindRule(),

		modules.NewProcedureNotInModuleRule(),
		modules.NewUseAllRule(),

		precision.NewNoRealLiteralKindRule(),
		precision.NewDoublePrecisionRule(),
	}
}

// Registry returns the registry of built-in rules.
func Registry() *rules.Registry {
	return rules.MustNewRegistry(Rules()...)
}
