package runner

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/editorconfig/editorconfig-core-go/v2"

	"github.com/wharflab/fortitude/internal/rules"
)

// indentFor returns the indentation unit .editorconfig declares for path,
// or rules.DefaultIndent.
func indentFor(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return rules.DefaultIndent
	}
	def, err := editorconfig.GetDefinitionForFilename(abs)
	if err != nil || def == nil {
		return rules.DefaultIndent
	}
	return indentUnit(def)
}

func indentUnit(def *editorconfig.Definition) string {
	if def.IndentStyle == editorconfig.IndentStyleTab {
		return "\t"
	}
	if n, err := strconv.Atoi(def.IndentSize); err == nil && n > 0 {
		return strings.Repeat(" ", n)
	}
	// indent_size = tab falls back to tab_width.
	if def.IndentStyle == editorconfig.IndentStyleSpaces && def.TabWidth > 0 {
		return strings.Repeat(" ", def.TabWidth)
	}
	return rules.DefaultIndent
}
