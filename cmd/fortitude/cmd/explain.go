package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/all"
)

func explainCommand() *cli.Command {
	return &cli.Command{
		Name:      "explain",
		Usage:     "Describe rules",
		ArgsUsage: "[CODE|CATEGORY|NAME...]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			stdout, stderr := outputs(cmd)
			selected, err := lookupRules(all.Registry(), cmd.Args().Slice())
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return cli.Exit("", ExitError)
			}
			return explainRules(stdout, selected)
		},
	}
}

// lookupRules resolves each argument as a full code, a category prefix or a
// rule name. No arguments selects every rule.
func lookupRules(reg *rules.Registry, args []string) ([]rules.Rule, error) {
	if len(args) == 0 {
		return reg.All(), nil
	}

	var out []rules.Rule
	seen := make(map[rules.Code]bool)
	add := func(r rules.Rule) {
		code := r.Metadata().Code
		if !seen[code] {
			seen[code] = true
			out = append(out, r)
		}
	}

	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if code, err := rules.ParseCode(strings.ToUpper(arg)); err == nil {
			r, ok := reg.Get(code)
			if !ok {
				return nil, fmt.Errorf("unknown rule code %s", code)
			}
			add(r)
			continue
		}
		if category, err := rules.ParseCategory(strings.ToUpper(arg)); err == nil {
			for _, r := range reg.ByCategory(category) {
				add(r)
			}
			continue
		}
		if r, ok := reg.ByName(arg); ok {
			add(r)
			continue
		}
		return nil, fmt.Errorf("unknown rule or category %q", arg)
	}

	slices.SortFunc(out, func(a, b rules.Rule) int {
		return a.Metadata().Code.Compare(b.Metadata().Code)
	})
	return out, nil
}

func explainRules(w io.Writer, selected []rules.Rule) error {
	for i, r := range selected {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := explainRule(w, r.Metadata()); err != nil {
			return err
		}
	}
	return nil
}

func explainRule(w io.Writer, meta rules.RuleMetadata) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n\n", meta.Name, meta.Code)
	b.WriteString(meta.Summary)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Category: %s\n", meta.Code.Category.Name())
	fmt.Fprintf(&b, "Stability: %s\n", meta.Stability)
	fmt.Fprintf(&b, "Fix: %s\n", fixDescription(meta.Fix))
	if !meta.DefaultEnabled {
		b.WriteString("Not enabled by default\n")
	}

	if text := strings.TrimSpace(meta.Explain); text != "" {
		b.WriteString("\n")
		b.WriteString(text)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func fixDescription(f rules.FixAvailability) string {
	switch f {
	case rules.FixAlways:
		return "always available"
	case rules.FixSometimes:
		return "sometimes available"
	default:
		return "not available"
	}
}
