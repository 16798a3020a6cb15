// Package selection expands select/ignore/extend-select lists into the
// concrete set of rule codes that run.
//
// Each selector is ALL, a category prefix ("S"), a partial code ("S0") or a
// full code ("S001"). The stages are applied in a fixed order:
//
//  1. select: union of every match
//  2. ignore: subtraction, strictly after all selects
//  3. extend-select: union again, unless an ignore entry matching the same
//     code is strictly more specific than the extend-select entry
//
// Preview rules are excluded from every stage unless preview is enabled.
package selection

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/wharflab/fortitude/internal/config"
	"github.com/wharflab/fortitude/internal/rules"
)

// All is the selector matching every known code.
const All = "ALL"

// ErrUnknownSelector is wrapped by errors for selectors matching no rule.
var ErrUnknownSelector = errors.New("unknown rule selector")

var selectorPattern = regexp.MustCompile(`^[A-Z]+[0-9]{0,3}$`)

// Input holds the three selector lists and the preview flag.
type Input struct {
	Select       []string
	Ignore       []string
	ExtendSelect []string
	Preview      bool
}

// FromSettings builds the selector input from effective settings.
func FromSettings(s *config.Settings) Input {
	return Input{
		Select:       s.Select,
		Ignore:       s.Ignore,
		ExtendSelect: s.ExtendSelect,
		Preview:      s.Preview,
	}
}

// Warning is a non-fatal selection outcome.
type Warning struct {
	Selector string
	Code     rules.Code
	Message  string
}

// Result is the outcome of Resolve.
type Result struct {
	Active   Set
	Warnings []Warning
}

type selector struct {
	raw    string
	prefix string
	all    bool
}

// specificity ranks selectors: ALL < category < partial code < full code.
func (s selector) specificity() int {
	if s.all {
		return 0
	}
	return len(s.prefix)
}

func (s selector) matches(code rules.Code) bool {
	return s.all || strings.HasPrefix(code.String(), s.prefix)
}

func (s selector) isFullCode() bool {
	_, err := rules.ParseCode(s.prefix)
	return !s.all && err == nil
}

func parseSelector(raw string) (selector, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == All {
		return selector{raw: raw, all: true}, nil
	}
	if !selectorPattern.MatchString(trimmed) {
		return selector{}, fmt.Errorf("%w: %q", ErrUnknownSelector, raw)
	}
	return selector{raw: raw, prefix: trimmed}, nil
}

func parseSelectors(reg *rules.Registry, field string, raws []string) ([]selector, error) {
	out := make([]selector, 0, len(raws))
	codes := reg.Codes()
	for _, raw := range raws {
		sel, err := parseSelector(raw)
		if err == nil && !slices.ContainsFunc(codes, sel.matches) {
			err = fmt.Errorf("%w: %q matches no known rule", ErrUnknownSelector, raw)
		}
		if err != nil {
			return nil, &config.Error{Field: field, Err: err}
		}
		out = append(out, sel)
	}
	return out, nil
}

// bestMatch returns the highest specificity among selectors matching code,
// or -1 when none match.
func bestMatch(sels []selector, code rules.Code) int {
	best := -1
	for _, s := range sels {
		if s.matches(code) {
			best = max(best, s.specificity())
		}
	}
	return best
}

// Resolve expands in against the registry. Unknown or malformed selectors
// are returned as *config.Error.
func Resolve(reg *rules.Registry, in Input) (Result, error) {
	selects, err := parseSelectors(reg, "select", in.Select)
	if err != nil {
		return Result{}, err
	}
	ignores, err := parseSelectors(reg, "ignore", in.Ignore)
	if err != nil {
		return Result{}, err
	}
	extends, err := parseSelectors(reg, "extend-select", in.ExtendSelect)
	if err != nil {
		return Result{}, err
	}

	var (
		active   []rules.Code
		warnings []Warning
	)
	for _, rule := range reg.All() {
		meta := rule.Metadata()
		code := meta.Code

		if meta.Stability == rules.Preview && !in.Preview {
			warnings = append(warnings, previewWarnings(code, selects, extends)...)
			continue
		}

		selected := bestMatch(selects, code) >= 0
		ignoredAt := bestMatch(ignores, code)
		if ignoredAt >= 0 {
			selected = false
		}
		if extendedAt := bestMatch(extends, code); extendedAt >= 0 && extendedAt >= ignoredAt {
			selected = true
		}
		if selected {
			active = append(active, code)
		}
	}

	return Result{Active: NewSet(active...), Warnings: warnings}, nil
}

func previewWarnings(code rules.Code, groups ...[]selector) []Warning {
	var out []Warning
	for _, group := range groups {
		for _, s := range group {
			if s.isFullCode() && s.matches(code) {
				out = append(out, Warning{
					Selector: s.raw,
					Code:     code,
					Message:  fmt.Sprintf("rule %s is in preview and requires --preview; it will not run", code),
				})
			}
		}
	}
	return out
}

// Set is an immutable, sorted set of rule codes.
type Set struct {
	codes []rules.Code
}

// NewSet builds a set from codes; duplicates are dropped.
func NewSet(codes ...rules.Code) Set {
	sorted := slices.Clone(codes)
	slices.SortFunc(sorted, rules.Code.Compare)
	sorted = slices.Compact(sorted)
	return Set{codes: sorted}
}

// Contains reports whether code is in the set.
func (s Set) Contains(code rules.Code) bool {
	_, found := slices.BinarySearchFunc(s.codes, code, rules.Code.Compare)
	return found
}

// Codes returns the codes in order.
func (s Set) Codes() []rules.Code {
	return slices.Clone(s.codes)
}

// Len returns the number of codes.
func (s Set) Len() int {
	return len(s.codes)
}

// String renders the set as a comma-separated list.
func (s Set) String() string {
	parts := make([]string, len(s.codes))
	for i, c := range s.codes {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
