package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/fortitude/internal/config"
	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/all"
)

type stubRule struct {
	meta rules.RuleMetadata
}

func (r stubRule) Metadata() rules.RuleMetadata { return r.meta }

func stub(code string, stability rules.Stability) rules.Rule {
	return stubRule{meta: rules.RuleMetadata{
		Code:      rules.MustParseCode(code),
		Name:      "stub-" + code,
		Stability: stability,
	}}
}

// testRegistry is deliberately registered out of order.
func testRegistry() *rules.Registry {
	return rules.MustNewRegistry(
		stub("T002", rules.Stable),
		stub("S001", rules.Stable),
		stub("S101", rules.Stable),
		stub("E001", rules.Stable),
		stub("S002", rules.Stable),
		stub("T001", rules.Stable),
		stub("P001", rules.Preview),
		stub("P011", rules.Stable),
	)
}

func codes(t *testing.T, s Set) []string {
	t.Helper()
	out := make([]string, 0, s.Len())
	for _, c := range s.Codes() {
		out = append(out, c.String())
	}
	return out
}

func TestResolveIsIdempotent(t *testing.T) {
	t.Parallel()
	reg := testRegistry()
	in := Input{
		Select:       []string{"T", "S", "E001"},
		Ignore:       []string{"S1"},
		ExtendSelect: []string{"P"},
	}

	first, err := Resolve(reg, in)
	require.NoError(t, err)
	second, err := Resolve(reg, in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"E001", "S001", "S002", "T001", "T002", "P011"}, codes(t, first.Active))
}

func TestResolveSpecificity(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	tests := []struct {
		name string
		in   Input
		want []string
	}{
		{
			name: "code-level ignore removes one code",
			in:   Input{Select: []string{"S"}, Ignore: []string{"S001"}},
			want: []string{"S002", "S101"},
		},
		{
			name: "code-level extend-select restores it",
			in:   Input{Select: []string{"S"}, Ignore: []string{"S001"}, ExtendSelect: []string{"S001"}},
			want: []string{"S001", "S002", "S101"},
		},
		{
			name: "category-level extend-select loses to code-level ignore",
			in:   Input{Select: []string{"S"}, Ignore: []string{"S001"}, ExtendSelect: []string{"S"}},
			want: []string{"S002", "S101"},
		},
		{
			name: "code-level extend-select beats category-level ignore",
			in:   Input{Select: []string{"S", "T"}, Ignore: []string{"S"}, ExtendSelect: []string{"S002"}},
			want: []string{"S002", "T001", "T002"},
		},
		{
			name: "ignore applies after select regardless of specificity",
			in:   Input{Select: []string{"S001", "T"}, Ignore: []string{"S"}},
			want: []string{"T001", "T002"},
		},
		{
			name: "partial code prefix",
			in:   Input{Select: []string{"S0"}},
			want: []string{"S001", "S002"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := Resolve(reg, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, codes(t, res.Active))
		})
	}
}

func TestResolveAll(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	res, err := Resolve(reg, Input{Select: []string{"ALL"}, Preview: true})
	require.NoError(t, err)
	assert.Equal(t, reg.Len(), res.Active.Len())

	res, err = Resolve(reg, Input{Select: []string{"ALL"}, Ignore: []string{"T"}, Preview: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"E001", "S001", "S002", "S101", "P001", "P011"}, codes(t, res.Active))
}

func TestResolvePreviewGating(t *testing.T) {
	t.Parallel()
	reg := testRegistry()
	p001 := rules.MustParseCode("P001")

	res, err := Resolve(reg, Input{Select: []string{"P001", "S001"}})
	require.NoError(t, err)
	assert.False(t, res.Active.Contains(p001))
	assert.True(t, res.Active.Contains(rules.MustParseCode("S001")))
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, p001, res.Warnings[0].Code)

	res, err = Resolve(reg, Input{Select: []string{"P"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"P011"}, codes(t, res.Active))
	assert.Empty(t, res.Warnings, "prefix matches skip preview rules silently")

	res, err = Resolve(reg, Input{Select: []string{"P001"}, Preview: true})
	require.NoError(t, err)
	assert.True(t, res.Active.Contains(p001))
	assert.Empty(t, res.Warnings)
}

func TestResolveUnknownSelectors(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"unknown code", Input{Select: []string{"S999"}}, "select"},
		{"unknown category", Input{Ignore: []string{"X"}}, "ignore"},
		{"malformed", Input{ExtendSelect: []string{"s001"}}, "extend-select"},
		{"too many digits", Input{Select: []string{"S0001"}}, "select"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Resolve(reg, tt.in)
			require.ErrorIs(t, err, ErrUnknownSelector)
			var cfgErr *config.Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestSet(t *testing.T) {
	t.Parallel()
	s := NewSet(rules.MustParseCode("T001"), rules.MustParseCode("S002"), rules.MustParseCode("S002"))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "S002,T001", s.String())
	assert.True(t, s.Contains(rules.MustParseCode("T001")))
	assert.False(t, s.Contains(rules.MustParseCode("S001")))
	assert.False(t, Set{}.Contains(rules.MustParseCode("S001")))
}

func TestFromSettings(t *testing.T) {
	t.Parallel()
	s := config.Default()
	s.Preview = true
	in := FromSettings(s)
	assert.Equal(t, config.DefaultSelect, in.Select)
	assert.True(t, in.Preview)
}

func TestDefaultSelectionMatchesDefaultEnabled(t *testing.T) {
	t.Parallel()
	reg := all.Registry()
	res, err := Resolve(reg, FromSettings(config.Default()))
	require.NoError(t, err)

	for _, rule := range reg.All() {
		meta := rule.Metadata()
		assert.Equal(t, meta.DefaultEnabled, res.Active.Contains(meta.Code),
			"%s: DefaultEnabled=%v but active by default=%v", meta.Code, meta.DefaultEnabled, res.Active.Contains(meta.Code))
	}
}
