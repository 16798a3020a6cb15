package style

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/wharflab/fortitude/internal/testutil"
)

func TestTrailingWhitespaceRule_Metadata(t *testing.T) {
	t.Parallel()
	snaps.MatchStandaloneJSON(t, NewTrailingWhitespaceRule().Metadata())
}

func TestTrailingWhitespaceRule_Check(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewTrailingWhitespaceRule(), []testutil.RuleTestCase{
		{
			Name:           "clean",
			Source:         "x = 1\ny = 2\n",
			WantViolations: 0,
		},
		{
			Name:           "spaces and tabs",
			Source:         "x = 1  \ny = 2\t\nz = 3\n",
			WantViolations: 2,
			WantMessages:   []string{"trailing whitespace", "trailing whitespace"},
			WantFixed:      "x = 1\ny = 2\nz = 3\n",
		},
		{
			Name:           "whitespace-only line",
			Source:         "x = 1\n   \ny = 2\n",
			WantViolations: 1,
			WantFixed:      "x = 1\n\ny = 2\n",
		},
		{
			Name:           "crlf line endings are kept",
			Source:         "x = 1 \r\ny = 2\r\n",
			WantViolations: 1,
			WantFixed:      "x = 1\r\ny = 2\r\n",
		},
	})
}
