package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/fortitude/internal/syntax"
)

func TestParseProgram(t *testing.T) {
	t.Parallel()
	src := []byte("program hello\n  implicit none\n  print *, 'hi'\nend program hello\n")

	tree, err := New().Parse(context.Background(), src)
	require.NoError(t, err)
	require.NotNil(t, tree.Root)

	assert.Equal(t, syntax.KindRoot, tree.Root.Kind)
	assert.Equal(t, len(src), tree.Root.End)
	assert.False(t, tree.HasErrors())

	programs := tree.Root.Descendants("program")
	require.Len(t, programs, 1)
	assert.Same(t, tree.Root, programs[0].Parent)
}

func TestParseRecoversFromErrors(t *testing.T) {
	t.Parallel()
	src := []byte("program broken\n  x = = (\nend program broken\n")

	tree, err := New().Parse(context.Background(), src)
	require.NoError(t, err)
	assert.True(t, tree.HasErrors())
}

func TestParseCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Parse(ctx, []byte("end\n"))
	require.ErrorIs(t, err, context.Canceled)
}
