package command_test

import (
	"testing"

	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func argStrings(t *testing.T, args domain.Args) []string {
	t.Helper()
	out := make([]string, args.Len())
	for i := range out {
		res, err := args.Execute(i, nil, command.EmptyArgs{}, stringOnly)
		require.NoError(t, err)
		out[i] = res.String()
	}
	return out
}

func TestStaticArgs(t *testing.T) {
	nodes := []domain.Node{command.Literal("a"), command.Literal("b")}
	args := command.NewStaticArgs(nodes...)
	nodes[0] = command.Literal("changed")

	assert.Equal(t, []string{"a", "b"}, argStrings(t, args), "the node slice is copied")

	_, err := args.Execute(2, nil, command.EmptyArgs{}, stringOnly)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	_, err = command.EmptyArgs{}.Execute(0, nil, command.EmptyArgs{}, stringOnly)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestRangeArgs(t *testing.T) {
	src := command.Strings("a", "b", "c", "d")

	assert.Equal(t, []string{"b", "c", "d"}, argStrings(t, command.NewRange(src, 1)))
	assert.Equal(t, []string{"b", "c"}, argStrings(t, command.NewRangeCount(src, 1, 2)))
	assert.Equal(t, 0, command.NewRange(src, 9).Len())
	assert.Equal(t, 4, command.NewRange(src, -1).Len())

	_, err := command.NewRangeCount(src, 1, 2).Execute(2, nil, command.EmptyArgs{}, stringOnly)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestMergeArgs(t *testing.T) {
	m := command.NewMerge(command.Strings("a"), command.EmptyArgs{}, command.Strings("b", "c"))

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"a", "b", "c"}, argStrings(t, m))

	_, err := m.Execute(3, nil, command.EmptyArgs{}, stringOnly)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	_, err = m.Execute(-1, nil, command.EmptyArgs{}, stringOnly)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}
