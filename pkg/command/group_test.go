package command_test

import (
	"sync"
	"testing"

	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_Add(t *testing.T) {
	g := command.NewGroup()
	require.NoError(t, g.Add("echo", command.Literal("e")))

	assert.ErrorIs(t, g.Add("echo", command.Literal("again")), domain.ErrDuplicateCommand)
	assert.ErrorIs(t, g.Add("", command.Literal("x")), domain.ErrExpectedName)
	assert.ErrorIs(t, g.Add("two words", command.Literal("x")), domain.ErrExpectedName)

	assert.True(t, g.Contains("echo"))
	assert.False(t, g.Contains("ec"), "Contains is exact")
	assert.Panics(t, func() { g.MustAdd("echo", command.Literal("x")) })
}

func TestGroup_Dispatch(t *testing.T) {
	g := command.NewGroup().
		MustAdd("history", command.Literal("history")).
		MustAdd("help", command.Literal("help")).
		MustAdd("halt", command.Literal("halt"))

	res, err := g.Execute(nil, command.Strings("hi"), stringOnly)
	require.NoError(t, err)
	assert.Equal(t, "history", res.String())

	_, err = g.Execute(nil, command.Strings("h"), stringOnly)
	assert.ErrorIs(t, err, domain.ErrAmbiguousCommand)
	assert.ErrorContains(t, err, "possible names: ")

	_, err = g.Execute(nil, command.EmptyArgs{}, stringOnly)
	assert.ErrorIs(t, err, domain.ErrExpectedName)
	assert.ErrorContains(t, err, "halt, help, history")

	res, err = g.Execute(nil, command.EmptyArgs{}, []domain.ResultType{domain.ResultCommand})
	require.NoError(t, err)
	assert.Same(t, g, res.(domain.CommandResult).Command)
}

func TestGroup_AmbiguousPrefix(t *testing.T) {
	g := command.NewGroup().
		MustAdd("start", command.Literal("start")).
		MustAdd("stats", command.Literal("stats"))

	_, err := g.Execute(nil, command.Strings("sta"), stringOnly)
	require.ErrorIs(t, err, domain.ErrAmbiguousCommand)
	assert.ErrorContains(t, err, "start")
	assert.ErrorContains(t, err, "stats")
}

func TestGroup_NilArgs(t *testing.T) {
	g := command.NewGroup().MustAdd("echo", command.Literal("e"))

	_, err := g.Execute(nil, nil, stringOnly)
	assert.ErrorIs(t, err, domain.ErrExpectedName, "nil args are treated as empty")

	res, err := g.Execute(nil, nil, []domain.ResultType{domain.ResultCommand})
	require.NoError(t, err)
	assert.Same(t, g, res.(domain.CommandResult).Command)
}

func TestGroup_PassesRemainingArguments(t *testing.T) {
	inner := command.NewGroup().MustAdd("echo", command.NewText("echo", func(c *command.Call) (string, error) {
		return c.Text("x"), nil
	}).Text("x"))
	outer := command.NewGroup().MustAdd("sub", inner)

	res, err := outer.Execute(nil, command.Strings("sub", "echo", "deep"), stringOnly)
	require.NoError(t, err)
	assert.Equal(t, "deep", res.String())
}

func TestGroup_Unknown(t *testing.T) {
	_, _, err := command.NewGroup().Resolve("x")
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
}

func TestGroup_Remove(t *testing.T) {
	shared := command.Literal("shared")
	single := command.NewGroup()
	g := command.NewGroup().MustAdd("a", shared).MustAdd("b", shared).MustAdd("c", single)

	assert.ErrorIs(t, g.RemoveNode(shared), domain.ErrAmbiguousCommand)
	assert.ErrorIs(t, g.RemoveNode(command.NewGroup()), domain.ErrCommandNotFound)

	require.NoError(t, g.RemoveNode(single))
	assert.Equal(t, []string{"a", "b"}, g.Names())

	assert.True(t, g.Remove("a"))
	assert.False(t, g.Remove("a"))
	require.NoError(t, g.RemoveNode(shared))
	assert.Empty(t, g.Names())
}

func TestGroup_RemoveNodeNotComparable(t *testing.T) {
	node := sliceNode{parts: []string{"a"}}
	g := command.NewGroup().MustAdd("slice", node).MustAdd("lit", command.Literal("x"))

	var err error
	require.NotPanics(t, func() { err = g.RemoveNode(node) })
	assert.ErrorIs(t, err, domain.ErrCommandNotFound)
	assert.True(t, g.Contains("slice"), "remove by name still works")
	assert.True(t, g.Remove("slice"))
}

// sliceNode is a node whose dynamic type cannot be compared with ==.
type sliceNode struct {
	parts []string
}

func (n sliceNode) Execute(*domain.ExecutionInfo, domain.Args, []domain.ResultType) (domain.Result, error) {
	return domain.StringResult{Content: n.parts[0]}, nil
}

func TestGroup_ConcurrentAccess(t *testing.T) {
	g := command.NewGroup().MustAdd("base", command.Literal("b"))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = g.Add("cmd"+string(rune('a'+i)), command.Literal("x"))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = g.Execute(nil, command.Strings("base"), stringOnly)
		}()
	}
	wg.Wait()
	assert.Len(t, g.Names(), 21)
}

func TestRoot_CommandValueAsFirstArgument(t *testing.T) {
	root := command.NewRoot()
	pair := command.NewText("pair", func(c *command.Call) (string, error) {
		return c.Text("a") + "+" + c.Text("b"), nil
	}).Text("a").Text("b")
	root.MustAdd("pair", pair)

	curried := command.NewApplied(pair, command.Strings("1"))
	args := command.NewStaticArgs(constCommand{curried}, command.Literal("2"))

	res, err := root.Execute(nil, args, stringOnly)
	require.NoError(t, err)
	assert.Equal(t, "1+2", res.String())

	res, err = root.Execute(nil, command.EmptyArgs{}, []domain.ResultType{domain.ResultCommand})
	require.NoError(t, err)
	assert.Same(t, root, res.(domain.CommandResult).Command, "a root returns itself")

	res, err = root.Execute(nil, nil, []domain.ResultType{domain.ResultCommand})
	require.NoError(t, err)
	assert.Same(t, root, res.(domain.CommandResult).Command, "nil args are treated as empty")

	_, err = root.Execute(nil, nil, stringOnly)
	assert.ErrorIs(t, err, domain.ErrExpectedName)
}

// constCommand yields a command value.
type constCommand struct {
	node domain.Node
}

func (c constCommand) Execute(*domain.ExecutionInfo, domain.Args, []domain.ResultType) (domain.Result, error) {
	return domain.CommandResult{Command: c.node}, nil
}

func TestApplied_Description(t *testing.T) {
	fn := command.NewText("f", func(c *command.Call) (string, error) { return "", nil }).Describe("does f")
	assert.Equal(t, "does f", command.NewApplied(fn, nil).Description())
	assert.Equal(t, "other", command.DescriptionOf(command.Describe(fn, "other")))
	assert.Equal(t, "", command.DescriptionOf(command.Literal("x")))
}
