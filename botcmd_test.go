package botcmd_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/botcmd"
	"github.com/aretw0/botcmd/pkg/adapters/memory"
	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/aretw0/botcmd/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...botcmd.Option) *botcmd.Engine {
	t.Helper()
	eng := botcmd.New(opts...)
	root := eng.Root()
	require.NoError(t, root.Add("echo", command.NewText("echo", func(c *command.Call) (string, error) {
		return joinRest(c.Rest("text")), nil
	}).Rest("text").Require(0)))
	require.NoError(t, root.Add("repeat", command.NewList("repeat", func(c *command.Call) ([]string, error) {
		out := make([]string, c.Int("count"))
		for i := range out {
			out[i] = c.Text("text")
		}
		return out, nil
	}).Int("count").Text("text")))
	return eng
}

func joinRest(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

func TestEngine_ExecuteCommand(t *testing.T) {
	eng := newEngine(t)

	out, err := eng.ExecuteCommand(nil, "!echo hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", out)

	out, err = eng.ExecuteCommand(nil, `!echo "hello world" (!echo nested)`)
	require.NoError(t, err)
	assert.Equal(t, "hello world nested", out)

	out, err = eng.ExecuteCommand(nil, "ec hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", out, "prefix is optional and names may be abbreviated")
}

func TestEngine_ExecuteTypes(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Execute(nil, "!repeat 2 x", domain.ResultEnumerable)
	require.NoError(t, err)
	lines, err := domain.Lines(res)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x"}, lines)

	res, err = eng.Execute(nil, "!repeat 2", domain.ResultCommand, domain.ResultString)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultCommand, res.Type())

	_, err = eng.Execute(nil, "!repeat 2")
	assert.ErrorIs(t, err, domain.ErrNotEnoughArguments)
}

func TestEngine_ExecuteArgs(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.ExecuteArgs(nil, command.Strings("echo", "hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi", res.String())

	_, err = eng.ExecuteArgs(nil, nil)
	assert.ErrorIs(t, err, domain.ErrExpectedName, "nil args are treated as empty")
}

func TestEngine_Currying(t *testing.T) {
	eng := newEngine(t)

	out, err := eng.ExecuteCommand(nil, "!(!repeat 2) y")
	require.NoError(t, err)
	assert.Equal(t, "y\ny", out)
}

func TestEngine_MalformedLine(t *testing.T) {
	eng := newEngine(t)
	calls := 0
	require.NoError(t, eng.Root().Add("tick", command.NewAction("tick", func(*command.Call) error {
		calls++
		return nil
	})))

	_, err := eng.Execute(nil, "!tick (!tick")
	assert.ErrorIs(t, err, domain.ErrMalformedTree)
	assert.Zero(t, calls, "nothing runs when the line does not parse")

	_, err = eng.Compile(`!echo "open`)
	assert.ErrorIs(t, err, domain.ErrMalformedTree)
}

func TestEngine_DefaultTypes(t *testing.T) {
	eng := newEngine(t, botcmd.WithDefaultTypes(domain.ResultEnumerable, domain.ResultString))

	res, err := eng.Execute(nil, "!repeat 1 z")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultEnumerable, res.Type())
}

func TestEngine_CustomParser(t *testing.T) {
	eng := newEngine(t, botcmd.WithParser(parser.New(parser.WithPrefix('/'))))

	out, err := eng.ExecuteCommand(nil, "/echo slash")
	require.NoError(t, err)
	assert.Equal(t, "slash", out)
}

func TestEngine_Aliases(t *testing.T) {
	eng := newEngine(t)

	require.NoError(t, eng.RegisterAlias(domain.Alias{Name: "greet", Command: "!echo hello", Source: "test"}))
	out, err := eng.ExecuteCommand(nil, "!greet world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)

	node, ok := eng.Root().Lookup("greet")
	require.True(t, ok)
	assert.Equal(t, "Alias for: !echo hello", command.DescriptionOf(node))

	err = eng.RegisterAlias(domain.Alias{Name: "loop", Command: "!loop again"})
	assert.ErrorContains(t, err, "must not invoke itself")

	err = eng.RegisterAlias(domain.Alias{Name: "bad", Command: "!echo (oops"})
	assert.ErrorIs(t, err, domain.ErrMalformedTree)

	err = eng.RegisterAlias(domain.Alias{Name: "echo", Command: "!repeat 1 x"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCommand)

	aliases := eng.Aliases()
	require.Len(t, aliases, 1)
	assert.Equal(t, "greet", aliases[0].Name)
}

type failingLoader struct{ err error }

func (l failingLoader) LoadAliases(context.Context) ([]domain.Alias, error) {
	return nil, l.err
}

func TestEngine_LoadAliases(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.LoadAliases(ctx, memory.NewLoader(map[string]string{"twice": "!repeat 2"})))
	out, err := eng.ExecuteCommand(nil, "!twice ok")
	require.NoError(t, err)
	assert.Equal(t, "ok\nok", out)

	boom := errors.New("boom")
	assert.ErrorIs(t, eng.LoadAliases(ctx, failingLoader{err: boom}), boom)
}

func TestEngine_Hooks(t *testing.T) {
	var mu sync.Mutex
	var events []*domain.CommandEvent
	record := func(_ context.Context, e *domain.CommandEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	}

	eng := newEngine(t, botcmd.WithLifecycleHooks(domain.LifecycleHooks{
		OnCommandStart: record,
		OnCommandEnd:   record,
	}))

	info := domain.NewExecutionInfo(context.Background(), domain.NewSession("s1"), nil, nil)
	_, err := eng.Execute(info, "!echo hi")
	require.NoError(t, err)
	_, err = eng.Execute(info, "!repeat x y")
	require.Error(t, err)

	require.Len(t, events, 4)
	assert.Equal(t, domain.EventCommandStart, events[0].Type)
	assert.Equal(t, "s1", events[0].SessionID)
	assert.Equal(t, domain.EventCommandEnd, events[1].Type)
	assert.Equal(t, domain.ResultString, events[1].ResultType)
	assert.NoError(t, events[1].Err)
	assert.ErrorIs(t, events[3].Err, domain.ErrTypeConversion)
}

func TestEngine_Commands(t *testing.T) {
	eng := newEngine(t)
	assert.Equal(t, []string{"echo", "repeat"}, eng.Commands())

	res, err := eng.ExecuteArgs(nil, command.Strings("echo", "a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "a b", res.String())
}
