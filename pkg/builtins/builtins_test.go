package builtins_test

import (
	"context"
	"testing"

	"github.com/aretw0/botcmd"
	"github.com/aretw0/botcmd/pkg/builtins"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *botcmd.Engine {
	t.Helper()
	eng := botcmd.New()
	require.NoError(t, builtins.Register(eng))
	return eng
}

func newInfo(admin bool) *domain.ExecutionInfo {
	msg := &domain.Message{SenderID: "u1", SenderName: "Alice", Text: ""}
	return domain.NewExecutionInfo(context.Background(), domain.NewSession("u1"), msg, func() bool { return admin })
}

func run(t *testing.T, eng *botcmd.Engine, info *domain.ExecutionInfo, line string) string {
	t.Helper()
	out, err := eng.ExecuteCommand(info, line)
	require.NoError(t, err, line)
	return out
}

func TestRegister_Twice(t *testing.T) {
	eng := newEngine(t)
	err := builtins.Register(eng)
	assert.ErrorIs(t, err, domain.ErrDuplicateCommand)
}

func TestEchoAndPrint(t *testing.T) {
	eng := newEngine(t)

	assert.Equal(t, "hi", run(t, eng, nil, "!echo hi"))
	assert.Equal(t, "hello world", run(t, eng, nil, "!echo hello world"))
	assert.Equal(t, "ab", run(t, eng, nil, "!print a b"))

	res, err := eng.Execute(nil, "!echo")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultEmpty, res.Type(), "empty text falls through to Empty")
}

func TestRepeat(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Execute(nil, "!repeat 3 x", domain.ResultEnumerable)
	require.NoError(t, err)
	lines, err := domain.Lines(res)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x", "x"}, lines)

	assert.Equal(t, "x\nx", run(t, eng, nil, "!repeat 2 x"))

	_, err = eng.Execute(nil, "!repeat many x")
	assert.ErrorIs(t, err, domain.ErrTypeConversion)

	_, err = eng.Execute(nil, "!repeat 1000 x")
	assert.ErrorContains(t, err, "between 0 and")
}

func TestCountDoesNotEvaluate(t *testing.T) {
	eng := newEngine(t)
	// get would fail without a session if it ran.
	assert.Equal(t, "3", run(t, eng, nil, "!count a b (!get missing)"))
	assert.Equal(t, "0", run(t, eng, nil, "!count"))
}

func TestTypes(t *testing.T) {
	eng := newEngine(t)
	assert.Equal(t, "string, empty", run(t, eng, nil, "!types"))
	assert.Equal(t, "string", run(t, eng, nil, "!echo (!types)"), "nested arguments are forced to String")
}

func TestListCommands(t *testing.T) {
	eng := newEngine(t)

	assert.Equal(t, "b\nc", run(t, eng, nil, "!slice 1 2 (!concat a b c d)"))
	assert.Equal(t, "c\nd", run(t, eng, nil, "!slice 2 (!concat a b c d)"))
	assert.Equal(t, "x", run(t, eng, nil, "!first (!concat x y)"))
	assert.Equal(t, "y", run(t, eng, nil, "!first (!slice 1 (!concat x y))"))

	res, err := eng.Execute(nil, "!concat (!repeat 2 a) b", domain.ResultEnumerable)
	require.NoError(t, err)
	lines, err := domain.Lines(res)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"a", "a", "b"}, lines); diff != "" {
		t.Errorf("concat mismatch (-want +got):\n%s", diff)
	}

	_, err = eng.Execute(nil, "!first (!concat)")
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, err = eng.Execute(nil, "!slice 5 (!concat a)")
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, err = eng.Execute(nil, "!slice 1")
	assert.ErrorIs(t, err, domain.ErrNotEnoughArguments)

	_, err = eng.Execute(nil, "!slice 0 (!concat a)", domain.ResultCommand)
	assert.ErrorIs(t, err, domain.ErrNoApplicableResult)
}

func TestSessionVariables(t *testing.T) {
	eng := newEngine(t)
	info := newInfo(false)

	res, err := eng.Execute(info, "!set name Bob Builder")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultEmpty, res.Type())
	assert.Equal(t, "Bob Builder", info.Session.Variables["name"])

	assert.Equal(t, "Bob Builder", run(t, eng, info, "!get name"))
	assert.Equal(t, "name=Bob Builder", run(t, eng, info, "!vars"))

	_, err = eng.Execute(info, "!get nope")
	assert.ErrorIs(t, err, builtins.ErrVariableNotSet)

	_, err = eng.Execute(info, "!unset name")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	admin := newInfo(true)
	admin.Session = info.Session
	_, err = eng.Execute(admin, "!unset name")
	require.NoError(t, err)
	assert.Empty(t, info.Session.Variables)
}

func TestSessionCommandsWithoutSession(t *testing.T) {
	eng := newEngine(t)
	_, err := eng.Execute(nil, "!get name")
	assert.ErrorIs(t, err, builtins.ErrNoSession)
}

func TestHistory(t *testing.T) {
	eng := newEngine(t)
	info := newInfo(false)
	for _, line := range []string{"!a", "!b", "!c"} {
		info.Session.Record(line)
	}

	assert.Equal(t, "!a\n!b\n!c", run(t, eng, info, "!history"))
	assert.Equal(t, "!c", run(t, eng, info, "!history 1"))
}

func TestWhoami(t *testing.T) {
	eng := newEngine(t)
	assert.Equal(t, "Alice (u1)", run(t, eng, newInfo(false), "!whoami"))
	assert.Equal(t, "anonymous", run(t, eng, nil, "!whoami"))
}

func TestAliasGroup(t *testing.T) {
	eng := newEngine(t)
	require.NoError(t, eng.RegisterAlias(domain.Alias{Name: "hi", Command: "!echo hello", Source: "config"}))

	assert.Equal(t, "hello there", run(t, eng, nil, "!hi there"))
	assert.Equal(t, "hi = !echo hello", run(t, eng, nil, "!alias list"))
	assert.Equal(t, "hi = !echo hello\nsource: config", run(t, eng, nil, "!alias show hi"))

	_, err := eng.Execute(nil, "!alias show nope")
	assert.ErrorIs(t, err, domain.ErrCommandNotFound)
}

func TestHelp(t *testing.T) {
	eng := newEngine(t)

	listing := run(t, eng, nil, "!help")
	assert.Contains(t, listing, "**Commands**")
	assert.Contains(t, listing, "- `echo` Replies with the given text.")

	assert.Equal(t, "`echo [text...]`\n\nReplies with the given text.", run(t, eng, nil, "!help echo"))
	assert.Equal(t, "`repeat <count:int> <text>`\n\nRepeats a text, one line per repetition.", run(t, eng, nil, "!help rep"))
	assert.Contains(t, run(t, eng, nil, "!help alias"), "- `show` Shows what an alias expands to.")
	assert.Equal(t, "`alias show <name>`\n\nShows what an alias expands to.", run(t, eng, nil, "!help alias show"))
}

func TestHelp_Ambiguous(t *testing.T) {
	eng := newEngine(t)

	// "et" matches get and set equally well.
	out := run(t, eng, nil, "!help et")
	assert.Contains(t, out, "`et` is ambiguous")
	assert.Contains(t, out, "- `get`")
	assert.Contains(t, out, "- `set`")

	_, err := eng.Execute(nil, "!et")
	assert.ErrorIs(t, err, domain.ErrAmbiguousCommand)
}
