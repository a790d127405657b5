/*
Package botcmd is the command execution core of a chat bot.

A chat line such as

	!repeat 3 (!echo hi)

is parsed into a syntax tree, translated into executable nodes and run
against a tree of registered commands. Arguments stay lazy until a command
binds them, commands negotiate the shape of their result with the caller
and a command given too few arguments can be returned as a value and
completed later (currying).

# Concept

Commands live in groups. A group resolves the first argument to a child by
abbreviated name ("hi" finds "history" when nothing else matches better)
and passes the rest on. Native Go functions become commands through
command.Function, which declares the parameters it binds:

	root.MustAdd("echo", command.NewText("echo", func(c *command.Call) (string, error) {
		return strings.Join(c.Rest("text"), " "), nil
	}).Rest("text"))

The caller lists the result types it accepts (String, Enumerable, Empty,
Command) in priority order and gets the first one the command can produce.

# Key Features

  - Lazy arguments: a command decides whether and how often an argument runs.
  - Abbreviated names with ambiguity reporting.
  - Result negotiation and partial application.
  - Sessions with per-caller variables and history (pkg/session).
  - Transports: interactive runner, HTTP (pkg/adapters/http) and MCP (pkg/adapters/mcp).

# Usage

	eng := botcmd.New()
	if err := builtins.Register(eng); err != nil {
		log.Fatal(err)
	}

	out, err := eng.ExecuteCommand(nil, "!echo hello")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
*/
package botcmd
