/*
Package domain contains the core types of the command engine.

It is kept free of I/O so every adapter (CLI, HTTP, MCP) and the command
graph itself can share it.

# Key Entities

  - Node / Args: the executable graph and its lazily evaluated argument lists.
  - Result: the tagged result value (Empty, Command, Enumerable, String).
  - SyntaxNode: the parsed form of a command line (Error, Command, Value).
  - ExecutionInfo: per-command caller context with a deferred admin check.
  - Session: persisted per-caller state (variables, history).
*/
package domain
