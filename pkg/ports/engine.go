package ports

import (
	"github.com/aretw0/botcmd/pkg/domain"
)

// Parser turns a command line into a syntax tree. Problems are reported as
// domain.SyntaxError nodes inside the tree rather than as Go errors.
type Parser interface {
	Parse(text string) domain.SyntaxNode
}

// Executor is what transport adapters (CLI, HTTP, MCP) need from the engine.
type Executor interface {
	// Execute runs a command line and returns the first result shape from
	// types the command can produce.
	Execute(info *domain.ExecutionInfo, text string, types ...domain.ResultType) (domain.Result, error)

	// Commands lists the top-level command names.
	Commands() []string
}
