package domain

// Node is an executable unit of the command graph.
//
// Execute runs the node against a lazily evaluated argument list. types is
// the caller's priority-ordered list of acceptable result shapes; the node
// returns the first one it can produce.
type Node interface {
	Execute(info *ExecutionInfo, args Args, types []ResultType) (Result, error)
}

// Args is a lazily evaluated argument list. Execute evaluates the element at
// index on every call; nothing is cached, so an index may run more than once.
type Args interface {
	Len() int
	Execute(index int, info *ExecutionInfo, args Args, types []ResultType) (Result, error)
}

// Describer is implemented by nodes that carry a help text.
type Describer interface {
	Description() string
}
