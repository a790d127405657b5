package domain

// SyntaxKind tags the variants of SyntaxNode.
type SyntaxKind string

const (
	SyntaxKindError   SyntaxKind = "error"
	SyntaxKindCommand SyntaxKind = "command"
	SyntaxKindValue   SyntaxKind = "value"
)

// SyntaxNode is one node of a parsed command line.
type SyntaxNode interface {
	Kind() SyntaxKind
}

// SyntaxError marks a part of the input the parser could not understand.
type SyntaxError struct {
	Message  string
	Position int
}

func (SyntaxError) Kind() SyntaxKind { return SyntaxKindError }

// SyntaxCommand is a command invocation; its children are the name and arguments.
type SyntaxCommand struct {
	Children []SyntaxNode
}

func (SyntaxCommand) Kind() SyntaxKind { return SyntaxKindCommand }

// SyntaxValue is a literal word or quoted string.
type SyntaxValue struct {
	Value string
}

func (SyntaxValue) Kind() SyntaxKind { return SyntaxKindValue }
