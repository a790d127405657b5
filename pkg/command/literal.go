package command

import "github.com/aretw0/botcmd/pkg/domain"

// Literal ignores its arguments and always yields its text.
type Literal string

func (l Literal) Execute(info *domain.ExecutionInfo, args domain.Args, types []domain.ResultType) (domain.Result, error) {
	return domain.StringResult{Content: string(l)}, nil
}

// described attaches a help text to a node that has none of its own.
type described struct {
	domain.Node
	text string
}

func (d *described) Description() string { return d.text }

// Describe returns node with a help text attached. Execution is unchanged.
func Describe(node domain.Node, text string) domain.Node {
	return &described{Node: node, text: text}
}

// DescriptionOf returns the help text of node, or "" if it has none.
func DescriptionOf(node domain.Node) string {
	if d, ok := node.(domain.Describer); ok {
		return d.Description()
	}
	return ""
}
