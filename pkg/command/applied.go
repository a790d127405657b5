package command

import "github.com/aretw0/botcmd/pkg/domain"

// Applied is a partial application: target with some arguments already fixed.
// Fixed arguments always precede the ones supplied at call time.
type Applied struct {
	target domain.Node
	fixed  domain.Args
}

// NewApplied curries target with fixed.
func NewApplied(target domain.Node, fixed domain.Args) *Applied {
	if fixed == nil {
		fixed = EmptyArgs{}
	}
	return &Applied{target: target, fixed: fixed}
}

// Target returns the curried node.
func (a *Applied) Target() domain.Node { return a.target }

// Fixed returns the captured arguments.
func (a *Applied) Fixed() domain.Args { return a.fixed }

func (a *Applied) Execute(info *domain.ExecutionInfo, args domain.Args, types []domain.ResultType) (domain.Result, error) {
	if args == nil {
		args = EmptyArgs{}
	}
	return a.target.Execute(info, NewMerge(a.fixed, args), types)
}

// Description forwards the help text of the target.
func (a *Applied) Description() string {
	return DescriptionOf(a.target)
}
