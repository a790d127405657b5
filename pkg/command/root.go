package command

import "github.com/aretw0/botcmd/pkg/domain"

// Root is the top-level group. Besides names it accepts a command value as
// its first argument and runs it on the remaining arguments, which lets
// curried commands be re-entered instead of looked up.
type Root struct {
	*Group
}

// NewRoot creates an empty root group.
func NewRoot() *Root {
	return &Root{Group: NewGroup()}
}

var commandOrString = []domain.ResultType{domain.ResultCommand, domain.ResultString}

func (r *Root) Execute(info *domain.ExecutionInfo, args domain.Args, types []domain.ResultType) (domain.Result, error) {
	if args == nil {
		args = EmptyArgs{}
	}
	if args.Len() < 1 {
		return r.dispatch(r, info, args, types)
	}

	first, err := args.Execute(0, info, EmptyArgs{}, commandOrString)
	if err != nil {
		return nil, err
	}
	if first.Type() == domain.ResultString {
		return r.dispatch(r, info, args, types)
	}

	cmd, ok := first.(domain.CommandResult)
	if !ok {
		return nil, domain.NewCommandError(domain.ErrUnexpectedResult, "expected a command or a name, got %s", first.Type())
	}
	return cmd.Command.Execute(info, NewRange(args, 1), types)
}
