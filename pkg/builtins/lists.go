package builtins

import (
	"strconv"
	"strings"

	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
)

var listTypes = []domain.ResultType{domain.ResultEnumerable, domain.ResultString, domain.ResultEmpty}

// enumerableArg runs argument i and views its result as an enumerable.
// A text result becomes a one-element list, an empty one an empty list.
func enumerableArg(args domain.Args, i int, info *domain.ExecutionInfo) (domain.EnumerableResult, error) {
	res, err := args.Execute(i, info, command.EmptyArgs{}, listTypes)
	if err != nil {
		return nil, err
	}
	switch r := res.(type) {
	case domain.EnumerableResult:
		return r, nil
	case domain.StringResult:
		return domain.NewStringEnumerable([]string{r.Content}), nil
	case domain.EmptyResult:
		return domain.NewStaticEnumerable(), nil
	}
	return nil, domain.NewCommandError(domain.ErrUnexpectedResult, "expected a list, got %s", res.Type())
}

func intArg(args domain.Args, i int, info *domain.ExecutionInfo, name string) (int, error) {
	res, err := args.Execute(i, info, command.EmptyArgs{}, []domain.ResultType{domain.ResultString})
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(res.String()))
	if err != nil {
		return 0, domain.NewCommandError(domain.ErrTypeConversion, "can't convert %s to int: %q", name, res.String())
	}
	return n, nil
}

// respond hands back list in the first form the caller accepts.
func respond(name string, list domain.EnumerableResult, types []domain.ResultType) (domain.Result, error) {
	for _, t := range types {
		switch t {
		case domain.ResultEnumerable:
			return list, nil
		case domain.ResultString:
			lines, err := domain.Lines(list)
			if err != nil {
				return nil, err
			}
			return domain.StringResult{Content: strings.Join(lines, "\n")}, nil
		case domain.ResultEmpty:
			return domain.EmptyResult{}, nil
		}
	}
	return nil, domain.NewCommandError(domain.ErrNoApplicableResult, "couldn't find a proper command result for function %s", name)
}

func notEnough(name string) error {
	return domain.NewCommandError(domain.ErrNotEnoughArguments, "not enough arguments for function %s", name)
}

// Slice returns a window of a list: slice <start> [count] <list>.
// A negative count means up to the end.
func Slice() *command.Function {
	return command.NewRaw("slice", func(c *command.Call) (domain.Result, error) {
		args, info := c.RawArgs(), c.Info()
		if args.Len() < 2 {
			return nil, notEnough("slice")
		}
		start, err := intArg(args, 0, info, "start")
		if err != nil {
			return nil, err
		}
		count, listAt := -1, 1
		if args.Len() > 2 {
			if count, err = intArg(args, 1, info, "count"); err != nil {
				return nil, err
			}
			listAt = 2
		}
		list, err := enumerableArg(args, listAt, info)
		if err != nil {
			return nil, err
		}
		if start < 0 || start > list.Len() {
			return nil, domain.NewCommandError(domain.ErrIndexOutOfRange, "start %d is outside of a list of %d", start, list.Len())
		}
		if count > list.Len()-start {
			count = list.Len() - start
		}
		return respond("slice", domain.NewEnumerableRange(list, start, count), c.AcceptedTypes())
	}).Context().RawArgs().AcceptedTypes().Describe("Cuts a window out of a list: slice <start> [count] <list>.")
}

// Concat joins several lists into one.
func Concat() *command.Function {
	return command.NewRaw("concat", func(c *command.Call) (domain.Result, error) {
		args, info := c.RawArgs(), c.Info()
		parts := make([]domain.EnumerableResult, 0, args.Len())
		for i := 0; i < args.Len(); i++ {
			part, err := enumerableArg(args, i, info)
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		}
		return respond("concat", domain.NewEnumerableMerge(parts...), c.AcceptedTypes())
	}).Context().RawArgs().AcceptedTypes().Describe("Joins lists into one list.")
}

// First returns the first element of a list.
func First() *command.Function {
	return command.NewRaw("first", func(c *command.Call) (domain.Result, error) {
		args, info := c.RawArgs(), c.Info()
		if args.Len() < 1 {
			return nil, notEnough("first")
		}
		list, err := enumerableArg(args, 0, info)
		if err != nil {
			return nil, err
		}
		item, err := list.At(0)
		if err != nil {
			return nil, err
		}
		text, err := domain.Text(item)
		if err != nil {
			return nil, err
		}
		return respond("first", domain.NewStringEnumerable([]string{text}), c.AcceptedTypes())
	}).Context().RawArgs().AcceptedTypes().Describe("Returns the first element of a list.")
}
