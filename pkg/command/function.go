package command

import (
	"strconv"
	"strings"

	"github.com/aretw0/botcmd/pkg/domain"
)

// Function binds textual arguments to the declared parameters of a native
// implementation and negotiates the result type with the caller.
//
// The parameter shape is declared with the builder methods at registration
// time:
//
//	command.NewText("echo", func(c *command.Call) (string, error) {
//		return c.Text("text"), nil
//	}).Text("text")
type Function struct {
	name        string
	description string
	params      []Param
	ret         ReturnKind
	required    int
	requiredSet bool
	impl        func(*Call) (any, error)
}

// NewAction wraps an implementation without a return value.
func NewAction(name string, fn func(*Call) error) *Function {
	return &Function{name: name, ret: ReturnNone, impl: func(c *Call) (any, error) {
		return nil, fn(c)
	}}
}

// NewText wraps an implementation returning text.
func NewText(name string, fn func(*Call) (string, error)) *Function {
	return &Function{name: name, ret: ReturnText, impl: func(c *Call) (any, error) {
		return fn(c)
	}}
}

// NewList wraps an implementation returning a list of strings.
func NewList(name string, fn func(*Call) ([]string, error)) *Function {
	return &Function{name: name, ret: ReturnList, impl: func(c *Call) (any, error) {
		return fn(c)
	}}
}

// NewRaw wraps an implementation producing an exact result value.
// Result negotiation is bypassed for such functions.
func NewRaw(name string, fn func(*Call) (domain.Result, error)) *Function {
	return &Function{name: name, ret: ReturnResult, impl: func(c *Call) (any, error) {
		return fn(c)
	}}
}

func (f *Function) add(name string, kind ParamKind) *Function {
	f.params = append(f.params, Param{Name: name, Kind: kind})
	return f
}

// Context declares a parameter receiving the execution info.
func (f *Function) Context() *Function { return f.add("info", ParamContext) }

// RawArgs declares a parameter receiving the unevaluated arguments.
func (f *Function) RawArgs() *Function { return f.add("args", ParamRawArgs) }

// AcceptedTypes declares a parameter receiving the accepted result types.
func (f *Function) AcceptedTypes() *Function { return f.add("types", ParamAcceptedTypes) }

// Text declares a text parameter.
func (f *Function) Text(name string) *Function { return f.add(name, ParamText) }

// Int declares an integer parameter.
func (f *Function) Int(name string) *Function { return f.add(name, ParamInt) }

// Rest declares a parameter absorbing every remaining argument. It should be
// the last ordinary parameter.
func (f *Function) Rest(name string) *Function { return f.add(name, ParamRest) }

// Require overrides how many ordinary arguments must be bound before the
// function runs. By default all of them are required.
func (f *Function) Require(n int) *Function {
	f.required = n
	f.requiredSet = true
	return f
}

// Describe sets the help text.
func (f *Function) Describe(text string) *Function {
	f.description = text
	return f
}

// Name returns the function name used in error messages.
func (f *Function) Name() string { return f.name }

// Description implements domain.Describer.
func (f *Function) Description() string { return f.description }

// Params returns a copy of the declared parameters.
func (f *Function) Params() []Param {
	return append([]Param(nil), f.params...)
}

// Returns reports the declared return shape.
func (f *Function) Returns() ReturnKind { return f.ret }

// Usage renders the ordinary parameters for help output.
func (f *Function) Usage() string { return Usage(f.params, f.Required()) }

// Ordinary returns the number of parameters that consume caller arguments.
func (f *Function) Ordinary() int {
	n := 0
	for _, p := range f.params {
		if p.Kind.Ordinary() {
			n++
		}
	}
	return n
}

// Required returns how many ordinary arguments must be bound.
func (f *Function) Required() int {
	if f.requiredSet {
		return f.required
	}
	return f.Ordinary()
}

func (f *Function) hasRest() bool {
	for _, p := range f.params {
		if p.Kind == ParamRest {
			return true
		}
	}
	return false
}

// bind walks the declared parameters left to right and returns the call
// together with the number of consumed arguments.
func (f *Function) bind(info *domain.ExecutionInfo, args domain.Args, types []domain.ResultType) (*Call, int, error) {
	call := &Call{
		fn:     f,
		values: make([]any, len(f.params)),
		bound:  make([]bool, len(f.params)),
	}

	a := 0
	for p, param := range f.params {
		switch param.Kind {
		case ParamContext:
			call.values[p] = info
			continue
		case ParamRawArgs:
			call.values[p] = args
			continue
		case ParamAcceptedTypes:
			call.values[p] = types
			continue
		}

		if a >= args.Len() {
			continue
		}

		switch param.Kind {
		case ParamText:
			s, err := executeString(args, a, info)
			if err != nil {
				return nil, a, err
			}
			call.values[p] = s
			a++
		case ParamInt:
			s, err := executeString(args, a, info)
			if err != nil {
				return nil, a, err
			}
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return nil, a, domain.NewCommandError(domain.ErrTypeConversion,
					"can't convert parameter %q of %s to int: %q", param.Name, f.name, s)
			}
			call.values[p] = n
			a++
		case ParamRest:
			rest := make([]string, 0, args.Len()-a)
			for a < args.Len() {
				s, err := executeString(args, a, info)
				if err != nil {
					return nil, a, err
				}
				rest = append(rest, s)
				a++
			}
			call.values[p] = rest
		}
		call.bound[p] = true
	}
	return call, a, nil
}

func (f *Function) Execute(info *domain.ExecutionInfo, args domain.Args, types []domain.ResultType) (domain.Result, error) {
	if args == nil {
		args = EmptyArgs{}
	}

	call, consumed, err := f.bind(info, args, types)
	if err != nil {
		return nil, err
	}

	ordinary := f.Ordinary()
	if consumed < min(ordinary, f.Required()) {
		if domain.HasType(types, domain.ResultCommand) {
			// Nothing bound yet: the function itself is the curried command.
			if args.Len() == 0 {
				return domain.CommandResult{Command: f}, nil
			}
			return domain.CommandResult{Command: NewApplied(f, args)}, nil
		}
		return nil, domain.NewCommandError(domain.ErrNotEnoughArguments, "not enough arguments for function %s", f.name)
	}

	if f.ret == ReturnResult {
		value, err := f.impl(call)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return domain.EmptyResult{}, nil
		}
		res, ok := value.(domain.Result)
		if !ok || res == nil {
			return domain.EmptyResult{}, nil
		}
		return res, nil
	}

	n := &negotiation{fn: f, call: call}
	for _, t := range types {
		switch t {
		case domain.ResultCommand:
			if !n.invoked && (f.hasRest() || consumed < ordinary) {
				return domain.CommandResult{Command: NewApplied(f, args)}, nil
			}
		case domain.ResultEmpty:
			if err := n.invoke(); err != nil {
				return nil, err
			}
			return domain.EmptyResult{}, nil
		case domain.ResultEnumerable:
			if f.ret == ReturnList {
				if err := n.invoke(); err != nil {
					return nil, err
				}
				list, _ := n.value.([]string)
				return domain.NewStringEnumerable(list), nil
			}
		case domain.ResultString:
			if err := n.invoke(); err != nil {
				return nil, err
			}
			if s := n.text(); s != "" {
				return domain.StringResult{Content: s}, nil
			}
		}
	}

	if n.invoked && domain.HasType(types, domain.ResultString) {
		return domain.StringResult{Content: ""}, nil
	}
	return nil, domain.NewCommandError(domain.ErrNoApplicableResult, "couldn't find a proper command result for function %s", f.name)
}

// negotiation runs the implementation at most once across all tried result types.
type negotiation struct {
	fn      *Function
	call    *Call
	invoked bool
	value   any
}

func (n *negotiation) invoke() error {
	if n.invoked {
		return nil
	}
	n.invoked = true
	value, err := n.fn.impl(n.call)
	if err != nil {
		return err
	}
	n.value = value
	return nil
}

func (n *negotiation) text() string {
	switch v := n.value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	}
	return ""
}
