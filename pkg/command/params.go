package command

import (
	"fmt"
	"strings"

	"github.com/aretw0/botcmd/pkg/domain"
)

// ParamKind classifies a declared parameter of a Function.
type ParamKind int

const (
	// ParamContext receives the *domain.ExecutionInfo.
	ParamContext ParamKind = iota
	// ParamRawArgs receives the still-lazy domain.Args.
	ParamRawArgs
	// ParamAcceptedTypes receives the caller's accepted result types.
	ParamAcceptedTypes
	// ParamText consumes one argument as text.
	ParamText
	// ParamInt consumes one argument and parses it as an integer.
	ParamInt
	// ParamRest consumes every remaining argument as text.
	ParamRest
)

func (k ParamKind) String() string {
	switch k {
	case ParamContext:
		return "context"
	case ParamRawArgs:
		return "args"
	case ParamAcceptedTypes:
		return "types"
	case ParamText:
		return "text"
	case ParamInt:
		return "int"
	case ParamRest:
		return "text..."
	}
	return fmt.Sprintf("ParamKind(%d)", int(k))
}

// Ordinary reports whether the parameter consumes caller arguments.
func (k ParamKind) Ordinary() bool {
	return k == ParamText || k == ParamInt || k == ParamRest
}

// ReturnKind is the declared return shape of a Function.
type ReturnKind int

const (
	ReturnNone ReturnKind = iota
	ReturnText
	ReturnList
	ReturnResult
)

// Param is one declared parameter.
type Param struct {
	Name string
	Kind ParamKind
}

// Call gives a Function's implementation access to its bound parameters.
type Call struct {
	fn     *Function
	values []any
	bound  []bool
}

// Name returns the name of the called function.
func (c *Call) Name() string { return c.fn.name }

func (c *Call) indexOf(kind ParamKind, name string) int {
	for i, p := range c.fn.params {
		if p.Kind == kind && (name == "" || p.Name == name) {
			return i
		}
	}
	return -1
}

func (c *Call) lookup(name string) (int, bool) {
	for i, p := range c.fn.params {
		if p.Name == name && p.Kind.Ordinary() {
			return i, c.bound[i]
		}
	}
	return -1, false
}

// Info returns the execution info, or nil if no context parameter was declared.
func (c *Call) Info() *domain.ExecutionInfo {
	if i := c.indexOf(ParamContext, ""); i >= 0 {
		info, _ := c.values[i].(*domain.ExecutionInfo)
		return info
	}
	return nil
}

// RawArgs returns the unevaluated arguments, or nil if not declared.
func (c *Call) RawArgs() domain.Args {
	if i := c.indexOf(ParamRawArgs, ""); i >= 0 {
		args, _ := c.values[i].(domain.Args)
		return args
	}
	return nil
}

// AcceptedTypes returns the caller's accepted result types, or nil if not declared.
func (c *Call) AcceptedTypes() []domain.ResultType {
	if i := c.indexOf(ParamAcceptedTypes, ""); i >= 0 {
		types, _ := c.values[i].([]domain.ResultType)
		return types
	}
	return nil
}

// Has reports whether the named ordinary parameter received an argument.
func (c *Call) Has(name string) bool {
	_, ok := c.lookup(name)
	return ok
}

// Text returns the named text parameter, or "" if it was not supplied.
func (c *Call) Text(name string) string {
	if i, ok := c.lookup(name); ok {
		s, _ := c.values[i].(string)
		return s
	}
	return ""
}

// Int returns the named integer parameter, or 0 if it was not supplied.
func (c *Call) Int(name string) int {
	return c.IntOr(name, 0)
}

// IntOr returns the named integer parameter, or def if it was not supplied.
func (c *Call) IntOr(name string, def int) int {
	if i, ok := c.lookup(name); ok {
		if n, ok := c.values[i].(int); ok {
			return n
		}
	}
	return def
}

// Rest returns the named rest parameter, or nil if nothing was left for it.
func (c *Call) Rest(name string) []string {
	if i, ok := c.lookup(name); ok {
		rest, _ := c.values[i].([]string)
		return rest
	}
	return nil
}

// Usage renders the ordinary parameters, e.g. "<count:int> <text...>".
// Parameters beyond the first required ones are shown in brackets.
func Usage(params []Param, required int) string {
	parts := make([]string, 0, len(params))
	ordinal := 0
	for _, p := range params {
		var part string
		switch p.Kind {
		case ParamText:
			part = p.Name
		case ParamInt:
			part = p.Name + ":int"
		case ParamRest:
			part = p.Name + "..."
		default:
			continue
		}
		if ordinal < required {
			part = "<" + part + ">"
		} else {
			part = "[" + part + "]"
		}
		ordinal++
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}
