package domain

import (
	"fmt"
	"strings"
)

// ResultType tags the variants of Result.
type ResultType int

const (
	ResultEmpty ResultType = iota
	ResultCommand
	ResultEnumerable
	ResultString
)

// AllResultTypes lists every result type in declaration order.
var AllResultTypes = []ResultType{ResultEmpty, ResultCommand, ResultEnumerable, ResultString}

// ResultPlaceholder is the display text of results that have no textual form.
const ResultPlaceholder = "result can't be converted into a string"

var resultTypeNames = map[ResultType]string{
	ResultEmpty:      "empty",
	ResultCommand:    "command",
	ResultEnumerable: "enumerable",
	ResultString:     "string",
}

func (t ResultType) String() string {
	if name, ok := resultTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ResultType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t ResultType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ResultType) UnmarshalText(text []byte) error {
	parsed, err := ParseResultType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseResultType converts a case-insensitive name into a ResultType.
func ParseResultType(name string) (ResultType, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for t, n := range resultTypeNames {
		if n == lowered {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown result type %q", name)
}

// ParseResultTypes converts a priority-ordered list of names.
func ParseResultTypes(names []string) ([]ResultType, error) {
	types := make([]ResultType, 0, len(names))
	for _, name := range names {
		t, err := ParseResultType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// HasType reports whether t is among types.
func HasType(types []ResultType, t ResultType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// Result is the value produced by every node execution.
// String never fails: Empty yields "", String its content, anything else
// ResultPlaceholder.
type Result interface {
	Type() ResultType
	String() string
}

// EmptyResult carries no value.
type EmptyResult struct{}

func (EmptyResult) Type() ResultType { return ResultEmpty }
func (EmptyResult) String() string   { return "" }

// StringResult carries text.
type StringResult struct {
	Content string
}

func (StringResult) Type() ResultType { return ResultString }
func (r StringResult) String() string { return r.Content }

// CommandResult carries a first-class executable node, usually a partial application.
type CommandResult struct {
	Command Node
}

func (CommandResult) Type() ResultType { return ResultCommand }
func (CommandResult) String() string   { return ResultPlaceholder }

// Text unwraps a String or Empty result.
func Text(r Result) (string, error) {
	switch r.Type() {
	case ResultString, ResultEmpty:
		return r.String(), nil
	}
	return "", NewCommandError(ErrUnexpectedResult, "expected a string as result, got %s", r.Type())
}

// Lines flattens a result into display lines. Enumerables contribute one
// line per element (nested enumerables are flattened), Empty contributes none.
func Lines(r Result) ([]string, error) {
	switch v := r.(type) {
	case EmptyResult:
		return nil, nil
	case StringResult:
		return []string{v.Content}, nil
	case EnumerableResult:
		lines := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item, err := v.At(i)
			if err != nil {
				return nil, err
			}
			sub, err := Lines(item)
			if err != nil {
				return nil, err
			}
			lines = append(lines, sub...)
		}
		return lines, nil
	}
	return nil, NewCommandError(ErrUnexpectedResult, "cannot display a %s result", r.Type())
}
