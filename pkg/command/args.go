package command

import (
	"math"

	"github.com/aretw0/botcmd/pkg/domain"
)

// EmptyArgs is an argument list without elements.
type EmptyArgs struct{}

func (EmptyArgs) Len() int { return 0 }

func (EmptyArgs) Execute(index int, info *domain.ExecutionInfo, args domain.Args, types []domain.ResultType) (domain.Result, error) {
	return nil, domain.NewCommandError(domain.ErrIndexOutOfRange, "no arguments given")
}

// StaticArgs is a materialized list of nodes. Each access executes the node again.
type StaticArgs struct {
	nodes []domain.Node
}

// NewStaticArgs captures a private copy of nodes.
func NewStaticArgs(nodes ...domain.Node) *StaticArgs {
	copied := make([]domain.Node, len(nodes))
	copy(copied, nodes)
	return &StaticArgs{nodes: copied}
}

// Strings is a shorthand for a list of literals.
func Strings(values ...string) *StaticArgs {
	nodes := make([]domain.Node, len(values))
	for i, v := range values {
		nodes[i] = Literal(v)
	}
	return &StaticArgs{nodes: nodes}
}

func (s *StaticArgs) Len() int { return len(s.nodes) }

func (s *StaticArgs) Execute(index int, info *domain.ExecutionInfo, args domain.Args, types []domain.ResultType) (domain.Result, error) {
	if index < 0 || index >= len(s.nodes) {
		return nil, domain.NewCommandError(domain.ErrIndexOutOfRange, "requested too many arguments (%d of %d)", index, len(s.nodes))
	}
	return s.nodes[index].Execute(info, args, types)
}

// RangeArgs is a window over another argument list.
type RangeArgs struct {
	source domain.Args
	start  int
	count  int
}

// NewRange returns the view of source starting at start and running to its end.
func NewRange(source domain.Args, start int) *RangeArgs {
	return NewRangeCount(source, start, math.MaxInt)
}

// NewRangeCount returns the view of at most count elements of source starting at start.
func NewRangeCount(source domain.Args, start, count int) *RangeArgs {
	if start < 0 {
		start = 0
	}
	if count < 0 {
		count = 0
	}
	return &RangeArgs{source: source, start: start, count: count}
}

func (r *RangeArgs) Len() int {
	n := r.source.Len() - r.start
	if r.count < n {
		n = r.count
	}
	if n < 0 {
		return 0
	}
	return n
}

func (r *RangeArgs) Execute(index int, info *domain.ExecutionInfo, args domain.Args, types []domain.ResultType) (domain.Result, error) {
	if index < 0 || index >= r.Len() {
		return nil, domain.NewCommandError(domain.ErrIndexOutOfRange, "argument %d out of range [0, %d)", index, r.Len())
	}
	return r.source.Execute(index+r.start, info, args, types)
}

// MergeArgs concatenates several argument lists.
type MergeArgs struct {
	parts []domain.Args
}

// NewMerge concatenates parts in order.
func NewMerge(parts ...domain.Args) *MergeArgs {
	copied := make([]domain.Args, len(parts))
	copy(copied, parts)
	return &MergeArgs{parts: copied}
}

func (m *MergeArgs) Len() int {
	total := 0
	for _, p := range m.parts {
		total += p.Len()
	}
	return total
}

func (m *MergeArgs) Execute(index int, info *domain.ExecutionInfo, args domain.Args, types []domain.ResultType) (domain.Result, error) {
	if index < 0 {
		return nil, domain.NewCommandError(domain.ErrIndexOutOfRange, "negative argument index %d", index)
	}
	for _, p := range m.parts {
		n := p.Len()
		if index < n {
			return p.Execute(index, info, args, types)
		}
		index -= n
	}
	return nil, domain.NewCommandError(domain.ErrIndexOutOfRange, "requested too many arguments")
}

// executeString evaluates one argument forcing a String result.
func executeString(args domain.Args, index int, info *domain.ExecutionInfo) (string, error) {
	res, err := args.Execute(index, info, EmptyArgs{}, []domain.ResultType{domain.ResultString})
	if err != nil {
		return "", err
	}
	s, ok := res.(domain.StringResult)
	if !ok {
		return "", domain.NewCommandError(domain.ErrUnexpectedResult, "expected a string argument, got %s", res.Type())
	}
	return s.Content, nil
}
