package domain

// EnumerableResult is an ordered, random-access sequence of results.
type EnumerableResult interface {
	Result
	Len() int
	At(index int) (Result, error)
}

type enumerableBase struct{}

func (enumerableBase) Type() ResultType { return ResultEnumerable }
func (enumerableBase) String() string   { return ResultPlaceholder }

// StaticEnumerable is an enumerable backed by a fixed slice.
type StaticEnumerable struct {
	enumerableBase
	items []Result
}

// NewStaticEnumerable copies items into a new enumerable.
func NewStaticEnumerable(items ...Result) *StaticEnumerable {
	copied := make([]Result, len(items))
	copy(copied, items)
	return &StaticEnumerable{items: copied}
}

// NewStringEnumerable wraps every string as a StringResult.
func NewStringEnumerable(values []string) *StaticEnumerable {
	items := make([]Result, len(values))
	for i, v := range values {
		items[i] = StringResult{Content: v}
	}
	return &StaticEnumerable{items: items}
}

func (e *StaticEnumerable) Len() int { return len(e.items) }

func (e *StaticEnumerable) At(index int) (Result, error) {
	if index < 0 || index >= len(e.items) {
		return nil, NewCommandError(ErrIndexOutOfRange, "index %d out of range [0, %d)", index, len(e.items))
	}
	return e.items[index], nil
}

// EnumerableRange is a window of count elements of source starting at start.
type EnumerableRange struct {
	enumerableBase
	source EnumerableResult
	start  int
	count  int
}

// NewEnumerableRange creates a view; a negative count means "until the end".
func NewEnumerableRange(source EnumerableResult, start, count int) *EnumerableRange {
	if start < 0 {
		start = 0
	}
	return &EnumerableRange{source: source, start: start, count: count}
}

func (e *EnumerableRange) Len() int {
	n := e.source.Len() - e.start
	if e.count >= 0 && e.count < n {
		n = e.count
	}
	if n < 0 {
		return 0
	}
	return n
}

func (e *EnumerableRange) At(index int) (Result, error) {
	if index < 0 || index >= e.Len() {
		return nil, NewCommandError(ErrIndexOutOfRange, "index %d out of range [0, %d)", index, e.Len())
	}
	return e.source.At(index + e.start)
}

// EnumerableMerge concatenates several enumerables.
type EnumerableMerge struct {
	enumerableBase
	parts []EnumerableResult
}

// NewEnumerableMerge concatenates parts in order.
func NewEnumerableMerge(parts ...EnumerableResult) *EnumerableMerge {
	copied := make([]EnumerableResult, len(parts))
	copy(copied, parts)
	return &EnumerableMerge{parts: copied}
}

func (e *EnumerableMerge) Len() int {
	total := 0
	for _, p := range e.parts {
		total += p.Len()
	}
	return total
}

func (e *EnumerableMerge) At(index int) (Result, error) {
	if index < 0 {
		return nil, NewCommandError(ErrIndexOutOfRange, "negative index %d", index)
	}
	for _, p := range e.parts {
		if index < p.Len() {
			return p.At(index)
		}
		index -= p.Len()
	}
	return nil, NewCommandError(ErrIndexOutOfRange, "not enough content available")
}
