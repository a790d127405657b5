package command

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type candidate struct {
	name   string
	cursor int
}

// FilterList resolves an abbreviation against names.
//
// Every filter rune advances each candidate's cursor past the next occurrence
// of that rune. Candidates without an occurrence are dropped, unless that
// would drop all of them, in which case the step is ignored. Survivors with
// the earliest final cursor win, and among those the shortest names.
// A single-element result means the filter resolved.
func FilterList(names []string, filter string) []string {
	if len(names) == 0 {
		return nil
	}

	possible := make([]candidate, len(names))
	for i, n := range names {
		possible[i] = candidate{name: n}
	}

	for _, r := range filter {
		next := make([]candidate, 0, len(possible))
		for _, c := range possible {
			pos := strings.IndexRune(c.name[c.cursor:], r)
			if pos == -1 {
				continue
			}
			next = append(next, candidate{name: c.name, cursor: c.cursor + pos + utf8.RuneLen(r)})
		}
		if len(next) > 0 {
			possible = next
		}
	}

	minCursor := possible[0].cursor
	for _, c := range possible[1:] {
		if c.cursor < minCursor {
			minCursor = c.cursor
		}
	}

	minLength := -1
	earliest := make([]string, 0, len(possible))
	for _, c := range possible {
		if c.cursor != minCursor {
			continue
		}
		earliest = append(earliest, c.name)
		if l := utf8.RuneCountInString(c.name); minLength == -1 || l < minLength {
			minLength = l
		}
	}

	result := make([]string, 0, len(earliest))
	for _, n := range earliest {
		if utf8.RuneCountInString(n) == minLength {
			result = append(result, n)
		}
	}
	return result
}

// Suggest orders names by how well they fuzzy-match filter, best first.
// Names that do not match at all follow in alphabetical order. A limit <= 0
// returns every name.
func Suggest(names []string, filter string, limit int) []string {
	ranks := fuzzy.RankFindFold(filter, names)
	sort.Stable(ranks)

	ordered := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, r := range ranks {
		if !seen[r.Target] {
			seen[r.Target] = true
			ordered = append(ordered, r.Target)
		}
	}

	rest := make([]string, 0, len(names)-len(ordered))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}
