package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/botcmd/pkg/domain"
)

// Source is the alias source reported for in-memory aliases.
const Source = "memory"

// Loader implements ports.AliasLoader using an in-memory map.
type Loader struct {
	aliases map[string]domain.Alias
}

// NewLoader creates a loader from alias names mapped to command lines.
func NewLoader(data map[string]string) *Loader {
	aliases := make(map[string]domain.Alias, len(data))
	for name, line := range data {
		aliases[name] = domain.Alias{Name: name, Command: line, Source: Source}
	}
	return &Loader{aliases: aliases}
}

// NewFromAliases creates a loader from alias values, keeping their Source
// when set.
func NewFromAliases(aliases ...domain.Alias) (*Loader, error) {
	data := make(map[string]domain.Alias, len(aliases))
	for _, a := range aliases {
		if a.Name == "" {
			return nil, fmt.Errorf("alias missing name")
		}
		if _, dup := data[a.Name]; dup {
			return nil, fmt.Errorf("duplicate alias %q", a.Name)
		}
		if a.Source == "" {
			a.Source = Source
		}
		data[a.Name] = a
	}
	return &Loader{aliases: data}, nil
}

// LoadAliases returns the aliases sorted by name.
func (l *Loader) LoadAliases(ctx context.Context) ([]domain.Alias, error) {
	names := make([]string, 0, len(l.aliases))
	for name := range l.aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.Alias, 0, len(names))
	for _, name := range names {
		out = append(out, l.aliases[name])
	}
	return out, nil
}
