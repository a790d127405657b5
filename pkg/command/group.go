package command

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/botcmd/pkg/domain"
)

// Group is a named dispatch table. The first argument selects a child by
// (abbreviated) name; the remaining arguments are passed on to it.
type Group struct {
	mu          sync.RWMutex
	commands    map[string]domain.Node
	description string
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{
		commands: make(map[string]domain.Node),
	}
}

// Describe sets the help text of the group.
func (g *Group) Describe(text string) *Group {
	g.description = text
	return g
}

// Description implements domain.Describer.
func (g *Group) Description() string {
	return g.description
}

// Add registers node under name. Names are unique within a group.
func (g *Group) Add(name string, node domain.Node) error {
	if name == "" {
		return domain.NewCommandError(domain.ErrExpectedName, "command name must not be empty")
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return domain.NewCommandError(domain.ErrExpectedName, "command name %q must not contain whitespace", name)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.commands[name]; exists {
		return domain.NewCommandError(domain.ErrDuplicateCommand, "a command named %q already exists", name)
	}
	g.commands[name] = node
	return nil
}

// MustAdd is like Add but panics on error. It returns the group for chaining
// and is meant for static registration at startup.
func (g *Group) MustAdd(name string, node domain.Node) *Group {
	if err := g.Add(name, node); err != nil {
		panic(err)
	}
	return g
}

// Remove unregisters name and reports whether it existed.
func (g *Group) Remove(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.commands[name]
	delete(g.commands, name)
	return ok
}

// RemoveNode unregisters node by identity. Exactly one entry must match.
// Nodes of a non-comparable dynamic type never match.
func (g *Group) RemoveNode(node domain.Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var matches []string
	for name, n := range g.commands {
		if sameNode(n, node) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return domain.NewCommandError(domain.ErrCommandNotFound, "command is not registered in this group")
	case 1:
		delete(g.commands, matches[0])
		return nil
	}
	sort.Strings(matches)
	return domain.NewCommandError(domain.ErrAmbiguousCommand, "command is registered more than once: %s", strings.Join(matches, ", "))
}

func sameNode(a, b domain.Node) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Contains reports whether name is registered (exact match).
func (g *Group) Contains(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.commands[name]
	return ok
}

// Lookup returns the node registered under name (exact match).
func (g *Group) Lookup(name string) (domain.Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.commands[name]
	return n, ok
}

// Names returns the registered names in alphabetical order.
func (g *Group) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.commands))
	for name := range g.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps a possibly abbreviated name to a registered child.
func (g *Group) Resolve(name string) (string, domain.Node, error) {
	names := g.Names()
	matches := FilterList(names, name)
	switch len(matches) {
	case 0:
		return "", nil, domain.NewCommandError(domain.ErrUnknownCommand, "unknown command %q", name)
	case 1:
		node, ok := g.Lookup(matches[0])
		if !ok {
			return "", nil, domain.NewCommandError(domain.ErrUnknownCommand, "unknown command %q", name)
		}
		return matches[0], node, nil
	}
	return "", nil, domain.NewCommandError(domain.ErrAmbiguousCommand,
		"ambiguous command, possible names: %s", strings.Join(Suggest(matches, name, 0), ", "))
}

func (g *Group) Execute(info *domain.ExecutionInfo, args domain.Args, types []domain.ResultType) (domain.Result, error) {
	return g.dispatch(g, info, args, types)
}

// dispatch implements the group behaviour on behalf of self, so a Root
// returns itself rather than its embedded group when asked for a command.
func (g *Group) dispatch(self domain.Node, info *domain.ExecutionInfo, args domain.Args, types []domain.ResultType) (domain.Result, error) {
	if args == nil {
		args = EmptyArgs{}
	}
	if args.Len() < 1 {
		if domain.HasType(types, domain.ResultCommand) {
			return domain.CommandResult{Command: self}, nil
		}
		return nil, domain.NewCommandError(domain.ErrExpectedName, "expected a command name, available: %s", strings.Join(g.Names(), ", "))
	}

	name, err := executeString(args, 0, info)
	if err != nil {
		return nil, err
	}

	_, child, err := g.Resolve(name)
	if err != nil {
		return nil, err
	}
	return child.Execute(info, NewRange(args, 1), types)
}
