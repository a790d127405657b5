package builtins

import (
	"errors"
	"fmt"

	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
)

var (
	// ErrNoSession is returned by session commands run without a session.
	ErrNoSession = errors.New("command requires a session")
	// ErrVariableNotSet is returned by get for unknown variables.
	ErrVariableNotSet = errors.New("variable is not set")
	// ErrInvalidArgument is returned for arguments outside the accepted range.
	ErrInvalidArgument = errors.New("invalid argument")
)

// MaxRepeat bounds the repeat command.
const MaxRepeat = 100

// Host is what the standard commands need from the engine.
type Host interface {
	Root() *command.Root
	Aliases() []domain.Alias
}

// Register adds every standard command to the host's root group.
func Register(host Host) error {
	root := host.Root()
	for _, entry := range []struct {
		name string
		node domain.Node
	}{
		{"help", Help(root)},
		{"echo", Echo()},
		{"print", Print()},
		{"repeat", Repeat()},
		{"count", Count()},
		{"types", Types()},
		{"slice", Slice()},
		{"concat", Concat()},
		{"first", First()},
		{"whoami", Whoami()},
		{"set", Set()},
		{"get", Get()},
		{"vars", Vars()},
		{"unset", Unset()},
		{"history", History()},
		{"alias", AliasGroup(host)},
	} {
		if err := root.Add(entry.name, entry.node); err != nil {
			return fmt.Errorf("failed to register %s: %w", entry.name, err)
		}
	}
	return nil
}

func session(c *command.Call) (*domain.Session, error) {
	info := c.Info()
	if info == nil || info.Session == nil {
		return nil, domain.NewCommandError(ErrNoSession, "%s requires a session", c.Name())
	}
	return info.Session, nil
}
