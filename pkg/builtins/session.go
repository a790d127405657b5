package builtins

import (
	"sort"
	"strings"

	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
)

// DefaultHistoryCount is how many lines history shows without a count.
const DefaultHistoryCount = 10

// Set stores a session variable.
func Set() *command.Function {
	return command.NewAction("set", func(c *command.Call) error {
		s, err := session(c)
		if err != nil {
			return err
		}
		s.Variables[c.Text("name")] = strings.Join(c.Rest("value"), " ")
		return nil
	}).Context().Text("name").Rest("value").Describe("Stores a value in your session.")
}

// Get reads a session variable.
func Get() *command.Function {
	return command.NewText("get", func(c *command.Call) (string, error) {
		s, err := session(c)
		if err != nil {
			return "", err
		}
		name := c.Text("name")
		v, ok := s.Variables[name]
		if !ok {
			return "", domain.NewCommandError(ErrVariableNotSet, "variable %q is not set", name)
		}
		return v, nil
	}).Context().Text("name").Describe("Reads a value from your session.")
}

// Vars lists the session variables as name=value.
func Vars() *command.Function {
	return command.NewList("vars", func(c *command.Call) ([]string, error) {
		s, err := session(c)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(s.Variables))
		for name := range s.Variables {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]string, len(names))
		for i, name := range names {
			out[i] = name + "=" + s.Variables[name]
		}
		return out, nil
	}).Context().Describe("Lists the values stored in your session.")
}

// Unset removes a session variable. Only admins may use it.
func Unset() *command.Function {
	return command.NewAction("unset", func(c *command.Call) error {
		if !c.Info().IsAdmin() {
			return domain.NewCommandError(domain.ErrPermissionDenied, "unset requires admin rights")
		}
		s, err := session(c)
		if err != nil {
			return err
		}
		delete(s.Variables, c.Text("name"))
		return nil
	}).Context().Text("name").Describe("Removes a stored value (admin only).")
}

// History lists the most recent command lines of the session.
func History() *command.Function {
	return command.NewList("history", func(c *command.Call) ([]string, error) {
		s, err := session(c)
		if err != nil {
			return nil, err
		}
		n := c.IntOr("count", DefaultHistoryCount)
		if n < 0 {
			n = 0
		}
		lines := s.History
		if len(lines) > n {
			lines = lines[len(lines)-n:]
		}
		return append([]string(nil), lines...), nil
	}).Context().Int("count").Require(0).Describe("Shows your last commands.")
}
