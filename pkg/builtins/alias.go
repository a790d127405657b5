package builtins

import (
	"strings"

	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
)

// AliasGroup lists and shows the aliases known to host.
func AliasGroup(host Host) *command.Group {
	list := command.NewList("list", func(c *command.Call) ([]string, error) {
		aliases := host.Aliases()
		out := make([]string, len(aliases))
		for i, a := range aliases {
			out[i] = a.Name + " = " + a.Command
		}
		return out, nil
	}).Describe("Lists the registered aliases.")

	show := command.NewText("show", func(c *command.Call) (string, error) {
		name := c.Text("name")
		for _, a := range host.Aliases() {
			if a.Name != name {
				continue
			}
			lines := []string{a.Name + " = " + a.Command}
			if a.Description != "" {
				lines = append(lines, a.Description)
			}
			if a.Source != "" {
				lines = append(lines, "source: "+a.Source)
			}
			return strings.Join(lines, "\n"), nil
		}
		return "", domain.NewCommandError(domain.ErrCommandNotFound, "no alias named %q", name)
	}).Text("name").Describe("Shows what an alias expands to.")

	return command.NewGroup().
		Describe("Inspects command aliases.").
		MustAdd("list", list).
		MustAdd("show", show)
}
