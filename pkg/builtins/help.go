package builtins

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
)

// resolver is satisfied by command groups and the root.
type resolver interface {
	Names() []string
	Resolve(name string) (string, domain.Node, error)
	Lookup(name string) (domain.Node, bool)
}

// Help renders markdown help for the commands below root.
// help alone lists the top level; help <name>... walks into groups.
func Help(root *command.Root) *command.Function {
	return command.NewText("help", func(c *command.Call) (string, error) {
		path := c.Rest("command")

		var (
			group    resolver = root
			node     domain.Node
			resolved []string
		)
		for _, word := range path {
			if group == nil {
				break
			}
			name, child, err := group.Resolve(word)
			if err != nil {
				if errors.Is(err, domain.ErrAmbiguousCommand) {
					return ambiguous(group.Names(), word, resolved), nil
				}
				return "", err
			}
			resolved = append(resolved, name)
			node = child
			group, _ = child.(resolver)
		}

		if node == nil {
			return listing("Commands", root), nil
		}
		return describe(strings.Join(resolved, " "), node), nil
	}).Rest("command").Require(0).Describe("Shows the available commands or help for one of them.")
}

func listing(title string, g resolver) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", title)
	for _, name := range g.Names() {
		node, _ := g.Lookup(name)
		if desc := command.DescriptionOf(node); desc != "" {
			fmt.Fprintf(&b, "- `%s` %s\n", name, desc)
		} else {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
	}
	return b.String()
}

func describe(path string, node domain.Node) string {
	if g, ok := node.(resolver); ok {
		text := listing(path, g)
		if desc := command.DescriptionOf(node); desc != "" {
			text = desc + "\n\n" + text
		}
		return text
	}

	usage := path
	if fn, ok := node.(*command.Function); ok && fn.Usage() != "" {
		usage += " " + fn.Usage()
	}
	text := fmt.Sprintf("`%s`", usage)
	if desc := command.DescriptionOf(node); desc != "" {
		text += "\n\n" + desc
	}
	return text
}

func ambiguous(names []string, word string, prefix []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "`%s` is ambiguous, did you mean:\n\n", word)
	for _, name := range command.Suggest(command.FilterList(names, word), word, 0) {
		fmt.Fprintf(&b, "- `%s`\n", strings.TrimSpace(strings.Join(append(append([]string(nil), prefix...), name), " ")))
	}
	return b.String()
}
