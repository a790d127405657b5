package compiler

import (
	"fmt"

	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
)

// Translator converts parsed syntax trees into executable nodes rooted at a
// command root.
type Translator struct {
	root domain.Node
}

// NewTranslator creates a translator whose command nodes apply root.
func NewTranslator(root domain.Node) *Translator {
	return &Translator{root: root}
}

// Translate converts the whole tree before anything runs, so a malformed
// tree fails without side effects.
//
// Values become literals and every command becomes the root applied to its
// translated children; dispatch happens at execution time.
func (t *Translator) Translate(node domain.SyntaxNode) (domain.Node, error) {
	switch n := node.(type) {
	case nil:
		return nil, domain.NewCommandError(domain.ErrMalformedTree, "found an empty syntax node")
	case domain.SyntaxError:
		return nil, domain.NewCommandError(domain.ErrMalformedTree, "found an unconvertible syntax node of type error: %s", n.Message)
	case *domain.SyntaxError:
		return nil, domain.NewCommandError(domain.ErrMalformedTree, "found an unconvertible syntax node of type error: %s", n.Message)
	case domain.SyntaxValue:
		return command.Literal(n.Value), nil
	case *domain.SyntaxValue:
		return command.Literal(n.Value), nil
	case domain.SyntaxCommand:
		return t.translateCommand(n.Children)
	case *domain.SyntaxCommand:
		return t.translateCommand(n.Children)
	}
	return nil, fmt.Errorf("unsupported syntax node kind %q", node.Kind())
}

func (t *Translator) translateCommand(children []domain.SyntaxNode) (domain.Node, error) {
	nodes := make([]domain.Node, 0, len(children))
	for _, child := range children {
		n, err := t.Translate(child)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return command.NewApplied(t.root, command.NewStaticArgs(nodes...)), nil
}
