package compiler

import (
	"testing"

	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownNode struct{}

func (unknownNode) Kind() domain.SyntaxKind { return "mystery" }

func TestTranslate(t *testing.T) {
	calls := 0
	root := command.NewRoot()
	root.MustAdd("echo", command.NewText("echo", func(c *command.Call) (string, error) {
		calls++
		return c.Text("x"), nil
	}).Text("x"))
	tr := NewTranslator(root)

	t.Run("Value", func(t *testing.T) {
		node, err := tr.Translate(domain.SyntaxValue{Value: "v"})
		require.NoError(t, err)
		assert.Equal(t, command.Literal("v"), node)
	})

	t.Run("Command", func(t *testing.T) {
		tree := domain.SyntaxCommand{Children: []domain.SyntaxNode{
			domain.SyntaxValue{Value: "echo"},
			&domain.SyntaxCommand{Children: []domain.SyntaxNode{
				domain.SyntaxValue{Value: "echo"},
				domain.SyntaxValue{Value: "inner"},
			}},
		}}
		node, err := tr.Translate(tree)
		require.NoError(t, err)

		applied, ok := node.(*command.Applied)
		require.True(t, ok)
		assert.Same(t, root, applied.Target())
		assert.Equal(t, 2, applied.Fixed().Len())
		assert.Zero(t, calls, "translation runs nothing")

		res, err := node.Execute(nil, command.EmptyArgs{}, []domain.ResultType{domain.ResultString})
		require.NoError(t, err)
		assert.Equal(t, "inner", res.String())
		assert.Equal(t, 2, calls)
	})

	t.Run("Error nodes fail without side effects", func(t *testing.T) {
		calls = 0
		tree := domain.SyntaxCommand{Children: []domain.SyntaxNode{
			domain.SyntaxValue{Value: "echo"},
			domain.SyntaxCommand{Children: []domain.SyntaxNode{domain.SyntaxValue{Value: "echo"}, domain.SyntaxValue{Value: "x"}}},
			domain.SyntaxError{Message: "missing ')'", Position: 9},
		}}
		_, err := tr.Translate(tree)
		assert.ErrorIs(t, err, domain.ErrMalformedTree)
		assert.ErrorContains(t, err, "missing ')'")
		assert.Zero(t, calls)

		_, err = tr.Translate(&domain.SyntaxError{Message: "bad"})
		assert.ErrorIs(t, err, domain.ErrMalformedTree)
	})

	t.Run("Nil and unknown nodes", func(t *testing.T) {
		_, err := tr.Translate(nil)
		assert.ErrorIs(t, err, domain.ErrMalformedTree)

		_, err = tr.Translate(unknownNode{})
		assert.ErrorContains(t, err, "mystery")
	})
}
