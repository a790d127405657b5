package builtins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
)

// Echo returns its arguments joined by spaces.
func Echo() *command.Function {
	return command.NewText("echo", func(c *command.Call) (string, error) {
		return strings.Join(c.Rest("text"), " "), nil
	}).Rest("text").Require(0).Describe("Replies with the given text.")
}

// Print returns its arguments concatenated.
func Print() *command.Function {
	return command.NewText("print", func(c *command.Call) (string, error) {
		return strings.Join(c.Rest("parts"), ""), nil
	}).Rest("parts").Require(0).Describe("Concatenates the arguments without separator.")
}

// Repeat returns text count times, one entry per repetition.
func Repeat() *command.Function {
	return command.NewList("repeat", func(c *command.Call) ([]string, error) {
		n := c.Int("count")
		if n < 0 || n > MaxRepeat {
			return nil, domain.NewCommandError(ErrInvalidArgument, "repeat count must be between 0 and %d, got %d", MaxRepeat, n)
		}
		out := make([]string, n)
		for i := range out {
			out[i] = c.Text("text")
		}
		return out, nil
	}).Int("count").Text("text").Describe("Repeats a text, one line per repetition.")
}

// Count reports how many arguments it got without evaluating them.
func Count() *command.Function {
	return command.NewText("count", func(c *command.Call) (string, error) {
		return strconv.Itoa(c.RawArgs().Len()), nil
	}).RawArgs().Describe("Counts its arguments without running them.")
}

// Types lists the result types the caller accepts, in priority order.
func Types() *command.Function {
	return command.NewText("types", func(c *command.Call) (string, error) {
		types := c.AcceptedTypes()
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		return strings.Join(names, ", "), nil
	}).AcceptedTypes().Describe("Shows which result types the caller accepts.")
}

// Whoami returns the sender of the current message.
func Whoami() *command.Function {
	return command.NewText("whoami", func(c *command.Call) (string, error) {
		info := c.Info()
		if info == nil || info.Message == nil {
			return "anonymous", nil
		}
		msg := info.Message
		if msg.SenderName != "" && msg.SenderName != msg.SenderID {
			return fmt.Sprintf("%s (%s)", msg.SenderName, msg.SenderID), nil
		}
		if msg.SenderID == "" {
			return "anonymous", nil
		}
		return msg.SenderID, nil
	}).Context().Describe("Shows who sent the command.")
}
