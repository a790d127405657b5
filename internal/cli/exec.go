package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/botcmd"
	"github.com/aretw0/botcmd/pkg/domain"
)

// Exec runs a single command line in sessionID and prints its reply.
func Exec(ctx context.Context, app *App, sessionID, senderID, line string, out io.Writer) error {
	msg := &domain.Message{SenderID: senderID, SenderName: senderID, Channel: "cli", Text: line}
	res, err := app.Dispatcher.Dispatch(ctx, sessionID, msg, botcmd.RunnerTypes...)
	if err != nil {
		return err
	}
	lines, err := domain.Lines(res)
	if err != nil {
		return err
	}
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	return nil
}
