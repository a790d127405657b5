package cli

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/botcmd"
	"github.com/aretw0/botcmd/internal/presentation/tui"
)

// REPLOptions configure the interactive runner.
type REPLOptions struct {
	Headless  bool
	SessionID string
	SenderID  string
	Input     io.Reader
	Output    io.Writer
}

// RunREPL reads command lines until EOF, "exit" or an interrupt.
func RunREPL(ctx context.Context, app *App, opts REPLOptions) error {
	in, out := opts.Input, opts.Output
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	interactive := !opts.Headless && tui.IsTerminal(out)

	r := botcmd.NewRunner()
	r.Input = in
	r.Output = out
	r.Headless = opts.Headless
	r.ErrorStyle = tui.ErrorStyle(out)
	if !opts.Headless {
		r.Renderer = tui.NewRenderer(interactive)
	}
	if opts.SessionID != "" {
		r.SessionID = opts.SessionID
	}
	if opts.SenderID != "" {
		r.SenderID = opts.SenderID
		r.SenderName = opts.SenderID
	}

	if interactive {
		tui.PrintBanner(out, botcmd.Version)
	}
	app.Logger.Info("Session Started", "session_id", r.SessionID, "sender_id", r.SenderID)

	err := r.Run(ctx, app.Dispatcher)
	if isInterrupted(err) && !opts.Headless {
		printSystemMessage(out, "Interrupted.")
	}
	return handleExecutionError(err)
}
