package botcmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/aretw0/botcmd/pkg/session"
)

// RunnerTypes are the result types the interactive runner accepts.
var RunnerTypes = []domain.ResultType{domain.ResultString, domain.ResultEnumerable, domain.ResultEmpty}

// Runner reads command lines from Input, dispatches them inside one session
// and writes the replies to Output. Frontends (CLI, tests) provide the IO.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer

	// ErrorStyle decorates error text before it is printed.
	ErrorStyle func(string) string

	SessionID  string
	SenderID   string
	SenderName string
}

// ContentRenderer is a function that transforms a reply before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner for the local "console" session.
// Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{
		SessionID:  "console",
		SenderID:   "console",
		SenderName: "console",
	}
}

// Run executes command lines until EOF, "exit"/"quit" or ctx is cancelled.
// Command errors are printed and do not stop the loop.
func (r *Runner) Run(ctx context.Context, d *session.Dispatcher) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	if !r.Headless {
		fmt.Fprintln(r.Output, "Type a command (e.g. !help), or 'exit' to leave.")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}

		text, readErr := lineReader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("input error: %w", readErr)
		}

		line := strings.TrimSpace(text)
		switch {
		case line == "exit" || line == "quit":
			if !r.Headless {
				fmt.Fprintln(r.Output, "Bye!")
			}
			return nil
		case line != "":
			r.execute(ctx, d, line)
		}

		if readErr != nil {
			// EOF
			return nil
		}
	}
}

func (r *Runner) execute(ctx context.Context, d *session.Dispatcher, line string) {
	msg := &domain.Message{
		SenderID:   r.SenderID,
		SenderName: r.SenderName,
		Channel:    "console",
		Text:       line,
	}
	res, err := d.Dispatch(ctx, r.SessionID, msg, RunnerTypes...)
	if err != nil {
		r.printError(err)
		return
	}

	lines, err := domain.Lines(res)
	if err != nil {
		r.printError(err)
		return
	}
	if len(lines) == 0 {
		return
	}

	output := strings.Join(lines, "\n")
	if r.Renderer != nil {
		if rendered, err := r.Renderer(output); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(output))
}

func (r *Runner) printError(err error) {
	text := "error: " + err.Error()
	if r.ErrorStyle != nil {
		text = r.ErrorStyle(text)
	}
	fmt.Fprintln(r.Output, text)
}
