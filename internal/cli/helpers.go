package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

type signalCause struct{ sig os.Signal }

func (c signalCause) Error() string { return "received " + c.sig.String() }

// SignalContext is cancelled on SIGINT or SIGTERM and remembers the signal
// as the cancellation cause.
type SignalContext struct {
	context.Context
	cancel context.CancelCauseFunc
}

// NewSignalContext works like signal.NotifyContext but lets the caller
// report which signal stopped it.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancelCause(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			cancel(signalCause{sig: sig})
		case <-ctx.Done():
		}
	}()
	return &SignalContext{Context: ctx, cancel: cancel}
}

// Cancel stops the context without a signal.
func (sc *SignalContext) Cancel() {
	sc.cancel(context.Canceled)
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	var cause signalCause
	if errors.As(context.Cause(sc.Context), &cause) {
		return cause.sig
	}
	return nil
}

// printSystemMessage prints a REPL notice such as "Interrupted.".
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isInterrupted reports a stop by the user: a cancelled context or the end
// of input.
func isInterrupted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

// handleExecutionError turns interruptions into a clean exit.
func handleExecutionError(err error) error {
	if isInterrupted(err) {
		return nil
	}
	return err
}
