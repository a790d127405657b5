package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/botcmd/pkg/domain"
)

// Combine fans every event out to all given hooks, in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandStart: func(ctx context.Context, e *domain.CommandEvent) {
			for _, h := range hooks {
				if h.OnCommandStart != nil {
					h.OnCommandStart(ctx, e)
				}
			}
		},
		OnCommandEnd: func(ctx context.Context, e *domain.CommandEvent) {
			for _, h := range hooks {
				if h.OnCommandEnd != nil {
					h.OnCommandEnd(ctx, e)
				}
			}
		},
	}
}

// LogHooks logs each command at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandStart: func(ctx context.Context, e *domain.CommandEvent) {
			logger.Debug("Command Start", "session_id", e.SessionID, "command", e.Command)
		},
		OnCommandEnd: func(ctx context.Context, e *domain.CommandEvent) {
			if e.Err != nil {
				logger.Debug("Command End (Error)", "session_id", e.SessionID, "command", e.Command, "duration", e.Duration, "err", e.Err)
				return
			}
			logger.Debug("Command End", "session_id", e.SessionID, "command", e.Command, "result", e.ResultType, "duration", e.Duration)
		},
	}
}
