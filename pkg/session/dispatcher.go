package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/botcmd/internal/logging"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/aretw0/botcmd/pkg/ports"
	"github.com/google/uuid"
)

// AdminCheck decides whether the sender of msg has admin rights.
// It is only run when a command asks for it.
type AdminCheck func(ctx context.Context, msg *domain.Message) bool

// AdminList grants admin rights to the given sender IDs.
func AdminList(ids ...string) AdminCheck {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(_ context.Context, msg *domain.Message) bool {
		return msg != nil && set[msg.SenderID]
	}
}

// Dispatcher runs chat messages as commands inside the sender's session.
// Commands of one session never run concurrently.
type Dispatcher struct {
	exec     ports.Executor
	sessions *Manager
	admin    AdminCheck
	logger   *slog.Logger
}

// DispatcherOption configures the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithAdminCheck sets the deferred admin check.
func WithAdminCheck(check AdminCheck) DispatcherOption {
	return func(d *Dispatcher) {
		d.admin = check
	}
}

// WithDispatcherLogger configures a logger for the Dispatcher.
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a dispatcher over exec and sessions.
func NewDispatcher(exec ports.Executor, sessions *Manager, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		exec:     exec,
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Sessions returns the session manager.
func (d *Dispatcher) Sessions() *Manager {
	return d.sessions
}

// Commands lists the top-level commands of the executor.
func (d *Dispatcher) Commands() []string {
	return d.exec.Commands()
}

// Dispatch executes msg.Text for sessionID. The command line is recorded in
// the session history whether or not it succeeds.
func (d *Dispatcher) Dispatch(ctx context.Context, sessionID string, msg *domain.Message, types ...domain.ResultType) (domain.Result, error) {
	res, _, err := d.DispatchDiff(ctx, sessionID, msg, types...)
	return res, err
}

// DispatchDiff is like Dispatch and also reports what the command changed
// in the session. The diff is nil when the command fails.
func (d *Dispatcher) DispatchDiff(ctx context.Context, sessionID string, msg *domain.Message, types ...domain.ResultType) (domain.Result, *domain.SessionDiff, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = time.Now().UTC()
	}

	var (
		res  domain.Result
		diff *domain.SessionDiff
	)
	err := d.sessions.Update(ctx, sessionID, func(ctx context.Context, s *domain.Session) error {
		var adminCheck func() bool
		if d.admin != nil {
			adminCheck = func() bool { return d.admin(ctx, msg) }
		}
		before := s.Clone()
		info := domain.NewExecutionInfo(ctx, s, msg, adminCheck)

		var err error
		res, err = d.exec.Execute(info, msg.Text, types...)
		s.Record(msg.Text)
		if err == nil {
			diff = domain.Diff(before, s)
		}
		return err
	})
	if err != nil {
		d.logger.Info("command rejected", "session_id", sessionID, "message_id", msg.ID, "err", err)
		return nil, nil, err
	}
	return res, diff, nil
}
