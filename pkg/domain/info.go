package domain

import (
	"context"
	"sync"
	"time"
)

// Message is the chat message that triggered a command.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Channel    string    `json:"channel,omitempty"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}

// ExecutionInfo carries everything a command may need about its caller.
// It is created per inbound command and discarded after the reply.
type ExecutionInfo struct {
	Session *Session
	Message *Message

	ctx     context.Context
	isAdmin func() bool
}

// NewExecutionInfo creates the per-command context. adminCheck is evaluated
// lazily, at most once, the first time IsAdmin is called. A nil adminCheck
// denies admin rights.
func NewExecutionInfo(ctx context.Context, session *Session, msg *Message, adminCheck func() bool) *ExecutionInfo {
	if ctx == nil {
		ctx = context.Background()
	}
	if adminCheck == nil {
		adminCheck = func() bool { return false }
	}
	return &ExecutionInfo{
		Session: session,
		Message: msg,
		ctx:     ctx,
		isAdmin: sync.OnceValue(adminCheck),
	}
}

// Context returns the request context of the inbound command.
func (i *ExecutionInfo) Context() context.Context {
	if i == nil || i.ctx == nil {
		return context.Background()
	}
	return i.ctx
}

// IsAdmin runs the deferred admin check.
func (i *ExecutionInfo) IsAdmin() bool {
	if i == nil || i.isAdmin == nil {
		return false
	}
	return i.isAdmin()
}

// SenderID returns the message sender or "" when there is no message.
func (i *ExecutionInfo) SenderID() string {
	if i == nil || i.Message == nil {
		return ""
	}
	return i.Message.SenderID
}
