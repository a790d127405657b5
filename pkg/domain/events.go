package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCommandStart EventType = "command_start"
	EventCommandEnd   EventType = "command_end"
)

// CommandEvent describes one facade execution.
type CommandEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Type       EventType     `json:"type"`
	SessionID  string        `json:"session_id,omitempty"`
	Command    string        `json:"command"`
	ResultType ResultType    `json:"result_type,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	Err        error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnCommandStart func(context.Context, *CommandEvent)
	OnCommandEnd   func(context.Context, *CommandEvent)
}
