package http

import (
	"log/slog"
	"sync"
)

// SSE event names.
const (
	EventReply = "reply"
	EventError = "error"
)

// Event is one server-sent event.
type Event struct {
	Name string
	Data string
}

// StreamBuffer is the per-subscriber queue length. Events beyond it are
// dropped for that subscriber.
const StreamBuffer = 16

// StreamManager fans session events out to SSE subscribers.
type StreamManager struct {
	mu     sync.RWMutex
	subs   map[string]map[chan Event]struct{}
	logger *slog.Logger
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subs:   make(map[string]map[chan Event]struct{}),
		logger: logger,
	}
}

// Subscribe registers a subscriber for sessionID. The returned func
// unsubscribes and closes the channel; it is safe to call more than once.
func (sm *StreamManager) Subscribe(sessionID string) (<-chan Event, func()) {
	ch := make(chan Event, StreamBuffer)

	sm.mu.Lock()
	if sm.subs[sessionID] == nil {
		sm.subs[sessionID] = make(map[chan Event]struct{})
	}
	sm.subs[sessionID][ch] = struct{}{}
	sm.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subs[sessionID], ch)
			if len(sm.subs[sessionID]) == 0 {
				delete(sm.subs, sessionID)
			}
			close(ch)
		})
	}
}

// Subscribers returns the number of subscribers of sessionID.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subs[sessionID])
}

// Broadcast sends ev to every subscriber of sessionID without blocking.
func (sm *StreamManager) Broadcast(sessionID string, ev Event) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subs[sessionID] {
		select {
		case ch <- ev:
		default:
			sm.logger.Warn("SSE subscriber is full, dropping event", "session_id", sessionID, "event", ev.Name)
		}
	}
}
