package domain

import "time"

// DefaultHistorySize bounds Session.History.
const DefaultHistorySize = 50

// Session is the persisted state of one chat caller.
type Session struct {
	ID string `json:"id"`

	// Variables holds values written by the set command.
	Variables map[string]string `json:"variables"`

	// History lists the most recent command lines, oldest first.
	History []string `json:"history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates an empty session.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Variables: make(map[string]string),
		History:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Record appends a command line to the history, dropping the oldest entries
// beyond DefaultHistorySize.
func (s *Session) Record(line string) {
	s.History = append(s.History, line)
	if over := len(s.History) - DefaultHistorySize; over > 0 {
		s.History = append([]string(nil), s.History[over:]...)
	}
	s.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy so stores can isolate their data from callers.
func (s *Session) Clone() *Session {
	c := *s
	c.Variables = make(map[string]string, len(s.Variables))
	for k, v := range s.Variables {
		c.Variables[k] = v
	}
	c.History = append([]string(nil), s.History...)
	return &c
}
