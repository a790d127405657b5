package domain

// SessionDiff describes what one command changed in a session. It is sent
// to HTTP clients so they can patch a local copy instead of reloading it.
type SessionDiff struct {
	SessionID string `json:"session_id"`

	// Variables holds added or modified values. A deleted variable is
	// present with a nil value.
	Variables map[string]*string `json:"variables,omitempty"`

	// History holds the lines appended to the history.
	History *HistoryDelta `json:"history,omitempty"`
}

// HistoryDelta lists history entries appended since the previous state.
type HistoryDelta struct {
	Appended []string `json:"appended"`
}

// Diff calculates the difference between oldSession and newSession.
// A nil oldSession yields the whole newSession. It returns nil when nothing
// changed.
func Diff(oldSession, newSession *Session) *SessionDiff {
	if newSession == nil {
		return nil
	}
	diff := &SessionDiff{
		SessionID: newSession.ID,
		Variables: diffVariables(oldSession, newSession),
		History:   diffHistory(oldSession, newSession),
	}
	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffVariables(old, new *Session) map[string]*string {
	delta := make(map[string]*string)
	for k, v := range new.Variables {
		if old != nil {
			if prev, ok := old.Variables[k]; ok && prev == v {
				continue
			}
		}
		v := v
		delta[k] = &v
	}
	if old != nil {
		for k := range old.Variables {
			if _, ok := new.Variables[k]; !ok {
				delta[k] = nil
			}
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

// diffHistory assumes the history only grows at the end. When the cap drops
// old entries, the overlap is found by the longest suffix of old that
// prefixes new.
func diffHistory(old, new *Session) *HistoryDelta {
	if len(new.History) == 0 {
		return nil
	}
	if old == nil || len(old.History) == 0 {
		return &HistoryDelta{Appended: append([]string(nil), new.History...)}
	}
	for start := 0; start < len(old.History); start++ {
		overlap := old.History[start:]
		if len(overlap) > len(new.History) || !equalPrefix(new.History, overlap) {
			continue
		}
		if len(overlap) == len(new.History) {
			return nil
		}
		return &HistoryDelta{Appended: append([]string(nil), new.History[len(overlap):]...)}
	}
	return &HistoryDelta{Appended: append([]string(nil), new.History...)}
}

func equalPrefix(s, prefix []string) bool {
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}

// IsEmpty checks if the diff contains any change.
func (d *SessionDiff) IsEmpty() bool {
	return d == nil || (len(d.Variables) == 0 && d.History == nil)
}
