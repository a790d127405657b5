package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/aretw0/botcmd/pkg/ports"
)

// Mask replaces redacted variable values.
const Mask = "***"

type piiMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// CompilePatterns compiles variable name patterns for NewPIIMiddleware.
func CompilePatterns(exprs []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		p, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", expr, err)
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// NewPIIMiddleware masks the values of variables whose names match any of the
// patterns before they reach storage. The caller's session is not modified,
// so the value stays usable until the session is reloaded.
func NewPIIMiddleware(patterns []*regexp.Regexp) Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, session *domain.Session) error {
	masked := session.Clone()
	for name := range masked.Variables {
		if m.sensitive(name) {
			masked.Variables[name] = Mask
		}
	}
	return m.next.Save(ctx, masked)
}

func (m *piiMiddleware) sensitive(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
