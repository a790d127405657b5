package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/botcmd/internal/logging"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/aretw0/botcmd/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed session lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring a caller's commands run one
// at a time. It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	var s *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		s, err = m.store.Load(ctx, sessionID)
		return err
	})
	return s, err
}

// LoadOrStart loads a session, creating and persisting a new one if missing.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID string) (*domain.Session, error) {
	var s *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var (
			created bool
			err     error
		)
		s, created, err = m.loadOrNew(ctx, sessionID)
		if err != nil || !created {
			return err
		}
		if err := m.store.Save(ctx, s); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	return s, err
}

func (m *Manager) loadOrNew(ctx context.Context, sessionID string) (*domain.Session, bool, error) {
	s, err := m.store.Load(ctx, sessionID)
	if err == nil {
		return s, false, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, false, fmt.Errorf("failed to check session existence: %w", err)
	}
	return domain.NewSession(sessionID), true, nil
}

// Update loads (or creates) the session, lets fn modify it and saves it,
// all while holding the session lock. The session is saved even when fn
// fails, so history survives failing commands; fn's error is returned.
func (m *Manager) Update(ctx context.Context, sessionID string, fn func(ctx context.Context, s *domain.Session) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, _, err := m.loadOrNew(ctx, sessionID)
		if err != nil {
			return err
		}

		fnErr := fn(ctx, s)

		if err := m.store.Save(ctx, s); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return fnErr
	})
}

// Save persists the session.
func (m *Manager) Save(ctx context.Context, s *domain.Session) error {
	return m.WithLock(ctx, s.ID, func(ctx context.Context) error {
		return m.store.Save(ctx, s)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
