package cli

import (
	"fmt"

	"github.com/aretw0/botcmd/internal/config"
	"github.com/aretw0/botcmd/pkg/adapters/file"
	"github.com/aretw0/botcmd/pkg/adapters/memory"
	"github.com/aretw0/botcmd/pkg/adapters/redis"
	"github.com/aretw0/botcmd/pkg/persistence/middleware"
	"github.com/aretw0/botcmd/pkg/ports"
)

type storeSetup struct {
	store  ports.SessionStore
	locker ports.DistributedLocker
	close  func() error
}

// createStore opens the configured session store, wrapped with the
// configured redaction and encryption. Redis also provides the distributed
// lock so several bot replicas can share sessions.
func createStore(cfg *config.Config) (*storeSetup, error) {
	st, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	mws, err := storeMiddlewares(cfg.Security)
	if err != nil {
		if st.close != nil {
			_ = st.close()
		}
		return nil, err
	}
	st.store = middleware.Chain(st.store, mws...)
	return st, nil
}

func storeMiddlewares(sec config.SecurityConfig) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(sec.RedactVariables) > 0 {
		patterns, err := middleware.CompilePatterns(sec.RedactVariables)
		if err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewPIIMiddleware(patterns))
	}
	active, fallback, err := sec.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		enc := middleware.EncryptionConfig{ActiveKey: active, FallbackKeys: fallback}
		if err := enc.Validate(); err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(enc))
	}
	return mws, nil
}

func openBackend(cfg *config.Config) (*storeSetup, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return &storeSetup{store: memory.NewStore()}, nil
	case config.StoreFile:
		return &storeSetup{store: file.New(cfg.SessionDir)}, nil
	case config.StoreRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		return &storeSetup{
			store:  rs,
			locker: redis.NewLocker(rs.Client(), rs.Prefix()),
			close:  rs.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// OpenStore opens the configured store for session maintenance commands.
// The returned function releases it.
func OpenStore(cfg *config.Config) (ports.SessionStore, func() error, error) {
	st, err := createStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := st.close
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return st.store, closeFn, nil
}
