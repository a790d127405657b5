// Package cli wires configuration, stores, the engine and transports into
// the botcmd command line tool.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/botcmd"
	"github.com/aretw0/botcmd/internal/config"
	"github.com/aretw0/botcmd/internal/logging"
	loamadapter "github.com/aretw0/botcmd/pkg/adapters/loam"
	"github.com/aretw0/botcmd/pkg/adapters/process"
	"github.com/aretw0/botcmd/pkg/builtins"
	"github.com/aretw0/botcmd/pkg/observability"
	"github.com/aretw0/botcmd/pkg/parser"
	"github.com/aretw0/botcmd/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// Options are the global flags of the CLI.
type Options struct {
	ConfigPath string
	// LogLevel overrides the configured level when set.
	LogLevel string
}

// App is a fully wired bot: engine, sessions and metrics.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Engine     *botcmd.Engine
	Dispatcher *session.Dispatcher
	Registry   *prometheus.Registry
	Metrics    *observability.Metrics

	closeStore func() error
}

// LoadConfig reads the config file and builds the logger it asks for.
func LoadConfig(opts Options) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(level), nil
}

// NewApp builds the engine and session dispatcher described by cfg.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	engine, err := createEngine(ctx, cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	st, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	managerOpts := []session.Option{session.WithLogger(logger)}
	if st.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(st.locker))
	}
	manager := session.NewManager(st.store, managerOpts...)

	dispatcherOpts := []session.DispatcherOption{session.WithDispatcherLogger(logger)}
	if len(cfg.Admins) > 0 {
		dispatcherOpts = append(dispatcherOpts, session.WithAdminCheck(session.AdminList(cfg.Admins...)))
	}

	logger.Debug("App Ready", "store", cfg.Store, "commands", len(engine.Commands()), "config", cfg.Path)
	return &App{
		Config:     cfg,
		Logger:     logger,
		Engine:     engine,
		Dispatcher: session.NewDispatcher(engine, manager, dispatcherOpts...),
		Registry:   registry,
		Metrics:    metrics,
		closeStore: st.close,
	}, nil
}

// Close releases the session store.
func (a *App) Close() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}

// createEngine initializes the engine with the standard commands, the
// configured prefix and every alias source.
func createEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*botcmd.Engine, error) {
	engine := botcmd.New(
		botcmd.WithLogger(logger),
		botcmd.WithParser(parser.New(parser.WithPrefix(cfg.PrefixRune()))),
		botcmd.WithLifecycleHooks(observability.Combine(
			observability.LogHooks(logger),
			metrics.Hooks(),
		)),
	)

	metrics.Resolve = func(name string) (string, bool) {
		resolved, _, err := engine.Root().Resolve(name)
		return resolved, err == nil
	}

	if err := builtins.Register(engine); err != nil {
		return nil, fmt.Errorf("error registering builtins: %w", err)
	}
	if err := registerTools(cfg, logger, engine); err != nil {
		return nil, err
	}
	if err := engine.LoadAliases(ctx, cfg); err != nil {
		return nil, err
	}
	if cfg.AliasDir != "" {
		loader, err := loamadapter.Open(cfg.AliasDir)
		if err != nil {
			return nil, err
		}
		if err := engine.LoadAliases(ctx, loader); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

// registerTools exposes the configured external programs as commands. Tools
// from ToolsFile come after the inline ones and replace them by name.
func registerTools(cfg *config.Config, logger *slog.Logger, engine *botcmd.Engine) error {
	tools := cfg.Tools
	if cfg.ToolsFile != "" {
		fromFile, err := process.LoadTools(cfg.ToolsFile)
		if err != nil {
			return err
		}
		tools = append(append([]process.ProcessConfig(nil), tools...), fromFile...)
	}
	if len(tools) == 0 {
		return nil
	}
	runner := process.NewRunner(
		process.WithRegistry(tools),
		process.WithBaseDir(cfg.ToolsDir),
		process.WithLogger(logger),
	)
	if err := runner.RegisterCommands(engine.Root()); err != nil {
		return err
	}
	logger.Debug("Tools registered", "tools", runner.Names())
	return nil
}
