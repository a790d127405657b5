package botcmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/botcmd/internal/compiler"
	"github.com/aretw0/botcmd/internal/logging"
	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/aretw0/botcmd/pkg/parser"
	"github.com/aretw0/botcmd/pkg/ports"
)

// DefaultTypes is what Execute asks for when the caller gives no types.
var DefaultTypes = []domain.ResultType{domain.ResultString, domain.ResultEmpty}

// Engine is the high-level entry point of the command system.
// It owns the root command group and runs command lines against it.
type Engine struct {
	root         *command.Root
	parser       ports.Parser
	translator   *compiler.Translator
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	defaultTypes []domain.ResultType

	mu      sync.RWMutex
	aliases []domain.Alias
}

// Ensure Engine implements the adapter port.
var _ ports.Executor = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithParser replaces the default command line parser.
func WithParser(p ports.Parser) Option {
	return func(e *Engine) {
		e.parser = p
	}
}

// WithRoot uses an existing root group instead of an empty one.
func WithRoot(root *command.Root) Option {
	return func(e *Engine) {
		e.root = root
	}
}

// WithDefaultTypes changes the result types used when Execute gets none.
func WithDefaultTypes(types ...domain.ResultType) Option {
	return func(e *Engine) {
		e.defaultTypes = append([]domain.ResultType(nil), types...)
	}
}

// New initializes an Engine with an empty root group and the default parser.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.root == nil {
		eng.root = command.NewRoot()
	}
	if eng.parser == nil {
		eng.parser = parser.New()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if len(eng.defaultTypes) == 0 {
		eng.defaultTypes = DefaultTypes
	}
	eng.translator = compiler.NewTranslator(eng.root)
	return eng
}

// Root returns the root group for registration.
func (e *Engine) Root() *command.Root {
	return e.root
}

// Commands lists the top-level command names.
func (e *Engine) Commands() []string {
	return e.root.Names()
}

// Translate converts a syntax tree into an executable node.
func (e *Engine) Translate(tree domain.SyntaxNode) (domain.Node, error) {
	return e.translator.Translate(tree)
}

// Compile parses and translates a command line without running it.
func (e *Engine) Compile(text string) (domain.Node, error) {
	return e.translator.Translate(e.parser.Parse(text))
}

// Execute parses text, translates it and runs it with no extra arguments.
// Without types, the engine's default types are used.
func (e *Engine) Execute(info *domain.ExecutionInfo, text string, types ...domain.ResultType) (domain.Result, error) {
	if len(types) == 0 {
		types = e.defaultTypes
	}
	if info == nil {
		info = domain.NewExecutionInfo(context.Background(), nil, nil, nil)
	}

	ctx := info.Context()
	sessionID := ""
	if info.Session != nil {
		sessionID = info.Session.ID
	}
	start := time.Now()
	if e.hooks.OnCommandStart != nil {
		e.hooks.OnCommandStart(ctx, &domain.CommandEvent{
			Timestamp: start,
			Type:      domain.EventCommandStart,
			SessionID: sessionID,
			Command:   text,
		})
	}

	var res domain.Result
	node, err := e.Compile(text)
	if err == nil {
		res, err = node.Execute(info, command.EmptyArgs{}, types)
	}

	ev := &domain.CommandEvent{
		Timestamp: time.Now(),
		Type:      domain.EventCommandEnd,
		SessionID: sessionID,
		Command:   text,
		Duration:  time.Since(start),
		Err:       err,
	}
	if res != nil {
		ev.ResultType = res.Type()
	}
	if e.hooks.OnCommandEnd != nil {
		e.hooks.OnCommandEnd(ctx, ev)
	}

	if err != nil {
		e.logger.Debug("command failed", "command", text, "session_id", sessionID, "duration", ev.Duration, "err", err)
		return nil, err
	}
	e.logger.Debug("command executed", "command", text, "session_id", sessionID, "result", ev.ResultType, "duration", ev.Duration)
	return res, nil
}

// ExecuteArgs runs the root directly on an argument list.
func (e *Engine) ExecuteArgs(info *domain.ExecutionInfo, args domain.Args, types ...domain.ResultType) (domain.Result, error) {
	if len(types) == 0 {
		types = e.defaultTypes
	}
	return e.root.Execute(info, args, types)
}

// ExecuteCommand runs text with the default types [String, Empty] and
// returns the text of the result.
func (e *Engine) ExecuteCommand(info *domain.ExecutionInfo, text string) (string, error) {
	res, err := e.Execute(info, text, DefaultTypes...)
	if err != nil {
		return "", err
	}
	return domain.Text(res)
}

// RegisterAlias compiles alias.Command and registers it on the root under
// alias.Name. Arguments passed to the alias are appended to the command.
func (e *Engine) RegisterAlias(alias domain.Alias) error {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(alias.Command), "!"))
	if len(fields) > 0 && fields[0] == alias.Name {
		return fmt.Errorf("alias %q must not invoke itself", alias.Name)
	}

	node, err := e.Compile(alias.Command)
	if err != nil {
		return fmt.Errorf("invalid alias %q: %w", alias.Name, err)
	}

	desc := alias.Description
	if desc == "" {
		desc = "Alias for: " + alias.Command
	}
	if err := e.root.Add(alias.Name, command.Describe(node, desc)); err != nil {
		return fmt.Errorf("failed to register alias %q: %w", alias.Name, err)
	}
	e.mu.Lock()
	e.aliases = append(e.aliases, alias)
	e.mu.Unlock()

	e.logger.Debug("alias registered", "alias", alias.Name, "command", alias.Command, "source", alias.Source)
	return nil
}

// Aliases returns the registered aliases in registration order.
func (e *Engine) Aliases() []domain.Alias {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]domain.Alias(nil), e.aliases...)
}

// LoadAliases registers every alias supplied by loader.
func (e *Engine) LoadAliases(ctx context.Context, loader ports.AliasLoader) error {
	aliases, err := loader.LoadAliases(ctx)
	if err != nil {
		return fmt.Errorf("failed to load aliases: %w", err)
	}
	for _, a := range aliases {
		if err := e.RegisterAlias(a); err != nil {
			return err
		}
	}
	return nil
}
