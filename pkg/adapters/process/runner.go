// Package process exposes allow-listed external programs as chat commands.
//
// Caller arguments never reach the program's command line. They are passed
// as environment variables (BOTCMD_ARGC, BOTCMD_ARGS, BOTCMD_ARG_1...), so a
// chat user cannot inject flags. The program's stdout lines become the
// command's list result.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/botcmd/internal/logging"
	"github.com/aretw0/botcmd/pkg/command"
	"github.com/aretw0/botcmd/pkg/domain"
)

// DefaultTimeout bounds a run when the tool sets none.
const DefaultTimeout = 10 * time.Second

// EnvPrefix starts every variable the runner sets for the program.
const EnvPrefix = "BOTCMD_"

var (
	// ErrNotRegistered is returned for unknown tool names.
	ErrNotRegistered = errors.New("process tool not registered")
	// ErrProcessFailed is returned when the program exits unsuccessfully.
	ErrProcessFailed = errors.New("process failed")
)

// Runner executes registered programs.
type Runner struct {
	registry map[string]ProcessConfig
	order    []string
	baseDir  string
	timeout  time.Duration
	logger   *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry registers every tool of a loaded config.
func WithRegistry(tools []ProcessConfig) RunnerOption {
	return func(r *Runner) {
		for _, tool := range tools {
			r.Register(tool)
		}
	}
}

// WithBaseDir sets the working directory for executed programs.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithTimeout sets the default run timeout.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a process runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]ProcessConfig),
		timeout:  DefaultTimeout,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted program to the allow-list, replacing a previous
// entry of the same name.
func (r *Runner) Register(tool ProcessConfig) {
	if _, exists := r.registry[tool.Name]; !exists {
		r.order = append(r.order, tool.Name)
	}
	r.registry[tool.Name] = tool
}

// Names lists the registered tools in registration order.
func (r *Runner) Names() []string {
	return append([]string(nil), r.order...)
}

// Run executes the named tool with the given arguments and returns its
// stdout lines.
func (r *Runner) Run(ctx context.Context, name string, args []string, info *domain.ExecutionInfo) ([]string, error) {
	tool, ok := r.registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	if tool.Admin && !info.IsAdmin() {
		return nil, domain.NewCommandError(domain.ErrPermissionDenied, "%s requires admin rights", name)
	}

	timeout := r.timeout
	if tool.Timeout > 0 {
		timeout = tool.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, tool.Command, tool.Args...)
	cmd.Dir = r.baseDir
	// Children of the program may keep stdout open after it is killed.
	cmd.WaitDelay = time.Second
	cmd.Env = append(cmd.Environ(), environment(tool, args, info)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("Process finished",
		"tool", name,
		"duration", time.Since(start),
		"err", err,
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, domain.NewCommandError(ErrProcessFailed, "%s timed out after %s", name, timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, domain.NewCommandError(ErrProcessFailed, "%s failed: %s", name, msg)
	}

	out := strings.TrimRight(stdout.String(), "\r\n")
	if out == "" {
		return []string{}, nil
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

func environment(tool ProcessConfig, args []string, info *domain.ExecutionInfo) []string {
	env := make([]string, 0, len(tool.Environment)+len(args)+4)
	for k, v := range tool.Environment {
		env = append(env, k+"="+v)
	}
	env = append(env,
		EnvPrefix+"ARGC="+strconv.Itoa(len(args)),
		EnvPrefix+"ARGS="+strings.Join(args, " "),
		EnvPrefix+"SENDER="+info.SenderID(),
	)
	if info != nil && info.Session != nil {
		env = append(env, EnvPrefix+"SESSION="+info.Session.ID)
	}
	for i, arg := range args {
		env = append(env, EnvPrefix+"ARG_"+strconv.Itoa(i+1)+"="+arg)
	}
	return env
}

// Command wraps the named tool as a list command taking any number of
// arguments.
func (r *Runner) Command(name string) (*command.Function, error) {
	tool, ok := r.registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	desc := tool.Description
	if desc == "" {
		desc = "Runs " + tool.Command + "."
	}
	return command.NewList(name, func(c *command.Call) ([]string, error) {
		info := c.Info()
		return r.Run(info.Context(), name, c.Rest("args"), info)
	}).Context().Rest("args").Require(0).Describe(desc), nil
}

// RegisterCommands adds every registered tool to root.
func (r *Runner) RegisterCommands(root *command.Root) error {
	for _, name := range r.order {
		fn, err := r.Command(name)
		if err != nil {
			return err
		}
		if err := root.Add(name, fn); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", name, err)
		}
	}
	return nil
}
