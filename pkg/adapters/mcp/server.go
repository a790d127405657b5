package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/botcmd"
	"github.com/aretw0/botcmd/internal/logging"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/aretw0/botcmd/pkg/session"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CommandsURI is the resource listing the registered commands.
const CommandsURI = "botcmd://commands"

// DefaultTypes is what execute_command asks for.
var DefaultTypes = []domain.ResultType{domain.ResultString, domain.ResultEnumerable, domain.ResultEmpty}

// Server exposes a session dispatcher as an MCP Server, so agents can run
// bot commands as tools.
type Server struct {
	dispatcher *session.Dispatcher
	mcpServer  *server.MCPServer
	logger     *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(d *session.Dispatcher, opts ...Option) *Server {
	s := &Server{
		dispatcher: d,
		mcpServer:  server.NewMCPServer("botcmd-mcp", strings.TrimSpace(botcmd.Version)),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it
// gracefully when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("execute_command",
		mcp.WithDescription("Run a chat bot command line, e.g. '!help' or '!repeat 3 hi'. Returns the reply text."),
		mcp.WithString("command", mcp.Required(), mcp.Description("The command line to run")),
		mcp.WithString("session_id", mcp.Description("Session to run in; a new one is created when omitted")),
		mcp.WithString("sender_id", mcp.Description("Caller identity used for admin checks (defaults to the session id)")),
	), s.HandleExecute)

	s.mcpServer.AddTool(mcp.NewTool("list_commands",
		mcp.WithDescription("List the top-level bot commands."),
	), s.HandleListCommands)
}

// HandleExecute runs the execute_command tool.
func (s *Server) HandleExecute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	line := request.GetString("command", "")
	if strings.TrimSpace(line) == "" {
		return mcp.NewToolResultError("command is required"), nil
	}
	sessionID := request.GetString("session_id", "")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	senderID := request.GetString("sender_id", sessionID)

	msg := &domain.Message{SenderID: senderID, Channel: "mcp", Text: line}
	res, err := s.dispatcher.Dispatch(ctx, sessionID, msg, DefaultTypes...)
	if err != nil {
		var cmdErr *domain.CommandError
		if errors.As(err, &cmdErr) {
			return mcp.NewToolResultError(cmdErr.Message), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("command failed: %v", err)), nil
	}

	lines, err := domain.Lines(res)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

// HandleListCommands runs the list_commands tool.
func (s *Server) HandleListCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.dispatcher.Commands())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CommandsURI, "Registered Commands",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.dispatcher.Commands())
		if err != nil {
			return nil, fmt.Errorf("failed to list commands: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CommandsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
