package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/botcmd/internal/logging"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/aretw0/botcmd/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DefaultTypes is what /execute asks for when the request names none.
var DefaultTypes = []domain.ResultType{domain.ResultString, domain.ResultEnumerable, domain.ResultEmpty}

// MaxBodySize bounds /execute request bodies.
const MaxBodySize = 64 << 10

// ExecuteRequest is the body of POST /execute.
type ExecuteRequest struct {
	Command    string   `json:"command"`
	SessionID  string   `json:"session_id,omitempty"`
	SenderID   string   `json:"sender_id,omitempty"`
	SenderName string   `json:"sender_name,omitempty"`
	Types      []string `json:"types,omitempty"`
}

// ExecuteResponse is the reply of POST /execute.
type ExecuteResponse struct {
	SessionID string            `json:"session_id"`
	Type      domain.ResultType `json:"type"`
	Text      string            `json:"text,omitempty"`
	Lines     []string          `json:"lines,omitempty"`
	// Changes is what the command changed in the session.
	Changes *domain.SessionDiff `json:"changes,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Server exposes a session dispatcher over HTTP.
type Server struct {
	Dispatcher *session.Dispatcher
	Streams    *StreamManager

	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h under /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a Server.
func NewServer(d *session.Dispatcher, opts ...Option) *Server {
	s := &Server{
		Dispatcher: d,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates the HTTP handler for the dispatcher.
func NewHandler(d *session.Dispatcher, opts ...Option) http.Handler {
	return NewServer(d, opts...).Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(RawSpec())
	})
	r.Get("/health", s.GetHealth)
	r.Get("/commands", s.ListCommands)
	r.Post("/execute", s.Execute)
	r.Get("/sessions/{sessionID}", s.GetSession)
	r.Delete("/sessions/{sessionID}", s.DeleteSession)
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Execute handles the POST /execute request.
func (s *Server) Execute(w http.ResponseWriter, r *http.Request) {
	var raw any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&raw); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := validateSchema("ExecuteRequest", raw); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	// Re-encoding the validated value is the simplest way into the struct.
	var body ExecuteRequest
	data, _ := json.Marshal(raw)
	if err := json.Unmarshal(data, &body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	types := DefaultTypes
	if len(body.Types) > 0 {
		parsed, err := domain.ParseResultTypes(body.Types)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		types = parsed
	}

	sessionID := body.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	senderID := body.SenderID
	if senderID == "" {
		senderID = sessionID
	}

	msg := &domain.Message{
		SenderID:   senderID,
		SenderName: body.SenderName,
		Channel:    "http",
		Text:       body.Command,
	}
	res, diff, err := s.Dispatcher.DispatchDiff(r.Context(), sessionID, msg, types...)
	if err != nil {
		if payload, mErr := json.Marshal(ErrorResponse{Error: err.Error(), Kind: errorKind(err)}); mErr == nil {
			s.Streams.Broadcast(sessionID, Event{Name: EventError, Data: string(payload)})
		}
		s.writeError(w, statusFor(err), err)
		return
	}

	resp := ExecuteResponse{SessionID: sessionID, Type: res.Type(), Changes: diff}
	switch res.Type() {
	case domain.ResultString:
		resp.Text = res.String()
	case domain.ResultEnumerable:
		lines, err := domain.Lines(res)
		if err != nil {
			s.writeError(w, statusFor(err), err)
			return
		}
		resp.Lines = lines
		resp.Text = strings.Join(lines, "\n")
	case domain.ResultCommand:
		resp.Text = res.String()
	}

	if payload, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(sessionID, Event{Name: EventReply, Data: string(payload)})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ListCommands handles the GET /commands request.
func (s *Server) ListCommands(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"commands": s.Dispatcher.Commands()})
}

// GetSession handles the GET /sessions/{sessionID} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Dispatcher.Sessions().Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

// DeleteSession handles the DELETE /sessions/{sessionID} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Dispatcher.Sessions().Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SubscribeEvents handles the GET /events request (SSE). Every reply of
// the session is pushed as a "reply" event, every failure as an "error"
// event.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("session_id is required"))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Subscribing to Session Replies", "session_id", sessionID)
	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", sessionID)
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, ev.Data)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	} else {
		s.logger.Debug("request rejected", "status", status, "err", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: errorKind(err)})
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{domain.ErrMalformedTree, "malformed_tree"},
	{domain.ErrAmbiguousCommand, "ambiguous_command"},
	{domain.ErrUnknownCommand, "unknown_command"},
	{domain.ErrExpectedName, "expected_name"},
	{domain.ErrNotEnoughArguments, "not_enough_arguments"},
	{domain.ErrTypeConversion, "type_conversion"},
	{domain.ErrNoApplicableResult, "no_applicable_result"},
	{domain.ErrIndexOutOfRange, "index_out_of_range"},
	{domain.ErrUnexpectedResult, "unexpected_result"},
	{domain.ErrCommandNotFound, "command_not_found"},
	{domain.ErrPermissionDenied, "permission_denied"},
	{domain.ErrSessionNotFound, "session_not_found"},
}

func errorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}

func statusFor(err error) int {
	var cmdErr *domain.CommandError
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.As(err, &cmdErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
