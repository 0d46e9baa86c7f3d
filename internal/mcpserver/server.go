// Package mcpserver exposes the dispatcher as MCP tools over stdio or streamable HTTP.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tasnim.dev/cwlogs-mcp/internal/catalog"
	"tasnim.dev/cwlogs-mcp/internal/config"
	"tasnim.dev/cwlogs-mcp/internal/constants"
	"tasnim.dev/cwlogs-mcp/internal/dispatch"
)

// JSON-RPC error codes used for dispatch failures.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Dispatcher is the core the server forwards tool calls to.
type Dispatcher interface {
	Catalog() []catalog.Operation
	Dispatch(ctx context.Context, name string, args dispatch.Args) (*dispatch.Response, error)
}

// Server hosts the MCP server.
type Server struct {
	mcpServer  *mcp.Server
	dispatcher Dispatcher
	logger     *slog.Logger
}

// New registers one tool per catalog operation.
func New(d Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		mcpServer:  mcp.NewServer(&mcp.Implementation{Name: constants.ServerName, Version: constants.ServerVersion}, nil),
		dispatcher: d,
		logger:     logger,
	}
	for _, op := range d.Catalog() {
		s.mcpServer.AddTool(toolFor(op), s.handler(op.Name))
	}
	return s
}

func toolFor(op catalog.Operation) *mcp.Tool {
	openWorld := true
	destructive := false
	return &mcp.Tool{
		Name:        op.Name,
		Description: op.Description,
		InputSchema: op.Schema.JSONSchema(),
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			IdempotentHint:  true,
			DestructiveHint: &destructive,
			OpenWorldHint:   &openWorld,
		},
	}
}

func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		args, err := dispatch.ParseArgs(raw)
		if err != nil {
			s.logger.WarnContext(ctx, "tool call rejected", "operation", name, "error", err)
			return nil, &jsonrpc.Error{Code: codeInvalidParams, Message: err.Error()}
		}

		start := time.Now()
		resp, err := s.dispatcher.Dispatch(ctx, name, args)
		if err != nil {
			s.logger.WarnContext(ctx, "tool call failed",
				"operation", name,
				"kind", dispatch.KindOf(err),
				"error", err,
				"duration", time.Since(start),
			)
			return nil, wireError(err)
		}
		s.logger.DebugContext(ctx, "tool call", "operation", name, "duration", time.Since(start))
		return callToolResult(resp), nil
	}
}

func callToolResult(resp *dispatch.Response) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(resp.Content))
	for _, c := range resp.Content {
		content = append(content, &mcp.TextContent{Text: c.Text})
	}
	return &mcp.CallToolResult{Content: content}
}

// wireError maps a dispatch error to a JSON-RPC error. The envelope travels in Data.
func wireError(err error) *jsonrpc.Error {
	var de *dispatch.Error
	if !errors.As(err, &de) {
		return &jsonrpc.Error{Code: codeInternalError, Message: err.Error()}
	}
	code := int64(codeInternalError)
	switch de.Kind {
	case dispatch.UnknownOperation:
		code = codeMethodNotFound
	case dispatch.InvalidArguments:
		code = codeInvalidParams
	}
	wire := &jsonrpc.Error{Code: code, Message: de.Message}
	if data, mErr := json.Marshal(de); mErr == nil {
		wire.Data = data
	}
	return wire
}

// Run serves on the configured transport and blocks until ctx is done.
func (s *Server) Run(ctx context.Context, transport, httpAddr string) error {
	switch transport {
	case "", config.TransportStdio:
		return s.Serve(ctx, &mcp.StdioTransport{})
	case config.TransportHTTP:
		return s.ListenAndServe(ctx, httpAddr)
	default:
		return fmt.Errorf("transport %q is not supported", transport)
	}
}

// Serve runs the server over the given transport.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	s.logger.InfoContext(ctx, "serving MCP", "transport", fmt.Sprintf("%T", transport))
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// Handler returns the streamable HTTP handler for this server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}

// ListenAndServe serves the streamable HTTP handler on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "serving MCP", "transport", "http", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP over HTTP: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	}
}
