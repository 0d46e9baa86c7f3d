package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasnim.dev/cwlogs-mcp/internal/aws/logs"
	"tasnim.dev/cwlogs-mcp/internal/dispatch"
	"tasnim.dev/cwlogs-mcp/internal/logging"
)

type fakeBackend struct {
	groups    []logs.LogGroup
	lastGroup logs.GroupsQuery
	err       error
}

func (b *fakeBackend) ListLogGroups(_ context.Context, q logs.GroupsQuery) ([]logs.LogGroup, error) {
	b.lastGroup = q
	return b.groups, b.err
}

func (b *fakeBackend) ListLogStreams(context.Context, logs.StreamsQuery) ([]logs.LogStream, error) {
	return nil, b.err
}

func (b *fakeBackend) GetLogEvents(context.Context, logs.EventsQuery) ([]logs.LogEvent, error) {
	return nil, b.err
}

func connect(t *testing.T, backend dispatch.Backend, logBuf *bytes.Buffer) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := logging.New(logBuf, slog.LevelDebug)
	server := New(dispatch.New(backend), logger)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	})
	return session
}

func TestListTools(t *testing.T) {
	session := connect(t, &fakeBackend{}, &bytes.Buffer{})

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		require.NotNil(t, tool.Annotations, tool.Name)
		assert.True(t, tool.Annotations.ReadOnlyHint, tool.Name)
		assert.NotNil(t, tool.InputSchema, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_log_groups", "list_log_streams", "get_log_events"}, names)
}

func TestCallTool_Success(t *testing.T) {
	backend := &fakeBackend{groups: []logs.LogGroup{{LogGroupName: awssdk.String("/ecs/web"), StoredBytes: awssdk.Int64(42)}}}
	session := connect(t, backend, &bytes.Buffer{})

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_log_groups",
		Arguments: map[string]any{"prefix": "/ecs/"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "got %T", res.Content[0])

	var groups []map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "/ecs/web", groups[0]["logGroupName"])
	assert.Equal(t, logs.GroupsQuery{Prefix: "/ecs/", Limit: 10}, backend.lastGroup)
}

func TestCallTool_EmptyResult(t *testing.T) {
	session := connect(t, &fakeBackend{}, &bytes.Buffer{})

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_log_events",
		Arguments: map[string]any{"logGroupName": "/ecs/web", "logStreamName": "s"},
	})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "[]", res.Content[0].(*mcp.TextContent).Text)
}

func TestCallTool_InvalidArguments(t *testing.T) {
	var logBuf bytes.Buffer
	session := connect(t, &fakeBackend{}, &logBuf)

	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_log_streams",
		Arguments: map[string]any{"limit": 51},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logGroupName")
	assert.Contains(t, logBuf.String(), "InvalidArguments")
}

func TestCallTool_BackendError(t *testing.T) {
	session := connect(t, &fakeBackend{err: errors.New("ThrottlingException: Rate exceeded")}, &bytes.Buffer{})

	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_log_groups",
		Arguments: map[string]any{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ThrottlingException")
}

func TestCallTool_UnknownTool(t *testing.T) {
	session := connect(t, &fakeBackend{}, &bytes.Buffer{})

	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "delete_log_group",
		Arguments: map[string]any{},
	})
	require.Error(t, err)
}

func TestWireError(t *testing.T) {
	d := dispatch.New(&fakeBackend{err: errors.New("AccessDeniedException")})
	ctx := context.Background()

	_, err := d.Dispatch(ctx, "delete_log_group", nil)
	assert.Equal(t, int64(codeMethodNotFound), wireError(err).Code)

	_, err = d.Dispatch(ctx, "list_log_streams", dispatch.Args{})
	wire := wireError(err)
	assert.Equal(t, int64(codeInvalidParams), wire.Code)
	assert.Contains(t, wire.Message, "logGroupName")

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(wire.Data, &envelope))
	assert.Equal(t, "InvalidArguments", envelope["code"])

	_, err = d.Dispatch(ctx, "list_log_groups", dispatch.Args{})
	wire = wireError(err)
	assert.Equal(t, int64(codeInternalError), wire.Code)
	assert.Equal(t, "AccessDeniedException", wire.Message)

	assert.Equal(t, int64(codeInternalError), wireError(errors.New("other")).Code)
}

func TestRun_UnsupportedTransport(t *testing.T) {
	server := New(dispatch.New(&fakeBackend{}), logging.New(&bytes.Buffer{}, slog.LevelInfo))
	err := server.Run(context.Background(), "websocket", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	server := New(dispatch.New(&fakeBackend{}), logging.New(&bytes.Buffer{}, slog.LevelInfo))
	_, isHandler := any(server).(http.Handler)
	assert.False(t, isHandler, "Server must not look like an http.Handler; use Handler()")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
