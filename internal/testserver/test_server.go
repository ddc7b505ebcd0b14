// Package testserver wires a full timekeep server over in-memory MCP
// transports for tests.
package testserver

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/eward/timekeep/internal/domain/dialog"
	"github.com/eward/timekeep/internal/domain/tracker"
	"github.com/eward/timekeep/internal/export"
	"github.com/eward/timekeep/internal/jsonfile"
	"github.com/eward/timekeep/internal/mcp"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// TestServer is a connected in-process server plus the paths it writes to.
type TestServer struct {
	Session   *sdkmcp.ClientSession
	StorePath string
	ExportDir string
}

// Option adjusts server construction.
type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock pins the tracker clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// New builds a server backed by a JSON file store in a temp directory and
// returns a connected client session.
func New(t *testing.T, opts ...Option) *TestServer {
	t.Helper()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	storePath := filepath.Join(t.TempDir(), "projects.json")
	exportDir := filepath.Join(t.TempDir(), "projects_csv")

	store, err := jsonfile.New(storePath)
	require.NoError(t, err)

	var trackerOpts []tracker.Option
	if o.clock != nil {
		trackerOpts = append(trackerOpts, tracker.WithClock(o.clock))
	}
	svc := tracker.NewService(store, export.NewCSV(exportDir), nil, trackerOpts...)

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{Tracker: svc},
		Pending:  dialog.NewRegistry(0),
	})

	ctx, cancel := context.WithCancel(context.Background())

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = clientSession.Close()
		_ = serverSession.Close()
		cancel()
	})

	return &TestServer{
		Session:   clientSession,
		StorePath: storePath,
		ExportDir: exportDir,
	}
}

// CallTool invokes a tool and returns the JSON payload of its text content,
// failing the test on a tool error.
func (ts *TestServer) CallTool(t *testing.T, name string, args map[string]any) []byte {
	t.Helper()

	result := ts.call(t, name, args)
	require.False(t, result.IsError, "tool %s returned error: %s", name, textOf(result))
	return []byte(textOf(result))
}

// CallToolError invokes a tool expecting a tool error and returns the error
// text.
func (ts *TestServer) CallToolError(t *testing.T, name string, args map[string]any) string {
	t.Helper()

	result := ts.call(t, name, args)
	require.True(t, result.IsError, "tool %s unexpectedly succeeded", name)
	return textOf(result)
}

func (ts *TestServer) call(t *testing.T, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ts.Session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	return result
}

func textOf(result *sdkmcp.CallToolResult) string {
	for _, content := range result.Content {
		if textContent, ok := content.(*sdkmcp.TextContent); ok {
			return textContent.Text
		}
	}
	return ""
}
