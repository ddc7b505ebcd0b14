package mcp

import (
	"context"
	"log/slog"

	"github.com/eward/timekeep/internal/domain/dialog"
	"github.com/eward/timekeep/internal/domain/tracker"
	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// TrackerService defines the tracker operations needed by MCP.
type TrackerService interface {
	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
	Start(ctx context.Context, name string) error
	Stop(ctx context.Context, name string) (*tracker.StopResult, error)
	List(ctx context.Context) ([]string, error)
	Detail(ctx context.Context, name string) (*tracker.DetailResult, error)
	Export(ctx context.Context) (*tracker.ExportResult, error)
}

// Services contains the domain services needed by MCP.
type Services struct {
	Tracker TrackerService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Pending  *dialog.Registry
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools, resources
// and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "timekeep",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	pending := cfg.Pending
	if pending == nil {
		pending = dialog.NewRegistry(0)
	}
	h := &handler{
		tracker: cfg.Services.Tracker,
		pending: pending,
		// Stdio transports carry no session ID; all turns of such a
		// connection share one generated conversation.
		fallbackSession: uuid.NewString(),
	}
	h.register(server)

	return server
}
