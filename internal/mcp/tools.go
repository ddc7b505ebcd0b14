package mcp

import (
	"context"
	"fmt"

	"github.com/eward/timekeep/internal/domain/dialog"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// handler implements the tool surface over the tracker service and the
// pending-operation registry.
type handler struct {
	tracker         TrackerService
	pending         *dialog.Registry
	fallbackSession string
}

func (h *handler) register(server *sdkmcp.Server) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project to track time on. Without a name, asks for one and waits for specify_project.",
	}, h.createProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project and all its recorded time. Without a name, asks for one and waits for specify_project.",
	}, h.deleteProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "specify_project",
		Description: "Supply the project name the previous create_project or delete_project asked for.",
	}, h.specifyProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_tracking",
		Description: "Start a tracking session on a project.",
	}, h.startTracking)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "stop_tracking",
		Description: "Stop the open session and report its duration plus today's total for the project.",
	}, h.stopTracking)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all project names in creation order.",
	}, h.listProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_details",
		Description: "Report the time tracked on a project over the last seven days, today included.",
	}, h.projectDetails)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_projects",
		Description: "Write one CSV file per project with its total and per-day times.",
	}, h.exportProjects)
}

// conversation returns the dialog key for a request: the transport session
// when it has one, otherwise the server-lifetime fallback conversation.
func (h *handler) conversation(req *sdkmcp.CallToolRequest) string {
	if id := safeSessionID(req); id != "" {
		return id
	}
	return h.fallbackSession
}

func (h *handler) createProject(ctx context.Context, req *sdkmcp.CallToolRequest, args ProjectParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
	conv := h.conversation(req)
	if args.Name == "" {
		h.pending.Set(conv, dialog.PendingCreate)
		return nil, ProjectResult{
			Status:  "needs_name",
			Message: "What would you like to call the new project?",
		}, nil
	}
	h.pending.Clear(conv)
	if err := h.tracker.Create(ctx, args.Name); err != nil {
		return nil, ProjectResult{}, toolError(err)
	}
	return nil, ProjectResult{
		Status:  "created",
		Project: args.Name,
		Message: fmt.Sprintf("Created project %s.", args.Name),
	}, nil
}

func (h *handler) deleteProject(ctx context.Context, req *sdkmcp.CallToolRequest, args ProjectParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
	conv := h.conversation(req)
	if args.Name == "" {
		h.pending.Set(conv, dialog.PendingDelete)
		return nil, ProjectResult{
			Status:  "needs_name",
			Message: "Which project would you like to delete?",
		}, nil
	}
	h.pending.Clear(conv)
	if err := h.tracker.Delete(ctx, args.Name); err != nil {
		return nil, ProjectResult{}, toolError(err)
	}
	return nil, ProjectResult{
		Status:  "deleted",
		Project: args.Name,
		Message: fmt.Sprintf("Deleted project %s.", args.Name),
	}, nil
}

func (h *handler) specifyProject(ctx context.Context, req *sdkmcp.CallToolRequest, args NameParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
	switch h.pending.Take(h.conversation(req)) {
	case dialog.PendingCreate:
		if err := h.tracker.Create(ctx, args.Name); err != nil {
			return nil, ProjectResult{}, toolError(err)
		}
		return nil, ProjectResult{
			Status:  "created",
			Project: args.Name,
			Message: fmt.Sprintf("Created project %s.", args.Name),
		}, nil
	case dialog.PendingDelete:
		if err := h.tracker.Delete(ctx, args.Name); err != nil {
			return nil, ProjectResult{}, toolError(err)
		}
		return nil, ProjectResult{
			Status:  "deleted",
			Project: args.Name,
			Message: fmt.Sprintf("Deleted project %s.", args.Name),
		}, nil
	default:
		return nil, ProjectResult{}, toolError(ErrNoPendingOperation)
	}
}

func (h *handler) startTracking(ctx context.Context, req *sdkmcp.CallToolRequest, args NameParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
	if err := h.tracker.Start(ctx, args.Name); err != nil {
		return nil, ProjectResult{}, toolError(err)
	}
	return nil, ProjectResult{
		Status:  "tracking",
		Project: args.Name,
		Message: fmt.Sprintf("Started tracking %s.", args.Name),
	}, nil
}

func (h *handler) stopTracking(ctx context.Context, req *sdkmcp.CallToolRequest, args NameParams) (*sdkmcp.CallToolResult, StopResult, error) {
	res, err := h.tracker.Stop(ctx, args.Name)
	if err != nil {
		return nil, StopResult{}, toolError(err)
	}
	return nil, StopResult{
		Status:         "stopped",
		Project:        args.Name,
		Session:        res.Session,
		SessionSeconds: res.SessionSeconds,
		Today:          res.Today,
		TodaySeconds:   res.TodaySeconds,
		Message: fmt.Sprintf("Stopped %s. This session lasted %s, for a total of %s today.",
			args.Name, orUnderASecond(res.Session), orUnderASecond(res.Today)),
	}, nil
}

func (h *handler) listProjects(ctx context.Context, req *sdkmcp.CallToolRequest, args EmptyParams) (*sdkmcp.CallToolResult, ListResult, error) {
	names, err := h.tracker.List(ctx)
	if err != nil {
		return nil, ListResult{}, toolError(err)
	}
	msg := "You have no projects yet."
	if len(names) > 0 {
		msg = fmt.Sprintf("You have %d projects.", len(names))
		if len(names) == 1 {
			msg = "You have 1 project."
		}
	}
	return nil, ListResult{Projects: names, Message: msg}, nil
}

func (h *handler) projectDetails(ctx context.Context, req *sdkmcp.CallToolRequest, args NameParams) (*sdkmcp.CallToolResult, DetailResult, error) {
	res, err := h.tracker.Detail(ctx, args.Name)
	if err != nil {
		return nil, DetailResult{}, toolError(err)
	}
	return nil, DetailResult{
		Project:       args.Name,
		Window:        res.Window,
		WindowSeconds: res.WindowSeconds,
		Message: fmt.Sprintf("You spent %s on %s over the last week.",
			orUnderASecond(res.Window), args.Name),
	}, nil
}

func (h *handler) exportProjects(ctx context.Context, req *sdkmcp.CallToolRequest, args EmptyParams) (*sdkmcp.CallToolResult, ExportResult, error) {
	res, err := h.tracker.Export(ctx)
	if err != nil {
		return nil, ExportResult{}, toolError(err)
	}
	return nil, ExportResult{
		Projects: res.Projects,
		Dest:     res.Dest,
		Message:  fmt.Sprintf("Exported %d projects to %s.", res.Projects, res.Dest),
	}, nil
}

// orUnderASecond keeps spoken messages whole when a formatted duration is
// empty, which happens for durations under one second.
func orUnderASecond(formatted string) string {
	if formatted == "" {
		return "under a second"
	}
	return formatted
}
