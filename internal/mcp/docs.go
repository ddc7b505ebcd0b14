package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `timekeep tracks time spent on named projects.

Typical flow: create_project("writing"), then start_tracking and
stop_tracking around work sessions. stop_tracking answers with both the
session's duration and the running total for today, rendered for speech.
list_projects enumerates names, project_details gives a rolling seven-day
total, export_projects writes one CSV file per project.

create_project and delete_project may be called without a name; the server
then asks for one and parks the operation. Answer with specify_project in
the same conversation to finish it.`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "timekeep://docs/usage",
		Name:        "usage",
		Title:       "Using timekeep",
		Description: "How the time-tracking tools fit together",
		Content: `# Using timekeep

## Tracking

- A project has one open session at most. start_tracking on an active
  project reports ALREADY_TRACKING and leaves the open session alone.
- stop_tracking credits the whole session to the calendar day the stop
  lands on. Sessions are never split across midnight.
- Durations are spoken-friendly: zero units are dropped, "1 minute", not
  "1 minutes". A session under one second renders as an empty duration.

## Names

- Project names are case-sensitive and unique.
- create_project and delete_project without a name park the operation and
  ask for one; finish with specify_project. The pending operation expires
  after a couple of minutes.

## Export

- export_projects writes <name>.csv per project: the project name, a
  "total time" row, a day/time header, then one row per tracked day in
  first-tracked order. Re-exporting overwrites the files.`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
