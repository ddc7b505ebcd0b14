package mcp

// ProjectParams names a project. Name is optional for create_project and
// delete_project, which then ask for it and park the operation.
type ProjectParams struct {
	Name string `json:"name,omitempty"`
}

// NameParams supplies the project name for a required-name tool.
type NameParams struct {
	Name string `json:"name"`
}

// EmptyParams is for tools with no arguments.
type EmptyParams struct{}

// ProjectResult confirms a command against one project.
type ProjectResult struct {
	Status  string `json:"status"`
	Project string `json:"project,omitempty"`
	Message string `json:"message"`
}

// StopResult reports a closed session: the session's own duration and the
// day's accumulated total, both as raw seconds and rendered for speech.
type StopResult struct {
	Status         string  `json:"status"`
	Project        string  `json:"project"`
	Session        string  `json:"session"`
	SessionSeconds float64 `json:"session_seconds"`
	Today          string  `json:"today"`
	TodaySeconds   float64 `json:"today_seconds"`
	Message        string  `json:"message"`
}

// ListResult holds all project names in insertion order.
type ListResult struct {
	Projects []string `json:"projects"`
	Message  string   `json:"message"`
}

// DetailResult reports a project's rolling seven-day total.
type DetailResult struct {
	Project       string  `json:"project"`
	Window        string  `json:"window"`
	WindowSeconds float64 `json:"window_seconds"`
	Message       string  `json:"message"`
}

// ExportResult reports how many projects were exported and where.
type ExportResult struct {
	Projects int    `json:"projects"`
	Dest     string `json:"dest"`
	Message  string `json:"message"`
}
