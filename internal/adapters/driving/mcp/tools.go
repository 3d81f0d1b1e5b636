package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

// RefreshInput is the input schema for the refresh_display tool.
type RefreshInput struct {
	Wait bool `json:"wait,omitempty" jsonschema:"run the cycle now and wait for it instead of waking the refresh loop"`
}

// RefreshOutput is the output schema for the refresh_display tool.
type RefreshOutput struct {
	Triggered bool       `json:"triggered"`
	Run       *RunOutput `json:"run,omitempty"`
}

// RunOutput describes one recorded run.
type RunOutput struct {
	ID          string  `json:"id"`
	Activity    string  `json:"activity"`
	Mode        string  `json:"mode,omitempty"`
	DemotedFrom string  `json:"demoted_from,omitempty"`
	Page        int     `json:"page,omitempty"`
	StartedAt   string  `json:"started_at"`
	Seconds     float64 `json:"seconds"`
	Success     bool    `json:"success"`
	Error       string  `json:"error,omitempty"`
}

// StatusInput is the (empty) input schema for display_status and quiet_status.
type StatusInput struct{}

// StatusOutput is the output schema for the display_status tool.
type StatusOutput struct {
	Now            string      `json:"now"`
	Quiet          bool        `json:"quiet"`
	ConfiguredMode string      `json:"configured_mode"`
	SelectedMode   string      `json:"selected_mode"`
	CurrentPage    int         `json:"current_page"`
	RunningTasks   []string    `json:"running_tasks"`
	Recent         []RunOutput `json:"recent"`
}

// QuietOutput is the output schema for the quiet_status tool.
type QuietOutput struct {
	Quiet bool `json:"quiet"`
	// SecondsUntilBoundary counts to the window end while quiet and to the
	// next start otherwise.
	SecondsUntilBoundary int    `json:"seconds_until_boundary"`
	NextBoundary         string `json:"next_boundary,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_display",
		Description: "Redraw the panel now instead of waiting for the next scheduled refresh. Nothing is drawn during quiet hours",
	}, s.handleRefresh)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "display_status",
		Description: "Report the selected mode, quiet state, story page and recent refreshes",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "quiet_status",
		Description: "Report whether quiet hours are active and when they change",
	}, s.handleQuiet)
}

func (s *Server) handleRefresh(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RefreshInput,
) (*mcp.CallToolResult, RefreshOutput, error) {
	if !input.Wait {
		s.ports.Orchestrator.Trigger()
		return nil, RefreshOutput{Triggered: true}, nil
	}

	rec, err := s.ports.Orchestrator.RunCycle(ctx)
	out := RefreshOutput{}
	if rec != nil {
		run := toRunOutput(*rec)
		out.Run = &run
	}
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	st, err := s.ports.Status.Status(ctx)
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, toStatusOutput(st), nil
}

func (s *Server) handleQuiet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, QuietOutput, error) {
	st, err := s.ports.Status.Status(ctx)
	if err != nil {
		return nil, QuietOutput{}, err
	}
	out := QuietOutput{Quiet: st.Quiet, SecondsUntilBoundary: st.SecondsUntilBoundary}
	if st.SecondsUntilBoundary > 0 {
		out.NextBoundary = st.Now.Add(time.Duration(st.SecondsUntilBoundary) * time.Second).Format(time.RFC3339)
	}
	return nil, out, nil
}

func toStatusOutput(st *domain.Status) StatusOutput {
	out := StatusOutput{
		Now:            st.Now.Format(time.RFC3339),
		Quiet:          st.Quiet,
		ConfiguredMode: st.ConfiguredMode,
		SelectedMode:   st.SelectedMode,
		CurrentPage:    st.CurrentPage,
		RunningTasks:   st.RunningTasks,
		Recent:         make([]RunOutput, len(st.Recent)),
	}
	if out.RunningTasks == nil {
		out.RunningTasks = []string{}
	}
	for i := range st.Recent {
		out.Recent[i] = toRunOutput(st.Recent[i])
	}
	return out
}

func toRunOutput(r domain.RunRecord) RunOutput {
	return RunOutput{
		ID:          r.ID,
		Activity:    r.Activity,
		Mode:        r.Mode,
		DemotedFrom: r.DemotedFrom,
		Page:        r.Page,
		StartedAt:   r.StartedAt.Format(time.RFC3339),
		Seconds:     r.Duration().Seconds(),
		Success:     r.Success,
		Error:       r.Error,
	}
}
