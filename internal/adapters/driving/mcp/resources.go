package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for inkpanel resources.
	uriScheme = "inkpanel://"

	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Current device status",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{activity}",
		Name:        "history",
		Description: "Recent runs of an activity (refresh, pagination or all)",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	st, err := s.ports.Status.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading status: %w", err)
	}
	return jsonResult(req.Params.URI, toStatusOutput(st))
}

func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	activity, ok := extractActivity(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	runs, err := s.ports.History.Recent(ctx, activity, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	out := make([]RunOutput, len(runs))
	for i := range runs {
		out[i] = toRunOutput(runs[i])
	}
	return jsonResult(req.Params.URI, out)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractActivity parses inkpanel://history/{activity}. "all" selects
// every activity and maps to the empty filter.
func extractActivity(uri string) (string, bool) {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}
	activity := strings.TrimPrefix(uri, prefix)
	switch activity {
	case "all":
		return "", true
	case "", "/":
		return "", false
	}
	if strings.Contains(activity, "/") {
		return "", false
	}
	return activity, true
}
