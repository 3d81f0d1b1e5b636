// Package mcp provides an MCP (Model Context Protocol) server adapter for inkpanel.
// It lets assistants and scripts trigger refreshes and inspect the device.
package mcp

import "errors"

// ErrMissingOrchestrator is returned when the orchestrator is not provided.
var ErrMissingOrchestrator = errors.New("mcp: orchestrator is required")

// ErrMissingStatusService is returned when the status service is not provided.
var ErrMissingStatusService = errors.New("mcp: status service is required")
