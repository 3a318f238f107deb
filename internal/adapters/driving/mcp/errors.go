// Package mcp provides an MCP (Model Context Protocol) server adapter for glazed.
// It lets AI assistants browse instrument sessions, runs and their datasets.
package mcp

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")
