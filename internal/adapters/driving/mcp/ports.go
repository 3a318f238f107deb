package mcp

import (
	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Sessions resolves sessions, runs and datasets.
	Sessions driving.SessionService

	// Assets produces download links. Optional: without it no links are
	// reported.
	Assets driving.AssetService

	// Credential is forwarded on every remote call unless a tool call
	// supplies its own.
	Credential domain.Credential
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Sessions == nil {
		return ErrMissingSessionService
	}
	return nil
}
