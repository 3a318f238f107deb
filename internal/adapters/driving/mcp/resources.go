package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for glazed resources.
	uriScheme = "glazed://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "service",
		Name:        "service",
		Description: "Description of the data service",
		MIMEType:    mimeJSON,
	}, s.handleServiceResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{session}/runs",
		Name:        "session-runs",
		Description: "Runs recorded in an instrument session",
		MIMEType:    mimeJSON,
	}, s.handleSessionRunsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "runs/{runId}/data",
		Name:        "run-data",
		Description: "Array and table datasets of a run",
		MIMEType:    mimeJSON,
	}, s.handleRunDataResource)
}

// handleServiceResource returns the app metadata of the data service.
func (s *Server) handleServiceResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	meta, err := s.ports.Sessions.AppMetadata(ctx, s.ports.Credential)
	if err != nil {
		return nil, fmt.Errorf("fetching app metadata: %w", err)
	}
	return jsonContents(req.Params.URI, meta)
}

// handleSessionRunsResource returns the runs of a session.
func (s *Server) handleSessionRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	session := extractSegment(req.Params.URI, "sessions/", "/runs")
	if session == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	runs, err := s.ports.Sessions.Runs(ctx, session, s.ports.Credential)
	if err != nil {
		return nil, fmt.Errorf("listing runs of %s: %w", session, err)
	}

	infos := make([]RunOutput, len(runs))
	for i := range runs {
		infos[i] = toRunOutput(&runs[i])
	}
	return jsonContents(req.Params.URI, infos)
}

// handleRunDataResource returns the datasets of a run.
func (s *Server) handleRunDataResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	runID := extractSegment(req.Params.URI, "runs/", "/data")
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := s.ports.Sessions.RunData(ctx, runID, s.ports.Credential)
	if err != nil {
		return nil, fmt.Errorf("resolving data of run %s: %w", runID, err)
	}

	datasets := make([]DatasetOutput, 0, len(data))
	for _, d := range data {
		datasets = append(datasets, s.toDatasetOutput(d))
	}
	return jsonContents(req.Params.URI, datasets)
}

func jsonContents(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractSegment extracts the single path segment between prefix and suffix
// from a URI like glazed://sessions/{session}/runs. The segment is
// unescaped; an empty or nested segment yields "".
func extractSegment(uri, prefix, suffix string) string {
	rest, ok := strings.CutPrefix(uri, uriScheme+prefix)
	if !ok {
		return ""
	}
	segment, ok := strings.CutSuffix(rest, suffix)
	if !ok || segment == "" || strings.Contains(segment, "/") {
		return ""
	}
	unescaped, err := url.PathUnescape(segment)
	if err != nil {
		return ""
	}
	return unescaped
}
