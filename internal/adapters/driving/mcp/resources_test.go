package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleServiceResource(t *testing.T) {
	ctx := context.Background()
	sessions := &mockSessionService{appMetadata: &domain.AppMetadata{LibraryVersion: "0.1.0b12"}}
	server := newTestServer(t, sessions)

	result, err := server.handleServiceResource(ctx, makeReadResourceRequest("glazed://service"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, `"library_version": "0.1.0b12"`)
	assert.Equal(t, domain.Credential("Bearer default"), sessions.lastCred)
}

func TestServer_handleSessionRunsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns runs", func(t *testing.T) {
		sessions := &mockSessionService{runs: []domain.Run{testRun("run-1", 42, "count")}}
		server := newTestServer(t, sessions)

		uri := "glazed://sessions/cm12345-1/runs"
		result, err := server.handleSessionRunsResource(ctx, makeReadResourceRequest(uri))

		require.NoError(t, err)
		assert.Equal(t, "cm12345-1", sessions.lastSession)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, uri, result.Contents[0].URI)
		assert.Contains(t, result.Contents[0].Text, `"id": "run-1"`)
		assert.Contains(t, result.Contents[0].Text, `"scan_number": 42`)
	})

	t.Run("no runs is an empty list", func(t *testing.T) {
		server := newTestServer(t, &mockSessionService{})

		result, err := server.handleSessionRunsResource(ctx, makeReadResourceRequest("glazed://sessions/empty/runs"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(t, &mockSessionService{})

		_, err := server.handleSessionRunsResource(ctx, makeReadResourceRequest("glazed://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server := newTestServer(t, &mockSessionService{err: assert.AnError})

		_, err := server.handleSessionRunsResource(ctx, makeReadResourceRequest("glazed://sessions/cm1/runs"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing runs of cm1")
	})
}

func TestServer_handleRunDataResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns datasets", func(t *testing.T) {
		sessions := &mockSessionService{runData: []domain.RunData{testTable()}}
		server := newTestServer(t, sessions)

		result, err := server.handleRunDataResource(ctx, makeReadResourceRequest("glazed://runs/run-1/data"))

		require.NoError(t, err)
		assert.Equal(t, "run-1", sessions.lastRunID)
		assert.Contains(t, result.Contents[0].Text, `"kind": "table"`)
		assert.Contains(t, result.Contents[0].Text, `"path": "run-1/primary/internal"`)
	})

	t.Run("missing run id returns not found", func(t *testing.T) {
		server := newTestServer(t, &mockSessionService{})

		_, err := server.handleRunDataResource(ctx, makeReadResourceRequest("glazed://runs//data"))

		require.Error(t, err)
	})
}

func TestExtractSegment(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"valid", "glazed://sessions/cm1/runs", "cm1"},
		{"escaped", "glazed://sessions/cm%201/runs", "cm 1"},
		{"wrong scheme", "other://sessions/cm1/runs", ""},
		{"wrong suffix", "glazed://sessions/cm1/data", ""},
		{"nested", "glazed://sessions/a/b/runs", ""},
		{"empty", "glazed://sessions//runs", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractSegment(tt.uri, "sessions/", "/runs"))
		})
	}
}
