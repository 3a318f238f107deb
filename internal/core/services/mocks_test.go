package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driven"
)

// Ensure mockTiledClient implements the interface.
var _ driven.TiledClient = (*mockTiledClient)(nil)

// mockCall records one call made to the remote service.
type mockCall struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   []domain.QueryParam
	Columns []string
}

// mockTiledClient serves canned responses keyed by path.
type mockTiledClient struct {
	mu sync.Mutex

	appMetadata *domain.AppMetadata
	searches    map[string]*domain.SearchResponse
	metadata    map[string]*domain.MetadataResponse
	tables      map[string]domain.Table
	download    *domain.AssetStream
	errs        map[string]error
	delays      map[string]time.Duration

	calls       []mockCall
	inFlight    int
	maxInFlight int
}

func newMockTiledClient() *mockTiledClient {
	return &mockTiledClient{
		searches: make(map[string]*domain.SearchResponse),
		metadata: make(map[string]*domain.MetadataResponse),
		tables:   make(map[string]domain.Table),
		errs:     make(map[string]error),
		delays:   make(map[string]time.Duration),
	}
}

var errNotConfigured = &domain.UpstreamRequestError{Status: 404, Body: "not configured"}

// enter records a call and waits for the configured delay of path.
func (m *mockTiledClient) enter(ctx context.Context, call mockCall) error {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	delay := m.delays[call.Path]
	err := m.errs[call.Path]
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return &domain.TransportError{Err: ctx.Err()}
		case <-time.After(delay):
		}
	}
	return err
}

func (m *mockTiledClient) AppMetadata(ctx context.Context, headers map[string]string) (*domain.AppMetadata, error) {
	if err := m.enter(ctx, mockCall{Method: "AppMetadata", Headers: headers}); err != nil {
		return nil, err
	}
	if m.appMetadata == nil {
		return nil, errNotConfigured
	}
	return m.appMetadata, nil
}

func (m *mockTiledClient) Search(
	ctx context.Context, path string, headers map[string]string, query []domain.QueryParam,
) (*domain.SearchResponse, error) {
	if err := m.enter(ctx, mockCall{Method: "Search", Path: path, Headers: headers, Query: query}); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	resp, ok := m.searches[path]
	if !ok {
		return nil, errNotConfigured
	}
	return resp, nil
}

func (m *mockTiledClient) Metadata(
	ctx context.Context, id string, headers map[string]string,
) (*domain.MetadataResponse, error) {
	if err := m.enter(ctx, mockCall{Method: "Metadata", Path: id, Headers: headers}); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	resp, ok := m.metadata[id]
	if !ok {
		return nil, errNotConfigured
	}
	return resp, nil
}

func (m *mockTiledClient) TableFull(
	ctx context.Context, path string, columns []string, headers map[string]string,
) (domain.Table, error) {
	if err := m.enter(ctx, mockCall{Method: "TableFull", Path: path, Headers: headers, Columns: columns}); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	table, ok := m.tables[path]
	if !ok {
		return nil, errNotConfigured
	}
	return table, nil
}

func (m *mockTiledClient) Download(
	ctx context.Context, key domain.AssetKey, headers map[string]string,
) (*domain.AssetStream, error) {
	path := domain.CanonicalPath([]string{key.Run, key.Stream}, key.Dataset)
	if err := m.enter(ctx, mockCall{Method: "Download", Path: path, Headers: headers}); err != nil {
		return nil, err
	}
	if m.download == nil {
		return nil, errors.New("download not configured")
	}
	return m.download, nil
}

func (m *mockTiledClient) recorded() []mockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mockCall(nil), m.calls...)
}

// Node builders.

func containerNode(id string, ancestors []string, metadata domain.ContainerMetadata) domain.Node {
	attrs := &domain.ContainerAttributes{}
	attrs.Ancestors = ancestors
	attrs.Metadata = metadata
	return domain.Node{ID: id, Attributes: attrs}
}

func arrayNode(id string, ancestors []string, assets ...domain.Asset) domain.Node {
	attrs := &domain.ArrayAttributes{}
	attrs.Ancestors = ancestors
	if len(assets) > 0 {
		attrs.DataSources = []domain.DataSource[domain.ArrayStructure]{
			{Assets: assets, Management: domain.ManagementExternal},
		}
	}
	return domain.Node{ID: id, Attributes: attrs}
}

func tableNode(id string, ancestors []string, columns ...string) domain.Node {
	attrs := &domain.TableAttributes{}
	attrs.Ancestors = ancestors
	attrs.Structure.Columns = columns
	return domain.Node{ID: id, Attributes: attrs}
}

func malformedEntry() domain.Entry {
	return domain.Entry{Raw: []byte(`{"id": 1}`), Err: errors.New("malformed")}
}

func searchOf(items ...any) *domain.SearchResponse {
	resp := &domain.SearchResponse{}
	resp.Data = []domain.Entry{}
	for _, item := range items {
		switch v := item.(type) {
		case domain.Node:
			node := v
			resp.Data = append(resp.Data, domain.Entry{Node: &node})
		case domain.Entry:
			resp.Data = append(resp.Data, v)
		}
	}
	return resp
}

func metadataOf(node domain.Node) *domain.MetadataResponse {
	resp := &domain.MetadataResponse{}
	resp.Data = node
	return resp
}
