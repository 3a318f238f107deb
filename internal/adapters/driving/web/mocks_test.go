package web

import (
	"context"
	"sync"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driving"
)

// Ensure mocks implement the interfaces.
var (
	_ driving.SessionService = (*mockSessionService)(nil)
	_ driving.AssetService   = (*mockAssetService)(nil)
)

type mockSessionService struct {
	mu    sync.Mutex
	creds []domain.Credential

	appMetadata *domain.AppMetadata
	runs        map[string][]domain.Run
	runData     map[string][]domain.RunData
	tables      map[string]domain.Table
	tablePaths  map[string]*domain.TableData
	err         error

	lastColumns []string
}

func newMockSessionService() *mockSessionService {
	return &mockSessionService{
		runs:       make(map[string][]domain.Run),
		runData:    make(map[string][]domain.RunData),
		tables:     make(map[string]domain.Table),
		tablePaths: make(map[string]*domain.TableData),
	}
}

func (m *mockSessionService) record(cred domain.Credential) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = append(m.creds, cred)
}

func (m *mockSessionService) AppMetadata(_ context.Context, cred domain.Credential) (*domain.AppMetadata, error) {
	m.record(cred)
	if m.err != nil {
		return nil, m.err
	}
	return m.appMetadata, nil
}

func (m *mockSessionService) Runs(_ context.Context, session string, cred domain.Credential) ([]domain.Run, error) {
	m.record(cred)
	if m.err != nil {
		return nil, m.err
	}
	runs := m.runs[session]
	if runs == nil {
		runs = []domain.Run{}
	}
	return runs, nil
}

func (m *mockSessionService) Run(_ context.Context, id string, cred domain.Credential) (*domain.Run, error) {
	m.record(cred)
	if m.err != nil {
		return nil, m.err
	}
	for _, runs := range m.runs {
		for _, run := range runs {
			if run.ID() == id {
				return &run, nil
			}
		}
	}
	return nil, &domain.UpstreamRequestError{Status: 404, Body: "not found"}
}

func (m *mockSessionService) RunData(_ context.Context, runID string, cred domain.Credential) ([]domain.RunData, error) {
	m.record(cred)
	if m.err != nil {
		return nil, m.err
	}
	return m.runData[runID], nil
}

func (m *mockSessionService) TableData(
	_ context.Context, table *domain.TableData, columns []string, cred domain.Credential,
) (domain.Table, error) {
	m.record(cred)
	m.mu.Lock()
	m.lastColumns = columns
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.tables[table.Path()], nil
}

func (m *mockSessionService) TableByPath(_ context.Context, path string, cred domain.Credential) (*domain.TableData, error) {
	m.record(cred)
	if m.err != nil {
		return nil, m.err
	}
	table, ok := m.tablePaths[path]
	if !ok {
		return nil, domain.ErrNotTable
	}
	return table, nil
}

func (m *mockSessionService) credentials() []domain.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Credential(nil), m.creds...)
}

type mockAssetService struct {
	mu      sync.Mutex
	stream  *domain.AssetStream
	err     error
	lastKey domain.AssetKey
	creds   []domain.Credential
}

func (m *mockAssetService) DownloadURL(link domain.AssetLink) (string, bool) {
	key, ok := link.Key()
	if !ok {
		return "", false
	}
	return "http://glazed/asset/" + key.Run + "/" + key.Stream + "/" + key.Dataset, true
}

func (m *mockAssetService) Fetch(_ context.Context, key domain.AssetKey, cred domain.Credential) (*domain.AssetStream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastKey = key
	m.creds = append(m.creds, cred)
	if m.err != nil {
		return nil, m.err
	}
	return m.stream, nil
}
