package mcp

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driving"
)

var (
	_ driving.SessionService = (*mockSessionService)(nil)
	_ driving.AssetService   = (*mockAssetService)(nil)
)

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	appMetadata *domain.AppMetadata
	runs        []domain.Run
	runData     []domain.RunData
	table       *domain.TableData
	content     domain.Table
	err         error

	lastSession string
	lastRunID   string
	lastPath    string
	lastColumns []string
	lastCred    domain.Credential
}

func (m *mockSessionService) AppMetadata(_ context.Context, cred domain.Credential) (*domain.AppMetadata, error) {
	m.lastCred = cred
	return m.appMetadata, m.err
}

func (m *mockSessionService) Runs(_ context.Context, session string, cred domain.Credential) ([]domain.Run, error) {
	m.lastSession = session
	m.lastCred = cred
	return m.runs, m.err
}

func (m *mockSessionService) Run(_ context.Context, id string, cred domain.Credential) (*domain.Run, error) {
	m.lastRunID = id
	m.lastCred = cred
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID() == id {
			return &m.runs[i], nil
		}
	}
	return nil, &domain.UpstreamRequestError{Status: 404}
}

func (m *mockSessionService) RunData(_ context.Context, runID string, cred domain.Credential) ([]domain.RunData, error) {
	m.lastRunID = runID
	m.lastCred = cred
	return m.runData, m.err
}

func (m *mockSessionService) TableData(
	_ context.Context, _ *domain.TableData, columns []string, cred domain.Credential,
) (domain.Table, error) {
	m.lastColumns = columns
	m.lastCred = cred
	return m.content, m.err
}

func (m *mockSessionService) TableByPath(_ context.Context, path string, cred domain.Credential) (*domain.TableData, error) {
	m.lastPath = path
	m.lastCred = cred
	if m.err != nil {
		return nil, m.err
	}
	if m.table == nil {
		return nil, domain.ErrNotTable
	}
	return m.table, nil
}

// mockAssetService links assets under a fixed host.
type mockAssetService struct{}

func (mockAssetService) DownloadURL(link domain.AssetLink) (string, bool) {
	key, ok := link.Key()
	if !ok {
		return "", false
	}
	return "http://glazed.test/asset/" + key.Run + "/" + key.Stream + "/" + key.Dataset + "/" +
		strconv.FormatInt(key.ID, 10), true
}

func (mockAssetService) Fetch(context.Context, domain.AssetKey, domain.Credential) (*domain.AssetStream, error) {
	return nil, nil
}

func newTestServer(t *testing.T, sessions *mockSessionService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{
		Sessions:   sessions,
		Assets:     mockAssetService{},
		Credential: "Bearer default",
	})
	require.NoError(t, err)
	return server
}

func int64Ptr(v int64) *int64 { return &v }

func testRun(id string, scan int64, plan string) domain.Run {
	return domain.Run{
		Node:       domain.Node{ID: id},
		ScanNumber: int64Ptr(scan),
		PlanName:   plan,
	}
}

func testArray(id int64) *domain.ArrayData {
	return &domain.ArrayData{
		Key: domain.DatasetKey{Run: "run-1", Stream: "primary", Dataset: "det"},
		Attrs: &domain.ArrayAttributes{
			Attributes: domain.Attributes[map[string]any, domain.ArrayStructure]{
				DataSources: []domain.DataSource[domain.ArrayStructure]{{
					Assets: []domain.Asset{
						{DataURI: "file://localhost/data/det.h5", ID: int64Ptr(id)},
						{DataURI: "file://localhost/data/det_raw.h5"},
					},
				}},
			},
		},
	}
}

func testTable() *domain.TableData {
	return &domain.TableData{
		Key: domain.DatasetKey{Run: "run-1", Stream: "primary", Dataset: "internal"},
		Attrs: &domain.TableAttributes{
			Attributes: domain.Attributes[map[string]any, domain.TableStructure]{
				Ancestors: []string{"run-1", "primary"},
				Structure: domain.TableStructure{Columns: []string{"x", "y"}},
			},
		},
	}
}
