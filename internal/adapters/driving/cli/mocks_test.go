package cli

import (
	"context"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driving"
)

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	runs     []domain.Run
	err      error
	lastCred domain.Credential
}

func (m *mockSessionService) AppMetadata(context.Context, domain.Credential) (*domain.AppMetadata, error) {
	return &domain.AppMetadata{}, m.err
}

func (m *mockSessionService) Runs(_ context.Context, _ string, cred domain.Credential) ([]domain.Run, error) {
	m.lastCred = cred
	return m.runs, m.err
}

func (m *mockSessionService) Run(context.Context, string, domain.Credential) (*domain.Run, error) {
	return nil, m.err
}

func (m *mockSessionService) RunData(context.Context, string, domain.Credential) ([]domain.RunData, error) {
	return nil, m.err
}

func (m *mockSessionService) TableData(
	context.Context, *domain.TableData, []string, domain.Credential,
) (domain.Table, error) {
	return nil, m.err
}

func (m *mockSessionService) TableByPath(context.Context, string, domain.Credential) (*domain.TableData, error) {
	return nil, m.err
}

// mockAssetService is a mock implementation of driving.AssetService.
type mockAssetService struct{}

func (mockAssetService) DownloadURL(domain.AssetLink) (string, bool) { return "", false }

func (mockAssetService) Fetch(context.Context, domain.AssetKey, domain.Credential) (*domain.AssetStream, error) {
	return nil, nil
}

// setupTestServices injects mock services and returns a cleanup function
// restoring the previous package state.
func setupTestServices(sessions driving.SessionService) func() {
	oldSettings, oldSessions, oldAssets := settings, sessionService, assetService
	oldConfig, oldJSON, oldAuth, oldBind := configPath, runsJSON, runsAuth, serveBind

	defaults := domain.DefaultSettings()
	settings = &defaults
	sessionService = sessions
	assetService = mockAssetService{}

	return func() {
		settings, sessionService, assetService = oldSettings, oldSessions, oldAssets
		configPath, runsJSON, runsAuth, serveBind = oldConfig, oldJSON, oldAuth, oldBind
	}
}

func int64Ptr(v int64) *int64 { return &v }
