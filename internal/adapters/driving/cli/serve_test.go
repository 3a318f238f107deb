package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

func TestServeCmd_BindOverridesPublicAddress(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()
	settings, sessionService, assetService = nil, nil, nil

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("bind_address = \"0.0.0.0:3000\"\n"), 0o600))
	configPath = path

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	defer rootCmd.SetContext(context.Background())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"serve", "--bind", "127.0.0.1:0"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(ctx)
	require.NoError(t, err)

	require.NotNil(t, assetService)
	link := domain.AssetLink{
		Dataset: domain.DatasetKey{Run: "r", Stream: "s", Dataset: "d"},
		Asset:   domain.Asset{ID: int64Ptr(7)},
	}
	download, ok := assetService.DownloadURL(link)
	require.True(t, ok)
	assert.Equal(t, "http://127.0.0.1:0/asset/r/s/d/7", download)
}

func TestServeSettings_InvalidBind(t *testing.T) {
	cleanup := setupTestServices(&mockSessionService{})
	defer cleanup()
	serveBind = "no-port"

	_, err := serveSettings()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServeSettings_NoOverride(t *testing.T) {
	cleanup := setupTestServices(&mockSessionService{})
	defer cleanup()

	s, err := serveSettings()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:3000", s.BindAddress)
}

func graphiqlPage(t *testing.T, s *domain.Settings) string {
	t.Helper()
	server, err := newWebServer(s)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphiql", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestNewWebServer_RelativeEndpointWithoutPublicAddress(t *testing.T) {
	cleanup := setupTestServices(&mockSessionService{})
	defer cleanup()

	s := domain.DefaultSettings()
	page := graphiqlPage(t, &s)

	assert.Contains(t, page, `"/graphql"`)
	assert.NotContains(t, page, "0.0.0.0")
}

func TestNewWebServer_PublicEndpoint(t *testing.T) {
	cleanup := setupTestServices(&mockSessionService{})
	defer cleanup()

	s := domain.DefaultSettings()
	s.PublicAddress = "https://glazed.example.com/api/"
	page := graphiqlPage(t, &s)

	assert.Contains(t, page, `"https://glazed.example.com/api/graphql"`)
}
