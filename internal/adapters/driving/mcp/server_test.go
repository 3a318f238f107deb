package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	t.Run("nil session service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSessionService)
	})

	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSessionService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Sessions: &mockSessionService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil session service returns error", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingSessionService)
	})

	t.Run("sessions only is valid", func(t *testing.T) {
		ports := &Ports{Sessions: &mockSessionService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Sessions:   &mockSessionService{},
			Assets:     mockAssetService{},
			Credential: "Bearer token",
		}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_credential(t *testing.T) {
	server := newTestServer(t, &mockSessionService{})

	assert.Equal(t, domain.Credential("Bearer default"), server.credential(""))
	assert.Equal(t, domain.Credential("Bearer other"), server.credential("Bearer other"))
}
