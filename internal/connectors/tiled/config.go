package tiled

import (
	"net/http"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

// Config configures a Client.
type Config struct {
	// Address is the base URL of the remote service.
	Address string

	// RequestsPerSecond throttles outgoing requests. 0 disables throttling.
	RequestsPerSecond float64

	// HTTPClient overrides the HTTP client. Defaults to a client without an
	// overall timeout so long downloads are bounded only by the context.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a Config from the service settings.
func ConfigFromSettings(s domain.TiledSettings) Config {
	return Config{
		Address:           s.Address,
		RequestsPerSecond: s.RequestsPerSecond,
	}
}
