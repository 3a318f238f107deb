package domain

import (
	"fmt"
	"net"
	"net/url"
)

// Default settings values.
const (
	DefaultBindAddress          = "0.0.0.0:3000"
	DefaultTiledAddress         = "http://localhost:8000/"
	DefaultMaxConcurrentStreams = 4
)

// Settings is the effective configuration of the service.
type Settings struct {
	// BindAddress is the host:port the serving layer listens on.
	BindAddress string

	// PublicAddress is the externally reachable base URL of the service.
	// Empty means http://<BindAddress>.
	PublicAddress string

	Tiled      TiledSettings
	Resolution ResolutionSettings
}

// TiledSettings configures the remote service client.
type TiledSettings struct {
	// Address is the base URL of the remote service.
	Address string

	// RequestsPerSecond throttles outgoing requests. 0 disables throttling.
	RequestsPerSecond float64
}

// ResolutionSettings configures the resolution engine.
type ResolutionSettings struct {
	// MaxConcurrentStreams bounds per-run stream fan-out. 1 is sequential.
	MaxConcurrentStreams int
}

// DefaultSettings returns the settings used when no file overrides them.
func DefaultSettings() Settings {
	return Settings{
		BindAddress: DefaultBindAddress,
		Tiled: TiledSettings{
			Address: DefaultTiledAddress,
		},
		Resolution: ResolutionSettings{
			MaxConcurrentStreams: DefaultMaxConcurrentStreams,
		},
	}
}

// Validate checks the settings are usable.
func (s *Settings) Validate() error {
	if _, _, err := net.SplitHostPort(s.BindAddress); err != nil {
		return fmt.Errorf("%w: bind_address %q: %v", ErrInvalidInput, s.BindAddress, err)
	}
	if s.Tiled.Address == "" {
		return fmt.Errorf("%w: tiled_client.address is required", ErrInvalidInput)
	}
	if s.Tiled.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: tiled_client.requests_per_second must not be negative", ErrInvalidInput)
	}
	if s.Resolution.MaxConcurrentStreams < 1 {
		return fmt.Errorf("%w: resolution.max_concurrent_streams must be at least 1", ErrInvalidInput)
	}
	if _, err := s.PublicURL(); err != nil {
		return err
	}
	return nil
}

// PublicURL returns the base URL clients use to reach the service.
func (s *Settings) PublicURL() (*url.URL, error) {
	address := s.PublicAddress
	if address == "" {
		address = "http://" + s.BindAddress
	}
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: public_address %q: %v", ErrInvalidInput, address, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: public_address %q must be absolute", ErrInvalidInput, address)
	}
	return u, nil
}
