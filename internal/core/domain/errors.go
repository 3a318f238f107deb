package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from the remote call errors below.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidBaseURL indicates the configured remote address cannot be
	// used as the base of other URLs.
	ErrInvalidBaseURL = errors.New("invalid tiled URL")

	// ErrNotTable indicates a node was expected to be a table but is not.
	ErrNotTable = errors.New("node is not a table")

	// ErrMissingAssetID indicates an asset has no id and cannot be downloaded.
	ErrMissingAssetID = errors.New("asset has no id")
)

// PathError indicates a request URL could not be built from a path.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid URL path %q: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// TransportError indicates the remote service could not be reached
// (DNS, connection or TLS failure).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("tiled server error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamRequestError is a 4xx response from the remote service.
type UpstreamRequestError struct {
	Status int
	Body   string
}

func (e *UpstreamRequestError) Error() string {
	return fmt.Sprintf("request error: %d - %s", e.Status, e.Body)
}

// UpstreamInternalError is a 5xx response from the remote service.
type UpstreamInternalError struct {
	Status int
	Body   string
}

func (e *UpstreamInternalError) Error() string {
	return fmt.Sprintf("internal tiled error: %d - %s", e.Status, e.Body)
}

// InvalidResponseError is a successful response whose body does not match
// the expected schema. Body holds the literal payload.
type InvalidResponseError struct {
	Err  error
	Body string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response: %v, response: %s", e.Err, e.Body)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Err
}

// UnknownStructureFamilyError is returned when a node's discriminator is
// not one of the known structure families.
type UnknownStructureFamilyError struct {
	Family string
}

func (e *UnknownStructureFamilyError) Error() string {
	return fmt.Sprintf("unknown structure family %q", e.Family)
}

// MissingFieldError is returned when a required JSON key is absent.
type MissingFieldError struct {
	Type  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing field %q", e.Type, e.Field)
}

// IsUpstreamRequest checks if the error is a 4xx response from the remote service.
func IsUpstreamRequest(err error) bool {
	var reqErr *UpstreamRequestError
	return errors.As(err, &reqErr)
}

// IsNotFound checks if the error indicates a remote resource was not found.
func IsNotFound(err error) bool {
	var reqErr *UpstreamRequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status == 404
	}
	return false
}

// IsUnauthorized checks if the error indicates a rejected credential.
func IsUnauthorized(err error) bool {
	var reqErr *UpstreamRequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status == 401 || reqErr.Status == 403
	}
	return false
}
