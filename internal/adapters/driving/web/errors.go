package web

import (
	"errors"
	"net/http"

	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/logger"
)

// statusFor maps an error to the HTTP status reported to clients.
func statusFor(err error) int {
	var (
		pathErr   *domain.PathError
		transport *domain.TransportError
		reqErr    *domain.UpstreamRequestError
		internal  *domain.UpstreamInternalError
		invalid   *domain.InvalidResponseError
	)

	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotTable):
		return http.StatusBadRequest
	case errors.As(err, &pathErr):
		return http.StatusBadRequest
	case errors.As(err, &transport):
		return http.StatusServiceUnavailable
	case errors.As(err, &reqErr):
		return reqErr.Status
	case errors.As(err, &internal), errors.As(err, &invalid):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes it as a plain text response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger.Warn("%s %s: %v (request_id=%s)", r.Method, r.URL.Path, err, requestIDFrom(r.Context()))
	http.Error(w, err.Error(), status)
}

// Ensure resolverError carries extensions into GraphQL responses.
var _ gqlerrors.ExtendedError = (*resolverError)(nil)

// resolverError reports a failed resolver with the status the same failure
// would have over plain HTTP.
type resolverError struct {
	err error
}

func (e *resolverError) Error() string {
	return e.err.Error()
}

func (e *resolverError) Unwrap() error {
	return e.err
}

// Extensions implements gqlerrors.ExtendedError.
func (e *resolverError) Extensions() map[string]any {
	return map[string]any{"status": statusFor(e.err)}
}

// fail wraps a resolver error.
func fail(err error) error {
	if err == nil {
		return nil
	}
	return &resolverError{err: err}
}
