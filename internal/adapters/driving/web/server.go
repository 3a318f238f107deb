package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driving"
	"github.com/custodia-labs/glazed/internal/logger"
)

const (
	// RequestIDHeader carries the id assigned to each request.
	RequestIDHeader = "X-Request-ID"

	// ShutdownTimeout bounds how long in-flight requests may run after
	// shutdown starts.
	ShutdownTimeout = 10 * time.Second
)

// Server serves the graph query API.
type Server struct {
	sessions        driving.SessionService
	assets          driving.AssetService
	graphqlEndpoint string
	schema          graphql.Schema
	handler         http.Handler
}

// NewServer creates a server over the given services.
// graphqlEndpoint is the URL the GraphiQL page sends queries to; empty
// means the relative path /graphql.
func NewServer(sessions driving.SessionService, assets driving.AssetService, graphqlEndpoint string) (*Server, error) {
	schema, err := newSchema(sessions, assets)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	if graphqlEndpoint == "" {
		graphqlEndpoint = "/graphql"
	}

	s := &Server{
		sessions:        sessions,
		assets:          assets,
		graphqlEndpoint: graphqlEndpoint,
		schema:          schema,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", s.handleGraphQL)
	mux.HandleFunc("GET /graphiql", s.handleGraphiQL)
	mux.HandleFunc("GET /asset/{run}/{stream}/{dataset}/{id}", s.handleAsset)
	mux.HandleFunc("/", s.handleNotFound)
	s.handler = s.instrument(mux)

	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts down gracefully,
// letting in-flight requests finish within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	// No write timeout: asset downloads stream for as long as they take.
	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve(listener)
	}()
	logger.Info("Serving glazed at %s", listener.Addr())

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down: %v", context.Cause(ctx))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// instrument assigns a request id, extracts the forwarded credential and
// logs each request.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := withRequestID(r.Context(), id)
		ctx = withCredential(ctx, domain.Credential(r.Header.Get(domain.AuthorizationHeader)))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.Info("%s %s %d %s request_id=%s",
			r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond), id)
	})
}

// statusRecorder captures the status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// Flush forwards to the underlying writer so streamed bodies are not held back.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
