package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ohler55/ojg/jp"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driven"
	"github.com/custodia-labs/glazed/internal/core/ports/driving"
	"github.com/custodia-labs/glazed/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// Start document fields surfaced on runs.
var (
	scanIDExpr   = jp.MustParseString("$.start.scan_id")
	planNameExpr = jp.MustParseString("$.start.plan_name")
)

// sessionKey is the run metadata key holding the instrument session name.
const sessionKey = "start.instrument_session"

// SessionService resolves instrument sessions against the remote service.
type SessionService struct {
	tiled      driven.TiledClient
	maxStreams int
}

// NewSessionService creates a new session service.
// maxConcurrentStreams bounds per-run stream fan-out; values below 1 use
// domain.DefaultMaxConcurrentStreams.
func NewSessionService(tiled driven.TiledClient, maxConcurrentStreams int) *SessionService {
	if maxConcurrentStreams < 1 {
		maxConcurrentStreams = domain.DefaultMaxConcurrentStreams
	}
	return &SessionService{
		tiled:      tiled,
		maxStreams: maxConcurrentStreams,
	}
}

// AppMetadata returns the description of the remote service.
func (s *SessionService) AppMetadata(ctx context.Context, cred domain.Credential) (*domain.AppMetadata, error) {
	meta, err := s.tiled.AppMetadata(ctx, cred.Headers())
	if err != nil {
		return nil, fmt.Errorf("app metadata: %w", err)
	}
	return meta, nil
}

// Runs returns the runs recorded in the named instrument session.
func (s *SessionService) Runs(ctx context.Context, session string, cred domain.Credential) ([]domain.Run, error) {
	logger.Section("Resolve Session")
	logger.Debug("Instrument session: %q", session)

	// The filter value is compared as JSON, so the name is sent quoted.
	value, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("%w: session name: %v", domain.ErrInvalidInput, err)
	}
	query := []domain.QueryParam{
		{Key: "filter[eq][condition][key]", Value: sessionKey},
		{Key: "filter[eq][condition][value]", Value: string(value)},
		{Key: "include_data_sources", Value: "true"},
	}

	resp, err := s.tiled.Search(ctx, "", cred.Headers(), query)
	if err != nil {
		return nil, fmt.Errorf("search runs of session %q: %w", session, err)
	}
	if dropped := resp.Dropped(); dropped > 0 {
		logger.Warn("session %q: skipped %d malformed run entries", session, dropped)
	}

	nodes := resp.Nodes()
	runs := make([]domain.Run, 0, len(nodes))
	for _, node := range nodes {
		runs = append(runs, newRun(node))
	}
	logger.Debug("Resolved %d runs", len(runs))
	return runs, nil
}

// Run looks up a single run by id.
func (s *SessionService) Run(ctx context.Context, id string, cred domain.Credential) (*domain.Run, error) {
	resp, err := s.tiled.Metadata(ctx, id, cred.Headers())
	if err != nil {
		return nil, fmt.Errorf("get run %q: %w", id, err)
	}
	run := newRun(resp.Data)
	return &run, nil
}

// newRun builds a run from its node, pulling start document fields out of
// container metadata.
func newRun(node domain.Node) domain.Run {
	run := domain.Run{Node: node}

	attrs, ok := node.Attributes.(*domain.ContainerAttributes)
	if !ok || attrs.Metadata == nil {
		return run
	}
	metadata := map[string]any(attrs.Metadata)

	if results := scanIDExpr.Get(metadata); len(results) > 0 {
		if n, ok := toInt64(results[0]); ok {
			run.ScanNumber = &n
		}
	}
	if results := planNameExpr.Get(metadata); len(results) > 0 {
		if name, ok := results[0].(string); ok {
			run.PlanName = name
		}
	}
	return run
}

// toInt64 converts a decoded JSON number.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
