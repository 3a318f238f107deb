package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/logger"
)

// withDataSources asks the remote service to inline data sources, which
// carry the assets of array datasets.
var withDataSources = []domain.QueryParam{{Key: "include_data_sources", Value: "true"}}

// RunData returns the array and table datasets of every stream of the run.
//
// Streams are fetched concurrently, bounded by the configured maximum. Each
// stream writes into its own slot so the result keeps stream order. The
// first failure cancels the remaining fetches and no partial result is
// returned.
func (s *SessionService) RunData(ctx context.Context, runID string, cred domain.Credential) ([]domain.RunData, error) {
	logger.Section("Resolve Run Data")
	headers := cred.Headers()

	resp, err := s.tiled.Search(ctx, runID, headers, withDataSources)
	if err != nil {
		return nil, fmt.Errorf("list streams of run %q: %w", runID, err)
	}
	if dropped := resp.Dropped(); dropped > 0 {
		logger.Warn("run %q: skipped %d malformed stream entries", runID, dropped)
	}

	streams := resp.Nodes()
	if len(streams) == 0 {
		return []domain.RunData{}, nil
	}

	limit := min(len(streams), s.maxStreams)
	logger.Debug("Run %s: fetching %d streams, %d at a time", runID, len(streams), limit)

	slots := make([][]domain.RunData, len(streams))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, stream := range streams {
		g.Go(func() error {
			data, err := s.streamData(gctx, runID, stream.ID, headers)
			if err != nil {
				return err
			}
			slots[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, slot := range slots {
		total += len(slot)
	}
	result := make([]domain.RunData, 0, total)
	for _, slot := range slots {
		result = append(result, slot...)
	}
	return result, nil
}

// streamData lists the datasets of one stream. Containers are skipped.
func (s *SessionService) streamData(
	ctx context.Context, runID, streamID string, headers map[string]string,
) ([]domain.RunData, error) {
	path := domain.CanonicalPath([]string{runID}, streamID)
	resp, err := s.tiled.Search(ctx, path, headers, withDataSources)
	if err != nil {
		return nil, fmt.Errorf("list datasets of stream %q: %w", path, err)
	}
	if dropped := resp.Dropped(); dropped > 0 {
		logger.Warn("stream %q: skipped %d malformed dataset entries", path, dropped)
	}

	nodes := resp.Nodes()
	data := make([]domain.RunData, 0, len(nodes))
	for _, node := range nodes {
		key := domain.DatasetKey{Run: runID, Stream: streamID, Dataset: node.ID}
		switch attrs := node.Attributes.(type) {
		case *domain.ArrayAttributes:
			data = append(data, &domain.ArrayData{Key: key, Attrs: attrs})
		case *domain.TableAttributes:
			data = append(data, &domain.TableData{Key: key, Attrs: attrs})
		case *domain.ContainerAttributes:
			logger.Debug("stream %q: skipping container %q", path, node.ID)
		}
	}
	return data, nil
}
