package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

// TableData fetches the content of a table dataset.
func (s *SessionService) TableData(
	ctx context.Context, table *domain.TableData, columns []string, cred domain.Credential,
) (domain.Table, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", domain.ErrInvalidInput)
	}
	path := table.Path()
	data, err := s.tiled.TableFull(ctx, path, columns, cred.Headers())
	if err != nil {
		return nil, fmt.Errorf("fetch table %q: %w", path, err)
	}
	return data, nil
}

// TableByPath looks up the node at path and returns it if it is a table.
func (s *SessionService) TableByPath(ctx context.Context, path string, cred domain.Credential) (*domain.TableData, error) {
	resp, err := s.tiled.Metadata(ctx, path, cred.Headers())
	if err != nil {
		return nil, fmt.Errorf("get node %q: %w", path, err)
	}

	attrs, ok := resp.Data.Attributes.(*domain.TableAttributes)
	if !ok {
		return nil, fmt.Errorf("%q is a %s: %w", path, resp.Data.Attributes.StructureFamily(), domain.ErrNotTable)
	}
	return &domain.TableData{Key: datasetKey(attrs.Ancestors, resp.Data.ID), Attrs: attrs}, nil
}

// datasetKey derives the run and stream of a dataset from its ancestors.
// The run is the outermost ancestor and the stream the innermost.
func datasetKey(ancestors []string, id string) domain.DatasetKey {
	key := domain.DatasetKey{Dataset: id}
	if len(ancestors) > 0 {
		key.Run = ancestors[0]
	}
	if len(ancestors) > 1 {
		key.Stream = ancestors[len(ancestors)-1]
	}
	return key
}
