package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

func TestSessionService_TableData(t *testing.T) {
	t.Run("fetches table at canonical path", func(t *testing.T) {
		tiled := newMockTiledClient()
		tiled.tables["a/b/c"] = domain.Table{"x": {1.0, 2.0}}
		svc := NewSessionService(tiled, 4)

		node := tableNode("c", []string{"a", "b"}, "x")
		table := &domain.TableData{
			Key:   domain.DatasetKey{Run: "a", Stream: "b", Dataset: "c"},
			Attrs: node.Attributes.(*domain.TableAttributes),
		}

		data, err := svc.TableData(context.Background(), table, []string{"x"}, "auth_value")
		require.NoError(t, err)
		assert.Equal(t, []any{1.0, 2.0}, data["x"])

		calls := tiled.recorded()
		require.Len(t, calls, 1)
		assert.Equal(t, "a/b/c", calls[0].Path)
		assert.Equal(t, []string{"x"}, calls[0].Columns)
		assert.Equal(t, "auth_value", calls[0].Headers["Authorization"])
	})

	t.Run("propagates errors", func(t *testing.T) {
		tiled := newMockTiledClient()
		tiled.errs["a/b/c"] = &domain.InvalidResponseError{Err: errors.New("bad"), Body: "[]"}
		svc := NewSessionService(tiled, 4)

		node := tableNode("c", []string{"a", "b"})
		table := &domain.TableData{Key: domain.DatasetKey{Dataset: "c"}, Attrs: node.Attributes.(*domain.TableAttributes)}

		_, err := svc.TableData(context.Background(), table, nil, "")

		var invalid *domain.InvalidResponseError
		assert.True(t, errors.As(err, &invalid))
	})

	t.Run("nil table is invalid input", func(t *testing.T) {
		svc := NewSessionService(newMockTiledClient(), 4)

		_, err := svc.TableData(context.Background(), nil, nil, "")
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestSessionService_TableByPath(t *testing.T) {
	tiled := newMockTiledClient()
	tiled.metadata["run/primary/internal"] = metadataOf(tableNode("internal", []string{"run", "primary"}, "time"))
	tiled.metadata["run/primary/det"] = metadataOf(arrayNode("det", []string{"run", "primary"}))
	svc := NewSessionService(tiled, 4)

	t.Run("returns table", func(t *testing.T) {
		table, err := svc.TableByPath(context.Background(), "run/primary/internal", "")
		require.NoError(t, err)
		assert.Equal(t, domain.DatasetKey{Run: "run", Stream: "primary", Dataset: "internal"}, table.Key)
		assert.Equal(t, []string{"time"}, table.Columns())
	})

	t.Run("other families are not tables", func(t *testing.T) {
		_, err := svc.TableByPath(context.Background(), "run/primary/det", "")
		assert.True(t, errors.Is(err, domain.ErrNotTable))
	})
}

func TestDatasetKey(t *testing.T) {
	assert.Equal(t, domain.DatasetKey{Dataset: "x"}, datasetKey(nil, "x"))
	assert.Equal(t, domain.DatasetKey{Run: "r", Dataset: "x"}, datasetKey([]string{"r"}, "x"))
	assert.Equal(t, domain.DatasetKey{Run: "r", Stream: "s", Dataset: "x"}, datasetKey([]string{"r", "m", "s"}, "x"))
}
