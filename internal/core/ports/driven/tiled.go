package driven

import (
	"context"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

// TiledClient reads from the remote Tiled service.
// Implementations must be safe for concurrent use. Every call takes the
// headers of the originating request and forwards them unchanged; a nil map
// sends no extra headers.
type TiledClient interface {
	// AppMetadata fetches the service description.
	AppMetadata(ctx context.Context, headers map[string]string) (*domain.AppMetadata, error)

	// Search lists the children of the node at path, filtered by query.
	// An empty path searches the root. Query parameters are sent in order.
	Search(ctx context.Context, path string, headers map[string]string, query []domain.QueryParam) (*domain.SearchResponse, error)

	// Metadata fetches the node at the given path.
	Metadata(ctx context.Context, id string, headers map[string]string) (*domain.MetadataResponse, error)

	// TableFull fetches the full content of the table at path.
	// A nil columns slice requests every column.
	TableFull(ctx context.Context, path string, columns []string, headers map[string]string) (domain.Table, error)

	// Download opens the bytes of an asset. The upstream response is returned
	// for any status and its body is not read; the caller must close it.
	Download(ctx context.Context, key domain.AssetKey, headers map[string]string) (*domain.AssetStream, error)
}
