package driving

import (
	"context"

	"github.com/custodia-labs/glazed/internal/core/domain"
)

// AssetService produces download locations for assets and serves them.
type AssetService interface {
	// DownloadURL returns the public URL an asset can be downloaded from.
	// Returns false when the asset has no id.
	DownloadURL(link domain.AssetLink) (string, bool)

	// Fetch opens the upstream bytes of an asset. The stream is returned
	// unread for any upstream status; the caller must close it.
	Fetch(ctx context.Context, key domain.AssetKey, cred domain.Credential) (*domain.AssetStream, error)
}
