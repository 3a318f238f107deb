package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driven"
	"github.com/custodia-labs/glazed/internal/core/ports/driving"
)

// Ensure AssetService implements the interface.
var _ driving.AssetService = (*AssetService)(nil)

// assetRoute is the first path segment of public download URLs.
const assetRoute = "asset"

// AssetService builds public download links and serves asset bytes.
type AssetService struct {
	tiled  driven.TiledClient
	public *url.URL
}

// NewAssetService creates a new asset service publishing links under public.
func NewAssetService(tiled driven.TiledClient, public *url.URL) *AssetService {
	return &AssetService{
		tiled:  tiled,
		public: public,
	}
}

// DownloadURL returns the public download URL of the asset.
func (s *AssetService) DownloadURL(link domain.AssetLink) (string, bool) {
	key, ok := link.Key()
	if !ok {
		return "", false
	}
	u := domain.AppendSegments(s.public, assetRoute, key.Run, key.Stream, key.Dataset, strconv.FormatInt(key.ID, 10))
	return u.String(), true
}

// Fetch opens the upstream bytes of an asset.
func (s *AssetService) Fetch(ctx context.Context, key domain.AssetKey, cred domain.Credential) (*domain.AssetStream, error) {
	stream, err := s.tiled.Download(ctx, key, cred.Headers())
	if err != nil {
		return nil, fmt.Errorf("download asset %d of %q: %w", key.ID, key.Dataset, err)
	}
	return stream, nil
}
