package domain

import "io"

// AssetLink binds an asset to the dataset it belongs to.
type AssetLink struct {
	Dataset DatasetKey
	Asset   Asset
}

// File returns the storage location of the asset.
func (l AssetLink) File() string {
	return l.Asset.DataURI
}

// Key returns the download key of the asset, or false if it has no id.
func (l AssetLink) Key() (AssetKey, bool) {
	if l.Asset.ID == nil {
		return AssetKey{}, false
	}
	return AssetKey{DatasetKey: l.Dataset, ID: *l.Asset.ID}, true
}

// AssetKey addresses one downloadable asset.
type AssetKey struct {
	DatasetKey
	ID int64
}

// AssetStream is a raw upstream response for an asset download.
// Body is unread; the caller must close it.
type AssetStream struct {
	StatusCode int
	Header     map[string][]string
	Body       io.ReadCloser
}

// Close releases the body of the stream.
func (s *AssetStream) Close() error {
	if s == nil || s.Body == nil {
		return nil
	}
	return s.Body.Close()
}
