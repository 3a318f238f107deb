package tiled

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driven"
	"github.com/custodia-labs/glazed/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.TiledClient = (*Client)(nil)

// APIPrefix is the route prefix of the Tiled API version spoken by Client.
const APIPrefix = "api/v1"

const (
	routeRoot     = APIPrefix
	routeSearch   = APIPrefix + "/search"
	routeMetadata = APIPrefix + "/metadata"
	routeTable    = APIPrefix + "/table/full"
	routeAsset    = APIPrefix + "/asset/bytes"

	mimeJSON = "application/json"
)

// Client talks to the remote Tiled service.
// It is safe for concurrent use.
type Client struct {
	base        *url.URL
	http        *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a client for the service at cfg.Address.
// Returns domain.ErrInvalidBaseURL if the address cannot be used as the base
// of other URLs.
func NewClient(cfg Config) (*Client, error) {
	base, err := parseBase(cfg.Address)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		base:        base,
		http:        httpClient,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

// BaseURL returns a copy of the base address.
func (c *Client) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// parseBase validates the base address and normalises its path to a
// directory so relative endpoints resolve beneath it.
func parseBase(address string) (*url.URL, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", domain.ErrInvalidBaseURL, address, err)
	}
	if u.Opaque != "" || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidBaseURL, address)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidBaseURL, u.Scheme)
	}

	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}
	return u, nil
}

// AppMetadata fetches the service description.
func (c *Client) AppMetadata(ctx context.Context, headers map[string]string) (*domain.AppMetadata, error) {
	u, err := c.endpoint(routeRoot, "")
	if err != nil {
		return nil, err
	}
	return fetch[domain.AppMetadata](ctx, c, u, headers, "")
}

// Search lists the children of the node at path.
func (c *Client) Search(
	ctx context.Context, path string, headers map[string]string, query []domain.QueryParam,
) (*domain.SearchResponse, error) {
	u, err := c.endpoint(routeSearch, path)
	if err != nil {
		return nil, err
	}
	u.RawQuery = encodeQuery(query)
	return fetch[domain.SearchResponse](ctx, c, u, headers, "")
}

// Metadata fetches the node at the given path.
func (c *Client) Metadata(ctx context.Context, id string, headers map[string]string) (*domain.MetadataResponse, error) {
	u, err := c.endpoint(routeMetadata, id)
	if err != nil {
		return nil, err
	}
	return fetch[domain.MetadataResponse](ctx, c, u, headers, "")
}

// TableFull fetches the full content of the table at path.
func (c *Client) TableFull(
	ctx context.Context, path string, columns []string, headers map[string]string,
) (domain.Table, error) {
	u, err := c.endpoint(routeTable, path)
	if err != nil {
		return nil, err
	}
	query := make([]domain.QueryParam, 0, len(columns))
	for _, column := range columns {
		query = append(query, domain.QueryParam{Key: "column", Value: column})
	}
	u.RawQuery = encodeQuery(query)

	table, err := fetch[domain.Table](ctx, c, u, headers, mimeJSON)
	if err != nil {
		return nil, err
	}
	return *table, nil
}

// Download opens the bytes of an asset.
// The response is returned for any status with its body unread.
func (c *Client) Download(
	ctx context.Context, key domain.AssetKey, headers map[string]string,
) (*domain.AssetStream, error) {
	u, err := c.segmentEndpoint(routeAsset, key.Run, key.Stream, key.Dataset)
	if err != nil {
		return nil, err
	}
	u.RawQuery = encodeQuery([]domain.QueryParam{{Key: "id", Value: strconv.FormatInt(key.ID, 10)}})

	resp, err := c.do(ctx, u, headers, "")
	if err != nil {
		return nil, err
	}
	return &domain.AssetStream{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

// endpoint resolves route and path against the base address. An empty path
// keeps a trailing slash so the route itself is addressed.
func (c *Client) endpoint(route, path string) (*url.URL, error) {
	segments := strings.Split(route, "/")
	for _, s := range domain.SplitPath(path) {
		if s == "." || s == ".." {
			return nil, &domain.PathError{Path: path, Err: fmt.Errorf("relative segment %q", s)}
		}
		segments = append(segments, s)
	}

	u := domain.AppendSegments(c.base, segments...)
	if len(domain.SplitPath(path)) == 0 {
		u.Path += "/"
		u.RawPath += "/"
	}
	return u, nil
}

// segmentEndpoint resolves route against the base address and appends each
// value as exactly one escaped segment.
func (c *Client) segmentEndpoint(route string, values ...string) (*url.URL, error) {
	segments := strings.Split(route, "/")
	for _, v := range values {
		if v == "." || v == ".." {
			return nil, &domain.PathError{Path: strings.Join(values, "/"), Err: fmt.Errorf("relative segment %q", v)}
		}
		segments = append(segments, v)
	}
	return domain.AppendSegments(c.base, segments...), nil
}

// do sends a GET request with the forwarded headers.
func (c *Client) do(ctx context.Context, u *url.URL, headers map[string]string, accept string) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.PathError{Path: u.Path, Err: err}
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	logger.Debug("tiled: GET %s", u.Redacted())
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}
	return resp, nil
}

// fetch performs a request and decodes the classified response into T.
// If *T implements domain.Validator it is validated after decoding.
func fetch[T any](ctx context.Context, c *Client, u *url.URL, headers map[string]string, accept string) (*T, error) {
	resp, err := c.do(ctx, u, headers, accept)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("read body: %w", err)}
	}

	if err := classify(resp.StatusCode, body); err != nil {
		logger.Debug("tiled: %s returned %d", u.Redacted(), resp.StatusCode)
		return nil, err
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &domain.InvalidResponseError{Err: err, Body: string(body)}
	}
	if v, ok := any(&out).(domain.Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, &domain.InvalidResponseError{Err: err, Body: string(body)}
		}
	}
	return &out, nil
}

// classify maps error statuses to typed errors.
// Any status outside 400-599 is left to the decoder.
func classify(status int, body []byte) error {
	switch {
	case status >= 400 && status < 500:
		return &domain.UpstreamRequestError{Status: status, Body: string(body)}
	case status >= 500 && status < 600:
		return &domain.UpstreamInternalError{Status: status, Body: string(body)}
	default:
		return nil
	}
}

// encodeQuery encodes params in order. Keys may repeat.
func encodeQuery(params []domain.QueryParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}
