package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/logger"
)

// hopByHopHeaders apply to a single connection and are not forwarded.
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// handleAsset streams an asset from the remote service, passing its status,
// headers and body through unchanged.
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: asset id %q", domain.ErrInvalidInput, r.PathValue("id")))
		return
	}
	key := domain.AssetKey{
		DatasetKey: domain.DatasetKey{
			Run:     r.PathValue("run"),
			Stream:  r.PathValue("stream"),
			Dataset: r.PathValue("dataset"),
		},
		ID: id,
	}

	stream, err := s.assets.Fetch(r.Context(), key, credentialFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer stream.Close()

	copyHeaders(w.Header(), stream.Header)
	w.WriteHeader(stream.StatusCode)

	if _, err := io.Copy(w, stream.Body); err != nil {
		logger.Warn("asset %s/%s/%s/%d: copy interrupted: %v (request_id=%s)",
			key.Run, key.Stream, key.Dataset, key.ID, err, requestIDFrom(r.Context()))
	}
}

// copyHeaders copies end-to-end headers from src to dst. Headers named by
// Connection are hop-by-hop too. The request id of dst is kept.
func copyHeaders(dst http.Header, src map[string][]string) {
	upstream := http.Header(src)
	skip := map[string]bool{RequestIDHeader: true}
	for _, key := range hopByHopHeaders {
		skip[key] = true
	}
	for _, value := range upstream.Values("Connection") {
		for _, key := range strings.Split(value, ",") {
			if key = strings.TrimSpace(key); key != "" {
				skip[http.CanonicalHeaderKey(key)] = true
			}
		}
	}

	for key, values := range upstream {
		if skip[http.CanonicalHeaderKey(key)] {
			continue
		}
		for _, v := range values {
			dst.Add(key, v)
		}
	}
}
