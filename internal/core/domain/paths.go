package domain

import (
	"net/url"
	"strings"
)

// CanonicalPath joins ancestors and id into the remote path of a node.
func CanonicalPath(ancestors []string, id string) string {
	segments := make([]string, 0, len(ancestors)+1)
	segments = append(segments, ancestors...)
	segments = append(segments, id)
	return strings.Join(segments, "/")
}

// SplitPath splits a "/" separated remote path into its segments,
// ignoring empty ones.
func SplitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// AppendSegments returns a copy of base with each segment escaped and
// appended to its path. A trailing slash on base does not produce an empty
// segment. Query and fragment are dropped.
func AppendSegments(base *url.URL, segments ...string) *url.URL {
	out := *base
	out.RawQuery = ""
	out.Fragment = ""
	out.RawFragment = ""

	decoded := strings.TrimSuffix(base.Path, "/")
	escaped := strings.TrimSuffix(base.EscapedPath(), "/")
	for _, s := range segments {
		decoded += "/" + s
		escaped += "/" + url.PathEscape(s)
	}
	out.Path = decoded
	out.RawPath = escaped
	return &out
}
