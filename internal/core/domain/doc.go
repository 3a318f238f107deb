// Package domain defines the core entities for glazed.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Node: one entry in the remote Tiled tree, tagged by structure family
//   - NodeAttributes: the closed set of container, array and table variants
//   - SearchResponse / MetadataResponse: the remote response envelopes
//   - Run, ArrayData, TableData, AssetLink: client-facing entities
//   - Error types classifying every failure of a remote call
//
// # Decoding
//
// Remote payloads decode with encoding/json. Types with required keys
// implement a Validate hook that the remote client runs after decoding,
// so a structurally incomplete payload is rejected rather than silently
// zero-filled. Collection entries that fail to decode are kept as raw
// values and skipped by [SearchResponse.Nodes].
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
