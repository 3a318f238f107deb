// Package tiled implements the client for the remote Tiled data-access
// service.
//
// # Architecture
//
// The client implements [driven.TiledClient]. It comprises:
//
//   - Client: builds endpoint URLs, sends requests and classifies responses
//   - Config: base address and throttling options
//   - RateLimiter: optional proactive throttling of outgoing requests
//
// # Endpoints
//
// All endpoints are resolved relative to the configured base address, whose
// path is treated as a directory:
//
//   - api/v1/                           service metadata
//   - api/v1/search/{path}              children of a node
//   - api/v1/metadata/{path}            a single node
//   - api/v1/table/full/{path}          full table content, as JSON
//   - api/v1/asset/bytes/{path}?id={id} raw asset bytes
//
// Path segments are percent-escaped individually.
//
// # Response Classification
//
// Every response body is read in full (except asset downloads) and then
// classified:
//
//   - 4xx: [domain.UpstreamRequestError] with the body text
//   - 5xx: [domain.UpstreamInternalError] with the body text
//   - anything else: decoded as JSON; a body that does not match the
//     expected schema is a [domain.InvalidResponseError] holding the body
//
// A request that never produced a response is a [domain.TransportError].
// Nothing is retried.
package tiled
