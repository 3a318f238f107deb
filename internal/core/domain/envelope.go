package domain

import "encoding/json"

// Validator is implemented by decoded payloads that check their own
// required fields. The remote client runs it after decoding.
type Validator interface {
	Validate() error
}

// Envelope wraps every payload returned by the remote service.
type Envelope[D any] struct {
	Data  D               `json:"data"`
	Error json.RawMessage `json:"error,omitempty"`
	Links *Links          `json:"links,omitempty"`
	Meta  json.RawMessage `json:"meta,omitempty"`
}

// SearchResponse is the collection envelope returned by a search.
type SearchResponse struct {
	Envelope[[]Entry]
}

// Validate implements Validator.
func (r *SearchResponse) Validate() error {
	if r.Data == nil {
		return &MissingFieldError{Type: "search response", Field: "data"}
	}
	return nil
}

// Nodes returns the entries that decoded as nodes, in order.
// Entries that failed to decode are skipped.
func (r *SearchResponse) Nodes() []Node {
	nodes := make([]Node, 0, len(r.Data))
	for _, entry := range r.Data {
		if node, ok := entry.AsNode(); ok {
			nodes = append(nodes, *node)
		}
	}
	return nodes
}

// Dropped returns the number of entries that failed to decode.
func (r *SearchResponse) Dropped() int {
	dropped := 0
	for _, entry := range r.Data {
		if entry.Node == nil {
			dropped++
		}
	}
	return dropped
}

// MetadataResponse is the single-node envelope returned by a metadata lookup.
type MetadataResponse struct {
	Envelope[Node]
}

// Validate implements Validator.
func (r *MetadataResponse) Validate() error {
	if r.Data.Attributes == nil {
		return &MissingFieldError{Type: "metadata response", Field: "data"}
	}
	return nil
}

// Entry is one element of a collection. It holds either a decoded Node or
// the raw value that failed to decode, never both.
type Entry struct {
	Node *Node
	Raw  json.RawMessage
	Err  error
}

// AsNode returns the decoded node, if any.
func (e Entry) AsNode() (*Node, bool) {
	return e.Node, e.Node != nil
}

// UnmarshalJSON never fails: a value that is not a valid node is kept raw.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var node Node
	if err := json.Unmarshal(data, &node); err != nil {
		e.Node = nil
		e.Raw = append(json.RawMessage(nil), data...)
		e.Err = err
		return nil
	}
	e.Node = &node
	e.Raw = nil
	e.Err = nil
	return nil
}

// MarshalJSON writes the node, or the raw value for a failed entry.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Node != nil {
		return json.Marshal(e.Node)
	}
	if len(e.Raw) == 0 {
		return []byte("null"), nil
	}
	return e.Raw, nil
}
