package domain

import (
	"encoding/json"
	"fmt"
)

// StructureFamily is the discriminator selecting a node's attribute variant.
type StructureFamily string

const (
	FamilyContainer StructureFamily = "container"
	FamilyArray     StructureFamily = "array"
	FamilyTable     StructureFamily = "table"
)

// Node is one entry in the remote tree.
// It is immutable once decoded.
type Node struct {
	ID         string          `json:"id"`
	Attributes NodeAttributes  `json:"attributes"`
	Links      Links           `json:"links"`
	Meta       json.RawMessage `json:"meta,omitempty"`
}

// Path returns the canonical remote path of the node.
func (n *Node) Path() string {
	if n.Attributes == nil {
		return n.ID
	}
	return CanonicalPath(n.Attributes.Ancestry(), n.ID)
}

// UnmarshalJSON decodes a node, selecting the attribute variant from the
// structure_family discriminator. Unknown families are errors.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         *string         `json:"id"`
		Attributes json.RawMessage `json:"attributes"`
		Links      *Links          `json:"links"`
		Meta       json.RawMessage `json:"meta"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == nil {
		return &MissingFieldError{Type: "node", Field: "id"}
	}
	if isAbsent(raw.Attributes) {
		return &MissingFieldError{Type: "node", Field: "attributes"}
	}
	if raw.Links == nil {
		return &MissingFieldError{Type: "node", Field: "links"}
	}

	attrs, err := decodeNodeAttributes(raw.Attributes)
	if err != nil {
		return fmt.Errorf("node %q: %w", *raw.ID, err)
	}

	n.ID = *raw.ID
	n.Attributes = attrs
	n.Links = *raw.Links
	n.Meta = raw.Meta
	return nil
}

// NodeAttributes is the closed set of attribute variants.
// The only implementations are *ContainerAttributes, *ArrayAttributes and
// *TableAttributes; consumers switch on the concrete type.
type NodeAttributes interface {
	// StructureFamily returns the discriminator value of the variant.
	StructureFamily() StructureFamily

	// Ancestry returns the path segments from the root to the node's parent.
	Ancestry() []string

	isNodeAttributes()
}

// Attributes is the attribute block shared by all variants.
type Attributes[M any, S any] struct {
	Ancestors   []string        `json:"ancestors"`
	Specs       []Spec          `json:"specs"`
	Metadata    M               `json:"metadata"`
	Structure   S               `json:"structure"`
	AccessBlob  any             `json:"access_blob,omitempty"`
	Sorting     []Sorting       `json:"sorting,omitempty"`
	DataSources []DataSource[S] `json:"data_sources,omitempty"`
}

// Ancestry returns the ancestors of the node owning the attributes.
func (a *Attributes[M, S]) Ancestry() []string {
	return a.Ancestors
}

// ContainerAttributes describes a non-leaf grouping node (runs, streams).
type ContainerAttributes struct {
	Attributes[ContainerMetadata, ContainerStructure]
}

// ArrayAttributes describes an n-dimensional array dataset.
type ArrayAttributes struct {
	Attributes[map[string]any, ArrayStructure]
}

// TableAttributes describes a tabular dataset.
type TableAttributes struct {
	Attributes[map[string]any, TableStructure]
}

func (*ContainerAttributes) StructureFamily() StructureFamily { return FamilyContainer }
func (*ArrayAttributes) StructureFamily() StructureFamily     { return FamilyArray }
func (*TableAttributes) StructureFamily() StructureFamily     { return FamilyTable }

func (*ContainerAttributes) isNodeAttributes() {}
func (*ArrayAttributes) isNodeAttributes()     {}
func (*TableAttributes) isNodeAttributes()     {}

// MarshalJSON writes the attributes with their discriminator.
func (a *ContainerAttributes) MarshalJSON() ([]byte, error) {
	return marshalTagged(FamilyContainer, a.Attributes)
}

// MarshalJSON writes the attributes with their discriminator.
func (a *ArrayAttributes) MarshalJSON() ([]byte, error) {
	return marshalTagged(FamilyArray, a.Attributes)
}

// MarshalJSON writes the attributes with their discriminator.
func (a *TableAttributes) MarshalJSON() ([]byte, error) {
	return marshalTagged(FamilyTable, a.Attributes)
}

func marshalTagged[M any, S any](family StructureFamily, attrs Attributes[M, S]) ([]byte, error) {
	return json.Marshal(struct {
		StructureFamily StructureFamily `json:"structure_family"`
		Attributes[M, S]
	}{family, attrs})
}

// decodeNodeAttributes selects and decodes the attribute variant.
func decodeNodeAttributes(data []byte) (NodeAttributes, error) {
	var tag struct {
		Family *string `json:"structure_family"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}
	if tag.Family == nil {
		return nil, &MissingFieldError{Type: "attributes", Field: "structure_family"}
	}
	if err := requireKeys(data, "attributes", "ancestors", "specs", "metadata", "structure"); err != nil {
		return nil, err
	}

	switch StructureFamily(*tag.Family) {
	case FamilyContainer:
		var attrs ContainerAttributes
		if err := json.Unmarshal(data, &attrs); err != nil {
			return nil, err
		}
		return &attrs, nil
	case FamilyArray:
		var attrs ArrayAttributes
		if err := json.Unmarshal(data, &attrs); err != nil {
			return nil, err
		}
		return &attrs, nil
	case FamilyTable:
		var attrs TableAttributes
		if err := json.Unmarshal(data, &attrs); err != nil {
			return nil, err
		}
		return &attrs, nil
	default:
		return nil, &UnknownStructureFamilyError{Family: *tag.Family}
	}
}

// Spec names a specification a node conforms to.
type Spec struct {
	Name    string  `json:"name"`
	Version *string `json:"version"`
}

// Sorting is one sort key of a container.
type Sorting struct {
	Key       string `json:"key"`
	Direction int64  `json:"direction"`
}

// DataSource describes the storage backing a node.
type DataSource[S any] struct {
	Structure  S              `json:"structure"`
	ID         *int64         `json:"id"`
	Mimetype   *string        `json:"mimetype"`
	Parameters map[string]any `json:"parameters"`
	Assets     []Asset        `json:"assets"`
	Management Management     `json:"management"`
}

// Management describes who owns and may mutate the underlying storage.
type Management string

const (
	ManagementExternal  Management = "external"
	ManagementImmutable Management = "immutable"
	ManagementLocked    Management = "locked"
	ManagementWritable  Management = "writable"
)

// UnmarshalJSON rejects values outside the known set.
func (m *Management) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch Management(s) {
	case ManagementExternal, ManagementImmutable, ManagementLocked, ManagementWritable:
		*m = Management(s)
		return nil
	default:
		return fmt.Errorf("unknown management %q", s)
	}
}

// Asset is a binary object bound to a data source.
// Only assets with an ID can be downloaded.
type Asset struct {
	DataURI     string  `json:"data_uri"`
	IsDirectory bool    `json:"is_directory"`
	Parameter   *string `json:"parameter"`
	Num         *int64  `json:"num"`
	ID          *int64  `json:"id"`
}

// Links are the navigation links attached to nodes and responses.
type Links struct {
	Self          string  `json:"self"`
	Documentation *string `json:"documentation,omitempty"`
	First         *string `json:"first,omitempty"`
	Last          *string `json:"last,omitempty"`
	Next          *string `json:"next,omitempty"`
	Prev          *string `json:"prev,omitempty"`
	Search        *string `json:"search,omitempty"`
	Full          *string `json:"full,omitempty"`
	Block         *string `json:"block,omitempty"`
	Partition     *string `json:"partition,omitempty"`
}

// ContainerMetadata is the free-form metadata of a container.
// For runs it holds the Bluesky start and stop documents.
type ContainerMetadata map[string]any

// ContainerStructure describes the children of a container.
type ContainerStructure struct {
	Contents any    `json:"contents"`
	Count    *int64 `json:"count"`
}

// ArrayStructure describes the layout of an array.
type ArrayStructure struct {
	DataType  json.RawMessage `json:"data_type"`
	Chunks    [][]int64       `json:"chunks"`
	Shape     []int64         `json:"shape"`
	Dims      []string        `json:"dims"`
	Resizable any             `json:"resizable"`
}

// TableStructure describes the layout of a table.
type TableStructure struct {
	ArrowSchema string   `json:"arrow_schema"`
	NPartitions int64    `json:"npartitions"`
	Columns     []string `json:"columns"`
	Resizable   any      `json:"resizable"`
}

// Table is the full content of a table, keyed by column name.
type Table map[string][]any

// requireKeys checks that every key is present and not null in a JSON object.
func requireKeys(data []byte, typ string, keys ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, key := range keys {
		if isAbsent(fields[key]) {
			return &MissingFieldError{Type: typ, Field: key}
		}
	}
	return nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
