package core

import "encoding/json"

// endpoint fields of an edge-shaped record
const (
	FromField = "_from"
	ToField   = "_to"
)

// Item is a single value yielded by a cursor. It is one of *Raw, *Document
// or *Edge.
type Item interface {
	item()
}

var (
	_ Item = (*Raw)(nil)
	_ Item = (*Document)(nil)
	_ Item = (*Edge)(nil)
)

// Raw holds a value that is not a JSON object, e.g. a projected scalar.
type Raw struct {
	Value any
}

func (*Raw) item() {}

func (r *Raw) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value)
}

// ClassifyItem decides the shape of a decoded JSON value. Objects with both
// endpoint fields are edges, other objects are documents, anything else is
// raw. The input is not modified.
func ClassifyItem(value any) Item {
	raw, ok := value.(map[string]any)
	if !ok {
		return &Raw{Value: value}
	}

	if IsEdgeShaped(raw) {
		return parseEdge(nil, raw)
	}
	return parseDocument(nil, raw)
}

// IsEdgeShaped reports whether raw has both endpoint fields.
func IsEdgeShaped(raw map[string]any) bool {
	_, hasFrom := raw[FromField]
	_, hasTo := raw[ToField]
	return hasFrom && hasTo
}

// ItemValue returns the plain JSON value behind an item.
func ItemValue(it Item) any {
	switch v := it.(type) {
	case *Raw:
		return v.Value
	case *Edge:
		return v.Map()
	case *Document:
		return v.Map()
	default:
		return nil
	}
}

// ItemKind names the shape of an item: "raw", "document" or "edge".
func ItemKind(it Item) string {
	switch it.(type) {
	case *Raw:
		return "raw"
	case *Edge:
		return "edge"
	case *Document:
		return "document"
	default:
		return ""
	}
}

// bindItem attaches a requester to records so they can be saved or deleted.
func bindItem(it Item, req Requester) Item {
	switch v := it.(type) {
	case *Document:
		v.req = req
	case *Edge:
		v.req = req
	}
	return it
}
