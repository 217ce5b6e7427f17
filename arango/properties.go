package arango

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// collection types on the wire
const (
	typeDocumentCollection = 2
	typeEdgeCollection     = 3
)

// ContentType selects what a new collection stores.
type ContentType string

const (
	ContentDocument ContentType = "document"
	ContentEdge     ContentType = "edge"
)

func (c ContentType) wireType() int {
	if c == ContentEdge {
		return typeEdgeCollection
	}
	return typeDocumentCollection
}

// KeyOptions controls how document keys are generated.
type KeyOptions struct {
	Type          string `json:"type,omitempty"`
	Offset        int    `json:"offset,omitempty"`
	Increment     int    `json:"increment,omitempty"`
	AllowUserKeys bool   `json:"allowUserKeys"`
}

// Figure holds collection statistics. Fields missing on the server version
// in use are zero; Raw keeps the full payload.
type Figure struct {
	AliveCount        int64
	AliveSize         int64
	DeadCount         int64
	DeadSize          int64
	DeadDeletion      int64
	DatafilesCount    int64
	DatafilesFileSize int64
	JournalsCount     int64
	JournalsFileSize  int64
	IndexesCount      int64
	IndexesSize       int64
	Raw               json.RawMessage
}

func parseFigure(raw json.RawMessage) *Figure {
	get := func(path string) int64 {
		return gjson.GetBytes(raw, path).Int()
	}

	return &Figure{
		AliveCount:        get("alive.count"),
		AliveSize:         get("alive.size"),
		DeadCount:         get("dead.count"),
		DeadSize:          get("dead.size"),
		DeadDeletion:      get("dead.deletion"),
		DatafilesCount:    get("datafiles.count"),
		DatafilesFileSize: get("datafiles.fileSize"),
		JournalsCount:     get("journals.count"),
		JournalsFileSize:  get("journals.fileSize"),
		IndexesCount:      get("indexes.count"),
		IndexesSize:       get("indexes.size"),
		Raw:               raw,
	}
}
