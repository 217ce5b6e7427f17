package arango

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Index is a secondary index of a collection.
type Index struct {
	coll *Collection

	ID     string
	Type   string
	Fields []string
	Unique bool
}

type rawIndex struct {
	ID     string   `json:"id"`
	Type   string   `json:"type"`
	Fields []string `json:"fields"`
	Unique bool     `json:"unique"`
}

func newIndex(coll *Collection, raw *rawIndex) *Index {
	return &Index{
		coll:   coll,
		ID:     raw.ID,
		Type:   raw.Type,
		Fields: raw.Fields,
		Unique: raw.Unique,
	}
}

// Collection returns the indexed collection.
func (i *Index) Collection() *Collection {
	return i.coll
}

func (i *Index) Delete(ctx context.Context) error {
	return i.coll.db.conn.SendRequest(ctx, http.MethodDelete, indexPath(i.coll.name, i.ID), nil, nil)
}

// indexPath accepts a full index handle (collection/id) or a bare id.
func indexPath(collection, id string) string {
	if coll, num, found := strings.Cut(id, "/"); found {
		return "index/" + url.PathEscape(coll) + "/" + url.PathEscape(num)
	}
	return "index/" + url.PathEscape(collection) + "/" + url.PathEscape(id)
}
