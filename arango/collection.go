package arango

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kndndrj/go-arango/core"
)

type rawCollection struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Status      Status      `json:"status"`
	Type        int         `json:"type"`
	IsSystem    bool        `json:"isSystem"`
	WaitForSync *bool       `json:"waitForSync,omitempty"`
	KeyOptions  *KeyOptions `json:"keyOptions,omitempty"`
	Count       *int64      `json:"count,omitempty"`
}

// Collection is a document or edge collection.
type Collection struct {
	db *Database

	id       string
	name     string
	status   Status
	typ      int
	isSystem bool
}

func newCollection(db *Database, raw *rawCollection) *Collection {
	c := &Collection{db: db}
	c.update(raw)
	return c
}

func (c *Collection) update(raw *rawCollection) {
	if raw.ID != "" {
		c.id = raw.ID
	}
	if raw.Name != "" {
		c.name = raw.Name
	}
	if raw.Status != 0 {
		c.status = raw.Status
	}
	if raw.Type != 0 {
		c.typ = raw.Type
	}
	c.isSystem = c.isSystem || raw.IsSystem
}

func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) ID() string {
	return c.id
}

// Status is the load state as of the last response about this collection.
func (c *Collection) Status() Status {
	return c.status
}

func (c *Collection) IsEdgeCollection() bool {
	return c.typ == typeEdgeCollection
}

func (c *Collection) IsSystem() bool {
	return c.isSystem
}

func (c *Collection) Database() *Database {
	return c.db
}

func (c *Collection) send(ctx context.Context, method, sub string, body any) (*rawCollection, error) {
	path := collectionPath(c.name)
	if sub != "" {
		path += "/" + sub
	}

	var raw rawCollection
	if err := c.db.conn.SendRequest(ctx, method, path, body, &raw); err != nil {
		return nil, err
	}
	c.update(&raw)
	return &raw, nil
}

// Count returns the number of documents.
func (c *Collection) Count(ctx context.Context) (int64, error) {
	raw, err := c.send(ctx, http.MethodGet, "count", nil)
	if err != nil {
		return 0, err
	}
	if raw.Count == nil {
		return 0, nil
	}
	return *raw.Count, nil
}

func (c *Collection) WaitForSync(ctx context.Context) (bool, error) {
	raw, err := c.send(ctx, http.MethodGet, "properties", nil)
	if err != nil {
		return false, err
	}
	return raw.WaitForSync != nil && *raw.WaitForSync, nil
}

func (c *Collection) SetWaitForSync(ctx context.Context, wait bool) error {
	_, err := c.send(ctx, http.MethodPut, "properties", map[string]any{"waitForSync": wait})
	return err
}

func (c *Collection) KeyOptions(ctx context.Context) (*KeyOptions, error) {
	raw, err := c.send(ctx, http.MethodGet, "properties", nil)
	if err != nil {
		return nil, err
	}
	if raw.KeyOptions == nil {
		return &KeyOptions{}, nil
	}
	return raw.KeyOptions, nil
}

// Figure returns the collection statistics.
func (c *Collection) Figure(ctx context.Context) (*Figure, error) {
	var resp struct {
		Figures json.RawMessage `json:"figures"`
	}
	err := c.db.conn.SendRequest(ctx, http.MethodGet, collectionPath(c.name)+"/figures", nil, &resp)
	if err != nil {
		return nil, err
	}
	return parseFigure(resp.Figures), nil
}

func (c *Collection) Rename(ctx context.Context, name string) error {
	_, err := c.send(ctx, http.MethodPut, "rename", map[string]any{"name": name})
	if err != nil {
		return err
	}
	c.name = name
	return nil
}

func (c *Collection) Load(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodPut, "load", nil)
	return err
}

func (c *Collection) Unload(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodPut, "unload", nil)
	return err
}

// Truncate removes all documents.
func (c *Collection) Truncate(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodPut, "truncate", nil)
	return err
}

func (c *Collection) Delete(ctx context.Context) error {
	return c.db.conn.SendRequest(ctx, http.MethodDelete, collectionPath(c.name), nil, nil)
}

func (c *Collection) handle(key string) string {
	return c.name + "/" + key
}

func (c *Collection) fetch(ctx context.Context, key string) (map[string]any, error) {
	raw := make(map[string]any)
	if err := c.db.conn.SendRequest(ctx, http.MethodGet, core.DocumentPath(c.handle(key)), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Document fetches a document by key.
func (c *Collection) Document(ctx context.Context, key string) (*core.Document, error) {
	raw, err := c.fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	return core.ParseDocument(c.db.conn, raw), nil
}

// Edge fetches an edge by key.
func (c *Collection) Edge(ctx context.Context, key string) (*core.Edge, error) {
	raw, err := c.fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	if !core.IsEdgeShaped(raw) {
		return nil, fmt.Errorf("%w: %s", ErrNotEdge, c.handle(key))
	}
	return core.ParseEdge(c.db.conn, raw), nil
}

type documentMeta struct {
	ID  string `json:"_id"`
	Key string `json:"_key"`
	Rev string `json:"_rev"`
}

func (m *documentMeta) merge(content map[string]any) map[string]any {
	out := make(map[string]any, len(content)+3)
	for k, v := range content {
		out[k] = v
	}
	out[core.IDField] = m.ID
	out[core.KeyField] = m.Key
	out[core.RevisionField] = m.Rev
	return out
}

func (c *Collection) create(ctx context.Context, content map[string]any) (map[string]any, error) {
	var meta documentMeta
	err := c.db.conn.Send(ctx, &core.Request{
		Method: http.MethodPost,
		Path:   "document/" + url.PathEscape(c.name),
		Body:   content,
	}, &meta)
	if err != nil {
		return nil, err
	}
	return meta.merge(content), nil
}

// CreateDocument stores a new document.
func (c *Collection) CreateDocument(ctx context.Context, content map[string]any) (*core.Document, error) {
	raw, err := c.create(ctx, content)
	if err != nil {
		return nil, err
	}
	return core.ParseDocument(c.db.conn, raw), nil
}

// ReplaceDocument replaces the document stored under key.
func (c *Collection) ReplaceDocument(ctx context.Context, key string, content map[string]any) (*core.Document, error) {
	var meta documentMeta
	err := c.db.conn.SendRequest(ctx, http.MethodPut, core.DocumentPath(c.handle(key)), content, &meta)
	if err != nil {
		return nil, err
	}
	return core.ParseDocument(c.db.conn, meta.merge(content)), nil
}

// CreateEdge stores a new edge between two document handles.
func (c *Collection) CreateEdge(ctx context.Context, from, to string, content map[string]any) (*core.Edge, error) {
	if !c.IsEdgeCollection() {
		return nil, fmt.Errorf("%w: %s", ErrNotEdgeCollection, c.name)
	}

	body := make(map[string]any, len(content)+2)
	for k, v := range content {
		body[k] = v
	}
	body[core.FromField] = from
	body[core.ToField] = to

	raw, err := c.create(ctx, body)
	if err != nil {
		return nil, err
	}
	return core.ParseEdge(c.db.conn, raw), nil
}

// Index fetches an index by id or full handle.
func (c *Collection) Index(ctx context.Context, id string) (*Index, error) {
	var raw rawIndex
	if err := c.db.conn.SendRequest(ctx, http.MethodGet, indexPath(c.name, id), nil, &raw); err != nil {
		return nil, err
	}
	return newIndex(c, &raw), nil
}

func (c *Collection) Indices(ctx context.Context) ([]*Index, error) {
	var resp struct {
		Indexes []*rawIndex `json:"indexes"`
	}
	err := c.db.conn.Send(ctx, &core.Request{
		Method: http.MethodGet,
		Path:   "index",
		Query:  url.Values{"collection": []string{c.name}},
	}, &resp)
	if err != nil {
		return nil, err
	}

	out := make([]*Index, 0, len(resp.Indexes))
	for _, raw := range resp.Indexes {
		out = append(out, newIndex(c, raw))
	}
	return out, nil
}

// AddIndex creates an index of type typ (e.g. "persistent") on fields.
func (c *Collection) AddIndex(ctx context.Context, typ string, fields []string, unique bool) (*Index, error) {
	var raw rawIndex
	err := c.db.conn.Send(ctx, &core.Request{
		Method: http.MethodPost,
		Path:   "index",
		Query:  url.Values{"collection": []string{c.name}},
		Body: map[string]any{
			"type":   typ,
			"fields": fields,
			"unique": unique,
		},
	}, &raw)
	if err != nil {
		return nil, err
	}
	return newIndex(c, &raw), nil
}

// Query returns a query builder bound to this collection.
func (c *Collection) Query() *Query {
	return &Query{db: c.db, coll: c}
}

func collectionPath(name string) string {
	return "collection/" + url.PathEscape(name)
}
