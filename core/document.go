package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// system attributes of a stored record
const (
	IDField       = "_id"
	KeyField      = "_key"
	RevisionField = "_rev"
)

// Document is a vertex-shaped record. Content holds the user attributes;
// attributes prefixed with an underscore are system attributes and are not
// part of the content.
type Document struct {
	id        string
	key       string
	revision  string
	persisted bool
	content   map[string]any

	req Requester
}

// NewDocument creates a document that has not been stored yet.
func NewDocument(content map[string]any) *Document {
	d := &Document{}
	d.setContent(content)
	return d
}

// ParseDocument builds a document from its raw server representation.
func ParseDocument(req Requester, raw map[string]any) *Document {
	return parseDocument(req, raw)
}

func parseDocument(req Requester, raw map[string]any) *Document {
	d := &Document{req: req}
	d.parse(raw)
	return d
}

func (*Document) item() {}

func (d *Document) parse(raw map[string]any) {
	d.id, _ = raw[IDField].(string)
	d.key, _ = raw[KeyField].(string)
	d.revision, _ = raw[RevisionField].(string)
	d.persisted = d.id != ""
	d.setContent(raw)
}

func (d *Document) setContent(raw map[string]any) {
	d.content = make(map[string]any, len(raw))
	for k, v := range raw {
		if strings.HasPrefix(k, "_") {
			continue
		}
		d.content[k] = v
	}
}

func (d *Document) ID() string {
	return d.id
}

func (d *Document) Key() string {
	return d.key
}

func (d *Document) Revision() string {
	return d.revision
}

// Persisted reports whether the document is known to the server.
func (d *Document) Persisted() bool {
	return d.persisted
}

// Get returns a single attribute of the content.
func (d *Document) Get(attribute string) any {
	return d.content[attribute]
}

// Set changes a content attribute locally. Call Save to store it.
func (d *Document) Set(attribute string, value any) error {
	if err := d.checkPersisted(); err != nil {
		return err
	}
	d.content[attribute] = value
	return nil
}

// Content returns a copy of the user attributes.
func (d *Document) Content() map[string]any {
	out := make(map[string]any, len(d.content))
	for k, v := range d.content {
		out[k] = v
	}
	return out
}

// Map returns the content together with the system attributes.
func (d *Document) Map() map[string]any {
	out := d.Content()
	if d.persisted {
		out[IDField] = d.id
		out[KeyField] = d.key
		out[RevisionField] = d.revision
	}
	return out
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Map())
}

// Save replaces the stored document with the current content.
func (d *Document) Save(ctx context.Context) error {
	return d.save(ctx, d.content)
}

func (d *Document) save(ctx context.Context, body map[string]any) error {
	if err := d.checkPersisted(); err != nil {
		return err
	}

	var meta struct {
		Rev string `json:"_rev"`
	}
	err := d.req.Send(ctx, &Request{Method: http.MethodPut, Path: documentPath(d.id), Body: body}, &meta)
	if err != nil {
		return err
	}
	if meta.Rev != "" {
		d.revision = meta.Rev
	}
	return nil
}

// Delete removes the document from the server.
func (d *Document) Delete(ctx context.Context) error {
	if err := d.checkPersisted(); err != nil {
		return err
	}
	return d.req.Send(ctx, &Request{Method: http.MethodDelete, Path: documentPath(d.id)}, nil)
}

// Refresh reloads the document from the server.
func (d *Document) Refresh(ctx context.Context) error {
	_, err := d.refresh(ctx)
	return err
}

func (d *Document) refresh(ctx context.Context) (map[string]any, error) {
	if err := d.checkPersisted(); err != nil {
		return nil, err
	}

	raw := make(map[string]any)
	err := d.req.Send(ctx, &Request{Method: http.MethodGet, Path: documentPath(d.id)}, &raw)
	if err != nil {
		return nil, err
	}
	d.parse(raw)
	return raw, nil
}

func (d *Document) checkPersisted() error {
	if !d.persisted || d.req == nil {
		return &Error{
			Kind:     ErrorKindNotFound,
			Resource: ResourceDocument,
			Message:  "the document has not been persisted",
		}
	}
	return nil
}

// Edge is an edge-shaped record: a document with both endpoint fields.
type Edge struct {
	*Document
	from string
	to   string
}

// ParseEdge builds an edge from its raw server representation.
func ParseEdge(req Requester, raw map[string]any) *Edge {
	return parseEdge(req, raw)
}

func parseEdge(req Requester, raw map[string]any) *Edge {
	e := &Edge{Document: parseDocument(req, raw)}
	e.parseEndpoints(raw)
	return e
}

func (*Edge) item() {}

func (e *Edge) parseEndpoints(raw map[string]any) {
	e.from, _ = raw[FromField].(string)
	e.to, _ = raw[ToField].(string)
}

// From is the id of the edge's source document.
func (e *Edge) From() string {
	return e.from
}

// To is the id of the edge's target document.
func (e *Edge) To() string {
	return e.to
}

func (e *Edge) Map() map[string]any {
	out := e.Document.Map()
	out[FromField] = e.from
	out[ToField] = e.to
	return out
}

func (e *Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Map())
}

// Save replaces the stored edge. Replacing an edge requires both endpoints
// in the body.
func (e *Edge) Save(ctx context.Context) error {
	body := e.Content()
	body[FromField] = e.from
	body[ToField] = e.to
	return e.save(ctx, body)
}

func (e *Edge) Refresh(ctx context.Context) error {
	raw, err := e.refresh(ctx)
	if err != nil {
		return err
	}
	e.parseEndpoints(raw)
	return nil
}

// documentPath addresses a record by its handle (collection/key).
func documentPath(id string) string {
	collection, key, found := strings.Cut(id, "/")
	if !found {
		return "document/" + url.PathEscape(id)
	}
	return "document/" + url.PathEscape(collection) + "/" + url.PathEscape(key)
}

// DocumentPath is the API-relative path of a record handle.
func DocumentPath(id string) string {
	return documentPath(id)
}
