package arango

import (
	"context"
	"errors"
	"net/http"

	"github.com/kndndrj/go-arango/core"
)

// Query issues AQL and simple queries. Simple queries need a collection.
type Query struct {
	db   *Database
	coll *Collection
}

// QueryOptions tune an AQL query.
type QueryOptions struct {
	// Count asks the server for the total number of results.
	Count     bool
	BatchSize int
	BindVars  map[string]any
	// BatchLimit bounds continuation requests of the returned cursor.
	BatchLimit int
}

type cursorRequest struct {
	Query     string         `json:"query"`
	Count     bool           `json:"count,omitempty"`
	BatchSize int            `json:"batchSize,omitempty"`
	BindVars  map[string]any `json:"bindVars,omitempty"`
}

// Execute runs an AQL query and returns a cursor on its first batch.
func (q *Query) Execute(ctx context.Context, aql string, opts *QueryOptions) (*core.Cursor, error) {
	if opts == nil {
		opts = &QueryOptions{}
	}

	body := &cursorRequest{
		Query:     aql,
		Count:     opts.Count,
		BatchSize: opts.BatchSize,
		BindVars:  opts.BindVars,
	}

	q.db.log.Debugf("executing query on %q", q.db.Name())
	return q.db.conn.Query(ctx, body, core.WithBatchLimit(opts.BatchLimit))
}

// Valid parses aql on the server without running it. Syntax errors are
// reported as false.
func (q *Query) Valid(ctx context.Context, aql string) (bool, error) {
	err := q.db.conn.SendRequest(ctx, http.MethodPost, "query", map[string]any{"query": aql}, nil)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, core.ErrBadRequest) {
		return false, nil
	}
	return false, err
}

// SimpleOptions page simple query results.
type SimpleOptions struct {
	Skip  int
	Limit int
}

func (o *SimpleOptions) orZero() SimpleOptions {
	if o == nil {
		return SimpleOptions{}
	}
	return *o
}

type allRequest struct {
	Collection string `json:"collection"`
	Skip       int    `json:"skip,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

type byExampleRequest struct {
	Collection string         `json:"collection"`
	Example    map[string]any `json:"example"`
	Skip       int            `json:"skip,omitempty"`
	Limit      int            `json:"limit,omitempty"`
}

type firstExampleRequest struct {
	Collection string         `json:"collection"`
	Example    map[string]any `json:"example"`
}

// NearOptions select documents by distance from a point.
type NearOptions struct {
	Latitude  float64
	Longitude float64
	// Distance names the attribute that receives the distance.
	Distance string
	// Geo is the id of the geo index to use.
	Geo   string
	Skip  int
	Limit int
}

type nearRequest struct {
	Collection string  `json:"collection"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Distance   string  `json:"distance,omitempty"`
	Geo        string  `json:"geo,omitempty"`
	Skip       int     `json:"skip,omitempty"`
	Limit      int     `json:"limit,omitempty"`
}

// WithinOptions select documents inside a radius around a point.
type WithinOptions struct {
	Latitude  float64
	Longitude float64
	Radius    float64
	Distance  string
	Geo       string
	Skip      int
	Limit     int
}

type withinRequest struct {
	Collection string  `json:"collection"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Radius     float64 `json:"radius"`
	Distance   string  `json:"distance,omitempty"`
	Geo        string  `json:"geo,omitempty"`
	Skip       int     `json:"skip,omitempty"`
	Limit      int     `json:"limit,omitempty"`
}

// RangeOptions select documents with Attribute between Left and Right.
type RangeOptions struct {
	Attribute string
	Left      any
	Right     any
	// Closed includes Right.
	Closed bool
	Skip   int
	Limit  int
}

type rangeRequest struct {
	Collection string `json:"collection"`
	Attribute  string `json:"attribute"`
	Left       any    `json:"left"`
	Right      any    `json:"right"`
	Closed     bool   `json:"closed,omitempty"`
	Skip       int    `json:"skip,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

func (q *Query) collectionName() (string, error) {
	if q.coll == nil {
		return "", ErrNoCollectionProvided
	}
	return q.coll.Name(), nil
}

func (q *Query) simple(ctx context.Context, path string, body any) (*core.Cursor, error) {
	return core.QueryCursor(ctx, q.db.conn, &core.Request{Method: http.MethodPut, Path: path, Body: body})
}

// All returns every document of the collection.
func (q *Query) All(ctx context.Context, opts *SimpleOptions) (*core.Cursor, error) {
	name, err := q.collectionName()
	if err != nil {
		return nil, err
	}
	o := opts.orZero()
	return q.simple(ctx, "simple/all", &allRequest{Collection: name, Skip: o.Skip, Limit: o.Limit})
}

// ByExample returns documents matching all attributes of example.
func (q *Query) ByExample(ctx context.Context, example map[string]any, opts *SimpleOptions) (*core.Cursor, error) {
	name, err := q.collectionName()
	if err != nil {
		return nil, err
	}
	o := opts.orZero()
	return q.simple(ctx, "simple/by-example", &byExampleRequest{
		Collection: name,
		Example:    nonNil(example),
		Skip:       o.Skip,
		Limit:      o.Limit,
	})
}

// FirstExample returns one document matching example.
func (q *Query) FirstExample(ctx context.Context, example map[string]any) (core.Item, error) {
	name, err := q.collectionName()
	if err != nil {
		return nil, err
	}

	var resp struct {
		Document map[string]any `json:"document"`
	}
	err = q.db.conn.SendRequest(ctx, http.MethodPut, "simple/first-example",
		&firstExampleRequest{Collection: name, Example: nonNil(example)}, &resp)
	if err != nil {
		return nil, err
	}

	if core.IsEdgeShaped(resp.Document) {
		return core.ParseEdge(q.db.conn, resp.Document), nil
	}
	return core.ParseDocument(q.db.conn, resp.Document), nil
}

func (q *Query) Near(ctx context.Context, opts NearOptions) (*core.Cursor, error) {
	name, err := q.collectionName()
	if err != nil {
		return nil, err
	}
	return q.simple(ctx, "simple/near", &nearRequest{
		Collection: name,
		Latitude:   opts.Latitude,
		Longitude:  opts.Longitude,
		Distance:   opts.Distance,
		Geo:        opts.Geo,
		Skip:       opts.Skip,
		Limit:      opts.Limit,
	})
}

func (q *Query) Within(ctx context.Context, opts WithinOptions) (*core.Cursor, error) {
	name, err := q.collectionName()
	if err != nil {
		return nil, err
	}
	return q.simple(ctx, "simple/within", &withinRequest{
		Collection: name,
		Latitude:   opts.Latitude,
		Longitude:  opts.Longitude,
		Radius:     opts.Radius,
		Distance:   opts.Distance,
		Geo:        opts.Geo,
		Skip:       opts.Skip,
		Limit:      opts.Limit,
	})
}

func (q *Query) InRange(ctx context.Context, opts RangeOptions) (*core.Cursor, error) {
	name, err := q.collectionName()
	if err != nil {
		return nil, err
	}
	return q.simple(ctx, "simple/range", &rangeRequest{
		Collection: name,
		Attribute:  opts.Attribute,
		Left:       opts.Left,
		Right:      opts.Right,
		Closed:     opts.Closed,
		Skip:       opts.Skip,
		Limit:      opts.Limit,
	})
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
