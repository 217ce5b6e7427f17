package arango

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"github.com/kndndrj/go-arango/core"
)

// EdgeDefinition relates an edge collection to its vertex collections.
type EdgeDefinition struct {
	Collection string   `json:"collection"`
	From       []string `json:"from"`
	To         []string `json:"to"`
}

type rawGraph struct {
	Name              string           `json:"name"`
	Key               string           `json:"_key,omitempty"`
	EdgeDefinitions   []EdgeDefinition `json:"edgeDefinitions"`
	OrphanCollections []string         `json:"orphanCollections"`
}

// Graph is a named graph.
type Graph struct {
	db *Database

	name            string
	edgeDefinitions []EdgeDefinition
	orphans         []string
}

func newGraph(db *Database, raw *rawGraph) *Graph {
	name := raw.Name
	if name == "" {
		name = raw.Key
	}
	return &Graph{
		db:              db,
		name:            name,
		edgeDefinitions: raw.EdgeDefinitions,
		orphans:         raw.OrphanCollections,
	}
}

func (g *Graph) Name() string {
	return g.name
}

func (g *Graph) EdgeDefinitions() []EdgeDefinition {
	return g.edgeDefinitions
}

// VertexCollectionNames returns every vertex collection of the graph, sorted.
func (g *Graph) VertexCollectionNames() []string {
	var names []string
	for _, def := range g.edgeDefinitions {
		names = append(names, def.From...)
		names = append(names, def.To...)
	}
	names = append(names, g.orphans...)

	slices.Sort(names)
	return slices.Compact(names)
}

func (g *Graph) HasVertexCollection(name string) bool {
	return slices.Contains(g.VertexCollectionNames(), name)
}

// VertexCollection returns a vertex collection of the graph.
func (g *Graph) VertexCollection(ctx context.Context, name string) (*Collection, error) {
	if !g.HasVertexCollection(name) {
		return nil, fmt.Errorf("%w: %s in %s", ErrCollectionNotInGraph, name, g.name)
	}
	return g.db.GetCollection(ctx, name)
}

// Delete removes the graph, and its collections when dropCollections is set.
func (g *Graph) Delete(ctx context.Context, dropCollections bool) error {
	req := &core.Request{Method: http.MethodDelete, Path: graphPath(g.name)}
	if dropCollections {
		req.Query = url.Values{"dropCollections": []string{"true"}}
	}
	return g.db.conn.Send(ctx, req, nil)
}

func (db *Database) Graphs(ctx context.Context) ([]*Graph, error) {
	var resp struct {
		Graphs []*rawGraph `json:"graphs"`
	}
	if err := db.conn.SendRequest(ctx, http.MethodGet, "gharial", nil, &resp); err != nil {
		return nil, err
	}

	out := make([]*Graph, 0, len(resp.Graphs))
	for _, raw := range resp.Graphs {
		out = append(out, newGraph(db, raw))
	}
	return out, nil
}

// GetGraph returns the named graph without creating it.
func (db *Database) GetGraph(ctx context.Context, name string) (*Graph, error) {
	var resp struct {
		Graph rawGraph `json:"graph"`
	}
	if err := db.conn.SendRequest(ctx, http.MethodGet, graphPath(name), nil, &resp); err != nil {
		return nil, err
	}
	return newGraph(db, &resp.Graph), nil
}

// Graph returns the named graph, creating an empty one when it does not
// exist.
func (db *Database) Graph(ctx context.Context, name string) (*Graph, error) {
	g, err := db.GetGraph(ctx, name)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	db.log.Debugf("graph %q not found, creating it", name)
	return db.CreateGraph(ctx, name, nil, nil)
}

func (db *Database) CreateGraph(ctx context.Context, name string, edges []EdgeDefinition, orphans []string) (*Graph, error) {
	if edges == nil {
		edges = []EdgeDefinition{}
	}
	if orphans == nil {
		orphans = []string{}
	}

	body := &rawGraph{
		Name:              name,
		EdgeDefinitions:   edges,
		OrphanCollections: orphans,
	}

	var resp struct {
		Graph rawGraph `json:"graph"`
	}
	if err := db.conn.SendRequest(ctx, http.MethodPost, "gharial", body, &resp); err != nil {
		return nil, err
	}
	return newGraph(db, &resp.Graph), nil
}

func graphPath(name string) string {
	return "gharial/" + url.PathEscape(name)
}
