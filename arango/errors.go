package arango

import "errors"

var (
	// ErrNoCollectionProvided is returned by simple queries that are not
	// bound to a collection.
	ErrNoCollectionProvided = errors.New("simple queries need a collection")
	// ErrCollectionNotInGraph is returned when a vertex collection is
	// requested from a graph that does not use it.
	ErrCollectionNotInGraph = errors.New("collection is not part of the graph")
	ErrNotEdgeCollection    = errors.New("not an edge collection")
	ErrNotEdge              = errors.New("record is not an edge")
)
