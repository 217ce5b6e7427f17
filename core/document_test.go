package core_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/go-arango/core"
	"github.com/kndndrj/go-arango/core/mock"
)

const documentPath = "/_db/_system/_api/document/people/alice"

func TestDocument_NotPersisted(t *testing.T) {
	r := require.New(t)

	doc := core.NewDocument(map[string]any{"_key": "ignored", "name": "Alice"})
	r.False(doc.Persisted())
	r.Equal(map[string]any{"name": "Alice"}, doc.Content())

	err := doc.Set("name", "Bob")
	r.ErrorIs(err, core.ErrDocumentNotFound)
	r.ErrorIs(doc.Save(context.Background()), core.ErrDocumentNotFound)
	r.ErrorIs(doc.Delete(context.Background()), core.ErrDocumentNotFound)
	r.ErrorIs(doc.Refresh(context.Background()), core.ErrDocumentNotFound)
}

func TestDocument_SaveRefreshDelete(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	transport := mock.NewTransport(
		mock.TransportWithJSON(http.MethodPut, documentPath, http.StatusAccepted,
			`{"_id":"people/alice","_key":"alice","_rev":"r2","_oldRev":"r1"}`),
		mock.TransportWithJSON(http.MethodGet, documentPath, http.StatusOK,
			`{"_id":"people/alice","_key":"alice","_rev":"r3","name":"Alicia"}`),
		mock.TransportWithJSON(http.MethodDelete, documentPath, http.StatusAccepted,
			`{"_id":"people/alice","_key":"alice","_rev":"r3"}`),
	)
	conn, err := core.NewConnection(&core.ConnectionParams{}, transport)
	r.NoError(err)

	doc := core.ParseDocument(conn, map[string]any{
		"_id": "people/alice", "_key": "alice", "_rev": "r1", "name": "Alice",
	})

	r.NoError(doc.Set("name", "Ally"))
	r.NoError(doc.Save(ctx))
	r.Equal("r2", doc.Revision())
	r.Equal(map[string]any{"name": "Ally"}, transport.LastCall().Body)

	r.NoError(doc.Refresh(ctx))
	r.Equal("r3", doc.Revision())
	r.Equal("Alicia", doc.Get("name"))

	r.NoError(doc.Delete(ctx))
	r.Equal(1, transport.CallCount(http.MethodDelete, documentPath))
}

func TestDocument_DeleteMissing(t *testing.T) {
	r := require.New(t)

	transport := mock.NewTransport(
		mock.TransportWithJSON(http.MethodDelete, documentPath, http.StatusNotFound,
			mock.ErrorBody(http.StatusNotFound, 1202, "document not found")),
	)
	conn, err := core.NewConnection(&core.ConnectionParams{}, transport)
	r.NoError(err)

	doc := core.ParseDocument(conn, map[string]any{"_id": "people/alice", "_key": "alice"})
	err = doc.Delete(context.Background())
	r.ErrorIs(err, core.ErrDocumentNotFound)
	r.Equal("1202: document not found", err.Error())
}

func TestEdge_Refresh(t *testing.T) {
	r := require.New(t)

	edgePath := "/_db/_system/_api/document/knows/1"
	transport := mock.NewTransport(
		mock.TransportWithJSON(http.MethodGet, edgePath, http.StatusOK,
			`{"_id":"knows/1","_key":"1","_rev":"r2","_from":"people/alice","_to":"people/carol"}`),
	)
	conn, err := core.NewConnection(&core.ConnectionParams{}, transport)
	r.NoError(err)

	edge := core.ParseEdge(conn, map[string]any{
		"_id": "knows/1", "_key": "1", "_rev": "r1", "_from": "people/alice", "_to": "people/bob",
	})
	r.NoError(edge.Refresh(context.Background()))
	r.Equal("people/carol", edge.To())
	r.Equal("r2", edge.Revision())
}

func TestEdge_Save(t *testing.T) {
	r := require.New(t)

	edgePath := "/_db/_system/_api/document/knows/1"
	transport := mock.NewTransport(
		mock.TransportWithJSON(http.MethodPut, edgePath, http.StatusAccepted,
			`{"_id":"knows/1","_key":"1","_rev":"r2","_oldRev":"r1"}`),
	)
	conn, err := core.NewConnection(&core.ConnectionParams{}, transport)
	r.NoError(err)

	edge := core.ParseEdge(conn, map[string]any{
		"_id": "knows/1", "_key": "1", "_rev": "r1", "_from": "people/alice", "_to": "people/bob", "w": 1,
	})

	r.NoError(edge.Set("w", 2))
	r.NoError(edge.Save(context.Background()))

	r.Equal(map[string]any{"_from": "people/alice", "_to": "people/bob", "w": 2}, transport.LastCall().Body)
	r.Equal("r2", edge.Revision())
	r.Equal(map[string]any{"w": 2}, edge.Content())
}
