package arango_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/go-arango/arango"
	"github.com/kndndrj/go-arango/core"
	"github.com/kndndrj/go-arango/core/mock"
)

func TestCollection_Lifecycle(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	db, tr := newTestDatabase(t,
		withCollection("users", 2),
		mock.TransportWithJSON(http.MethodGet, api+"collection/users/count", http.StatusOK,
			`{"name":"users","count":42}`),
		mock.TransportWithJSON(http.MethodPut, api+"collection/users/unload", http.StatusOK,
			`{"name":"users","status":4}`),
		mock.TransportWithJSON(http.MethodPut, api+"collection/users/load", http.StatusOK,
			`{"name":"users","status":3}`),
		mock.TransportWithJSON(http.MethodPut, api+"collection/users/truncate", http.StatusOK,
			`{"name":"users"}`),
		mock.TransportWithJSON(http.MethodPut, api+"collection/users/rename", http.StatusOK,
			`{"name":"people"}`),
		mock.TransportWithJSON(http.MethodDelete, api+"collection/people", http.StatusOK,
			`{"id":"100"}`),
	)

	coll := getCollection(t, db, "users")
	r.Equal("100", coll.ID())
	r.Same(db, coll.Database())

	count, err := coll.Count(ctx)
	r.NoError(err)
	r.EqualValues(42, count)

	r.NoError(coll.Unload(ctx))
	r.True(coll.Status().BeingUnloaded())
	r.NoError(coll.Load(ctx))
	r.True(coll.Status().Loaded())

	r.NoError(coll.Truncate(ctx))

	r.NoError(coll.Rename(ctx, "people"))
	r.Equal("people", coll.Name())
	r.JSONEq(`{"name":"people"}`, bodyJSON(t, tr.LastCall()))

	r.NoError(coll.Delete(ctx))
	r.Equal(1, tr.CallCount(http.MethodDelete, api+"collection/people"))
}

func TestCollection_Properties(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	db, tr := newTestDatabase(t,
		withCollection("users", 2),
		mock.TransportWithJSON(http.MethodGet, api+"collection/users/properties", http.StatusOK, `{
			"name": "users",
			"waitForSync": true,
			"keyOptions": {"type": "traditional", "allowUserKeys": true}
		}`),
		mock.TransportWithJSON(http.MethodPut, api+"collection/users/properties", http.StatusOK,
			`{"name":"users","waitForSync":false}`),
		mock.TransportWithJSON(http.MethodGet, api+"collection/users/figures", http.StatusOK, `{
			"name": "users",
			"figures": {
				"alive": {"count": 7, "size": 1024},
				"dead": {"count": 1, "size": 12, "deletion": 1},
				"indexes": {"count": 2, "size": 4096}
			}
		}`),
	)

	coll := getCollection(t, db, "users")

	wait, err := coll.WaitForSync(ctx)
	r.NoError(err)
	r.True(wait)

	keys, err := coll.KeyOptions(ctx)
	r.NoError(err)
	r.Equal(&arango.KeyOptions{Type: "traditional", AllowUserKeys: true}, keys)

	r.NoError(coll.SetWaitForSync(ctx, false))
	r.JSONEq(`{"waitForSync":false}`, bodyJSON(t, tr.LastCall()))

	fig, err := coll.Figure(ctx)
	r.NoError(err)
	r.EqualValues(7, fig.AliveCount)
	r.EqualValues(1024, fig.AliveSize)
	r.EqualValues(1, fig.DeadDeletion)
	r.EqualValues(2, fig.IndexesCount)
	// missing on this server version
	r.Zero(fig.JournalsCount)
	r.NotEmpty(fig.Raw)
}

func TestCollection_Documents(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	db, tr := newTestDatabase(t,
		withCollection("users", 2),
		mock.TransportWithJSON(http.MethodGet, api+"document/users/alice", http.StatusOK,
			`{"_id":"users/alice","_key":"alice","_rev":"1","age":30}`),
		mock.TransportWithJSON(http.MethodGet, api+"document/users/ghost", http.StatusNotFound,
			mock.ErrorBody(http.StatusNotFound, 1202, "document not found")),
		mock.TransportWithJSON(http.MethodPost, api+"document/users", http.StatusAccepted,
			`{"_id":"users/bob","_key":"bob","_rev":"2"}`),
		mock.TransportWithJSON(http.MethodPut, api+"document/users/bob", http.StatusAccepted,
			`{"_id":"users/bob","_key":"bob","_rev":"3"}`),
	)

	coll := getCollection(t, db, "users")

	alice, err := coll.Document(ctx, "alice")
	r.NoError(err)
	r.Equal("users/alice", alice.ID())
	r.Equal(json.Number("30"), alice.Get("age"))
	r.True(alice.Persisted())

	_, err = coll.Document(ctx, "ghost")
	r.ErrorIs(err, core.ErrDocumentNotFound)

	_, err = coll.Edge(ctx, "alice")
	r.ErrorIs(err, arango.ErrNotEdge)

	bob, err := coll.CreateDocument(ctx, map[string]any{"name": "bob"})
	r.NoError(err)
	r.Equal("users/bob", bob.ID())
	r.Equal("bob", bob.Key())
	r.Equal("2", bob.Revision())
	r.Equal(map[string]any{"name": "bob"}, bob.Content())
	r.JSONEq(`{"name":"bob"}`, bodyJSON(t, tr.LastCall()))

	replaced, err := coll.ReplaceDocument(ctx, "bob", map[string]any{"name": "robert"})
	r.NoError(err)
	r.Equal("3", replaced.Revision())
	r.Equal("robert", replaced.Get("name"))

	_, err = coll.CreateEdge(ctx, "users/alice", "users/bob", nil)
	r.ErrorIs(err, arango.ErrNotEdgeCollection)
}

func TestCollection_Edges(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	db, tr := newTestDatabase(t,
		withCollection("knows", 3),
		mock.TransportWithJSON(http.MethodPost, api+"document/knows", http.StatusCreated,
			`{"_id":"knows/1","_key":"1","_rev":"a"}`),
		mock.TransportWithJSON(http.MethodGet, api+"document/knows/1", http.StatusOK,
			`{"_id":"knows/1","_key":"1","_rev":"a","_from":"users/alice","_to":"users/bob","since":2020}`),
	)

	coll := getCollection(t, db, "knows")
	r.True(coll.IsEdgeCollection())

	created, err := coll.CreateEdge(ctx, "users/alice", "users/bob", map[string]any{"since": 2020})
	r.NoError(err)
	r.Equal("knows/1", created.ID())
	r.Equal("users/alice", created.From())
	r.Equal("users/bob", created.To())
	r.JSONEq(`{"_from":"users/alice","_to":"users/bob","since":2020}`, bodyJSON(t, tr.LastCall()))

	fetched, err := coll.Edge(ctx, "1")
	r.NoError(err)
	r.Equal("users/bob", fetched.To())
	r.Equal(json.Number("2020"), fetched.Get("since"))
}

func TestCollection_Indices(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	db, tr := newTestDatabase(t,
		withCollection("users", 2),
		mock.TransportWithJSON(http.MethodGet, api+"index", http.StatusOK, `{
			"indexes": [
				{"id": "users/0", "type": "primary", "fields": ["_key"], "unique": true},
				{"id": "users/12", "type": "persistent", "fields": ["email"], "unique": true}
			]
		}`),
		mock.TransportWithJSON(http.MethodPost, api+"index", http.StatusCreated,
			`{"id":"users/13","type":"persistent","fields":["age"],"unique":false}`),
		mock.TransportWithJSON(http.MethodGet, api+"index/users/13", http.StatusOK,
			`{"id":"users/13","type":"persistent","fields":["age"],"unique":false}`),
		mock.TransportWithJSON(http.MethodGet, api+"index/users/99", http.StatusNotFound,
			mock.ErrorBody(http.StatusNotFound, 1212, "index not found")),
		mock.TransportWithJSON(http.MethodDelete, api+"index/users/13", http.StatusOK,
			`{"id":"users/13"}`),
	)

	coll := getCollection(t, db, "users")

	indices, err := coll.Indices(ctx)
	r.NoError(err)
	r.Len(indices, 2)
	r.Equal("persistent", indices[1].Type)
	r.Equal([]string{"email"}, indices[1].Fields)
	r.Equal("users", tr.LastCall().Query.Get("collection"))

	added, err := coll.AddIndex(ctx, "persistent", []string{"age"}, false)
	r.NoError(err)
	r.Equal("users/13", added.ID)
	r.Same(coll, added.Collection())
	r.JSONEq(`{"type":"persistent","fields":["age"],"unique":false}`, bodyJSON(t, tr.LastCall()))

	byID, err := coll.Index(ctx, "13")
	r.NoError(err)
	r.Equal([]string{"age"}, byID.Fields)

	_, err = coll.Index(ctx, "users/99")
	r.ErrorIs(err, core.ErrIndexNotFound)

	r.NoError(added.Delete(ctx))
	r.Equal(1, tr.CallCount(http.MethodDelete, api+"index/users/13"))
}
