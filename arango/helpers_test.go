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

const api = "/_db/shop/_api/"

func newTestDatabase(t *testing.T, opts ...mock.TransportOption) (*arango.Database, *mock.Transport) {
	t.Helper()

	tr := mock.NewTransport(opts...)
	db, err := arango.Open(
		&core.ConnectionParams{URL: "http://localhost:8529", Database: "shop"},
		arango.WithTransport(tr),
	)
	require.NoError(t, err)

	return db, tr
}

// bodyJSON returns the JSON encoding of a recorded request body.
func bodyJSON(t *testing.T, req *core.Request) string {
	t.Helper()

	b, err := json.Marshal(req.Body)
	require.NoError(t, err)
	return string(b)
}

func withCollection(name string, typ int) mock.TransportOption {
	return mock.TransportWithJSON(http.MethodGet, api+"collection/"+name, http.StatusOK, map[string]any{
		"id":       "100",
		"name":     name,
		"status":   3,
		"type":     typ,
		"isSystem": false,
	})
}

func getCollection(t *testing.T, db *arango.Database, name string) *arango.Collection {
	t.Helper()

	coll, err := db.GetCollection(context.Background(), name)
	require.NoError(t, err)
	return coll
}
