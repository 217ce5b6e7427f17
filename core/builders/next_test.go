package builders_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/go-arango/core"
	"github.com/kndndrj/go-arango/core/builders"
	"github.com/kndndrj/go-arango/core/mock"
)

func drain(t *testing.T, next func() (core.Row, error), hasNext func() bool) []core.Row {
	t.Helper()

	var rows []core.Row
	for hasNext() {
		row, err := next()
		require.NoError(t, err)
		rows = append(rows, row)
	}
	return rows
}

func TestNextSingle(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextSingle(true)
	r.Equal([]core.Row{{true}}, drain(t, next, hasNext))

	_, err := next()
	r.Error(err)
}

func TestNextSlice(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextSlice([]string{"users", "orders"}, func(s string) any { return s + "!" })
	r.Equal([]core.Row{{"users!"}, {"orders!"}}, drain(t, next, hasNext))
}

func TestNextNil(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextNil()
	r.False(hasNext())

	_, err := next()
	r.Error(err)
}

func TestNextCursor(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	continuePath := "/_db/_system/_api/cursor/11"
	transport := mock.NewTransport(
		mock.TransportWithJSON(http.MethodPut, continuePath, http.StatusOK,
			mock.CursorBody("", false, []any{float64(3)}, nil)),
	)
	conn, err := core.NewConnection(&core.ConnectionParams{}, transport)
	r.NoError(err)

	cursor := core.OpenCursor(conn, &core.CursorResponse{
		ID:      "11",
		HasMore: true,
		Result:  []any{mock.NewDocuments(0, 1)[0], "two"},
	})

	next, hasNext := builders.NextCursor(ctx, cursor)

	// hasNext is repeatable and does not skip items
	r.True(hasNext())
	r.True(hasNext())

	rows := drain(t, next, hasNext)
	r.Equal([]core.Row{
		mock.NewRows(0, 1)[0],
		{"raw", "two"},
		{"raw", json.Number("3")},
	}, rows)
	r.Equal(1, transport.CallCount(http.MethodPut, continuePath))
}

func TestNextCursor_Error(t *testing.T) {
	r := require.New(t)

	continuePath := "/_db/_system/_api/cursor/12"
	transport := mock.NewTransport(
		mock.TransportWithJSON(http.MethodPut, continuePath, http.StatusServiceUnavailable,
			mock.ErrorBody(http.StatusServiceUnavailable, 503, "service unavailable")),
	)
	conn, err := core.NewConnection(&core.ConnectionParams{}, transport)
	r.NoError(err)

	cursor := core.OpenCursor(conn, &core.CursorResponse{ID: "12", HasMore: true})
	next, hasNext := builders.NextCursor(context.Background(), cursor)

	r.True(hasNext())
	_, err = next()
	r.ErrorIs(err, core.ErrServerError)
	r.False(hasNext())
}

func TestNewCursorResult(t *testing.T) {
	r := require.New(t)

	deletePath := "/_db/_system/_api/cursor/13"
	transport := mock.NewTransport(
		mock.TransportWithJSON(http.MethodDelete, deletePath, http.StatusAccepted, `{}`),
	)
	conn, err := core.NewConnection(&core.ConnectionParams{}, transport)
	r.NoError(err)

	count := 10
	cursor := core.OpenCursor(conn, &core.CursorResponse{ID: "13", HasMore: true, Result: []any{"a"}, Count: &count})

	result := builders.NewCursorResult(context.Background(), cursor)
	r.Equal(builders.ItemHeader, result.Header())
	r.Equal(core.SchemaLess, result.Meta().SchemaType)
	r.Equal(10, *result.Meta().Count)

	row, err := result.Next()
	r.NoError(err)
	r.Equal(core.Row{"raw", "a"}, row)

	closed := 0
	result.SetCallback(func() { closed++ })
	result.Close()
	result.Close()

	r.Equal(1, closed)
	r.False(result.HasNext())
	r.Equal(1, transport.CallCount(http.MethodDelete, deletePath))
	r.Equal(core.CursorStateDeleted, cursor.State())
}

func TestNewCursorResult_DeleteError(t *testing.T) {
	r := require.New(t)

	deletePath := "/_db/_system/_api/cursor/14"
	transport := mock.NewTransport(
		mock.TransportWithJSON(http.MethodDelete, deletePath, http.StatusInternalServerError,
			mock.ErrorBody(http.StatusInternalServerError, 4, "shutdown in progress")),
	)
	conn, err := core.NewConnection(&core.ConnectionParams{}, transport)
	r.NoError(err)

	cursor := core.OpenCursor(conn, &core.CursorResponse{ID: "14", HasMore: true, Result: []any{"a"}})

	var deleteErrs []error
	result := builders.NewCursorResult(context.Background(), cursor,
		builders.CursorResultWithOnDeleteError(func(err error) {
			deleteErrs = append(deleteErrs, err)
		}))

	result.Close()

	r.Len(deleteErrs, 1)
	r.ErrorIs(deleteErrs[0], core.ErrServerError)
	r.Equal(1, transport.CallCount(http.MethodDelete, deletePath))
}
