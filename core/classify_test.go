package core_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/go-arango/core"
	"github.com/kndndrj/go-arango/core/mock"
)

func errorResponse(status int, path string, body []byte) *core.Response {
	resp := mock.JSONResponse(status, body)
	resp.Path = path
	return resp
}

func TestClassifyResponse_ClientAndServerRanges(t *testing.T) {
	r := require.New(t)

	body := []byte(`{"error":true,"errorNum":1210,"errorMessage":"unique constraint violated"}`)

	for status := 405; status <= 498; status++ {
		err := core.ClassifyResponse(errorResponse(status, "/_api/document/users", body))
		r.ErrorIs(err, core.ErrClientError, "status %d", status)
		r.Equal("1210: unique constraint violated", err.Error())

		var cerr *core.Error
		r.True(errors.As(err, &cerr))
		r.Equal(status, cerr.StatusCode)
		r.Equal(1210, cerr.Num)
	}

	for status := 500; status <= 598; status++ {
		err := core.ClassifyResponse(errorResponse(status, "/_api/cursor", body))
		r.ErrorIs(err, core.ErrServerError, "status %d", status)
		r.Equal("1210: unique constraint violated", err.Error())
	}
}

func TestClassifyResponse_NoError(t *testing.T) {
	r := require.New(t)

	for _, status := range []int{200, 201, 202, 204, 304, 499, 599} {
		err := core.ClassifyResponse(errorResponse(status, "/_api/document/users/1", nil))
		r.NoError(err, "status %d", status)
	}
}

func TestClassifyResponse_NotFoundByPath(t *testing.T) {
	body := []byte(`{"error":true,"errorNum":1202,"errorMessage":"document not found"}`)

	testCases := []struct {
		path     string
		expected error
		resource core.ResourceKind
	}{
		{"/_api/document/users/1", core.ErrDocumentNotFound, core.ResourceDocument},
		{"/_db/shop/_api/document/users/1", core.ErrDocumentNotFound, core.ResourceDocument},
		{"/_api/collection/users", core.ErrCollectionNotFound, core.ResourceCollection},
		{"/_db/shop/_api/collection/users/properties", core.ErrCollectionNotFound, core.ResourceCollection},
		{"/_api/index/users/12", core.ErrIndexNotFound, core.ResourceIndex},
		{"/_db/shop/_api/index", core.ErrIndexNotFound, core.ResourceIndex},
		{"/_api/cursor/42", core.ErrResourceNotFound, core.ResourceGeneric},
		{"/_db/shop/_api/gharial/social", core.ErrResourceNotFound, core.ResourceGeneric},
		{"/_db/document/_api/cursor", core.ErrResourceNotFound, core.ResourceGeneric},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			r := require.New(t)

			err := core.ClassifyResponse(errorResponse(http.StatusNotFound, tc.path, body))
			r.ErrorIs(err, tc.expected)
			r.ErrorIs(err, core.ErrNotFound)
			r.Equal("1202: document not found", err.Error())
			r.Equal(tc.resource, core.ResourceForPath(tc.path))

			for _, other := range []error{core.ErrDocumentNotFound, core.ErrCollectionNotFound, core.ErrIndexNotFound, core.ErrResourceNotFound} {
				if other != tc.expected {
					r.NotErrorIs(err, other)
				}
			}
		})
	}
}

func TestClassifyResponse_ExactCodesWin(t *testing.T) {
	r := require.New(t)

	body := []byte(`{"error":true,"errorNum":1501,"errorMessage":"syntax error, unexpected identifier"}`)

	// 400 does not depend on the path
	for _, path := range []string{"/_api/cursor", "/_db/x/_api/document/a/b", "/_api/index"} {
		err := core.ClassifyResponse(errorResponse(http.StatusBadRequest, path, body))
		r.ErrorIs(err, core.ErrBadRequest)
		r.NotErrorIs(err, core.ErrClientError)
		r.Equal("1501: syntax error, unexpected identifier", err.Error())
	}

	err := core.ClassifyResponse(errorResponse(http.StatusUnauthorized, "/_api/cursor", body))
	r.ErrorIs(err, core.ErrAuthenticationFailed)
	r.NotErrorIs(err, core.ErrClientError)
	r.Equal("Status 401: Authentication failed", err.Error())

	err = core.ClassifyResponse(errorResponse(http.StatusNotFound, "/_api/document/a/b", body))
	r.ErrorIs(err, core.ErrDocumentNotFound)
	r.NotErrorIs(err, core.ErrClientError)
}

func TestClassifyResponse_MalformedBody(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		path     string
		body     []byte
		expected error
		message  string
	}{
		{
			name:     "bad request without body",
			status:   400,
			path:     "/_api/cursor",
			expected: core.ErrBadRequest,
			message:  "Status 400: The syntax of the request was bad",
		},
		{
			name:     "truncated not found body",
			status:   404,
			path:     "/_api/collection/users",
			body:     []byte(`{"errorNum":12`),
			expected: core.ErrCollectionNotFound,
			message:  "the requested collection does not exist",
		},
		{
			name:     "generic not found",
			status:   404,
			path:     "/_api/simple/all",
			expected: core.ErrResourceNotFound,
			message:  "the requested resource was not found",
		},
		{
			name:     "html server error",
			status:   502,
			path:     "/_api/version",
			body:     []byte("<html>bad gateway</html>"),
			expected: core.ErrServerError,
			message:  "Status 502: Bad Gateway",
		},
		{
			name:     "json without error fields",
			status:   409,
			path:     "/_api/document/users",
			body:     []byte(`{"error":true}`),
			expected: core.ErrClientError,
			message:  "Status 409: Conflict",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			err := core.ClassifyResponse(errorResponse(tc.status, tc.path, tc.body))
			r.ErrorIs(err, tc.expected)
			r.Equal(tc.message, err.Error())

			var cerr *core.Error
			r.True(errors.As(err, &cerr))
			r.Equal(tc.body, cerr.RawBody)
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	r := require.New(t)

	r.Equal("not_found", core.ErrorKindNotFound.String())
	r.Equal("cursor_state", core.ErrorKindCursorState.String())
	r.Equal("document", core.ResourceDocument.String())
	r.Equal("not_found", fmt.Sprint(core.ErrDocumentNotFound.Kind))
}
