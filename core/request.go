package core

import (
	"context"
	"net/http"
	"net/url"
)

type (
	// Request is a single call against the server's HTTP API.
	Request struct {
		Method string
		// Path is relative to the database API root (e.g. "cursor/123").
		// Paths starting with "/" are sent unchanged.
		Path  string
		Query url.Values
		// Body is encoded as JSON when not nil.
		Body any
	}

	// Response is a completed HTTP exchange as seen by the classifier.
	Response struct {
		StatusCode int
		// Path is the full server path the request was sent to.
		Path   string
		Header http.Header
		Body   []byte
	}

	// Transport executes requests. Errors returned from Do are transport
	// failures (dial, tls, cancellation), never status codes.
	Transport interface {
		Do(ctx context.Context, req *Request) (*Response, error)
	}

	// Requester sends a request, classifies the response and decodes the
	// body into out. A nil out skips decoding.
	Requester interface {
		Send(ctx context.Context, req *Request, out any) error
	}
)

// ContentType returns the response content type header.
func (r *Response) ContentType() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}
