package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

var ErrNoTransport = errors.New("no transport provided")

type ConnectionID string

// Connection is the Requester bound to one database. It sends requests through
// its transport, classifies the response and decodes the body.
type Connection struct {
	params           *ConnectionParams
	unexpandedParams *ConnectionParams

	transport Transport
}

var _ Requester = (*Connection)(nil)

func (c *Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.params)
}

func NewConnection(params *ConnectionParams, transport Transport) (*Connection, error) {
	if transport == nil {
		return nil, ErrNoTransport
	}

	expanded := params.Expand()

	if expanded.ID == "" {
		expanded.ID = ConnectionID(uuid.New().String())
	}
	if expanded.Database == "" {
		expanded.Database = DefaultDatabase
	}

	return &Connection{
		params:           expanded,
		unexpandedParams: params,

		transport: transport,
	}, nil
}

func (c *Connection) GetID() ConnectionID {
	return c.params.ID
}

func (c *Connection) GetName() string {
	return c.params.Name
}

func (c *Connection) GetDatabase() string {
	return c.params.Database
}

func (c *Connection) GetParams() *ConnectionParams {
	return c.params
}

func (c *Connection) GetUnexpandedParams() *ConnectionParams {
	return c.unexpandedParams
}

// WithDatabase returns a connection to another database sharing the same
// transport.
func (c *Connection) WithDatabase(name string) *Connection {
	params := *c.params
	params.Database = name
	return &Connection{
		params:           &params,
		unexpandedParams: c.unexpandedParams,
		transport:        c.transport,
	}
}

// Send resolves the request path against the database, executes the request
// and decodes a successful response into out. out == nil ignores the body.
func (c *Connection) Send(ctx context.Context, req *Request, out any) error {
	resolved := *req
	resolved.Path = c.resolve(req.Path)

	resp, err := c.transport.Do(ctx, &resolved)
	if err != nil {
		return fmt.Errorf("transport.Do: %w", err)
	}
	if resp.Path == "" {
		resp.Path = resolved.Path
	}

	if err := ClassifyResponse(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	return DecodeResponse(resp, out)
}

// SendRequest is a shorthand for Send with a database relative path.
func (c *Connection) SendRequest(ctx context.Context, method, path string, body, out any) error {
	return c.Send(ctx, &Request{Method: method, Path: path, Body: body}, out)
}

// SendWithoutDatabase addresses the server wide API, e.g. "database".
func (c *Connection) SendWithoutDatabase(ctx context.Context, method, path string, body, out any) error {
	return c.Send(ctx, &Request{Method: method, Path: "/_api/" + path, Body: body}, out)
}

// Query opens a cursor for an AQL query.
func (c *Connection) Query(ctx context.Context, body any, opts ...CursorOption) (*Cursor, error) {
	return QueryCursor(ctx, c, &Request{Method: http.MethodPost, Path: "cursor", Body: body}, opts...)
}

func (c *Connection) resolve(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/_db/" + url.PathEscape(c.params.Database) + "/_api/" + path
}
