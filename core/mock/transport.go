package mock

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/kndndrj/go-arango/core"
)

var _ core.Transport = (*Transport)(nil)

// ErrNoResponse is returned for requests that have no scripted response.
var ErrNoResponse = errors.New("no response scripted")

// Transport replays scripted responses and records every request it sees.
// Paths are matched against the full server path.
type Transport struct {
	mu     sync.Mutex
	routes map[string][]*scripted
	calls  []*core.Request
	config *transportConfig
}

type scripted struct {
	response *core.Response
	err      error
}

func NewTransport(opts ...TransportOption) *Transport {
	config := &transportConfig{
		sideEffects: make(map[string]func(context.Context) error),
		routes:      make(map[string][]*scripted),
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Transport{
		routes: config.routes,
		config: config,
	}
}

func routeKey(method, path string) string {
	return method + " " + path
}

// Do pops the next scripted response for the method and path. The last
// scripted response of a route is repeated.
func (t *Transport) Do(ctx context.Context, req *core.Request) (*core.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	recorded := *req
	t.calls = append(t.calls, &recorded)

	key := routeKey(req.Method, req.Path)

	if eff, ok := t.config.sideEffects[key]; ok {
		if err := eff(ctx); err != nil {
			return nil, fmt.Errorf("side effect error: %w", err)
		}
	}

	queue := t.routes[key]
	if len(queue) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoResponse, key)
	}

	next := queue[0]
	if len(queue) > 1 {
		t.routes[key] = queue[1:]
	}

	if next.err != nil {
		return nil, next.err
	}

	resp := *next.response
	resp.Path = req.Path
	return &resp, nil
}

// Calls returns all recorded requests in order.
func (t *Transport) Calls() []*core.Request {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*core.Request, len(t.calls))
	copy(out, t.calls)
	return out
}

// CallCount counts recorded requests with the given method and path.
func (t *Transport) CallCount(method, path string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, c := range t.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// LastCall returns the most recent request or nil.
func (t *Transport) LastCall() *core.Request {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.calls) == 0 {
		return nil
	}
	return t.calls[len(t.calls)-1]
}

// JSONResponse builds a response with the JSON content type.
func JSONResponse(status int, body []byte) *core.Response {
	header := make(http.Header)
	header.Set("Content-Type", core.JSONContentType)
	return &core.Response{
		StatusCode: status,
		Header:     header,
		Body:       body,
	}
}
