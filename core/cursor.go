package core

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"
)

// CursorResponse is the wire shape of a query response and of every
// continuation.
type CursorResponse struct {
	ID      string `json:"id"`
	HasMore bool   `json:"hasMore"`
	Result  []any  `json:"result"`
	Count   *int   `json:"count,omitempty"`
}

// Cursor streams a server-side result set batch by batch. Items are yielded
// once, in server order. A Cursor is not safe for concurrent use.
type Cursor struct {
	req Requester

	id      string
	hasMore bool
	batch   []any
	count   *int

	state   CursorState
	failure error

	fetches    int
	batchLimit int
}

type CursorOption func(*Cursor)

// WithBatchLimit bounds the number of continuation requests a cursor may
// issue. Zero means unbounded.
func WithBatchLimit(limit int) CursorOption {
	return func(c *Cursor) {
		if limit > 0 {
			c.batchLimit = limit
		}
	}
}

// OpenCursor wraps the first response of a query. No request is issued.
func OpenCursor(req Requester, first *CursorResponse, opts ...CursorOption) *Cursor {
	c := &Cursor{req: req}
	for _, opt := range opts {
		opt(c)
	}

	if first == nil {
		first = &CursorResponse{}
	}
	c.apply(first)

	return c
}

// QueryCursor sends a query request and opens a cursor on its response.
func QueryCursor(ctx context.Context, req Requester, r *Request, opts ...CursorOption) (*Cursor, error) {
	var first CursorResponse
	if err := req.Send(ctx, r, &first); err != nil {
		return nil, err
	}
	return OpenCursor(req, &first, opts...), nil
}

func (c *Cursor) apply(resp *CursorResponse) {
	c.id = resp.ID
	c.hasMore = resp.HasMore
	c.batch = resp.Result
	if resp.Count != nil {
		count := *resp.Count
		c.count = &count
	}
	c.updateState()
}

func (c *Cursor) updateState() {
	switch {
	case c.hasMore:
		c.state = CursorStateOpen
	case len(c.batch) > 0:
		c.state = CursorStateDraining
	default:
		c.state = CursorStateExhausted
	}
}

// ID is the continuation id, empty when the whole result fit in one batch.
func (c *Cursor) ID() string {
	return c.id
}

// Count is the total item count, present only when counting was requested.
func (c *Cursor) Count() (int, bool) {
	if c.count == nil {
		return 0, false
	}
	return *c.count, true
}

func (c *Cursor) HasMore() bool {
	return c.hasMore
}

func (c *Cursor) State() CursorState {
	return c.state
}

// Next returns the next item. ok is false once the cursor is exhausted, and
// stays false on every later call. A request is made only when the buffered
// batch is used up and the server holds more.
func (c *Cursor) Next(ctx context.Context) (item Item, ok bool, err error) {
	switch c.state {
	case CursorStateDeleted:
		return nil, false, cursorStateError("cursor has been deleted", nil)
	case CursorStateFailed:
		return nil, false, cursorStateError("cursor failed on a previous fetch", c.failure)
	case CursorStateExhausted:
		return nil, false, nil
	}

	for len(c.batch) == 0 {
		if !c.hasMore {
			c.state = CursorStateExhausted
			return nil, false, nil
		}

		if err := c.fetch(ctx); err != nil {
			c.state = CursorStateFailed
			c.failure = err
			return nil, false, err
		}
	}

	value := c.batch[0]
	c.batch[0] = nil
	c.batch = c.batch[1:]
	c.updateState()

	return bindItem(ClassifyItem(value), c.req), true, nil
}

func (c *Cursor) fetch(ctx context.Context) error {
	if c.id == "" {
		return cursorStateError("server reported more results without a cursor id", nil)
	}
	if c.batchLimit > 0 && c.fetches >= c.batchLimit {
		return cursorStateError(fmt.Sprintf("batch limit of %d continuations exceeded", c.batchLimit), nil)
	}

	var resp CursorResponse
	err := c.req.Send(ctx, &Request{Method: http.MethodPut, Path: cursorPath(c.id)}, &resp)
	if err != nil {
		return err
	}
	c.fetches++

	c.apply(&resp)
	return nil
}

// Items is the lazy, single-pass sequence of the remaining items. It stops
// after yielding the first error.
func (c *Cursor) Items(ctx context.Context) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		for {
			item, ok, err := c.Next(ctx)
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok {
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// All drains the cursor.
func (c *Cursor) All(ctx context.Context) ([]Item, error) {
	var items []Item
	for item, err := range c.Items(ctx) {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Delete releases the server-side cursor. It is idempotent. No request is
// made when the server holds nothing for this cursor.
func (c *Cursor) Delete(ctx context.Context) error {
	if c.state == CursorStateDeleted {
		return nil
	}

	if c.id != "" && c.state != CursorStateExhausted {
		err := c.req.Send(ctx, &Request{Method: http.MethodDelete, Path: cursorPath(c.id)}, nil)
		if err != nil {
			return err
		}
	}

	c.state = CursorStateDeleted
	c.batch = nil
	c.hasMore = false
	return nil
}

func cursorPath(id string) string {
	return "cursor/" + url.PathEscape(id)
}
