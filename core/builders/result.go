package builders

import (
	"errors"
	"sync"

	"github.com/kndndrj/go-arango/core"
)

var _ core.ResultStream = (*Result)(nil)

// Result is a core.ResultStream assembled from next/hasNext functions.
type Result struct {
	next     func() (core.Row, error)
	hasNext  func() bool
	close    func()
	callback func()
	meta     *core.Meta
	header   core.Header

	closed    bool
	closeOnce sync.Once
}

// SetCallback registers a function called once when the result is closed.
func (r *Result) SetCallback(callback func()) {
	r.callback = callback
}

func (r *Result) Meta() *core.Meta {
	return r.meta
}

func (r *Result) Header() core.Header {
	return r.header
}

func (r *Result) HasNext() bool {
	if r.closed {
		return false
	}
	return r.hasNext()
}

// Next closes the result on the first error.
func (r *Result) Next() (core.Row, error) {
	if r.closed {
		return nil, errors.New("result closed")
	}

	row, err := r.next()
	if err != nil || row == nil {
		r.Close()
		return nil, err
	}
	return row, nil
}

func (r *Result) Close() {
	r.closeOnce.Do(func() {
		r.closed = true
		r.close()
		if r.callback != nil {
			r.callback()
		}
	})
}

// ResultBuilder builds the rows
type ResultBuilder struct {
	next    func() (core.Row, error)
	hasNext func() bool
	header  core.Header
	close   func()
	meta    *core.Meta
}

func NewResultBuilder() *ResultBuilder {
	return &ResultBuilder{
		next:    func() (core.Row, error) { return nil, errors.New("no next row") },
		hasNext: func() bool { return false },
		header:  core.Header{},
		close:   func() {},
		meta:    &core.Meta{},
	}
}

func (b *ResultBuilder) WithNextFunc(fn func() (core.Row, error), has func() bool) *ResultBuilder {
	b.next = fn
	b.hasNext = has
	return b
}

func (b *ResultBuilder) WithHeader(header core.Header) *ResultBuilder {
	b.header = header
	return b
}

func (b *ResultBuilder) WithCloseFunc(fn func()) *ResultBuilder {
	b.close = fn
	return b
}

func (b *ResultBuilder) WithMeta(meta *core.Meta) *ResultBuilder {
	b.meta = meta
	return b
}

func (b *ResultBuilder) Build() *Result {
	return &Result{
		next:    b.next,
		hasNext: b.hasNext,
		header:  b.header,
		close:   b.close,
		meta:    b.meta,
	}
}
