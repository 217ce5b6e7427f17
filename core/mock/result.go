package mock

import (
	"errors"
	"fmt"
	"time"

	"github.com/kndndrj/go-arango/core"
)

func newNext(rows []core.Row) (func() (core.Row, error), func() bool) {
	index := 0

	hasNext := func() bool {
		return index < len(rows)
	}

	next := func() (core.Row, error) {
		if !hasNext() {
			return nil, errors.New("no next row")
		}

		row := rows[index]
		index++
		return row, nil
	}

	return next, hasNext
}

type ResultStream struct {
	next    func() (core.Row, error)
	hasNext func() bool
	config  *resultStreamConfig
}

// NewResultStream returns a mocked result stream with provided rows and the
// item header (kind, result).
func NewResultStream(rows []core.Row, opts ...ResultStreamOption) *ResultStream {
	config := &resultStreamConfig{
		nextSleep: 0,
		meta:      &core.Meta{SchemaType: core.SchemaLess},
		header:    core.Header{"kind", "result"},
	}
	for _, opt := range opts {
		opt(config)
	}

	next, hasNext := newNext(rows)

	return &ResultStream{
		next:    next,
		hasNext: hasNext,
		config:  config,
	}
}

func (rs *ResultStream) Meta() *core.Meta {
	return rs.config.meta
}

func (rs *ResultStream) Header() core.Header {
	return rs.config.header
}

func (rs *ResultStream) Next() (core.Row, error) {
	time.Sleep(rs.config.nextSleep)
	return rs.next()
}

func (rs *ResultStream) HasNext() bool {
	return rs.hasNext()
}

func (rs *ResultStream) Close() {}

// NewDocuments returns raw stored documents in form of:
//
//	{"_id": "items/<index>", "_key": "<index>", "_rev": "rev_<index>", "n": <index>}
//
// where the first index is "from" and the last one is one less than "to".
func NewDocuments(from, to int) []any {
	var docs []any

	for i := from; i < to; i++ {
		docs = append(docs, map[string]any{
			core.IDField:       fmt.Sprintf("items/%d", i),
			core.KeyField:      fmt.Sprint(i),
			core.RevisionField: fmt.Sprintf("rev_%d", i),
			"n":                float64(i),
		})
	}
	return docs
}

// NewRows returns item rows for the documents of NewDocuments.
func NewRows(from, to int) []core.Row {
	var rows []core.Row

	for _, doc := range NewDocuments(from, to) {
		rows = append(rows, core.Row{"document", doc})
	}
	return rows
}
