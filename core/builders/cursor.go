package builders

import (
	"context"
	"errors"

	"github.com/kndndrj/go-arango/core"
)

// ItemHeader is the header of results built from cursor items.
var ItemHeader = core.Header{"kind", "result"}

// ItemRow converts a cursor item to a row of ItemHeader.
func ItemRow(item core.Item) core.Row {
	return core.Row{core.ItemKind(item), core.ItemValue(item)}
}

// NextCursor creates next and hasNext functions over a cursor. hasNext looks
// one item ahead, so it may fetch the next batch.
func NextCursor(ctx context.Context, cursor *core.Cursor) (func() (core.Row, error), func() bool) {
	var (
		peeked   core.Item
		peekErr  error
		havePeek bool
		done     bool
	)

	fill := func() {
		if havePeek || done {
			return
		}

		item, ok, err := cursor.Next(ctx)
		switch {
		case err != nil:
			peekErr = err
			havePeek = true
			done = true
		case !ok:
			done = true
		default:
			peeked = item
			havePeek = true
		}
	}

	hasNext := func() bool {
		fill()
		return havePeek
	}

	next := func() (core.Row, error) {
		fill()
		if !havePeek {
			return nil, errors.New("no next row")
		}

		item, err := peeked, peekErr
		peeked, peekErr, havePeek = nil, nil, false
		if err != nil {
			return nil, err
		}
		return ItemRow(item), nil
	}

	return next, hasNext
}

// CursorResultOption configures NewCursorResult.
type CursorResultOption func(*cursorResultConfig)

type cursorResultConfig struct {
	onDeleteError func(error)
}

// CursorResultWithOnDeleteError sets a callback for errors from releasing
// the server-side cursor on close.
func CursorResultWithOnDeleteError(fn func(error)) CursorResultOption {
	return func(c *cursorResultConfig) {
		c.onDeleteError = fn
	}
}

// NewCursorResult wraps a cursor in a schemaless result stream. Closing the
// result deletes the server-side cursor. Delete errors go to the
// CursorResultWithOnDeleteError callback and are dropped without one.
func NewCursorResult(ctx context.Context, cursor *core.Cursor, opts ...CursorResultOption) *Result {
	config := &cursorResultConfig{}
	for _, opt := range opts {
		opt(config)
	}

	meta := &core.Meta{SchemaType: core.SchemaLess}
	if count, ok := cursor.Count(); ok {
		meta.Count = &count
	}

	return NewResultBuilder().
		WithNextFunc(NextCursor(ctx, cursor)).
		WithHeader(ItemHeader).
		WithMeta(meta).
		WithCloseFunc(func() {
			err := cursor.Delete(context.WithoutCancel(ctx))
			if err != nil && config.onDeleteError != nil {
				config.onDeleteError(err)
			}
		}).
		Build()
}
