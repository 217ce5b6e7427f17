package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kndndrj/go-arango/arango"
	"github.com/kndndrj/go-arango/core"
	"github.com/kndndrj/go-arango/core/builders"
)

var (
	collectionsCount  bool
	collectionsSystem bool
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the collections of the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		db, err := e.openDatabase()
		if err != nil {
			return e.fail(err)
		}

		err = listCollections(cmd.Context(), db, collectionsSystem, collectionsCount, e.formatter, e.out)
		if err != nil {
			return e.fail(err)
		}
		return nil
	},
}

func init() {
	flags := collectionsCmd.Flags()
	flags.BoolVar(&collectionsCount, "count", false, "Include document counts")
	flags.BoolVar(&collectionsSystem, "system", false, "List system collections instead")
}

func collectionType(c *arango.Collection) string {
	if c.IsEdgeCollection() {
		return "edge"
	}
	return "document"
}

func listCollections(ctx context.Context, db *arango.Database, system, withCount bool, formatter core.Formatter, w io.Writer) error {
	list := db.Collections
	if system {
		list = db.SystemCollections
	}

	colls, err := list(ctx)
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}

	header := core.Header{"name", "type", "status"}

	var counts map[string]int64
	if withCount {
		names := make([]string, 0, len(colls))
		for _, c := range colls {
			names = append(names, c.Name())
		}

		counts, err = db.CollectionCounts(ctx, names)
		if err != nil {
			return fmt.Errorf("db.CollectionCounts: %w", err)
		}
		header = append(header, "count")
	}

	next, hasNext := builders.NextSlice(colls, func(c *arango.Collection) any { return c })
	rows := builders.NewResultBuilder().
		WithNextFunc(func() (core.Row, error) {
			row, err := next()
			if err != nil {
				return nil, err
			}

			c := row[0].(*arango.Collection)
			out := core.Row{c.Name(), collectionType(c), c.Status().String()}
			if withCount {
				out = append(out, counts[c.Name()])
			}
			return out, nil
		}, hasNext).
		WithHeader(header).
		WithMeta(&core.Meta{SchemaType: core.SchemaFul}).
		Build()

	result := new(core.Result)
	if err := result.SetIter(rows, nil); err != nil {
		return fmt.Errorf("result.SetIter: %w", err)
	}

	out, err := result.Format(formatter, 0, -1)
	if err != nil {
		return fmt.Errorf("result.Format: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}
