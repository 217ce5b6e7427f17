package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kndndrj/go-arango/core"
	"github.com/kndndrj/go-arango/history"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously executed queries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		store, err := e.openHistory()
		if err != nil {
			return e.fail(err)
		}
		if store == nil {
			fmt.Fprintln(e.out, "query history is disabled")
			return nil
		}
		defer store.Close()

		if historyClear {
			if err := store.Clear(cmd.Context()); err != nil {
				return e.fail(err)
			}
			e.log.Infof("cleared query history at %s", store.Path())
			return nil
		}

		entries, err := store.List(cmd.Context(), historyLimit)
		if err != nil {
			return e.fail(err)
		}

		if err := printHistory(entries, e.formatter, e.out); err != nil {
			return e.fail(err)
		}
		return nil
	},
}

func init() {
	flags := historyCmd.Flags()
	flags.IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show, 0 for all")
	flags.BoolVar(&historyClear, "clear", false, "Remove all entries")
}

var historyHeader = core.Header{"id", "started", "database", "state", "items", "took", "query", "error"}

func historyRow(e *history.Entry) core.Row {
	return core.Row{
		e.ID,
		e.StartedAt.Format(time.RFC3339),
		e.Database,
		e.State.String(),
		e.Items,
		e.Duration.Round(time.Millisecond).String(),
		e.Query,
		e.Error,
	}
}

func printHistory(entries []*history.Entry, formatter core.Formatter, w io.Writer) error {
	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, historyRow(e))
	}

	out, err := formatter.Format(historyHeader, rows, &core.FormatterOptions{SchemaType: core.SchemaFul})
	if err != nil {
		return fmt.Errorf("formatter.Format: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}
