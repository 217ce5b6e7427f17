package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kndndrj/go-arango/arango"
	"github.com/kndndrj/go-arango/core"
	"github.com/kndndrj/go-arango/core/builders"
	"github.com/kndndrj/go-arango/history"
	"github.com/kndndrj/go-arango/logging"
)

var (
	queryFile       string
	queryBindVars   []string
	queryBatchSize  int
	queryBatchLimit int
	queryCount      bool
)

var errNoQuery = errors.New("no query provided")

var queryCmd = &cobra.Command{
	Use:   "query [aql]",
	Short: "Execute an AQL query and print the results",
	Long:  "Execute an AQL query and print the results. The query is read from --file, or from stdin when it is \"-\".",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		aql, err := readQuery(cmd.InOrStdin(), args, queryFile)
		if err != nil {
			return e.fail(err)
		}

		bindVars, err := parseBindVars(queryBindVars)
		if err != nil {
			return e.fail(err)
		}

		db, err := e.openDatabase()
		if err != nil {
			return e.fail(err)
		}

		store, err := e.openHistory()
		if err != nil {
			// history is best effort
			e.log.Warnf("query history disabled: %s", err)
		}
		var rec recorder
		if store != nil {
			defer store.Close()
			rec = store
		}

		opts := &arango.QueryOptions{
			Count:      queryCount,
			BatchSize:  queryBatchSize,
			BindVars:   bindVars,
			BatchLimit: queryBatchLimit,
		}

		q := &queryRun{
			db:         db,
			history:    rec,
			connection: e.cfg.Connection.Name,
			formatter:  e.formatter,
			log:        e.log,
		}
		if err := q.run(cmd.Context(), aql, opts, e.out); err != nil {
			return e.fail(err)
		}
		return nil
	},
}

func init() {
	flags := queryCmd.Flags()
	flags.StringVar(&queryFile, "file", "", "Read the query from a file")
	flags.StringArrayVarP(&queryBindVars, "bind", "b", nil, "Bind variable as name=value, value is parsed as JSON when possible")
	flags.IntVar(&queryBatchSize, "batch-size", 0, "Items per batch, 0 for the server default")
	flags.IntVar(&queryBatchLimit, "batch-limit", 0, "Maximum number of batches fetched after the first one, 0 for unbounded")
	flags.BoolVar(&queryCount, "count", false, "Ask the server for the total result count")
}

func readQuery(stdin io.Reader, args []string, file string) (string, error) {
	var (
		aql string
		err error
	)

	switch {
	case file != "":
		var b []byte
		b, err = os.ReadFile(file)
		aql = string(b)
	case len(args) == 1 && args[0] == "-":
		var b []byte
		b, err = io.ReadAll(stdin)
		aql = string(b)
	case len(args) == 1:
		aql = args[0]
	}
	if err != nil {
		return "", fmt.Errorf("reading query: %w", err)
	}

	aql = strings.TrimSpace(aql)
	if aql == "" {
		return "", errNoQuery
	}
	return aql, nil
}

// parseBindVars parses name=value pairs. Values that are not valid JSON are
// taken as strings.
func parseBindVars(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	vars := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid bind variable %q, expected name=value", pair)
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		vars[name] = value
	}
	return vars, nil
}

type recorder interface {
	Record(ctx context.Context, e *history.Entry) error
}

// queryRun executes one query, prints its result and records the run.
type queryRun struct {
	db         *arango.Database
	history    recorder
	connection string
	formatter  core.Formatter
	log        logging.Logger
}

func (q *queryRun) run(ctx context.Context, aql string, opts *arango.QueryOptions, w io.Writer) error {
	entry := history.NewEntry(q.connection, q.db.Name(), aql)
	defer q.record(ctx, entry)

	cursor, err := q.db.Query().Execute(ctx, aql, opts)
	if err != nil {
		entry.Finish(core.CursorStateFailed, 0, err)
		return err
	}

	result := new(core.Result)
	stream := builders.NewCursorResult(ctx, cursor,
		builders.CursorResultWithOnDeleteError(func(err error) {
			q.log.Warnf("releasing cursor %s: %s", cursor.ID(), err)
		}))
	if err := result.SetIter(stream, nil); err != nil {
		entry.Finish(core.CursorStateFailed, result.Len(), err)
		return err
	}
	entry.Finish(core.CursorStateExhausted, result.Len(), nil)

	out, err := result.Format(q.formatter, 0, -1)
	if err != nil {
		return fmt.Errorf("result.Format: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(out)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (q *queryRun) record(ctx context.Context, entry *history.Entry) {
	if q.history == nil {
		return
	}
	if err := q.history.Record(context.WithoutCancel(ctx), entry); err != nil {
		q.log.Warnf("recording query history: %s", err)
	}
}
