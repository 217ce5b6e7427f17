package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kndndrj/go-arango/core"
)

var _ core.Formatter = (*Table)(nil)

// Table renders rows as a borderless, indexed text table.
type Table struct{}

func NewTable() *Table {
	return &Table{}
}

func (tf *Table) Format(header core.Header, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	tableHeaders := table.Row{""}
	for _, k := range header {
		tableHeaders = append(tableHeaders, k)
	}

	index := 0
	if opts != nil {
		index = opts.ChunkStart
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		indexed := table.Row{index + 1}
		for _, rec := range row {
			indexed = append(indexed, cellString(rec))
		}
		tableRows = append(tableRows, indexed)
		index++
	}

	t := table.NewWriter()
	t.AppendHeader(tableHeaders)
	t.AppendRows(tableRows)
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	t.SuppressTrailingSpaces()

	return []byte(t.Render()), nil
}
