package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/kndndrj/go-arango/core"
)

var _ core.Formatter = (*CSV)(nil)

type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) parseSchemaFul(header core.Header, rows []core.Row) [][]string {
	data := [][]string{
		header,
	}
	for _, row := range rows {
		csvRow := make([]string, 0, len(row))
		for _, rec := range row {
			csvRow = append(csvRow, cellString(rec))
		}
		data = append(data, csvRow)
	}

	return data
}

func (cf *CSV) Format(header core.Header, rows []core.Row, _ *core.FormatterOptions) ([]byte, error) {
	// schemaless results are flattened the same way, one item per line
	data := cf.parseSchemaFul(header, rows)

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err := w.WriteAll(data)
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}
