package format

import (
	"fmt"

	"github.com/kndndrj/go-arango/core"
)

// ByName returns the formatter registered under name: json, csv or table.
func ByName(name string) (core.Formatter, error) {
	switch name {
	case "json":
		return NewJSON(), nil
	case "csv":
		return NewCSV(), nil
	case "table", "":
		return NewTable(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", name)
	}
}
