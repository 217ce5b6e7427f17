package format

import (
	"encoding/json"
	"fmt"
)

// cellString renders a single value for flat outputs. Objects and arrays are
// written as compact JSON.
func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
