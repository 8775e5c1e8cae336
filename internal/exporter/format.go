package exporter

import (
	"fmt"
	"strconv"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatCell renders one table cell as CSV text
func formatCell(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case int:
		return formatInt(int64(c))
	case int64:
		return formatInt(c)
	case float64:
		return formatFloat(c)
	case nil:
		return ""
	default:
		return fmt.Sprint(c)
	}
}
