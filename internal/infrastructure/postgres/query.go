package postgres

import (
	"strconv"
	"strings"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// prefixed qualifies every column in a comma-separated list with a table
// alias, for joined selects reusing a shared column list.
func prefixed(columns, prefix string) string {
	parts := strings.Split(columns, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		col := strings.TrimSpace(p)
		if col == "" {
			continue
		}
		out = append(out, prefix+col)
	}
	return strings.Join(out, ", ")
}
