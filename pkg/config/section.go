package config

import (
	"fmt"
	"strings"
)

type field struct {
	key   string
	value any
}

// section renders one configuration block for the startup log.
func section(title string, fields ...field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- %s ---\n", title)
	for _, f := range fields {
		fmt.Fprintf(&b, "  %s: %v\n", f.key, f.value)
	}
	return b.String()
}
