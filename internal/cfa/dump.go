package cfa

import (
	"sort"
	"strings"
)

// Dump renders r as the textual report described in spec.md §6: one
// line per program point, each followed by its `var: (def-sites)`
// bindings. It is debug-only; nothing in the optimizer's rewrite passes
// consumes this output.
func Dump(r *Result) string {
	var b strings.Builder
	for _, e := range r.Entries {
		b.WriteString(e.Line.LineLabel())
		b.WriteByte('\n')

		names := make([]string, 0, len(e.Defs))
		for name := range e.Defs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			b.WriteString("  ")
			b.WriteString(name)
			b.WriteString(": (")
			lines := make([]string, 0, len(e.Defs[name]))
			for l := range e.Defs[name] {
				lines = append(lines, l.LineLabel())
			}
			sort.Strings(lines)
			b.WriteString(strings.Join(lines, ", "))
			b.WriteString(")\n")
		}
	}
	return b.String()
}
