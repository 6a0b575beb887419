package repo

import (
	"fmt"

	"github.com/fatih/color"

	"gitlet/internal/content"
)

// Output accents for interactive terminals. color auto-disables when stdout
// is not a terminal, so piped output stays byte-exact; the check looks at
// stdout, not at the writer passed in.
var (
	headerColor = color.New(color.FgCyan)
	branchColor = color.New(color.FgGreen)
)

func (r *Repository) printHeader(title string) {
	headerColor.Fprintf(r.out, "=== %s ===\n", title)
}

func (r *Repository) printCurrentBranch(name string) {
	branchColor.Fprintf(r.out, "*%s\n", name)
}

func (r *Repository) printLogEntry(c *content.Commit) {
	fmt.Fprint(r.out, c.LogEntry())
}
