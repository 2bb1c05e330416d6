package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mj1618/desktop-tree/internal/model"
)

// FormatAgentString renders a snapshot as the compact line listing agents
// consume: one section per role, one node per line.
func FormatAgentString(state model.TreeState) string {
	var b strings.Builder
	writeSection(&b, "Interactive elements (label - app - type - name - shortcut - center)", model.InteractiveLines(state.Interactive))
	writeSection(&b, "Informative elements (app - name)", model.InformativeLines(state.Informative))
	writeSection(&b, "Scrollable elements (app - name - center - axes)", model.ScrollableLines(state.Scrollable))
	return b.String()
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(title)
	b.WriteString(":\n")
	if len(lines) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
}

// WriteAgent writes v in agent format. Snapshots get the line listing,
// window lists get one window per line; anything else falls back to YAML.
func WriteAgent(w io.Writer, v interface{}) error {
	var text string
	switch r := v.(type) {
	case SnapshotResult:
		text = FormatAgentString(r.TreeState)
	case *SnapshotResult:
		text = FormatAgentString(r.TreeState)
	case model.TreeState:
		text = FormatAgentString(r)
	case WindowsResult:
		var b strings.Builder
		for _, win := range r.Windows {
			mark := " "
			if win.Selected {
				mark = "*"
			}
			fmt.Fprintf(&b, "%s %s (%s)\n", mark, win.Name, win.Reason)
		}
		text = b.String()
	default:
		return WriteYAML(w, v)
	}
	_, err := io.WriteString(w, text)
	return err
}
