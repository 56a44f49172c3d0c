package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/catalogsync/pkg/api"
)

var (
	statusStyles = map[string]lipgloss.Style{
		"updated":   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		"unchanged": lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		"skipped":   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"failed":    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).PaddingLeft(12)
	totalsStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderTop(true).
			Bold(true)
)

// WritePrettySummary writes a coloured per-file tally of a sync run.
func WritePrettySummary(w io.Writer, s api.SyncSummary) error {
	var b strings.Builder
	for _, f := range s.Files {
		st, ok := statusStyles[f.Status]
		if !ok {
			st = lipgloss.NewStyle()
		}
		b.WriteString(st.Width(10).Render(f.Status) + "  " + f.Path)
		if f.Blocks > 0 {
			fmt.Fprintf(&b, " (%d blocks)", f.Blocks)
		}
		b.WriteString("\n")
		if d := fileDetail(f); d != "" {
			b.WriteString(detailStyle.Render(d) + "\n")
		}
	}
	totals := fmt.Sprintf("%s updated  %s unchanged  %s skipped  %s failed",
		statusStyles["updated"].Render(fmt.Sprint(s.Updated)),
		statusStyles["unchanged"].Render(fmt.Sprint(s.Unchanged)),
		statusStyles["skipped"].Render(fmt.Sprint(s.Skipped)),
		statusStyles["failed"].Render(fmt.Sprint(s.Failed)),
	)
	b.WriteString(totalsStyle.Render(totals) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
