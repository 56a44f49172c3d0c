package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/catalogsync/internal/present/format"
	"github.com/mithrel/catalogsync/internal/util"
	"github.com/mithrel/catalogsync/pkg/api"
)

// RenderTable opens an interactive table to browse catalog nodes. Pressing
// enter closes it and writes the detail view of the selected node to w.
func RenderTable(ctx context.Context, w io.Writer, nodes []api.NodeSummary, headers bool, detail func(id string) string) error {
	m := newModel(nodes, headers)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := final.(model)
	if !ok || fm.chosen == "" || detail == nil {
		return nil
	}
	return format.WritePrettyMarkdown(w, detail(fm.chosen), "", 0)
}

type model struct {
	table   table.Model
	all     []api.NodeSummary
	visible []api.NodeSummary
	headers bool

	filtering bool
	query     string
	chosen    string
}

func newModel(nodes []api.NodeSummary, headers bool) model {
	m := model{all: nodes, visible: nodes, headers: headers}
	m.table = table.New(
		table.WithColumns(columns(headers)),
		table.WithFocused(true),
		table.WithHeight(min(20, max(3, len(nodes)+3))),
	)
	m.setRows()
	m.applyStyles()
	return m
}

func columns(headers bool) []table.Column {
	cols := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Kind", Width: 10},
		{Title: "Name", Width: 36},
		{Title: "Price", Width: 30},
	}
	if !headers {
		for i := range cols {
			cols[i].Title = ""
		}
	}
	return cols
}

func (m *model) setRows() {
	rows := make([]table.Row, 0, len(m.visible))
	for _, n := range m.visible {
		kind := n.Kind
		if n.Subkind != "" {
			kind = n.Subkind
		}
		indent := strings.Repeat("  ", strings.Count(n.ID, "."))
		rows = append(rows, table.Row{n.ID, kind, truncate(indent+n.Name, 36), truncate(n.Price, 30)})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

// applyFilter narrows the rows to nodes whose name fuzzily matches the query.
func (m *model) applyFilter() {
	if m.query == "" {
		m.visible = m.all
		m.setRows()
		return
	}
	names := make([]string, len(m.all))
	byName := make(map[string][]api.NodeSummary, len(m.all))
	for i, n := range m.all {
		names[i] = n.Name
		byName[n.Name] = append(byName[n.Name], n)
	}
	var out []api.NodeSummary
	seen := map[string]bool{}
	for _, name := range util.Suggest(m.query, names, 0) {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, byName[name]...)
	}
	m.visible = out
	m.setRows()
}

func (m *model) applyStyles() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(3, msg.Height-4))
		return m, nil
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.filtering = true
			return m, nil
		case "enter":
			if i := m.table.Cursor(); i >= 0 && i < len(m.visible) {
				m.chosen = m.visible[i].ID
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.filtering = false
		m.query = ""
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.query += string(msg.Runes)
	default:
		return m, nil
	}
	m.applyFilter()
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	if len(m.visible) == 0 {
		b.WriteString("(no services)\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}
	if m.filtering {
		fmt.Fprintf(&b, "filter: %s█\n", m.query)
	} else {
		b.WriteString("↑/↓ navigate • / filter • enter show • q quit\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
