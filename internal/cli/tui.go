package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mindmup/pkg/idea"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BrowseModel - Interactive tree browser
// =============================================================================

// browseRow is one visible idea.
type browseRow struct {
	node  *idea.Node
	depth int
}

// BrowseModel is the bubbletea model of the browse command. Children of
// collapsed ideas are hidden; toggling an idea flips its collapsed flag on
// the tree itself, so saving writes the new state.
type BrowseModel struct {
	Tree   *idea.Tree
	Cursor int
	Height int
	Offset int
	Dirty  bool

	save   func(*idea.Tree) error
	rows   []browseRow
	status string
}

// NewBrowseModel creates a browser over t. save is called by the "w" key;
// a nil save disables writing.
func NewBrowseModel(t *idea.Tree, save func(*idea.Tree) error) BrowseModel {
	m := BrowseModel{Tree: t, Height: 20, save: save}
	m.rows = visibleRows(t.Root)
	return m
}

// visibleRows lists root and every idea not hidden under a collapsed parent.
func visibleRows(root *idea.Node) []browseRow {
	var rows []browseRow
	var visit func(n *idea.Node, depth int)
	visit = func(n *idea.Node, depth int) {
		rows = append(rows, browseRow{node: n, depth: depth})
		if n.IsCollapsed() {
			return
		}
		for _, c := range n.Children() {
			visit(c, depth+1)
		}
	}
	visit(root, 0)
	return rows
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Selected returns the idea under the cursor.
func (m BrowseModel) Selected() *idea.Node {
	return m.rows[m.Cursor].node
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case " ", "enter":
			m = m.setCollapsed(!m.Selected().IsCollapsed())
		case "right", "l":
			m = m.setCollapsed(false)
		case "left", "h":
			if n := m.Selected(); !n.IsLeaf() && !n.IsCollapsed() {
				m = m.setCollapsed(true)
			} else if p := m.Tree.Parent(n); p != nil {
				m.Cursor = m.rowOf(p)
			}
		case "w":
			m = m.write()
		}
		m = m.scroll()
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m = m.scroll()
	}
	return m, nil
}

func (m BrowseModel) setCollapsed(collapsed bool) BrowseModel {
	n := m.Selected()
	if n.IsLeaf() || n.IsCollapsed() == collapsed {
		return m
	}
	n.SetCollapsed(collapsed)
	m.Dirty = true
	m.rows = visibleRows(m.Tree.Root)
	m.Cursor = m.rowOf(n)
	return m
}

func (m BrowseModel) write() BrowseModel {
	if m.save == nil {
		m.status = StyleWarning.Render("read-only")
		return m
	}
	if err := m.save(m.Tree); err != nil {
		m.status = styleIconError.Render(iconError) + " " + err.Error()
		return m
	}
	m.Dirty = false
	m.status = styleIconSuccess.Render(iconSuccess) + " saved"
	return m
}

func (m BrowseModel) rowOf(n *idea.Node) int {
	for i, r := range m.rows {
		if r.node == n {
			return i
		}
	}
	return 0
}

// scroll keeps the cursor inside the visible window.
func (m BrowseModel) scroll() BrowseModel {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m BrowseModel) View() string {
	var b strings.Builder

	title := m.Tree.Root.Title
	if m.Dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle  ←/→ collapse/expand  w write  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		icon := iconLeaf
		if !r.node.IsLeaf() {
			icon = iconExpanded
			if r.node.IsCollapsed() {
				icon = iconCollapsed
			}
		}
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s%s %s", cursor, strings.Repeat("  ", r.depth), icon, r.node.Title)
		if r.node.IsCollapsed() && !r.node.IsLeaf() {
			line += listDimStyle.Render(fmt.Sprintf(" (%d)", len(r.node.Children())))
		}

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.details()))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	return b.String()
}

// details describes the selected idea on one line.
func (m BrowseModel) details() string {
	n := m.Selected()
	parts := []string{fmt.Sprintf("[%d/%d] id %d", m.Cursor+1, len(m.rows), n.ID)}
	if n.Attr != nil {
		for _, name := range n.Attr.Measurements.Names() {
			v, _ := n.Attr.Measurements.Get(name)
			parts = append(parts, name+"="+v)
		}
	}
	for _, l := range m.Tree.Links.All() {
		if l.From == n {
			parts = append(parts, fmt.Sprintf("%s %d", iconArrow, l.To.ID))
		}
	}
	return strings.Join(parts, "  ")
}
