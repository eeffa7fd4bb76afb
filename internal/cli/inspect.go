package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmup/pkg/idea"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print a map as a tree or a measurement table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.readMap(cmd.Context(), args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asTable {
				fmt.Fprintln(w, measurementTable(t))
				return nil
			}
			fmt.Fprintln(w, ideaTree(t))
			writeLinks(w, t)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "print measurements as a table")

	return cmd
}

// ideaTree renders t with one line per idea: id, title, collapse state and
// measurements.
func ideaTree(t *idea.Tree) string {
	var build func(n *idea.Node) *tree.Tree
	build = func(n *idea.Node) *tree.Tree {
		node := tree.Root(ideaLabel(n))
		for _, child := range n.Children() {
			if child.IsLeaf() {
				node.Child(ideaLabel(child))
			} else {
				node.Child(build(child))
			}
		}
		return node
	}
	return build(t.Root).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim).
		RootStyle(StyleTitle).
		String()
}

func ideaLabel(n *idea.Node) string {
	icon := iconLeaf
	switch {
	case !n.IsLeaf() && n.IsCollapsed():
		icon = iconCollapsed
	case !n.IsLeaf():
		icon = iconExpanded
	}

	var b strings.Builder
	b.WriteString(StyleDim.Render(icon) + " ")
	b.WriteString(StyleNumber.Render(fmt.Sprintf("[%d]", n.ID)) + " ")
	b.WriteString(StyleValue.Render(n.Title))
	if n.Attr != nil {
		for _, name := range n.Attr.Measurements.Names() {
			v, _ := n.Attr.Measurements.Get(name)
			b.WriteString(StyleDim.Render(fmt.Sprintf("  %s=%s", name, v)))
		}
	}
	return b.String()
}

func writeLinks(w io.Writer, t *idea.Tree) {
	links := t.Links.All()
	if len(links) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleTitle.Render("Links"))
	for _, l := range links {
		fmt.Fprintf(w, "  %s %s %s %s\n",
			StyleNumber.Render(strconv.Itoa(l.From.ID)),
			StyleLink.Render(iconArrow),
			StyleNumber.Render(strconv.Itoa(l.To.ID)),
			StyleDim.Render(fmt.Sprintf("(%s %s)", l.Style.LineStyle, l.Style.Color)))
	}
}

// measurementTable lists every idea with one column per measurement name.
func measurementTable(t *idea.Tree) string {
	names := t.RecomputeMeasurements()
	headers := append([]string{"ID", "Title"}, names...)

	var rows [][]string
	for s := range t.Walk() {
		row := []string{strconv.Itoa(s.Node.ID), strings.Repeat("  ", s.Depth) + s.Node.Title}
		for _, name := range names {
			v, _ := s.Node.Measure(name)
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle
		}).
		String()
}
