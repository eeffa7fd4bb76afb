package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/idea"
	"github.com/matzehuels/mindmup/pkg/mindmup"
)

// linkCommand creates the link command group. Both subcommands rewrite the
// file in place, keeping existing ids.
func (c *CLI) linkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Add or remove links between ideas",
	}

	cmd.AddCommand(c.linkAddCommand())
	cmd.AddCommand(c.linkRemoveCommand())

	return cmd
}

func (c *CLI) linkAddCommand() *cobra.Command {
	var color, lineStyle string

	cmd := &cobra.Command{
		Use:   "add [file] [from-id] [to-id]",
		Short: "Link two ideas",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("color") {
				color = c.Config.LinkColor
			}
			if !cmd.Flags().Changed("line-style") {
				lineStyle = c.Config.LineStyle
			}
			if err := apperrors.ValidateColor(color); err != nil {
				return err
			}
			if err := apperrors.ValidateLineStyle(lineStyle); err != nil {
				return err
			}

			return c.editLinks(cmd, args, func(t *idea.Tree, from, to *idea.Node) error {
				return t.Links.Add(from, to, idea.LinkStyle{Color: color, LineStyle: lineStyle})
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "link color (default from config)")
	cmd.Flags().StringVar(&lineStyle, "line-style", "", "solid or dashed (default from config)")

	return cmd
}

func (c *CLI) linkRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [file] [from-id] [to-id]",
		Aliases: []string{"remove"},
		Short:   "Remove the link between two ideas",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editLinks(cmd, args, func(t *idea.Tree, from, to *idea.Node) error {
				if _, ok := t.Links.Get(from, to); !ok {
					return apperrors.New(apperrors.ErrCodeNotFound, "no link from %d to %d", from.ID, to.ID)
				}
				t.Links.Remove(from, to)
				return nil
			})
		},
	}
}

// editLinks loads args[0], resolves the ids in args[1] and args[2], applies
// edit and writes the file back.
func (c *CLI) editLinks(cmd *cobra.Command, args []string, edit func(t *idea.Tree, from, to *idea.Node) error) error {
	ctx := cmd.Context()
	path := args[0]
	t, err := c.readMap(ctx, path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var ends [2]*idea.Node
	for i, arg := range args[1:] {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid idea id %q", arg)
		}
		n, ok := t.IDs().Node(id)
		if !ok {
			return apperrors.New(apperrors.ErrCodeNotFound, "%s has no idea %d", path, id)
		}
		ends[i] = n
	}

	if err := edit(t, ends[0], ends[1]); err != nil {
		return err
	}
	data, err := c.encodeMap(ctx, t, mindmup.EncodeOptions{})
	if err != nil {
		return err
	}
	if err := writeOutput(path, data, cmd.OutOrStdout()); err != nil {
		return err
	}
	if path != stdio {
		printSuccess("Updated %s", path)
		printStats(t.Len(), t.Links.Len(), false)
	}
	return nil
}
