package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/idea"
	"github.com/matzehuels/mindmup/pkg/mindmup"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var readOnly bool

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Browse a map interactively",
		Long: `Browse a map in the terminal.

Space toggles the collapsed flag of the selected idea and w writes the map
back to the file, keeping existing ids.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			if path == stdio {
				return apperrors.New(apperrors.ErrCodeInvalidPath, "browse needs a file, not stdin")
			}
			t, err := c.readMap(ctx, path, nil)
			if err != nil {
				return err
			}

			var save func(*idea.Tree) error
			if !readOnly {
				save = func(t *idea.Tree) error {
					data, err := c.encodeMap(ctx, t, mindmup.EncodeOptions{})
					if err != nil {
						return err
					}
					return writeOutput(path, data, nil)
				}
			}

			final, err := tea.NewProgram(NewBrowseModel(t, save), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(BrowseModel); ok && m.Dirty {
				printWarning("Unsaved changes to %s discarded", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&readOnly, "read-only", false, "disable writing")

	return cmd
}
