package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/mindmup"
	"github.com/matzehuels/mindmup/pkg/outline"
)

// outlineCommand creates the outline command group.
func (c *CLI) outlineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Convert between TOML outlines and MindMup maps",
	}

	cmd.AddCommand(c.outlineImportCommand())
	cmd.AddCommand(c.outlineExportCommand())

	return cmd
}

// outlineImportCommand creates the "outline import" subcommand.
func (c *CLI) outlineImportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import [outline.toml]",
		Short: "Build a MindMup map from a TOML outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			data, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			o, err := outline.Parse(string(data))
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "%s", input)
			}
			t, err := o.Build()
			if err != nil {
				if apperrors.GetCode(err) != "" {
					return err
				}
				return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "%s", input)
			}

			out, err := c.encodeMap(cmd.Context(), t, mindmup.EncodeOptions{AutoIncrement: true})
			if err != nil {
				return err
			}
			path := outputPath(output, input, "mup")
			if err := writeOutput(path, out, cmd.OutOrStdout()); err != nil {
				return err
			}
			if path != stdio {
				printSuccess("Imported %s", o.Title)
				printStats(t.Len(), t.Links.Len(), false)
				printFile(path)
				printNextStep("Render it", "mindmup render "+path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <input>.mup)")

	return cmd
}

// outlineExportCommand creates the "outline export" subcommand.
func (c *CLI) outlineExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [map]",
		Short: "Write a MindMup map as a TOML outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.readMap(cmd.Context(), args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := outline.Write(outline.FromTree(t), &buf); err != nil {
				return err
			}
			return writeOutput(output, buf.Bytes(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
