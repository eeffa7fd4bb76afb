package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmup/pkg/mindmup"
)

type normalizeOpts struct {
	output        string
	autoIncrement bool
	inPlace       bool
}

// normalizeCommand creates the normalize command.
//
// Normalizing decodes a map and encodes it again: ids are renumbered in
// pre-order (unless --auto-increment=false), leaves are marked expanded,
// the measurements config is rebuilt and links are re-resolved.
func (c *CLI) normalizeCommand() *cobra.Command {
	var opts normalizeOpts

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Decode and re-encode a MindMup map",
		Long: `Decode and re-encode a MindMup map.

Ids are renumbered 1..N in pre-order unless --auto-increment=false, in which
case existing ids are kept and only missing ids are filled in. Use "-" to
read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("auto-increment") {
				opts.autoIncrement = c.Config.AutoIncrement
			}
			return c.runNormalize(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.autoIncrement, "auto-increment", true, "renumber ids in pre-order")
	cmd.Flags().BoolVarP(&opts.inPlace, "in-place", "i", false, "overwrite the input file")

	return cmd
}

func (c *CLI) runNormalize(cmd *cobra.Command, input string, opts normalizeOpts) error {
	ctx := cmd.Context()
	t, err := c.readMap(ctx, input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	data, err := c.encodeMap(ctx, t, mindmup.EncodeOptions{AutoIncrement: opts.autoIncrement})
	if err != nil {
		return err
	}

	output := opts.output
	if opts.inPlace && input != stdio {
		output = input
	}
	if err := writeOutput(output, data, cmd.OutOrStdout()); err != nil {
		return err
	}
	if output != "" && output != stdio {
		printSuccess("Normalized %s", t.Root.Title)
		printStats(t.Len(), t.Links.Len(), false)
		printFile(output)
	}
	return nil
}
