package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
)

// validateCommand creates the validate command. Every file is checked even
// when an earlier one fails; the command fails if any file does.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files...]",
		Short: "Check that MindMup maps decode cleanly",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				t, err := c.readMap(cmd.Context(), path, cmd.InOrStdin())
				if err != nil {
					failed++
					printError("%s", path)
					printDetail("%s: %s", apperrors.GetCode(err), apperrors.UserMessage(err))
					continue
				}
				printSuccess("%s", path)
				printStats(t.Len(), t.Links.Len(), false)
				if aliases := t.IDs().Aliases(); len(aliases) > 0 {
					printWarning("%d repeated ids (aliases %v)", len(aliases), aliases)
				}
			}
			if failed > 0 {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "%d of %d maps failed validation", failed, len(args))
			}
			return nil
		},
	}
}
