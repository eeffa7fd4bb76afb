package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/mindmup"
	"github.com/matzehuels/mindmup/pkg/store"
)

// storeCommand creates the store command group. The backend is redis when
// redis_addr is configured and a directory otherwise.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored maps",
	}

	cmd.AddCommand(c.storePutCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeRemoveCommand())

	return cmd
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(fn func(s store.Store) error) error {
	s, err := c.newStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func (c *CLI) storePutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "put [name] [file]",
		Short: "Validate a map and store it under name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			if err := apperrors.ValidateMapName(name); err != nil {
				return err
			}
			ctx := cmd.Context()
			t, err := c.readMap(ctx, path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			data, err := c.encodeMap(ctx, t, mindmup.EncodeOptions{})
			if err != nil {
				return err
			}
			return c.withStore(func(s store.Store) error {
				if err := s.Put(ctx, name, data); err != nil {
					return err
				}
				printSuccess("Stored %s", name)
				printStats(t.Len(), t.Links.Len(), false)
				return nil
			})
		},
	}
}

func (c *CLI) storeGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [name]",
		Short: "Print a stored map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(s store.Store) error {
				data, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return storeError(args[0], err)
				}
				return writeOutput(output, data, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List stored maps",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(s store.Store) error {
				names, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(names) == 0 {
					printInfo("No stored maps")
					return nil
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

func (c *CLI) storeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"remove"},
		Short:   "Remove a stored map",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(s store.Store) error {
				if err := s.Delete(cmd.Context(), args[0]); err != nil {
					return storeError(args[0], err)
				}
				printSuccess("Removed %s", args[0])
				return nil
			})
		},
	}
}

func storeError(name string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.New(apperrors.ErrCodeNotFound, "no stored map %q", name)
	}
	return err
}
