package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmup/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The persistent --config flag selects the configuration file; it is loaded
// before any subcommand runs, and the log-backed observability hooks are
// registered at the same time.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "mindmup reads, normalizes and renders MindMup maps",
		Long:         `mindmup converts between idea trees and MindMup JSON documents, keeping ids, links and measurements consistent, and renders maps through Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			registerHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mindmup/config.toml)")

	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.linkCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())

	return root
}
