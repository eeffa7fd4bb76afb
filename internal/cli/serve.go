package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmup/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		ttl     time.Duration
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored maps over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("listen") {
				listen = c.Config.Listen
			}
			st, err := c.newStore()
			if err != nil {
				return err
			}
			defer st.Close()
			ch, err := c.newCache(noCache)
			if err != nil {
				return err
			}
			defer ch.Close()

			srv := server.New(server.Config{
				Store:  st,
				Cache:  ch,
				Logger: c.Logger,
				TTL:    ttl,
			})
			printInfo("Serving on %s", StyleLink.Render("http://"+listen))
			printKeyValue("store", c.storeLocation())
			printKeyValue("cache ttl", ttl.String())
			return srv.ListenAndServe(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	cmd.Flags().DurationVar(&ttl, "cache-ttl", 24*time.Hour, "lifetime of cached renders")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
