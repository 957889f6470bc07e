package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the canvas HTTP API",
		Long: `Serve exposes validation, formatting and the configured store over HTTP.

Routes:
  GET    /health
  POST   /api/validate
  POST   /api/format?indent=N|tab
  GET    /api/canvases
  GET    /api/canvases/{name}
  PUT    /api/canvases/{name}
  DELETE /api/canvases/{name}
  POST   /api/canvases/{name}/nodes
  POST   /api/canvases/{name}/edges

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			srv := server.New(s, server.Options{
				Decode: cfg.Decode.Options(),
				Indent: cfg.Encode.Indent,
			}, c.Logger)

			printInfo("Serving %s store on %s", cfg.Store.Backend, StyleLink.Render("http://"+displayAddr(cfg.Server.Addr)))
			return srv.Run(cmd.Context(), cfg.Server)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

// displayAddr fills in localhost for addresses without a host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
