package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/config"
	canvasio "github.com/matzehuels/jsoncanvas/pkg/io"
	"github.com/matzehuels/jsoncanvas/pkg/store"
)

// storeCommand creates the store command group.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage canvases in the configured store",
		Long: `Store moves canvases in and out of the backend selected by [store] in the
config file: a directory of .canvas files (default), Redis or MongoDB.`,
	}

	cmd.AddCommand(c.storePutCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// openStore loads the config and opens its store. Remote backends get a
// spinner while connecting.
func (c *CLI) openStore(cmd *cobra.Command) (store.Store, config.Config, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	ctx := cmd.Context()

	var spin *spinner
	switch cfg.Store.Backend {
	case config.BackendRedis, config.BackendMongo:
		spin = startSpinner(ctx, os.Stderr, "Connecting to "+cfg.Store.Backend)
	}
	s, err := store.Open(ctx, cfg.Store)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, cfg, err
	}
	loggerFromContext(ctx).Debug("Opened store", "backend", cfg.Store.Backend)
	return s, cfg, nil
}

func (c *CLI) storePutCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "put <file>",
		Short: "Validate a canvas file and store it",
		Long: `Put decodes the file and stores its canonical form. The canvas is stored
under --name, or the file name without its extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			doc, err := canvasio.ImportFile(ctx, args[0], cfg.Decode.Options())
			if err != nil {
				return err
			}
			if name == "" {
				name = canvasName(args[0])
			}
			if err := store.Save(ctx, s, name, doc); err != nil {
				return err
			}
			printSuccess("Stored %s", StyleHighlight.Render(name))
			printStats(doc.NodeCount(), doc.EdgeCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "canvas name (default: file name)")

	return cmd
}

// canvasName derives a store name from a file path.
func canvasName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (c *CLI) storeGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print or export a stored canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			doc, err := store.Load(ctx, s, args[0], cfg.Decode.Options())
			if err != nil {
				return err
			}
			if output == "" || output == canvasio.StdinSource {
				return canvasio.WriteCanvas(ctx, cmd.OutOrStdout(), doc, cfg.Encode.Indent)
			}
			if err := canvasio.ExportFile(ctx, doc, output, cfg.Encode.Indent); err != nil {
				return err
			}
			printSuccess("Exported %s", StyleHighlight.Render(args[0]))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored canvases",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}
}

func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>...",
		Aliases: []string{"rm"},
		Short:   "Delete stored canvases",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, name := range args {
				if err := s.Delete(cmd.Context(), name); err != nil {
					return err
				}
				printSuccess("Deleted %s", StyleHighlight.Render(name))
			}
			return nil
		},
	}
}
