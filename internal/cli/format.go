package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/config"
	canvasio "github.com/matzehuels/jsoncanvas/pkg/io"
)

// errNotFormatted is returned by "fmt --check" for files that would change.
var errNotFormatted = errors.New("not formatted")

// fmtOpts holds the command-line flags for the fmt command.
type fmtOpts struct {
	write  bool
	check  bool
	indent string
}

// fmtCommand creates the fmt command.
func (c *CLI) fmtCommand() *cobra.Command {
	var opts fmtOpts

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a canvas in canonical form",
		Long: `Fmt decodes a canvas and writes it back out with keys in canonical order.

By default the result goes to stdout; -w replaces the file in place.
--indent takes a number of spaces or "tab"; 0 writes compact JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			indent, err := opts.resolveIndent(cmd, cfg)
			if err != nil {
				return err
			}
			return c.runFmt(cmd, args[0], cfg, indent, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write result to the file instead of stdout")
	cmd.Flags().BoolVar(&opts.check, "check", false, "exit with an error if the file is not formatted")
	cmd.Flags().StringVar(&opts.indent, "indent", "", "indent: number of spaces or \"tab\" (default from config)")

	return cmd
}

// resolveIndent returns --indent when given, otherwise the configured indent.
func (o fmtOpts) resolveIndent(cmd *cobra.Command, cfg config.Config) (string, error) {
	if !cmd.Flags().Changed("indent") {
		return cfg.Encode.Indent, nil
	}
	return canvasio.ParseIndent(o.indent)
}

func (c *CLI) runFmt(cmd *cobra.Command, path string, cfg config.Config, indent string, opts fmtOpts) error {
	ctx := cmd.Context()
	doc, err := canvasio.ImportFile(ctx, path, cfg.Decode.Options())
	if err != nil {
		return err
	}

	switch {
	case opts.check:
		if path == canvasio.StdinSource {
			return fmt.Errorf("--check needs a file, not stdin")
		}
		orig, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		formatted, err := canvasio.Encode(doc, indent)
		if err != nil {
			return err
		}
		if !bytes.Equal(orig, formatted) {
			printWarning("%s is not formatted", path)
			return fmt.Errorf("%s: %w", path, errNotFormatted)
		}
		printSuccess("%s is formatted", path)
		return nil

	case opts.write && path != canvasio.StdinSource:
		if err := canvasio.ExportFile(ctx, doc, path, indent); err != nil {
			return err
		}
		printSuccess("Formatted")
		printFile(path)
		return nil
	}

	return canvasio.WriteCanvas(ctx, cmd.OutOrStdout(), doc, indent)
}
