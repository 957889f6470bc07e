package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
	canvasio "github.com/matzehuels/jsoncanvas/pkg/io"
)

// errInvalid is returned by validate when at least one document failed.
var errInvalid = errors.New("invalid canvas")

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that canvas files are well-formed",
		Long: `Validate decodes each file and reports the first error it contains.

Edges whose endpoints are missing are reported as warnings unless
--strict-refs is set, in which case they make the file invalid.
Use "-" to read from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			failed := 0
			for _, path := range args {
				doc, err := canvasio.ImportFile(ctx, path, cfg.Decode.Options())
				if err != nil {
					failed++
					printError("%s", path)
					printDetail("%s: %s", canvas.ErrorCode(err), cerrors.UserMessage(err))
					continue
				}
				printSuccess("%s", path)
				printStats(doc.NodeCount(), doc.EdgeCount())
				for _, w := range danglingWarnings(doc) {
					printWarning("%s", w)
				}
			}

			prog.done(fmt.Sprintf("Validated %d files", len(args)))
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files failed", errInvalid, failed, len(args))
			}
			return nil
		},
	}
}

// danglingWarnings describes every edge endpoint of c that names a node
// the canvas does not contain.
func danglingWarnings(c *canvas.Canvas) []string {
	var out []string
	for _, e := range c.Edges() {
		for _, id := range []canvas.NodeID{e.FromNode, e.ToNode} {
			if _, ok := c.Node(id); !ok {
				out = append(out, fmt.Sprintf("edge %s: node %s does not exist", e.ID, id))
			}
		}
	}
	return out
}
