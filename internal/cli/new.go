package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
	canvasio "github.com/matzehuels/jsoncanvas/pkg/io"
)

// newCommand creates the new command.
func (c *CLI) newCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create an empty canvas file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return cerrors.New(cerrors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}
			if err := canvasio.ExportFile(cmd.Context(), canvas.New(), path, cfg.Encode.Indent); err != nil {
				return err
			}
			printSuccess("Created canvas")
			printFile(path)
			printNextStep("Add a node", fmt.Sprintf("%s node add text %s --text \"Hello\"", appName, path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

// editCanvas loads the canvas at path, applies fn and writes it back in
// place with the configured indent.
func (c *CLI) editCanvas(cmd *cobra.Command, path string, fn func(*canvas.Canvas) error) error {
	if path == canvasio.StdinSource {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "cannot edit stdin in place")
	}
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	doc, err := canvasio.ImportFile(ctx, path, cfg.Decode.Options())
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return canvasio.ExportFile(ctx, doc, path, cfg.Encode.Indent)
}
