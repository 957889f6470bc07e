package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
)

// edgeOpts holds the command-line flags for "edge add".
type edgeOpts struct {
	id               string
	from, to         string
	fromSide, toSide string
	fromEnd, toEnd   string
	color, label     string
}

// build turns the flags into an edge. Empty sides and ends stay unset.
func (o *edgeOpts) build() (*canvas.Edge, error) {
	id := canvas.NewEdgeID()
	if o.id != "" {
		var err error
		if id, err = canvas.ParseEdgeID(o.id); err != nil {
			return nil, err
		}
	}
	from, err := canvas.ParseNodeID(o.from)
	if err != nil {
		return nil, err
	}
	to, err := canvas.ParseNodeID(o.to)
	if err != nil {
		return nil, err
	}

	e := canvas.NewEdge(id, from, to)
	fromSide, fromEnd, err := endpointFlags("fromSide", o.fromSide, "fromEnd", o.fromEnd)
	if err != nil {
		return nil, err
	}
	toSide, toEnd, err := endpointFlags("toSide", o.toSide, "toEnd", o.toEnd)
	if err != nil {
		return nil, err
	}
	e.SetFrom(from, fromSide, fromEnd)
	e.SetTo(to, toSide, toEnd)

	if o.color != "" {
		if e.Color, err = canvas.ParseColor(o.color); err != nil {
			return nil, err
		}
	}
	e.Label = o.label
	return e, nil
}

func endpointFlags(sideField, side, endField, end string) (canvas.Side, canvas.End, error) {
	var (
		s   canvas.Side
		e   canvas.End
		err error
	)
	if side != "" {
		if s, err = canvas.ParseSide(sideField, side); err != nil {
			return "", "", err
		}
	}
	if end != "" {
		if e, err = canvas.ParseEnd(endField, end); err != nil {
			return "", "", err
		}
	}
	return s, e, nil
}

// edgeCommand creates the edge command group.
func (c *CLI) edgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Add and remove edges",
	}

	cmd.AddCommand(c.edgeAddCommand())
	cmd.AddCommand(c.edgeRemoveCommand())

	return cmd
}

func (c *CLI) edgeAddCommand() *cobra.Command {
	var opts edgeOpts

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Connect two nodes",
		Long: `Add an edge between two existing nodes of a canvas.

Both --from and --to must name nodes already in the canvas. Sides are
top, right, bottom or left; ends are none or arrow.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.build()
			if err != nil {
				return err
			}
			if err := c.editCanvas(cmd, args[0], func(doc *canvas.Canvas) error { return doc.AddEdge(e) }); err != nil {
				return err
			}
			printSuccess("Added edge %s: %s %s %s", StyleHighlight.Render(e.ID.String()),
				e.FromNode, iconArrow, e.ToNode)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.id, "id", "", "edge ID (default: random)")
	f.StringVar(&opts.from, "from", "", "source node ID")
	f.StringVar(&opts.to, "to", "", "target node ID")
	f.StringVar(&opts.fromSide, "from-side", "", "side of the source node")
	f.StringVar(&opts.toSide, "to-side", "", "side of the target node")
	f.StringVar(&opts.fromEnd, "from-end", "", "decoration at the source end")
	f.StringVar(&opts.toEnd, "to-end", "", "decoration at the target end")
	f.StringVar(&opts.color, "color", "", "preset (1-6 or a name) or hex color")
	f.StringVar(&opts.label, "label", "", "edge label")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}

func (c *CLI) edgeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <file> <id>",
		Aliases: []string{"remove"},
		Short:   "Remove an edge",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := canvas.ParseEdgeID(args[1])
			if err != nil {
				return err
			}
			err = c.editCanvas(cmd, args[0], func(doc *canvas.Canvas) error {
				if !doc.RemoveEdge(id) {
					return cerrors.New(cerrors.ErrCodeNotFound, "edge %s not found", id)
				}
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Removed edge %s", StyleHighlight.Render(id.String()))
			return nil
		},
	}
}
