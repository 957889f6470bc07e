package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
)

// nodeOpts holds the flags shared by every "node add" subcommand.
type nodeOpts struct {
	id     string
	x, y   int
	width  uint
	height uint
	color  string
}

func (o *nodeOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.id, "id", "", "node ID (default: random)")
	f.IntVar(&o.x, "x", 0, "x position in pixels")
	f.IntVar(&o.y, "y", 0, "y position in pixels")
	f.UintVar(&o.width, "width", defaultNodeWidth, "width in pixels")
	f.UintVar(&o.height, "height", defaultNodeHeight, "height in pixels")
	f.StringVar(&o.color, "color", "", "preset (1-6 or a name) or hex color such as #ff8800")
}

// generic builds the shared node record from the flags.
func (o *nodeOpts) generic() (canvas.GenericNode, error) {
	id := canvas.NewNodeID()
	if o.id != "" {
		var err error
		if id, err = canvas.ParseNodeID(o.id); err != nil {
			return canvas.GenericNode{}, err
		}
	}
	g := canvas.GenericNode{ID: id, X: o.x, Y: o.y, Width: o.width, Height: o.height}
	if o.color != "" {
		color, err := canvas.ParseColor(o.color)
		if err != nil {
			return canvas.GenericNode{}, err
		}
		g.Color = color
	}
	return g, nil
}

// nodeCommand creates the node command group.
func (c *CLI) nodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Add, change and remove nodes",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a node to a canvas",
	}
	add.AddCommand(c.nodeAddTextCommand())
	add.AddCommand(c.nodeAddFileCommand())
	add.AddCommand(c.nodeAddLinkCommand())
	add.AddCommand(c.nodeAddGroupCommand())

	cmd.AddCommand(add)
	cmd.AddCommand(c.nodeSetCommand())
	cmd.AddCommand(c.nodeRemoveCommand())

	return cmd
}

// addNode appends the node built by build to the canvas at path.
func (c *CLI) addNode(cmd *cobra.Command, path string, opts *nodeOpts, build func(canvas.GenericNode) (canvas.Node, error)) error {
	g, err := opts.generic()
	if err != nil {
		return err
	}
	n, err := build(g)
	if err != nil {
		return err
	}
	if err := c.editCanvas(cmd, path, func(doc *canvas.Canvas) error { return doc.AddNode(n) }); err != nil {
		return err
	}
	printSuccess("Added %s node %s", n.Type(), StyleHighlight.Render(g.ID.String()))
	printFile(path)
	return nil
}

func (c *CLI) nodeAddTextCommand() *cobra.Command {
	var (
		opts nodeOpts
		text string
	)
	cmd := &cobra.Command{
		Use:   "text <file>",
		Short: "Add a text node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.addNode(cmd, args[0], &opts, func(g canvas.GenericNode) (canvas.Node, error) {
				return &canvas.TextNode{GenericNode: g, Text: text}, nil
			})
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&text, "text", "", "node text (Markdown)")
	return cmd
}

func (c *CLI) nodeAddFileCommand() *cobra.Command {
	var (
		opts          nodeOpts
		file, subpath string
	)
	cmd := &cobra.Command{
		Use:   "file <file>",
		Short: "Add a node that references a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.addNode(cmd, args[0], &opts, func(g canvas.GenericNode) (canvas.Node, error) {
				if err := cerrors.ValidatePath(file); err != nil {
					return nil, err
				}
				if subpath != "" && subpath[0] != '#' {
					return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "subpath must start with '#', got %q", subpath)
				}
				return &canvas.FileNode{GenericNode: g, File: file, Subpath: subpath}, nil
			})
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&file, "path", "", "referenced file, relative to the canvas root")
	cmd.Flags().StringVar(&subpath, "subpath", "", "heading or block inside the file, starting with '#'")
	cmd.MarkFlagRequired("path")
	return cmd
}

func (c *CLI) nodeAddLinkCommand() *cobra.Command {
	var (
		opts nodeOpts
		raw  string
	)
	cmd := &cobra.Command{
		Use:   "link <file>",
		Short: "Add a node that links to a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.addNode(cmd, args[0], &opts, func(g canvas.GenericNode) (canvas.Node, error) {
				u, err := canvas.ParseURL(raw)
				if err != nil {
					return nil, err
				}
				return &canvas.LinkNode{GenericNode: g, URL: u}, nil
			})
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&raw, "url", "", "absolute URL")
	cmd.MarkFlagRequired("url")
	return cmd
}

func (c *CLI) nodeAddGroupCommand() *cobra.Command {
	var (
		opts                     nodeOpts
		label, background, style string
	)
	cmd := &cobra.Command{
		Use:   "group <file>",
		Short: "Add a group node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.addNode(cmd, args[0], &opts, func(g canvas.GenericNode) (canvas.Node, error) {
				n := &canvas.GroupNode{GenericNode: g, Label: label}
				if style != "" && background == "" {
					return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "--background-style needs --background")
				}
				if background != "" {
					n.Background = &canvas.Background{Image: background}
					if style != "" {
						st, err := canvas.ParseBackgroundStyle(style)
						if err != nil {
							return nil, err
						}
						n.Background.Style = st
					}
				}
				return n, nil
			})
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&label, "label", "", "group label")
	cmd.Flags().StringVar(&background, "background", "", "background image path")
	cmd.Flags().StringVar(&style, "background-style", "", "cover, ratio or repeat")
	return cmd
}

// nodeSetCommand changes the position, size or color of an existing node.
func (c *CLI) nodeSetCommand() *cobra.Command {
	var opts nodeOpts

	cmd := &cobra.Command{
		Use:   "set <file> <id>",
		Short: "Move, resize or recolor a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := canvas.ParseNodeID(args[1])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			err = c.editCanvas(cmd, args[0], func(doc *canvas.Canvas) error {
				n, ok := doc.Node(id)
				if !ok {
					return cerrors.New(cerrors.ErrCodeNotFound, "node %s not found", id)
				}
				g := n.Generic()
				x, y := g.X, g.Y
				if flags.Changed("x") {
					x = opts.x
				}
				if flags.Changed("y") {
					y = opts.y
				}
				g.SetPosition(x, y)

				w, h := g.Width, g.Height
				if flags.Changed("width") {
					w = opts.width
				}
				if flags.Changed("height") {
					h = opts.height
				}
				g.SetSize(w, h)

				if flags.Changed("color") {
					if opts.color == "" {
						g.Color = canvas.Color{}
					} else if g.Color, err = canvas.ParseColor(opts.color); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Updated node %s", StyleHighlight.Render(id.String()))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.x, "x", 0, "new x position")
	f.IntVar(&opts.y, "y", 0, "new y position")
	f.UintVar(&opts.width, "width", 0, "new width")
	f.UintVar(&opts.height, "height", 0, "new height")
	f.StringVar(&opts.color, "color", "", "new color; empty clears it")

	return cmd
}

// nodeRemoveCommand removes a node together with the edges touching it.
func (c *CLI) nodeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <file> <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a node and its edges",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := canvas.ParseNodeID(args[1])
			if err != nil {
				return err
			}
			var removed []canvas.EdgeID
			err = c.editCanvas(cmd, args[0], func(doc *canvas.Canvas) error {
				removed = doc.RemoveNode(id)
				if removed == nil {
					return cerrors.New(cerrors.ErrCodeNotFound, "node %s not found", id)
				}
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Removed node %s", StyleHighlight.Render(id.String()))
			for _, eid := range removed {
				printDetail("removed edge %s", eid)
			}
			return nil
		},
	}
}
