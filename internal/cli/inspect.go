package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	canvasio "github.com/matzehuels/jsoncanvas/pkg/io"
)

// maxSummary is the widest node summary inspect prints.
const maxSummary = 48

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize the nodes and edges of a canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			doc, err := canvasio.ImportFile(cmd.Context(), args[0], cfg.Decode.Options())
			if err != nil {
				return err
			}
			printCanvas(args[0], doc)
			return nil
		},
	}
}

func printCanvas(path string, doc *canvas.Canvas) {
	fmt.Println(StyleTitle.Render(path))
	printKeyValue("nodes", fmt.Sprint(doc.NodeCount()))
	printKeyValue("edges", fmt.Sprint(doc.EdgeCount()))

	if doc.NodeCount() > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Nodes"))
		for _, n := range doc.Nodes() {
			g := n.Generic()
			fmt.Printf("  %-6s %s %s %s  %s\n",
				n.Type(),
				StyleHighlight.Render(g.ID.String()),
				StyleDim.Render(fmt.Sprintf("(%d,%d %dx%d)", g.X, g.Y, g.Width, g.Height)),
				swatch(g.Color),
				nodeSummary(n))
		}
	}

	if doc.EdgeCount() > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Edges"))
		for _, e := range doc.Edges() {
			line := fmt.Sprintf("  %s %s %s %s %s",
				StyleHighlight.Render(e.ID.String()),
				endpoint(e.FromNode, e.FromSide),
				StyleDim.Render(iconArrow),
				endpoint(e.ToNode, e.ToSide),
				swatch(e.Color))
			if e.Label != "" {
				line += "  " + StyleValue.Render(truncate(e.Label))
			}
			fmt.Println(line)
		}
	}

	for _, w := range danglingWarnings(doc) {
		printWarning("%s", w)
	}
}

func endpoint(id canvas.NodeID, side canvas.Side) string {
	if side == "" {
		return id.String()
	}
	return id.String() + StyleDim.Render(":"+string(side))
}

// nodeSummary is a one-line description of the variant-specific content.
func nodeSummary(n canvas.Node) string {
	switch v := n.(type) {
	case *canvas.TextNode:
		return StyleValue.Render(truncate(v.Text))
	case *canvas.FileNode:
		return StyleValue.Render(truncate(v.File + v.Subpath))
	case *canvas.LinkNode:
		return StyleLink.Render(truncate(v.URL.String()))
	case *canvas.GroupNode:
		s := StyleValue.Render(truncate(v.Label))
		if v.Background != nil {
			bg := v.Background.Image
			if v.Background.Style != "" {
				bg += " (" + string(v.Background.Style) + ")"
			}
			s += " " + StyleDim.Render("bg "+bg)
		}
		return s
	}
	return ""
}

// truncate returns the first line of s, shortened to maxSummary runes.
func truncate(s string) string {
	line, _, more := strings.Cut(s, "\n")
	r := []rune(line)
	if len(r) > maxSummary {
		return string(r[:maxSummary-1]) + "…"
	}
	if more {
		return line + "…"
	}
	return line
}
