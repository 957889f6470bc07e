package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/buildinfo"
	"github.com/matzehuels/jsoncanvas/pkg/config"
	"github.com/matzehuels/jsoncanvas/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "jsoncanvas"

	// Default geometry for nodes created by "node add".
	defaultNodeWidth  = 250
	defaultNodeHeight = 60
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath     string
	allowUnknown   bool
	strictRefs     bool
	rejectZeroSize bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "jsoncanvas reads, checks and edits JSON Canvas documents",
		Long:         `jsoncanvas is a CLI tool for JSON Canvas (.canvas) files: validate and format documents, add nodes and edges, keep canvases in a file, Redis or MongoDB store, and serve them over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetCodecHooks(logHooks{c.Logger})
			observability.SetStoreHooks(logHooks{c.Logger})
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/jsoncanvas/config.toml)")
	flags.BoolVar(&c.allowUnknown, "allow-unknown", false, "ignore unknown keys when decoding")
	flags.BoolVar(&c.strictRefs, "strict-refs", false, "reject edges whose endpoints are not in the document")
	flags.BoolVar(&c.rejectZeroSize, "reject-zero-size", false, "reject nodes with zero width or height")

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.nodeCommand())
	root.AddCommand(c.edgeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file and applies the decode flags given on
// the command line on top of it.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := c.configFile()
	if err != nil {
		return config.Config{}, err
	}

	var cfg config.Config
	if c.configPath != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return config.Config{}, err
	}
	loggerFromContext(cmd.Context()).Debug("Loaded config", "path", path, "backend", cfg.Store.Backend)

	flags := cmd.Flags()
	if flags.Changed("allow-unknown") {
		cfg.Decode.AllowUnknownFields = c.allowUnknown
	}
	if flags.Changed("strict-refs") {
		cfg.Decode.ValidateReferences = c.strictRefs
	}
	if flags.Changed("reject-zero-size") {
		cfg.Decode.RejectZeroSize = c.rejectZeroSize
	}
	return cfg, nil
}

// configFile returns --config if set, otherwise the default location.
func (c *CLI) configFile() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}
