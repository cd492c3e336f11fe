package cli

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/NissesSenap/plotstyle/internal/config"
	"github.com/NissesSenap/plotstyle/internal/logging"
	"github.com/NissesSenap/plotstyle/internal/storage"
	"github.com/NissesSenap/plotstyle/internal/style"
)

// Version is set at build time
var Version = "dev"

// CLI is the main CLI structure with embedded context
type CLI struct {
	ctx    context.Context // Store context for commands to use
	out    io.Writer
	cfg    *config.Config
	logger *log.Logger

	Database string `help:"Style library database path" type:"path" placeholder:"PATH"`
	LogLevel string `help:"Log level (debug, info, warn, error)" placeholder:"LEVEL"`

	Get     GetCmd     `cmd:"get" help:"Print style settings"`
	Dump    DumpCmd    `cmd:"dump" help:"Print the active style table"`
	Check   CheckCmd   `cmd:"check" help:"Validate style files"`
	Import  ImportCmd  `cmd:"import" help:"Store a style file in the library"`
	List    ListCmd    `cmd:"list" help:"List stored styles"`
	Export  ExportCmd  `cmd:"export" help:"Print a stored style"`
	Delete  DeleteCmd  `cmd:"delete" help:"Remove a stored style"`
	Find    FindCmd    `cmd:"find" help:"Show a setting across all stored styles"`
	Preview PreviewCmd `cmd:"preview" help:"Render a sample figure with a style applied"`
	Watch   WatchCmd   `cmd:"watch" help:"Re-check a style file whenever it changes"`
	Config  ConfigCmd  `cmd:"config" help:"Show or write the configuration"`
	Version VersionCmd `cmd:"version" help:"Show version"`
}

// Context returns the CLI's context for use by commands.
// This allows commands to access the context without directly accessing
// the unexported ctx field.
func (c *CLI) Context() context.Context {
	return c.ctx
}

// Out is where commands write their results
func (c *CLI) Out() io.Writer {
	return c.out
}

// Logger returns the logger configured for this run
func (c *CLI) Logger() *log.Logger {
	return c.logger
}

// setup loads configuration and builds the logger once flags are parsed
func (c *CLI) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.Database != "" {
		cfg.Database.Path = c.Database
	}
	if c.LogLevel != "" {
		cfg.Logging.Level = c.LogLevel
	}
	c.cfg = cfg

	logger, err := logging.New(os.Stderr, cfg.Logging)
	c.logger = logger
	if err != nil {
		logger.Warn("invalid logging configuration", "err", err)
	}
	return nil
}

// openStore opens the style library
func (c *CLI) openStore() (storage.Store, error) {
	path := c.cfg.Database.Path
	if path == "" {
		path = storage.DefaultPath()
	}
	c.logger.Debug("opening style library", "path", path)
	return storage.NewSQLite(path)
}

// activeTable resolves the table a command works on: an explicit file,
// then a stored style, then the configured style path, then the default.
func (c *CLI) activeTable(file, styleName string) (*style.Table, error) {
	switch {
	case file != "":
		return style.ParseFile(file)
	case styleName != "":
		store, err := c.openStore()
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.GetStyle(c.ctx, styleName)
	case c.cfg.StylePath != "":
		return style.ParseFile(c.cfg.StylePath)
	default:
		return style.Default(), nil
	}
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("plotstyle"),
		kong.Description("Read, check, store and preview plot style files."),
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

// run parses args and executes the selected command, writing results to out
func run(ctx context.Context, args []string, out io.Writer, options ...kong.Option) error {
	cli := &CLI{ctx: ctx, out: out}
	parser, err := newParser(cli, options...)
	if err != nil {
		return err
	}
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if err := cli.setup(); err != nil {
		return err
	}

	// Bind CLI instance so commands can access the context
	return kongCtx.Run(cli)
}

// ExecuteWithContext executes the CLI with a context that can be cancelled
func ExecuteWithContext(ctx context.Context) error {
	cli := &CLI{ctx: ctx, out: os.Stdout}
	parser, err := newParser(cli)
	if err != nil {
		return err
	}
	kongCtx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	if err := cli.setup(); err != nil {
		return err
	}

	return kongCtx.Run(cli)
}
