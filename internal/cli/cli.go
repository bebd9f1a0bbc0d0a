// Package cli implements the goscatter command-line interface.
//
// The root command opens the interactive chart viewer; export renders a
// chart to a PNG or SVG file. All commands read an optional TOML config and
// support --verbose (-v) for debug logging.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"goscatter/internal/config"
	"goscatter/internal/errors"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version, usually
// injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg     config.Config
	flags   globalFlags
	logFile *os.File
}

type globalFlags struct {
	configPath  string
	logFile     string
	verbose     bool
	strict      bool
	reduceEvery int
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "goscatter [file]",
		Short: "Brushable price vs. interpreted value scatterplots in the terminal",
		Long: `goscatter plots sold records (price against interpreted value) as two
charts, the full dataset and a reduced sample. Drag across a chart to select
a price band. Records are read from a .json array or a .csv file.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) { c.teardown() },
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context(), args)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("goscatter %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	pf := root.PersistentFlags()
	pf.StringVarP(&c.flags.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	pf.StringVar(&c.flags.logFile, "log-file", "", "append logs to this file")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	pf.BoolVar(&c.flags.strict, "strict", false, "reject the whole input on the first malformed record")
	pf.IntVar(&c.flags.reduceEvery, "reduce-every", 0, "keep every n-th record in the reduced chart")

	root.AddCommand(c.exportCommand())
	return root
}

// setup configures logging and loads the config before any command runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.flags.verbose {
		c.SetLogLevel(LogDebug)
	}
	if c.flags.logFile != "" {
		f, err := os.OpenFile(c.flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "open log file")
		}
		c.logFile = f
		c.Logger.SetOutput(f)
	}

	cfg, err := config.Load(c.flags.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Data.Strict = c.flags.strict
	}
	if flags.Changed("reduce-every") {
		cfg.Data.ReduceEvery = c.flags.reduceEvery
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("config loaded", "path", c.flags.configPath, "strict", cfg.Data.Strict, "reduce_every", cfg.Data.ReduceEvery)
	return nil
}

func (c *CLI) teardown() {
	if c.logFile != nil {
		c.logFile.Close()
		c.logFile = nil
	}
}
