package cli

import (
	"os"

	"github.com/spf13/cobra"

	"goscatter/internal/dataset"
	"goscatter/internal/errors"
	"goscatter/internal/export"
	"goscatter/internal/scatter"
)

// exportOpts holds the flags of the export command.
type exportOpts struct {
	output  string
	min     float64
	max     float64
	width   int
	height  int
	scale   float64
	reduced bool
}

func (c *CLI) exportCommand() *cobra.Command {
	d := export.DefaultOptions()
	opts := exportOpts{width: d.Width, height: d.Height, scale: d.Scale}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Render a chart to PNG or SVG",
		Long: `Render the chart of a .json or .csv file to an image. The format follows the
output extension. --min and --max highlight a price band; "-" reads JSON
records from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sel *scatter.Selection
			flags := cmd.Flags()
			switch minSet, maxSet := flags.Changed("min"), flags.Changed("max"); {
			case minSet && maxSet:
				sel = &scatter.Selection{Min: min(opts.min, opts.max), Max: max(opts.min, opts.max)}
			case minSet || maxSet:
				return errors.New(errors.ErrCodeInvalidInput, "--min and --max must be given together")
			}
			return c.runExport(cmd, args[0], sel, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "chart.png", "output file (.png or .svg)")
	f.Float64Var(&opts.min, "min", 0, "lower bound of the highlighted price band")
	f.Float64Var(&opts.max, "max", 0, "upper bound of the highlighted price band")
	f.IntVar(&opts.width, "width", opts.width, "image width in pixels")
	f.IntVar(&opts.height, "height", opts.height, "image height in pixels")
	f.Float64Var(&opts.scale, "scale", opts.scale, "pixel ratio for PNG output, at most 2")
	f.BoolVar(&opts.reduced, "reduced", false, "plot the reduced sample instead of every record")
	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, path string, sel *scatter.Selection, opts exportOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	format, err := export.FormatFromPath(opts.output)
	if err != nil {
		return err
	}

	records, issues, err := dataset.Load(path, dataset.DecodeOptions{Strict: c.cfg.Data.Strict})
	if err != nil {
		return err
	}
	for _, is := range issues {
		logger.Warn("skipped malformed record", "index", is.Index, "reason", is.Reason)
	}
	if opts.reduced {
		records = dataset.EveryNth(records, c.cfg.Data.ReduceEvery)
	}

	sc := c.cfg.Scatter()
	snap := export.Snapshot{
		Data:      dataset.Process(records),
		Selection: sel,
		Palette:   c.cfg.Palette(),
		XTitle:    sc.XTitle,
		YTitle:    sc.YTitle,
	}
	logger.Debug("exporting", "points", len(snap.Data.Points), "format", format, "selection", sel)

	f, err := os.Create(opts.output)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", opts.output)
	}
	defer f.Close()

	eo := export.DefaultOptions()
	eo.Width, eo.Height, eo.Scale = opts.width, opts.height, opts.scale
	if err := export.Render(f, format, snap, eo); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", opts.output)
	}
	prog.done("Exported " + opts.output)
	return nil
}
