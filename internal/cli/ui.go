package cli

import (
	"context"
	"io"

	"goscatter/internal/errors"
	"goscatter/internal/resize"
	"goscatter/internal/tui"
)

// runTUI opens the chart viewer, optionally preloading path.
func (c *CLI) runTUI(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == "-" {
		return errors.New(errors.ErrCodeInvalidInput, "the viewer cannot read records from stdin; use export or pass a file")
	}
	// the terminal belongs to the TUI
	if c.logFile == nil {
		c.Logger.SetOutput(io.Discard)
	}

	opts := tui.Options{
		Config: c.cfg,
		Logger: c.Logger,
		Relay:  &tui.Relay{},
		Hub:    resize.NewHub(),
	}
	var m tui.Model
	if len(args) == 1 {
		m = tui.NewWithPath(args[0], opts)
	} else {
		m = tui.New(opts)
	}
	return tui.Run(ctx, m)
}
