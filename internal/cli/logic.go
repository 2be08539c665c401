package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/mirrorcount/internal/mirrorcount"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

func logic(ctx context.Context, options settings, stdout, stderr io.Writer) error {
	enableProgress := options.Output == "table" &&
		!options.Debug &&
		isTerminal(stderr)

	table := &tablePrinter{writer: stdout, all: options.All}
	hooks := mirrorcount.Hooks{
		Warn: func(path string, err error) {
			if enableProgress {
				fmt.Fprint(stderr, "\r\033[2K")
			}

			fmt.Fprintf(stderr, "Error reading %s: %v\n", filepath.ToSlash(path), err)
		},
	}

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		hooks.Progress = func(dirs int64) {
			fmt.Fprintf(stderr, "\r\033[2K%s\r", fmt.Sprintf("Scanning… %s directories", humanize.Comma(dirs)))
		}
	}

	if options.Output == "table" {
		hooks.Begin = func() {
			// Clear the status line before the report starts
			if enableProgress {
				fmt.Fprint(stderr, "\r\033[2K\r")
			}

			table.header()
		}
		hooks.Row = table.row
	}

	report, err := mirrorcount.Run(ctx, mirrorcount.Options{
		Roots: options.roots(),
		Debug: options.Debug,
	}, hooks)
	if err != nil {
		return err
	}

	switch options.Output {
	case "json":
		err = PrintJSON(report, options.All, stdout)
	case "table":
		err = table.summary(report.Discrepancies)
	default:
		err = fmt.Errorf("unknown output format: %s", options.Output)
	}

	if err != nil {
		return err
	}

	if options.Debug {
		fmt.Fprintf(stderr, "[debug]: compared %s of %s directories in %v\n",
			humanize.Comma(int64(len(report.Rows))), humanize.Comma(report.Directories), report.Elapsed)
	}

	if options.Strict && report.Discrepancies {
		return ErrDiscrepancies
	}

	return nil
}
