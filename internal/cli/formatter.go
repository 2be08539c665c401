package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/idelchi/mirrorcount/internal/mirrorcount"
)

const (
	// PathWidth is the width of the path column.
	PathWidth = 50
	// CountWidth is the width of each count column.
	CountWidth = 5
	// RuleWidth is the length of the rule under the header.
	RuleWidth = 90
)

const (
	matchMessage       = "All directories match perfectly!"
	discrepancyMessage = "Found discrepancies in the directories listed above."
)

// tablePrinter streams report rows as a fixed-width table.
// The first write error is kept and returned by summary.
type tablePrinter struct {
	writer io.Writer
	all    bool
	err    error
}

// printf writes unless an earlier write failed.
func (p *tablePrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}

	_, p.err = fmt.Fprintf(p.writer, format, args...)
}

// header prints the column names and the rule below them.
func (p *tablePrinter) header() {
	p.printf("%-*s | %-*s | %-*s | %-*s | %s\n",
		PathWidth, "Path", CountWidth, "Orig", CountWidth, "Prev", CountWidth, "Thumb", "Status")
	p.printf("%s\n", strings.Repeat("-", RuleWidth))
}

// row prints a single row. OK rows are skipped unless all is set.
func (p *tablePrinter) row(row mirrorcount.Row) {
	if row.OK() && !p.all {
		return
	}

	p.printf("%-*s | %-*d | %-*d | %-*d | %s\n",
		PathWidth, row.Path,
		CountWidth, row.Original,
		CountWidth, row.Preview,
		CountWidth, row.Thumbnail,
		row.Status)
}

// summary prints the closing line.
func (p *tablePrinter) summary(discrepancies bool) error {
	if discrepancies {
		p.printf("\n%s\n", discrepancyMessage)
	} else {
		p.printf("\n%s\n", matchMessage)
	}

	return p.err
}

// PrintTable outputs a complete report in table format.
func PrintTable(report *mirrorcount.Report, all bool, writer io.Writer) error {
	p := &tablePrinter{writer: writer, all: all}

	p.header()

	for _, row := range report.Rows {
		p.row(row)
	}

	return p.summary(report.Discrepancies)
}

// PrintJSON outputs a report in JSON format. OK rows are dropped unless all is set.
func PrintJSON(report *mirrorcount.Report, all bool, writer io.Writer) error {
	out := *report
	if !all {
		out.Rows = report.Problems()
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}
