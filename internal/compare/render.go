package compare

import (
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// ansiClear repositions the cursor home and clears the screen so each
// render replaces the previous one in place.
const ansiClear = "\033[H\033[2J"

// ConsoleSink renders comparison results as an in-place refreshing terminal
// table.
type ConsoleSink struct {
	out         io.Writer
	sourceLabel string
	destLabel   string
	clearScreen bool
	lastStatus  string
}

// NewConsoleSink creates a terminal display sink. clearScreen controls the
// in-place refresh; disable it when output is piped to a file.
func NewConsoleSink(out io.Writer, sourceLabel, destLabel string, clearScreen bool) *ConsoleSink {
	return &ConsoleSink{
		out:         out,
		sourceLabel: sourceLabel,
		destLabel:   destLabel,
		clearScreen: clearScreen,
	}
}

// Status records a transient message shown with the next render. The
// previous successful render stays on screen.
func (c *ConsoleSink) Status(message string) {
	c.lastStatus = message
	if !c.clearScreen {
		// Non-interactive output gets the status immediately.
		fmt.Fprintf(c.out, "%s %s\n", color.Yellow.Sprint("!"), message)
	}
}

// Render displays a full comparison result, replacing the previous view.
func (c *ConsoleSink) Render(diff *DiffResult, source, destination *Snapshot, at time.Time) {
	if c.clearScreen {
		fmt.Fprint(c.out, ansiClear)
	}

	fmt.Fprintln(c.out, color.Bold.Sprint("Live Keyspace Comparison"))
	fmt.Fprintln(c.out, divider())

	labelWidth := maxWidth(c.sourceLabel, c.destLabel)
	fmt.Fprintf(c.out, "%s  tables: %d  keys: %d\n",
		runewidth.FillRight(c.sourceLabel, labelWidth), source.Len(), source.Total())
	fmt.Fprintf(c.out, "%s  tables: %d  keys: %d\n",
		runewidth.FillRight(c.destLabel, labelWidth), destination.Len(), destination.Total())
	fmt.Fprintln(c.out, divider())

	if diff.InSync() {
		fmt.Fprintln(c.out, color.Green.Sprint("Source and destination are identical."))
	} else {
		c.renderTables(diff)
	}

	if c.lastStatus != "" {
		fmt.Fprintf(c.out, "\n%s %s\n", color.Yellow.Sprint("!"), c.lastStatus)
		c.lastStatus = ""
	}

	fmt.Fprintf(c.out, "\nLast refreshed: %s\n", at.Format("2006-01-02 15:04:05"))
}

func (c *ConsoleSink) renderTables(diff *DiffResult) {
	nameWidth := tableColumnWidth(diff)

	if len(diff.InBoth) > 0 {
		fmt.Fprintf(c.out, "%s  %10s  %10s\n",
			runewidth.FillRight("TABLE", nameWidth), "SOURCE", "DEST")
		for _, tc := range diff.InBoth {
			line := fmt.Sprintf("%s  %10d  %10d",
				runewidth.FillRight(tc.Table, nameWidth), tc.Source, tc.Destination)
			if tc.Source == tc.Destination {
				fmt.Fprintln(c.out, color.Green.Sprint(line))
			} else {
				fmt.Fprintln(c.out, color.Yellow.Sprint(line))
			}
		}
	}

	if len(diff.OnlyInSource) > 0 {
		fmt.Fprintln(c.out, color.Red.Sprintf("Only in %s:", c.sourceLabel))
		for _, ts := range diff.OnlyInSource {
			fmt.Fprintf(c.out, "  %s  %d keys\n",
				runewidth.FillRight(ts.Table, nameWidth), ts.KeyCount)
		}
	}

	if len(diff.OnlyInDestination) > 0 {
		fmt.Fprintln(c.out, color.Red.Sprintf("Only in %s:", c.destLabel))
		for _, ts := range diff.OnlyInDestination {
			fmt.Fprintf(c.out, "  %s  %d keys\n",
				runewidth.FillRight(ts.Table, nameWidth), ts.KeyCount)
		}
	}
}

// tableColumnWidth sizes the table-name column to its widest entry.
func tableColumnWidth(diff *DiffResult) int {
	width := runewidth.StringWidth("TABLE")
	for _, tc := range diff.InBoth {
		if w := runewidth.StringWidth(tc.Table); w > width {
			width = w
		}
	}
	for _, ts := range diff.OnlyInSource {
		if w := runewidth.StringWidth(ts.Table); w > width {
			width = w
		}
	}
	for _, ts := range diff.OnlyInDestination {
		if w := runewidth.StringWidth(ts.Table); w > width {
			width = w
		}
	}
	return width
}

func maxWidth(a, b string) int {
	wa, wb := runewidth.StringWidth(a), runewidth.StringWidth(b)
	if wa > wb {
		return wa
	}
	return wb
}

func divider() string {
	return "--------------------------------------------------"
}
