// ABOUTME: CLI mode implementation for non-interactive playlist generation
// ABOUTME: Runs the generator and prints the XML (dry run) or a summary table

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"cycle-backgrounds/playlist"
)

// summary is what gets reported after a playlist is produced
type summary struct {
	Directory         string
	Images            int
	Randomized        bool
	StaticSeconds     float64
	TransitionSeconds float64
	CycleLength       time.Duration
	Output            string
	Written           bool
}

// RunCLI executes CLI mode generation
func RunCLI(opts RunOptions, out io.Writer) error {
	debugf("[CLI] Generating playlist for %s", opts.Playlist.Directory)

	result, err := playlist.Generate(opts.Playlist)
	if err != nil {
		debugf("[CLI] Generation failed: %v", err)
		return err
	}

	debugf("[CLI] %d images, written=%v", len(result.Images), result.Written)

	if opts.Playlist.DryRun {
		if _, err := out.Write(result.Data); err != nil {
			return fmt.Errorf("failed to print playlist: %w", err)
		}

		return nil
	}

	fmt.Fprint(out, renderSummary(summary{
		Directory:         opts.Playlist.Directory,
		Images:            len(result.Images),
		Randomized:        opts.Playlist.Randomize,
		StaticSeconds:     opts.Playlist.StaticSeconds,
		TransitionSeconds: opts.Playlist.TransitionSeconds,
		CycleLength:       result.CycleLength(),
		Output:            result.OutputPath,
		Written:           result.Written,
	}, shouldColorize(out)))

	return nil
}

// renderSummary renders s as a two column table.
// colorize selects the rounded, colored style for terminals.
func renderSummary(s summary, colorize bool) string {
	order := "directory"
	if s.Randomized {
		order = "random"
	}

	status := "written"
	if !s.Written {
		status = "not written"
	}

	tw := table.NewWriter()

	if colorize {
		tw.SetStyle(table.StyleRounded)
		tw.Style().Color.Header = text.Colors{text.Bold, text.FgHiBlue}
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"Setting", "Value"})
	tw.AppendRows([]table.Row{
		{"Directory", s.Directory},
		{"Images", strconv.Itoa(s.Images)},
		{"Order", order},
		{"Static", FormatDuration(secondsToDuration(s.StaticSeconds))},
		{"Transition", FormatDuration(secondsToDuration(s.TransitionSeconds))},
		{"Cycle length", FormatDuration(s.CycleLength)},
		{"Playlist", s.Output + " (" + status + ")"},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render() + "\n"
}

// shouldColorize reports whether writer is a terminal
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}

	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
