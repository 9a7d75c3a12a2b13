// ABOUTME: Preview mode wiring between the CLI and the tui package
// ABOUTME: Injects scanning, writing and logging into the TUI and reports what was written

package main

import (
	"fmt"
	"io"
	"strconv"

	"cycle-backgrounds/config"
	"cycle-backgrounds/playlist"
	"cycle-backgrounds/tui"
)

// runPreview opens the interactive preview and summarizes the playlist it wrote, if any
func runPreview(opts RunOptions, out io.Writer) error {
	images, err := playlist.Scan(opts.Playlist.Directory)
	if err != nil {
		return err
	}

	sharedCfg := config.NewSharedConfig(defaultsFromOptions(opts.Playlist))

	outcome, err := tui.Run(tui.Options{
		Directory:  opts.Playlist.Directory,
		OutputName: opts.Playlist.OutputName,
		DryRun:     opts.Playlist.DryRun,
		Randomize:  opts.Playlist.Randomize,
	}, sharedCfg, images, playlist.Scan, playlist.WriteDocument, debugf)
	if err != nil {
		return err
	}

	if outcome.Written == "" {
		fmt.Fprintln(out, "Preview closed, playlist not written")
		return nil
	}

	doc, err := playlist.ReadFile(outcome.Written)
	if err != nil {
		return fmt.Errorf("failed to read back %s: %w", outcome.Written, err)
	}

	s, err := summaryFromDocument(opts.Playlist.Directory, outcome.Written, doc, outcome.Scanned)
	if err != nil {
		return err
	}

	fmt.Fprint(out, renderSummary(s, shouldColorize(out)))

	return nil
}

// summaryFromDocument describes a playlist as written, not as last configured.
// scanned is the directory order the document is compared against.
func summaryFromDocument(dir, path string, doc *playlist.Background, scanned playlist.ImageList) (summary, error) {
	statics := doc.Statics()
	if len(statics) == 0 {
		return summary{}, fmt.Errorf("%s holds no images", path)
	}

	static, err := strconv.ParseFloat(statics[0].Duration, 64)
	if err != nil {
		return summary{}, fmt.Errorf("invalid static duration in %s: %w", path, err)
	}

	var transition float64
	if transitions := doc.Transitions(); len(transitions) > 0 {
		transition, err = strconv.ParseFloat(transitions[0].Duration, 64)
		if err != nil {
			return summary{}, fmt.Errorf("invalid transition duration in %s: %w", path, err)
		}
	}

	return summary{
		Directory:         dir,
		Images:            len(statics),
		Randomized:        !sameOrder(statics, scanned),
		StaticSeconds:     static,
		TransitionSeconds: transition,
		CycleLength:       playlist.CycleLength(len(statics), static, transition),
		Output:            path,
		Written:           true,
	}, nil
}

// sameOrder reports whether the written statics follow the scanned order
func sameOrder(statics []playlist.Static, images playlist.ImageList) bool {
	if len(statics) != len(images) {
		return false
	}

	for i, s := range statics {
		if s.File != images[i] {
			return false
		}
	}

	return true
}
