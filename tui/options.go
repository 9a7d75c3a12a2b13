// ABOUTME: Preview mode configuration and command-line options
// ABOUTME: Defines input parameters for running the TUI

package tui

import "cycle-backgrounds/playlist"

// Options contains configuration for running the TUI
type Options struct {
	Directory  string // Image directory being previewed and watched
	OutputName string // Playlist file name inside Directory
	DryRun     bool   // If true, writing is disabled
	Randomize  bool   // Start from a shuffled order
}

// Outcome is what a preview session leaves behind
type Outcome struct {
	Written string             // Last playlist path written, empty if none
	Scanned playlist.ImageList // Directory order as of the last rescan
}
