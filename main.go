// ABOUTME: Entry point for cycle-backgrounds application
// ABOUTME: Handles command-line parsing and routing to CLI or preview modes

// Package main provides the entry point for cycle-backgrounds, a generator for
// MATE/GNOME2 desktop background slideshow playlists.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"cycle-backgrounds/config"
	"cycle-backgrounds/playlist"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError is reported together with the usage text
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}

	cmd := newRootCommand(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		return reportError(cmd, err, stderr)
	}

	return 0
}

// reportError prints err the way the user expects to see it and returns the exit code
func reportError(cmd *cobra.Command, err error, w io.Writer) int {
	var usageErr *usageError

	switch {
	case errors.Is(err, playlist.ErrEmptyDirectory):
		// Nothing to do is not a failure
		fmt.Fprintln(w, "Error: Image directory contains no images.")
		return 0

	case errors.Is(err, playlist.ErrInvalidDirectory):
		debugf("[CLI] %v", err)
		fmt.Fprintf(w, "Error: Invalid image directory.\n\n%s", cmd.UsageString())

		return 1

	case errors.As(err, &usageErr), errors.Is(err, playlist.ErrInvalidArguments):
		fmt.Fprintf(w, "Error: %v\n\n%s", err, cmd.UsageString())
		return 1

	default:
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	var flags flagValues

	cmd := &cobra.Command{
		Use:   "cycle-backgrounds --dir DIR [flags]",
		Short: "Generate a background slideshow playlist for MATE/GNOME2",
		Long: "Scans a directory for .jpg, .gif and .png images and writes a background.xml\n" +
			"slideshow into it that shows each image for a while and crossfades to the next.\n" +
			"Select the generated file as the desktop background.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return &usageError{msg: err.Error()}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.dir == "" {
				return &usageError{msg: "Image directory is required."}
			}

			if flags.debug {
				if err := SetupDebugLog(debugLogName, out); err != nil {
					log.Printf("Failed to setup debug log: %v", err)
				}
			}

			configPath := flags.configPath
			if configPath == "" {
				configPath = config.GetConfigPath()
			}

			opts := resolveRunOptions(flags, cmd.Flags().Changed, loadDefaults(configPath))
			opts.ConfigPath = configPath

			debugf("[CLI] Options: %+v", opts)

			if err := opts.Playlist.Validate(); err != nil {
				return err
			}

			if err := playlist.CheckDirectory(opts.Playlist.Directory); err != nil {
				return err
			}

			if opts.SaveConfig {
				if err := saveDefaults(opts, out); err != nil {
					return err
				}
			}

			if opts.Preview {
				return runPreview(opts, out)
			}

			return RunCLI(opts, out)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVarP(&flags.dir, "dir", "d", "", "directory with background images to cycle")
	f.Float64VarP(&flags.transition, "transition", "t", playlist.DefaultTransitionSeconds, "transition time in seconds")
	f.Float64VarP(&flags.static, "static", "s", playlist.DefaultStaticSeconds, "static time in seconds")
	f.StringVarP(&flags.output, "output", "o", playlist.DefaultOutputName, "background XML file name, written inside --dir")
	f.BoolVarP(&flags.random, "random", "r", false, "randomize the image order")
	f.StringVarP(&flags.configPath, "config", "c", "", "defaults file (default ./cycle-backgrounds.toml or ~/.config/cycle-backgrounds/config.toml)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "print the playlist instead of writing it")
	f.BoolVar(&flags.preview, "preview", false, "review and tune the slideshow interactively before writing")
	f.BoolVar(&flags.saveConfig, "save-config", false, "store the effective durations, output name and order as defaults")
	f.BoolVar(&flags.debug, "debug", false, "enable debug logging to "+debugLogName)

	return cmd
}

// saveDefaults persists the resolved values so later runs pick them up
func saveDefaults(opts RunOptions, out io.Writer) error {
	if err := config.SaveConfig(opts.ConfigPath, defaultsFromOptions(opts.Playlist)); err != nil {
		return err
	}

	fmt.Fprintf(out, "Saved defaults to %s\n", opts.ConfigPath)

	return nil
}
