// ABOUTME: Shared initialization code for all modes (CLI and preview)
// ABOUTME: Resolves options from flags and the defaults file, and owns the debug log

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"cycle-backgrounds/config"
	"cycle-backgrounds/playlist"
)

const debugLogName = "cycle-backgrounds-debug.log"

var debugLog *log.Logger

// RunOptions contains command-line options for all modes
type RunOptions struct {
	Playlist   playlist.Options
	ConfigPath string
	SaveConfig bool
	Preview    bool
}

// flagValues holds the raw command-line flags
type flagValues struct {
	dir        string
	static     float64
	transition float64
	output     string
	random     bool
	configPath string
	dryRun     bool
	preview    bool
	saveConfig bool
	debug      bool
}

// resolveRunOptions merges flags over the configured defaults.
// changed reports whether a flag was given explicitly.
func resolveRunOptions(flags flagValues, changed func(string) bool, defaults config.Defaults) RunOptions {
	opts := playlist.Options{
		Directory:         flags.dir,
		StaticSeconds:     defaults.StaticSeconds,
		TransitionSeconds: defaults.TransitionSeconds,
		OutputName:        defaults.OutputName,
		Randomize:         defaults.Randomize,
		DryRun:            flags.dryRun,
	}

	if changed("static") {
		opts.StaticSeconds = flags.static
	}

	if changed("transition") {
		opts.TransitionSeconds = flags.transition
	}

	if changed("output") {
		opts.OutputName = flags.output
	}

	if changed("random") {
		opts.Randomize = flags.random
	}

	return RunOptions{
		Playlist:   opts.Rounded(),
		ConfigPath: flags.configPath,
		SaveConfig: flags.saveConfig,
		Preview:    flags.preview,
	}
}

// loadDefaults reads the defaults file, falling back to built-in values
func loadDefaults(path string) config.Defaults {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("Warning: ignoring config file: %v", err)
	}

	debugf("[CONFIG] Loaded %s: %+v", path, cfg)

	return cfg
}

// defaultsFromOptions is the inverse of resolveRunOptions for --save-config
func defaultsFromOptions(opts playlist.Options) config.Defaults {
	return config.Defaults{
		StaticSeconds:     opts.StaticSeconds,
		TransitionSeconds: opts.TransitionSeconds,
		OutputName:        opts.OutputName,
		Randomize:         opts.Randomize,
	}
}

// SetupDebugLog initializes debug logging and tells an interactive user where it goes
func SetupDebugLog(filename string, out io.Writer) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	if shouldColorize(out) {
		fmt.Fprintf(out, "Debug logging enabled: %s\n", filename)
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}
