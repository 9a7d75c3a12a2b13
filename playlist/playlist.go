// ABOUTME: Playlist generator entry point tying scan, shuffle, build and write together
// ABOUTME: Defines the generator options with their defaults and the result of a run

// Package playlist generates desktop background slideshow playlists.
// It scans a directory for images, optionally shuffles them, and writes a
// <background> XML document of alternating static and transition entries
// that MATE/GNOME2 style background cyclers understand.
package playlist

import (
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"
)

// Defaults used when a value is neither configured nor given on the command line
const (
	DefaultStaticSeconds     = 60.0
	DefaultTransitionSeconds = 5.0
	DefaultOutputName        = "background.xml"
)

// Options controls a single generation run
type Options struct {
	Directory         string  // Directory holding the images; the playlist is written here too
	StaticSeconds     float64 // How long each image is shown
	TransitionSeconds float64 // How long each crossfade lasts
	OutputName        string  // File name of the playlist inside Directory
	Randomize         bool    // Shuffle the images once before building
	DryRun            bool    // Render the document without writing it

	Rand *rand.Rand // Source for Randomize; nil uses the global source
}

// DefaultOptions returns options for dir with the built-in defaults
func DefaultOptions(dir string) Options {
	return Options{
		Directory:         dir,
		StaticSeconds:     DefaultStaticSeconds,
		TransitionSeconds: DefaultTransitionSeconds,
		OutputName:        DefaultOutputName,
	}
}

// Rounded returns o with both durations rounded to the precision written
// into the document, so summaries and validation see the written values
func (o Options) Rounded() Options {
	o.StaticSeconds = RoundSeconds(o.StaticSeconds)
	o.TransitionSeconds = RoundSeconds(o.TransitionSeconds)

	return o
}

// Validate checks the options before anything touches the filesystem.
// Durations are checked as they will be written, so static time must
// round to at least 0.1 seconds.
func (o Options) Validate() error {
	if o.Directory == "" {
		return fmt.Errorf("%w: image directory is required", ErrInvalidArguments)
	}

	static, transition := RoundSeconds(o.StaticSeconds), RoundSeconds(o.TransitionSeconds)

	if math.IsNaN(static) || math.IsInf(static, 0) || static <= 0 {
		return fmt.Errorf("%w: static time must be at least 0.1 seconds, got %v", ErrInvalidArguments, o.StaticSeconds)
	}

	if math.IsNaN(transition) || math.IsInf(transition, 0) || transition < 0 {
		return fmt.Errorf("%w: transition time must be zero or more seconds, got %v", ErrInvalidArguments, o.TransitionSeconds)
	}

	if o.OutputName == "" || o.OutputName == "." || o.OutputName == ".." ||
		strings.ContainsAny(o.OutputName, `/\`) {
		return fmt.Errorf("%w: output must be a file name, got %q", ErrInvalidArguments, o.OutputName)
	}

	return nil
}

// OutputPath is where the playlist is written
func (o Options) OutputPath() string {
	return filepath.Join(o.Directory, o.OutputName)
}

// Result describes a completed generation run
type Result struct {
	Options    Options
	Images     ImageList   // Images in slideshow order
	Document   *Background // The built document
	Data       []byte      // Rendered XML
	OutputPath string
	Written    bool // False for dry runs
}

// CycleLength is the time one pass through the slideshow takes
func (r *Result) CycleLength() time.Duration {
	return CycleLength(len(r.Images), r.Options.StaticSeconds, r.Options.TransitionSeconds)
}

// CycleLength returns n statics plus n-1 transitions worth of time
func CycleLength(n int, staticSeconds, transitionSeconds float64) time.Duration {
	if n <= 0 {
		return 0
	}

	seconds := float64(n)*staticSeconds + float64(n-1)*transitionSeconds

	return time.Duration(seconds * float64(time.Second))
}

// Generate scans opts.Directory, builds the slideshow and, unless DryRun is
// set, writes it to opts.OutputPath(), replacing any previous playlist.
// Nothing is written when the directory has no images.
func Generate(opts Options) (*Result, error) {
	opts = opts.Rounded()

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	images, err := Scan(opts.Directory)
	if err != nil {
		return nil, err
	}

	if opts.Randomize {
		images = Shuffle(images, opts.Rand)
	}

	doc, err := Build(images, opts.StaticSeconds, opts.TransitionSeconds)
	if err != nil {
		return nil, err
	}

	data, err := Marshal(doc)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Options:    opts,
		Images:     images,
		Document:   doc,
		Data:       data,
		OutputPath: opts.OutputPath(),
	}

	if opts.DryRun {
		return result, nil
	}

	if err := WriteFile(result.OutputPath, data); err != nil {
		return nil, err
	}

	result.Written = true

	return result, nil
}
