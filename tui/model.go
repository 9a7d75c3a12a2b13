// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model for previewing, reordering and writing the slideshow

// Package tui provides an interactive preview of the background slideshow.
// It shows the image order and durations, lets the user reshuffle and tune
// them, rescans when images are added to or removed from the directory, and
// writes the playlist on request.
package tui

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fsnotify/fsnotify"

	"cycle-backgrounds/config"
	"cycle-backgrounds/playlist"
)

// Panel identifiers
const (
	panelParams = "params"
	panelImages = "images"
)

// Layout constants for UI dimensions
const (
	paramPanelWidth = 40 // Left panel width for parameter controls
	panelPadding    = 2  // Horizontal spacing between panels

	// UI chrome heights (elements that reduce available viewport space)
	titleHeight     = 2
	headerHeight    = 1
	statusBarHeight = 1
	helpHeight      = 1
	spacingHeight   = 2
	totalUIChrome   = titleHeight + headerHeight + statusBarHeight + helpHeight + spacingHeight

	minViewportWidth  = 20
	minViewportHeight = 5
)

// Navigation and interaction constants
const (
	pageJumpSize          = 10
	statusMessageDuration = 5 * time.Second
	maxUndoStackSize      = 50
	rescanDebounce        = 100 * time.Millisecond
)

// dirChangeMsg is sent when an image appears in or disappears from the directory
type dirChangeMsg struct{}

// watchErrorMsg carries a watcher failure
type watchErrorMsg struct {
	err error
}

// rescanMsg is sent after a background rescan of the directory
type rescanMsg struct {
	images playlist.ImageList
	err    error
}

// model holds the TUI state
type model struct {
	// Dependencies
	sharedConfig  *config.SharedConfig
	loadImages    func(string) (playlist.ImageList, error)
	writePlaylist func(string, *playlist.Background) error
	debugf        func(string, ...interface{})

	// Configuration
	localConfig *config.Defaults // params point into this, so it lives on the heap
	defaults    config.Defaults  // values restored by reset
	params      *ParamManager

	// Slideshow state
	directory  string
	outputPath string
	dryRun     bool
	scanned    playlist.ImageList // directory order
	order      playlist.ImageList // slideshow order shown and written
	shuffled   bool
	written    string // last path written, empty until the first write
	dirty      bool   // changes since the last write
	watcher    *fsnotify.Watcher

	// UI state
	width        int
	height       int
	quitting     bool
	statusMsg    string
	statusMsgAge time.Time
	errorMsg     string
	focusedPanel string
	cursorPos    int
	viewport     viewport.Model
	undoMgr      *UndoManager
}

// Key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Tab      key.Binding
	Shuffle  key.Binding
	Restore  key.Binding
	Reset    key.Binding
	Undo     key.Binding
	Redo     key.Binding
	Write    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "navigate"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "decrease param"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "increase param"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first image"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last image"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
	Shuffle: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "shuffle"),
	),
	Restore: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "directory order"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset durations"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "redo"),
	),
	Write: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "write playlist"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	paramStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedParamStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15"))
)

// Run starts the preview with injected dependencies.
// The returned Outcome names the playlist written during the session, if any.
func Run(opts Options, sharedConfig *config.SharedConfig, images playlist.ImageList, loadImages func(string) (playlist.ImageList, error), writePlaylist func(string, *playlist.Background) error, debugf func(string, ...interface{})) (Outcome, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to create directory watcher: %w", err)
	}

	defer func() {
		if err := watcher.Close(); err != nil {
			debugf("[TUI] Failed to close watcher: %v", err)
		}
	}()

	if err := watcher.Add(opts.Directory); err != nil {
		return Outcome{}, fmt.Errorf("failed to watch image directory: %w", err)
	}

	m := initModel(opts, sharedConfig, images, loadImages, writePlaylist, debugf)
	m.watcher = watcher

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return Outcome{}, fmt.Errorf("preview error: %w", err)
	}

	if fm, ok := finalModel.(model); ok {
		return fm.outcome(), nil
	}

	return Outcome{Scanned: images}, nil
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, sharedConfig *config.SharedConfig, images playlist.ImageList, loadImages func(string) (playlist.ImageList, error), writePlaylist func(string, *playlist.Background) error, debugf func(string, ...interface{})) model {
	cfg := sharedConfig.Get()
	localConfig := &cfg

	outputName := opts.OutputName
	if outputName == "" {
		outputName = playlist.DefaultOutputName
	}

	order := slices.Clone(images)
	if opts.Randomize {
		order = playlist.Shuffle(images, nil)
	}

	return model{
		sharedConfig:  sharedConfig,
		loadImages:    loadImages,
		writePlaylist: writePlaylist,
		debugf:        debugf,

		localConfig: localConfig,
		defaults:    config.DefaultConfig(),
		params:      NewParamManager(localConfig),

		directory:  opts.Directory,
		outputPath: filepath.Join(opts.Directory, outputName),
		dryRun:     opts.DryRun,
		scanned:    slices.Clone(images),
		order:      order,
		shuffled:   opts.Randomize,
		dirty:      true,

		viewport:     viewport.New(0, 0), // sized on first WindowSizeMsg
		focusedPanel: panelImages,
		undoMgr:      NewUndoManager(maxUndoStackSize),
	}
}

// Init starts watching the directory
func (m model) Init() tea.Cmd {
	return waitForDirChange(m.watcher)
}

// waitForDirChange blocks until an image entry is created, removed or renamed
func waitForDirChange(watcher *fsnotify.Watcher) tea.Cmd {
	if watcher == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				if !isImageEvent(event) {
					continue
				}

				// Let copies of several files settle into one rescan
				time.Sleep(rescanDebounce)

				return dirChangeMsg{}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}

				return watchErrorMsg{err: err}
			}
		}
	}
}

// isImageEvent reports whether event changes the set of images.
// Writes to the playlist and its temp files never match the image patterns.
func isImageEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return playlist.IsImageName(filepath.Base(event.Name))
}

// rescan reloads the directory in the background
func (m model) rescan() tea.Cmd {
	dir, load := m.directory, m.loadImages

	return func() tea.Msg {
		images, err := load(dir)
		return rescanMsg{images: images, err: err}
	}
}

// mergeOrder keeps current's order for images still present and appends
// new images in directory order
func mergeOrder(current, scanned playlist.ImageList) playlist.ImageList {
	present := make(map[string]bool, len(scanned))
	for _, img := range scanned {
		present[img] = true
	}

	merged := make(playlist.ImageList, 0, len(scanned))
	seen := make(map[string]bool, len(scanned))

	for _, img := range current {
		if present[img] && !seen[img] {
			merged = append(merged, img)
			seen[img] = true
		}
	}

	for _, img := range scanned {
		if !seen[img] {
			merged = append(merged, img)
			seen[img] = true
		}
	}

	return merged
}

// outcome reports the session result to the caller
func (m model) outcome() Outcome {
	return Outcome{
		Written: m.written,
		Scanned: slices.Clone(m.scanned),
	}
}

// currentState snapshots what undo can restore
func (m model) currentState() PreviewState {
	return PreviewState{
		Order:             m.order,
		StaticSeconds:     m.localConfig.StaticSeconds,
		TransitionSeconds: m.localConfig.TransitionSeconds,
		CursorPos:         m.cursorPos,
	}
}

// restoreState applies a snapshot from the undo history
func (m *model) restoreState(state PreviewState) {
	m.order = state.Order
	m.localConfig.StaticSeconds = state.StaticSeconds
	m.localConfig.TransitionSeconds = state.TransitionSeconds
	m.cursorPos = min(state.CursorPos, max(len(m.order)-1, 0))
	m.shuffled = !slices.Equal(m.order, m.scanned)
	m.dirty = true
	m.syncConfig()
	m.ensureCursorVisible()
	m.updateViewportContent()
}

// syncConfig publishes the local durations to the shared config
func (m *model) syncConfig() {
	m.sharedConfig.Update(*m.localConfig)
}

// setStatus shows a transient status message
func (m *model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}

// ensureCursorVisible scrolls the viewport to keep the cursor on screen
func (m *model) ensureCursorVisible() {
	m.viewport.YOffset = scrollOffset(m.viewport.Height, m.cursorPos, len(m.order))
}

// cycleLength is one full pass through the current slideshow
func (m model) cycleLength() time.Duration {
	return playlist.CycleLength(len(m.order), m.localConfig.StaticSeconds, m.localConfig.TransitionSeconds)
}

// truncate shortens s to at most maxWidth terminal cells, marking the cut with "..."
func truncate(s string, maxWidth int) string {
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		return ansi.Truncate(s, maxWidth, "")
	}

	return ansi.Truncate(s, maxWidth, "...")
}
