// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and message handlers

package tui

import (
	"errors"
	"fmt"
	"runtime/debug"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cycle-backgrounds/playlist"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] Update panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.viewport.Width = max(msg.Width-paramPanelWidth-panelPadding, minViewportWidth)
		m.viewport.Height = max(msg.Height-totalUIChrome, minViewportHeight)

		m.updateViewportContent()
		m.ensureCursorVisible()

		return m, nil

	case dirChangeMsg:
		m.debugf("[TUI] Directory changed, rescanning %s", m.directory)
		return m, tea.Batch(m.rescan(), waitForDirChange(m.watcher))

	case watchErrorMsg:
		m.debugf("[WATCHER] Error: %v", msg.err)
		return m, waitForDirChange(m.watcher)

	case rescanMsg:
		m.handleRescan(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches key presses
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.focusedPanel == panelParams {
			m.focusedPanel = panelImages
		} else {
			m.focusedPanel = panelParams
		}

	case key.Matches(msg, keys.Up):
		m.handleUpKey()

	case key.Matches(msg, keys.Down):
		m.handleDownKey()

	case key.Matches(msg, keys.PageUp):
		m.moveCursor(m.cursorPos - pageJumpSize)

	case key.Matches(msg, keys.PageDown):
		m.moveCursor(m.cursorPos + pageJumpSize)

	case key.Matches(msg, keys.Home):
		m.moveCursor(0)

	case key.Matches(msg, keys.End):
		m.moveCursor(len(m.order) - 1)

	case key.Matches(msg, keys.Left):
		m.adjustParam(m.params.Decrease)

	case key.Matches(msg, keys.Right):
		m.adjustParam(m.params.Increase)

	case key.Matches(msg, keys.Reset):
		m.adjustParam(func() bool { return m.params.ResetToDefaults(m.defaults) })

	case key.Matches(msg, keys.Shuffle):
		m.shuffle()

	case key.Matches(msg, keys.Restore):
		m.restoreDirectoryOrder()

	case key.Matches(msg, keys.Undo):
		m.undo()

	case key.Matches(msg, keys.Redo):
		m.redo()

	case key.Matches(msg, keys.Write):
		m.write()
	}

	return m, nil
}

// handleUpKey moves the parameter selection or the image cursor up
func (m *model) handleUpKey() {
	if m.focusedPanel == panelParams {
		m.params.SelectPrevious()
		return
	}

	m.moveCursor(m.cursorPos - 1)
}

// handleDownKey moves the parameter selection or the image cursor down
func (m *model) handleDownKey() {
	if m.focusedPanel == panelParams {
		m.params.SelectNext()
		return
	}

	m.moveCursor(m.cursorPos + 1)
}

// moveCursor places the cursor at pos, clamped to the list
func (m *model) moveCursor(pos int) {
	m.cursorPos = max(min(pos, len(m.order)-1), 0)
	m.updateViewportContent()
	m.ensureCursorVisible()
}

// adjustParam applies change, recording an undo checkpoint if it did anything
func (m *model) adjustParam(change func() bool) {
	before := m.currentState()

	if !change() {
		return
	}

	m.undoMgr.Push(before)
	m.dirty = true
	m.syncConfig()
	m.updateViewportContent()
}

// shuffle replaces the order with a fresh random permutation
func (m *model) shuffle() {
	if len(m.order) < 2 {
		return
	}

	m.undoMgr.Push(m.currentState())
	m.order = playlist.Shuffle(m.order, nil)
	m.shuffled = true
	m.dirty = true
	m.setStatus("Shuffled " + fmt.Sprint(len(m.order)) + " images")
	m.updateViewportContent()
}

// restoreDirectoryOrder goes back to the order the directory was scanned in
func (m *model) restoreDirectoryOrder() {
	if slices.Equal(m.order, m.scanned) {
		return
	}

	m.undoMgr.Push(m.currentState())
	m.order = slices.Clone(m.scanned)
	m.shuffled = false
	m.dirty = true
	m.setStatus("Restored directory order")
	m.updateViewportContent()
}

// undo restores the previous checkpoint
func (m *model) undo() {
	state, ok := m.undoMgr.Undo(m.currentState())
	if !ok {
		m.setStatus("Nothing to undo")
		return
	}

	m.restoreState(state)
}

// redo re-applies the last undone change
func (m *model) redo() {
	state, ok := m.undoMgr.Redo(m.currentState())
	if !ok {
		m.setStatus("Nothing to redo")
		return
	}

	m.restoreState(state)
}

// write builds the document from the current order and durations and saves it
func (m *model) write() {
	if m.dryRun {
		m.setStatus("--dry-run mode: playlist not written")
		return
	}

	doc, err := playlist.Build(m.order, m.localConfig.StaticSeconds, m.localConfig.TransitionSeconds)
	if err != nil {
		m.errorMsg = err.Error()
		return
	}

	if err := m.writePlaylist(m.outputPath, doc); err != nil {
		m.debugf("[TUI] Write FAILED: %v", err)
		m.errorMsg = err.Error()

		return
	}

	m.debugf("[TUI] Wrote %d images to %s", len(m.order), m.outputPath)
	m.written = m.outputPath
	m.dirty = false
	m.errorMsg = ""
	m.setStatus(fmt.Sprintf("Wrote %d images to %s", len(m.order), m.outputPath))
}

// handleRescan merges a fresh directory listing into the current order
func (m *model) handleRescan(msg rescanMsg) {
	if msg.err != nil {
		m.debugf("[TUI] Rescan failed: %v", msg.err)

		if errors.Is(msg.err, playlist.ErrEmptyDirectory) {
			m.order = nil
			m.scanned = nil
			m.errorMsg = "Image directory contains no images"
		} else {
			m.errorMsg = msg.err.Error()
		}

		m.undoMgr.Clear()
		m.moveCursor(0)

		return
	}

	added := len(msg.images) - len(m.scanned)

	// Keep scan order when it was in use, otherwise keep the user's order
	if m.shuffled {
		m.order = mergeOrder(m.order, msg.images)
	} else {
		m.order = slices.Clone(msg.images)
	}

	m.scanned = slices.Clone(msg.images)
	m.errorMsg = ""
	m.dirty = true

	// Old snapshots may name files that are gone
	m.undoMgr.Clear()

	m.setStatus(fmt.Sprintf("Directory changed: %d images (%+d)", len(m.order), added))
	m.moveCursor(m.cursorPos)
}
