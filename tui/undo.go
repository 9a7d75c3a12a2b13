// ABOUTME: Undo/redo history for preview changes
// ABOUTME: Snapshots image order and durations with a maximum history size

package tui

import (
	"slices"

	"cycle-backgrounds/playlist"
)

// PreviewState captures what a preview change can alter
type PreviewState struct {
	Order             playlist.ImageList
	StaticSeconds     float64
	TransitionSeconds float64
	CursorPos         int
}

func (s PreviewState) clone() PreviewState {
	s.Order = slices.Clone(s.Order)
	return s
}

// UndoManager keeps a linear history of checkpoints.
// cursor is the number of states that can be undone to.
type UndoManager struct {
	history []PreviewState
	cursor  int
	maxSize int
}

// NewUndoManager creates a new undo manager with the specified max history size
func NewUndoManager(maxSize int) *UndoManager {
	return &UndoManager{maxSize: maxSize}
}

// Push records the state before a change and drops any redo states
func (um *UndoManager) Push(state PreviewState) {
	um.history = append(um.history[:um.cursor], state.clone())
	um.cursor++

	if len(um.history) > um.maxSize {
		um.history = um.history[1:]
		um.cursor--
	}
}

// Undo returns the previous state, remembering current for Redo.
// Returns false if there is nothing to undo.
func (um *UndoManager) Undo(current PreviewState) (PreviewState, bool) {
	if um.cursor == 0 {
		return PreviewState{}, false
	}

	if um.cursor >= len(um.history) {
		um.history = append(um.history, current.clone())
	} else {
		um.history[um.cursor] = current.clone()
	}

	um.cursor--

	return um.history[um.cursor].clone(), true
}

// Redo returns the state that was current before the last Undo.
// Returns false if there is nothing to redo.
func (um *UndoManager) Redo(current PreviewState) (PreviewState, bool) {
	if um.cursor+1 >= len(um.history) {
		return PreviewState{}, false
	}

	um.history[um.cursor] = current.clone()
	um.cursor++

	return um.history[um.cursor].clone(), true
}

// UndoSize returns the number of states we can undo to
func (um *UndoManager) UndoSize() int {
	return um.cursor
}

// RedoSize returns the number of states we can redo to
func (um *UndoManager) RedoSize() int {
	return max(len(um.history)-um.cursor-1, 0)
}

// Clear clears the history
func (um *UndoManager) Clear() {
	um.history = nil
	um.cursor = 0
}
