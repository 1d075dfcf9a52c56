// Package journal keeps a bounded, cursor-indexed linear history of
// reversible edit commands. It is driven from edit events between simulation
// frames; the single-threaded frame loop means no locking is needed here. A
// future multi-threaded port must keep journal mutation off the frame path
// or add its own synchronisation.
package journal

// Command is a reversible edit operation. Apply and Revert must be exact
// inverses so any undo/redo walk reproduces prior state.
type Command interface {
	Apply()
	Revert()
	Name() string
}

// Mergeable commands can coalesce with the command executed immediately
// after them, keeping noisy interactions (drag moves) to one history entry.
// Merge runs after next.Apply() and reports whether next was absorbed.
type Mergeable interface {
	Merge(next Command) bool
}

// DefaultLimit caps the history length; the oldest entry falls off first.
const DefaultLimit = 50

// History is the linear undo/redo buffer. The cursor indexes the last
// applied entry and sits at -1 when everything is undone.
type History struct {
	entries []Command
	cursor  int
	limit   int
}

// NewHistory builds a history bounded at limit entries. Non-positive limits
// fall back to DefaultLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{cursor: -1, limit: limit}
}

// Execute runs the command's forward action and records it. Any redo tail
// past the cursor is discarded first, so redo after a fresh edit is
// impossible by construction. If the tip absorbs the new command via Merge
// the history length does not grow.
func (h *History) Execute(cmd Command) {
	if h == nil || cmd == nil {
		return
	}
	cmd.Apply()

	if h.cursor < len(h.entries)-1 {
		h.entries = h.entries[:h.cursor+1]
	}
	if h.cursor >= 0 {
		if tip, ok := h.entries[h.cursor].(Mergeable); ok && tip.Merge(cmd) {
			return
		}
	}
	h.entries = append(h.entries, cmd)
	h.cursor++

	if len(h.entries) > h.limit {
		overflow := len(h.entries) - h.limit
		copy(h.entries, h.entries[overflow:])
		h.entries = h.entries[:len(h.entries)-overflow]
		h.cursor -= overflow
		if h.cursor < -1 {
			h.cursor = -1
		}
	}
}

// Undo reverts the entry at the cursor and steps back. It reports false at
// the start of history.
func (h *History) Undo() bool {
	if h == nil || h.cursor < 0 {
		return false
	}
	h.entries[h.cursor].Revert()
	h.cursor--
	return true
}

// Redo re-applies the entry past the cursor. It reports false at the end of
// history.
func (h *History) Redo() bool {
	if h == nil || h.cursor >= len(h.entries)-1 {
		return false
	}
	h.cursor++
	h.entries[h.cursor].Apply()
	return true
}

// Len reports the number of recorded entries.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// CanUndo reports whether Undo would act.
func (h *History) CanUndo() bool {
	return h != nil && h.cursor >= 0
}

// CanRedo reports whether Redo would act.
func (h *History) CanRedo() bool {
	return h != nil && h.cursor < len(h.entries)-1
}

// Clear drops the whole history, e.g. after a scene load.
func (h *History) Clear() {
	if h == nil {
		return
	}
	h.entries = h.entries[:0]
	h.cursor = -1
}
