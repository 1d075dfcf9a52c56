package journal

import "testing"

// fakeCommand appends to a shared trace so tests can assert apply/revert
// ordering.
type fakeCommand struct {
	name  string
	trace *[]string
}

func (c *fakeCommand) Apply()       { *c.trace = append(*c.trace, c.name+"+") }
func (c *fakeCommand) Revert()      { *c.trace = append(*c.trace, c.name+"-") }
func (c *fakeCommand) Name() string { return c.name }

// absorbingCommand merges any command that follows it.
type absorbingCommand struct {
	fakeCommand
	absorbed int
}

func (c *absorbingCommand) Merge(next Command) bool {
	c.absorbed++
	return true
}

func TestHistoryUndoRedoWalk(t *testing.T) {
	var trace []string
	h := NewHistory(10)
	h.Execute(&fakeCommand{name: "a", trace: &trace})
	h.Execute(&fakeCommand{name: "b", trace: &trace})

	if !h.Undo() || !h.Undo() {
		t.Fatalf("expected two undos to act")
	}
	if h.Undo() {
		t.Fatalf("expected undo past the start to report false")
	}
	if !h.Redo() || !h.Redo() {
		t.Fatalf("expected two redos to act")
	}
	if h.Redo() {
		t.Fatalf("expected redo past the end to report false")
	}

	want := []string{"a+", "b+", "b-", "a-", "a+", "b+"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace[%d] = %s, want %s", i, trace[i], want[i])
		}
	}
}

func TestExecuteAfterUndoDiscardsRedoTail(t *testing.T) {
	var trace []string
	h := NewHistory(10)
	h.Execute(&fakeCommand{name: "a", trace: &trace})
	h.Execute(&fakeCommand{name: "b", trace: &trace})
	h.Undo()

	h.Execute(&fakeCommand{name: "c", trace: &trace})
	if h.CanRedo() {
		t.Fatalf("expected a fresh edit to kill the redo tail")
	}
	if h.Len() != 2 {
		t.Fatalf("expected entries a,c, got %d entries", h.Len())
	}
	if h.Redo() {
		t.Fatalf("expected nothing to redo")
	}
}

func TestHistoryOverflowDropsOldest(t *testing.T) {
	var trace []string
	h := NewHistory(2)
	h.Execute(&fakeCommand{name: "a", trace: &trace})
	h.Execute(&fakeCommand{name: "b", trace: &trace})
	h.Execute(&fakeCommand{name: "c", trace: &trace})

	if h.Len() != 2 {
		t.Fatalf("expected the oldest entry to fall off, got %d entries", h.Len())
	}
	if !h.Undo() || !h.Undo() {
		t.Fatalf("expected both retained entries to undo")
	}
	if h.Undo() {
		t.Fatalf("expected the dropped entry to be gone for good")
	}
	// The last two reverts must be c then b; a is unreachable.
	if trace[len(trace)-2] != "c-" || trace[len(trace)-1] != "b-" {
		t.Fatalf("trace = %v, want ...c-,b-", trace)
	}
}

func TestMergeKeepsHistoryLength(t *testing.T) {
	var trace []string
	h := NewHistory(10)
	tip := &absorbingCommand{fakeCommand: fakeCommand{name: "drag", trace: &trace}}
	h.Execute(tip)
	h.Execute(&fakeCommand{name: "step", trace: &trace})
	h.Execute(&fakeCommand{name: "step", trace: &trace})

	if h.Len() != 1 {
		t.Fatalf("expected merged entries to collapse, got %d", h.Len())
	}
	if tip.absorbed != 2 {
		t.Fatalf("expected the tip to absorb 2 commands, got %d", tip.absorbed)
	}
	// Each absorbed command still ran its forward action once.
	want := []string{"drag+", "step+", "step+"}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}

func TestNonPositiveLimitFallsBack(t *testing.T) {
	h := NewHistory(0)
	if h.limit != DefaultLimit {
		t.Fatalf("expected the default limit, got %d", h.limit)
	}
}

func TestClearEmptiesHistory(t *testing.T) {
	var trace []string
	h := NewHistory(10)
	h.Execute(&fakeCommand{name: "a", trace: &trace})
	h.Clear()
	if h.CanUndo() || h.CanRedo() || h.Len() != 0 {
		t.Fatalf("expected an empty history after Clear")
	}
}
