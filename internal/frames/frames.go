// Package frames tracks the frames available for decoding and which one is
// focused.
package frames

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Rorical/ezframe/internal/models"
)

// NoSelection is the selected index when no frame is focused.
const NoSelection = -1

// ErrIndexOutOfRange is returned by Select for an index that is neither
// NoSelection nor a valid position in the list.
var ErrIndexOutOfRange = errors.New("frame index out of range")

// List is the frame list state. The selection is always NoSelection or a
// valid index.
type List struct {
	mu        sync.RWMutex
	frames    []string
	selected  int
	observers []func(models.FrameSelection)
}

func NewList() *List {
	return &List{selected: NoSelection}
}

// SetFrames replaces the collection and clears the selection.
func (l *List) SetFrames(list []string) {
	l.mu.Lock()
	l.frames = slices.Clone(list)
	l.selected = NoSelection
	l.mu.Unlock()
	l.notify()
}

// Select focuses the frame at index. NoSelection clears the focus.
func (l *List) Select(index int) error {
	l.mu.Lock()
	if index != NoSelection && (index < 0 || index >= len(l.frames)) {
		n := len(l.frames)
		l.mu.Unlock()
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, n)
	}
	l.selected = index
	l.mu.Unlock()
	l.notify()
	return nil
}

// Clear empties the collection and clears the selection.
func (l *List) Clear() {
	l.mu.Lock()
	l.frames = nil
	l.selected = NoSelection
	l.mu.Unlock()
	l.notify()
}

// Frames returns a copy of the frames in insertion order.
func (l *List) Frames() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.frames)
}

func (l *List) Selected() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.selected
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.frames)
}

// SelectedFrame returns the focused frame, ok is false when nothing is focused.
func (l *List) SelectedFrame() (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.selected == NoSelection {
		return "", false
	}
	return l.frames[l.selected], true
}

// Snapshot returns a copy of the whole state.
func (l *List) Snapshot() models.FrameSelection {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return models.FrameSelection{Frames: slices.Clone(l.frames), Selected: l.selected}
}

// OnChange registers fn to be called after every mutation.
func (l *List) OnChange(fn func(models.FrameSelection)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

func (l *List) notify() {
	l.mu.RLock()
	observers := l.observers
	l.mu.RUnlock()
	if len(observers) == 0 {
		return
	}
	snapshot := l.Snapshot()
	for _, fn := range observers {
		fn(snapshot)
	}
}

// ParseFrames splits text into frames: one per line, keeping only the first
// whitespace-delimited token and skipping blank lines.
func ParseFrames(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		out = append(out, fields[0])
	}
	return out
}
