package state

import "sync"

// Board holds the committed strokes in commit order plus at most one
// in-progress stroke. The mutex lets the renderer read while the event
// loop mutates.
type Board struct {
	mu      sync.RWMutex
	strokes []Stroke
	active  *Stroke
}

func NewBoard() *Board {
	return &Board{strokes: make([]Stroke, 0)}
}

// Begin starts a new active stroke at p. An existing active stroke is
// discarded; a down event always wins over a lost up.
func (b *Board) Begin(p Point, color string, width float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := NewStroke(color, width)
	s.Points = append(s.Points, p)
	b.active = &s
}

// Append adds p to the active stroke. No-op when no stroke is active.
func (b *Board) Append(p Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return
	}
	b.active.Points = append(b.active.Points, p)
}

// Finalize commits the active stroke if it has at least two points and
// reports whether it was committed. A single tap leaves no mark and is
// not an error.
func (b *Board) Finalize() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return false
	}
	s := *b.active
	b.active = nil
	if len(s.Points) < 2 {
		return false
	}
	b.strokes = append(b.strokes, s)
	return true
}

// Discard drops the active stroke without committing it.
func (b *Board) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = nil
}

// EraseNear removes every committed stroke that passes within tol of p and
// returns how many were removed. Strokes are removed whole; there is no
// partial erasure.
func (b *Board) EraseNear(p Point, tol float64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.strokes[:0]
	removed := 0
	for i := range b.strokes {
		if b.strokes[i].hit(p, tol) {
			removed++
			continue
		}
		kept = append(kept, b.strokes[i])
	}
	b.strokes = kept
	return removed
}

// Strokes returns a copy of the committed strokes in commit order.
func (b *Board) Strokes() []Stroke {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Stroke, len(b.strokes))
	copy(out, b.strokes)
	return out
}

// Active returns a snapshot of the in-progress stroke, if any.
func (b *Board) Active() (Stroke, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.active == nil {
		return Stroke{}, false
	}
	return *b.active, true
}

// Replace swaps the whole committed list in one step, used when a file
// import arrives. Any active stroke is dropped so no partial state mixes
// old and new content.
func (b *Board) Replace(strokes []Stroke) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strokes = make([]Stroke, len(strokes))
	copy(b.strokes, strokes)
	b.active = nil
}

// Clear removes everything.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strokes = b.strokes[:0]
	b.active = nil
}

// Len returns the number of committed strokes.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.strokes)
}
