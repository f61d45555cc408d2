package sim

import "github.com/golang/geo/r2"

// Trail is a fixed-capacity ring of recent ball positions.
// Once full, each push overwrites the oldest entry.
type Trail struct {
	data []r2.Point
	pos  int
	full bool
}

// NewTrail creates a trail holding at most capacity points
func NewTrail(capacity int) *Trail {
	return &Trail{
		data: make([]r2.Point, capacity),
	}
}

// Push appends a point, evicting the oldest one when the trail is full
func (t *Trail) Push(p r2.Point) {
	if len(t.data) == 0 {
		return
	}
	t.data[t.pos] = p
	t.pos++
	if t.pos >= len(t.data) {
		t.pos = 0
		t.full = true
	}
}

// Len returns the number of stored points
func (t *Trail) Len() int {
	if t.full {
		return len(t.data)
	}
	return t.pos
}

// Cap returns the trail capacity
func (t *Trail) Cap() int {
	return len(t.data)
}

// Points returns a copy of the stored points, oldest first
func (t *Trail) Points() []r2.Point {
	n := t.Len()
	out := make([]r2.Point, n)
	if t.full {
		copy(out, t.data[t.pos:])
		copy(out[len(t.data)-t.pos:], t.data[:t.pos])
	} else {
		copy(out, t.data[:t.pos])
	}
	return out
}

// Clear drops every stored point
func (t *Trail) Clear() {
	t.pos = 0
	t.full = false
}
