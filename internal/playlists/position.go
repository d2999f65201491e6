package playlists

import "sort"

// positionCalculator calculates position shifts for moving tracks in a playlist.
// It separates the pure position calculation from the edit of the track slice.
type positionCalculator struct {
	sorted []int // sorted positions to move
	count  int   // total track count
	delta  int   // movement amount (negative = up, positive = down)
}

// newPositionCalculator creates a calculator for moving positions by delta.
func newPositionCalculator(positions []int, count, delta int) *positionCalculator {
	sorted := make([]int, len(positions))
	copy(sorted, positions)
	sort.Ints(sorted)
	return &positionCalculator{sorted: sorted, count: count, delta: delta}
}

// canMove returns true if the move is valid (within bounds).
// Returns false if there are no positions to move, delta is zero,
// or the move would go out of bounds.
func (c *positionCalculator) canMove() bool {
	if len(c.sorted) == 0 || c.delta == 0 {
		return false
	}
	if c.delta < 0 {
		return c.sorted[0]+c.delta >= 0
	}
	return c.sorted[len(c.sorted)-1]+c.delta < c.count
}

// newPositions returns the new positions after the move.
// The input should be the original (unsorted) positions array.
func (c *positionCalculator) newPositions(originalPositions []int) []int {
	result := make([]int, len(originalPositions))
	for i, pos := range originalPositions {
		result[i] = pos + c.delta
	}
	return result
}

// apply returns a copy of items with the selected positions moved by delta.
// Unselected items keep their relative order and fill the remaining slots.
// The move must be valid (see canMove).
func (c *positionCalculator) apply(items []string) []string {
	out := make([]string, len(items))
	taken := make([]bool, len(items))
	selected := make(map[int]bool, len(c.sorted))
	for _, pos := range c.sorted {
		selected[pos] = true
		out[pos+c.delta] = items[pos]
		taken[pos+c.delta] = true
	}

	slot := 0
	for i, item := range items {
		if selected[i] {
			continue
		}
		for taken[slot] {
			slot++
		}
		out[slot] = item
		slot++
	}
	return out
}
