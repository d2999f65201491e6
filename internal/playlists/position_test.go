package playlists

import (
	"reflect"
	"testing"
)

func TestPositionCalculator_canMove(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		count     int
		delta     int
		want      bool
	}{
		{
			name:      "empty positions",
			positions: []int{},
			count:     5,
			delta:     1,
			want:      false,
		},
		{
			name:      "zero delta",
			positions: []int{1, 2},
			count:     5,
			delta:     0,
			want:      false,
		},
		{
			name:      "move up valid",
			positions: []int{2, 3},
			count:     5,
			delta:     -1,
			want:      true,
		},
		{
			name:      "move up at boundary",
			positions: []int{0, 1},
			count:     5,
			delta:     -1,
			want:      false,
		},
		{
			name:      "move down valid",
			positions: []int{1, 2},
			count:     5,
			delta:     1,
			want:      true,
		},
		{
			name:      "move down at boundary",
			positions: []int{3, 4},
			count:     5,
			delta:     1,
			want:      false,
		},
		{
			name:      "move up unsorted positions",
			positions: []int{3, 1, 2},
			count:     5,
			delta:     -1,
			want:      true,
		},
		{
			name:      "single position at end cannot move down",
			positions: []int{4},
			count:     5,
			delta:     1,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newPositionCalculator(tt.positions, tt.count, tt.delta)
			if got := calc.canMove(); got != tt.want {
				t.Errorf("canMove() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPositionCalculator_newPositions(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		delta     int
		want      []int
	}{
		{
			name:      "move up by 1",
			positions: []int{2, 3, 4},
			delta:     -1,
			want:      []int{1, 2, 3},
		},
		{
			name:      "move down by 1",
			positions: []int{0, 1, 2},
			delta:     1,
			want:      []int{1, 2, 3},
		},
		{
			name:      "preserves original order",
			positions: []int{4, 2, 3},
			delta:     -1,
			want:      []int{3, 1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newPositionCalculator(tt.positions, 5, tt.delta)
			got := calc.newPositions(tt.positions)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("newPositions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPositionCalculator_apply(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	tests := []struct {
		name      string
		positions []int
		delta     int
		want      []string
	}{
		{
			name:      "first down by 2",
			positions: []int{0},
			delta:     2,
			want:      []string{"b", "c", "a", "d", "e"},
		},
		{
			name:      "second up by 1",
			positions: []int{1},
			delta:     -1,
			want:      []string{"b", "a", "c", "d", "e"},
		},
		{
			name:      "block down",
			positions: []int{1, 2},
			delta:     2,
			want:      []string{"a", "d", "e", "b", "c"},
		},
		{
			name:      "scattered up",
			positions: []int{4, 2},
			delta:     -1,
			want:      []string{"a", "c", "b", "e", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newPositionCalculator(tt.positions, len(items), tt.delta)
			got := calc.apply(items)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPositionCalculator_doesNotMutateInput(t *testing.T) {
	original := []int{3, 1, 2}
	positions := make([]int, len(original))
	copy(positions, original)
	items := []string{"a", "b", "c", "d", "e"}

	calc := newPositionCalculator(positions, 5, -1)
	calc.apply(items)

	if !reflect.DeepEqual(positions, original) {
		t.Errorf("input positions were mutated: got %v, want %v", positions, original)
	}
	if !reflect.DeepEqual(items, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("input items were mutated: got %v", items)
	}
}
