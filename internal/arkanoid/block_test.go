package arkanoid

import "testing"

func TestNewBlockGridLayout(t *testing.T) {
	g := NewBlockGrid(DefaultConfig().Grid)

	if g.Len() != 32 || g.ActiveCount() != 32 {
		t.Fatalf("grid has %d blocks (%d active), expected 32", g.Len(), g.ActiveCount())
	}

	tests := []struct {
		index    int
		row, col int
		x, y     float64
	}{
		{0, 0, 0, 65, 35},
		{1, 0, 1, 129, 35},
		{8, 1, 0, 65, 59},
		{31, 3, 7, 513, 107},
	}
	for _, tc := range tests {
		b := g.Block(tc.index)
		if b.Row != tc.row || b.Col != tc.col {
			t.Errorf("block %d at row/col %d/%d, expected %d/%d", tc.index, b.Row, b.Col, tc.row, tc.col)
		}
		if b.X != tc.x || b.Y != tc.y || b.W != 60 || b.H != 20 {
			t.Errorf("block %d rect = %+v, expected (%v, %v, 60, 20)", tc.index, b.Rect(), tc.x, tc.y)
		}
		if !b.Active {
			t.Errorf("block %d should start active", tc.index)
		}
	}
}

func TestBlockGridDeactivate(t *testing.T) {
	g := NewBlockGrid(GridLayout{Rows: 2, Cols: 2, BlockW: 10, BlockH: 5, PitchX: 12, PitchY: 7})

	if !g.Deactivate(1) {
		t.Error("first Deactivate should report a change")
	}
	if g.Deactivate(1) {
		t.Error("second Deactivate of the same block should be a no-op")
	}
	if g.ActiveCount() != 3 {
		t.Errorf("ActiveCount() = %d, expected 3", g.ActiveCount())
	}
	if g.Len() != 4 {
		t.Errorf("Len() = %d, blocks are never removed", g.Len())
	}

	var visited []int
	g.each(func(i int, _ *Block) bool {
		visited = append(visited, i)
		return false
	})
	want := []int{0, 2, 3}
	if len(visited) != len(want) {
		t.Fatalf("each visited %v, expected %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("each visited %v, expected %v", visited, want)
			break
		}
	}
}

func TestBlockGridEachStops(t *testing.T) {
	g := NewBlockGrid(GridLayout{Rows: 1, Cols: 5, BlockW: 1, BlockH: 1, PitchX: 2})

	calls := 0
	g.each(func(i int, _ *Block) bool {
		calls++
		return i == 1
	})
	if calls != 2 {
		t.Errorf("each should stop when fn returns true, got %d calls", calls)
	}
}

func TestNewBlockGridNegativeSize(t *testing.T) {
	g := NewBlockGrid(GridLayout{Rows: -1, Cols: 4})
	if g.Len() != 0 || g.ActiveCount() != 0 {
		t.Errorf("negative rows should produce an empty grid, got %d", g.Len())
	}
}
