package arkanoid

import "github.com/vovakirdan/arkanoid/internal/core"

// Block is a destructible rectangle. Blocks are never repositioned or
// removed; a destroyed block is only marked inactive.
type Block struct {
	Row, Col   int
	X, Y, W, H float64
	Active     bool
}

// Rect returns the block's bounding box.
func (b *Block) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// BlockGrid is the fixed, ordered collection of blocks for one session.
// Iteration order is row-major and never changes.
type BlockGrid struct {
	blocks []Block
	active int
}

// NewBlockGrid lays out rows x cols active blocks.
func NewBlockGrid(layout GridLayout) *BlockGrid {
	rows := max(layout.Rows, 0)
	cols := max(layout.Cols, 0)

	g := &BlockGrid{blocks: make([]Block, 0, rows*cols)}
	for row := range rows {
		for col := range cols {
			g.blocks = append(g.blocks, Block{
				Row:    row,
				Col:    col,
				X:      layout.PitchX*float64(col) + layout.OriginX,
				Y:      layout.PitchY*float64(row) + layout.OriginY,
				W:      layout.BlockW,
				H:      layout.BlockH,
				Active: true,
			})
		}
	}
	g.active = len(g.blocks)
	return g
}

// Len returns the total number of blocks, active or not.
func (g *BlockGrid) Len() int {
	return len(g.blocks)
}

// ActiveCount returns the number of blocks still standing.
func (g *BlockGrid) ActiveCount() int {
	return g.active
}

// Block returns a copy of the block at index i.
func (g *BlockGrid) Block(i int) Block {
	return g.blocks[i]
}

// Deactivate marks the block at index i destroyed.
// Returns false if it was already inactive.
func (g *BlockGrid) Deactivate(i int) bool {
	b := &g.blocks[i]
	if !b.Active {
		return false
	}
	b.Active = false
	g.active--
	return true
}

// each calls fn for every active block, in collection order.
func (g *BlockGrid) each(fn func(i int, b *Block) (stop bool)) {
	for i := range g.blocks {
		if !g.blocks[i].Active {
			continue
		}
		if fn(i, &g.blocks[i]) {
			return
		}
	}
}
