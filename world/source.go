package world

import (
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/sasha-s/go-deadlock"
)

// Source provides the blocks of a world.
type Source interface {
	Block(pos cube.Pos) world.Block
}

// MapSource is an in-memory Source. Positions that were never set hold air. It is safe for concurrent
// use.
type MapSource struct {
	blocks map[cube.Pos]world.Block
	deadlock.RWMutex
}

// NewMapSource ...
func NewMapSource() *MapSource {
	return &MapSource{blocks: make(map[cube.Pos]world.Block)}
}

// Block ...
func (s *MapSource) Block(pos cube.Pos) world.Block {
	s.RLock()
	defer s.RUnlock()

	if b, ok := s.blocks[pos]; ok {
		return b
	}
	return block.Air{}
}

// SetBlock sets the block at pos. Setting air removes the entry.
func (s *MapSource) SetBlock(pos cube.Pos, b world.Block) {
	s.Lock()
	defer s.Unlock()

	if _, ok := b.(block.Air); ok || b == nil {
		delete(s.blocks, pos)
		return
	}
	s.blocks[pos] = b
}

// Fill sets every block between the two corners passed, both inclusive.
func (s *MapSource) Fill(a, b cube.Pos, bl world.Block) {
	for x := min(a[0], b[0]); x <= max(a[0], b[0]); x++ {
		for y := min(a[1], b[1]); y <= max(a[1], b[1]); y++ {
			for z := min(a[2], b[2]); z <= max(a[2], b[2]); z++ {
				s.SetBlock(cube.Pos{x, y, z}, bl)
			}
		}
	}
}

// Len returns the amount of non-air blocks held.
func (s *MapSource) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.blocks)
}
