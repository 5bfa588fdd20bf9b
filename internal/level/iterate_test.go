package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterateSector_VisitsEveryCellInOrder(t *testing.T) {
	l := New(10, 10)
	s, err := l.NewSector(v(2, 3), v(3, 2), CellRoom, nil)
	require.NoError(t, err)

	var visited []CellIteration
	var calls int
	IterateSector(s, []IterFunc{
		func(it CellIteration) { visited = append(visited, it) },
		func(CellIteration) { calls++ },
	}, LayerAll)

	require.Len(t, visited, 6)
	assert.Equal(t, 6, calls, "каждая функция вызывается для каждой клетки")
	assert.Equal(t, v(0, 0), visited[0].Position)
	assert.Equal(t, v(0, 1), visited[1].Position, "y меняется быстрее x")
	assert.Equal(t, v(1, 0), visited[2].Position)
	for i, it := range visited {
		assert.Equal(t, i, it.Index)
		assert.Equal(t, CellRoom, it.Cell)
		assert.Equal(t, s, it.Sector)
		assert.Equal(t, LayerAll, it.Layer)
	}
}

func TestCheckNeighbors_BuildsMask(t *testing.T) {
	l := New(10, 10)
	l.SetCell(v(5, 6), CellHall, LayerAll, false) // вверх
	l.SetCell(v(6, 5), CellHall, LayerAll, false) // вправо

	isHall := func(c NeighborComparison) bool { return c.NeighborCell == CellHall }

	mask := CheckNeighbors(l.Root(), v(5, 5), isHall, LayerAll)
	assert.True(t, mask.Has(MaskUp))
	assert.True(t, mask.Has(MaskRight))
	assert.False(t, mask.Has(MaskDown))
	assert.False(t, mask.Has(MaskLeft))
	assert.Equal(t, "1100", mask.String())
}

func TestCheckNeighbors_FixedOrderAndRecord(t *testing.T) {
	l := New(10, 10)
	s, err := l.NewSector(v(3, 3), v(2, 2), CellRoom, nil)
	require.NoError(t, err)
	l.SetCell(v(2, 3), CellHall, LayerAll, false)

	var seen []NeighborComparison
	CheckNeighbors(s, v(0, 0), func(c NeighborComparison) bool {
		seen = append(seen, c)
		return false
	}, LayerAll)

	require.Len(t, seen, 4)
	assert.Equal(t, []DirectionMask{MaskDown, MaskUp, MaskLeft, MaskRight},
		[]DirectionMask{seen[0].Direction, seen[1].Direction, seen[2].Direction, seen[3].Direction})
	assert.Equal(t, CellRoom, seen[0].OriginalCell)
	assert.Equal(t, CellEmpty, seen[0].NeighborCell, "сосед снизу вне сектора и пуст")
	assert.Equal(t, CellHall, seen[2].NeighborCell, "сосед слева читается по абсолютной позиции")
	assert.Equal(t, CellRoom, seen[3].NeighborCell)
	assert.Equal(t, v(-1, 0), seen[2].NeighborPosition)
}

func TestCheckNeighborsGlobal_RebasesToRoot(t *testing.T) {
	l := New(10, 10)
	s, err := l.NewSector(v(3, 3), v(2, 2), CellRoom, nil)
	require.NoError(t, err)

	var positions []NeighborComparison
	CheckNeighborsGlobal(s, v(1, 1), func(c NeighborComparison) bool {
		positions = append(positions, c)
		return true
	}, LayerAll)

	require.Len(t, positions, 4)
	assert.Equal(t, l.Root(), positions[0].Sector)
	assert.Equal(t, v(4, 4), positions[0].OriginalPosition)
}

func TestDirection_RotateAndOffset(t *testing.T) {
	assert.Equal(t, Right, Up.Rotate(1))
	assert.Equal(t, Left, Up.Rotate(-1))
	assert.Equal(t, Up, Left.Rotate(1))
	assert.Equal(t, v(0, 1), Up.Offset())
	assert.Equal(t, v(-1, 0), Left.Offset())

	d, ok := MaskDown.Direction()
	assert.True(t, ok)
	assert.Equal(t, Down, d)

	var m DirectionMask
	m.Set(MaskLeft)
	m.Set(MaskUp)
	m.Unset(MaskUp)
	assert.Equal(t, MaskLeft, m)
}

func TestDirectionMask_String(t *testing.T) {
	assert.Equal(t, "0000", MaskNone.String())
	assert.Equal(t, "0101", (MaskRight | MaskLeft).String(), "порядок битов URDL")
	assert.Equal(t, "1010", (MaskUp | MaskDown).String())
	assert.Equal(t, "rooms|props", (LayerRooms | LayerProps).String())
}
