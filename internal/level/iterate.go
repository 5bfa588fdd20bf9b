package level

import "github.com/annel0/dungeon-gen/internal/vec"

// CellIteration запись обхода одной клетки сектора
type CellIteration struct {
	Index    int
	Cell     CellCode
	Position vec.Vec2 // локальные координаты
	Sector   *Sector
	Layer    Layer
}

// IterFunc обработчик клетки при обходе
type IterFunc func(it CellIteration)

// IterateSector обходит все локальные клетки сектора (x снаружи, y внутри)
// и вызывает каждую функцию для каждой клетки.
func IterateSector(s *Sector, fns []IterFunc, layer Layer) {
	i := 0
	for x := 0; x < s.Size.X; x++ {
		for y := 0; y < s.Size.Y; y++ {
			p := vec.Vec2{X: x, Y: y}
			it := CellIteration{
				Index:    i,
				Cell:     s.GetCell(p, layer),
				Position: p,
				Sector:   s,
				Layer:    layer,
			}
			for _, fn := range fns {
				fn(it)
			}
			i++
		}
	}
}

// NeighborComparison данные для сравнения клетки с соседом.
// OriginalPosition и NeighborPosition заданы в локальных координатах
// сектора, NeighborCell прочитан по абсолютной позиции.
type NeighborComparison struct {
	Sector           *Sector
	Layer            Layer
	OriginalCell     CellCode
	NeighborCell     CellCode
	OriginalPosition vec.Vec2
	NeighborPosition vec.Vec2
	Direction        DirectionMask
}

// Comparer решает, отмечать ли направление на соседа
type Comparer func(c NeighborComparison) bool

// neighborOrder фиксированный порядок обхода соседей
var neighborOrder = [...]struct {
	offset vec.Vec2
	mask   DirectionMask
}{
	{vec.Vec2{X: 0, Y: -1}, MaskDown},
	{vec.Vec2{X: 0, Y: 1}, MaskUp},
	{vec.Vec2{X: -1, Y: 0}, MaskLeft},
	{vec.Vec2{X: 1, Y: 0}, MaskRight},
}

// CheckNeighbors сравнивает клетку local с четырьмя соседями и возвращает
// маску направлений, для которых comparer вернул true.
func CheckNeighbors(s *Sector, local vec.Vec2, comparer Comparer, layer Layer) DirectionMask {
	var result DirectionMask
	original := s.GetCell(local, layer)

	for _, n := range neighborOrder {
		np := local.Add(n.offset)
		c := NeighborComparison{
			Sector:           s,
			Layer:            layer,
			OriginalCell:     original,
			NeighborCell:     s.level.GetCell(s.AbsolutePosition(np), layer),
			OriginalPosition: local,
			NeighborPosition: np,
			Direction:        n.mask,
		}
		if comparer(c) {
			result.Set(n.mask)
		}
	}
	return result
}

// CheckNeighborsGlobal то же, что CheckNeighbors, но относительно корня
func CheckNeighborsGlobal(s *Sector, local vec.Vec2, comparer Comparer, layer Layer) DirectionMask {
	return CheckNeighbors(s.level.Root(), s.AbsolutePosition(local), comparer, layer)
}
