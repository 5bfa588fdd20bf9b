package level

import (
	"math/rand"
	"strings"

	"github.com/annel0/dungeon-gen/internal/vec"
)

// Direction одна из четырех сторон. Порядок фиксирован: повороты
// вычисляются по модулю 4.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions все направления в порядке поворота по часовой стрелке
var Directions = [...]Direction{Up, Right, Down, Left}

var directionOffsets = [...]vec.Vec2{
	Up:    {X: 0, Y: 1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: -1},
	Left:  {X: -1, Y: 0},
}

// Offset возвращает единичный шаг в направлении
func (d Direction) Offset() vec.Vec2 {
	return directionOffsets[d]
}

// Mask возвращает бит направления
func (d Direction) Mask() DirectionMask {
	switch d {
	case Up:
		return MaskUp
	case Right:
		return MaskRight
	case Down:
		return MaskDown
	}
	return MaskLeft
}

// Rotate поворачивает на step четвертей (отрицательный шаг против часовой)
func (d Direction) Rotate(step int) Direction {
	return Direction(((int(d)+step)%4 + 4) % 4)
}

// RandomTurn поворачивает на одну четверть в случайную сторону
func (d Direction) RandomTurn(rng *rand.Rand) Direction {
	if rng.Float64() < 0.5 {
		return d.Rotate(-1)
	}
	return d.Rotate(1)
}

// String имя направления
func (d Direction) String() string {
	return [...]string{"up", "right", "down", "left"}[d]
}

// DirectionMask набор направлений
type DirectionMask uint8

const (
	MaskNone  DirectionMask = 0
	MaskUp    DirectionMask = 1 << 1
	MaskRight DirectionMask = 1 << 2
	MaskDown  DirectionMask = 1 << 3
	MaskLeft  DirectionMask = 1 << 4
)

// Masks все одиночные биты в порядке Up, Right, Down, Left
var Masks = [...]DirectionMask{MaskUp, MaskRight, MaskDown, MaskLeft}

// Has проверяет бит
func (m DirectionMask) Has(flag DirectionMask) bool {
	return m&flag != 0
}

// Set включает бит
func (m *DirectionMask) Set(flag DirectionMask) {
	*m |= flag
}

// Unset выключает бит
func (m *DirectionMask) Unset(flag DirectionMask) {
	*m &^= flag
}

// Direction возвращает направление одиночного бита
func (m DirectionMask) Direction() (Direction, bool) {
	for i, flag := range Masks {
		if m == flag {
			return Directions[i], true
		}
	}
	return Up, false
}

// String возвращает маску в виде строки битов "URDL", например "0101"
func (m DirectionMask) String() string {
	var sb strings.Builder
	for _, flag := range Masks {
		if m.Has(flag) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
