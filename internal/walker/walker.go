// Package walker содержит агентов-ходоков, прокладывающих коридоры
// и размечающих комнаты внутри сектора.
package walker

import (
	"math/rand"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// Walker агент, делающий по одному шагу за вызов Walk
type Walker interface {
	// Walk выполняет один шаг. Result.Terminated сообщает о завершении.
	Walk() Result
	// Position текущая позиция в координатах сектора
	Position() vec.Vec2
	// Sector сектор, внутри которого ходит агент
	Sector() *level.Sector
}

// Spawn запрос на создание дочернего сектора-комнаты
type Spawn struct {
	Parent *level.Sector
	Pos    vec.Vec2 // в координатах Parent
	Size   vec.Vec2
	Code   level.CellCode
}

// Corridor проложенный коридор в абсолютных координатах
type Corridor struct {
	From  level.SectorID
	Start vec.Vec2
	End   vec.Vec2
	Path  []level.Direction
}

// Result итог одного шага
type Result struct {
	Terminated bool
	Spawn      *Spawn
	Corridor   *Corridor
}

// mover специфичная для варианта часть шага
type mover interface {
	nextPosition() vec.Vec2
	onMoved() bool
}

// base общий контракт шага: закрасить текущую клетку коридором, выбрать
// следующую позицию и, если она внутри сектора, перейти в неё.
type base struct {
	sector *level.Sector
	pos    vec.Vec2
	dir    level.Direction
	rng    *rand.Rand
}

func newBase(s *level.Sector, pos vec.Vec2, rng *rand.Rand) base {
	return base{
		sector: s,
		pos:    pos,
		dir:    level.Directions[rng.Intn(len(level.Directions))],
		rng:    rng,
	}
}

func (b *base) Position() vec.Vec2 { return b.pos }

func (b *base) Sector() *level.Sector { return b.sector }

// Direction текущее направление
func (b *base) Direction() level.Direction { return b.dir }

// step возвращает true, когда вариант сообщил о завершении
func (b *base) step(m mover) bool {
	b.sector.SetCell(b.pos, level.CellHall, level.LayerAll, false)

	next := m.nextPosition()
	if !b.sector.Contains(next) {
		return false
	}
	b.pos = next
	return m.onMoved()
}
